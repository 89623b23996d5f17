package xccdf

import (
	"context"
	"errors"
	"strings"
	"testing"

	"aqwari.net/xml/xmltree"

	"github.com/khanhnv2901/sds-cli/internal/scap"
)

// checklistComponent runs a benchmark body through the real container
// pipeline (collection parse + resolve) and returns the checklist
// component, the way callers obtain one.
func checklistComponent(t *testing.T, body string) *scap.Component {
	t.Helper()
	doc := `<ds:data-stream-collection xmlns:ds="http://scap.nist.gov/schema/scap/source/1.2"` +
		` xmlns:xlink="http://www.w3.org/1999/xlink"` +
		` id="scap_org.example_collection" schematron-version="1.2">` +
		`<ds:data-stream id="ds_one" use-case="CONFIGURATION" scap-version="1.2">` +
		`<ds:checklists><ds:component-ref id="ref_chk" xlink:href="#comp_chk"/></ds:checklists>` +
		`</ds:data-stream>` +
		`<ds:component id="comp_chk" timestamp="2025-06-01T00:00:00">` + body + `</ds:component>` +
		`</ds:data-stream-collection>`

	root, err := xmltree.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("fixture is not well-formed XML: %v", err)
	}
	col, err := scap.ParseCollection(root)
	if err != nil {
		t.Fatalf("ParseCollection failed: %v", err)
	}
	var r scap.Resolver
	bundle, err := r.Resolve(context.Background(), col, "")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	comp := bundle.Checklist()
	if comp == nil {
		t.Fatal("no checklist component resolved")
	}
	return comp
}

func wrapBenchmark(inner string) string {
	return `<xccdf:Benchmark xmlns:xccdf="http://checklists.nist.gov/xccdf/1.2" id="xccdf_org.example_benchmark_test">` +
		`<xccdf:status>accepted</xccdf:status>` +
		`<xccdf:title>Example Benchmark</xccdf:title>` +
		`<xccdf:description>Checks the example <xccdf:b>platform</xccdf:b>.</xccdf:description>` +
		`<xccdf:version>1.0</xccdf:version>` +
		inner +
		`</xccdf:Benchmark>`
}

func mustParse(t *testing.T, body string) *Benchmark {
	t.Helper()
	b, err := ParseBenchmark(checklistComponent(t, body))
	if err != nil {
		t.Fatalf("ParseBenchmark failed: %v", err)
	}
	return b
}

func TestParseBenchmark(t *testing.T) {
	b := mustParse(t, wrapBenchmark(
		`<xccdf:Profile id="base"><xccdf:title>Base</xccdf:title>`+
			`<xccdf:select idref="rule_one" selected="true"/>`+
			`</xccdf:Profile>`+
			`<xccdf:Group id="grp_one">`+
			`<xccdf:Rule id="rule_one" severity="medium"><xccdf:title>First rule</xccdf:title></xccdf:Rule>`+
			`<xccdf:Group id="grp_nested">`+
			`<xccdf:Rule id="rule_two" selected="false"><xccdf:title>Second rule</xccdf:title></xccdf:Rule>`+
			`</xccdf:Group>`+
			`</xccdf:Group>`+
			`<xccdf:Rule id="rule_three" hidden="true"><xccdf:title>Third rule</xccdf:title></xccdf:Rule>`))

	if b.ID() != "xccdf_org.example_benchmark_test" {
		t.Errorf("unexpected benchmark id %q", b.ID())
	}
	if b.Title() != "Example Benchmark" {
		t.Errorf("unexpected title %q", b.Title())
	}
	if b.Description() != "Checks the example platform." {
		t.Errorf("description not flattened: %q", b.Description())
	}
	if b.Status() != "accepted" || b.Version() != "1.0" {
		t.Errorf("unexpected status/version: %q %q", b.Status(), b.Version())
	}

	rules := b.Rules()
	if len(rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(rules))
	}
	wantOrder := []string{"rule_one", "rule_two", "rule_three"}
	for i, want := range wantOrder {
		if rules[i].ID != want {
			t.Errorf("rule %d: expected %s, got %s", i, want, rules[i].ID)
		}
	}
	if !rules[0].Selected || rules[1].Selected {
		t.Error("rule selected defaults not honored")
	}
	if rules[0].Severity != "medium" {
		t.Errorf("unexpected severity %q", rules[0].Severity)
	}
	if rules[2].Selectable() {
		t.Error("hidden rule must not be selectable")
	}
	if len(b.Profiles()) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(b.Profiles()))
	}
}

func TestParseBenchmark_WrongComponentType(t *testing.T) {
	comp := checklistComponent(t, `<oval_definitions xmlns="http://oval.mitre.org/XMLSchema/oval-definitions-5"></oval_definitions>`)
	_, err := ParseBenchmark(comp)
	if !errors.Is(err, ErrWrongComponentType) {
		t.Fatalf("expected ErrWrongComponentType, got %v", err)
	}
}

func TestParseBenchmark_MissingStatus(t *testing.T) {
	body := `<xccdf:Benchmark xmlns:xccdf="http://checklists.nist.gov/xccdf/1.2" id="b">` +
		`<xccdf:title>No status</xccdf:title><xccdf:version>1.0</xccdf:version></xccdf:Benchmark>`
	_, err := ParseBenchmark(checklistComponent(t, body))
	if err == nil || !strings.Contains(err.Error(), "missing status") {
		t.Fatalf("expected missing status error, got %v", err)
	}
}

func TestParseBenchmark_ProfileWithoutTitle(t *testing.T) {
	_, err := ParseBenchmark(checklistComponent(t, wrapBenchmark(
		`<xccdf:Profile id="untitled"><xccdf:select idref="r" selected="true"/></xccdf:Profile>`)))
	if err == nil || !strings.Contains(err.Error(), "no title") {
		t.Fatalf("expected profile title error, got %v", err)
	}
}

func TestParseBenchmark_SelectRequiresSelected(t *testing.T) {
	_, err := ParseBenchmark(checklistComponent(t, wrapBenchmark(
		`<xccdf:Profile id="p"><xccdf:title>P</xccdf:title>`+
			`<xccdf:select idref="rule_one"/></xccdf:Profile>`)))
	if err == nil {
		t.Fatal("expected an error for a select without a selected attribute")
	}
}

func TestParseBenchmark_CyclicInheritance(t *testing.T) {
	_, err := ParseBenchmark(checklistComponent(t, wrapBenchmark(
		`<xccdf:Profile id="a" extends="b"><xccdf:title>A</xccdf:title></xccdf:Profile>`+
			`<xccdf:Profile id="b" extends="a"><xccdf:title>B</xccdf:title></xccdf:Profile>`)))
	if !errors.Is(err, ErrCyclicInheritance) {
		t.Fatalf("expected ErrCyclicInheritance, got %v", err)
	}
}

func TestParseBenchmark_SelfCycle(t *testing.T) {
	_, err := ParseBenchmark(checklistComponent(t, wrapBenchmark(
		`<xccdf:Profile id="a" extends="a"><xccdf:title>A</xccdf:title></xccdf:Profile>`)))
	if !errors.Is(err, ErrCyclicInheritance) {
		t.Fatalf("expected ErrCyclicInheritance, got %v", err)
	}
}

func TestParseBenchmark_DanglingExtends(t *testing.T) {
	_, err := ParseBenchmark(checklistComponent(t, wrapBenchmark(
		`<xccdf:Profile id="a" extends="ghost"><xccdf:title>A</xccdf:title></xccdf:Profile>`)))
	if !errors.Is(err, ErrDanglingProfile) {
		t.Fatalf("expected ErrDanglingProfile, got %v", err)
	}
}
