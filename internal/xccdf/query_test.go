package xccdf

import (
	"errors"
	"testing"
)

func selectionsByRule(t *testing.T, eff *EffectiveProfile) map[string]bool {
	t.Helper()
	out := make(map[string]bool, len(eff.Selections))
	for _, s := range eff.Selections {
		if _, dup := out[s.RuleID]; dup {
			t.Fatalf("effective selections contain duplicate rule id %s", s.RuleID)
		}
		out[s.RuleID] = s.Selected
	}
	return out
}

func TestListProfiles_Order(t *testing.T) {
	b := mustParse(t, wrapBenchmark(
		`<xccdf:Profile id="base"><xccdf:title>Base</xccdf:title></xccdf:Profile>`+
			`<xccdf:Profile id="strict"><xccdf:title>Strict</xccdf:title></xccdf:Profile>`+
			`<xccdf:Profile id="audit"><xccdf:title>Audit</xccdf:title></xccdf:Profile>`))

	got := b.ListProfiles()
	want := []ProfileSummary{
		{ID: "base", Title: "Base"},
		{ID: "strict", Title: "Strict"},
		{ID: "audit", Title: "Audit"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d profiles, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("profile %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestListProfiles_Empty(t *testing.T) {
	b := mustParse(t, wrapBenchmark(``))
	if got := b.ListProfiles(); len(got) != 0 {
		t.Errorf("expected no profiles, got %+v", got)
	}
}

func TestGetEffectiveProfile_NoExtends(t *testing.T) {
	b := mustParse(t, wrapBenchmark(
		`<xccdf:Profile id="plain"><xccdf:title>Plain</xccdf:title>`+
			`<xccdf:description>Standalone profile.</xccdf:description>`+
			`<xccdf:select idref="r1" selected="true"/>`+
			`<xccdf:select idref="r2" selected="false"/>`+
			`<xccdf:select idref="r1" selected="false"/>`+
			`</xccdf:Profile>`))

	eff, err := b.GetEffectiveProfile("plain")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eff.Title != "Plain" || eff.Description != "Standalone profile." {
		t.Errorf("unexpected metadata: %q %q", eff.Title, eff.Description)
	}

	// Later entries for the same rule id override earlier ones within the
	// same profile; order keeps first appearance.
	if len(eff.Selections) != 2 {
		t.Fatalf("expected 2 selections, got %+v", eff.Selections)
	}
	if eff.Selections[0] != (Selection{RuleID: "r1", Selected: false}) {
		t.Errorf("unexpected first selection %+v", eff.Selections[0])
	}
	if eff.Selections[1] != (Selection{RuleID: "r2", Selected: false}) {
		t.Errorf("unexpected second selection %+v", eff.Selections[1])
	}
}

func TestGetEffectiveProfile_SpecExample(t *testing.T) {
	b := mustParse(t, wrapBenchmark(
		`<xccdf:Profile id="base"><xccdf:title>Base</xccdf:title>`+
			`<xccdf:select idref="r1" selected="true"/>`+
			`<xccdf:select idref="r2" selected="false"/>`+
			`</xccdf:Profile>`+
			`<xccdf:Profile id="strict" extends="base"><xccdf:title>Strict</xccdf:title>`+
			`<xccdf:select idref="r2" selected="true"/>`+
			`</xccdf:Profile>`))

	strict, err := b.GetEffectiveProfile("strict")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := selectionsByRule(t, strict)
	if !got["r1"] || !got["r2"] {
		t.Errorf("strict should have r1=true r2=true, got %v", got)
	}
	if strict.Title != "Strict" {
		t.Errorf("effective profile must carry the requested profile's title, got %q", strict.Title)
	}

	base, err := b.GetEffectiveProfile("base")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got = selectionsByRule(t, base)
	if !got["r1"] || got["r2"] {
		t.Errorf("base should have r1=true r2=false, got %v", got)
	}
}

func TestGetEffectiveProfile_ThreeLevelChain(t *testing.T) {
	b := mustParse(t, wrapBenchmark(
		`<xccdf:Profile id="c"><xccdf:title>C</xccdf:title>`+
			`<xccdf:select idref="r_only_c" selected="true"/>`+
			`<xccdf:select idref="r_b_wins" selected="true"/>`+
			`<xccdf:select idref="r_a_wins" selected="true"/>`+
			`</xccdf:Profile>`+
			`<xccdf:Profile id="b" extends="c"><xccdf:title>B</xccdf:title>`+
			`<xccdf:select idref="r_b_wins" selected="false"/>`+
			`<xccdf:select idref="r_a_wins" selected="false"/>`+
			`</xccdf:Profile>`+
			`<xccdf:Profile id="a" extends="b"><xccdf:title>A</xccdf:title>`+
			`<xccdf:select idref="r_a_wins" selected="true"/>`+
			`</xccdf:Profile>`))

	eff, err := b.GetEffectiveProfile("a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := selectionsByRule(t, eff)

	if !got["r_only_c"] {
		t.Error("rule set only in the root ancestor must flow through")
	}
	if got["r_b_wins"] {
		t.Error("the middle profile's override must win over the ancestor")
	}
	if !got["r_a_wins"] {
		t.Error("the descendant's override must win over all ancestors")
	}

	// Order follows first appearance from the root ancestor down.
	wantOrder := []string{"r_only_c", "r_b_wins", "r_a_wins"}
	for i, want := range wantOrder {
		if eff.Selections[i].RuleID != want {
			t.Errorf("selection %d: expected %s, got %s", i, want, eff.Selections[i].RuleID)
		}
	}
}

func TestGetEffectiveProfile_NotFound(t *testing.T) {
	b := mustParse(t, wrapBenchmark(
		`<xccdf:Profile id="base"><xccdf:title>Base</xccdf:title></xccdf:Profile>`))

	_, err := b.GetEffectiveProfile("ghost")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}
