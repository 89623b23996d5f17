// Package xccdf parses XCCDF 1.2 benchmark documents into rules and
// profiles and answers profile queries with inheritance resolved.
package xccdf

import (
	"fmt"

	"aqwari.net/xml/xmltree"

	"github.com/khanhnv2901/sds-cli/internal/scap"
	"github.com/khanhnv2901/sds-cli/internal/xmlutil"
)

// Namespace is the XCCDF 1.2 schema namespace.
const Namespace = "http://checklists.nist.gov/xccdf/1.2"

// Rule is one checkable item declared by the benchmark.
type Rule struct {
	ID       string
	Title    string
	Severity string

	// Selected is the rule's default enablement before any profile
	// selections apply.
	Selected bool

	// Hidden rules are kept for inheritance but not offered to users.
	Hidden bool
}

// Selectable reports whether a user-facing profile may toggle the rule.
func (r Rule) Selectable() bool { return !r.Hidden }

// Benchmark is a parsed checklist document. It is built once by
// ParseBenchmark and read-only afterwards; the extends graph is validated
// during parsing so queries can recurse without cycle checks.
type Benchmark struct {
	id          string
	title       string
	description string
	status      string
	version     string
	resolved    bool

	rules    []Rule
	profiles []Profile
	index    map[string]int
}

func (b *Benchmark) ID() string          { return b.id }
func (b *Benchmark) Title() string       { return b.title }
func (b *Benchmark) Description() string { return b.description }
func (b *Benchmark) Status() string      { return b.status }
func (b *Benchmark) Version() string     { return b.version }
func (b *Benchmark) Resolved() bool      { return b.resolved }

// Rules returns the benchmark's rules in document order, including rules
// nested inside groups.
func (b *Benchmark) Rules() []Rule {
	out := make([]Rule, len(b.rules))
	copy(out, b.rules)
	return out
}

// Profiles returns the benchmark's profiles in document order.
func (b *Benchmark) Profiles() []Profile {
	out := make([]Profile, len(b.profiles))
	copy(out, b.profiles)
	return out
}

func (b *Benchmark) profile(id string) *Profile {
	i, ok := b.index[id]
	if !ok {
		return nil
	}
	return &b.profiles[i]
}

var allowedStatuses = []string{"incomplete", "draft", "interim", "accepted", "deprecated"}

// ParseBenchmark parses a resolved checklist component. The component must
// embed an XCCDF benchmark; anything else is ErrWrongComponentType.
func ParseBenchmark(comp *scap.Component) (*Benchmark, error) {
	if comp.Kind() != scap.KindBenchmark {
		return nil, fmt.Errorf("%w: component %s embeds %s", ErrWrongComponentType, comp.ID(), comp.Kind())
	}
	return parseBenchmarkElement(comp.Root())
}

func parseBenchmarkElement(el *xmltree.Element) (*Benchmark, error) {
	if !xmlutil.Is(el, Namespace, "Benchmark") {
		return nil, fmt.Errorf("%w: got element %s", ErrWrongComponentType, el.Name.Local)
	}
	id, err := xmlutil.RequireAttr(el, "id")
	if err != nil {
		return nil, err
	}
	resolved, err := xmlutil.BoolAttr(el, "resolved", false)
	if err != nil {
		return nil, err
	}

	b := &Benchmark{id: id, resolved: resolved, index: make(map[string]int)}

	for i := range el.Children {
		child := &el.Children[i]
		if child.Name.Space != Namespace {
			continue
		}
		switch child.Name.Local {
		case "status":
			status := xmlutil.Text(child)
			if !contains(allowedStatuses, status) {
				return nil, fmt.Errorf("benchmark %s: unexpected status %q", id, status)
			}
			b.status = status
		case "title":
			if b.title == "" {
				b.title = xmlutil.Text(child)
			}
		case "description":
			if b.description == "" {
				b.description = xmlutil.Text(child)
			}
		case "version":
			if b.version != "" {
				return nil, fmt.Errorf("benchmark %s: duplicate version element", id)
			}
			b.version = xmlutil.Text(child)
		case "Profile":
			profile, err := parseProfile(child)
			if err != nil {
				return nil, err
			}
			if _, dup := b.index[profile.ID]; dup {
				return nil, fmt.Errorf("benchmark %s: duplicate profile %s", id, profile.ID)
			}
			b.index[profile.ID] = len(b.profiles)
			b.profiles = append(b.profiles, profile)
		case "Rule":
			rule, err := parseRule(child)
			if err != nil {
				return nil, err
			}
			b.rules = append(b.rules, rule)
		case "Group":
			rules, err := parseGroupRules(child)
			if err != nil {
				return nil, err
			}
			b.rules = append(b.rules, rules...)
		case "notice", "front-matter", "rear-matter", "reference", "plain-text",
			"platform", "platform-specification", "metadata", "model", "Value", "TestResult":
			// Recorded by the schema but not needed for profile queries.
		default:
			return nil, fmt.Errorf("benchmark %s: unexpected element %s", id, child.Name.Local)
		}
	}

	if b.status == "" {
		return nil, fmt.Errorf("benchmark %s: missing status element", id)
	}
	if b.version == "" {
		return nil, fmt.Errorf("benchmark %s: missing version element", id)
	}

	if err := b.validateInheritance(); err != nil {
		return nil, err
	}
	return b, nil
}

func parseRule(el *xmltree.Element) (Rule, error) {
	id, err := xmlutil.RequireAttr(el, "id")
	if err != nil {
		return Rule{}, err
	}
	selected, err := xmlutil.BoolAttr(el, "selected", true)
	if err != nil {
		return Rule{}, err
	}
	hidden, err := xmlutil.BoolAttr(el, "hidden", false)
	if err != nil {
		return Rule{}, err
	}
	rule := Rule{
		ID:       id,
		Selected: selected,
		Hidden:   hidden,
		Severity: xmlutil.Attr(el, "severity"),
	}
	if title := xmlutil.Child(el, Namespace, "title"); title != nil {
		rule.Title = xmlutil.Text(title)
	}
	return rule, nil
}

// parseGroupRules collects the rules under a group, depth first, keeping
// document order.
func parseGroupRules(el *xmltree.Element) ([]Rule, error) {
	var rules []Rule
	for i := range el.Children {
		child := &el.Children[i]
		if child.Name.Space != Namespace {
			continue
		}
		switch child.Name.Local {
		case "Rule":
			rule, err := parseRule(child)
			if err != nil {
				return nil, err
			}
			rules = append(rules, rule)
		case "Group":
			nested, err := parseGroupRules(child)
			if err != nil {
				return nil, err
			}
			rules = append(rules, nested...)
		}
	}
	return rules, nil
}

func contains(set []string, val string) bool {
	for _, s := range set {
		if s == val {
			return true
		}
	}
	return false
}
