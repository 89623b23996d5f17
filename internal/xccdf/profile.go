package xccdf

import (
	"fmt"

	"aqwari.net/xml/xmltree"

	"github.com/khanhnv2901/sds-cli/internal/xmlutil"
)

// Selection is a profile-local override of a rule's enablement. Order
// matters: a later entry for the same rule id within one profile overrides
// an earlier one.
type Selection struct {
	RuleID   string `json:"rule_id" yaml:"rule_id"`
	Selected bool   `json:"selected" yaml:"selected"`
}

// Profile is a named, inheritable set of rule selections. Extends is
// recorded verbatim as an identifier; the inheritance graph is validated
// after all profiles are parsed.
type Profile struct {
	ID              string
	Title           string
	Description     string
	Extends         string
	Abstract        bool
	ProhibitChanges bool
	Selections      []Selection
}

func parseProfile(el *xmltree.Element) (Profile, error) {
	id, err := xmlutil.RequireAttr(el, "id")
	if err != nil {
		return Profile{}, err
	}
	abstract, err := xmlutil.BoolAttr(el, "abstract", false)
	if err != nil {
		return Profile{}, err
	}
	prohibit, err := xmlutil.BoolAttr(el, "prohibitChanges", false)
	if err != nil {
		return Profile{}, err
	}

	p := Profile{
		ID:              id,
		Extends:         xmlutil.Attr(el, "extends"),
		Abstract:        abstract,
		ProhibitChanges: prohibit,
	}

	for i := range el.Children {
		child := &el.Children[i]
		if child.Name.Space != Namespace {
			continue
		}
		switch child.Name.Local {
		case "title":
			if p.Title == "" {
				p.Title = xmlutil.Text(child)
			}
		case "description":
			if p.Description == "" {
				p.Description = xmlutil.Text(child)
			}
		case "select":
			idref, err := xmlutil.RequireAttr(child, "idref")
			if err != nil {
				return Profile{}, fmt.Errorf("profile %s: %w", id, err)
			}
			selected, err := xmlutil.BoolAttr(child, "selected", false)
			if err != nil {
				return Profile{}, fmt.Errorf("profile %s: %w", id, err)
			}
			if !xmlutil.HasAttr(child, "selected") {
				return Profile{}, fmt.Errorf("profile %s: select %s: %w",
					id, idref, xmlutil.ErrMissingAttr)
			}
			p.Selections = append(p.Selections, Selection{RuleID: idref, Selected: selected})
		case "status", "version", "reference", "platform",
			"set-value", "set-complex-value", "refine-value", "refine-rule":
			// Not needed for selection queries.
		default:
			return Profile{}, fmt.Errorf("profile %s: unexpected element %s", id, child.Name.Local)
		}
	}

	if p.Title == "" {
		return Profile{}, fmt.Errorf("profile %s has no title", id)
	}
	return p, nil
}
