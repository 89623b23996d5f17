package xccdf

import "fmt"

// validateInheritance walks every profile's extends chain once. A chain
// revisiting an id is a cycle; a chain naming an undeclared profile is
// dangling. Queries rely on this running to completion, so flattening can
// recurse freely afterwards.
func (b *Benchmark) validateInheritance() error {
	for i := range b.profiles {
		visited := map[string]bool{b.profiles[i].ID: true}
		cur := &b.profiles[i]
		for cur.Extends != "" {
			next := b.profile(cur.Extends)
			if next == nil {
				return fmt.Errorf("%w: %s extends %s", ErrDanglingProfile, cur.ID, cur.Extends)
			}
			if visited[next.ID] {
				return fmt.Errorf("%w: involving %s", ErrCyclicInheritance, b.profiles[i].ID)
			}
			visited[next.ID] = true
			cur = next
		}
	}
	return nil
}

// flatten computes a profile's effective selections by walking the extends
// chain from the root ancestor down, each descendant's entries overriding
// its ancestors' for the same rule id. Result order is first appearance in
// that walk.
func (b *Benchmark) flatten(p *Profile) []Selection {
	var base []Selection
	if p.Extends != "" {
		base = b.flatten(b.profile(p.Extends))
	}
	return applySelections(base, p.Selections)
}

func applySelections(base, own []Selection) []Selection {
	out := make([]Selection, len(base))
	copy(out, base)
	index := make(map[string]int, len(out))
	for i, s := range out {
		index[s.RuleID] = i
	}
	for _, s := range own {
		if i, ok := index[s.RuleID]; ok {
			out[i].Selected = s.Selected
			continue
		}
		index[s.RuleID] = len(out)
		out = append(out, s)
	}
	return out
}
