package xccdf

import "fmt"

// ProfileSummary is the facade's listing entry.
type ProfileSummary struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

// EffectiveProfile is a profile with its inheritance chain flattened. The
// title and description belong to the requested profile, not an ancestor.
type EffectiveProfile struct {
	ID          string      `json:"id" yaml:"id"`
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Extends     string      `json:"extends,omitempty" yaml:"extends,omitempty"`
	Selections  []Selection `json:"selections" yaml:"selections"`
}

// ListProfiles returns every profile's id and title in document order. A
// benchmark without profiles yields an empty slice.
func (b *Benchmark) ListProfiles() []ProfileSummary {
	out := make([]ProfileSummary, 0, len(b.profiles))
	for i := range b.profiles {
		out = append(out, ProfileSummary{ID: b.profiles[i].ID, Title: b.profiles[i].Title})
	}
	return out
}

// GetEffectiveProfile resolves the named profile's extends chain and
// returns its flattened selection set.
func (b *Benchmark) GetEffectiveProfile(id string) (*EffectiveProfile, error) {
	p := b.profile(id)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}
	return &EffectiveProfile{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Extends:     p.Extends,
		Selections:  b.flatten(p),
	}, nil
}
