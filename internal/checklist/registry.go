// Package checklist is the versioned table of scoring criteria. Each section
// owns an ordered list of weighted items; every item points either at a
// rule-based verifier or at the content quality check.
package checklist

import (
	"errors"
	"fmt"

	"github.com/spigell/resume-scorer/internal/resume"
	"github.com/spigell/resume-scorer/internal/verify"
)

// Version identifies the registry contents. Scores are only comparable
// within the same version; bump it whenever items or weights change.
const Version = "3.0.0"

// SectionTotalWeight is the sum of item weights in every section.
const SectionTotalWeight = 100

type RefKind string

const (
	RefRule    RefKind = "rule"
	RefQuality RefKind = "quality"
)

// Ref points an item at its evaluator.
type Ref struct {
	Kind RefKind `json:"kind"`
	Key  string  `json:"key,omitempty"`
}

func rule(key string) Ref { return Ref{Kind: RefRule, Key: key} }

func quality() Ref { return Ref{Kind: RefQuality} }

type Item struct {
	ID          string         `json:"id"`
	Section     resume.Section `json:"section"`
	Description string         `json:"description"`
	Weight      int            `json:"weight"`
	Required    bool           `json:"required"`
	Verifier    Ref            `json:"verifier"`
}

// Section describes one scored part of a resume.
type Section struct {
	Key       resume.Section `json:"key"`
	Name      string         `json:"name"`
	Mandatory bool           `json:"mandatory"`
	// RequiresInput marks sections that only make sense when the original
	// input is available for cross-checking.
	RequiresInput bool   `json:"requiresInput,omitempty"`
	Items         []Item `json:"items"`
}

// TotalWeight sums the weights of the section's items.
func (s Section) TotalWeight() int {
	var total int
	for _, it := range s.Items {
		total += it.Weight
	}
	return total
}

// Verdict pairs an item with its outcome.
type Verdict struct {
	Item   Item          `json:"item"`
	Result verify.Result `json:"result"`
}

// Registry is an immutable, ordered set of sections.
type Registry struct {
	version  string
	sections []Section
}

// Default returns the built-in registry.
func Default() *Registry {
	return &Registry{version: Version, sections: defaultSections()}
}

// New builds a registry from explicit section definitions. It is mostly useful
// for tests and experiments; call Validate before scoring with it.
func New(version string, sections []Section) *Registry {
	copied := make([]Section, len(sections))
	for i, s := range sections {
		s.Items = append([]Item(nil), s.Items...)
		for j := range s.Items {
			s.Items[j].Section = s.Key
		}
		copied[i] = s
	}
	return &Registry{version: version, sections: copied}
}

func (r *Registry) Version() string {
	return r.version
}

// Sections returns the section definitions in scoring order.
func (r *Registry) Sections() []Section {
	out := make([]Section, len(r.sections))
	for i, s := range r.sections {
		s.Items = append([]Item(nil), s.Items...)
		out[i] = s
	}
	return out
}

// Section looks up a single section definition.
func (r *Registry) Section(key resume.Section) (Section, bool) {
	for _, s := range r.sections {
		if s.Key == key {
			s.Items = append([]Item(nil), s.Items...)
			return s, true
		}
	}
	return Section{}, false
}

// Items returns the ordered items of a section, or nil for unknown sections.
func (r *Registry) Items(key resume.Section) []Item {
	s, ok := r.Section(key)
	if !ok {
		return nil
	}
	return s.Items
}

var (
	ErrEmptyVersion = errors.New("checklist version is empty")
	ErrWeightSum    = errors.New("section weights do not add up")
)

// Validate checks the registry invariants: per-section weights add up to
// SectionTotalWeight, item ids are unique and every rule reference resolves.
func (r *Registry) Validate() error {
	if r.version == "" {
		return ErrEmptyVersion
	}

	var errs []error
	seenSections := make(map[resume.Section]struct{}, len(r.sections))
	seenItems := make(map[string]struct{})

	for _, s := range r.sections {
		if _, dup := seenSections[s.Key]; dup {
			errs = append(errs, fmt.Errorf("section %q is declared twice", s.Key))
		}
		seenSections[s.Key] = struct{}{}

		if len(s.Items) == 0 {
			errs = append(errs, fmt.Errorf("section %q has no items", s.Key))
			continue
		}
		if total := s.TotalWeight(); total != SectionTotalWeight {
			errs = append(errs, fmt.Errorf("%w: section %q sums to %d, want %d", ErrWeightSum, s.Key, total, SectionTotalWeight))
		}

		for _, it := range s.Items {
			if _, dup := seenItems[it.ID]; dup {
				errs = append(errs, fmt.Errorf("item id %q is not unique", it.ID))
			}
			seenItems[it.ID] = struct{}{}

			if it.Weight <= 0 {
				errs = append(errs, fmt.Errorf("item %q has non-positive weight %d", it.ID, it.Weight))
			}

			switch it.Verifier.Kind {
			case RefRule:
				if _, ok := verify.Lookup(it.Verifier.Key); !ok {
					errs = append(errs, fmt.Errorf("item %q references unknown verifier %q", it.ID, it.Verifier.Key))
				}
			case RefQuality:
			default:
				errs = append(errs, fmt.Errorf("item %q has unknown verifier kind %q", it.ID, it.Verifier.Kind))
			}
		}
	}

	return errors.Join(errs...)
}
