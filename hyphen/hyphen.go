// Package hyphen defines the hyphenator collaborator: a source of valid
// intra-word break offsets. Hyphenation is optional; without a
// hyphenator the line breaker only breaks at word boundaries.
package hyphen

import (
	"golang.org/x/text/language"
)

// Hyphenator yields the valid break offsets within a word, as ascending
// rune offsets strictly between 0 and the word's rune length. Results
// must be deterministic for identical inputs. Hyphenators are
// infallible: a word that cannot be hyphenated yields no offsets, and
// fallible sources must be wrapped so that failures degrade to nil
// before being adapted.
type Hyphenator interface {
	Hyphenate(word string) []int
}

// Func adapts a plain function to the Hyphenator interface.
type Func func(word string) []int

func (f Func) Hyphenate(word string) []int { return f(word) }

// Registry maps BCP-47 locales to hyphenators. Lookup uses language
// matching, so "en-US" resolves to a hyphenator registered for "en".
type Registry struct {
	tags  []language.Tag
	hyphs []Hyphenator
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{} }

// Register adds a hyphenator for the given language tag.
func (r *Registry) Register(tag language.Tag, h Hyphenator) {
	r.tags = append(r.tags, tag)
	r.hyphs = append(r.hyphs, h)
}

// Lookup returns the best-matching hyphenator for the locale, or false
// when nothing registered matches.
func (r *Registry) Lookup(locale string) (Hyphenator, bool) {
	if len(r.tags) == 0 {
		return nil, false
	}
	matcher := language.NewMatcher(r.tags)
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, false
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return nil, false
	}
	return r.hyphs[idx], true
}
