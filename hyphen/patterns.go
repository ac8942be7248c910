package hyphen

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/speedata/hyphenation"
)

// Patterns builds a Hyphenator from a Knuth-Liang pattern file (the
// .pat.txt files shipped with TeX distributions). The reader is consumed
// during construction; the returned hyphenator is read-only afterwards.
func Patterns(r io.Reader) (Hyphenator, error) {
	lang, err := hyphenation.New(r)
	if err != nil {
		return nil, fmt.Errorf("hyphen: load patterns: %w", err)
	}
	return patternHyphenator{lang: lang}, nil
}

type patternHyphenator struct {
	lang *hyphenation.Lang
}

func (p patternHyphenator) Hyphenate(word string) []int {
	n := utf8.RuneCountInString(word)
	if n < 4 {
		return nil
	}
	var out []int
	for _, pos := range p.lang.Hyphenate(word) {
		if pos > 0 && pos < n {
			out = append(out, pos)
		}
	}
	return out
}
