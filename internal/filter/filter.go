package filter

import (
	"strings"
	"unicode/utf8"

	"github.com/amishk599/jobdigest/internal/model"
)

// TitleFilter matches text that contains the search phrase, or every word of
// the phrase in any order and position. Matching is case-insensitive.
type TitleFilter struct {
	phrase string
	terms  []string
	maxLen int
}

// NewTitleFilter returns a filter for phrase (e.g. "data analyst").
// A positive maxLen additionally rejects text of maxLen runes or more.
func NewTitleFilter(phrase string, maxLen int) *TitleFilter {
	phrase = strings.ToLower(strings.TrimSpace(phrase))
	return &TitleFilter{
		phrase: phrase,
		terms:  strings.Fields(phrase),
		maxLen: maxLen,
	}
}

// Match reports whether the job's title passes the filter.
func (f *TitleFilter) Match(job model.Job) bool {
	return f.MatchText(job.Title)
}

// MatchText applies the filter to arbitrary text such as anchor labels.
func (f *TitleFilter) MatchText(text string) bool {
	if f.maxLen > 0 && utf8.RuneCountInString(text) >= f.maxLen {
		return false
	}
	lower := strings.ToLower(text)
	if f.phrase != "" && strings.Contains(lower, f.phrase) {
		return true
	}
	if len(f.terms) == 0 {
		return false
	}
	for _, t := range f.terms {
		if !strings.Contains(lower, t) {
			return false
		}
	}
	return true
}
