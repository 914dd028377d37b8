package filter

import (
	"strings"
	"testing"

	"github.com/amishk599/jobdigest/internal/model"
)

func TestTitleFilter_Match(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		wantMatch bool
	}{
		{name: "exact phrase inside title", title: "Senior Data Analyst", wantMatch: true},
		{name: "different role", title: "Data Scientist", wantMatch: false},
		{name: "both words any order", title: "Analyst of Data Systems", wantMatch: true},
		{name: "case insensitive", title: "DATA ANALYST II", wantMatch: true},
		{name: "substring not word", title: "Metadata Analyst", wantMatch: true},
		{name: "only analyst", title: "Business Analyst", wantMatch: false},
		{name: "empty title", title: "", wantMatch: false},
	}
	f := NewTitleFilter("data analyst", 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.Match(model.Job{Title: tt.title})
			if got != tt.wantMatch {
				t.Errorf("Match(%q) = %v, want %v", tt.title, got, tt.wantMatch)
			}
		})
	}
}

func TestTitleFilter_MaxLen(t *testing.T) {
	f := NewTitleFilter("data analyst", 200)

	if !f.MatchText("Data Analyst at Acme") {
		t.Error("short text should match")
	}

	long := "Data Analyst " + strings.Repeat("x", 200)
	if f.MatchText(long) {
		t.Error("text of 200+ runes should be rejected")
	}

	edge := "Data Analyst" + strings.Repeat("y", 199-len("Data Analyst"))
	if got := len([]rune(edge)); got != 199 {
		t.Fatalf("edge length = %d, want 199", got)
	}
	if !f.MatchText(edge) {
		t.Error("text of 199 runes should match")
	}
}

func TestTitleFilter_EmptyPhraseMatchesNothing(t *testing.T) {
	f := NewTitleFilter("  ", 0)
	if f.MatchText("Data Analyst") {
		t.Error("empty phrase should not match")
	}
}
