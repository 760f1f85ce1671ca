package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salifshaikh/portfolio/internal/github"
)

func TestComputeLanguageShares(t *testing.T) {
	tests := []struct {
		name       string
		breakdowns []github.LanguageBreakdown
		limit      int
		wantNames  []string
		wantPcts   []int
	}{
		{
			name:       "no data",
			breakdowns: nil,
			limit:      5,
			wantNames:  []string{},
			wantPcts:   []int{},
		},
		{
			name:       "all zero bytes",
			breakdowns: []github.LanguageBreakdown{{{Name: "Go", Bytes: 0}}},
			limit:      5,
			wantNames:  []string{},
			wantPcts:   []int{},
		},
		{
			name: "bytes summed across repositories",
			breakdowns: []github.LanguageBreakdown{
				{{Name: "Go", Bytes: 300}, {Name: "HTML", Bytes: 100}},
				{{Name: "HTML", Bytes: 100}, {Name: "CSS", Bytes: 500}},
			},
			limit:     5,
			wantNames: []string{"CSS", "Go", "HTML"},
			wantPcts:  []int{50, 30, 20},
		},
		{
			name: "cut to limit",
			breakdowns: []github.LanguageBreakdown{
				{{Name: "A", Bytes: 30}, {Name: "B", Bytes: 25}, {Name: "C", Bytes: 20}, {Name: "D", Bytes: 10}, {Name: "E", Bytes: 8}, {Name: "F", Bytes: 7}},
			},
			limit:     5,
			wantNames: []string{"A", "B", "C", "D", "E"},
			wantPcts:  []int{30, 25, 20, 10, 8},
		},
		{
			name: "ties keep first-seen order",
			breakdowns: []github.LanguageBreakdown{
				{{Name: "Ruby", Bytes: 25}, {Name: "PHP", Bytes: 25}},
				{{Name: "Swift", Bytes: 25}, {Name: "Java", Bytes: 25}},
			},
			limit:     5,
			wantNames: []string{"Ruby", "PHP", "Swift", "Java"},
			wantPcts:  []int{25, 25, 25, 25},
		},
		{
			name:       "half rounds up",
			breakdowns: []github.LanguageBreakdown{{{Name: "Go", Bytes: 1}, {Name: "Shell", Bytes: 7}}},
			limit:      5,
			wantNames:  []string{"Shell", "Go"},
			wantPcts:   []int{88, 13},
		},
		{
			name:       "tiny shares round to zero but stay listed",
			breakdowns: []github.LanguageBreakdown{{{Name: "Go", Bytes: 999}, {Name: "Makefile", Bytes: 1}}},
			limit:      5,
			wantNames:  []string{"Go", "Makefile"},
			wantPcts:   []int{100, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeLanguageShares(tt.breakdowns, tt.limit)
			require.NotNil(t, got)

			names := make([]string, 0, len(got))
			pcts := make([]int, 0, len(got))
			for _, s := range got {
				names = append(names, s.Name)
				pcts = append(pcts, s.Percentage)
			}
			assert.Equal(t, tt.wantNames, names)
			assert.Equal(t, tt.wantPcts, pcts)
		})
	}
}

func TestComputeLanguageShares_Properties(t *testing.T) {
	breakdowns := []github.LanguageBreakdown{
		{{Name: "Go", Bytes: 12345}, {Name: "Shell", Bytes: 678}, {Name: "Dockerfile", Bytes: 90}},
		{{Name: "TypeScript", Bytes: 54321}, {Name: "CSS", Bytes: 4321}, {Name: "HTML", Bytes: 2100}},
		{{Name: "Python", Bytes: 7777}, {Name: "Go", Bytes: 333}},
	}

	got := ComputeLanguageShares(breakdowns, TopLanguages)

	assert.LessOrEqual(t, len(got), TopLanguages)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Percentage, got[i].Percentage, "sorted descending")
	}

	// Without the cut, rounding error is at most 0.5 per language.
	all := ComputeLanguageShares(breakdowns, -1)
	sum := 0
	for _, s := range all {
		sum += s.Percentage
	}
	assert.InDelta(t, 100, sum, float64(len(all))/2)
}

func TestLanguageColor(t *testing.T) {
	assert.Equal(t, "#f1e05a", LanguageColor("JavaScript"))
	assert.Equal(t, "#2b7489", LanguageColor("TypeScript"))
	assert.Equal(t, "#ffac45", LanguageColor("Swift"))
	assert.Equal(t, FallbackLanguageColor, LanguageColor("Haskell"))
	assert.Equal(t, FallbackLanguageColor, LanguageColor("go"), "lookup is case sensitive")
}
