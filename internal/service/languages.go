package service

import (
	"math"
	"sort"

	"github.com/salifshaikh/portfolio/internal/github"
	"github.com/salifshaikh/portfolio/internal/model"
)

// FallbackLanguageColor is used for languages missing from languageColors.
const FallbackLanguageColor = "#858585"

var languageColors = map[string]string{
	"JavaScript": "#f1e05a",
	"TypeScript": "#2b7489",
	"HTML":       "#e34c26",
	"CSS":        "#563d7c",
	"Python":     "#3572A5",
	"Java":       "#b07219",
	"Go":         "#00ADD8",
	"Ruby":       "#701516",
	"PHP":        "#4F5D95",
	"Swift":      "#ffac45",
}

// LanguageColor returns the display color for a language name.
func LanguageColor(name string) string {
	if c, ok := languageColors[name]; ok {
		return c
	}
	return FallbackLanguageColor
}

// ComputeLanguageShares folds per-repository byte counts into percentages.
//
// Bytes are summed per language across all breakdowns, each language's share
// of the grand total is rounded to the nearest whole percent, and the result
// is sorted by percentage, highest first, and cut to limit entries. Equal
// percentages keep the order in which languages were first seen.
//
// The result is never nil. It is empty when there are no bytes at all.
func ComputeLanguageShares(breakdowns []github.LanguageBreakdown, limit int) []model.LanguageShare {
	totals := make(map[string]int64)
	var order []string
	var totalBytes int64

	for _, bd := range breakdowns {
		for _, lb := range bd {
			if _, seen := totals[lb.Name]; !seen {
				order = append(order, lb.Name)
			}
			totals[lb.Name] += lb.Bytes
			totalBytes += lb.Bytes
		}
	}

	shares := make([]model.LanguageShare, 0, len(order))
	if totalBytes == 0 {
		return shares
	}

	for _, name := range order {
		shares = append(shares, model.LanguageShare{
			Name:       name,
			Percentage: int(math.Round(float64(totals[name]) / float64(totalBytes) * 100)),
			Color:      LanguageColor(name),
		})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Percentage > shares[j].Percentage
	})

	if limit >= 0 && len(shares) > limit {
		shares = shares[:limit]
	}
	return shares
}
