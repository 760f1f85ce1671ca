// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data. The `json:"..."` struct tags
// define the exact wire shape the front end consumes.
package model

// LanguageShare is one language's share of the sampled code bytes.
// Percentage is rounded to the nearest integer, so a list of shares
// sums to roughly (not exactly) 100.
type LanguageShare struct {
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
	Color      string `json:"color"` // hex, e.g. "#00ADD8"
}

// ContributionDay is a single calendar day of activity.
// Date is the ISO calendar date (YYYY-MM-DD). Days without activity
// are present with Count 0.
type ContributionDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// StatsSummary is the response body of GET /api/github-stats.
//
// It is rebuilt from scratch on every request and has no identity of its own.
// Languages covers only the sampled repositories while TotalRepos and
// TotalStars cover the full repository list.
type StatsSummary struct {
	Languages          []LanguageShare   `json:"languages"`
	Contributions      []ContributionDay `json:"contributions"`
	TotalContributions int               `json:"totalContributions"`
	TotalRepos         int               `json:"totalRepos"`
	TotalStars         int               `json:"totalStars"`
}
