package search

import (
	"fmt"
	"strings"
)

// NoRepoLink as RepoURL disables the repository link in the title header.
const NoRepoLink = "-"

// MatchStrategy selects how strictly listed entities are filtered.
type MatchStrategy string

const (
	// MatchStrict re-checks every listed name against the ordered pattern.
	MatchStrict MatchStrategy = "strict"
	// MatchCoarse trusts the backend's name-contains filter.
	MatchCoarse MatchStrategy = "coarse"
)

// Presentation holds the user-facing copy of a search.
type Presentation struct {
	PageTitle   string `yaml:"page_title"`
	Header      string `yaml:"header"`
	RepoURL     string `yaml:"repo_url"`
	RepoLabel   string `yaml:"repo_label"`
	NotFound    string `yaml:"not_found"`
	TooMany     string `yaml:"too_many"`
	SummaryOne  string `yaml:"summary_one"`
	SummaryMany string `yaml:"summary_many"` // formatted with the result count
	ButtonLabel string `yaml:"button_label"`
}

// DefaultPresentation returns the stock SearchX copy.
func DefaultPresentation() Presentation {
	return Presentation{
		PageTitle:   "SearchX",
		Header:      "I found these results for your search query:",
		RepoURL:     "https://github.com/iamLiquidX/SearchX",
		RepoLabel:   "Bot Repo",
		NotFound:    "I ..I found nothing of that sort :(",
		TooMany:     "Found too many results. Please narrow down your search query.",
		SummaryOne:  "Found 1 result",
		SummaryMany: "Found %d results",
		ButtonLabel: "Click Here for results",
	}
}

// WithDefaults fills every empty field from DefaultPresentation.
func (p Presentation) WithDefaults() Presentation {
	d := DefaultPresentation()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&p.PageTitle, d.PageTitle)
	fill(&p.Header, d.Header)
	fill(&p.RepoURL, d.RepoURL)
	fill(&p.RepoLabel, d.RepoLabel)
	fill(&p.NotFound, d.NotFound)
	fill(&p.TooMany, d.TooMany)
	fill(&p.SummaryOne, d.SummaryOne)
	fill(&p.SummaryMany, d.SummaryMany)
	fill(&p.ButtonLabel, d.ButtonLabel)
	return p
}

// repoURL returns the repository link, or "" when it is disabled.
func (p Presentation) repoURL() string {
	if p.RepoURL == NoRepoLink {
		return ""
	}
	return p.RepoURL
}

// ValidSummary reports whether format holds exactly one %d verb and no other
// verbs, as required of SummaryMany.
func ValidSummary(format string) bool {
	rest := strings.ReplaceAll(format, "%%", "")
	return strings.Count(rest, "%") == 1 && strings.Count(rest, "%d") == 1
}

func (p Presentation) summary(n int) string {
	if n == 1 {
		return p.SummaryOne
	}
	return fmt.Sprintf(p.SummaryMany, n)
}
