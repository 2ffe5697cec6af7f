package quality

import (
	"fmt"
	"strings"
)

func scoreIndicator(score int) string {
	switch {
	case score >= 90:
		return "🟢"
	case score >= 70:
		return "🟡"
	default:
		return "🔴"
	}
}

// GenerateReport renders metrics as markdown.
func GenerateReport(m Metrics) string {
	var b strings.Builder

	b.WriteString("# Code Quality Report\n\n")
	fmt.Fprintf(&b, "## Overall Score: %s %d/100\n", scoreIndicator(m.Overall), m.Overall)

	sections := []struct {
		title string
		cat   Category
	}{
		{"Accessibility", m.Accessibility},
		{"Performance", m.Performance},
		{"SEO", m.SEO},
		{"Best Practices", m.BestPractices},
	}

	for _, s := range sections {
		fmt.Fprintf(&b, "\n### %s: %s %d/100\n", s.title, scoreIndicator(s.cat.Score), s.cat.Score)
		for _, issue := range s.cat.Issues {
			fmt.Fprintf(&b, "- ❌ %s\n", issue)
		}
		for _, suggestion := range s.cat.Suggestions {
			fmt.Fprintf(&b, "- 💡 %s\n", suggestion)
		}
	}

	return strings.TrimSpace(b.String())
}
