// Package quality runs static substring checks over generated files and
// scores them per category.
package quality

import (
	"math"
	"path/filepath"
	"strings"
)

const maxScore = 100

// imageLimit is the number of <img tags tolerated before a performance penalty.
const imageLimit = 10

type File struct {
	Path     string `json:"path" binding:"required"`
	Content  string `json:"content"`
	Language string `json:"language"`
}

type Category struct {
	Score       int      `json:"score"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

type Metrics struct {
	Accessibility Category `json:"accessibility"`
	Performance   Category `json:"performance"`
	SEO           Category `json:"seo"`
	BestPractices Category `json:"bestPractices"`
	Overall       int      `json:"overall"`
}

type categoryID int

const (
	accessibility categoryID = iota
	performance
	seo
	bestPractices
)

// check penalises a category when the needle's presence equals flagWhenPresent.
type check struct {
	category        categoryID
	needle          string
	flagWhenPresent bool
	penalty         int
	issue           string
	suggestion      string
}

type scanner struct {
	touches []categoryID
	checks  []check
	extra   func(content string) []check
}

var htmlScanner = scanner{
	touches: []categoryID{accessibility, seo, performance},
	checks: []check{
		{accessibility, "alt=", false, 20, "Images without alternative text", "Add alt attributes to images"},
		{accessibility, "aria-", false, 15, "Missing ARIA attributes", "Use ARIA attributes for better accessibility"},
		{seo, "<title>", false, 30, "Page has no title", "Add a descriptive page title"},
		{seo, `meta name="description"`, false, 20, "Missing meta description", "Add a meta description for SEO"},
	},
	extra: func(content string) []check {
		if strings.Count(content, "<img") > imageLimit {
			return []check{{performance, "", false, 15, "Too many images on the page", "Consider lazy loading images"}}
		}
		return nil
	},
}

var cssScanner = scanner{
	touches: []categoryID{performance, bestPractices},
	checks: []check{
		{bestPractices, "!important", true, 10, "Excessive use of !important", "Avoid !important, use proper specificity"},
		{performance, "@import", true, 15, "@import can hurt performance", "Prefer <link> in the HTML over @import"},
	},
}

var scriptScanner = scanner{
	touches: []categoryID{performance, bestPractices},
	checks: []check{
		{bestPractices, "var ", true, 10, "Use of var instead of let/const", "Use let or const instead of var"},
		{bestPractices, "console.log", true, 5, "console.log found in code", "Remove console.log before deploying"},
		{performance, "document.write", true, 20, "Use of document.write", "Avoid document.write, use DOM manipulation"},
	},
}

func scannerFor(f File) (scanner, bool) {
	lang := strings.ToLower(f.Language)
	ext := strings.ToLower(filepath.Ext(f.Path))

	switch {
	case lang == "html" || ext == ".html":
		return htmlScanner, true
	case lang == "css" || ext == ".css":
		return cssScanner, true
	case lang == "javascript" || lang == "typescript" ||
		ext == ".js" || ext == ".jsx" || ext == ".ts" || ext == ".tsx":
		return scriptScanner, true
	}
	return scanner{}, false
}

func newCategory() Category {
	return Category{Score: maxScore, Issues: []string{}, Suggestions: []string{}}
}

func (m *Metrics) category(id categoryID) *Category {
	switch id {
	case accessibility:
		return &m.Accessibility
	case performance:
		return &m.Performance
	case seo:
		return &m.SEO
	default:
		return &m.BestPractices
	}
}

// Audit scores files. Every category starts at 100; when several files hit
// the same category the lowest score is kept and all issues are listed.
// Files of unknown type are ignored.
func Audit(files []File) Metrics {
	m := Metrics{
		Accessibility: newCategory(),
		Performance:   newCategory(),
		SEO:           newCategory(),
		BestPractices: newCategory(),
	}

	for _, f := range files {
		sc, ok := scannerFor(f)
		if !ok {
			continue
		}
		m.apply(sc, f.Content)
	}

	m.Overall = int(math.Round(float64(
		m.Accessibility.Score+m.Performance.Score+m.SEO.Score+m.BestPractices.Score,
	) / 4))
	return m
}

func (m *Metrics) apply(sc scanner, content string) {
	scores := make(map[categoryID]int, len(sc.touches))
	for _, id := range sc.touches {
		scores[id] = maxScore
	}

	checks := sc.checks
	if sc.extra != nil {
		checks = append(append([]check(nil), checks...), sc.extra(content)...)
	}

	for _, c := range checks {
		if c.needle != "" && strings.Contains(content, c.needle) != c.flagWhenPresent {
			continue
		}
		cat := m.category(c.category)
		cat.Issues = append(cat.Issues, c.issue)
		cat.Suggestions = append(cat.Suggestions, c.suggestion)
		scores[c.category] -= c.penalty
	}

	for id, score := range scores {
		cat := m.category(id)
		cat.Score = min(cat.Score, max(0, score))
	}
}
