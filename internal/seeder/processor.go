package seeder

import (
	"errors"
	"math"
	"regexp"
	"strings"

	"github.com/Ayash-Bera/goai/backend/internal/learning"
	"github.com/Ayash-Bera/goai/backend/internal/prompt"
	"github.com/Ayash-Bera/goai/backend/internal/quality"
	"github.com/PuerkitoBio/goquery"
)

var ErrNoTitle = errors.New("page has no title")

// PageResult is a crawled page turned into a rated example.
type PageResult struct {
	URL     string
	Example learning.NewExample
	Metrics quality.Metrics
}

// ContentProcessor turns fetched HTML into learning examples
type ContentProcessor struct {
	multiWhitespace *regexp.Regexp
	titleSeparators *regexp.Regexp
}

func NewContentProcessor() *ContentProcessor {
	return &ContentProcessor{
		multiWhitespace: regexp.MustCompile(`\s+`),
		// "Padaria Pão Quente | Home" keeps the part before the separator
		titleSeparators: regexp.MustCompile(`\s+[|\-–—·:]\s+`),
	}
}

// CleanContent collapses whitespace into single spaces
func (cp *ContentProcessor) CleanContent(content string) string {
	return strings.TrimSpace(cp.multiWhitespace.ReplaceAllString(content, " "))
}

// CleanTitle drops site-name suffixes from a page title
func (cp *ContentProcessor) CleanTitle(title string) string {
	title = cp.CleanContent(title)
	if parts := cp.titleSeparators.Split(title, 2); len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return title
}

// Process parses a page, audits its markup and inline assets and builds the
// example to record. The prompt is derived from the title and meta description.
func (cp *ContentProcessor) Process(pageURL, html string) (*PageResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	title := cp.CleanTitle(doc.Find("title").First().Text())
	if title == "" {
		return nil, ErrNoTitle
	}

	userPrompt := "Landing page for " + title
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		if desc = cp.CleanContent(desc); desc != "" {
			userPrompt += ": " + desc
		}
	}

	metrics := quality.Audit(cp.auditFiles(doc, html))

	return &PageResult{
		URL: pageURL,
		Example: learning.NewExample{
			Prompt:     userPrompt,
			Language:   cp.detectLanguage(doc, html),
			Complexity: prompt.Classify(userPrompt).Complexity,
			Code:       html,
			Quality:    QualityFromScore(metrics.Overall),
			Feedback:   feedbackFrom(metrics),
			Tags:       cp.removeDuplicates(learning.ExtractPatterns(html)),
		},
		Metrics: metrics,
	}, nil
}

// auditFiles splits inline <style> and <script> blocks out of the page so
// each scanner sees its own language.
func (cp *ContentProcessor) auditFiles(doc *goquery.Document, html string) []quality.File {
	files := []quality.File{{Path: "index.html", Content: html, Language: "html"}}

	var css strings.Builder
	doc.Find("style").Each(func(i int, s *goquery.Selection) {
		css.WriteString(s.Text())
		css.WriteString("\n")
	})
	if strings.TrimSpace(css.String()) != "" {
		files = append(files, quality.File{Path: "styles.css", Content: css.String(), Language: "css"})
	}

	var js strings.Builder
	doc.Find("script").Each(func(i int, s *goquery.Selection) {
		if _, external := s.Attr("src"); external {
			return
		}
		if typ, ok := s.Attr("type"); ok && typ == "application/json" {
			return
		}
		js.WriteString(s.Text())
		js.WriteString("\n")
	})
	if strings.TrimSpace(js.String()) != "" {
		files = append(files, quality.File{Path: "script.js", Content: js.String(), Language: "javascript"})
	}

	return files
}

func (cp *ContentProcessor) detectLanguage(doc *goquery.Document, html string) prompt.Language {
	switch {
	case doc.Find("#__next").Length() > 0 || strings.Contains(html, "__NEXT_DATA__"):
		return prompt.LanguageNextJS
	case doc.Find("[data-reactroot]").Length() > 0:
		return prompt.LanguageReact
	case doc.Find("[data-v-app]").Length() > 0 || strings.Contains(html, "data-v-"):
		return prompt.LanguageVue
	default:
		return prompt.LanguageHTML
	}
}

// QualityFromScore maps a 0-100 audit score onto the 1-10 example rating.
func QualityFromScore(overall int) int {
	q := int(math.Round(float64(overall) / 10))
	if q < 1 {
		return 1
	}
	if q > 10 {
		return 10
	}
	return q
}

func feedbackFrom(m quality.Metrics) []string {
	var out []string
	for _, c := range []quality.Category{m.Accessibility, m.Performance, m.SEO, m.BestPractices} {
		out = append(out, c.Issues...)
	}
	return out
}

// removeDuplicates removes duplicate strings from a slice
func (cp *ContentProcessor) removeDuplicates(items []string) []string {
	seen := make(map[string]bool)
	var result []string

	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}

	return result
}
