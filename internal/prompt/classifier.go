// Package prompt turns a free-text request into a target stack and the
// instruction text sent to the generation provider.
package prompt

import "strings"

type Language string

const (
	LanguageHTML        Language = "html"
	LanguageReact       Language = "react"
	LanguageReactNative Language = "react-native"
	LanguageVue         Language = "vue"
	LanguageNextJS      Language = "nextjs"
)

type Complexity string

const (
	ComplexitySimple  Complexity = "simple"
	ComplexityMedium  Complexity = "medium"
	ComplexityComplex Complexity = "complex"
)

// BaselineConfidence is reported for every classification.
const BaselineConfidence = 85

const defaultDescription = "a web page"

type Classification struct {
	Language    Language   `json:"language"`
	Description string     `json:"description"`
	Complexity  Complexity `json:"complexity"`
	Confidence  int        `json:"confidence"`
}

type languageRule struct {
	keywords    []string
	language    Language
	description string
}

// Evaluated top to bottom, first hit wins. Mobile phrases must stay ahead of
// the bare "react" rule.
var languageRules = []languageRule{
	{[]string{"react native", "app mobile", "mobile app"}, LanguageReactNative, "a mobile app"},
	{[]string{"react", "jsx"}, LanguageReact, "a React application"},
	{[]string{"vue"}, LanguageVue, "a Vue application"},
	{[]string{"next", "nextjs"}, LanguageNextJS, "a Next.js application"},
	{[]string{"dashboard", "admin"}, LanguageReact, "an admin dashboard"},
	{[]string{"landing", "página", "page"}, LanguageHTML, "a landing page"},
}

type complexityRule struct {
	keywords   []string
	complexity Complexity
}

var complexityRules = []complexityRule{
	{[]string{"simples", "básico", "simple", "basic"}, ComplexitySimple},
	{[]string{"completo", "avançado", "complexo", "complete", "advanced", "complex"}, ComplexityComplex},
}

// Classify never fails; prompts matching no rule get an html/medium result.
func Classify(prompt string) Classification {
	lower := strings.ToLower(prompt)

	result := Classification{
		Language:    LanguageHTML,
		Description: defaultDescription,
		Complexity:  ComplexityMedium,
		Confidence:  BaselineConfidence,
	}

	for _, rule := range languageRules {
		if containsAny(lower, rule.keywords...) {
			result.Language = rule.language
			result.Description = rule.description
			break
		}
	}

	for _, rule := range complexityRules {
		if containsAny(lower, rule.keywords...) {
			result.Complexity = rule.complexity
			break
		}
	}

	return result
}

// Languages lists every value Classify can return.
func Languages() []Language {
	return []Language{LanguageHTML, LanguageReact, LanguageReactNative, LanguageVue, LanguageNextJS}
}

func containsAny(text string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
