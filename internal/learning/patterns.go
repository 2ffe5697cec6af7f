package learning

import "strings"

// Tier groups pattern rules that share an update policy.
type Tier string

const (
	TierBasic       Tier = "basic"
	TierPrompt      Tier = "prompt"
	TierStructure   Tier = "structure"
	TierDesign      Tier = "design"
	TierPerformance Tier = "performance"
)

type patternRule struct {
	tag   string
	match func(text string) bool
}

func has(needle string) func(string) bool {
	return func(text string) bool { return strings.Contains(text, needle) }
}

func hasAll(needles ...string) func(string) bool {
	return func(text string) bool {
		for _, n := range needles {
			if !strings.Contains(text, n) {
				return false
			}
		}
		return true
	}
}

func hasAny(needles ...string) func(string) bool {
	return func(text string) bool {
		for _, n := range needles {
			if strings.Contains(text, n) {
				return true
			}
		}
		return false
	}
}

var basicRules = []patternRule{
	{"css:flexbox", has("flexbox")},
	{"css:grid", has("grid")},
	{"css:gradients", has("linear-gradient")},
	{"css:responsive", has("@media")},
	{"css:animations", has("transition")},
	{"html:semantic", has("semantic")},
	{"html:accessibility", has("aria-")},
	{"js:events", has("addEventListener")},
	{"js:api", has("fetch(")},
	{"js:async", has("async/await")},
}

// matched against the lower-cased prompt
var promptRules = []patternRule{
	{"prompt:landing", has("landing")},
	{"prompt:dashboard", has("dashboard")},
	{"prompt:responsive", has("responsivo")},
	{"prompt:modern", has("moderno")},
}

var structureRules = []patternRule{
	{"react:hooks-pattern", hasAll("useState", "useEffect")},
	{"typescript:props-interface", hasAll("interface", "Props")},
	{"css:flexbox-layout", hasAll("className=", "flex")},
	{"css:grid-layout", has("grid-cols")},
	{"css:gradient-design", has("bg-gradient")},
}

var designRules = []patternRule{
	{"design:modern-card", hasAll("rounded-", "shadow-")},
	{"design:animations", hasAny("animate-", "transition-")},
	{"design:interactive", hasAll("hover:", "focus:")},
}

var performanceRules = []patternRule{
	{"performance:optimization", hasAny("useMemo", "useCallback")},
	{"performance:lazy-loading", hasAny("lazy", "Suspense")},
}

func applyRules(rules []patternRule, text string) []string {
	tags := make([]string, 0, len(rules))
	for _, r := range rules {
		if r.match(text) {
			tags = append(tags, r.tag)
		}
	}
	return tags
}

// ExtractCodePatterns returns the basic-tier tags (css/html/js idioms).
func ExtractCodePatterns(code string) []string {
	return applyRules(basicRules, code)
}

// ExtractPromptPatterns returns tags found in the prompt text.
func ExtractPromptPatterns(prompt string) []string {
	return applyRules(promptRules, strings.ToLower(prompt))
}

func ExtractStructurePatterns(code string) []string {
	return applyRules(structureRules, code)
}

func ExtractDesignPatterns(code string) []string {
	return applyRules(designRules, code)
}

func ExtractPerformancePatterns(code string) []string {
	return applyRules(performanceRules, code)
}

// ExtractAdvancedPatterns returns structure, design and performance tags in that order.
func ExtractAdvancedPatterns(code string) []string {
	tags := ExtractStructurePatterns(code)
	tags = append(tags, ExtractDesignPatterns(code)...)
	return append(tags, ExtractPerformancePatterns(code)...)
}

// ExtractPatterns runs every code tier over code.
func ExtractPatterns(code string) []string {
	return append(ExtractCodePatterns(code), ExtractAdvancedPatterns(code)...)
}

// TierOf reports which tier produced a tag.
func TierOf(tag string) (Tier, bool) {
	tiers := []struct {
		tier  Tier
		rules []patternRule
	}{
		{TierBasic, basicRules},
		{TierPrompt, promptRules},
		{TierStructure, structureRules},
		{TierDesign, designRules},
		{TierPerformance, performanceRules},
	}
	for _, t := range tiers {
		for _, r := range t.rules {
			if r.tag == tag {
				return t.tier, true
			}
		}
	}
	return "", false
}
