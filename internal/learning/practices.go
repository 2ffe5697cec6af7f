package learning

import "github.com/Ayash-Bera/goai/backend/internal/prompt"

// seeded into PatternData.BestPractices when an advanced pattern is first seen
var patternPractices = map[string][]string{
	"react:hooks-pattern":      {"Use useState for local state", "Use useEffect for side effects"},
	"css:flexbox-layout":       {"Use justify-center to centre content", "Use items-center for vertical alignment"},
	"design:modern-card":       {"Combine rounded-lg with shadow-md", "Keep padding consistent"},
	"performance:optimization": {"Memoize expensive functions", "Avoid unnecessary re-renders"},
}

func bestPracticesForPattern(tag string) []string {
	practices := patternPractices[tag]
	out := make([]string, len(practices))
	copy(out, practices)
	return out
}

var languagePractices = map[prompt.Language][]string{
	prompt.LanguageHTML: {
		"- Use semantic HTML5 (header, main, section, article)",
		"- Implement accessibility (ARIA labels, alt text)",
		"- Mobile-first responsive design",
		"- CSS Grid and Flexbox for layouts",
		"- Smooth, performant CSS animations",
		"- Modern gradients and shadows",
		"- Clear typographic hierarchy",
	},
	prompt.LanguageReact: {
		"- Functional components with hooks",
		"- TypeScript for type safety",
		"- Well-typed props",
		"- Custom hooks for reusable logic",
		"- Context API for global state",
		"- Lazy loading and code splitting",
		"- Error boundaries",
	},
	prompt.LanguageNextJS: {
		"- App Router (Next.js 13+)",
		"- Server Components where appropriate",
		"- API Routes for the backend",
		"- Automatic image optimisation",
		"- Optimised SEO",
		"- Performance metrics",
	},
}

// BestPracticesForLanguage falls back to the html list for unknown languages.
func BestPracticesForLanguage(lang prompt.Language) []string {
	practices, ok := languagePractices[lang]
	if !ok {
		practices = languagePractices[prompt.LanguageHTML]
	}
	out := make([]string, len(practices))
	copy(out, practices)
	return out
}
