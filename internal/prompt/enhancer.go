package prompt

import (
	"fmt"
	"strconv"
)

const htmlTemplate = `You are an EXPERT WEB DESIGNER. Build a COMPLETE and MODERN HTML page.

MANDATORY RULES:
- Semantic, accessible HTML5
- Modern CSS3 with Flexbox/Grid
- ES6+ JavaScript for interactivity
- Responsive design (mobile-first)
- Smooth CSS animations
- Modern colour palette
- Elegant typography

RETURN ONLY JSON:
{
  "files": [
    {
      "path": "index.html",
      "content": "complete HTML with inline CSS and JS",
      "type": "html",
      "language": "html"
    }
  ]
}`

const reactTemplate = `You are a SENIOR REACT ARCHITECT. Build a PROFESSIONAL React application.

MANDATORY TECHNOLOGIES:
- React 18+ with modern hooks
- TypeScript for type safety
- Reusable functional components
- CSS Modules or Styled Components
- Custom hooks for shared logic

RETURN ONLY JSON with multiple organised files.`

const reactNativeTemplate = `You are an EXPERT MOBILE DEVELOPER. Build a COMPLETE React Native app.

MANDATORY FEATURES:
- React Native with TypeScript
- Navigation between screens
- Native components
- Modern styling
- Mobile functionality

RETURN ONLY JSON with a mobile app structure.`

// Only these languages have their own template; vue and nextjs use html.
var systemTemplates = map[Language]string{
	LanguageHTML:        htmlTemplate,
	LanguageReact:       reactTemplate,
	LanguageReactNative: reactNativeTemplate,
}

// TemplateFor returns the system template for a language and whether a
// dedicated one exists.
func TemplateFor(lang Language) (string, bool) {
	tmpl, ok := systemTemplates[lang]
	if !ok {
		return htmlTemplate, false
	}
	return tmpl, true
}

// Enhance builds the instruction text sent to the generation provider.
func Enhance(userPrompt string, c Classification) string {
	base, _ := TemplateFor(c.Language)

	return fmt.Sprintf(`%s

USER PROMPT: %s

IMPORTANT: Build a %s project, %s, that is VISUALLY IMPRESSIVE and FUNCTIONALLY COMPLETE.`,
		base, strconv.Quote(userPrompt), c.Complexity, c.Description)
}
