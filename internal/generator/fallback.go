package generator

import (
	"bytes"
	"html/template"
)

var fallbackTemplate = template.Must(template.New("index.html").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            line-height: 1.6;
            color: #1f2937;
            background: linear-gradient(135deg, #10b981 0%, #3b82f6 100%);
            min-height: 100vh;
            display: flex;
            align-items: center;
            justify-content: center;
        }

        .container {
            background: white;
            padding: 3rem;
            border-radius: 20px;
            box-shadow: 0 25px 50px -12px rgba(0, 0, 0, 0.25);
            text-align: center;
            max-width: 600px;
            width: 90%;
            animation: slideInUp 0.6s ease-out;
        }

        @keyframes slideInUp {
            from { opacity: 0; transform: translateY(30px); }
            to { opacity: 1; transform: translateY(0); }
        }

        h1 {
            margin-bottom: 1rem;
            font-size: 2.5rem;
            font-weight: 700;
        }

        p {
            color: #6b7280;
            margin-bottom: 2rem;
            font-size: 1.1rem;
        }

        .btn {
            background: linear-gradient(135deg, #10b981, #3b82f6);
            color: white;
            padding: 1rem 2rem;
            border: none;
            border-radius: 50px;
            font-size: 1.1rem;
            font-weight: 600;
            cursor: pointer;
            transition: transform 0.3s ease;
        }

        .btn:hover {
            transform: translateY(-2px);
        }
    </style>
</head>
<body>
    <main class="container">
        <h1>🚀 {{.Title}}</h1>
        <p>Project created with Go AI, the intelligent code generator</p>
        <button class="btn" onclick="alert('🎉 It works!')">Try it</button>
    </main>

    <script>
        console.log({{.Title}} + ' loaded successfully!');
    </script>
</body>
</html>
`))

// FallbackProject renders the single-page project used when no provider
// result is available.
func FallbackProject(prompt string) ([]File, error) {
	var buf bytes.Buffer
	data := struct{ Title string }{Title: ExtractTitle(prompt)}
	if err := fallbackTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}

	return []File{{
		Path:     "index.html",
		Content:  buf.String(),
		Type:     "html",
		Language: "html",
	}}, nil
}
