package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Ayash-Bera/goai/backend/internal/deploy"
	"github.com/Ayash-Bera/goai/backend/internal/prompt"
	"github.com/Ayash-Bera/goai/backend/internal/quality"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var outputFormat string

	rootCmd := &cobra.Command{
		Use:   "goai",
		Short: "GoAI CLI - classify prompts and audit generated code offline",
		Long: `goai runs the prompt classifier, the prompt enhancer and the quality
auditor locally, without a server or a generation provider.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json")

	rootCmd.AddCommand(newClassifyCommand(&outputFormat))
	rootCmd.AddCommand(newEnhanceCommand())
	rootCmd.AddCommand(newAuditCommand(&outputFormat))
	rootCmd.AddCommand(newDeployCommand())

	return rootCmd
}

func newClassifyCommand(outputFormat *string) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <prompt>",
		Short: "Detect the target stack and complexity of a prompt",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := prompt.Classify(strings.Join(args, " "))
			if *outputFormat == "json" {
				return writeJSON(cmd.OutOrStdout(), c)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "language:    %s\ndescription: %s\ncomplexity:  %s\nconfidence:  %d%%\n",
				c.Language, c.Description, c.Complexity, c.Confidence)
			return nil
		},
	}
}

func newEnhanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "enhance <prompt>",
		Short: "Print the instruction text that would be sent to the provider",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userPrompt := strings.Join(args, " ")
			fmt.Fprintln(cmd.OutOrStdout(), prompt.Enhance(userPrompt, prompt.Classify(userPrompt)))
			return nil
		},
	}
}

func newAuditCommand(outputFormat *string) *cobra.Command {
	return &cobra.Command{
		Use:   "audit <file>...",
		Short: "Score HTML, CSS and JS/TS files for accessibility, performance, SEO and best practices",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files := make([]quality.File, 0, len(args))
			for _, path := range args {
				content, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}
				files = append(files, quality.File{
					Path:     path,
					Content:  string(content),
					Language: languageFor(path),
				})
			}

			metrics := quality.Audit(files)
			if *outputFormat == "json" {
				return writeJSON(cmd.OutOrStdout(), metrics)
			}
			fmt.Fprint(cmd.OutOrStdout(), quality.GenerateReport(metrics))
			return nil
		},
	}
}

func newDeployCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "deploy-config <platform>",
		Short:     "Print the deploy configuration file for a hosting platform",
		Args:      cobra.ExactArgs(1),
		ValidArgs: platformNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := deploy.Config(args[0])
			if config == "" {
				return fmt.Errorf("unsupported platform %q (supported: %s)", args[0], strings.Join(platformNames(), ", "))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s\n", deploy.ConfigFile(args[0]), config)
			return nil
		},
	}
}

func platformNames() []string {
	var names []string
	for _, p := range deploy.Platforms() {
		names = append(names, string(p))
	}
	return names
}

func languageFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return "html"
	case ".css":
		return "css"
	case ".ts", ".tsx":
		return "typescript"
	case ".js", ".jsx", ".mjs":
		return "javascript"
	default:
		return ""
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
