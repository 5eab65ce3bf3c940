// Command xtractly extracts the primary editorial content from one or more
// HTML files named as arguments and prints it in the requested output
// format. It does not read stdin.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jrmoran/xtractly"
	"github.com/jrmoran/xtractly/internal/sanitize"
)

var (
	format        string
	sourceURL     string
	targetLang    string
	favorRecall   bool
	favorPrecis   bool
	noFallback    bool
	validateTEI   bool
	includeImages bool
	includeTables bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "xtractly [file...]",
		Short: "xtractly extracts editorial content from HTML",
		Long:  "xtractly discards navigation, ads, and boilerplate, returning the article body and optional comments in the requested output format.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runExtract,
	}

	rootCmd.Flags().StringVarP(&format, "format", "f", "txt", "Output format (txt|csv|json|xml|xmltei)")
	rootCmd.Flags().StringVar(&sourceURL, "url", "", "Source URL, used for hostname and image-link resolution")
	rootCmd.Flags().StringVar(&targetLang, "lang", "", "Reject documents not in this BCP-47 language")
	rootCmd.Flags().BoolVar(&favorRecall, "favor-recall", false, "Bias extraction toward keeping more text")
	rootCmd.Flags().BoolVar(&favorPrecis, "favor-precision", false, "Bias extraction toward stricter boilerplate rejection")
	rootCmd.Flags().BoolVar(&noFallback, "no-fallback", false, "Disable the readability-like and paragraph-classifier fallbacks")
	rootCmd.Flags().BoolVar(&validateTEI, "validate-tei", false, "Validate TEI-XML output structurally")
	rootCmd.Flags().BoolVar(&includeImages, "images", true, "Include images in the extracted body")
	rootCmd.Flags().BoolVar(&includeTables, "tables", true, "Include tables in the extracted body")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("xtractly v0.1.0")
		},
	}
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	opts := []xtractly.Option{
		xtractly.WithSourceURL(sourceURL),
		xtractly.WithTargetLanguage(targetLang),
		xtractly.WithFavorRecall(favorRecall),
		xtractly.WithFavorPrecision(favorPrecis),
		xtractly.WithNoFallback(noFallback),
		xtractly.WithIncludeImages(includeImages),
		xtractly.WithIncludeTables(includeTables),
	}

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error reading %s: %v\n", path, err)
			continue
		}

		doc, err := xtractly.Extract(sanitize.SanitizeHTML(string(data)), opts...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error extracting %s: %v\n", path, err)
			continue
		}
		if doc == nil {
			fmt.Fprintf(os.Stderr, "%s: rejected (too small, wrong language, or duplicate)\n", path)
			continue
		}

		out, err := doc.Serialize(xtractly.Format(format), validateTEI)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error serializing %s: %v\n", path, err)
			continue
		}
		fmt.Println(out)
	}
	return nil
}
