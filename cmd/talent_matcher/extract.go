package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/talent-matcher/internal/logging"
	"github.com/jonathan/talent-matcher/internal/observability"
	"github.com/jonathan/talent-matcher/internal/parsing"
)

var (
	extractInputFile  string
	extractOutputFile string
	extractParsedOnly bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract structured data and a quality report from resume text",
	Long:  `Parse a plain-text or HTML resume into contact details, skills, education, experience, summary, languages and certifications, and score its completeness.`,
	Example: `  talent_matcher extract --in resume.txt
  cat resume.txt | talent_matcher extract --in - --out analysis.json`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractInputFile, "in", "i", "", "Path to the resume text, or - for stdin (required)")
	extractCmd.Flags().StringVarP(&extractOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	extractCmd.Flags().BoolVar(&extractParsedOnly, "parsed-only", false, "Print only the parsed resume, without the quality report")

	_ = extractCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	_, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var content []byte
	if extractInputFile == "-" {
		content, err = io.ReadAll(cmd.InOrStdin())
	} else {
		content, err = os.ReadFile(extractInputFile)
	}
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	text := string(content)
	logger.Debug("extracting resume",
		zap.Int("bytes", len(content)),
		zap.Bool("html", parsing.LooksLikeHTML(text)),
		zap.String("preview", logging.Truncate(text, 60)))

	analysis := parsing.Analyze(text)
	logger.Debug("extracted resume",
		zap.Int("skills", len(analysis.Resume.Skills)),
		zap.Int("score", analysis.Quality.OverallScore))

	if verbose && extractOutputFile == "" {
		observability.NewPrinter(cmd.OutOrStdout()).PrintQuality(analysis)
		return nil
	}

	var result any = analysis
	if extractParsedOnly {
		result = analysis.Resume
	}

	out := cmd.OutOrStdout()
	if extractOutputFile != "" {
		f, err := os.Create(extractOutputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}
	if err := writeJSON(out, result); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if extractOutputFile != "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", extractOutputFile)
	}
	return nil
}
