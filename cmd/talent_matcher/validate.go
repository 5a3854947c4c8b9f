package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-matcher/internal/schemas"
)

var (
	validateKind string
	validateJSON string
)

var validateSchemas = map[string]string{
	"taxonomy": schemas.TaxonomySchema,
	"dataset":  schemas.DatasetSchema,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a taxonomy or dataset file against its JSON schema",
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateKind, "kind", "", "File kind: taxonomy or dataset (required)")
	validateCmd.Flags().StringVar(&validateJSON, "json", "", "Path to the JSON file (required)")

	_ = validateCmd.MarkFlagRequired("kind")
	_ = validateCmd.MarkFlagRequired("json")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	schema, ok := validateSchemas[validateKind]
	if !ok {
		return fmt.Errorf("unknown kind %q: want taxonomy or dataset", validateKind)
	}
	if err := schemas.ValidateFile(schema, validateJSON); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %s\n", validateJSON)
	return nil
}
