package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jonathan/assessment-engine/internal/schemas"
	"github.com/spf13/cobra"
)

var validateSchema string

var validateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Validate JSON documents against a schema",
	Long: `Validate JSON documents against one of the built-in schemas (job_requirement,
interview_request, question_spec, resume_analysis) or a JSON Schema file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "", "Built-in schema name or path to a JSON Schema file")
	_ = validateCmd.MarkFlagRequired("schema")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	validate, err := validatorFor(validateSchema)
	if err != nil {
		return err
	}

	failed := 0
	for _, path := range args {
		if err := validate(path); err != nil {
			failed++
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: INVALID\n%s", path, strings.TrimRight(err.Error(), "\n")+"\n")
			continue
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed validation", failed, len(args))
	}
	return nil
}

// validatorFor resolves a built-in schema name first, then a schema file on disk.
func validatorFor(schema string) (func(string) error, error) {
	if name, ok := schemas.Names[schema]; ok {
		return func(path string) error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			return schemas.Validate(name, data)
		}, nil
	}
	if _, err := os.Stat(schema); err != nil {
		known := make([]string, 0, len(schemas.Names))
		for short := range schemas.Names {
			known = append(known, short)
		}
		sort.Strings(known)
		return nil, fmt.Errorf("unknown schema %q (built-in: %s)", schema, strings.Join(known, ", "))
	}
	return func(path string) error {
		return schemas.ValidateJSON(schema, path)
	}, nil
}
