package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/swiccgo/swicc/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect swiccd configuration",
}

var configSchemaOutput string

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate a JSON schema for the configuration file",
	Long: `Generate a JSON schema for swiccd's configuration file.

The schema can be used for:
  - IDE autocompletion (VS Code, IntelliJ, etc.)
  - Configuration file validation
  - Documentation generation`,
	RunE: runConfigSchema,
}

func init() {
	configSchemaCmd.Flags().StringVarP(&configSchemaOutput, "output", "o", "", "output file (default: stdout)")
	configCmd.AddCommand(configSchemaCmd)
}

func runConfigSchema(cmd *cobra.Command, args []string) error {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	schema := reflector.Reflect(&config.Config{})
	schema.Version = "https://json-schema.org/draft/2020-12/schema"
	schema.Title = "swiccd Configuration"
	schema.Description = "Configuration schema for the swiccd ICC/SIM engine"

	schemaJSON, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	if configSchemaOutput != "" {
		if err := os.WriteFile(configSchemaOutput, schemaJSON, 0644); err != nil {
			return fmt.Errorf("failed to write schema file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "JSON schema written to %s\n", configSchemaOutput)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(schemaJSON))
	return nil
}
