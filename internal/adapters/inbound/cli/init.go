package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/docgate/docgate/internal/domain"
	"github.com/spf13/cobra"
)

const configFileName = ".docgate.yaml"

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .docgate.yaml configuration file",
		Long:  "Create a .docgate.yaml that spells out the default policy so you can tune it.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, configFileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", configFileName)
				}
			}

			content := generateConfig()

			if err := os.WriteFile(dest, []byte(content), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configFileName)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .docgate.yaml")

	return cmd
}

// generateConfig renders the default policy as a commented starter file,
// built from the same defaults the engine applies so the two never drift.
func generateConfig() string {
	cfg := domain.DefaultConfig()

	result := fmt.Sprintf("# Docgate configuration\n# See: https://github.com/docgate/docgate\n\ndocs_dir: %s\n\n", cfg.DocsDir)

	result += "# Fail the audit on warnings too.\nstrict: false\n\n"

	result += "ignore:\n"
	for _, g := range cfg.Ignore {
		result += fmt.Sprintf("  - %q\n", g)
	}
	result += "\n"

	result += "# Files exempt from placement rules regardless of location.\nallow:\n"
	for _, name := range cfg.Allow {
		result += fmt.Sprintf("  - %s\n", name)
	}
	result += "\n"

	result += "frontmatter:\n"
	result += fmt.Sprintf("  window: %d\n", cfg.Frontmatter.Window)
	result += "  # required:\n  #   - title\n  #   - owner\n  #   - status\n\n"

	result += `# Flag references to retired systems and point at their successors.
# banned:
#   - pattern: "OldAuthService"
#     message: "retired service"
#     suggest: "AuthGateway"

# current:
#   - AuthGateway

# workers: 8
# timeout: 2m
`

	return result
}
