package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	addProjectFlags(initCmd)
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a project in the current directory",
	Long: `Create a project in the current directory, named after the directory.

Existing files in the current directory are removed without asking.

Examples:
  mkdir my-app && cd my-app && kickstart init
  kickstart init --template web-vue --tools pinia,vue-router --yes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}
		return runCreate(cmd.Context(), cmd, []string{cwd}, true)
	},
}
