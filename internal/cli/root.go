package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/kickstart-labs/kickstart/internal/branding"
	"github.com/kickstart-labs/kickstart/internal/config"
	"github.com/kickstart-labs/kickstart/internal/prompt"
	"github.com/kickstart-labs/kickstart/internal/ui"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var (
	verbose bool
	logger  = log.New(io.Discard)
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` creates front-end projects from templates and wires optional
tooling (linting, styling, state, routing, proxies, env files) into the generated
package.json, vite.config.ts, tsconfig.app.json, src/main.ts and .gitignore.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		logger = ui.NewLogger(cmd.ErrOrStderr(), verbose || config.Current().Verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// versionString returns a formatted version string for display.
func versionString() string {
	if buildVersion == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", buildVersion, buildCommit, buildDate)
}

// handleError prints err for the user. Cancellation is a notice, not a
// failure.
func handleError(w io.Writer, _ fang.Styles, err error) {
	if errors.Is(err, prompt.ErrCancelled) {
		fmt.Fprintln(w, ui.MutedStyle.Render("Cancelled."))
		return
	}
	fmt.Fprintln(w, ui.ErrorStyle.Render("Error: "+err.Error()))
}

// Execute runs the root command with build info injected via ldflags.
func Execute(ctx context.Context, version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(versionString()),
		fang.WithErrorHandler(handleError),
		fang.WithNotifySignal(os.Interrupt),
	)
}
