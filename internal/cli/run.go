package cli

import (
	"github.com/jeblackburn/contexttimer/internal/application"
	"github.com/spf13/cobra"
)

var flagRunName string

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&flagRunName, "name", "", "name used in the report (default: command base name)")
	runCmd.Flags().SetInterspersed(false)
}

var runCmd = &cobra.Command{
	Use:   "run [flags] [--] COMMAND [ARGS...]",
	Short: "Run a command and report its wall-clock time",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp(loadConfig())
		return app.Run(cmd.Context(), application.RunParams{Name: flagRunName, Argv: args})
	},
}
