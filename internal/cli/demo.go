package cli

import (
	"time"

	"github.com/jeblackburn/contexttimer/internal/application"
	"github.com/spf13/cobra"
)

var (
	flagDemoStep  time.Duration
	flagDemoSteps int
)

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().DurationVar(&flagDemoStep, "step", 100*time.Millisecond, "sleep per step")
	demoCmd.Flags().IntVar(&flagDemoSteps, "steps", 3, "number of steps")
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Time a few sleeps with a scoped timer and a decorated function",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp(loadConfig())
		return app.Demo(cmd.Context(), application.DemoParams{Step: flagDemoStep, Steps: flagDemoSteps})
	},
}
