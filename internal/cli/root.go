package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/jeblackburn/contexttimer"
	"github.com/jeblackburn/contexttimer/internal/application"
	"github.com/jeblackburn/contexttimer/internal/runner/proc"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	rootCmd = &cobra.Command{
		Use:   "contexttimer",
		Short: "Wall-clock timing for commands and code blocks",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(); err != nil {
				return err
			}
			return setupLogging(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	flagConfig  string
	flagJSON    bool
	flagVerbose bool

	// newApp is replaced in tests.
	newApp = application.NewDefault
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "config file (default is $HOME/.contexttimer/config.yaml)")
	pf.BoolVar(&flagJSON, "json", false, "enable JSON log output (default when stderr is not a terminal)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose (debug) logging")
	pf.Float64("factor", contexttimer.Seconds, "multiplier applied to elapsed seconds (1000 for milliseconds)")
	pf.String("sink", application.SinkStdout, "where reports go: stdout, slog, logrus, zerolog or file")
	pf.String("sink-file", "", "file appended to by the file sink")

	_ = viper.BindPFlag("json", pf.Lookup("json"))
	_ = viper.BindPFlag("verbose", pf.Lookup("verbose"))
	_ = viper.BindPFlag("factor", pf.Lookup("factor"))
	_ = viper.BindPFlag("sink", pf.Lookup("sink"))
	_ = viper.BindPFlag("sink_file", pf.Lookup("sink-file"))
}

func Execute(version string) {
	rootCmd.Version = version
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode passes a child's exit status through; any other failure is 1.
func exitCode(err error) int {
	var exitErr *proc.ExitError
	if errors.As(err, &exitErr) && exitErr.Code > 0 {
		return exitErr.Code
	}
	return 1
}

func initConfig() error {
	if flagConfig != "" {
		viper.SetConfigFile(flagConfig)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".contexttimer"))
		}
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("contexttimer")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if flagConfig != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// loadConfig resolves flags, environment and config file into an application.Config.
func loadConfig() application.Config {
	return application.Config{
		Factor:   viper.GetFloat64("factor"),
		Sink:     viper.GetString("sink"),
		SinkFile: viper.GetString("sink_file"),
		JSON:     jsonOutput(),
	}
}

func jsonOutput() bool {
	// IsSet ignores flag defaults, so this is true only when asked for explicitly.
	if viper.IsSet("json") {
		return viper.GetBool("json")
	}
	fd := os.Stderr.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

func setupLogging(ctx context.Context) error {
	opts := &slog.HandlerOptions{Level: chooseLevel(viper.GetBool("verbose"))}
	var handler slog.Handler
	if jsonOutput() {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("logging initialized", "config", viper.ConfigFileUsed())
	return nil
}

func chooseLevel(verbose bool) slog.Leveler {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
