package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jmgilman/go/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "cellbench",
	Short: "Exercise the cell size cache with synthetic lists",
	Long: `cellbench simulates scrolling, mutating lists, each owning one size
manager, and reports how often sizes were served from the cache.

Every flag can also be set through the environment, e.g. CELLSIZE_LISTS=8.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := parseLevel(viper.GetString("log-level"))
		if err != nil {
			return err
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if _, printErr := fmt.Fprintln(os.Stderr, err); printErr != nil {
			slog.Error("Failed to print error to stderr", "error", printErr)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	bindFlags(rootCmd.PersistentFlags())
}

func initConfig() {
	viper.SetEnvPrefix("CELLSIZE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// bindFlags binds every flag in fs to the viper key of the same name.
func bindFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		if err := viper.BindPFlag(f.Name, f); err != nil {
			slog.Error("Failed to bind flag", "flag", f.Name, "error", err)
		}
	})
}

var errBadFlag = errors.New(errors.CodeInvalidInput, "invalid flag value")

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, errors.WrapWithContext(errBadFlag, errors.CodeInvalidInput, "parsing log level",
			map[string]interface{}{"flag": "log-level", "value": s})
	}
	return l, nil
}
