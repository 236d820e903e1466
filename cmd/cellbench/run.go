package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"runtime"
	"time"

	"github.com/IvanBrykalov/cellsize/cellsize"
	"github.com/IvanBrykalov/cellsize/internal/workload"
	pmet "github.com/IvanBrykalov/cellsize/metrics/prom"
	"github.com/jmgilman/go/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the synthetic workload",
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := parseMode(viper.GetString("mode"))
		if err != nil {
			return err
		}

		// ---- Prometheus metrics and pprof (on DefaultServeMux) ----
		reg := prometheus.NewRegistry()
		metrics := pmet.New(reg, "cellsize", "bench", nil)
		if addr := viper.GetString("http"); addr != "" {
			http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			go func() {
				slog.Info("Serving metrics and pprof", "addr", addr)
				if err := http.ListenAndServe(addr, nil); err != nil {
					slog.Error("Metrics server failed", "error", err)
				}
			}()
		}

		cfg := workload.Config{
			Lists:     viper.GetInt("lists"),
			Sections:  viper.GetInt("sections"),
			Items:     viper.GetInt("items"),
			Window:    viper.GetInt("window"),
			Steps:     viper.GetInt("steps"),
			MutatePct: viper.GetInt("mutate"),
			Mode:      mode,
			Policy:    viper.GetString("policy"),
			Capacity:  viper.GetInt("capacity"),
			Width:     viper.GetFloat64("width"),
			Padding:   cellsize.Padding(viper.GetFloat64("padding")),
			Seed:      viper.GetInt64("seed"),
			Verify:    viper.GetBool("verify"),
			Metrics:   metrics,
			Logger:    slog.Default(),
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if d := viper.GetDuration("duration"); d > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d)
			defer cancel()
		}

		slog.Info("Starting workload", "lists", cfg.Lists, "mode", mode.String(), "policy", cfg.Policy, "capacity", cfg.Capacity)
		rep, err := workload.Run(ctx, cfg)
		if err != nil {
			return err
		}

		// ---- Report ----
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "mode=%s policy=%s cap=%d lists=%d dur=%v seed=%d\n",
			mode, cfg.Policy, cfg.Capacity, cfg.Lists, rep.Elapsed, cfg.Seed)
		fmt.Fprintf(out, "lookups=%d (%.0f/s)  mutations=%d\n",
			rep.Lookups, float64(rep.Lookups)/rep.Elapsed.Seconds(), rep.Mutations)
		fmt.Fprintf(out, "hits=%d  misses=%d  hit-rate=%.2f%%  entries=%d\n",
			rep.Hits, rep.Misses, rep.HitRate(), rep.Entries)
		if cfg.Verify {
			fmt.Fprintf(out, "stale=%d\n", rep.Stale)
			if rep.Stale > 0 {
				return errors.New(errors.CodeExecutionFailed, fmt.Sprintf("%d stale sizes served", rep.Stale))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Int("lists", runtime.GOMAXPROCS(0), "Number of concurrent lists")
	runCmd.Flags().Int("sections", 4, "Sections per list")
	runCmd.Flags().Int("items", 250, "Items per section")
	runCmd.Flags().Int("window", 12, "Visible rows per scroll step")
	runCmd.Flags().Int("steps", 10_000, "Scroll steps per list")
	runCmd.Flags().Int("mutate", 5, "Chance per step of a model mutation [0..100]")
	runCmd.Flags().String("mode", "position", "Cache key mode: position | identity")
	runCmd.Flags().String("policy", "lru", "Ordering policy when capacity is set: lru | 2q")
	runCmd.Flags().Int("capacity", 0, "Max cached sizes per list (0 = unbounded)")
	runCmd.Flags().Float64("width", 375, "Initial container width")
	runCmd.Flags().Float64("padding", cellsize.DefaultHeightPadding, "Height padding")
	runCmd.Flags().Int64("seed", time.Now().UnixNano(), "Random seed")
	runCmd.Flags().Bool("verify", false, "Check every served size against a fresh measurement")
	runCmd.Flags().Duration("duration", 0, "Stop after this long (0 = run all steps)")
	runCmd.Flags().String("http", "", "Serve Prometheus metrics and pprof at addr (e.g. :8080)")

	bindFlags(runCmd.Flags())
}

func parseMode(s string) (cellsize.KeyMode, error) {
	switch s {
	case "position":
		return cellsize.ModePosition, nil
	case "identity":
		return cellsize.ModeIdentity, nil
	default:
		return 0, errors.WrapWithContext(errBadFlag, errors.CodeInvalidInput, "parsing key mode",
			map[string]interface{}{"flag": "mode", "value": s})
	}
}
