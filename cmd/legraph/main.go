// Command legraph loads a declarative graph config, drives it with a
// fixed-period tick loop, and optionally serves the ASCII command
// protocol over TCP and/or a serial line, per spec.md §1/§6.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tannerhollis/legraph/collaborator"
	"github.com/tannerhollis/legraph/config"
	"github.com/tannerhollis/legraph/letime"
)

var (
	configPath  string
	tickPeriod  time.Duration
	tcpAddr     string
	serialDev   string
	logLevel    string
	diagnostics bool
)

var rootCmd = &cobra.Command{
	Use:   "legraph",
	Short: "legraph runs a protective-relaying logic graph from a declarative config",
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the graph config YAML file (required)")
	rootCmd.Flags().DurationVar(&tickPeriod, "tick", 10*time.Millisecond, "engine tick period")
	rootCmd.Flags().StringVar(&tcpAddr, "tcp", "", "address to serve the command protocol over TCP (e.g. :8765); empty disables")
	rootCmd.Flags().StringVar(&serialDev, "serial", "", "serial device to serve the command protocol over (e.g. /dev/ttyUSB0); empty disables")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "logrus level: trace, debug, info, warn, error")
	rootCmd.Flags().BoolVar(&diagnostics, "diagnostics", true, "enable per-element execution-time sampling")
	_ = rootCmd.MarkFlagRequired("config")
}

func run(cmd *cobra.Command, args []string) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("legraph: invalid log level %q: %w", logLevel, err)
	}
	logrus.SetLevel(level)
	log := logrus.WithField("component", "legraph")

	f, err := os.Open(configPath)
	if err != nil {
		return fmt.Errorf("legraph: opening config: %w", err)
	}
	defer f.Close()

	eng, errs := config.Load(f)
	for _, e := range errs {
		log.WithError(e).Warn("config load reported an error")
	}
	if eng == nil {
		return fmt.Errorf("legraph: config failed to produce an engine")
	}
	eng.SetDiagnostics(diagnostics)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var servers []collaborator.CommandServer
	if tcpAddr != "" {
		servers = append(servers, collaborator.NewTCPCommandServer(tcpAddr, eng))
	}
	if serialDev != "" {
		servers = append(servers, collaborator.NewSerialCommandServer(serialDev, eng))
	}
	for _, s := range servers {
		s := s
		go func() {
			if err := s.Serve(ctx); err != nil {
				log.WithError(err).Error("command server exited")
			}
		}()
	}
	defer func() {
		for _, s := range servers {
			_ = s.Close()
		}
	}()

	log.WithField("tick", tickPeriod).Info("starting tick loop")
	ticker := time.NewTicker(tickPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("shutting down")
			return nil
		case <-ticker.C:
			eng.Update(letime.GetTime())
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
