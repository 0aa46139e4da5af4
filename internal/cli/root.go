// Package cli implements the domainmap command line.
package cli

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reoring/domainmap"
	"github.com/reoring/domainmap/internal/config"
	"github.com/reoring/domainmap/internal/demo"
	"github.com/reoring/domainmap/internal/logging"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// RegisterFunc registers the domain classes the commands operate on.
type RegisterFunc func(*domainmap.Registry) error

// app is the state shared by subcommands once the root pre-run has loaded
// configuration.
type app struct {
	configPath string
	register   RegisterFunc

	cfg *config.Config
	log *zap.Logger
	reg *domainmap.Registry
}

// NewRootCommand creates the root command. register defaults to the demo
// classes.
func NewRootCommand(register RegisterFunc) *cobra.Command {
	if register == nil {
		register = demo.Register
	}
	a := &app{register: register}

	rootCmd := &cobra.Command{
		Use:   "domainmap",
		Short: "Derive and serve schemas for Go domain classes",
		Long: color.CyanString(`domainmap - schema derivation for domain classes

Registered classes get an output schema for documentation and an input
schema that validates raw data and rebuilds instances.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path to domainmap.yaml")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(newServeCommand(a))
	rootCmd.AddCommand(newModelsCommand(a))
	rootCmd.AddCommand(newParseCommand(a))
	return rootCmd
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	cfg.ApplyLanguage()

	opts := append(cfg.RegistryOptions(), domainmap.WithLogger(log))
	reg := domainmap.New(opts...)
	if err := a.register(reg); err != nil {
		return err
	}
	a.cfg, a.log, a.reg = cfg, log, reg
	return nil
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			titleColor := color.New(color.FgCyan, color.Bold)
			out := cmd.OutOrStdout()

			titleColor.Fprint(out, "domainmap version: ")
			fmt.Fprintln(out, Version)
			titleColor.Fprint(out, "Git commit: ")
			fmt.Fprintln(out, GitCommit)
			titleColor.Fprint(out, "Build date: ")
			fmt.Fprintln(out, BuildDate)
			titleColor.Fprint(out, "Go version: ")
			fmt.Fprintln(out, runtime.Version())
		},
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand(nil)
	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
