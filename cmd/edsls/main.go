package main

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/eds-lsp/cmd/edsls/outline"
	serve_lsp "github.com/walteh/eds-lsp/cmd/edsls/serve-lsp"
	"github.com/walteh/eds-lsp/pkg/config"
	edsdebug "github.com/walteh/eds-lsp/pkg/debug"
)

func main() {
	if err := run(); err != nil {
		println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "edsls",
		Short:         "A language server for EDS device description files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		rootCmd.Version = "unknown"
	} else {
		rootCmd.Version = info.Main.Version
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to an edsls.yaml file (default: ./edsls.yaml if present)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return errors.Errorf("getting working directory: %w", err)
		}

		cfg, err := config.NewLoader(afero.NewOsFs(), wd).WithFile(configFile).Load()
		if err != nil {
			return err
		}

		logger := edsdebug.NewConsoleLogger(os.Stderr, cfg.LogLevel(), isatty.IsTerminal(os.Stderr.Fd()))

		ctx := logger.WithContext(cmd.Context())
		ctx = config.WithContext(ctx, cfg)
		cmd.SetContext(ctx)

		return nil
	}

	cmdVersion := &cobra.Command{
		Use: "raw-version",
		Run: func(cmdz *cobra.Command, args []string) {
			cmdz.Println(rootCmd.Version)
		},
		Hidden: true,
	}

	rootCmd.AddCommand(cmdVersion)

	rootCmd.AddCommand(serve_lsp.NewServeLSPCommand(rootCmd.Version))
	rootCmd.AddCommand(outline.NewOutlineCommand(afero.NewOsFs()))

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		return errors.Errorf("failed to execute command: %w", err)
	}

	return nil
}
