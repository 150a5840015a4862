package serve_lsp

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/eds-lsp/pkg/config"
	"github.com/walteh/eds-lsp/pkg/lsp"
)

type Handler struct {
	version string
	debug   bool
}

func NewServeLSPCommand(version string) *cobra.Command {
	me := &Handler{version: version}

	cmd := &cobra.Command{
		Use:   "serve-lsp",
		Short: "start the language server on stdin/stdout",
	}

	cmd.Flags().BoolVar(&me.debug, "debug", false, "enable debug logging (overrides log.level)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.Run(cmd.Context())
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context) error {
	cfg := config.FromContext(ctx)
	if me.debug {
		cfg.Log.Level = zerolog.DebugLevel.String()
	}

	server := lsp.NewServer(ctx, cfg, me.version)

	zerolog.Ctx(ctx).Debug().Str("version", me.version).Msg("starting language server on stdio")

	// stdout belongs to the protocol, so early logs go to stderr
	if err := server.Start(ctx, lsp.NewStdioConn(os.Stdin, os.Stdout), os.Stderr); err != nil {
		return errors.Errorf("error running language server: %w", err)
	}

	return nil
}
