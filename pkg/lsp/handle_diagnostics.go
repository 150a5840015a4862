package lsp

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/jsonrpc2"
	"gitlab.com/tozd/go/errors"
	"go.lsp.dev/protocol"

	"github.com/walteh/eds-lsp/pkg/diagnostic"
	"github.com/walteh/eds-lsp/pkg/position"
)

var severities = map[diagnostic.DiagnosticSeverity]protocol.DiagnosticSeverity{
	diagnostic.Error:   protocol.DiagnosticSeverityError,
	diagnostic.Warning: protocol.DiagnosticSeverityWarning,
	diagnostic.Info:    protocol.DiagnosticSeverityInformation,
	diagnostic.Hint:    protocol.DiagnosticSeverityHint,
}

// publishDiagnostics sends the diagnostics of doc to the client. A nil doc
// clears whatever was published for uri before.
func (s *Server) publishDiagnostics(ctx context.Context, conn *jsonrpc2.Conn, uri protocol.DocumentURI, doc *Document) {
	if !s.cfg.Diagnostics.Enabled {
		return
	}

	params := protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	}

	if doc != nil {
		if doc.Version > 0 {
			params.Version = uint32(doc.Version)
		}

		diags, err := s.diagnostics.Generate(ctx, doc.Parsed)
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("uri", string(uri)).Msg("failed to generate diagnostics")
			return
		}
		for _, d := range diags.All() {
			params.Diagnostics = append(params.Diagnostics, protocol.Diagnostic{
				Range:    position.ToLSPRange(d.Range),
				Severity: severities[d.Severity],
				Source:   ServerName,
				Message:  d.Message,
			})
		}
	}

	if err := conn.Notify(ctx, "textDocument/publishDiagnostics", params); err != nil && !errors.Is(err, jsonrpc2.ErrClosed) {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to publish diagnostics")
	}
}
