package lsp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/walteh/eds-lsp/pkg/debug"
)

// LSPWriter forwards zerolog JSON lines to the client as window/logMessage
// notifications. Lines written before a connection is attached go to the
// fallback writer, if any.
type LSPWriter struct {
	mu       sync.Mutex
	ctx      context.Context
	conn     *jsonrpc2.Conn
	fallback io.Writer
	serverID string
}

func NewLSPWriter(ctx context.Context, serverID string, fallback io.Writer) *LSPWriter {
	return &LSPWriter{
		ctx:      ctx,
		fallback: fallback,
		serverID: serverID,
	}
}

func (w *LSPWriter) Attach(conn *jsonrpc2.Conn) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.conn = conn
}

func (w *LSPWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.conn == nil {
		if w.fallback == nil {
			return len(p), nil
		}
		return w.fallback.Write(p)
	}

	var entry map[string]any
	if err := json.Unmarshal(p, &entry); err != nil {
		return len(p), nil
	}

	params := LogMessageParams{
		Type:    Dependency,
		Message: take(entry, zerolog.MessageFieldName),
		Time:    take(entry, zerolog.TimestampFieldName),
		Source:  take(entry, zerolog.CallerFieldName),
		Raw:     string(p),
	}

	// lines from our own logger carry the server id
	if take(entry, "server") == w.serverID {
		params.Type = ParseMessageTypeFromZerolog(take(entry, zerolog.LevelFieldName))
	}
	params.Extra = entry

	if err := w.conn.Notify(w.ctx, "window/logMessage", params); err != nil && err != jsonrpc2.ErrClosed {
		return len(p), err
	}
	return len(p), nil
}

func take(entry map[string]any, key string) string {
	v, ok := entry[key].(string)
	if ok {
		delete(entry, key)
	}
	return v
}

// ApplyLSPWriter returns a context whose logger writes through w.
func (s *Server) ApplyLSPWriter(ctx context.Context, w *LSPWriter) context.Context {
	return zerolog.New(w).
		Level(s.cfg.LogLevel()).
		With().
		Str("server", s.id).
		Logger().
		Hook(debug.TimeHook{}).
		Hook(debug.CallerHook{WithColor: false}).
		WithContext(ctx)
}

func (s *Server) debugf(ctx context.Context, format string, args ...any) {
	zerolog.Ctx(ctx).Debug().
		CallerSkipFrame(1).
		Msg(fmt.Sprintf(format, args...))
}
