package lsp

import (
	"encoding/json"

	"github.com/rs/zerolog"
	"go.lsp.dev/protocol"
)

// MessageType is the window/logMessage type. Dependency and Unknown are
// extensions so a client can tell server logs from library output.
type MessageType int

const (
	Error      MessageType = 1
	Warning    MessageType = 2
	Info       MessageType = 3
	Debug      MessageType = 4
	Trace      MessageType = 5
	Dependency MessageType = 6
	Unknown    MessageType = 7
)

func (mt MessageType) String() string {
	switch mt {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	case Debug:
		return "debug"
	case Trace:
		return "trace"
	case Dependency:
		return "dependency"
	default:
		return "unknown"
	}
}

// LogMessageParams is a window/logMessage payload carrying the decoded
// zerolog line next to the plain message.
type LogMessageParams struct {
	Type    MessageType    `json:"type"`
	Message string         `json:"message"`
	Source  string         `json:"source,omitempty"`
	Raw     string         `json:"raw,omitempty"`
	Extra   map[string]any `json:"extra,omitempty"`
	Time    string         `json:"time,omitempty"`
}

func MustParseLogMessageParams(msg any) LogMessageParams {
	b, err := json.Marshal(msg)
	if err != nil {
		panic(err)
	}
	var params LogMessageParams
	if err := json.Unmarshal(b, &params); err != nil {
		panic(err)
	}
	return params
}

func ParseMessageTypeFromZerolog(level string) MessageType {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return Unknown
	}
	switch lvl {
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return Error
	case zerolog.WarnLevel:
		return Warning
	case zerolog.InfoLevel:
		return Info
	case zerolog.DebugLevel:
		return Debug
	case zerolog.TraceLevel:
		return Trace
	default:
		return Unknown
	}
}

// ServerCapabilities adds the 3.17 inline value capability the protocol
// package predates.
type ServerCapabilities struct {
	protocol.ServerCapabilities
	InlineValueProvider bool `json:"inlineValueProvider,omitempty"`
}

type InitializeResult struct {
	Capabilities ServerCapabilities   `json:"capabilities"`
	ServerInfo   *protocol.ServerInfo `json:"serverInfo,omitempty"`
}

// InlineValueParams are the textDocument/inlineValue request parameters.
type InlineValueParams struct {
	TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
	Range        protocol.Range                  `json:"range"`
	Context      InlineValueContext              `json:"context"`
}

type InlineValueContext struct {
	FrameID         int            `json:"frameId"`
	StoppedLocation protocol.Range `json:"stoppedLocation"`
}

// InlineValueText is shown as-is at the end of its range.
type InlineValueText struct {
	Range protocol.Range `json:"range"`
	Text  string         `json:"text"`
}

// SemanticTokensOptions carries the fields protocol.SemanticTokensOptions
// lacks.
type SemanticTokensOptions struct {
	Legend protocol.SemanticTokensLegend `json:"legend"`
	Full   bool                          `json:"full"`
	Range  bool                          `json:"range"`
}
