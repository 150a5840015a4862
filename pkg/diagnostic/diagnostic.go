// Package diagnostic checks the shape of a parsed EDS tree and reports the
// places where the outline will stop early or skip content.
package diagnostic

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/eds-lsp/pkg/eds"
	"github.com/walteh/eds-lsp/pkg/parser"
	"github.com/walteh/eds-lsp/pkg/position"
)

// Generator is responsible for generating diagnostics from a parsed document
type Generator interface {
	Generate(ctx context.Context, doc *eds.Document) (*Diagnostics, error)
}

// Diagnostics represents diagnostic information that can be formatted in different ways
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Hints    []Diagnostic
}

// Diagnostic represents a single diagnostic message
type Diagnostic struct {
	Message  string
	Range    position.Range
	Severity DiagnosticSeverity
}

// DiagnosticSeverity represents the severity level of a diagnostic
type DiagnosticSeverity string

const (
	Error   DiagnosticSeverity = "error"
	Warning DiagnosticSeverity = "warning"
	Info    DiagnosticSeverity = "info"
	Hint    DiagnosticSeverity = "hint"
)

// All returns errors, then warnings, then hints.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Hints))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)
	return append(out, d.Hints...)
}

func (d *Diagnostics) add(sev DiagnosticSeverity, rng position.Range, format string, args ...any) {
	diag := Diagnostic{Message: fmt.Sprintf(format, args...), Range: rng, Severity: sev}
	switch sev {
	case Error:
		d.Errors = append(d.Errors, diag)
	case Warning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Hints = append(d.Hints, diag)
	}
}

// DefaultGenerator is the default implementation of Generator
type DefaultGenerator struct{}

// NewDefaultGenerator creates a new DefaultGenerator
func NewDefaultGenerator() *DefaultGenerator {
	return &DefaultGenerator{}
}

// Generate implements Generator. It walks the tree on its own rather than
// through the outline traversal, so it also reports content the outline
// never reaches.
func (g *DefaultGenerator) Generate(ctx context.Context, doc *eds.Document) (*Diagnostics, error) {
	if doc == nil || doc.Tree() == nil {
		return nil, errors.Errorf("%w: no document", eds.ErrParseUnavailable)
	}

	diagnostics := &Diagnostics{
		Errors:   make([]Diagnostic, 0),
		Warnings: make([]Diagnostic, 0),
		Hints:    make([]Diagnostic, 0),
	}

	root := doc.Tree().RootNode()
	for i := range root.ChildCount() {
		child := root.Child(i)
		switch child.Kind() {
		case parser.KindSection:
			checkSection(diagnostics, child, i == root.ChildCount()-1)
		case parser.KindStatement:
			diagnostics.add(Warning, child.Range(), "statement outside of any section; the outline stops here")
		case parser.KindError:
			diagnostics.add(Warning, child.Range(), "unexpected %q; the outline stops here", doc.Text()[child.StartByte():child.EndByte()])
		}
	}

	text := doc.Text()
	doc.Tree().Inspect(func(n *parser.Node) bool {
		if n.Kind() != parser.KindSectionName && n.Kind() != parser.KindStatement {
			return true
		}
		if !utf8.ValidString(text[n.StartByte():n.EndByte()]) {
			diagnostics.add(Error, n.Range(), "%s is not valid UTF-8", n.Kind())
		}
		return false
	})

	zerolog.Ctx(ctx).Debug().
		Int("errors", len(diagnostics.Errors)).
		Int("warnings", len(diagnostics.Warnings)).
		Msg("generated diagnostics")

	return diagnostics, nil
}

func checkSection(d *Diagnostics, section *parser.Node, last bool) {
	var name *parser.Node
	closed := false
	statements := 0
	for i := range section.ChildCount() {
		switch c := section.Child(i); c.Kind() {
		case parser.KindSectionName:
			name = c
		case parser.KindSectionClose:
			closed = true
		case parser.KindStatement:
			statements++
		}
	}

	switch {
	case name == nil:
		d.add(Warning, section.Range(), "section has no name; the outline stops here")
	case !closed:
		d.add(Warning, name.Range(), "missing ']' after section name; the first statement of the section is left out of the outline")
	case statements == 0 && !last:
		d.add(Warning, name.Range(), "empty section; sections after it are left out of the outline")
	}
}
