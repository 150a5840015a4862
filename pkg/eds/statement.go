package eds

import (
	"strings"

	"github.com/walteh/eds-lsp/pkg/parser"
)

// KeyValue splits a statement item into its key and value. ok is false for
// section names and for statements without an assignment.
func (i Item) KeyValue() (key, value string, ok bool) {
	if i.Kind != parser.KindStatement {
		return "", "", false
	}
	key, value, ok = strings.Cut(i.Text, "=")
	if !ok {
		return strings.TrimSpace(i.Text), "", false
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), true
}
