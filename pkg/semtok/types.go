package semtok

import (
	"github.com/walteh/eds-lsp/pkg/position"
)

// TokenType represents the semantic meaning of a token. Its value is the
// index into TokenTypeLegend.
type TokenType uint32

const (
	// TokenNamespace is a section name
	TokenNamespace TokenType = iota

	// TokenProperty is a statement key
	TokenProperty

	// TokenString is a non-numeric statement value
	TokenString

	// TokenNumber is a numeric statement value (e.g., 0x1000, 12)
	TokenNumber

	// TokenOperator is the '=' of a statement
	TokenOperator

	// TokenComment is a ';' comment line
	TokenComment
)

// TokenTypeLegend lists the token type names in TokenType order.
var TokenTypeLegend = []string{"namespace", "property", "string", "number", "operator", "comment"}

// TokenModifier is a bit set of token characteristics. Bit i is
// TokenModifierLegend[i].
type TokenModifier uint32

const (
	// ModifierNone indicates no special characteristics
	ModifierNone TokenModifier = 0

	// ModifierDeclaration marks a section name, which declares its section
	ModifierDeclaration TokenModifier = 1 << (iota - 1)
)

var TokenModifierLegend = []string{"declaration"}

// Token represents a semantic token with its type, modifiers, and position
type Token struct {
	Type     TokenType
	Modifier TokenModifier
	Range    position.Range
}

// String returns a human-readable representation of the token type
func (t TokenType) String() string {
	if int(t) < len(TokenTypeLegend) {
		return TokenTypeLegend[t]
	}
	return "unknown"
}

// String returns a human-readable representation of the token modifier
func (m TokenModifier) String() string {
	switch m {
	case ModifierNone:
		return "none"
	case ModifierDeclaration:
		return "declaration"
	default:
		return "unknown"
	}
}
