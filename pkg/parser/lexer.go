package parser

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// LexerRules tokenizes EDS text. A header pushes the Header state until its
// closing bracket or the end of the line; an assignment pushes the Value
// state until the end of the line. Every state matches any input, so lexing
// never fails.
var LexerRules = lexer.Rules{
	"Root": {
		{Name: "whitespace", Pattern: `[^\S\n]+`, Action: nil},
		{Name: "Newline", Pattern: `\n`, Action: nil},
		{Name: "Comment", Pattern: `;[^\n]*`, Action: nil},
		{Name: "SectionOpen", Pattern: `\[`, Action: lexer.Push("Header")},
		{Name: "Assign", Pattern: `=`, Action: lexer.Push("Value")},
		{Name: "Key", Pattern: `[^\s=;\[\]]+`, Action: nil},
		{Name: "Char", Pattern: `.`, Action: nil},
	},
	"Header": {
		{Name: "whitespace", Pattern: `[^\S\n]+`, Action: nil},
		{Name: "Newline", Pattern: `\n`, Action: lexer.Pop()},
		{Name: "SectionClose", Pattern: `\]`, Action: lexer.Pop()},
		{Name: "SectionName", Pattern: `[^\]\s](?:[^\]\n]*[^\]\s])?`, Action: nil},
	},
	"Value": {
		{Name: "whitespace", Pattern: `[^\S\n]+`, Action: nil},
		{Name: "Newline", Pattern: `\n`, Action: lexer.Pop()},
		{Name: "Value", Pattern: `\S(?:[^\n]*\S)?`, Action: nil},
	},
}

// tokenKind is the grammar's view of a lexer token type.
type tokenKind int

const (
	tokSkip tokenKind = iota
	tokSectionOpen
	tokSectionClose
	tokSectionName
	tokAssign
	tokKey
	tokValue
	tokStray
	tokComment
)

// tokenKinds maps rule names to grammar token kinds. Rules missing from the
// map are dropped; comments are kept beside the tree.
var tokenKinds = map[string]tokenKind{
	"SectionOpen":  tokSectionOpen,
	"SectionClose": tokSectionClose,
	"SectionName":  tokSectionName,
	"Assign":       tokAssign,
	"Key":          tokKey,
	"Value":        tokValue,
	"Char":         tokStray,
	"Comment":      tokComment,
}

func symbolTable(def lexer.Definition) map[lexer.TokenType]tokenKind {
	table := make(map[lexer.TokenType]tokenKind)
	for name, typ := range def.Symbols() {
		if k, ok := tokenKinds[name]; ok {
			table[typ] = k
		}
	}
	return table
}
