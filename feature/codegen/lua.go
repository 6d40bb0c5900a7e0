package codegen

import (
	"fmt"
	"strings"
)

// Header is the marker comment every generated file starts with.
const Header = "-- This file was @generated by assetsync. It is not intended for manual editing."

// Expression is a renderable Lua value.
type Expression interface {
	writeTo(b *strings.Builder, indent int)
}

// String renders as a quoted Lua string literal.
type String string

func (s String) writeTo(b *strings.Builder, _ int) {
	fmt.Fprintf(b, "%q", string(s))
}

// Raw renders verbatim, for constructor calls and other snippets that are
// not plain literals.
type Raw string

func (r Raw) writeTo(b *strings.Builder, _ int) {
	b.WriteString(string(r))
}

// Entry is one key/value pair of a Table.
type Entry struct {
	Key   string
	Value Expression
}

// Table renders as a Lua table constructor with one entry per line.
type Table struct {
	Entries []Entry
}

func (t Table) writeTo(b *strings.Builder, indent int) {
	if len(t.Entries) == 0 {
		b.WriteString("{}")
		return
	}

	b.WriteString("{\n")
	for _, entry := range t.Entries {
		writeIndent(b, indent+1)
		writeKey(b, entry.Key)
		b.WriteString(" = ")
		entry.Value.writeTo(b, indent+1)
		b.WriteString(",\n")
	}
	writeIndent(b, indent)
	b.WriteString("}")
}

// Render produces the full text of a generated file returning expr.
func Render(expr Expression) string {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteString("\nreturn ")
	expr.writeTo(&b, 0)
	b.WriteString("\n")
	return b.String()
}

func writeIndent(b *strings.Builder, indent int) {
	for i := 0; i < indent; i++ {
		b.WriteString("  ")
	}
}

// writeKey emits a table key, bare when it is a valid Lua identifier and
// bracketed otherwise.
func writeKey(b *strings.Builder, key string) {
	if isLuaIdentifier(key) {
		b.WriteString(key)
		return
	}
	fmt.Fprintf(b, "[%q]", key)
}

func isLuaIdentifier(s string) bool {
	if s == "" || luaKeywords[s] {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

var luaKeywords = map[string]bool{
	"and": true, "break": true, "do": true, "else": true, "elseif": true,
	"end": true, "false": true, "for": true, "function": true, "goto": true,
	"if": true, "in": true, "local": true, "nil": true, "not": true,
	"or": true, "repeat": true, "return": true, "then": true, "true": true,
	"until": true, "while": true,
}
