package cgen

import (
	"strconv"
	"strings"
)

// Expr is a C expression. format renders it assuming it starts at column col,
// so wrapped forms can align continuation lines.
type Expr interface {
	format(col int) string
}

// Lit is an expression written verbatim: identifiers, constants, NULL.
type Lit string

func (l Lit) format(int) string { return string(l) }

// Str is a C string literal.
type Str string

func (s Str) format(int) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range string(s) {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Call is a function or macro invocation, "func (a, b)". With Wrap set every
// argument after the first goes on its own line, aligned under the first.
type Call struct {
	Func string
	Args []Expr
	Wrap bool
}

// Invoke builds an inline call.
func Invoke(fn string, args ...Expr) Call {
	return Call{Func: fn, Args: args}
}

// WrapCall builds a call with one argument per line.
func WrapCall(fn string, args ...Expr) Call {
	return Call{Func: fn, Args: args, Wrap: true}
}

func (c Call) format(col int) string {
	if len(c.Args) == 0 {
		return c.Func + " ()"
	}

	open := c.Func + " ("
	argCol := col + len(open)
	cur := argCol

	var b strings.Builder
	b.WriteString(open)
	for i, a := range c.Args {
		if i > 0 {
			if c.Wrap {
				b.WriteString(",\n")
				b.WriteString(strings.Repeat(" ", argCol))
				cur = argCol
			} else {
				b.WriteString(", ")
				cur += 2
			}
		}
		s := a.format(cur)
		b.WriteString(s)
		cur = advance(cur, s)
	}
	b.WriteByte(')')
	return b.String()
}

// advance returns the column reached after writing s from column col.
func advance(col int, s string) int {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return len(s) - i - 1
	}
	return col + len(s)
}

// Or joins conditions with "||", one per line, aligned at the first.
type Or []Expr

func (o Or) format(col int) string {
	parts := make([]string, len(o))
	for i, e := range o {
		parts[i] = e.format(col)
	}
	return strings.Join(parts, " ||\n"+strings.Repeat(" ", col))
}

// Not negates an expression: "!x".
type Not struct {
	X Expr
}

func (n Not) format(col int) string { return "!" + n.X.format(col+1) }

// Cast is a C cast: "(type) x".
type Cast struct {
	Type string
	X    Expr
}

func (c Cast) format(col int) string {
	head := "(" + c.Type + ") "
	return head + c.X.format(col+len(head))
}

// Int is an integer literal.
type Int int

func (i Int) format(int) string { return strconv.Itoa(int(i)) }
