package cgen

import (
	"strings"
)

// Blank is an empty line.
type Blank struct{}

func (Blank) render(p *printer) { p.line("") }

// Line is a single line of text written verbatim at the current indentation.
type Line string

func (l Line) render(p *printer) { p.line(string(l)) }

// Comment is a one-line C comment.
type Comment string

func (c Comment) render(p *printer) { p.line("/* " + string(c) + " */") }

// Separator is the banner that opens each generated section of a file:
// an empty line, a rule, and "/* KIND: name */".
type Separator struct {
	Kind string
	Name string
}

func (s Separator) render(p *printer) {
	p.line("")
	p.line("/" + strings.Repeat("*", 77) + "/")
	p.line("/* " + s.Kind + ": " + s.Name + " */")
}

// Define is one preprocessor macro.
type Define struct {
	// Name includes the parameter list for function-like macros, e.g. "QMI_IS_CLIENT_DMS(obj)".
	Name  string
	Value string
}

// Defines is a block of macros whose values are aligned one column past the
// longest name.
type Defines []Define

func (d Defines) render(p *printer) {
	width := 0
	for _, def := range d {
		width = max(width, len(def.Name))
	}
	for _, def := range d {
		p.line("#define " + def.Name + strings.Repeat(" ", width-len(def.Name)+1) + def.Value)
	}
}

// Typedef declares "typedef struct Tag Name;".
type Typedef struct {
	Tag  string
	Name string
}

func (t Typedef) render(p *printer) {
	p.line("typedef struct " + t.Tag + " " + t.Name + ";")
}

// Param is a function parameter or struct member.
type Param struct {
	Type string
	Name string
}

func (prm Param) String() string {
	return declare(prm.Type, prm.Name)
}

// Struct defines "struct Tag { ... };".
type Struct struct {
	Tag string
	// Private marks every member with the gtk-doc private annotation.
	Private bool
	Members []Param
}

func (s Struct) render(p *printer) {
	p.line("struct " + s.Tag + " {")
	p.depth++
	if s.Private {
		p.line("/*< private >*/")
	}
	for _, m := range s.Members {
		p.line(m.String() + ";")
	}
	p.depth--
	p.line("};")
}

// Enum is an anonymous enumeration. The last value has no trailing comma.
type Enum []string

func (e Enum) render(p *printer) {
	p.line("enum {")
	p.depth++
	for i, v := range e {
		if i < len(e)-1 {
			v += ","
		}
		p.line(v)
	}
	p.depth--
	p.line("};")
}

// Var defines a variable at file scope.
type Var struct {
	Static bool
	Type   string
	Name   string
	Init   Expr
}

func (v Var) render(p *printer) {
	s := declare(v.Type, v.Name)
	if v.Static {
		s = "static " + s
	}
	if v.Init != nil {
		s += " = " + v.Init.format(p.col()+len(s)+3)
	}
	p.line(s + ";")
}

// Layout selects how a parameter list is laid out.
type Layout uint8

const (
	// Inline keeps every parameter on the name line: "name (A a, B b)".
	Inline Layout = iota
	// Aligned puts each parameter after the first on its own line, aligned
	// under the first one.
	Aligned
	// Wrapped opens the list on the name line and indents one parameter per
	// line: "name (\n    A a,\n    B b)".
	Wrapped
)

func formatParams(name string, params []Param, layout Layout) string {
	if len(params) == 0 {
		return name + " (void)"
	}
	parts := make([]string, len(params))
	for i, prm := range params {
		parts[i] = prm.String()
	}
	switch layout {
	case Aligned:
		pad := strings.Repeat(" ", len(name)+2)
		return name + " (" + strings.Join(parts, ",\n"+pad) + ")"
	case Wrapped:
		return name + " (\n" + indentUnit + strings.Join(parts, ",\n"+indentUnit) + ")"
	default:
		return name + " (" + strings.Join(parts, ", ") + ")"
	}
}

// Prototype declares a function: "ret name (params);".
type Prototype struct {
	Return string
	Name   string
	Params []Param
	Layout Layout
}

func (f Prototype) render(p *printer) {
	p.line(declare(f.Return, formatParams(f.Name, f.Params, f.Layout)) + ";")
}

// Func defines a function. The return type goes on its own line, as in
// GNOME C style.
type Func struct {
	Static bool
	Return string
	Name   string
	Params []Param
	Layout Layout
	Body   []Node
}

func (f Func) render(p *printer) {
	ret := f.Return
	if f.Static {
		ret = "static " + ret
	}
	p.line(strings.TrimSuffix(ret, " "))
	p.line(formatParams(f.Name, f.Params, f.Layout))
	p.line("{")
	p.block(f.Body)
	p.line("}")
}
