package cgen

import (
	"bytes"
	"io"
	"strings"
)

// indentUnit is one block level.
const indentUnit = "    "

// Node is anything that renders into a C artifact, at file scope or inside
// a function body.
type Node interface {
	render(p *printer)
}

// File is an ordered list of nodes.
type File struct {
	nodes []Node
}

// NewFile returns an empty file.
func NewFile() *File {
	return &File{}
}

// Add appends nodes to the file.
func (f *File) Add(nodes ...Node) {
	f.nodes = append(f.nodes, nodes...)
}

// Len returns the number of top-level nodes.
func (f *File) Len() int {
	return len(f.nodes)
}

// Bytes renders the file.
func (f *File) Bytes() []byte {
	p := &printer{}
	for _, n := range f.nodes {
		n.render(p)
	}
	return p.buf.Bytes()
}

// String renders the file.
func (f *File) String() string {
	return string(f.Bytes())
}

// WriteTo renders the file into w.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(f.Bytes())
	return int64(n), err
}

// Render renders nodes on their own, at file scope.
func Render(nodes ...Node) string {
	f := NewFile()
	f.Add(nodes...)
	return f.String()
}

type printer struct {
	buf   bytes.Buffer
	depth int
}

func (p *printer) prefix() string {
	return strings.Repeat(indentUnit, p.depth)
}

// col is the column text starts at on the current indentation level.
func (p *printer) col() int {
	return len(indentUnit) * p.depth
}

// line writes s at the current indentation. Continuation lines inside s
// carry their own padding. An empty s produces an empty line.
func (p *printer) line(s string) {
	if s != "" {
		p.buf.WriteString(p.prefix())
		p.buf.WriteString(s)
	}
	p.buf.WriteByte('\n')
}

// raw writes s without indentation.
func (p *printer) raw(s string) {
	p.buf.WriteString(s)
	p.buf.WriteByte('\n')
}

func (p *printer) block(nodes []Node) {
	p.depth++
	for _, n := range nodes {
		n.render(p)
	}
	p.depth--
}

// declare joins a C type and a name, dropping the space after pointer types.
func declare(typ, name string) string {
	switch {
	case name == "":
		return typ
	case strings.HasSuffix(typ, "*"):
		return typ + name
	default:
		return typ + " " + name
	}
}
