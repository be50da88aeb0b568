package cgen

// Decl declares a local variable, optionally initialized.
type Decl struct {
	Type string
	Name string
	Init Expr
}

func (d Decl) render(p *printer) {
	s := declare(d.Type, d.Name)
	if d.Init != nil {
		s += " = " + d.Init.format(p.col()+len(s)+3)
	}
	p.line(s + ";")
}

// Assign is "lhs = rhs;".
type Assign struct {
	LHS string
	RHS Expr
}

func (a Assign) render(p *printer) {
	head := a.LHS + " = "
	p.line(head + a.RHS.format(p.col()+len(head)) + ";")
}

// Do evaluates an expression as a statement, "x;".
type Do struct {
	X Expr
}

func (d Do) render(p *printer) {
	p.line(d.X.format(p.col()) + ";")
}

// Return is "return x;" or a bare "return;".
type Return struct {
	X Expr
}

func (r Return) render(p *printer) {
	if r.X == nil {
		p.line("return;")
		return
	}
	p.line("return " + r.X.format(p.col()+len("return ")) + ";")
}

// Break is "break;".
type Break struct{}

func (Break) render(p *printer) { p.line("break;") }

// If is a braced conditional with an optional else branch.
type If struct {
	Cond Expr
	Then []Node
	Else []Node
}

func (i If) render(p *printer) {
	p.line("if (" + i.Cond.format(p.col()+len("if (")) + ") {")
	p.block(i.Then)
	if len(i.Else) > 0 {
		p.line("} else {")
		p.block(i.Else)
	}
	p.line("}")
}

// Case is one arm of a Switch. Its body is braced so it can declare locals.
type Case struct {
	Label string
	Body  []Node
}

// Switch is a multi-way branch with an explicit default arm.
type Switch struct {
	Tag     Expr
	Cases   []Case
	Default []Node
}

func (s Switch) render(p *printer) {
	p.line("switch (" + s.Tag.format(p.col()+len("switch (")) + ") {")
	p.depth++
	for _, c := range s.Cases {
		p.line("case " + c.Label + ": {")
		p.block(c.Body)
		p.line("}")
	}
	p.line("default:")
	p.block(s.Default)
	p.depth--
	p.line("}")
}
