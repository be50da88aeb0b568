package clientgen

import "github.com/freedesktop/libqmi/pkg/cgen"

// sections returns the gtk-doc index block of the client.
func (g *Generator) sections() []cgen.Node {
	n := g.names
	return []cgen.Node{
		cgen.Section{
			File:   n.hyphened,
			Title:  n.camel,
			Public: []string{n.camel},
			Standard: []string{
				n.classCamel(),
				n.typeMacro(),
				n.castMacro(),
				n.classMacro(),
				n.isMacro(),
				n.isClassMacro(),
				n.getClassMacro(),
				n.getType(),
			},
		},
		cgen.Blank{},
	}
}
