package cgen

// DocParam documents one "@name:" entry.
type DocParam struct {
	Name string
	Text string
}

// DocTag is a trailing "Name: value" paragraph such as "Returns:" or "Since:".
type DocTag struct {
	Name  string
	Value string
}

// Doc is a gtk-doc comment block:
//
//	/**
//	 * Header
//	 * @param: text
//	 *
//	 * paragraph
//	 *
//	 * Since: 1.0
//	 */
type Doc struct {
	// Header is the first line, usually "symbol:" (see DocFor).
	Header string
	Params []DocParam
	// Body holds paragraphs; each paragraph is a list of lines.
	Body [][]string
	Tags []DocTag
}

// DocFor returns a Doc whose header documents symbol.
func DocFor(symbol string) Doc {
	return Doc{Header: symbol + ":"}
}

// Para builds a paragraph from lines.
func Para(lines ...string) []string {
	return lines
}

// Since returns the standard version tag.
func Since(version string) DocTag {
	return DocTag{Name: "Since", Value: version}
}

func (d Doc) render(p *printer) {
	p.line("/**")
	p.line(" * " + d.Header)
	for _, prm := range d.Params {
		p.line(" * @" + prm.Name + ": " + prm.Text)
	}
	for _, para := range d.Body {
		p.line(" *")
		for _, l := range para {
			p.line(commentLine(l))
		}
	}
	for _, t := range d.Tags {
		p.line(" *")
		s := t.Name + ":"
		if t.Value != "" {
			s += " " + t.Value
		}
		p.line(" * " + s)
	}
	p.line(" */")
}

func commentLine(s string) string {
	if s == "" {
		return " *"
	}
	return " * " + s
}
