package cgen

// Section is one gtk-doc sections-file entry:
//
//	<SECTION>
//	<FILE>file</FILE>
//	<TITLE>title</TITLE>
//	symbol...
//	<SUBSECTION Standard>
//	standard...
//	</SECTION>
type Section struct {
	File     string
	Title    string
	Public   []string
	Standard []string
}

func (s Section) render(p *printer) {
	p.raw("<SECTION>")
	p.raw("<FILE>" + s.File + "</FILE>")
	p.raw("<TITLE>" + s.Title + "</TITLE>")
	for _, sym := range s.Public {
		p.raw(sym)
	}
	if len(s.Standard) > 0 {
		p.raw("<SUBSECTION Standard>")
		for _, sym := range s.Standard {
			p.raw(sym)
		}
	}
	p.raw("</SECTION>")
}
