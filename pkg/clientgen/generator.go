package clientgen

import (
	"fmt"
	"io"

	"github.com/freedesktop/libqmi/pkg/cgen"
	"github.com/freedesktop/libqmi/pkg/model"
)

// Generator emits the bindings of one client.
type Generator struct {
	client   model.Client
	messages *model.MessageList
	names    clientNames
}

// New returns a generator for client and its messages. It fails with
// model.ErrMissingClient or model.ErrMissingService before anything can be
// emitted. A nil message list is treated as empty.
func New(client model.Client, messages *model.MessageList) (*Generator, error) {
	if err := client.Validate(); err != nil {
		return nil, err
	}
	if messages == nil {
		messages, _ = model.NewMessageList()
	}
	return &Generator{
		client:   client,
		messages: messages,
		names:    newClientNames(client),
	}, nil
}

// Client returns the client the generator was built for.
func (g *Generator) Client() model.Client {
	return g.client
}

// hasSection reports whether the source gets a SECTION: block. The
// bootstrap service CTL has none.
func (g *Generator) hasSection() bool {
	return !g.client.Service.IsControl()
}

// Header returns the declaration file contents.
func (g *Generator) Header() *cgen.File {
	f := cgen.NewFile()
	f.Add(cgen.Separator{Kind: "CLIENT", Name: g.client.Name})
	f.Add(g.classHeader()...)
	for _, m := range g.messages.Methods() {
		f.Add(g.methodHeader(m)...)
	}
	return f
}

// Source returns the definition file contents.
func (g *Generator) Source() *cgen.File {
	f := cgen.NewFile()
	f.Add(cgen.Separator{Kind: "CLIENT", Name: g.client.Name})
	f.Add(g.classSource()...)
	for _, m := range g.messages.Methods() {
		f.Add(g.methodSource(m)...)
	}
	return f
}

// Sections returns the documentation index contents.
func (g *Generator) Sections() *cgen.File {
	f := cgen.NewFile()
	f.Add(g.sections()...)
	return f
}

// Emit writes the declarations to hfile and the definitions to cfile.
func (g *Generator) Emit(hfile, cfile io.Writer) error {
	if _, err := g.Header().WriteTo(hfile); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := g.Source().WriteTo(cfile); err != nil {
		return fmt.Errorf("write source: %w", err)
	}
	return nil
}

// EmitSections writes the documentation index block to sfile.
func (g *Generator) EmitSections(sfile io.Writer) error {
	if _, err := g.Sections().WriteTo(sfile); err != nil {
		return fmt.Errorf("write sections: %w", err)
	}
	return nil
}
