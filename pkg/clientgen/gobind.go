package clientgen

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/freedesktop/libqmi/pkg/model"
	"github.com/freedesktop/libqmi/pkg/naming"
)

// RuntimeImport is the package generated registries refer to.
const RuntimeImport = "github.com/freedesktop/libqmi/pkg/qmiclient"

// GenerateGoRegistry returns a formatted Go file for package pkg declaring
// the message id constants and the qmiclient.ServiceSpec of the generator's
// client. filename is only used by the formatter.
func (g *Generator) GenerateGoRegistry(filename, pkg string) ([]byte, error) {
	if pkg == "" {
		return nil, fmt.Errorf("go registry: missing package name")
	}

	methods := g.messages.Methods()
	indications := g.messages.Indications()

	var b strings.Builder
	b.WriteString("// Code generated by qmi-codegen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	fmt.Fprintf(&b, "import %q\n\n", RuntimeImport)

	if len(methods) > 0 {
		fmt.Fprintf(&b, "// Request message ids of the %s service.\n", g.names.service)
		b.WriteString("const (\n")
		for _, m := range methods {
			fmt.Fprintf(&b, "\t%s uint16 = 0x%04X\n", goConstName(m), m.ID)
		}
		b.WriteString(")\n\n")
	}
	if len(indications) > 0 {
		fmt.Fprintf(&b, "// Indication message ids of the %s service.\n", g.names.service)
		b.WriteString("const (\n")
		for _, m := range indications {
			fmt.Fprintf(&b, "\t%s uint16 = 0x%04X\n", goConstName(m), m.ID)
		}
		b.WriteString(")\n\n")
	}

	fmt.Fprintf(&b, "// Service describes the %s bindings.\n", g.client.Name)
	b.WriteString("var Service = qmiclient.ServiceSpec{\n")
	fmt.Fprintf(&b, "\tService: %q,\n", g.names.service)
	fmt.Fprintf(&b, "\tClient: %q,\n", g.client.Name)
	fmt.Fprintf(&b, "\tSince: %q,\n", g.client.Since)

	if len(methods) > 0 {
		b.WriteString("\tMessages: []qmiclient.MessageSpec{\n")
		for _, m := range methods {
			vendor, err := parseVendor(m)
			if err != nil {
				return nil, err
			}
			fmt.Fprintf(&b, "\t\t{Name: %q, ID: %s, Vendor: 0x%04X, HasVendor: %t, Abort: %t, HasInput: %t, HasOutput: %t, Since: %q},\n",
				m.Name, goConstName(m), vendor, m.HasVendor(), m.Abort, m.Input.HasPayload(), m.Output.HasPayload(), m.Since)
		}
		b.WriteString("\t},\n")
	}
	if len(indications) > 0 {
		b.WriteString("\tIndications: []qmiclient.IndicationSpec{\n")
		for _, m := range indications {
			fmt.Fprintf(&b, "\t\t{Name: %q, Signal: %q, ID: %s, HasOutput: %t, Since: %q},\n",
				m.Name, naming.Dashed(m.Name), goConstName(m), m.Output.HasPayload(), m.Since)
		}
		b.WriteString("\t},\n")
	}
	b.WriteString("}\n")

	out, err := imports.Process(filename, []byte(b.String()), nil)
	if err != nil {
		return nil, fmt.Errorf("go registry %s: %w", filename, err)
	}
	return out, nil
}

// goConstName turns "QMI Message DMS Get IDs" into "MessageDmsGetIds".
func goConstName(m model.Message) string {
	return naming.CamelCase(naming.StripLibraryPrefix(m.FullName))
}

func parseVendor(m model.Message) (uint64, error) {
	if !m.HasVendor() {
		return 0, nil
	}
	v, err := strconv.ParseUint(m.Vendor, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("message %q: vendor %q: %w", m.Name, m.Vendor, err)
	}
	return v, nil
}
