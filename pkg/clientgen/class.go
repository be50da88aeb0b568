package clientgen

import (
	"github.com/freedesktop/libqmi/pkg/cgen"
	"github.com/freedesktop/libqmi/pkg/model"
)

// classHeader returns the declarations of the client GObject: type macros,
// typedefs, the instance and class structs and the get_type prototype.
func (g *Generator) classHeader() []cgen.Node {
	n := g.names
	return []cgen.Node{
		cgen.Blank{},
		cgen.Defines{
			{Name: n.typeMacro(), Value: "(" + n.getType() + " ())"},
			{Name: n.castMacro() + "(obj)", Value: "(G_TYPE_CHECK_INSTANCE_CAST ((obj), " + n.typeMacro() + ", " + n.camel + "))"},
			{Name: n.classMacro() + "(klass)", Value: "(G_TYPE_CHECK_CLASS_CAST ((klass),  " + n.typeMacro() + ", " + n.classCamel() + "))"},
			{Name: n.isMacro() + "(obj)", Value: "(G_TYPE_CHECK_INSTANCE_TYPE ((obj), " + n.typeMacro() + "))"},
			{Name: n.isClassMacro() + "(klass)", Value: "(G_TYPE_CHECK_CLASS_TYPE ((klass),  " + n.typeMacro() + "))"},
			{Name: n.getClassMacro() + "(obj)", Value: "(G_TYPE_INSTANCE_GET_CLASS ((obj),  " + n.typeMacro() + ", " + n.classCamel() + "))"},
		},
		cgen.Blank{},
		cgen.Typedef{Tag: "_" + n.camel, Name: n.camel},
		cgen.Typedef{Tag: "_" + n.classCamel(), Name: n.classCamel()},
		cgen.Blank{},
		cgen.Doc{
			Header: n.camel + ":",
			Body: [][]string{cgen.Para(
				"The #"+n.camel+" structure contains private data and should only be accessed",
				"using the provided API.",
			)},
			Tags: []cgen.DocTag{cgen.Since(g.client.Since)},
		},
		cgen.Struct{
			Tag:     "_" + n.camel,
			Private: true,
			Members: []cgen.Param{
				{Type: parentType, Name: "parent"},
				{Type: "gpointer", Name: "priv_unused"},
			},
		},
		cgen.Blank{},
		cgen.Struct{
			Tag:     "_" + n.classCamel(),
			Private: true,
			Members: []cgen.Param{{Type: parentClassType, Name: "parent"}},
		},
		cgen.Blank{},
		cgen.Prototype{Return: "GType", Name: n.getType()},
		cgen.Blank{},
	}
}

// classSource returns the type registration, the indication machinery and
// the init/class_init pair.
func (g *Generator) classSource() []cgen.Node {
	n := g.names
	var nodes []cgen.Node

	if g.hasSection() {
		nodes = append(nodes,
			cgen.Blank{},
			cgen.Doc{
				Header: "SECTION: " + n.hyphened,
				Params: []cgen.DocParam{
					{Name: "title", Text: n.camel},
					{Name: "short_description", Text: "#QmiClient for the " + n.service + " service."},
				},
				Body: [][]string{cgen.Para("#QmiClient which handles operations in the " + n.service + " service.")},
			},
		)
	}
	nodes = append(nodes,
		cgen.Blank{},
		cgen.Do{X: cgen.Invoke("G_DEFINE_TYPE", cgen.Lit(n.camel), cgen.Lit(n.underscore), cgen.Lit(parentTypeMacro))},
	)

	indications := g.messages.Indications()
	if len(indications) > 0 {
		signals := make(cgen.Enum, 0, len(indications)+1)
		for _, m := range indications {
			signals = append(signals, newMessageNames(n, m).signalID)
		}
		signals = append(signals, "SIGNAL_LAST")

		nodes = append(nodes,
			cgen.Blank{},
			signals,
			cgen.Blank{},
			cgen.Var{Static: true, Type: "guint", Name: "signals[SIGNAL_LAST]", Init: cgen.Lit("{ 0 }")},
			cgen.Blank{},
			g.processIndication(indications),
		)
	}

	nodes = append(nodes,
		cgen.Blank{},
		cgen.Func{
			Static: true,
			Return: "void",
			Name:   n.underscore + "_init",
			Params: []cgen.Param{{Type: n.camel + " *", Name: "self"}},
		},
		cgen.Blank{},
		g.classInit(indications),
	)
	return nodes
}

// processIndication returns the dispatcher mapping wire message ids to
// signal emissions.
func (g *Generator) processIndication(indications []model.Message) cgen.Node {
	sw := cgen.Switch{
		Tag:     cgen.Invoke("qmi_message_get_message_id", cgen.Lit("message")),
		Default: []cgen.Node{cgen.Break{}},
	}
	for _, m := range indications {
		sw.Cases = append(sw.Cases, cgen.Case{
			Label: m.IDConstant,
			Body:  g.indicationArm(m),
		})
	}

	return cgen.Func{
		Static: true,
		Return: "void",
		Name:   "process_indication",
		Params: []cgen.Param{
			{Type: parentType + " *", Name: "self"},
			{Type: "QmiMessage *", Name: "message"},
		},
		Layout: cgen.Aligned,
		Body:   []cgen.Node{sw},
	}
}

func (g *Generator) indicationArm(m model.Message) []cgen.Node {
	mn := newMessageNames(g.names, m)
	signal := cgen.Lit("signals[" + mn.signalID + "]")

	switch m.Output.Payload().(type) {
	case model.Fields:
		return []cgen.Node{
			cgen.Decl{Type: mn.outputCamel + " *", Name: "output"},
			cgen.Decl{Type: "GError *", Name: "error", Init: cgen.Lit("NULL")},
			cgen.Blank{},
			cgen.Comment("Parse indication"),
			cgen.Assign{LHS: "output", RHS: cgen.Invoke("__"+mn.fullUnderscore+"_indication_parse", cgen.Lit("message"), cgen.Lit("&error"))},
			cgen.If{
				Cond: cgen.Not{X: cgen.Lit("output")},
				Then: []cgen.Node{
					cgen.Do{X: cgen.WrapCall("g_warning",
						cgen.Str("Couldn't parse '"+m.Name+"' indication: %s"),
						cgen.Lit(`error ? error->message : "Unknown error"`),
					)},
					cgen.If{
						Cond: cgen.Lit("error"),
						Then: []cgen.Node{cgen.Do{X: cgen.Invoke("g_error_free", cgen.Lit("error"))}},
					},
				},
				Else: []cgen.Node{
					cgen.Do{X: cgen.WrapCall("g_signal_emit",
						cgen.Lit("self"), signal, cgen.Int(0), cgen.Lit("output"),
					)},
					cgen.Do{X: cgen.Invoke(mn.outputUnderscore+"_unref", cgen.Lit("output"))},
				},
			},
			cgen.Break{},
		}
	default:
		return []cgen.Node{
			cgen.Do{X: cgen.WrapCall("g_signal_emit",
				cgen.Lit("self"), signal, cgen.Int(0), cgen.Lit("NULL"),
			)},
			cgen.Break{},
		}
	}
}

// classInit returns the class initializer: it installs process_indication
// and registers one signal per indication.
func (g *Generator) classInit(indications []model.Message) cgen.Node {
	n := g.names
	f := cgen.Func{
		Static: true,
		Return: "void",
		Name:   n.underscore + "_class_init",
		Params: []cgen.Param{{Type: n.classCamel() + " *", Name: "klass"}},
	}
	if len(indications) == 0 {
		return f
	}

	f.Body = []cgen.Node{
		cgen.Decl{Type: parentClassType + " *", Name: "client_class", Init: cgen.Invoke("QMI_CLIENT_CLASS", cgen.Lit("klass"))},
		cgen.Blank{},
		cgen.Assign{LHS: "client_class->process_indication", RHS: cgen.Lit("process_indication")},
	}
	for _, m := range indications {
		f.Body = append(f.Body, cgen.Blank{})
		f.Body = append(f.Body, g.signalRegistration(m)...)
	}
	return f
}

func (g *Generator) signalRegistration(m model.Message) []cgen.Node {
	n := g.names
	mn := newMessageNames(n, m)

	args := []cgen.Expr{
		cgen.Str(mn.signalName),
		cgen.Invoke("G_OBJECT_CLASS_TYPE", cgen.Invoke("G_OBJECT_CLASS", cgen.Lit("klass"))),
		cgen.Lit("G_SIGNAL_RUN_LAST"),
		cgen.Int(0),
		cgen.Lit("NULL"),
		cgen.Lit("NULL"),
		cgen.Lit("NULL"),
		cgen.Lit("G_TYPE_NONE"),
	}

	doc := cgen.Doc{
		Header: n.camel + "::" + mn.signalName + ":",
		Params: []cgen.DocParam{{Name: "object", Text: "A #" + n.camel + "."}},
		Tags:   []cgen.DocTag{cgen.Since(m.Since)},
	}

	switch m.Output.Payload().(type) {
	case model.Fields:
		args = append(args, cgen.Int(1), cgen.Lit(mn.outputTypeMacro))
		link := `<link linkend="libqmi-glib-` + n.service + "-" + mn.linkName + `-indication.top_of_page">` + m.Name + "</link>"
		doc.Params = append(doc.Params, cgen.DocParam{Name: "output", Text: "A #" + mn.outputCamel + "."})
		doc.Body = [][]string{cgen.Para("The ::" + mn.signalName + " signal gets emitted when a '" + link + "' indication is received.")}
	default:
		args = append(args, cgen.Int(0))
		doc.Body = [][]string{cgen.Para("The ::" + mn.signalName + " signal gets emitted when a '" + m.Name + "' indication is received.")}
	}

	return []cgen.Node{doc, cgen.Assign{
		LHS: "signals[" + mn.signalID + "]",
		RHS: cgen.WrapCall("g_signal_new", args...),
	}}
}
