package clientgen

import (
	"github.com/freedesktop/libqmi/pkg/cgen"
	"github.com/freedesktop/libqmi/pkg/model"
)

// inputParam returns the call's input parameter and the expression passed
// to the request builder.
func inputParam(m model.Message, mn messageNames) (cgen.Param, cgen.DocParam, cgen.Expr) {
	switch m.Input.Payload().(type) {
	case model.Fields:
		return cgen.Param{Type: mn.inputCamel + " *", Name: "input"},
			cgen.DocParam{Name: "input", Text: "a #" + mn.inputCamel + "."},
			cgen.Lit("input")
	default:
		return cgen.Param{Type: "gpointer", Name: "unused"},
			cgen.DocParam{Name: "unused", Text: "%NULL. This message doesn't have any input bundle."},
			cgen.Lit("NULL")
	}
}

func (g *Generator) callParams(m model.Message, mn messageNames) []cgen.Param {
	in, _, _ := inputParam(m, mn)
	return []cgen.Param{
		{Type: g.names.camel + " *", Name: "self"},
		in,
		{Type: "guint", Name: "timeout"},
		{Type: "GCancellable *", Name: "cancellable"},
		{Type: "GAsyncReadyCallback", Name: "callback"},
		{Type: "gpointer", Name: "user_data"},
	}
}

func (g *Generator) finishParams() []cgen.Param {
	return []cgen.Param{
		{Type: g.names.camel + " *", Name: "self"},
		{Type: "GAsyncResult *", Name: "res"},
		{Type: "GError **", Name: "error"},
	}
}

// methodHeader returns the documented call and finish declarations.
func (g *Generator) methodHeader(m model.Message) []cgen.Node {
	mn := newMessageNames(g.names, m)
	_, inDoc, _ := inputParam(m, mn)

	return []cgen.Node{
		cgen.Blank{},
		cgen.Doc{
			Header: mn.method + ":",
			Params: []cgen.DocParam{
				{Name: "self", Text: "a #" + g.names.camel + "."},
				inDoc,
				{Name: "timeout", Text: "maximum time to wait for the method to complete, in seconds."},
				{Name: "cancellable", Text: "a #GCancellable or %NULL."},
				{Name: "callback", Text: "a #GAsyncReadyCallback to call when the request is satisfied."},
				{Name: "user_data", Text: "user data to pass to @callback."},
			},
			Body: [][]string{cgen.Para(
				"Asynchronously sends a "+m.Name+" request to the device.",
				"",
				"When the operation is finished, @callback will be invoked in the thread-default main loop of the thread you are calling this method from.",
				"",
				"You can then call "+mn.finish+"() to get the result of the operation.",
			)},
			Tags: []cgen.DocTag{cgen.Since(m.Since)},
		},
		cgen.Prototype{
			Return: "void",
			Name:   mn.method,
			Params: g.callParams(m, mn),
			Layout: cgen.Wrapped,
		},
		cgen.Blank{},
		cgen.Doc{
			Header: mn.finish + ":",
			Params: []cgen.DocParam{
				{Name: "self", Text: "a #" + g.names.camel + "."},
				{Name: "res", Text: "the #GAsyncResult obtained from the #GAsyncReadyCallback passed to " + mn.method + "()."},
				{Name: "error", Text: "Return location for error or %NULL."},
			},
			Body: [][]string{cgen.Para("Finishes an async operation started with " + mn.method + "().")},
			Tags: []cgen.DocTag{
				{Name: "Returns", Value: "a #" + mn.outputCamel + ", or %NULL if @error is set. The returned value should be freed with " + mn.outputUnderscore + "_unref()."},
				cgen.Since(m.Since),
			},
		},
		cgen.Prototype{
			Return: mn.outputCamel + " *",
			Name:   mn.finish,
			Params: g.finishParams(),
			Layout: cgen.Wrapped,
		},
	}
}

// methodSource returns the finish function, the optional abort completion
// handler, the reply handler and the call entry point.
func (g *Generator) methodSource(m model.Message) []cgen.Node {
	mn := newMessageNames(g.names, m)

	nodes := []cgen.Node{cgen.Blank{}, g.finishFunc(mn)}
	if m.Abort {
		nodes = append(nodes, cgen.Blank{}, g.abortReadyFunc(m, mn))
	}
	return append(nodes,
		cgen.Blank{},
		g.readyFunc(m, mn),
		cgen.Blank{},
		g.callFunc(m, mn),
	)
}

func (g *Generator) finishFunc(mn messageNames) cgen.Node {
	return cgen.Func{
		Return: mn.outputCamel + " *",
		Name:   mn.finish,
		Params: g.finishParams(),
		Layout: cgen.Wrapped,
		Body: []cgen.Node{
			cgen.Return{X: cgen.Invoke("g_task_propagate_pointer",
				cgen.Invoke("G_TASK", cgen.Lit("res")), cgen.Lit("error"))},
		},
	}
}

// abortReadyFunc returns the completion handler of a synthesized abort. Its
// outcome is only logged.
func (g *Generator) abortReadyFunc(m model.Message, mn messageNames) cgen.Node {
	n := g.names
	return cgen.Func{
		Static: true,
		Return: "void",
		Name:   mn.abortReady,
		Params: []cgen.Param{
			{Type: "QmiDevice *", Name: "device"},
			{Type: "GAsyncResult *", Name: "res"},
		},
		Layout: cgen.Aligned,
		Body: []cgen.Node{
			cgen.Decl{Type: "GError *", Name: "error", Init: cgen.Lit("NULL")},
			cgen.Decl{Type: "QmiMessage *", Name: "reply"},
			cgen.Decl{Type: n.abortOutputCamel() + " *", Name: "output"},
			cgen.Blank{},
			cgen.Assign{LHS: "reply", RHS: cgen.Invoke("qmi_device_command_finish",
				cgen.Lit("device"), cgen.Lit("res"), cgen.Lit("&error"))},
			cgen.If{
				Cond: cgen.Lit("reply"),
				Then: []cgen.Node{
					cgen.Assign{LHS: "output", RHS: cgen.Invoke("__"+n.abortPrefix()+"_response_parse",
						cgen.Lit("reply"), cgen.Lit("&error"))},
					cgen.If{
						Cond: cgen.Lit("output"),
						Then: []cgen.Node{cgen.Do{X: cgen.Invoke(n.abortPrefix()+"_output_unref", cgen.Lit("output"))}},
					},
					cgen.Do{X: cgen.Invoke("qmi_message_unref", cgen.Lit("reply"))},
				},
			},
			cgen.Blank{},
			cgen.If{
				Cond: cgen.Lit("error"),
				Then: []cgen.Node{
					cgen.Do{X: cgen.WrapCall("g_debug",
						cgen.Str("Operation to abort '"+m.Name+"' failed: %s"),
						cgen.Lit("error->message"))},
					cgen.Do{X: cgen.Invoke("g_error_free", cgen.Lit("error"))},
				},
			},
		},
	}
}

func (g *Generator) readyFunc(m model.Message, mn messageNames) cgen.Node {
	var failure []cgen.Node
	if m.Abort {
		failure = append(failure, g.abortOnTimeout(mn), cgen.Blank{})
	}
	failure = append(failure,
		cgen.Do{X: cgen.Invoke("g_task_return_error", cgen.Lit("task"), cgen.Lit("error"))},
		cgen.Do{X: cgen.Invoke("g_object_unref", cgen.Lit("task"))},
		cgen.Return{},
	)

	return cgen.Func{
		Static: true,
		Return: "void",
		Name:   mn.ready,
		Params: []cgen.Param{
			{Type: "QmiDevice *", Name: "device"},
			{Type: "GAsyncResult *", Name: "res"},
			{Type: "GTask *", Name: "task"},
		},
		Layout: cgen.Aligned,
		Body: []cgen.Node{
			cgen.Decl{Type: "GError *", Name: "error", Init: cgen.Lit("NULL")},
			cgen.Decl{Type: "QmiMessage *", Name: "reply"},
			cgen.Decl{Type: mn.outputCamel + " *", Name: "output"},
			cgen.Blank{},
			cgen.Assign{LHS: "reply", RHS: cgen.Invoke("qmi_device_command_full_finish",
				cgen.Lit("device"), cgen.Lit("res"), cgen.Lit("&error"))},
			cgen.If{Cond: cgen.Not{X: cgen.Lit("reply")}, Then: failure},
			cgen.Blank{},
			cgen.Comment("Parse reply"),
			cgen.Assign{LHS: "output", RHS: cgen.Invoke("__"+mn.fullUnderscore+"_response_parse",
				cgen.Lit("reply"), cgen.Lit("&error"))},
			cgen.If{
				Cond: cgen.Not{X: cgen.Lit("output")},
				Then: []cgen.Node{cgen.Do{X: cgen.Invoke("g_task_return_error", cgen.Lit("task"), cgen.Lit("error"))}},
				Else: []cgen.Node{cgen.Do{X: cgen.WrapCall("g_task_return_pointer",
					cgen.Lit("task"),
					cgen.Lit("output"),
					cgen.Cast{Type: "GDestroyNotify", X: cgen.Lit(mn.outputUnderscore + "_unref")},
				)}},
			},
			cgen.Do{X: cgen.Invoke("g_object_unref", cgen.Lit("task"))},
			cgen.Do{X: cgen.Invoke("qmi_message_unref", cgen.Lit("reply"))},
		},
	}
}

// abortOnTimeout returns the block that sends a best-effort abort for the
// transaction stored as task data when the request timed out or the device
// reported it aborted.
func (g *Generator) abortOnTimeout(mn messageNames) cgen.Node {
	n := g.names
	self := cgen.Invoke("QMI_CLIENT", cgen.Lit("self"))
	return cgen.If{
		Cond: cgen.Or{
			cgen.Invoke("g_error_matches", cgen.Lit("error"), cgen.Lit("QMI_CORE_ERROR"), cgen.Lit("QMI_CORE_ERROR_TIMEOUT")),
			cgen.Invoke("g_error_matches", cgen.Lit("error"), cgen.Lit("QMI_PROTOCOL_ERROR"), cgen.Lit("QMI_PROTOCOL_ERROR_ABORTED")),
		},
		Then: []cgen.Node{
			cgen.Decl{Type: "QmiMessage *", Name: "abort"},
			cgen.Decl{Type: "GObject *", Name: "self"},
			cgen.Decl{Type: "guint16", Name: "transaction_id"},
			cgen.Decl{Type: n.abortInputCamel() + " *", Name: "input"},
			cgen.Blank{},
			cgen.Assign{LHS: "self", RHS: cgen.Invoke("g_task_get_source_object", cgen.Lit("task"))},
			cgen.Do{X: cgen.Invoke("g_assert", cgen.Lit("self != NULL"))},
			cgen.Blank{},
			cgen.Assign{LHS: "transaction_id", RHS: cgen.Cast{Type: "guint16", X: cgen.Invoke("GPOINTER_TO_UINT",
				cgen.Invoke("g_task_get_task_data", cgen.Lit("task")))}},
			cgen.Do{X: cgen.Invoke("g_assert", cgen.Lit("transaction_id != 0"))},
			cgen.Blank{},
			cgen.Assign{LHS: "input", RHS: cgen.Invoke(n.abortPrefix() + "_input_new")},
			cgen.Do{X: cgen.WrapCall(n.abortPrefix()+"_input_set_transaction_id",
				cgen.Lit("input"), cgen.Lit("transaction_id"), cgen.Lit("NULL"))},
			cgen.Assign{LHS: "abort", RHS: cgen.WrapCall("__"+n.abortPrefix()+"_request_create",
				cgen.Invoke("qmi_client_get_next_transaction_id", self),
				cgen.Invoke("qmi_client_get_cid", self),
				cgen.Lit("input"),
				cgen.Lit("NULL"),
			)},
			cgen.Do{X: cgen.Invoke("g_assert", cgen.Lit("abort != NULL"))},
			cgen.Do{X: cgen.WrapCall("qmi_device_command",
				cgen.Lit("device"),
				cgen.Lit("abort"),
				cgen.Int(abortTimeoutSecs),
				cgen.Lit("NULL"),
				cgen.Cast{Type: "GAsyncReadyCallback", X: cgen.Lit(mn.abortReady)},
				cgen.Lit("NULL"),
			)},
			cgen.Do{X: cgen.Invoke(n.abortPrefix()+"_input_unref", cgen.Lit("input"))},
			cgen.Do{X: cgen.Invoke("qmi_message_unref", cgen.Lit("abort"))},
		},
	}
}

// callFunc returns the public entry point: build the request, attach the
// vendor context when needed and hand it to the device.
func (g *Generator) callFunc(m model.Message, mn messageNames) cgen.Node {
	_, _, inArg := inputParam(m, mn)
	self := cgen.Invoke("QMI_CLIENT", cgen.Lit("self"))

	body := []cgen.Node{
		cgen.Decl{Type: "GTask *", Name: "task"},
		cgen.Decl{Type: "QmiMessage *", Name: "request"},
		cgen.Decl{Type: "GError *", Name: "error", Init: cgen.Lit("NULL")},
		cgen.Decl{Type: "guint16", Name: "transaction_id"},
	}
	context := cgen.Expr(cgen.Lit("NULL"))
	if m.HasVendor() {
		body = append(body, cgen.Decl{Type: "QmiMessageContext *", Name: "context"})
		context = cgen.Lit("context")
	}

	body = append(body,
		cgen.Blank{},
		cgen.Assign{LHS: "task", RHS: cgen.Invoke("g_task_new",
			cgen.Lit("self"), cgen.Lit("cancellable"), cgen.Lit("callback"), cgen.Lit("user_data"))},
		cgen.Blank{},
		cgen.Assign{LHS: "transaction_id", RHS: cgen.Invoke("qmi_client_get_next_transaction_id", self)},
		cgen.Blank{},
		cgen.Assign{LHS: "request", RHS: cgen.WrapCall("__"+mn.fullUnderscore+"_request_create",
			cgen.Lit("transaction_id"),
			cgen.Invoke("qmi_client_get_cid", self),
			inArg,
			cgen.Lit("&error"),
		)},
		cgen.If{
			Cond: cgen.Not{X: cgen.Lit("request")},
			Then: []cgen.Node{
				cgen.Do{X: cgen.Invoke("g_prefix_error", cgen.Lit("&error"), cgen.Str("Couldn't create request message: "))},
				cgen.Do{X: cgen.Invoke("g_task_return_error", cgen.Lit("task"), cgen.Lit("error"))},
				cgen.Do{X: cgen.Invoke("g_object_unref", cgen.Lit("task"))},
				cgen.Return{},
			},
		},
	)

	if m.Abort {
		body = append(body,
			cgen.Blank{},
			cgen.Do{X: cgen.Invoke("g_task_set_task_data",
				cgen.Lit("task"), cgen.Invoke("GUINT_TO_POINTER", cgen.Lit("transaction_id")), cgen.Lit("NULL"))},
		)
	}
	if m.HasVendor() {
		body = append(body,
			cgen.Blank{},
			cgen.Assign{LHS: "context", RHS: cgen.Invoke("qmi_message_context_new")},
			cgen.Do{X: cgen.Invoke("qmi_message_context_set_vendor_id", cgen.Lit("context"), cgen.Lit(m.Vendor))},
		)
	}

	body = append(body,
		cgen.Blank{},
		cgen.Do{X: cgen.WrapCall("qmi_device_command_full",
			cgen.Invoke("QMI_DEVICE", cgen.Invoke("qmi_client_peek_device", self)),
			cgen.Lit("request"),
			context,
			cgen.Lit("timeout"),
			cgen.Lit("cancellable"),
			cgen.Cast{Type: "GAsyncReadyCallback", X: cgen.Lit(mn.ready)},
			cgen.Lit("task"),
		)},
		cgen.Do{X: cgen.Invoke("qmi_message_unref", cgen.Lit("request"))},
	)
	if m.HasVendor() {
		body = append(body, cgen.Do{X: cgen.Invoke("qmi_message_context_unref", cgen.Lit("context"))})
	}

	return cgen.Func{
		Return: "void",
		Name:   mn.method,
		Params: g.callParams(m, mn),
		Layout: cgen.Wrapped,
		Body:   body,
	}
}
