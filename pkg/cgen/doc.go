// Package cgen is a small intermediate representation for the C and gtk-doc
// artifacts written by the client generator.
//
// Generators build a File out of typed nodes (macros, typedefs, structs,
// doc comments, prototypes, functions, statements) and render it once:
//
//	f := cgen.NewFile()
//	f.Add(
//	    cgen.Typedef{Tag: "_QmiClientDms", Name: "QmiClientDms"},
//	    cgen.Blank{},
//	    cgen.Prototype{Return: "GType", Name: "qmi_client_dms_get_type"},
//	)
//	_, err := f.WriteTo(w)
//
// Rendering is deterministic: the same tree always produces the same bytes.
// Indentation is four spaces per block level, wrapped call arguments are
// aligned under the first argument, and doc comments follow gtk-doc layout.
package cgen
