// Package clientgen generates the service-specific QmiClient GObject
// bindings from a message model.
//
// For one model.Client and its model.MessageList the generator produces three
// artifacts:
//
//   - a declaration stream (.h): type macros, instance and class structs, the
//     get_type declaration, and one documented async call/finish pair per
//     request message;
//   - a definition stream (.c): type registration, the indication signal table
//     and process_indication dispatcher, init/class_init with one signal
//     registration per indication, and the call, ready, finish and optional
//     abort handlers of every request message;
//   - a documentation index stream (.sections) with one gtk-doc section.
//
// Output is built as a cgen tree and rendered once, so generating twice from
// the same model yields identical bytes.
//
// # Usage
//
//	gen, err := clientgen.New(client, messages)
//	if err != nil {
//	    return err // missing client name or service
//	}
//	if err := gen.Emit(hfile, cfile); err != nil {
//	    return err
//	}
//	err = gen.EmitSections(sfile)
package clientgen
