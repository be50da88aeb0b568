// Package model defines the immutable message model consumed by the QMI
// client generator.
//
// A model is built once from a parsed service definition: one Service, the
// Client bound to it, and an ordered MessageList. Generators read the model
// and never modify it. Order matters: every generated enumeration, switch
// arm and method appears in MessageList order.
//
// Bundles describe the input or output payload of a message. Whether a bundle
// carries any fields is an explicit variant (Empty or Fields) rather than a
// nil slice, so code that builds signatures from it has to handle both cases.
package model
