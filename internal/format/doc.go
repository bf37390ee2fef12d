// Package format holds the formatting engines used by the response prettier.
//
// An engine is selected by grammar name ("json", "yaml", "xml", "html", "hcl")
// and turns already-serialized text into an indented, human-readable layout
// without changing the data it represents. Engines are stateless and safe for
// concurrent use.
package format
