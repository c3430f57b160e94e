// Package format reads and extends configuration documents in several
// syntaxes behind one [Format] interface.
//
// The native dialect is handled by package lang. JSON, YAML, INI and
// dotenv documents are evaluated into the same namespace trees: booleans
// become the ints 1 and 0, nulls are rejected, mappings nested in mappings
// become blocks and sequences become lists.
//
// [ForPath] picks a format by file extension and [ByName] by name:
//
//	f := format.ForPath("service.yaml")
//	text, missing, err := f.Update(ctx, src, node)
package format
