// Package lang reads and updates configuration documents written in a
// literal-only subset of Python.
//
// A document binds names to literals and groups them in class blocks:
//
//	# service settings
//	name = 'api'
//	ports = [8080, 8443]
//
//	class database:
//	    host = 'localhost'
//	    options = {'timeout': 30, 'retries': 3}
//
// [Load] evaluates a document into a [*value.Namespace] tree. Only literals
// are accepted: numbers (optionally signed), strings, tuples, lists, sets,
// dicts with literal keys, and set() for the empty set. Variable
// references, imports, unpacking, computed keys, multiple targets and every
// other construct fail with an error that matches [pkg.ErrUnsupported] and
// carries the source position.
//
// [Parse] produces a lossless concrete syntax tree: printing it reproduces
// the input byte for byte, comments and blank lines included. [Update]
// uses the tree to add the fields a [*schema.Node] declares but the
// document lacks, leaving every existing byte in place.
package lang
