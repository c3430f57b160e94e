// Package query reads values out of a loaded namespace.
//
// [Lookup] resolves a dotted path such as "server.tls.port" and, when a
// name is absent, suggests the closest names bound at that level. [Eval]
// runs a read-only expression over the whole tree:
//
//	v, err := query.Eval(ctx, ns, `server.port + 1`)
package query
