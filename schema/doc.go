// Package schema describes the names a configuration document must bind
// and the defaults used when it does not.
//
// A [Node] lists [Field] and [Block] entries in declaration order. Each
// field carries a kind and a [Default]: a [Fixed] value, a [Factory]
// computed on demand, or the [Zero] value of its kind. Schemas are built
// by hand with [New], from a Go struct with [Of], or from a template
// namespace with [FromNamespace]:
//
//	type Config struct {
//		Name string `cfg:"name"`
//		DB   struct {
//			Host string `cfg:"host"`
//			Port int    `cfg:"port"`
//		} `cfg:"db"`
//	}
//
//	node, err := schema.Of(Config{Name: "api"})
//
// [Diff] compares a schema against a loaded namespace level by level and
// returns the [Missing] tree of absent names with their defaults. [Decode]
// fills a struct from a namespace.
package schema
