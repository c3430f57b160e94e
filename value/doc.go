// Package value defines the values a configuration document evaluates to.
//
// Scalars are [Int], [Float] and [String]. Containers are [*Tuple], [*List],
// [*Set] and [*Dict]; none of them can change after construction, and the
// list, set and dict types answer every [Mutator] call with an
// [*ImmutableError]. A [*Namespace] is the ordered result of one block of a
// document and is assembled with a [NamespaceBuilder].
//
// Every Value except non-finite floats and namespaces prints (via String)
// as the literal text the dialect parser evaluates back to an equal value:
//
//	value.MustDict(
//		value.Entry{Key: value.Int(123), Value: value.String("hello")},
//		value.Entry{Key: value.String("hello"), Value: value.String("nope")},
//	).String() // {123: 'hello', 'hello': 'nope'}
package value
