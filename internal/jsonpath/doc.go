// Package jsonpath compiles and evaluates the path expressions used to
// address nodes of a JSON document, and replaces the nodes they address.
//
// Supported syntax:
//   - `$.` root followed by child `.name` and descendant `..name` segments
//   - `.*` and `[*]` wildcards, `[n]` indices (negative counts from the end)
//   - `['a','b']` quoted names and `[0,2]` unions
//   - `[start:end:step]` slices, fully specified only
//   - `[?<filter>]` RFC 9535 filter queries, e.g. `[?@.price < 10]`
//   - a trailing `..` selecting a node and all of its descendants
//   - the lone `*`, selecting every child of the root
//
// Results are always produced in document order.
package jsonpath
