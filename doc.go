// Package jsontext stores JSON text in a named field and queries it with
// PostgreSQL-style operators or path expressions.
//
// A Field holds the text verbatim. Queries parse it on demand:
//
//	f := jsontext.New("Cars")
//	_ = f.SetValue(`{"american":["buick","oldsmobile"],"british":["vauxhall","morris"]}`)
//	british, _ := f.Query("->>", "british")
//	american, _ := f.Query("$.american[*]")
//
// Operators:
//
//	->   position in the flattened document (an integer)
//	->>  first member with the given name (a string)
//	#>   single-pair JSON object {"key":"sub"}; every entry at sub below a
//	     member named key
//
// Expressions start with "$." or are the lone wildcard "*". They support
// member names, [n] indices (negative from the end), [*], unions, three-part
// slices, recursive descent and RFC 9535 [?filter] predicates.
package jsontext
