// Package structure provides lint rules for SQL query structure.
//
// Rules in this package:
//   - structure.nested_case: nested CASE in ELSE clause could be flattened
//
// Each rule registers itself in its init function; import the package (or
// pkg/lint/rules) for its side effects to make the rules available.
package structure
