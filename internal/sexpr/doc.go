// Package sexpr reads and writes the small S-expression dialect used by
// SuperTux data files: parenthesized lists, symbols, double-quoted strings,
// integers, reals, #t/#f booleans and ';' line comments.
package sexpr
