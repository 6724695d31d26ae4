// Package expr drives assertion chains from textual dot-path expressions.
//
// An expression like "not.deep.equal({0})" names chain steps in order;
// a parenthesized suffix declares arguments for a callable step. Argument
// tokens resolve at call time: {n} to the nth positional call argument, a
// bare identifier to a named fact on the scope, anything else to a
// literal. Paren balance is validated when the expression is parsed;
// malformed nesting is a configuration error, not a crash.
package expr
