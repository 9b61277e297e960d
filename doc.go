// Package crepl implements a single-line calculator.
//
// A line is a statement: either an expression like "(1+2)*5" or an assignment
// to one of 26 single-letter variables like "a = 4/7". Numbers are integers or
// decimals. Results stay integers as long as possible; a decimal literal or an
// integer division with a remainder makes the result real, so "6/3" is 2 while
// "4/7" is 0.571429.
//
// Parsing and evaluation happen in the same pass. There is no syntax tree.
// Variables live in an Evaluator and persist across calls to Evaluate. Errors
// carry the offset of the character that caused them, so a shell can point at
// it.
//
package crepl
