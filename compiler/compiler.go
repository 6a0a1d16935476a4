// compiler is composed of a lexer and parser. These modules work in order to
// generate an AST (abstract syntax tree) from a SQL string. This AST is then
// passed to the analyzer.
package compiler
