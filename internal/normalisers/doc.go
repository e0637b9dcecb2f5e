// Package normalisers provides implementations of the Normaliser interface
// for the source formats a project can import. Each normaliser knows how to
// extract plain text from one family of file extensions.
//
// Normalisers are registered with the NormaliserRegistry at startup.
package normalisers
