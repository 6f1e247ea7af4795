// Package extract finds schema documents in free text.
//
// Input is typically a paste of several JSON schemas, possibly separated
// by prose or comments. Every top level '{' ... '}' span is a candidate
// document. Braces inside JSON strings do not count.
package extract
