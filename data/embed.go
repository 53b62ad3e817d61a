// Package data embeds the built-in dictionary.
package data

import _ "embed"

// Dict is the built-in glossary in lookup TSV form:
// lemma, definition, hanja separated by tabs.
//
//go:embed dict.tsv
var Dict []byte
