package store

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName returns the comparison key for a law name.
//
// The key is the NFC form with full Unicode case folding applied, so
// "NEWTON'S SECOND LAW" and "newton's second law" share a key, as do
// "STRASSE" and "straße". Stored names keep their original casing; only
// the key is folded. Every lookup and every uniqueness check goes through
// this function.
//
// This is stricter than plain lowercasing: "Straße" and "Strasse" collide,
// and so do a precomposed "é" and "e" followed by a combining acute accent.
func NormalizeName(name string) string {
	return cases.Fold().String(norm.NFC.String(name))
}
