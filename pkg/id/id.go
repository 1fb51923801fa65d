// Package id generates opaque identifiers for stored files.
package id

import (
	"crypto/rand"
	"encoding/hex"
	"path/filepath"
	"strings"
)

// Hex32 returns 32 lowercase hex characters from 16 random bytes.
func Hex32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// FileName returns a random name carrying the lowercased extension of
// original, e.g. "report.PDF" -> "<hex32>.pdf". Names without an extension
// get none.
func FileName(original string) string {
	return Hex32() + strings.ToLower(filepath.Ext(original))
}
