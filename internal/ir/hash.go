package ir

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/text/unicode/norm"
)

// DomainProgram is the domain prefix for program content hashes.
// The version suffix enables future printer or algorithm migration.
const DomainProgram = "loomc/program/v1"

// Hash computes a content-addressed identity for a statement tree: the
// SHA-256 of its printed form, NFC-normalized at the serialization boundary
// so visually identical unicode names hash identically.
//
// Equal trees hash equal; the lowering cache keys on this.
func Hash(s Stmt) string {
	return hashWithDomain(DomainProgram, []byte(norm.NFC.String(Print(s))))
}

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte prevents domain/data
// boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
