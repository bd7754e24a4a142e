// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// CodeGenerator produces one-time numeric codes.
type CodeGenerator interface {
	Generate() (string, error)
}

// CodeHasher hashes one-time codes so only the digest is ever stored.
type CodeHasher interface {
	// Hash returns a salted digest of code.
	Hash(code string) (string, error)

	// Check reports whether code matches hash.
	Check(code, hash string) bool
}
