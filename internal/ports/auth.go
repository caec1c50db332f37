package ports

// PasswordHasher hashes and verifies account passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify returns nil when password matches hash
	Verify(hash, password string) error
}
