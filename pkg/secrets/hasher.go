package secrets

// SecretHasher defines the interface for client secret hashing implementations
type SecretHasher interface {
	// Hash hashes a plaintext client secret for storage
	Hash(secret string) (string, error)

	// Verify checks if the provided secret matches the stored value
	Verify(secret, storedSecret string) (bool, error)
}

// SecretVerifier is the verification-only side of SecretHasher. The lookup
// path only ever verifies; hashing happens at create/rotate time.
type SecretVerifier interface {
	Verify(secret, storedSecret string) (bool, error)
}

// Mode selects the deployment-wide secret verification strategy
type Mode string

const (
	// ModeArgon2 stores PHC-encoded Argon2id hashes
	ModeArgon2 Mode = "argon2"
	// ModeBcrypt stores bcrypt hashes
	ModeBcrypt Mode = "bcrypt"
	// ModePlain stores secrets as-is and compares in constant time
	ModePlain Mode = "plain"
)

// NewHasher returns the hasher for the given mode, defaulting to Argon2
func NewHasher(mode Mode) SecretHasher {
	switch mode {
	case ModeBcrypt:
		return &BcryptHasher{}
	case ModePlain:
		return &PlaintextHasher{}
	default:
		return NewArgon2Hasher()
	}
}
