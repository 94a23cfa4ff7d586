package ports

// TokenClaims is the identity recovered from a verified bearer token.
type TokenClaims struct {
	SubjectID string
	Role      string
}

// TokenService mints and verifies bearer tokens.
type TokenService interface {
	Mint(subjectID, role string) (string, error)
	// Verify returns domain.ErrInvalidToken for any malformed, forged or
	// expired token.
	Verify(token string) (*TokenClaims, error)
}
