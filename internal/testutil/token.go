package testutil

// FixedTokenGenerator returns the same ingestion token every time.
//
// This makes stored ingestion batches deterministic so golden transcripts
// and store assertions compare byte for byte.
//
// Thread-safety: FixedTokenGenerator is stateless and safe for concurrent use.
type FixedTokenGenerator struct {
	token string
}

// NewFixedTokenGenerator creates a generator that always returns token.
// If token is empty, Generate() returns "test-ingestion-default".
func NewFixedTokenGenerator(token string) *FixedTokenGenerator {
	if token == "" {
		token = "test-ingestion-default"
	}
	return &FixedTokenGenerator{token: token}
}

// Generate returns the fixed token.
//
// Implements store.TokenGenerator.
func (g *FixedTokenGenerator) Generate() string {
	return g.token
}
