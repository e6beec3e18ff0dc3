package record

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/roach88/tenniscalc/internal/scoring"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte keeps the domain and data boundary unambiguous.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Digest returns the content digest of r.
func Digest(r MatchRecord) (string, error) {
	canonical, err := MarshalCanonical(r)
	if err != nil {
		return "", fmt.Errorf("digest: %w", err)
	}
	return hashWithDomain(DomainMatch, canonical), nil
}

// VerifyDigest returns an InvalidMatchData error when r does not hash to want.
func VerifyDigest(r MatchRecord, want string) error {
	got, err := Digest(r)
	if err != nil {
		return err
	}
	if got != want {
		return scoring.NewInvalidMatchDataError(
			fmt.Sprintf("record %s digest mismatch: stored %.12s, computed %.12s", r.ID, want, got))
	}
	return nil
}
