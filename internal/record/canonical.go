package record

import (
	"bytes"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// DomainMatch prefixes match digests. The version suffix allows a later
// change of encoding without colliding with old digests.
const DomainMatch = "tenniscalc/match/v1"

// canonicalRecord fixes the key order: fields are declared in sorted order
// so encoding/json emits sorted keys.
type canonicalRecord struct {
	ID        string `json:"id"`
	PlayerOne string `json:"player_one"`
	PlayerTwo string `json:"player_two"`
	Points    []int  `json:"points"`
}

// MarshalCanonical produces the canonical JSON used for digests.
//
// Differences from json.Marshal on MatchRecord:
//   - strings are NFC normalized
//   - no HTML escaping
//   - a nil point log encodes as [] rather than null
//   - no trailing newline
func MarshalCanonical(r MatchRecord) ([]byte, error) {
	points := r.Points
	if points == nil {
		points = []int{}
	}
	c := canonicalRecord{
		ID:        norm.NFC.String(r.ID),
		PlayerOne: norm.NFC.String(r.PlayerOne),
		PlayerTwo: norm.NFC.String(r.PlayerTwo),
		Points:    points,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("marshal canonical record %s: %w", r.ID, err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
