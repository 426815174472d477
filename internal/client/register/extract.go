package register

import (
	"encoding/json"
	"fmt"

	"github.com/voicevote/voicevote/internal/common"
)

// ExtractNullifier pulls the nullifier out of a raw identity-proof payload.
// Provers emit several shapes; they are tried in a fixed priority order:
//
//  1. {"0": {"pcd": "<json>"}} where the inner document holds proof.nullifier
//  2. top-level "nullifier"
//  3. top-level "nullifierHash"
//  4. top-level "nullifier_hash"
//  5. top-level "id"
//
// A payload matching none of these returns ErrUnknownProofShape rather than
// guessing.
func ExtractNullifier(raw json.RawMessage) (string, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrUnknownProofShape, err)
	}

	if n := fromPCD(payload["0"]); n != "" {
		return n, nil
	}

	for _, key := range []string{"nullifier", "nullifierHash", "nullifier_hash", "id"} {
		if n := asString(payload[key]); n != "" {
			return n, nil
		}
	}

	return "", common.ErrUnknownProofShape
}

func fromPCD(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var entry struct {
		PCD string `json:"pcd"`
	}
	if err := json.Unmarshal(raw, &entry); err != nil || entry.PCD == "" {
		return ""
	}

	var pcd struct {
		Proof struct {
			Nullifier json.RawMessage `json:"nullifier"`
		} `json:"proof"`
	}
	if err := json.Unmarshal([]byte(entry.PCD), &pcd); err != nil {
		return ""
	}
	return asString(pcd.Proof.Nullifier)
}

// asString accepts both string and numeric nullifier encodings; big field
// elements arrive as JSON numbers from some provers.
func asString(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}
