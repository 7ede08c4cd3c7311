package canonical

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainDataset prefixes dataset fingerprints. The version suffix allows the
// algorithm to change without colliding with older digests.
const DomainDataset = "eqncheck/dataset/v1"

// HashWithDomain computes SHA256(domain + 0x00 + data) as lowercase hex.
// The null separator keeps the domain/data boundary unambiguous.
func HashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Digest canonically marshals v and hashes it under domain.
func Digest(domain string, v any) (string, error) {
	data, err := Marshal(v)
	if err != nil {
		return "", fmt.Errorf("canonical digest: %w", err)
	}
	return HashWithDomain(domain, data), nil
}
