package chain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

const (
	// GenesisHash is the previous-hash sentinel of the first block.
	GenesisHash = "0000000000000000000000000000000000000000000000000000000000000000"

	// timestampLayout renders block timestamps with microsecond precision.
	// Appends truncate to the same precision, so a stored timestamp always
	// re-renders to the exact bytes that were hashed.
	timestampLayout = "2006-01-02T15:04:05.000000Z07:00"
)

// ComputeBlockHash hashes the six block fields joined by '|'. The delimited
// fields are controlled vocabularies or machine-generated ids, never free text,
// so the delimiter cannot be smuggled into a field to move a boundary.
func ComputeBlockHash(prevHash string, ts time.Time, actor, action, txID, payloadJSON string) string {
	msg := prevHash + "|" + FormatTimestamp(ts) + "|" + actor + "|" + action + "|" + txID + "|" + payloadJSON
	sum := sha256.Sum256([]byte(msg))
	return hex.EncodeToString(sum[:])
}

// FormatTimestamp renders ts in the canonical form used in hash preimages.
func FormatTimestamp(ts time.Time) string {
	return ts.UTC().Format(timestampLayout)
}

// TruncateTimestamp drops sub-microsecond precision so the stored timestamp
// survives a round trip through any DATETIME(6)-class column.
func TruncateTimestamp(ts time.Time) time.Time {
	return ts.UTC().Truncate(time.Microsecond)
}

// MakeTxID builds the human-readable correlation id for a block,
// e.g. MakeTxID("INV", 42) == "INV_000042".
func MakeTxID(prefix string, numericID uint64) string {
	return fmt.Sprintf("%s_%06d", prefix, numericID)
}

// NormalizeHash trims surrounding whitespace from a stored hash value.
func NormalizeHash(s string) string { return strings.TrimSpace(s) }

// IsSHA256Hex reports whether s is a syntactically valid lowercase-insensitive
// sha256 hex digest. Blocks that fail this check are legacy placeholders and
// are exempt from cryptographic verification.
func IsSHA256Hex(s string) bool {
	s = NormalizeHash(s)
	if len(s) != 64 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
