package chain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// EmptyPayload is the encoding stored when a block carries no business payload.
const EmptyPayload = "{}"

var ErrUnsupportedType = errors.New("chain: unsupported payload value type")

// CanonicalPayload renders a payload as compact JSON with keys in sorted order,
// so that structurally equal payloads always produce identical bytes. Values may
// be strings, integers, floats or nested maps; anything else is a caller bug and
// returns ErrUnsupportedType.
func CanonicalPayload(payload map[string]any) (string, error) {
	if payload == nil {
		return EmptyPayload, nil
	}
	if err := checkValues(payload); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return "", fmt.Errorf("chain: encode payload: %w", err)
	}
	// Encode appends a newline that is not part of the canonical form.
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

func checkValues(m map[string]any) error {
	for k, v := range m {
		switch t := v.(type) {
		case string, int, int32, int64, uint, uint32, uint64, float32, float64:
		case map[string]any:
			if err := checkValues(t); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: key %q holds %T", ErrUnsupportedType, k, v)
		}
	}
	return nil
}
