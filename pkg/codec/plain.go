package codec

import (
	"encoding/json"
	"fmt"
)

// Plain moves UTF-8 JSON as-is.
type Plain struct{}

func (Plain) Decode(raw []byte, dest any) error {
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

func (Plain) Encode(value any) ([]byte, error) {
	return json.Marshal(value)
}

func (Plain) ContentType() string {
	return "application/json"
}
