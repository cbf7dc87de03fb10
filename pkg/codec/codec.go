// Package codec turns request and response payloads into the bytes that cross
// the HTTP body boundary. A deployment uses exactly one codec: plain JSON or
// JSON sealed in an AES-256-CBC envelope.
package codec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/stockroom/pkg/config"
)

// ErrDecode is the only error Decode reports. Base64, block size, padding and
// JSON failures all collapse into it.
var ErrDecode = errors.New("codec: malformed payload")

// KeySize is the AES-256 key length in bytes.
const KeySize = config.EnvelopeKeySize

type Codec interface {
	Decode(raw []byte, dest any) error
	Encode(value any) ([]byte, error)
	ContentType() string
}

// New builds the codec selected by the envelope configuration.
func New(cfg config.EnvelopeConfig) (Codec, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	switch {
	case mode == "" || mode == config.EnvelopeModePlain:
		return Plain{}, nil
	case cfg.Encrypted():
		key, err := cfg.DecodeKey()
		if err != nil {
			return nil, err
		}
		return NewAESCBC(key)
	default:
		return nil, fmt.Errorf("unknown envelope mode %q", cfg.Mode)
	}
}
