package codec

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
)

// AESCBC seals JSON as Base64(IV || AES-256-CBC(PKCS#7(json))).
type AESCBC struct {
	block cipher.Block
	rand  io.Reader
}

// NewAESCBC returns an envelope codec for a 32 byte key.
func NewAESCBC(key []byte) (*AESCBC, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("aes-256 key must be %d bytes, got %d", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	return &AESCBC{block: block, rand: rand.Reader}, nil
}

func (c *AESCBC) Decode(raw []byte, dest any) error {
	plaintext, err := c.Open(string(raw))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(plaintext, dest); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

func (c *AESCBC) Encode(value any) ([]byte, error) {
	payload, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	sealed, err := c.Seal(payload)
	if err != nil {
		return nil, err
	}
	return []byte(sealed), nil
}

func (c *AESCBC) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Seal encrypts plaintext under a fresh random IV.
func (c *AESCBC) Seal(plaintext []byte) (string, error) {
	blockSize := c.block.BlockSize()
	padded := pad(plaintext, blockSize)

	out := make([]byte, blockSize+len(padded))
	iv := out[:blockSize]
	if _, err := io.ReadFull(c.rand, iv); err != nil {
		return "", fmt.Errorf("generate iv: %w", err)
	}
	cipher.NewCBCEncrypter(c.block, iv).CryptBlocks(out[blockSize:], padded)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Open reverses Seal. Every failure is ErrDecode.
func (c *AESCBC) Open(encoded string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(string(bytes.TrimSpace([]byte(encoded))))
	if err != nil {
		return nil, ErrDecode
	}
	blockSize := c.block.BlockSize()
	if len(data) < 2*blockSize || len(data)%blockSize != 0 {
		return nil, ErrDecode
	}

	iv, body := data[:blockSize], data[blockSize:]
	plaintext := make([]byte, len(body))
	cipher.NewCBCDecrypter(c.block, iv).CryptBlocks(plaintext, body)
	return unpad(plaintext, blockSize)
}

func pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	out := make([]byte, len(data), len(data)+n)
	copy(out, data)
	return append(out, bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrDecode
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, ErrDecode
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, ErrDecode
		}
	}
	return data[:len(data)-n], nil
}
