package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

const (
	KeySize         = 32
	IVSize          = aes.BlockSize
	EncodedIVLength = 24
)

var (
	ErrInvalidKey = errors.New("invalid encryption key: must be 32 bytes")
	ErrDecryption = errors.New("decryption failed")
)

// MessageCipher encrypts message bodies with AES-256-CBC. Every stored value
// carries its own IV: base64(iv) followed by the hex encoded ciphertext.
type MessageCipher struct {
	block cipher.Block
}

func NewMessageCipher(key []byte) (*MessageCipher, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	return &MessageCipher{block: block}, nil
}

// ParseKey accepts a raw 32 character secret or a base64 encoded 32 byte key.
func ParseKey(raw string) ([]byte, error) {
	if len(raw) == KeySize {
		return []byte(raw), nil
	}

	key, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(key) != KeySize {
		return nil, ErrInvalidKey
	}

	return key, nil
}

func (c *MessageCipher) Encrypt(plaintext string) (string, error) {
	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", err
	}

	padded := pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(c.block, iv).CryptBlocks(ciphertext, padded)

	return base64.StdEncoding.EncodeToString(iv) + hex.EncodeToString(ciphertext), nil
}

func (c *MessageCipher) Decrypt(stored string) (string, error) {
	if len(stored) < EncodedIVLength {
		return "", fmt.Errorf("%w: value shorter than iv", ErrDecryption)
	}

	iv, err := base64.StdEncoding.DecodeString(stored[:EncodedIVLength])
	if err != nil || len(iv) != IVSize {
		return "", fmt.Errorf("%w: malformed iv", ErrDecryption)
	}

	ciphertext, err := hex.DecodeString(stored[EncodedIVLength:])
	if err != nil {
		return "", fmt.Errorf("%w: malformed ciphertext", ErrDecryption)
	}

	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: ciphertext is not a whole number of blocks", ErrDecryption)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(c.block, iv).CryptBlocks(plaintext, ciphertext)

	plaintext, err = unpad(plaintext, aes.BlockSize)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

func pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(data []byte, blockSize int) ([]byte, error) {
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("%w: invalid padding", ErrDecryption)
	}

	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: invalid padding", ErrDecryption)
		}
	}

	return data[:len(data)-n], nil
}
