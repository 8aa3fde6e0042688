// Package crypt obfuscates the FTP password persisted in the config file so
// credentials never sit on disk in plaintext.
package crypt

import (
	"encoding/hex"
	"strings"

	"github.com/forgoer/openssl"
)

type TripleDESCrypto struct {
	key []byte
}

// NewTripleDESCrypto derives a 24-byte 3DES key from the configured secret,
// zero-padding or truncating as needed.
func NewTripleDESCrypto(key string) *TripleDESCrypto {
	if len(key) < 24 {
		key += strings.Repeat("0", 24-len(key))
	} else if len(key) > 24 {
		key = key[:24]
	}

	return &TripleDESCrypto{
		key: []byte(key),
	}
}

// ECBEncrypt returns the ciphertext as a hex string.
func (c *TripleDESCrypto) ECBEncrypt(plainText string) (string, error) {
	encrypted, err := openssl.Des3ECBEncrypt([]byte(plainText), c.key, openssl.PKCS7_PADDING)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(encrypted), nil
}

// ECBDecrypt takes a hex ciphertext and returns the plaintext.
func (c *TripleDESCrypto) ECBDecrypt(cipherText string) (string, error) {
	data, err := hex.DecodeString(cipherText)
	if err != nil {
		return "", err
	}

	decrypted, err := openssl.Des3ECBDecrypt(data, c.key, openssl.PKCS7_PADDING)
	if err != nil {
		return "", err
	}

	return string(decrypted), nil
}
