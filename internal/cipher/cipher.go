// Package cipher implements the symmetric decryption scheme used for
// Everybody Codes puzzle assets: AES-CBC with PKCS#7 padding, where the
// IV is the first 16 bytes of the key itself. The IV derivation is a
// fixed property of the service being interoperated with and must be
// preserved exactly.
package cipher

import (
	"crypto/aes"
	stdcipher "crypto/cipher"
	"encoding/hex"
	"unicode/utf8"
)

// variant is the closed set of supported cipher strengths. The strength
// is determined by the key length alone, so selection is a single
// length switch rather than anything polymorphic.
type variant int

const (
	aes128 variant = iota
	aes192
	aes256
)

func (v variant) String() string {
	switch v {
	case aes128:
		return "AES-128-CBC"
	case aes192:
		return "AES-192-CBC"
	case aes256:
		return "AES-256-CBC"
	}
	return "unknown"
}

func variantForKey(key []byte) (variant, error) {
	switch len(key) {
	case 16:
		return aes128, nil
	case 24:
		return aes192, nil
	case 32:
		return aes256, nil
	}
	return 0, &UnsupportedKeySizeError{Size: len(key)}
}

// Decrypt decodes the hex-encoded ciphertext and decrypts it with the
// given key. The cipher strength follows from the key length (16, 24 or
// 32 bytes); the IV is the first 16 bytes of the key. The result is the
// UTF-8 plaintext with PKCS#7 padding removed.
//
// Decrypt is pure: the same inputs always produce the same plaintext or
// the same error.
func Decrypt(ciphertextHex string, key []byte) (string, error) {
	raw, err := decodeHex(ciphertextHex)
	if err != nil {
		return "", err
	}

	v, err := variantForKey(key)
	if err != nil {
		return "", err
	}

	if len(raw) == 0 || len(raw)%aes.BlockSize != 0 {
		return "", &PaddingError{
			Variant: v.String(),
			Reason:  "ciphertext length is not a multiple of the block size",
		}
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		// Unreachable after the variant check; kept for safety.
		return "", err
	}

	iv := key[:aes.BlockSize]
	plain := make([]byte, len(raw))
	stdcipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, raw)

	plain, err = pkcs7Unpad(plain, v)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(plain) {
		return "", &EncodingError{Offset: invalidUTF8Offset(plain)}
	}

	return string(plain), nil
}

// decodeHex decodes s, reporting the byte offset of the first problem
// instead of the opaque errors the encoding/hex package returns.
func decodeHex(s string) ([]byte, error) {
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return nil, &InvalidEncodingError{Offset: i, Reason: "not a hex digit"}
		}
	}
	if len(s)%2 != 0 {
		return nil, &InvalidEncodingError{Offset: len(s), Reason: "odd number of hex digits"}
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, &InvalidEncodingError{Offset: 0, Reason: err.Error()}
	}
	return raw, nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// pkcs7Unpad strips the padding from the final block. A malformed
// padding sequence almost always means the wrong part's key was used.
func pkcs7Unpad(data []byte, v variant) ([]byte, error) {
	pad := int(data[len(data)-1])
	if pad == 0 || pad > aes.BlockSize {
		return nil, &PaddingError{
			Variant: v.String(),
			Reason:  "pad byte out of range (wrong key?)",
		}
	}
	if pad > len(data) {
		return nil, &PaddingError{
			Variant: v.String(),
			Reason:  "pad length exceeds ciphertext",
		}
	}
	for _, b := range data[len(data)-pad:] {
		if int(b) != pad {
			return nil, &PaddingError{
				Variant: v.String(),
				Reason:  "inconsistent pad bytes (wrong key?)",
			}
		}
	}
	return data[:len(data)-pad], nil
}

func invalidUTF8Offset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
