package cipher

import "fmt"

// InvalidEncodingError reports ciphertext that is not valid hex.
type InvalidEncodingError struct {
	Offset int
	Reason string
}

func (e *InvalidEncodingError) Error() string {
	return fmt.Sprintf("invalid ciphertext encoding at byte %d: %s", e.Offset, e.Reason)
}

// UnsupportedKeySizeError reports a key whose length maps to no cipher
// variant. Valid lengths are 16, 24 and 32 bytes.
type UnsupportedKeySizeError struct {
	Size int
}

func (e *UnsupportedKeySizeError) Error() string {
	return fmt.Sprintf("unsupported key size %d (want 16, 24 or 32 bytes)", e.Size)
}

// PaddingError reports a final block whose trailing bytes are not a
// valid PKCS#7 padding sequence.
type PaddingError struct {
	Variant string
	Reason  string
}

func (e *PaddingError) Error() string {
	return fmt.Sprintf("%s padding check failed: %s", e.Variant, e.Reason)
}

// EncodingError reports decrypted bytes that are not valid UTF-8.
type EncodingError struct {
	Offset int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("decrypted content is not valid UTF-8 (first bad byte at %d)", e.Offset)
}
