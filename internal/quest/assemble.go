package quest

import (
	"fmt"
	"strings"

	"github.com/ectools/eccli/internal/cipher"
)

const maxParts = 3

// separatorRule is the horizontal rule around a part banner. The exact
// banner text doubles as the part marker the staleness check looks for,
// so it must not change between releases.
var separatorRule = strings.Repeat("=", 80)

// partBanner is the separator inserted before parts 2 and 3 of an
// assembled document.
func partBanner(part int) string {
	return fmt.Sprintf("\n\n%s\n PART %d \n%s\n\n", separatorRule, part, separatorRule)
}

// AssemblyError wraps the first part-level decryption failure. A single
// corrupt part aborts the whole document rather than silently dropping
// content.
type AssemblyError struct {
	Part int
	Err  error
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("assembling part %d: %v", e.Part, e.Err)
}

func (e *AssemblyError) Unwrap() error { return e.Err }

// Assemble decrypts every part that is present in both the payload and
// the key set and joins them in ascending part order. Parts whose key
// has not unlocked yet are skipped. Part 1 has no leading banner;
// parts 2 and 3 are introduced by partBanner.
func Assemble(payload *Payload, keys KeySet) (string, error) {
	if payload.Legacy() {
		ciphertext, _ := payload.Part(1)
		text, err := cipher.Decrypt(ciphertext, []byte(keys.Key1))
		if err != nil {
			return "", &AssemblyError{Part: 1, Err: err}
		}
		return text, nil
	}

	var doc strings.Builder
	for part := 1; part <= maxParts; part++ {
		key, err := keys.Key(part)
		if err != nil {
			continue // not unlocked yet
		}
		ciphertext, ok := payload.Part(part)
		if !ok {
			continue
		}

		text, err := cipher.Decrypt(ciphertext, []byte(key))
		if err != nil {
			return "", &AssemblyError{Part: part, Err: err}
		}

		if doc.Len() > 0 {
			doc.WriteString(partBanner(part))
		}
		doc.WriteString(text)
	}
	return doc.String(), nil
}
