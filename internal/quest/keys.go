// Package quest holds the content pipeline for puzzle assets: the
// per-quest key set, the encrypted payload shapes, multi-part document
// assembly, sample extraction and cache staleness.
package quest

import (
	"fmt"

	json "github.com/json-iterator/go"
)

// KeySet is the per-quest decryption material. key1 is present as soon
// as the quest opens; key2 and key3 appear when the later parts unlock.
// Availability is monotonic: key3 implies key2, key2 implies key1.
type KeySet struct {
	Key1 string  `json:"key1"`
	Key2 *string `json:"key2"`
	Key3 *string `json:"key3"`
}

// MalformedKeyDataError reports a key-set response that does not decode
// into the expected shape.
type MalformedKeyDataError struct {
	Reason string
}

func (e *MalformedKeyDataError) Error() string {
	return "malformed quest key data: " + e.Reason
}

// DecodeKeySet parses the key lookup response and validates the
// monotonic availability ordering.
func DecodeKeySet(raw []byte) (KeySet, error) {
	var keys KeySet
	if err := json.Unmarshal(raw, &keys); err != nil {
		return KeySet{}, &MalformedKeyDataError{Reason: err.Error()}
	}
	if keys.Key1 == "" {
		return KeySet{}, &MalformedKeyDataError{Reason: "key1 is missing"}
	}
	if keys.Key3 != nil && keys.Key2 == nil {
		return KeySet{}, &MalformedKeyDataError{Reason: "key3 present without key2"}
	}
	return keys, nil
}

// Key returns the decryption key for the given part, or an error when
// that part has not unlocked yet.
func (k KeySet) Key(part int) (string, error) {
	switch part {
	case 1:
		return k.Key1, nil
	case 2:
		if k.Key2 == nil {
			return "", fmt.Errorf("part 2 key not available yet")
		}
		return *k.Key2, nil
	case 3:
		if k.Key3 == nil {
			return "", fmt.Errorf("part 3 key not available yet")
		}
		return *k.Key3, nil
	}
	return "", fmt.Errorf("invalid part %d", part)
}

// AvailableParts counts how many parts currently have keys.
func (k KeySet) AvailableParts() int {
	n := 1
	if k.Key2 != nil {
		n++
	}
	if k.Key3 != nil {
		n++
	}
	return n
}
