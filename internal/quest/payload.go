package quest

import (
	"strconv"
	"strings"

	json "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// Payload is an encrypted asset as fetched from the CDN. Two wire
// shapes exist: a JSON object keyed by decimal part number ("1".."3"),
// and the older form of a single quoted hex string. The shape is
// resolved once here; the rest of the pipeline never looks at raw
// bytes again.
type Payload struct {
	legacy string
	parts  map[int]string
}

// ParsePayload detects which wire shape raw carries and decodes it.
func ParsePayload(raw []byte) (*Payload, error) {
	body := strings.TrimSpace(string(raw))
	if body == "" {
		return nil, errors.New("empty payload")
	}

	if body[0] != '{' {
		// Old format: a single hex string, usually wrapped in quotes.
		return &Payload{legacy: strings.Trim(body, `"`)}, nil
	}

	var keyed map[string]string
	if err := json.Unmarshal(raw, &keyed); err != nil {
		return nil, errors.Wrap(err, "decode keyed payload")
	}

	parts := make(map[int]string, len(keyed))
	for label, ciphertext := range keyed {
		n, err := strconv.Atoi(label)
		if err != nil || n < 1 || n > 3 {
			continue
		}
		parts[n] = ciphertext
	}
	return &Payload{parts: parts}, nil
}

// Legacy reports whether the payload is the single-string form.
func (p *Payload) Legacy() bool {
	return p.parts == nil
}

// Part returns the ciphertext for the given part number. For the
// legacy form only part 1 exists.
func (p *Payload) Part(n int) (string, bool) {
	if p.Legacy() {
		if n == 1 {
			return p.legacy, true
		}
		return "", false
	}
	ct, ok := p.parts[n]
	return ct, ok
}
