package quest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload_Legacy(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"quoted", `"deadbeef"`, "deadbeef"},
		{"bare", `deadbeef`, "deadbeef"},
		{"surrounding whitespace", "\n  \"deadbeef\"\n", "deadbeef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := ParsePayload([]byte(tt.raw))
			require.NoError(t, err)
			assert.True(t, payload.Legacy())

			ct, ok := payload.Part(1)
			require.True(t, ok)
			assert.Equal(t, tt.want, ct)

			_, ok = payload.Part(2)
			assert.False(t, ok)
		})
	}
}

func TestParsePayload_Keyed(t *testing.T) {
	payload, err := ParsePayload([]byte(`  {"1":"aa","2":"bb"}`))
	require.NoError(t, err)
	assert.False(t, payload.Legacy())

	ct, ok := payload.Part(1)
	require.True(t, ok)
	assert.Equal(t, "aa", ct)

	ct, ok = payload.Part(2)
	require.True(t, ok)
	assert.Equal(t, "bb", ct)

	_, ok = payload.Part(3)
	assert.False(t, ok)
}

func TestParsePayload_IgnoresUnknownPartLabels(t *testing.T) {
	payload, err := ParsePayload([]byte(`{"1":"aa","4":"xx","bonus":"yy"}`))
	require.NoError(t, err)

	_, ok := payload.Part(1)
	assert.True(t, ok)
	for n := 2; n <= 3; n++ {
		_, ok := payload.Part(n)
		assert.False(t, ok)
	}
}

func TestParsePayload_Errors(t *testing.T) {
	_, err := ParsePayload([]byte("   \n\t"))
	assert.ErrorContains(t, err, "empty payload")

	_, err = ParsePayload([]byte(`{"1": 5}`))
	assert.ErrorContains(t, err, "decode keyed payload")
}
