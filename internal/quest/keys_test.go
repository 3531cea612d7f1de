package quest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeKeySet(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantParts int
		wantErr   string
	}{
		{"key1 only", `{"key1":"aaaa"}`, 1, ""},
		{"two keys", `{"key1":"a","key2":"b"}`, 2, ""},
		{"all keys", `{"key1":"a","key2":"b","key3":"c"}`, 3, ""},
		{"extra fields ignored", `{"key1":"a","answer1":"x"}`, 1, ""},
		{"missing key1", `{"key2":"b"}`, 0, "key1 is missing"},
		{"key3 without key2", `{"key1":"a","key3":"c"}`, 0, "key3 present without key2"},
		{"not json", `<html>oops</html>`, 0, "malformed quest key data"},
		{"wrong shape", `{"key1": 17}`, 0, "malformed quest key data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys, err := DecodeKeySet([]byte(tt.raw))
			if tt.wantErr != "" {
				var malformed *MalformedKeyDataError
				require.ErrorAs(t, err, &malformed)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantParts, keys.AvailableParts())
		})
	}
}

func TestKeySet_Key(t *testing.T) {
	key2 := "bbbb"
	keys := KeySet{Key1: "aaaa", Key2: &key2}

	got, err := keys.Key(1)
	require.NoError(t, err)
	assert.Equal(t, "aaaa", got)

	got, err = keys.Key(2)
	require.NoError(t, err)
	assert.Equal(t, "bbbb", got)

	_, err = keys.Key(3)
	assert.ErrorContains(t, err, "part 3 key not available")

	_, err = keys.Key(4)
	assert.ErrorContains(t, err, "invalid part")
}
