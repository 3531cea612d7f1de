package logtrace

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithFields(t *testing.T) {
	base := Fields{"a": 1, "b": 2}
	merged := WithFields(base, Fields{"b": 3, "c": 4})

	assert.Equal(t, Fields{"a": 1, "b": 3, "c": 4}, merged)
	// The base map is untouched.
	assert.Equal(t, Fields{"a": 1, "b": 2}, base)
}

func TestCtxWithCorrelationID(t *testing.T) {
	ctx := CtxWithCorrelationID(context.Background(), "fetch")

	cid := extractCorrelationID(ctx)
	assert.True(t, strings.HasPrefix(cid, "fetch-"))
	assert.Greater(t, len(cid), len("fetch-"))

	// Two contexts never share an ID.
	other := extractCorrelationID(CtxWithCorrelationID(context.Background(), "fetch"))
	assert.NotEqual(t, cid, other)
}

func TestExtractCorrelationID_Absent(t *testing.T) {
	assert.Equal(t, "unknown", extractCorrelationID(context.Background()))
	assert.Equal(t, "unknown", extractCorrelationID(nil))
}
