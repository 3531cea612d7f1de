package client

import (
	"context"
	"crypto/aes"
	stdcipher "crypto/cipher"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ectools/eccli/internal/quest"
)

const (
	testCookie = "session-token"
	testKey128 = "0123456789abcdef"
	testKey192 = "0123456789abcdef01234567"
)

// encrypt mirrors the service's scheme for building test fixtures.
func encrypt(t *testing.T, plaintext, key string) string {
	t.Helper()

	keyBytes := []byte(key)
	pad := aes.BlockSize - len(plaintext)%aes.BlockSize
	padded := append([]byte(plaintext), make([]byte, pad)...)
	for i := len(plaintext); i < len(padded); i++ {
		padded[i] = byte(pad)
	}

	block, err := aes.NewCipher(keyBytes)
	require.NoError(t, err)

	out := make([]byte, len(padded))
	stdcipher.NewCBCEncrypter(block, keyBytes[:aes.BlockSize]).CryptBlocks(out, padded)
	return hex.EncodeToString(out)
}

func newTestClient(url string) *Client {
	return New(Options{BaseURL: url, CDNURL: url, Cookie: testCookie})
}

func TestFetchQuestKeys(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/api/event/2024/quest/5", r.URL.Path)
		assert.Equal(t, "everybody-codes="+testCookie, r.Header.Get("Cookie"))
		fmt.Fprint(w, `{"key1":"aaaa","key2":"bbbb"}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	keys, err := c.FetchQuestKeys(context.Background(), 2024, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, keys.AvailableParts())

	// Second lookup is served from the memo, not the network.
	_, err = c.FetchQuestKeys(context.Background(), 2024, 5)
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetchQuestKeys_HTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quest not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchQuestKeys(context.Background(), 2024, 5)

	var keyErr *KeyFetchError
	require.ErrorAs(t, err, &keyErr)
	assert.Equal(t, 2024, keyErr.Year)
	assert.Equal(t, 5, keyErr.Day)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Status)
}

func TestFetchQuestKeys_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"key2":"bbbb"}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchQuestKeys(context.Background(), 2024, 5)

	var malformed *quest.MalformedKeyDataError
	assert.ErrorAs(t, err, &malformed)
}

func TestUserSeed_Memoized(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/api/user/me", r.URL.Path)
		fmt.Fprint(w, `{"seed":1337}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	for i := 0; i < 2; i++ {
		seed, err := c.UserSeed(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1337, seed)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetchInput(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/user/me", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"seed":42}`)
	})
	mux.HandleFunc("/api/event/2024/quest/3", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"key1":%q,"key2":%q}`, testKey128, testKey192)
	})
	mux.HandleFunc("/assets/2024/3/input/42.json", func(w http.ResponseWriter, r *http.Request) {
		// CDN requests are unauthenticated.
		assert.Empty(t, r.Header.Get("Cookie"))
		fmt.Fprintf(w, `{"1":%q,"2":%q}`,
			encrypt(t, "1 2 3 4", testKey128),
			encrypt(t, "5 6 7 8", testKey192))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(srv.URL)

	input, err := c.FetchInput(context.Background(), 2024, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, "5 6 7 8", input)

	// Part 3 has no key yet.
	_, err = c.FetchInput(context.Background(), 2024, 3, 3)
	assert.ErrorContains(t, err, "part 3 key not available")
}

func TestFetchInput_LegacyPayload(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/user/me", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"seed":42}`)
	})
	mux.HandleFunc("/api/event/2024/quest/1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"key1":%q}`, testKey128)
	})
	mux.HandleFunc("/assets/2024/1/input/42.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "%q", encrypt(t, "legacy input", testKey128))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	input, err := newTestClient(srv.URL).FetchInput(context.Background(), 2024, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "legacy input", input)
}

func TestFetchDescription(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/event/2024/quest/7", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"key1":%q,"key2":%q}`, testKey128, testKey192)
	})
	mux.HandleFunc("/assets/2024/7/description.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"1":%q,"2":%q}`,
			encrypt(t, "<p>part one</p>", testKey128),
			encrypt(t, "<p>part two</p>", testKey192))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	doc, err := newTestClient(srv.URL).FetchDescription(context.Background(), 2024, 7)
	require.NoError(t, err)

	assert.Contains(t, doc, "<p>part one</p>")
	assert.Contains(t, doc, "<p>part two</p>")
	assert.Contains(t, doc, " PART 2 ")

	decision := quest.StalenessOf(doc, quest.KeySet{Key1: testKey128})
	assert.False(t, decision.Stale)
	assert.Equal(t, 2, decision.CachedParts)
}

func TestSubmitAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/event/2024/quest/5/part/2/answer", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		fmt.Fprint(w, `{"correct":true,"lengthCorrect":true,"firstCorrect":false,"time":523,"globalPlace":12,"globalScore":88}`)
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL).SubmitAnswer(context.Background(), 2024, 5, 2, "42")
	require.NoError(t, err)
	assert.True(t, resp.Correct)
	assert.Equal(t, int64(12), resp.GlobalPlace)
	assert.Equal(t, int64(523), resp.Time)
}

func TestSubmitAnswer_AlreadySubmitted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).SubmitAnswer(context.Background(), 2024, 5, 2, "42")
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestGet_RetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			http.Error(w, "hiccup", http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{"key1":"aaaa"}`)
	}))
	defer srv.Close()

	keys, err := newTestClient(srv.URL).FetchQuestKeys(context.Background(), 2024, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, keys.AvailableParts())
	assert.Equal(t, int32(2), hits.Load())
}

func TestGet_DoesNotRetryClientErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchQuestKeys(context.Background(), 2024, 5)
	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}
