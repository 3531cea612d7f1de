package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	json "github.com/json-iterator/go"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	"github.com/ectools/eccli/internal/cipher"
	"github.com/ectools/eccli/internal/quest"
	"github.com/ectools/eccli/pkg/logtrace"
)

type user struct {
	Seed int `json:"seed"`
}

// SubmitResponse is the service's verdict on a submitted answer.
type SubmitResponse struct {
	Correct       bool   `json:"correct"`
	LengthCorrect bool   `json:"lengthCorrect"`
	FirstCorrect  bool   `json:"firstCorrect"`
	Time          int64  `json:"time"`
	GlobalPlace   int64  `json:"globalPlace"`
	GlobalScore   int64  `json:"globalScore"`
	Message       string `json:"message"`
}

// UserSeed fetches the per-user seed that keys the CDN input URLs.
// The value is memoized for the life of the process.
func (c *Client) UserSeed(ctx context.Context) (int, error) {
	const memoKey = "user-seed"
	if cached, ok := c.memo.Get(memoKey); ok {
		return cached.(int), nil
	}

	f := logFields("UserSeed", nil)
	logtrace.Info(ctx, "Fetching user seed", f)

	body, err := c.get(ctx, c.apiURL("/api/user/me"), true)
	if err != nil {
		return 0, errors.Wrap(err, "fetch user seed")
	}

	var u user
	if err := json.Unmarshal(body, &u); err != nil {
		return 0, errors.Wrap(err, "decode user response")
	}

	c.memo.Set(memoKey, u.Seed, gocache.DefaultExpiration)
	return u.Seed, nil
}

// FetchQuestKeys resolves the decryption key set for one quest. Key
// sets are memoized briefly so a fetch does not hit the endpoint once
// per asset. Failures surface as KeyFetchError (transport/status) or
// quest.MalformedKeyDataError (undecodable shape).
func (c *Client) FetchQuestKeys(ctx context.Context, year, day int) (quest.KeySet, error) {
	memoKey := fmt.Sprintf("keys/%d/%d", year, day)
	if cached, ok := c.memo.Get(memoKey); ok {
		return cached.(quest.KeySet), nil
	}

	f := logFields("FetchQuestKeys", logtrace.Fields{
		logtrace.FieldYear: year,
		logtrace.FieldDay:  day,
	})
	logtrace.Info(ctx, "Fetching quest keys", f)

	body, err := c.get(ctx, c.apiURL("/api/event/%d/quest/%d", year, day), true)
	if err != nil {
		return quest.KeySet{}, &KeyFetchError{Year: year, Day: day, Err: err}
	}

	keys, err := quest.DecodeKeySet(body)
	if err != nil {
		return quest.KeySet{}, err
	}

	logtrace.Debug(ctx, "Quest keys resolved", logtrace.WithFields(f, logtrace.Fields{
		logtrace.FieldPartCount: keys.AvailableParts(),
	}))
	c.memo.Set(memoKey, keys, gocache.DefaultExpiration)
	return keys, nil
}

// FetchInput downloads and decrypts the puzzle input for one part.
func (c *Client) FetchInput(ctx context.Context, year, day, part int) (string, error) {
	f := logFields("FetchInput", logtrace.Fields{
		logtrace.FieldYear: year,
		logtrace.FieldDay:  day,
		logtrace.FieldPart: part,
	})

	seed, err := c.UserSeed(ctx)
	if err != nil {
		return "", err
	}
	keys, err := c.FetchQuestKeys(ctx, year, day)
	if err != nil {
		return "", err
	}
	key, err := keys.Key(part)
	if err != nil {
		return "", err
	}

	logtrace.Info(ctx, "Downloading encrypted input", f)
	body, err := c.get(ctx, c.cdnAssetURL("/assets/%d/%d/input/%d.json", year, day, seed), false)
	if err != nil {
		return "", errors.Wrap(err, "fetch input")
	}

	payload, err := quest.ParsePayload(body)
	if err != nil {
		return "", errors.Wrap(err, "parse input payload")
	}
	ciphertext, ok := payload.Part(part)
	if !ok {
		return "", errors.Errorf("input for part %d is missing from the payload", part)
	}

	logtrace.Debug(ctx, "Decrypting input", f)
	text, err := cipher.Decrypt(ciphertext, []byte(key))
	if err != nil {
		return "", errors.Wrapf(err, "decrypt input for part %d", part)
	}
	return text, nil
}

// FetchDescription downloads the encrypted description and assembles
// every currently unlocked part into one document.
func (c *Client) FetchDescription(ctx context.Context, year, day int) (string, error) {
	f := logFields("FetchDescription", logtrace.Fields{
		logtrace.FieldYear: year,
		logtrace.FieldDay:  day,
	})

	keys, err := c.FetchQuestKeys(ctx, year, day)
	if err != nil {
		return "", err
	}

	logtrace.Info(ctx, "Downloading encrypted description", f)
	body, err := c.get(ctx, c.cdnAssetURL("/assets/%d/%d/description.json", year, day), false)
	if err != nil {
		return "", errors.Wrap(err, "fetch description")
	}

	payload, err := quest.ParsePayload(body)
	if err != nil {
		return "", errors.Wrap(err, "parse description payload")
	}

	logtrace.Debug(ctx, "Decrypting description", f)
	return quest.Assemble(payload, keys)
}

// SubmitAnswer posts an answer for one part. A 409 from the service
// maps to ErrAlreadySubmitted; submissions are never retried.
func (c *Client) SubmitAnswer(ctx context.Context, year, day, part int, answer string) (*SubmitResponse, error) {
	f := logFields("SubmitAnswer", logtrace.Fields{
		logtrace.FieldYear: year,
		logtrace.FieldDay:  day,
		logtrace.FieldPart: part,
	})
	logtrace.Info(ctx, "Submitting answer", f)

	payload, err := json.Marshal(map[string]string{"answer": answer})
	if err != nil {
		return nil, errors.Wrap(err, "encode answer")
	}

	url := c.apiURL("/api/event/%d/quest/%d/part/%d/answer", year, day, part)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(payload)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cookie", c.cookieHeader())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "submit answer")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusConflict:
		return nil, ErrAlreadySubmitted
	case resp.StatusCode != http.StatusOK:
		return nil, &StatusError{Status: resp.StatusCode}
	}

	var result SubmitResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Wrap(err, "decode submit response")
	}
	return &result, nil
}
