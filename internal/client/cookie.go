package client

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/ectools/eccli/pkg/logtrace"
)

// LoadCookie resolves the session cookie. Sources, in order:
// the EC_COOKIE environment variable, an explicit value from the
// config file, an explicit cookie file from the config file,
// ~/.everybodycodes.cookie, and finally the user config directory
// (everybodycodes/cookie). Returns ErrMissingCookie when none exist.
func LoadCookie(configured, configuredFile string) (string, error) {
	ctx := logtrace.CtxWithCorrelationID(context.Background(), "cookie")

	if cookie := strings.TrimSpace(os.Getenv("EC_COOKIE")); cookie != "" {
		logtrace.Debug(ctx, "Loaded cookie from EC_COOKIE environment variable", nil)
		return cookie, nil
	}

	if configured != "" {
		return strings.TrimSpace(configured), nil
	}

	candidates := make([]string, 0, 3)
	if configuredFile != "" {
		candidates = append(candidates, configuredFile)
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".everybodycodes.cookie"))
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(configDir, "everybodycodes", "cookie"))
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cookie := strings.TrimSpace(string(data))
		if cookie == "" {
			continue
		}
		logtrace.Debug(ctx, "Loaded cookie from file", logtrace.Fields{
			logtrace.FieldPath: path,
		})
		return cookie, nil
	}

	return "", ErrMissingCookie
}
