package cmd

import (
	"fmt"
	"time"

	"github.com/ectools/eccli/internal/client"
	"github.com/ectools/eccli/internal/config"
	"github.com/ectools/eccli/internal/storage"
)

func validateYear(year int) error {
	if year < 2024 || year > 2030 {
		return fmt.Errorf("invalid year: %d (must be between 2024-2030)", year)
	}
	return nil
}

func validateDay(day int) error {
	if day < 1 || day > 20 {
		return fmt.Errorf("invalid day: %d (must be 1-20)", day)
	}
	return nil
}

func validatePart(part int) error {
	if part < 1 || part > 3 {
		return fmt.Errorf("invalid part: %d (must be 1-3)", part)
	}
	return nil
}

// newClient builds an API client from the loaded config, resolving the
// session cookie from the environment, config or cookie files.
func newClient(cfg *config.Config) (*client.Client, error) {
	cookie, err := client.LoadCookie(cfg.Session.Cookie, cfg.Session.CookieFile)
	if err != nil {
		return nil, err
	}
	return client.New(client.Options{
		BaseURL: cfg.API.BaseURL,
		CDNURL:  cfg.API.CDNURL,
		Cookie:  cookie,
		Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second,
	}), nil
}

func newStore(cfg *config.Config) *storage.Store {
	return storage.New(cfg.Data.BaseDir)
}
