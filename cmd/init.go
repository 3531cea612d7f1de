package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/ectools/eccli/internal/config"
)

var forceInit bool

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactive setup of the eccli configuration",
	Long: `Initialize eccli by creating a configuration file and storing the
session cookie.

This command will guide you through an interactive setup process to:
1. Store the everybody-codes session cookie
2. Choose where fetched assets are kept
3. Write a config file at ~/.eccli/config.yml

The cookie value can be copied from the browser's everybody.codes
session (the 'everybody-codes' cookie).

Example:
  eccli init
  eccli init --force  # Overwrite an existing configuration`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if _, err := os.Stat(path); err == nil && !forceInit {
			return fmt.Errorf("config file already exists at %s\nUse --force to overwrite", path)
		}

		var cookie string
		cookiePrompt := &survey.Password{
			Message: "Session cookie (everybody-codes):",
		}
		if err := survey.AskOne(cookiePrompt, &cookie, survey.WithValidator(survey.Required)); err != nil {
			return err
		}

		baseDir := "data"
		baseDirPrompt := &survey.Input{
			Message: "Base directory for fetched assets:",
			Default: baseDir,
		}
		if err := survey.AskOne(baseDirPrompt, &baseDir); err != nil {
			return err
		}

		// The cookie lives in its own file so the config can be shared
		// or committed without leaking the session.
		cookiePath, err := writeCookieFile(cookie)
		if err != nil {
			return err
		}

		cfg := &config.Config{}
		cfg.Data.BaseDir = baseDir
		cfg.Session.CookieFile = cookiePath
		if err := config.Save(cfg, path); err != nil {
			return err
		}

		fmt.Printf("Configuration written to %s\n", path)
		fmt.Printf("Session cookie stored at %s\n", cookiePath)
		fmt.Println("\nNext steps:")
		fmt.Println("  eccli fetch -d <day> -p 1")
		fmt.Println("  eccli read -d <day>")
		return nil
	},
}

func writeCookieFile(cookie string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	path := filepath.Join(home, ".everybodycodes.cookie")
	if err := os.WriteFile(path, []byte(cookie+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("failed to write cookie file: %w", err)
	}
	return path, nil
}

func init() {
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing configuration")
}
