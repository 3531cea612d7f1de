package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ectools/eccli/internal/config"
	"github.com/ectools/eccli/pkg/logtrace"
)

var (
	// Version info passed from main
	appVersion   string
	appGitCommit string
	appBuildTime string

	// Global flags
	cfgFile  string
	basePath string
	debug    bool
	quiet    bool

	appConfig *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "eccli",
	Short: "CLI for Everybody Codes puzzles",
	Long: `eccli downloads, decrypts and manages Everybody Codes puzzle assets.

Puzzle descriptions and inputs are served encrypted per user and per
quest. eccli resolves the quest keys, decrypts every unlocked part,
stores the results locally and extracts the worked examples so answers
can be tested before submission.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		} else if quiet {
			level = slog.LevelError
		}
		logtrace.Setup("eccli", appVersion, level)

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if basePath != "" {
			cfg.Data.BaseDir = basePath
		}
		appConfig = cfg
		return nil
	},
}

// Execute adds all child commands and executes the root command
func Execute(ver, commit, built string) {
	appVersion = ver
	appGitCommit = commit
	appBuildTime = built

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath(), "config file")
	rootCmd.PersistentFlags().StringVar(&basePath, "base-path", "", "base directory for stored assets (default: data)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress non-error output")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("eccli Version: %s\n", appVersion)
		fmt.Printf("Git Commit: %s\n", appGitCommit)
		fmt.Printf("Build Time: %s\n", appBuildTime)
	},
}
