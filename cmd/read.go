package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ectools/eccli/internal/display"
	"github.com/ectools/eccli/internal/quest"
	"github.com/ectools/eccli/pkg/logtrace"
)

var (
	readYear  int
	readDay   int
	readWidth int
)

// readCmd represents the read command
var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Display a puzzle description in the terminal",
	Long: `Render a quest description as plain text. The cached copy is used
when it already holds every unlocked part; when new parts have unlocked
since it was saved, the description is fetched again first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateYear(readYear); err != nil {
			return err
		}
		if err := validateDay(readDay); err != nil {
			return err
		}

		ctx := logtrace.CtxWithCorrelationID(cmd.Context(), "read")
		store := newStore(appConfig)

		var description string
		if store.HasDescription(readYear, readDay) {
			cached, err := store.LoadDescription(readYear, readDay)
			if err != nil {
				return err
			}

			ec, err := newClient(appConfig)
			if err != nil {
				return err
			}
			keys, err := ec.FetchQuestKeys(ctx, readYear, readDay)
			if err != nil {
				return err
			}

			decision := quest.StalenessOf(cached, keys)
			if decision.Stale {
				logtrace.Info(ctx, "New parts unlocked, re-fetching description", logtrace.Fields{
					"cached_parts":    decision.CachedParts,
					"available_parts": decision.AvailableParts,
				})
				description, err = ec.FetchDescription(ctx, readYear, readDay)
				if err != nil {
					return err
				}
				if _, err := store.SaveDescription(readYear, readDay, description); err != nil {
					return err
				}
			} else {
				logtrace.Info(ctx, "Reading description from local storage", nil)
				description = cached
			}
		} else {
			logtrace.Info(ctx, "Description not found locally, fetching", nil)
			ec, err := newClient(appConfig)
			if err != nil {
				return err
			}
			description, err = ec.FetchDescription(ctx, readYear, readDay)
			if err != nil {
				return err
			}
			if _, err := store.SaveDescription(readYear, readDay, description); err != nil {
				return err
			}
		}

		width := readWidth
		if width <= 0 {
			width = display.TerminalWidth()
		}
		fmt.Println(display.RenderHTML(description, width))
		return nil
	},
}

func init() {
	readCmd.Flags().IntVarP(&readYear, "year", "y", 2024, "Quest year")
	readCmd.Flags().IntVarP(&readDay, "day", "d", 0, "Quest day (1-20)")
	readCmd.Flags().IntVarP(&readWidth, "width", "w", 0, "Terminal width for text wrapping (default: detected)")
	_ = readCmd.MarkFlagRequired("day")
}
