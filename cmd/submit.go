package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ectools/eccli/internal/client"
	"github.com/ectools/eccli/internal/display"
	"github.com/ectools/eccli/pkg/logtrace"
)

var (
	submitYear int
	submitDay  int
	submitPart int
)

// submitCmd represents the submit command
var submitCmd = &cobra.Command{
	Use:   "submit <answer>",
	Short: "Submit a puzzle answer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateYear(submitYear); err != nil {
			return err
		}
		if err := validateDay(submitDay); err != nil {
			return err
		}
		if err := validatePart(submitPart); err != nil {
			return err
		}

		ctx := logtrace.CtxWithCorrelationID(cmd.Context(), "submit")

		ec, err := newClient(appConfig)
		if err != nil {
			return err
		}

		resp, err := ec.SubmitAnswer(ctx, submitYear, submitDay, submitPart, args[0])
		if errors.Is(err, client.ErrAlreadySubmitted) {
			fmt.Println("Answer was already submitted for this part.")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Print(display.FormatSubmitResponse(resp))
		return nil
	},
}

func init() {
	submitCmd.Flags().IntVarP(&submitYear, "year", "y", 2024, "Quest year")
	submitCmd.Flags().IntVarP(&submitDay, "day", "d", 0, "Quest day (1-20)")
	submitCmd.Flags().IntVarP(&submitPart, "part", "p", 0, "Quest part (1-3)")
	_ = submitCmd.MarkFlagRequired("day")
	_ = submitCmd.MarkFlagRequired("part")
}
