package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ectools/eccli/internal/quest"
	"github.com/ectools/eccli/pkg/logtrace"
)

var (
	fetchYear            int
	fetchDay             int
	fetchPart            int
	fetchDescriptionOnly bool
	fetchInputOnly       bool
	fetchDescriptionPath string
	fetchInputPath       string
	fetchSamplePath      string
	fetchAnswerPath      string
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download and decrypt puzzle inputs and descriptions",
	Long: `Download the encrypted description and input for a quest, decrypt
every unlocked part and store the results locally. The worked example
and its expected answer are extracted from each part's narrative and
saved alongside, so solutions can be checked before submitting.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateYear(fetchYear); err != nil {
			return err
		}
		if err := validateDay(fetchDay); err != nil {
			return err
		}
		if err := validatePart(fetchPart); err != nil {
			return err
		}

		ctx := logtrace.CtxWithCorrelationID(cmd.Context(), "fetch")

		ec, err := newClient(appConfig)
		if err != nil {
			return err
		}

		store := newStore(appConfig)
		if fetchDescriptionPath != "" {
			store = store.WithDescriptionPath(fetchDescriptionPath)
		}
		if fetchInputPath != "" {
			store = store.WithInputPath(fetchInputPath)
		}
		if fetchSamplePath != "" {
			store = store.WithSamplePath(fetchSamplePath)
		}
		if fetchAnswerPath != "" {
			store = store.WithAnswerPath(fetchAnswerPath)
		}

		if !fetchInputOnly {
			description, err := ec.FetchDescription(ctx, fetchYear, fetchDay)
			if err != nil {
				return err
			}
			path, err := store.SaveDescription(fetchYear, fetchDay, description)
			if err != nil {
				return err
			}
			logtrace.Info(ctx, "Description saved", logtrace.Fields{
				logtrace.FieldPath: path,
			})

			samples, answers := quest.LastSamples(description)
			answerByPart := make(map[int]string, len(answers))
			for _, a := range answers {
				answerByPart[a.Part] = a.Value
			}

			for _, sample := range samples {
				path, err := store.SaveSample(fetchYear, fetchDay, sample.Part, sample.Content)
				if err != nil {
					return err
				}
				logtrace.Info(ctx, "Sample saved", logtrace.Fields{
					logtrace.FieldPart: sample.Part,
					logtrace.FieldPath: path,
				})

				value, ok := answerByPart[sample.Part]
				if !ok {
					logtrace.Warn(ctx, "Could not extract expected answer", logtrace.Fields{
						logtrace.FieldPart: sample.Part,
					})
					continue
				}
				path, err = store.SaveExpectedAnswer(fetchYear, fetchDay, sample.Part, value)
				if err != nil {
					return err
				}
				logtrace.Info(ctx, "Expected answer saved", logtrace.Fields{
					logtrace.FieldPart: sample.Part,
					logtrace.FieldPath: path,
				})
			}
		}

		if !fetchDescriptionOnly {
			input, err := ec.FetchInput(ctx, fetchYear, fetchDay, fetchPart)
			if err != nil {
				return err
			}
			path, err := store.SaveInput(fetchYear, fetchDay, fetchPart, input)
			if err != nil {
				return err
			}
			logtrace.Info(ctx, "Input saved", logtrace.Fields{
				logtrace.FieldPath: path,
			})
		}

		return nil
	},
}

func init() {
	fetchCmd.Flags().IntVarP(&fetchYear, "year", "y", 2024, "Quest year")
	fetchCmd.Flags().IntVarP(&fetchDay, "day", "d", 0, "Quest day (1-20)")
	fetchCmd.Flags().IntVarP(&fetchPart, "part", "p", 0, "Quest part (1-3)")
	fetchCmd.Flags().BoolVar(&fetchDescriptionOnly, "description-only", false, "Download description only (skip input)")
	fetchCmd.Flags().BoolVar(&fetchInputOnly, "input-only", false, "Download input only (skip description)")
	fetchCmd.Flags().StringVar(&fetchDescriptionPath, "description-path", "", "Custom path for the description file")
	fetchCmd.Flags().StringVar(&fetchInputPath, "input-path", "", "Custom path for the input file")
	fetchCmd.Flags().StringVar(&fetchSamplePath, "sample-path", "", "Custom path for the sample file")
	fetchCmd.Flags().StringVar(&fetchAnswerPath, "answer-path", "", "Custom path for the expected answer file")
	_ = fetchCmd.MarkFlagRequired("day")
	_ = fetchCmd.MarkFlagRequired("part")
}
