package cmd

import (
	"fmt"

	"github.com/eernst/seqsieve/pipeline"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().IntP("number", "n", 0, "Number of records to sample.")
	sampleCmd.Flags().Float64P("proportion", "P", 0, "Fraction of records to sample, in (0, 1].")
	sampleCmd.Flags().Uint64P("seed", "s", 0, "Random seed; 0 picks a different sample each run.")
	addOutputFlag(sampleCmd.Flags())
}

var sampleCmd = &cobra.Command{
	Use:   "sample (-n N | -P PROPORTION) [SEQUENCE_FILE]",
	Short: "Randomly sample records without replacement.",
	Long: `

sample loads every record of the input, picks a uniform random subset of the
requested size, and writes it in input order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		n, _ := flags.GetInt("number")
		p, _ := flags.GetFloat64("proportion")
		seed, _ := flags.GetUint64("seed")
		out, _ := flags.GetString("out")

		if (n == 0) == (p == 0) {
			return fmt.Errorf("exactly one of --number and --proportion is required")
		}

		written, err := pipeline.Sample(pipeline.SampleOptions{
			Input:      inputOrStdin(args),
			Output:     out,
			N:          n,
			Proportion: p,
			Seed:       seed,
			LineWidth:  lineWidth(),
			Log:        log,
		})
		if err != nil {
			return err
		}
		log.WithField("records", written).Info("sample done")
		return nil
	},
}
