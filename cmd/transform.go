package cmd

import (
	"fmt"

	"github.com/eernst/seqsieve/pipeline"
	"github.com/eernst/seqsieve/seqmath"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(revcompCmd)
	RootCmd.AddCommand(translateCmd)

	addOutputFlag(revcompCmd.Flags())

	translateCmd.Flags().IntP("table", "c", 1, "NCBI genetic code table.")
	translateCmd.Flags().IntP("frame", "f", 1, "Reading frame: 1, 2, 3, -1, -2 or -3.")
	addOutputFlag(translateCmd.Flags())
}

var revcompCmd = &cobra.Command{
	Use:   "revcomp [SEQUENCE_FILE]",
	Short: "Reverse complement nucleotide records.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		return runTransform(args, out, func(rec pipeline.Record) (pipeline.Record, error) {
			rc, err := seqmath.ReverseComplement(rec.Seq)
			if err != nil {
				return rec, fmt.Errorf("%q: %w", rec.ID(), err)
			}
			rec.Seq = rc
			return rec, nil
		})
	},
}

var translateCmd = &cobra.Command{
	Use:   "translate [SEQUENCE_FILE]",
	Short: "Translate nucleotide records to protein.",
	Long: `

translate converts each nucleotide record to protein using one of the NCBI
genetic code tables. Stop codons are written as '*' and codons containing
ambiguous bases as 'X'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		out, _ := flags.GetString("out")
		table, _ := flags.GetInt("table")
		frame, _ := flags.GetInt("frame")
		return runTransform(args, out, func(rec pipeline.Record) (pipeline.Record, error) {
			p, err := seqmath.Translate(rec.Seq, table, frame)
			if err != nil {
				return rec, fmt.Errorf("%q: %w", rec.ID(), err)
			}
			rec.Seq = p
			return rec, nil
		})
	},
}

func runTransform(args []string, out string, fn pipeline.TransformFunc) error {
	n, err := pipeline.Transform(pipeline.TransformOptions{
		Input:     inputOrStdin(args),
		Output:    out,
		LineWidth: lineWidth(),
		Log:       log,
	}, fn)
	if err != nil {
		return err
	}
	log.WithField("records", n).Debug("transform done")
	return nil
}
