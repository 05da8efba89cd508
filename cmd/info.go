package cmd

import (
	"bufio"
	"fmt"
	"sort"

	"github.com/eernst/seqsieve/pipeline"
	"github.com/eernst/seqsieve/seqmath"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolP("summary", "s", false, "Only output summary info for all sequences.")
}

var infoCmd = &cobra.Command{
	Use:   "info [SEQUENCE_FILE]",
	Short: "Show basic sequence info.",
	Long: `

Print basic sequence info including name, length, GC content and alphabet in
a tabular format, one input sequence per row, followed by a summary on STDERR.
With --summary only the summary is printed, on STDOUT.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		summaryOnly, _ := cmd.Flags().GetBool("summary")
		summaryOut := cmd.ErrOrStderr()
		if summaryOnly {
			summaryOut = cmd.OutOrStdout()
		}
		in := inputOrStdin(args)

		r, err := pipeline.OpenInput(in)
		if err != nil {
			return fmt.Errorf("open input %s: %w", in, err)
		}
		defer r.Close()

		w := bufio.NewWriter(cmd.OutOrStdout())
		defer w.Flush()

		if PrintHeader && !summaryOnly {
			fmt.Fprintf(w, "accession\tlength\tgc-content\talphabet\n")
		}

		var (
			totalSeqs int
			totalLen  int
			bases     seqmath.Counts
			seqLens   []int
		)
		p := pipeline.NewParser(r)
		for p.Next() {
			rec := p.Record()
			c := seqmath.CountBases(rec.Seq)
			bases.Add(c)
			totalSeqs++
			totalLen += len(rec.Seq)
			seqLens = append(seqLens, len(rec.Seq))

			if !summaryOnly {
				fmt.Fprintf(w, "%s\t%d\t%.2f\t%s\n", rec.ID(), len(rec.Seq), seqmath.GC(rec.Seq)*100, seqmath.Classify(rec.Seq))
			}
		}
		if err := p.Err(); err != nil {
			return fmt.Errorf("read %s: %w", in, err)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if totalSeqs == 0 {
			fmt.Fprintf(summaryOut, "No sequences.\n")
			return nil
		}

		sort.Ints(seqLens)
		nxx := seqmath.Nxx(seqLens, totalLen)
		gcPercent := float64(bases.G+bases.C) / float64(totalLen) * 100

		const sep string = "--------------------\n"
		fmt.Fprintf(summaryOut, "\nSUMMARY\n"+sep)
		fmt.Fprintf(summaryOut, "Total Seqs (#): %23d\n", totalSeqs)
		fmt.Fprintf(summaryOut, "Total Length (bp): %20d\n", totalLen)
		fmt.Fprintf(summaryOut, "Overall GC Content (%%): %15.2f\n", gcPercent)
		fmt.Fprintf(summaryOut, "Shortest (bp): %24d\n", seqLens[0])
		fmt.Fprintf(summaryOut, "Longest (bp): %25d\n", seqLens[len(seqLens)-1])
		fmt.Fprintf(summaryOut, "Median (bp): %26d\n", seqmath.Median(seqLens))
		fmt.Fprintf(summaryOut, "N50 (bp): %29d\n", nxx[50])
		fmt.Fprintf(summaryOut, "N75 (bp): %29d\n", nxx[75])
		fmt.Fprintf(summaryOut, "\nBASES\n"+sep)
		fmt.Fprintf(summaryOut, "A: %36d\nC: %36d\nG: %36d\nT: %36d\nU: %36d\nN: %36d\n",
			bases.A, bases.C, bases.G, bases.T, bases.U, bases.N)
		return nil
	},
}
