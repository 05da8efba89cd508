package cmd

import (
	"fmt"

	"github.com/eernst/seqsieve/pipeline"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	RootCmd.AddCommand(dedupCmd)

	dedupCmd.Flags().StringP("mode", "m", "seq", "Key to deduplicate on: \"seq\" (case-insensitive sequence) or \"id\" (first header word).")
	addOutputFlag(dedupCmd.Flags())
	dedupCmd.Flags().IntP("shards", "", 1, "Number of lock stripes in the shared key set.")
	dedupCmd.Flags().BoolP("strict", "", false, "Exit with an error if any input file failed.")
}

var dedupCmd = &cobra.Command{
	Use:   "dedup SEQUENCE_FILE...",
	Short: "Remove duplicate records across one or more FASTA files.",
	Long: `

dedup keeps the first record seen for each distinct key across all input
files and writes it to a single output. Files are processed in parallel, one
worker per file, so records from one file keep their order but records from
different files may interleave differently between runs.

Unreadable input files are reported and skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		modeName, _ := flags.GetString("mode")
		out, _ := flags.GetString("out")
		shards, _ := flags.GetInt("shards")
		strict, _ := flags.GetBool("strict")

		mode, err := pipeline.ParseKeyMode(modeName)
		if err != nil {
			return err
		}

		res, err := pipeline.Deduplicate(pipeline.DedupOptions{
			Inputs:    args,
			Output:    out,
			Mode:      mode,
			Threads:   viper.GetInt(keyThreads),
			LineWidth: lineWidth(),
			Shards:    shards,
			Log:       log,
		})
		if err != nil {
			return err
		}

		failed := 0
		for _, f := range res.Files {
			if f.Err != nil {
				failed++
			}
		}
		log.WithFields(logrus.Fields{
			"records": res.Count,
			"files":   len(res.Files),
			"failed":  failed,
		}).Info("dedup done")
		if strict && failed > 0 {
			return fmt.Errorf("%d of %d input files failed: %w", failed, len(res.Files), res.Err())
		}
		return nil
	},
}
