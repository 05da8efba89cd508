package cmd

import (
	"fmt"

	"github.com/eernst/seqsieve/pipeline"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	RootCmd.AddCommand(filterCmd)

	filterCmd.Flags().StringArrayP("pattern", "p", nil, "Substring to look for in headers. May be repeated.")
	filterCmd.Flags().BoolP("invert-match", "v", false, "Selected records are those not matching any of the specified patterns.")
	filterCmd.Flags().BoolP("ignore-case", "i", false, "Perform case insensitive matching.")
	addOutputFlag(filterCmd.Flags())
}

var filterCmd = &cobra.Command{
	Use:   "filter -p PATTERN [-p PATTERN...] [SEQUENCE_FILE]",
	Short: "Select records whose header contains any of the given patterns.",
	Long: `

filter scans input records in order and writes those whose header contains at
least one of the patterns as a plain substring. With -v, records matching none
of the patterns are written instead, so the two runs partition the input.

Sequence can be piped in on STDIN.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		patterns, _ := flags.GetStringArray("pattern")
		invert, _ := flags.GetBool("invert-match")
		ignoreCase, _ := flags.GetBool("ignore-case")
		out, _ := flags.GetString("out")

		if len(patterns) == 0 {
			return fmt.Errorf("can't filter without a pattern")
		}

		n, err := pipeline.Filter(pipeline.FilterOptions{
			Input:      inputOrStdin(args),
			Output:     out,
			Patterns:   patterns,
			Invert:     invert,
			IgnoreCase: ignoreCase,
			Threads:    viper.GetInt(keyThreads),
			LineWidth:  lineWidth(),
			Log:        log,
		})
		if err != nil {
			return err
		}
		log.WithField("records", n).Info("filter done")
		return nil
	},
}
