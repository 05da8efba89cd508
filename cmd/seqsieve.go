package cmd

import (
	"fmt"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/eernst/seqsieve/pipeline"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var RootCmd = &cobra.Command{
	Use:   "seqsieve",
	Short: "seqsieve deduplicates, filters and samples FASTA records.",
	Long: `seqsieve performs bulk record-level operations on FASTA files: deduplication
across many files in parallel, header filtering, random sampling, and a few
sequence transforms and statistics.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return StartProfiling()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		StopProfiling()
	},
}

const (
	// Config keys, shared by flags, $HOME/.seqsieve.yaml and SEQSIEVE_* env.
	keyThreads   = "threads"
	keyLineWidth = "line-width"
	keyVerbose   = "verbose"
)

var cfgFile string

var PrintHeader bool

var log = logrus.New()

var MemProfileFileName string
var CpuProfileFileName string
var cpuProfileFile *os.File

func StartProfiling() error {
	if CpuProfileFileName != "" {
		f, err := os.Create(CpuProfileFileName)
		if err != nil {
			return fmt.Errorf("create cpu profile: %w", err)
		}
		cpuProfileFile = f
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("start cpu profile: %w", err)
		}
		log.WithField("file", CpuProfileFileName).Debug("cpu profiling started")
	}
	return nil
}

func StopProfiling() {
	if cpuProfileFile != nil {
		pprof.StopCPUProfile()
		cpuProfileFile.Close()
		cpuProfileFile = nil
	}
	if MemProfileFileName != "" {
		f, err := os.Create(MemProfileFileName)
		if err != nil {
			log.WithError(err).Warn("cannot write memory profile")
			return
		}
		defer f.Close()
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.WithError(err).Warn("cannot write memory profile")
		}
	}
}

// Execute adds all child commands to the root command sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := RootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file. (default is $HOME/.seqsieve.yaml)")
	pf.BoolP(keyVerbose, "", false, "Enable verbose output.")
	pf.IntP(keyThreads, "t", 0, "Process up to this many input files in parallel. (default: number of CPUs)")
	pf.IntP(keyLineWidth, "w", pipeline.DefaultLineWidth, "Wrap output sequences at this width; 0 disables wrapping.")
	pf.BoolVarP(&PrintHeader, "print-header", "", false, "Include column header in tabular output.")
	pf.StringVarP(&MemProfileFileName, "memprofile", "", "", "Write a memory profile to this file.")
	pf.StringVarP(&CpuProfileFileName, "cpuprofile", "", "", "Write a CPU profile to this file.")

	for _, k := range []string{keyThreads, keyLineWidth, keyVerbose} {
		if err := viper.BindPFlag(k, pf.Lookup(k)); err != nil {
			panic(err)
		}
	}

	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" { // enable ability to specify config file via flag
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".seqsieve") // name of config file (without extension)
		viper.AddConfigPath("$HOME")     // adding home directory as first search path
	}
	viper.SetEnvPrefix("seqsieve")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	err := viper.ReadInConfig()

	if viper.GetBool(keyVerbose) {
		log.SetLevel(logrus.DebugLevel)
	}
	switch {
	case err == nil:
		log.WithField("file", viper.ConfigFileUsed()).Debug("using config file")
	case cfgFile != "":
		log.WithError(err).Warn("cannot read config file")
	}
}

// lineWidth maps the configured width onto pipeline options.
func lineWidth() int {
	if w := viper.GetInt(keyLineWidth); w != 0 {
		return w
	}
	return pipeline.NoWrap
}

// addOutputFlag registers the -o/--out flag shared by writing commands.
func addOutputFlag(fs *pflag.FlagSet) {
	fs.StringP("out", "o", "-", "Output FASTA file, \"-\" for STDOUT. A .gz/.xz/.zst suffix compresses.")
}

// inputOrStdin returns the single positional input, or "-" for stdin.
func inputOrStdin(args []string) string {
	if len(args) == 0 {
		log.Info("No input sequence file given. Reading from STDIN.")
		return "-"
	}
	return args[0]
}
