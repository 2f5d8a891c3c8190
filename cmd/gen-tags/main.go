package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"greg-hacke/go-exif-tags/parser"
	"greg-hacke/go-exif-tags/tags"
)

func main() {
	log, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := newRootCmd(log).Execute(); err != nil {
		log.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds a human-readable logger on stderr.
func newLogger() (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.Encoding = "console"
	config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.OutputPaths = []string{"stderr"}
	config.DisableStacktrace = true

	return config.Build()
}

func newRootCmd(log *zap.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gen-tags",
		Short: "Generate tags.yaml from the exiv2 tag table",
		Long: `Reads ` + parser.DefaultInputFile + ` (the saved tag table from exiv2.org) from the
working directory and writes the grouped lookup table to ` + parser.DefaultOutputFile + `.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := parser.Generate(parser.DefaultInputFile, parser.DefaultOutputFile, log)
			return err
		},
	}

	rootCmd.AddCommand(newHexDemoCmd())
	rootCmd.AddCommand(newLookupCmd())

	return rootCmd
}

func newHexDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hexdemo",
		Short: "Print a sample record showing the hex id rendering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return parser.WriteHexDemo(cmd.OutOrStdout())
		},
	}
}

func newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup [ifd] [id-or-name]",
		Short: "Look up a tag in the generated " + parser.DefaultOutputFile,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := tags.LoadFile(parser.DefaultOutputFile)
			if err != nil {
				return err
			}

			ifd, key := args[0], args[1]

			var it *tags.IndexedTag
			if id, perr := strconv.ParseUint(key, 0, 16); perr == nil {
				it, err = index.Get(ifd, uint16(id))
			} else {
				it, err = index.GetWithName(ifd, key)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), it.String())
			return nil
		},
	}
}
