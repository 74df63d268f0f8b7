// Command comb exercises the example grammars from the command line:
// decode JSON, evaluate infix arithmetic, or just check that input
// parses.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	combcsv "github.com/tef/comb/csv"
	"github.com/tef/comb/infix"
	combjson "github.com/tef/comb/json"
)

var log = logrus.New()

func readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(args[0])
	return string(b), err
}

func main() {
	var verbose bool

	root := &cobra.Command{
		Use:           "comb",
		Short:         "parser combinator example grammars",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	jsonCmd := &cobra.Command{
		Use:   "json [file]",
		Short: "decode a JSON document and print it re-encoded",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(args)
			if err != nil {
				return err
			}
			log.WithField("bytes", len(in)).Debug("decoding")
			v, err := combjson.Decode(in)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}

	infixCmd := &cobra.Command{
		Use:   "infix EXPR",
		Short: "evaluate an arithmetic expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := infix.Eval(args[0])
			if err != nil {
				return err
			}
			fmt.Println(v.String())
			return nil
		},
	}

	var grammar string
	checkCmd := &cobra.Command{
		Use:   "check [file]",
		Short: "check that input parses under the chosen grammar",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(args)
			if err != nil {
				return err
			}
			switch grammar {
			case "json":
				_, err = combjson.Decode(in)
			case "csv":
				_, err = combcsv.Parse(in)
			case "infix":
				_, err = infix.Parse(strings.TrimSpace(in))
			default:
				return fmt.Errorf("unknown grammar %q", grammar)
			}
			if err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}
	checkCmd.Flags().StringVarP(&grammar, "grammar", "g", "json", "grammar to check against (json, csv, infix)")

	root.AddCommand(jsonCmd, infixCmd, checkCmd)

	if err := root.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
