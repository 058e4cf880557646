// toon - TOON codec CLI tool
//
// Usage:
//
//	toon encode [--indent N] [--delimiter comma|tab|pipe] [file]
//	toon decode [--indent N] [--lenient] [file]
//	toon validate [--indent N] [file]
//	toon version
//
// encode reads JSON (JSONC accepted: comments and trailing commas are
// stripped) and writes TOON. decode reads TOON and writes JSON.
// validate reads TOON and checks it in strict mode.
//
// If no file is given, reads from stdin. Exit code is 0 on success and
// 1 on any parse or encode failure, with a diagnostic on stderr.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"

	"github.com/Neumenon/toon/toon"
)

const version = "2.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "encode":
		cmdEncode(args)
	case "decode":
		cmdDecode(args)
	case "validate":
		cmdValidate(args)
	case "version", "-v", "--version":
		fmt.Printf("toon %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `toon - TOON v2.0 codec

Usage:
  toon encode [--indent N] [--delimiter comma|tab|pipe] [file]
  toon decode [--indent N] [--lenient] [file]
  toon validate [--indent N] [file]
  toon version

encode reads JSON (comments and trailing commas tolerated) from the
file or stdin and writes TOON to stdout. decode converts TOON back to
JSON. validate checks TOON in strict mode and prints nothing.
`)
}

func cmdEncode(args []string) {
	fs := pflag.NewFlagSet("encode", pflag.ExitOnError)
	indent := fs.Int("indent", 2, "spaces per indentation level")
	delimiter := fs.String("delimiter", "comma", "value delimiter: comma, tab, or pipe")
	parseFlags(fs, args)

	opts := toon.DefaultEncodeOptions()
	opts.Indent = *indent
	switch *delimiter {
	case "comma":
		opts.Delimiter = toon.DelimComma
	case "tab":
		opts.Delimiter = toon.DelimTab
	case "pipe":
		opts.Delimiter = toon.DelimPipe
	default:
		fatal("invalid delimiter: %s (want comma, tab, or pipe)", *delimiter)
	}

	data := readInput(fs.Args())
	v, err := toon.FromJSON(jsonc.ToJSON(data))
	if err != nil {
		fatal("parse JSON: %v", err)
	}
	out := toon.MarshalWithOptions(v, opts)
	fmt.Println(out)
}

func cmdDecode(args []string) {
	fs := pflag.NewFlagSet("decode", pflag.ExitOnError)
	indent := fs.Int("indent", 2, "spaces per indentation level")
	lenient := fs.Bool("lenient", false, "recover from shape and count anomalies")
	parseFlags(fs, args)

	opts := toon.DefaultDecodeOptions()
	opts.Indent = *indent
	opts.Strict = !*lenient

	data := readInput(fs.Args())
	v, err := toon.UnmarshalWithOptions(string(data), opts)
	if err != nil {
		fatal("%v", err)
	}
	out, err := toon.ToJSON(v)
	if err != nil {
		fatal("emit JSON: %v", err)
	}
	os.Stdout.Write(out)
	fmt.Println()
}

func cmdValidate(args []string) {
	fs := pflag.NewFlagSet("validate", pflag.ExitOnError)
	indent := fs.Int("indent", 2, "spaces per indentation level")
	parseFlags(fs, args)

	opts := toon.DefaultDecodeOptions()
	opts.Indent = *indent

	data := readInput(fs.Args())
	if _, err := toon.UnmarshalWithOptions(string(data), opts); err != nil {
		fatal("%v", err)
	}
}

func parseFlags(fs *pflag.FlagSet, args []string) {
	if err := fs.Parse(args); err != nil {
		fatal("%v", err)
	}
}

// readInput reads the whole file argument, or stdin for "-" or no
// argument.
func readInput(args []string) []byte {
	var in io.Reader = os.Stdin
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			fatal("open file: %v", err)
		}
		defer f.Close()
		in = f
	}
	data, err := io.ReadAll(in)
	if err != nil {
		fatal("read input: %v", err)
	}
	return data
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "toon: "+format+"\n", args...)
	os.Exit(1)
}
