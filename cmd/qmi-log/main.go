// Command qmi-log views and analyzes QMI protocol captures (.qlog files)
// written by the pkg/log FileLogger.
//
// Usage:
//
//	qmi-log <command> [flags] <file.qlog>
//
// Commands:
//
//	view     View a capture in human-readable format
//	export   Export a capture to JSON lines or CSV
//	filter   Write matching events to a new capture
//	stats    Show statistics about a capture
//
// Examples:
//
//	# Show only DMS traffic of client 1
//	qmi-log view -service dms -cid 1 modem.qlog
//
//	# Keep only aborts
//	qmi-log filter -category abort -o aborts.qlog modem.qlog
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/freedesktop/libqmi/cmd/qmi-log/commands"
)

const usage = `qmi-log - QMI Protocol Log Analyzer

Usage:
  qmi-log <command> [flags] <file.qlog>

Commands:
  view     View a capture in human-readable format
  export   Export a capture to JSON lines or CSV
  filter   Write matching events to a new capture
  stats    Show statistics about a capture

Use "qmi-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
	if err := run(os.Args[1], os.Args[2:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd string, args []string, stdout io.Writer) error {
	switch cmd {
	case "view":
		return runView(args, stdout)
	case "export":
		return runExport(args, stdout)
	case "filter":
		return runFilter(args, stdout)
	case "stats":
		return runStats(args, stdout)
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func newFlagSet(name, summary string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "qmi-log %s - %s\n\nUsage:\n  qmi-log %s [flags] <file.qlog>\n\nFlags:\n", name, summary, name)
		fs.PrintDefaults()
	}
	return fs
}

func filterFlags(fs *flag.FlagSet) *commands.FilterOptions {
	var o commands.FilterOptions
	fs.StringVar(&o.ConnID, "conn-id", "", "Filter by connection ID")
	fs.StringVar(&o.Service, "service", "", "Filter by service (e.g. dms, wds)")
	fs.StringVar(&o.ClientID, "cid", "", "Filter by client id")
	fs.StringVar(&o.MessageID, "msg-id", "", "Filter by message id (e.g. 0x0025)")
	fs.StringVar(&o.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&o.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	fs.StringVar(&o.Layer, "layer", "", "Filter by layer (transport, client)")
	fs.StringVar(&o.Direction, "direction", "", "Filter by direction (in, out)")
	fs.StringVar(&o.Category, "category", "", "Filter by category (message, abort, error)")
	return &o
}

func capturePath(fs *flag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return "", fmt.Errorf("log file path required")
	}
	return fs.Arg(0), nil
}

func runView(args []string, stdout io.Writer) error {
	fs := newFlagSet("view", "View a capture in human-readable format")
	opts := filterFlags(fs)
	path, err := capturePath(fs, args)
	if err != nil {
		return err
	}
	filter, err := opts.Build()
	if err != nil {
		return err
	}
	return commands.RunView(path, filter, stdout)
}

func runExport(args []string, stdout io.Writer) error {
	fs := newFlagSet("export", "Export a capture to JSON lines or CSV")
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")
	opts := filterFlags(fs)
	path, err := capturePath(fs, args)
	if err != nil {
		return err
	}
	filter, err := opts.Build()
	if err != nil {
		return err
	}

	w := stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return commands.RunExport(path, *format, filter, w)
}

func runFilter(args []string, stdout io.Writer) error {
	fs := newFlagSet("filter", "Write matching events to a new capture")
	output := fs.String("o", "", "Output file (required)")
	opts := filterFlags(fs)
	path, err := capturePath(fs, args)
	if err != nil {
		return err
	}
	if *output == "" {
		fs.Usage()
		return fmt.Errorf("output file (-o) required")
	}
	filter, err := opts.Build()
	if err != nil {
		return err
	}

	n, err := commands.RunFilter(path, *output, filter)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Filtered %d events to %s\n", n, *output)
	return nil
}

func runStats(args []string, stdout io.Writer) error {
	fs := newFlagSet("stats", "Show statistics about a capture")
	path, err := capturePath(fs, args)
	if err != nil {
		return err
	}
	return commands.RunStats(path, stdout)
}
