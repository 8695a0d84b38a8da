// Command loggen writes a rotated set of nginx access-log files of given
// sizes, compressing every rotation older than access.log.1.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/wayneeseguin/loggen/internal/logging"
	"github.com/wayneeseguin/loggen/pkg/generator"
	"github.com/wayneeseguin/loggen/pkg/notify"
)

const (
	exitOK       = 0
	exitFailure  = 1
	exitArgument = 2
)

var version = "dev"

const usageHeader = `Usage
    loggen [flags] [output-dir] <size-gb>...

    Arguments are the size (Gigabyte) of each log file to generate,
    newest first: access.log, access.log.1, access.log.2.gz, ...

    Example:
        loggen 1.5 0.5 1

Flags
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet()
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printUsage(stdout, fs)
			return exitOK
		}
		fmt.Fprintf(stderr, "Problem parsing arguments: %v\n", err)
		printUsage(stderr, fs)
		return exitArgument
	}

	if help, _ := fs.GetBool("help"); help {
		printUsage(stdout, fs)
		return exitOK
	}
	if v, _ := fs.GetBool("version"); v {
		fmt.Fprintf(stdout, "loggen %s\n", version)
		return exitOK
	}

	cfg, err := loadConfig(fs)
	if err != nil {
		fmt.Fprintf(stderr, "Problem parsing arguments: %v\n", describe(err))
		return exitArgument
	}

	dir, spec, err := parseArgs(fs.Args())
	if err != nil {
		fmt.Fprintf(stderr, "Problem parsing arguments: %v\n", describe(err))
		printUsage(stderr, fs)
		return exitArgument
	}
	if dir != "" && !fs.Changed("output-dir") {
		cfg.OutputDir = dir
	}

	log := logging.New(stderr, cfg.level)
	if cfg.ConfigPath != "" {
		log.Debugf("Using config file %s", cfg.ConfigPath)
	}

	opts := append(cfg.options(), generator.WithLogger(log))

	if cfg.NATSURL != "" {
		n, err := notify.NewNATSNotifier(cfg.NATSURL, cfg.NATSSubject)
		if err != nil {
			log.Warnf("Event publishing disabled: %v", err)
		} else {
			defer func() {
				if err := n.Close(); err != nil {
					log.Warnf("Failed to close notifier: %v", err)
				}
			}()
			opts = append(opts, generator.WithNotifier(n))
		}
	}

	result, err := generator.Run(spec, opts...)
	if err != nil {
		fmt.Fprintf(stderr, "Application error: %v\n", err)
		if generator.CodeOf(err) == generator.ErrCodeArgument {
			return exitArgument
		}
		return exitFailure
	}

	for _, f := range result.Files {
		fmt.Fprintln(stdout, f.FinalPath)
	}
	return exitOK
}

// describe strips the operation prefix from argument errors so the user sees
// the message about the offending value only.
func describe(err error) error {
	if generator.CodeOf(err) == generator.ErrCodeArgument {
		return generator.CauseOf(err)
	}
	return err
}

func printUsage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprint(w, usageHeader)
	fmt.Fprint(w, fs.FlagUsages())
}
