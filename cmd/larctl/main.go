// Command larctl runs the HMDA ETL pipeline over local export files and
// writes the LAR output, the exception report and the run trace.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/gabbyignacio7/colony-bank-hmda-cra-tool-sub000/internal/core"
	"github.com/gabbyignacio7/colony-bank-hmda-cra-tool-sub000/internal/ingest"
	"github.com/gabbyignacio7/colony-bank-hmda-cra-tool-sub000/internal/logging"
	"github.com/gabbyignacio7/colony-bank-hmda-cra-tool-sub000/internal/refdata"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "larctl: %v\n%s\n", err, core.FormatUserError(err))
		os.Exit(1)
	}
}

// sourceSupplemental tags files that only fill gaps in primary rows.
const sourceSupplemental = "supplemental"

var sources = []string{core.SourcePrimary, core.SourceSecondary, core.SourceLegacy, sourceSupplemental}

// fileList is a repeatable path flag.
type fileList []string

func (f *fileList) String() string { return strings.Join(*f, ",") }

func (f *fileList) Set(v string) error {
	*f = append(*f, v)
	return nil
}

type options struct {
	inputs      map[string]*fileList
	out         string
	exceptions  string
	trace       string
	refdata     string
	autoCorrect bool
	workers     int
	logLevel    string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("larctl", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{inputs: make(map[string]*fileList)}
	for _, src := range sources {
		list := &fileList{}
		opts.inputs[src] = list
		fs.Var(list, src, "path to a "+src+" export (repeatable)")
	}
	fs.StringVar(&opts.out, "out", "-", "LAR output CSV (- for stdout)")
	fs.StringVar(&opts.exceptions, "exceptions", "", "exception report CSV")
	fs.StringVar(&opts.trace, "trace", "", "run trace JSON")
	fs.StringVar(&opts.refdata, "refdata", os.Getenv("REFDATA_PATH"), "branch and officer reference YAML")
	fs.BoolVar(&opts.autoCorrect, "autocorrect", false, "apply automatic corrections")
	fs.IntVar(&opts.workers, "workers", 0, "row workers (0 uses GOMAXPROCS)")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	primaries := len(*opts.inputs[core.SourcePrimary]) + len(*opts.inputs[core.SourceSecondary]) + len(*opts.inputs[core.SourceLegacy])
	if primaries == 0 {
		return nil, core.ErrNoPrimaryFile
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	logger := logging.New(stderr, opts.logLevel, "text")

	ref, err := refdata.Load(opts.refdata)
	if err != nil {
		return err
	}

	batch, files, err := readInputs(ctx, opts.inputs)
	if err != nil {
		return err
	}
	for _, f := range files {
		logger.Info("file loaded", "name", f.Name, "source", f.Source, "rows", f.Rows)
	}

	p := core.NewPipeline(
		core.WithTransformer(core.NewTransformer(ref.Branches, ref.Officers)),
		core.WithLogger(logger),
		core.WithWorkers(opts.workers),
		core.WithAutoCorrect(opts.autoCorrect),
	)
	res, err := p.Run(ctx, batch)
	if err != nil {
		return err
	}

	if err := writeTo(opts.out, stdout, func(w io.Writer) error {
		return core.WriteCanonicalCSV(w, res.Records)
	}); err != nil {
		return err
	}
	if opts.exceptions != "" {
		if err := writeTo(opts.exceptions, stdout, func(w io.Writer) error {
			return core.WriteExceptionReport(w, res.Findings)
		}); err != nil {
			return err
		}
	}
	if opts.trace != "" {
		if err := writeTo(opts.trace, stdout, func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(res.Trace)
		}); err != nil {
			return err
		}
	}

	logger.Info("run complete",
		"output_rows", len(res.Records),
		"duplicates_removed", res.Duplicates,
		"matched", res.Matched,
		"invalid", res.Invalid,
		"duration", res.Duration,
	)
	return nil
}

// readInputs parses every input file concurrently. Record order follows the
// source order primary, secondary, legacy and then the order of the flags.
func readInputs(ctx context.Context, inputs map[string]*fileList) (core.Batch, []core.SourceFile, error) {
	type job struct {
		path, source string
	}
	var jobs []job
	for _, src := range sources {
		for _, path := range *inputs[src] {
			jobs = append(jobs, job{path: path, source: src})
		}
	}

	parsed := make([]*ingest.File, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := ingest.ReadFile(j.path, ingest.Options{Source: j.source})
			if err != nil {
				return fmt.Errorf("%s: %w", j.path, err)
			}
			parsed[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return core.Batch{}, nil, err
	}

	var batch core.Batch
	files := make([]core.SourceFile, 0, len(parsed))
	for i, f := range parsed {
		if jobs[i].source == sourceSupplemental {
			batch.Supplemental = append(batch.Supplemental, f.Records...)
		} else {
			batch.Primary = append(batch.Primary, f.Records...)
		}
		files = append(files, f.Summary())
	}
	return batch, files, nil
}

// writeTo writes to path, or to stdout when path is "-".
func writeTo(path string, stdout io.Writer, fn func(io.Writer) error) error {
	if path == "-" {
		return fn(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
