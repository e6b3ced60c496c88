// This tool doubles the sample rate of WAV files by inserting a linearly
// interpolated sample between every pair of frames.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	interp "github.com/RubisetCie/Interp"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const appName = "interp"

var (
	errOutputCollision   = errors.New("output path already used by another input")
	errIncompleteCommand = errors.New("incomplete command")
	errOutputIsDirectory = errors.New("the output path must not be a directory")
	errInvalidJobs       = errors.New("the number of jobs must be at least 1")
)

type config struct {
	output    string
	outputDir bool
	inputs    []string
	jobs      int
	verbose   bool
	aiff      bool
	header    interp.HeaderOptions
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseArgs(args, stdout, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}

	if err != nil {
		return 1
	}

	log := logrus.StandardLogger()
	log.SetOutput(stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.InfoLevel)

	if cfg.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if cfg.outputDir {
		err := os.MkdirAll(cfg.output, 0o755)
		if err != nil {
			log.WithField("dir", cfg.output).Errorf("can't create the output directory: %v", err)
			return 1
		}
	}

	d := &doubler{cfg: cfg, log: log, progress: &syncWriter{w: stdout}}
	d.processAll()

	return 0
}

// parseArgs reads the command line. Requested help goes to stdout, argument
// errors to stderr.
func parseArgs(args []string, stdout, stderr io.Writer) (*config, error) {
	cfg := &config{}

	flagSet := flag.NewFlagSet(appName, flag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.Usage = func() {
		fmt.Fprintf(flagSet.Output(), "Usage: %s (options) (input wave 1) [(...) (input wav n)]\n\nOptions:\n", appName)
		flagSet.PrintDefaults()
	}

	help := flagSet.Bool("h", false, "Show this help.")
	flagSet.BoolVar(help, "?", false, "Show this help.")
	flagSet.StringVar(&cfg.output, "o", "", "Output file or output directory depending on the input.")
	flagSet.IntVar(&cfg.jobs, "j", 1, "Number of files processed in parallel.")
	flagSet.BoolVar(&cfg.verbose, "v", false, "Log debug details.")
	flagSet.BoolVar(&cfg.aiff, "aiff", false, "Write AIFF files instead of WAV (PCM input only).")
	flagSet.BoolVar(&cfg.header.LegacyBlockAlign, "legacy-block-align", false, "Write a block align of 2 bytes per channel.")

	if len(args) == 0 {
		flagSet.SetOutput(stdout)
		flagSet.Usage()
		return nil, flag.ErrHelp
	}

	err := flagSet.Parse(args)
	if err != nil {
		// the flag set already reported it
		return nil, err
	}

	if *help {
		flagSet.SetOutput(stdout)
		flagSet.Usage()
		return nil, flag.ErrHelp
	}

	cfg.inputs = flagSet.Args()
	cfg.outputDir = cfg.output != "" && len(cfg.inputs) > 1

	switch {
	case len(cfg.inputs) == 0:
		err = errIncompleteCommand
	case cfg.jobs < 1:
		err = errInvalidJobs
	case cfg.output != "" && !cfg.outputDir && strings.HasSuffix(cfg.output, string(filepath.Separator)):
		err = errOutputIsDirectory
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v!\n", err)

		if errors.Is(err, errIncompleteCommand) {
			flagSet.Usage()
		}

		return nil, err
	}

	return cfg, nil
}

type doubler struct {
	cfg      *config
	log      *logrus.Logger
	progress io.Writer
}

// processAll doubles every input. A failing file is reported and skipped, as
// is every input whose output path was already claimed by an earlier one.
func (d *doubler) processAll() {
	var g errgroup.Group
	g.SetLimit(d.cfg.jobs)

	claimed := make(map[string]string, len(d.cfg.inputs))

	for _, input := range d.cfg.inputs {
		outPath := d.cfg.outputPath(input)

		if first, ok := claimed[outPath]; ok {
			d.log.WithFields(logrus.Fields{"file": input, "output": outPath}).
				Errorf("%v: %s", errOutputCollision, first)
			continue
		}

		claimed[outPath] = input

		input := input
		g.Go(func() error {
			err := d.process(input, outPath)
			if err != nil {
				d.log.WithField("file", input).Error(err)
			}

			return nil
		})
	}

	g.Wait()
}

func (d *doubler) process(input, outPath string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("can't open the input file: %w", err)
	}

	file, err := interp.Parse(data)
	if err != nil {
		return fmt.Errorf("invalid WAV file: %w", err)
	}

	d.log.WithField("file", input).Debug(file.Descriptor)

	if file.Peak != nil {
		peak, err := file.PeakPositions()
		if err == nil {
			d.log.WithField("file", input).Debugf("keeping PEAK chunk with %d position(s)", len(peak.Peaks))
		}
	}

	fmt.Fprintf(d.progress, "Interpolating %s (%d Hz) to (%d Hz)...\n", input, file.SampleRate, 2*uint64(file.SampleRate))

	samples, err := interp.Interpolate(file.Descriptor, file.Data)
	if err != nil {
		return err
	}

	if d.cfg.aiff {
		return writeAIFF(outPath, file.Descriptor, samples)
	}

	header, err := interp.SerializeHeader(file.Descriptor, file.Peak, d.cfg.header)
	if err != nil {
		return err
	}

	return writeWAV(outPath, header, samples)
}

func writeWAV(path string, header, samples []byte) error {
	return writeOutput(path, func(out *os.File) error {
		_, err := out.Write(header)
		if err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}

		_, err = out.Write(samples)
		if err != nil {
			return fmt.Errorf("failed to write samples: %w", err)
		}

		return nil
	})
}

// writeOutput creates path and fills it with write. The file is removed again
// if write or the final close fails, so no partial output is left behind.
func writeOutput(path string, write func(out *os.File) error) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("can't create the output file: %w", err)
	}

	defer func() {
		closeErr := out.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close %s: %w", path, closeErr)
		}

		if err != nil {
			os.Remove(path)
		}
	}()

	return write(out)
}

// syncWriter serializes progress lines written from parallel jobs.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.w.Write(p)
}
