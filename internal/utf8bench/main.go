// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

// utf8bench compares the throughput of the scalar and SWAR code point
// counters on a buffer of pseudo-random bytes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/charlievieth/utf8count/internal/benchtest"
)

func init() {
	initLogs()
}

func initLogs() {
	log.SetPrefix("")
	log.SetFlags(log.Lshortfile)
	log.SetOutput(os.Stderr)
}

type options struct {
	benchtest.Config
	cpuprofile string
	quiet      bool
}

func parseFlags(args []string, output io.Writer) (*options, error) {
	opts := &options{Config: benchtest.DefaultConfig()}
	fs := flag.NewFlagSet(filepath.Base(os.Args[0]), flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [OPTION]...\n", fs.Name())
		fs.PrintDefaults()
	}
	fs.IntVar(&opts.Size, "size", opts.Size, "size of the buffer in bytes")
	fs.IntVar(&opts.Iterations, "n", opts.Iterations, "number of times each counter is called")
	fs.Int64Var(&opts.Seed, "seed", opts.Seed, "seed used to fill the buffer")
	fs.StringVar(&opts.cpuprofile, "cpuprofile", "",
		"write cpu profile to `file`\n"+
			"NOTE: this traps SIGINT.\n"+
			"  First SIGINT the cpu profile is written to `file`.\n"+
			"  Second SIGINT the program aborts.")
	fs.BoolVar(&opts.quiet, "quiet", false, "do not display a progress bar")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return nil, fmt.Errorf("unexpected arguments: %q", fs.Args())
	}
	return opts, nil
}

func newProgressBar(n int, quiet bool) *progressbar.ProgressBar {
	if !quiet && term.IsTerminal(int(os.Stderr.Fd())) {
		return progressbar.Default(int64(n), "counting")
	}
	return progressbar.DefaultSilent(int64(n))
}

func run(ctx context.Context, opts *options, stdout io.Writer) error {
	res, err := benchtest.Run(ctx, opts.Config)
	if err != nil {
		return err
	}
	if opts.Progress != nil {
		// Move the report below the progress bar.
		if err := opts.Progress.Finish(); err != nil {
			return err
		}
	}
	_, err = res.WriteTo(stdout)
	return err
}

func realMain() int {
	initLogs()

	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		log.Println(err)
		return 2
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	defer signal.Stop(ch)

	if opts.cpuprofile != "" {
		f, err := os.Create(opts.cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			if err := f.Close(); err != nil {
				log.Printf("error closing CPU profile: %v", err)
			}
		}()
	}
	go func() {
		<-ch
		if opts.cpuprofile != "" {
			log.Println("writing CPU profile: next interrupt will stop the program")
		}
		cancel()
		signal.Reset(os.Interrupt)
	}()

	opts.Progress = newProgressBar(opts.Iterations, opts.quiet)
	if err := run(ctx, opts, os.Stdout); err != nil {
		log.Printf("error: %v", err)
		return 1
	}
	return 0
}

func main() {
	if code := realMain(); code != 0 {
		os.Exit(code)
	}
}
