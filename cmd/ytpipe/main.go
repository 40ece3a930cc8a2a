package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/famomatic/ytpipe/client"
	"github.com/famomatic/ytpipe/internal/cli"
	"github.com/famomatic/ytpipe/internal/config"
	xlog "github.com/famomatic/ytpipe/internal/log"
)

func main() {
	os.Exit(run())
}

func run() int {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ytpipe: %v\n", err)
		return 1
	}

	opts, err := cli.Parse(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	level := settings.LogLevel
	if opts.Verbose {
		level = "debug"
	}
	xlog.Configure(xlog.Config{Level: level})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := client.New(client.Config{
		CacheDir: settings.CacheDir,
		Timeout:  settings.Timeout,
	})

	result, err := c.Download(ctx, opts.URL, opts.ClientOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "ytpipe: %v\n", err)
		return 1
	}

	if result.Buffer != nil {
		if _, err := os.Stdout.Write(result.Buffer); err != nil {
			fmt.Fprintf(os.Stderr, "ytpipe: write output: %v\n", err)
			return 1
		}
	}
	return 0
}
