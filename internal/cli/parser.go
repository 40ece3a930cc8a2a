package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/famomatic/ytpipe/client"
)

// ErrMissingURL indicates the command line carried no source URL.
var ErrMissingURL = errors.New("missing url")

// Options holds all command-line options.
type Options struct {
	URL string

	Mode    string // --mode audio|video
	Format  string // --format
	Quality string // --quality
	Output  string // -o, --output
	Cookies string // --cookies (file path or raw cookie data)

	DownloaderArgs []string // --downloader-arg, repeatable
	TranscoderArgs []string // --transcoder-arg, repeatable

	Verbose bool // --verbose
}

// stringList collects repeatable flag values.
type stringList []string

func (s *stringList) String() string     { return strings.Join(*s, " ") }
func (s *stringList) Set(v string) error { *s = append(*s, v); return nil }

// Parse parses command-line arguments. The URL may appear before or after
// the flags. Usage output goes to stderr.
func Parse(args []string, stderr io.Writer) (Options, error) {
	opts := Options{}

	// Accept "ytpipe URL --mode video": the Go flag package stops at the
	// first non-flag argument, so a leading URL is peeled off up front.
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		opts.URL = args[0]
		args = args[1:]
	}

	fs := flag.NewFlagSet("ytpipe", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var outputShort, outputLong string
	var downloaderArgs, transcoderArgs stringList

	fs.StringVar(&opts.Mode, "mode", "", `Download mode: "audio" (default) or "video"`)
	fs.StringVar(&opts.Format, "format", "", "Output container format (default: mp3 for audio, mp4 for video)")
	fs.StringVar(&opts.Quality, "quality", "", `Quality selector (default: "0" for audio, "best" for video)`)
	fs.StringVar(&outputShort, "o", "", "Output file path (default: write to stdout)")
	fs.StringVar(&outputLong, "output", "", "Output file path (default: write to stdout)")
	fs.StringVar(&opts.Cookies, "cookies", "", "Netscape cookies.txt path, or raw cookie data")
	fs.Var(&downloaderArgs, "downloader-arg", "Extra argument passed to the downloader verbatim (repeatable)")
	fs.Var(&transcoderArgs, "transcoder-arg", "Extra argument passed to the transcoder verbatim (repeatable)")
	fs.BoolVar(&opts.Verbose, "verbose", false, "Print debugging information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: ytpipe URL [OPTIONS]\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}

	if opts.URL == "" && fs.NArg() > 0 {
		opts.URL = fs.Arg(0)
	}
	if opts.URL == "" {
		fs.Usage()
		return Options{}, ErrMissingURL
	}

	opts.Output = pickValue(outputShort, outputLong)
	opts.DownloaderArgs = downloaderArgs
	opts.TranscoderArgs = transcoderArgs
	return opts, nil
}

func pickValue(v1, v2 string) string {
	if v1 != "" {
		return v1
	}
	return v2
}

// ClientOptions converts parsed flags to the library's option set.
func (o Options) ClientOptions() client.Options {
	return client.Options{
		Mode:           o.Mode,
		Format:         o.Format,
		Quality:        o.Quality,
		Output:         o.Output,
		Cookies:        o.Cookies,
		DownloaderArgs: o.DownloaderArgs,
		TranscoderArgs: o.TranscoderArgs,
	}
}
