package pipeline

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/famomatic/ytpipe/internal/binres"
	xlog "github.com/famomatic/ytpipe/internal/log"
)

// stderrTailSize bounds how much transcoder stderr is kept for error reports.
const stderrTailSize = 4 << 10

// Pipeline wires the downloader's stdout into the transcoder's stdin and
// resolves both binaries before spawning either process.
type Pipeline struct {
	resolver *binres.Resolver
	logger   zerolog.Logger
}

// New returns a Pipeline using the given resolver.
func New(resolver *binres.Resolver) *Pipeline {
	return &Pipeline{
		resolver: resolver,
		logger:   xlog.WithComponent("pipeline"),
	}
}

// Result is the outcome of a successful run. Exactly one of Buffer or
// OutputPath is populated.
type Result struct {
	// Buffer holds the transcoded bytes when no output path was requested.
	Buffer []byte
	// OutputPath echoes the requested output file, when one was given.
	OutputPath string
	// DownloaderExit is the downloader's exit status. Non-zero values do
	// not fail the run; the transcoder's exit status is authoritative.
	DownloaderExit int
}

// Run executes one download-and-transcode pipeline. Both binaries are
// resolved (downloader first) before either process is spawned; the two
// processes then run concurrently, connected stdout-to-stdin through an OS
// pipe. The run succeeds only when the transcoder exits 0.
func (p *Pipeline) Run(ctx context.Context, url string, req Request) (*Result, error) {
	downloader, err := p.resolver.Resolve(ctx, binres.ToolDownloader)
	if err != nil {
		return nil, fmt.Errorf("resolve downloader: %w", err)
	}
	transcoder, err := p.resolver.Resolve(ctx, binres.ToolTranscoder)
	if err != nil {
		return nil, fmt.Errorf("resolve transcoder: %w", err)
	}

	p.logger.Debug().
		Str("downloader", downloader.Path).
		Str("downloader_origin", string(downloader.Origin)).
		Str("transcoder", transcoder.Path).
		Str("transcoder_origin", string(transcoder.Origin)).
		Msg("binaries resolved")

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	dlCmd := exec.CommandContext(runCtx, downloader.Path, downloaderArgs(url, req)...)
	tcCmd := exec.CommandContext(runCtx, transcoder.Path, transcoderArgs(req)...)

	// Kernel pipe between the two children. Both parent ends are closed
	// after spawning so EOF and EPIPE propagate between the processes.
	pipeRead, pipeWrite, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("create pipe: %w", err)
	}
	dlCmd.Stdout = pipeWrite
	tcCmd.Stdin = pipeRead

	dlStderr, err := dlCmd.StderrPipe()
	if err != nil {
		pipeRead.Close()
		pipeWrite.Close()
		return nil, fmt.Errorf("downloader stderr pipe: %w", err)
	}

	tcStderr := &tailWriter{max: stderrTailSize}
	tcCmd.Stderr = tcStderr

	var tcStdout io.ReadCloser
	if req.Output == "" {
		tcStdout, err = tcCmd.StdoutPipe()
		if err != nil {
			pipeRead.Close()
			pipeWrite.Close()
			return nil, fmt.Errorf("transcoder stdout pipe: %w", err)
		}
	}

	if err := dlCmd.Start(); err != nil {
		pipeRead.Close()
		pipeWrite.Close()
		return nil, fmt.Errorf("start downloader: %w", err)
	}
	if err := tcCmd.Start(); err != nil {
		pipeRead.Close()
		pipeWrite.Close()
		_ = dlCmd.Process.Kill()
		_ = dlCmd.Wait()
		return nil, fmt.Errorf("start transcoder: %w", err)
	}

	// Children hold their own duplicates now.
	pipeRead.Close()
	pipeWrite.Close()

	var buf bytes.Buffer
	var streams errgroup.Group

	streams.Go(func() error {
		p.forwardStderr(dlStderr)
		return nil
	})
	if tcStdout != nil {
		streams.Go(func() error {
			err := drain(&buf, tcStdout, req.MaxBufferBytes)
			if err != nil {
				// Kill both processes, then keep the pipe moving so
				// the transcoder is never left blocked on a full pipe.
				cancel()
				_, _ = io.Copy(io.Discard, tcStdout)
			}
			return err
		})
	}

	streamErr := streams.Wait()

	dlExit := exitCode(dlCmd.Wait())
	if dlExit != 0 {
		p.logger.Warn().
			Int("exit", dlExit).
			Msg("downloader exited non-zero; transcoder exit decides the outcome")
	}

	tcWaitErr := tcCmd.Wait()

	if streamErr != nil {
		return nil, streamErr
	}
	if tcWaitErr != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(tcWaitErr, &exitErr) {
			return nil, &ExitError{
				Code:           exitErr.ExitCode(),
				DownloaderExit: dlExit,
				Stderr:         tcStderr.String(),
			}
		}
		return nil, fmt.Errorf("transcoder: %w", tcWaitErr)
	}

	result := &Result{DownloaderExit: dlExit}
	if req.Output != "" {
		result.OutputPath = req.Output
	} else {
		result.Buffer = buf.Bytes()
	}
	return result, nil
}

// forwardStderr relays downloader diagnostics to the log at warning level.
// Downloader noise never aborts the pipeline.
func (p *Pipeline) forwardStderr(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		p.logger.Warn().Str("tool", string(binres.ToolDownloader)).Msg(line)
	}
}

// drain accumulates r into buf, failing once limit bytes are exceeded.
// A limit of zero means unbounded.
func drain(buf *bytes.Buffer, r io.Reader, limit int64) error {
	if limit <= 0 {
		_, err := io.Copy(buf, r)
		return err
	}
	n, err := io.CopyN(buf, r, limit+1)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return err
	}
	if n > limit {
		return ErrBufferLimit
	}
	return nil
}

// exitCode maps a Wait error to the process exit status: 0 on success,
// the exit code for a normal non-zero exit, -1 otherwise.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// tailWriter keeps the last max bytes written through it.
type tailWriter struct {
	max int
	buf []byte
}

func (t *tailWriter) Write(p []byte) (int, error) {
	t.buf = append(t.buf, p...)
	if len(t.buf) > t.max {
		t.buf = t.buf[len(t.buf)-t.max:]
	}
	return len(p), nil
}

func (t *tailWriter) String() string { return string(t.buf) }
