package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famomatic/ytpipe/internal/binres"
)

// transcoderScript behaves like the real thing for pipeline purposes: it
// copies stdin either to stdout (pipe:1 operand) or to the output path given
// as the final argument.
const transcoderScript = `out=""
for a in "$@"; do out="$a"; done
if [ "$out" = "pipe:1" ]; then
  cat
else
  cat > "$out"
fi
`

// newTestPipeline installs fake downloader/transcoder scripts into a cache
// directory and empties PATH so resolution is deterministic.
func newTestPipeline(t *testing.T, downloaderBody, transcoderBody string) *Pipeline {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake binaries are POSIX shell scripts")
	}

	cacheDir := t.TempDir()
	writeScript(t, cacheDir, binres.ToolDownloader.Executable(), downloaderBody)
	writeScript(t, cacheDir, binres.ToolTranscoder.Executable(), transcoderBody)
	t.Setenv("PATH", t.TempDir())

	return New(binres.New(cacheDir, nil))
}

func writeScript(t *testing.T, dir, name, body string) {
	t.Helper()
	script := "#!/bin/sh\nPATH=/bin:/usr/bin:$PATH\n" + body
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(script), 0o755))
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestRunBufferMode(t *testing.T) {
	p := newTestPipeline(t,
		`printf 'raw-stream-bytes'`,
		transcoderScript,
	)

	res, err := p.Run(testContext(t), "https://example/video", Request{
		Mode: ModeAudio, Format: "mp3", Quality: "0",
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, []byte("raw-stream-bytes"), res.Buffer)
	assert.Empty(t, res.OutputPath)
	assert.Zero(t, res.DownloaderExit)
}

func TestRunFileMode(t *testing.T) {
	p := newTestPipeline(t,
		`printf 'raw-stream-bytes'`,
		transcoderScript,
	)

	output := filepath.Join(t.TempDir(), "out.mp4")
	res, err := p.Run(testContext(t), "https://example/video", Request{
		Mode: ModeVideo, Format: "mp4", Quality: "best", Output: output,
	})
	require.NoError(t, err)
	assert.Nil(t, res.Buffer)
	assert.Equal(t, output, res.OutputPath)

	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.NotZero(t, info.Size(), "output file must be non-empty")
}

func TestRunTranscoderFailureIsTerminal(t *testing.T) {
	p := newTestPipeline(t,
		`printf 'raw-stream-bytes'`,
		`cat > /dev/null
echo 'pipe:0: Invalid data found when processing input' >&2
exit 1
`,
	)

	output := filepath.Join(t.TempDir(), "out.mp4")
	res, err := p.Run(testContext(t), "https://example/video", Request{
		Mode: ModeVideo, Format: "mp4", Quality: "best", Output: output,
	})
	require.Error(t, err)
	assert.Nil(t, res, "a failed run must not claim a result")
	assert.ErrorContains(t, err, "transcoder exited with code 1")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)
	assert.Contains(t, exitErr.Stderr, "Invalid data")
}

func TestRunDownloaderFailureIsOnlyDiagnostic(t *testing.T) {
	p := newTestPipeline(t,
		`printf 'partial-stream'
echo 'ERROR: fragment 3 not available' >&2
exit 3
`,
		transcoderScript,
	)

	res, err := p.Run(testContext(t), "https://example/video", Request{
		Mode: ModeAudio, Format: "mp3", Quality: "0",
	})
	require.NoError(t, err, "transcoder exit 0 wins even when the downloader failed")
	assert.Equal(t, []byte("partial-stream"), res.Buffer)
	assert.Equal(t, 3, res.DownloaderExit)
}

func TestRunBufferLimit(t *testing.T) {
	p := newTestPipeline(t,
		`head -c 100000 /dev/zero`,
		transcoderScript,
	)

	_, err := p.Run(testContext(t), "https://example/video", Request{
		Mode: ModeAudio, Format: "mp3", Quality: "0",
		MaxBufferBytes: 1024,
	})
	require.ErrorIs(t, err, ErrBufferLimit)
}

func TestRunCancellation(t *testing.T) {
	// Both fakes sleep so neither side can exit cleanly on its own; only
	// cancellation can end the run.
	p := newTestPipeline(t,
		`sleep 60`,
		`sleep 60`,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := p.Run(ctx, "https://example/video", Request{
		Mode: ModeAudio, Format: "mp3", Quality: "0",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 10*time.Second, "cancellation must kill both processes")
}
