package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famomatic/ytpipe/internal/binres"
	"github.com/famomatic/ytpipe/internal/pipeline"
)

func TestOptionsResolveDefaults(t *testing.T) {
	tests := []struct {
		name        string
		opts        Options
		wantMode    pipeline.Mode
		wantFormat  string
		wantQuality string
	}{
		{
			name:        "zero value defaults to audio mp3 quality 0",
			opts:        Options{},
			wantMode:    pipeline.ModeAudio,
			wantFormat:  "mp3",
			wantQuality: "0",
		},
		{
			name:        "video defaults to mp4 best",
			opts:        Options{Mode: ModeVideo},
			wantMode:    pipeline.ModeVideo,
			wantFormat:  "mp4",
			wantQuality: "best",
		},
		{
			name:        "explicit values survive defaulting",
			opts:        Options{Mode: ModeAudio, Format: "ogg", Quality: "4"},
			wantMode:    pipeline.ModeAudio,
			wantFormat:  "ogg",
			wantQuality: "4",
		},
		{
			name:        "video format override",
			opts:        Options{Mode: ModeVideo, Format: "webm"},
			wantMode:    pipeline.ModeVideo,
			wantFormat:  "webm",
			wantQuality: "best",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := tt.opts.resolve()
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, req.Mode)
			assert.Equal(t, tt.wantFormat, req.Format)
			assert.Equal(t, tt.wantQuality, req.Quality)
		})
	}
}

func TestOptionsResolveInvalidMode(t *testing.T) {
	_, err := Options{Mode: "subtitles"}.resolve()
	require.ErrorIs(t, err, ErrInvalidMode)
}

func TestDownloadMissingURL(t *testing.T) {
	c := New(Config{CacheDir: t.TempDir()})

	_, err := c.Download(context.Background(), "   ", Options{})
	require.ErrorIs(t, err, ErrMissingURL)
}

// fakeTools installs shell-script stand-ins for both binaries and empties
// PATH so resolution always hits the cache directory.
func fakeTools(t *testing.T, downloaderBody, transcoderBody string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake binaries are POSIX shell scripts")
	}

	cacheDir := t.TempDir()
	for name, body := range map[string]string{
		binres.ToolDownloader.Executable(): downloaderBody,
		binres.ToolTranscoder.Executable(): transcoderBody,
	} {
		script := "#!/bin/sh\nPATH=/bin:/usr/bin:$PATH\n" + body
		require.NoError(t, os.WriteFile(filepath.Join(cacheDir, name), []byte(script), 0o755))
	}
	t.Setenv("PATH", t.TempDir())
	return cacheDir
}

func TestDownloadBufferMode(t *testing.T) {
	cacheDir := fakeTools(t,
		`printf 'stream'`,
		`cat`,
	)

	c := New(Config{CacheDir: cacheDir, Timeout: 30 * time.Second})
	res, err := c.Download(context.Background(), "https://example/video", Options{})
	require.NoError(t, err)
	assert.Equal(t, []byte("stream"), res.Buffer)
	assert.Empty(t, res.OutputPath)
}

func TestDownloadMapsTranscodeError(t *testing.T) {
	cacheDir := fakeTools(t,
		`printf 'stream'`,
		`cat > /dev/null; exit 2`,
	)

	c := New(Config{CacheDir: cacheDir, Timeout: 30 * time.Second})
	_, err := c.Download(context.Background(), "https://example/video", Options{})

	var transcodeErr *TranscodeError
	require.ErrorAs(t, err, &transcodeErr)
	assert.Equal(t, 2, transcodeErr.Code)
	assert.EqualError(t, transcodeErr, "transcoder exited with code 2")
}

func TestDownloadMapsFetchError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("PATH emptying relies on unix semantics")
	}
	if runtime.GOARCH != "amd64" && runtime.GOARCH != "arm64" {
		t.Skipf("no release assets for %s", runtime.GOARCH)
	}
	t.Setenv("PATH", t.TempDir())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	c := New(Config{
		CacheDir:      t.TempDir(),
		HTTPClient:    srv.Client(),
		BinaryBaseURL: srv.URL,
	})

	_, err := c.Download(context.Background(), "https://example/video", Options{})
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusGone, fetchErr.StatusCode)
	assert.EqualError(t, fetchErr, "Download failed: 410")
}

func TestDownloadPassesCookiesToDownloader(t *testing.T) {
	// The fake downloader echoes its argument list so the test can assert
	// the --cookies flag was wired through with a readable file.
	cacheDir := fakeTools(t,
		`printf '%s ' "$@"`,
		`cat`,
	)

	c := New(Config{CacheDir: cacheDir, Timeout: 30 * time.Second})
	res, err := c.Download(context.Background(), "https://example/video", Options{
		Cookies: ".example.com\tTRUE\t/\tTRUE\t1893456000\tsession\tabc123",
	})
	require.NoError(t, err)
	assert.Contains(t, string(res.Buffer), "--cookies")
}
