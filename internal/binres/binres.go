package binres

import (
	"errors"
	"fmt"
	"runtime"
)

// Tool identifies one of the two external executables the pipeline drives.
type Tool string

const (
	// ToolDownloader is the media extraction executable (yt-dlp).
	ToolDownloader Tool = "yt-dlp"
	// ToolTranscoder is the media transcoding executable (ffmpeg).
	ToolTranscoder Tool = "ffmpeg"
)

// ErrUnsupportedTool indicates a logical tool name outside the known set.
var ErrUnsupportedTool = errors.New("unsupported binary")

// Executable returns the platform-appropriate executable filename.
func (t Tool) Executable() string {
	name := string(t)
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return name
}

// Origin describes where a resolved binary came from.
type Origin string

const (
	OriginSystemPath Origin = "system-path"
	OriginLocalCache Origin = "local-cache"
	OriginDownloaded Origin = "downloaded"
)

// ResolvedBinary is the result of a successful resolution. Path is absolute
// (or PATH-resolved) and executable by the time it is returned.
type ResolvedBinary struct {
	Tool   Tool
	Path   string
	Origin Origin
}

// FetchError indicates the binary payload download was rejected with a
// non-200 HTTP status.
type FetchError struct {
	URL        string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("Download failed: %d", e.StatusCode)
}

// PlatformError indicates no release asset exists for the host platform.
type PlatformError struct {
	Tool Tool
	OS   string
	Arch string
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("no %s release asset for %s/%s", e.Tool, e.OS, e.Arch)
}
