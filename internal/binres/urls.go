package binres

// Release asset paths keyed by tool and platform. The downloader comes from
// the official yt-dlp release channel; the transcoder from the static ffmpeg
// builds published for exactly this kind of bootstrap use.
//
// Paths are relative so tests can point BaseURL at a local server.

const defaultBaseURL = "https://github.com"

type platformKey struct {
	os   string
	arch string
}

var downloaderAssets = map[platformKey]string{
	{"linux", "amd64"}:   "/yt-dlp/yt-dlp/releases/latest/download/yt-dlp_linux",
	{"linux", "arm64"}:   "/yt-dlp/yt-dlp/releases/latest/download/yt-dlp_linux_aarch64",
	{"darwin", "amd64"}:  "/yt-dlp/yt-dlp/releases/latest/download/yt-dlp_macos",
	{"darwin", "arm64"}:  "/yt-dlp/yt-dlp/releases/latest/download/yt-dlp_macos",
	{"windows", "amd64"}: "/yt-dlp/yt-dlp/releases/latest/download/yt-dlp.exe",
}

var transcoderAssets = map[platformKey]string{
	{"linux", "amd64"}:   "/eugeneware/ffmpeg-static/releases/latest/download/ffmpeg-linux-x64",
	{"linux", "arm64"}:   "/eugeneware/ffmpeg-static/releases/latest/download/ffmpeg-linux-arm64",
	{"darwin", "amd64"}:  "/eugeneware/ffmpeg-static/releases/latest/download/ffmpeg-darwin-x64",
	{"darwin", "arm64"}:  "/eugeneware/ffmpeg-static/releases/latest/download/ffmpeg-darwin-arm64",
	{"windows", "amd64"}: "/eugeneware/ffmpeg-static/releases/latest/download/ffmpeg-win32-x64.exe",
}

// assetPath returns the release asset path for (tool, os, arch).
func assetPath(tool Tool, goos, goarch string) (string, error) {
	var assets map[platformKey]string
	switch tool {
	case ToolDownloader:
		assets = downloaderAssets
	case ToolTranscoder:
		assets = transcoderAssets
	default:
		return "", ErrUnsupportedTool
	}

	path, ok := assets[platformKey{goos, goarch}]
	if !ok {
		return "", &PlatformError{Tool: tool, OS: goos, Arch: goarch}
	}
	return path, nil
}
