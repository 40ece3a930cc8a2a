package cookies

import (
	"fmt"
	"os"
	"strings"
)

// netscapeHeader marks a cookies.txt file; the downloader rejects cookie
// files without it.
const netscapeHeader = "# Netscape HTTP Cookie File"

// Materialize turns caller-supplied cookie input into a file path the
// downloader can consume. If data names an existing file it is used as-is and
// cleanup is a no-op. Otherwise data is treated as raw cookie lines and
// written to a temp file which cleanup removes; callers must invoke cleanup
// on every exit path.
func Materialize(data string) (path string, cleanup func(), err error) {
	nop := func() {}

	if info, statErr := os.Stat(data); statErr == nil && info.Mode().IsRegular() {
		return data, nop, nil
	}

	f, err := os.CreateTemp("", "ytpipe-cookies-*.txt")
	if err != nil {
		return "", nop, fmt.Errorf("create cookie temp file: %w", err)
	}

	content := data
	if !strings.HasPrefix(strings.TrimSpace(content), "#") {
		content = netscapeHeader + "\n\n" + content
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", nop, fmt.Errorf("write cookie temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", nop, fmt.Errorf("close cookie temp file: %w", err)
	}

	name := f.Name()
	return name, func() { _ = os.Remove(name) }, nil
}
