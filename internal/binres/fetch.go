package binres

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// execPerm allows execution by the owner; group/other keep read access.
const execPerm = 0o755

// fetch downloads url and installs it at dest with execute permission.
//
// The body is streamed into a renameio pending file and committed with an
// atomic rename, so concurrent first-run invocations racing on the same cache
// path never observe a partially written binary, and a failed fetch leaves
// nothing behind at dest.
func fetch(client *http.Client, req *http.Request, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &FetchError{URL: req.URL.String(), StatusCode: resp.StatusCode}
	}

	pending, err := renameio.NewPendingFile(dest, renameio.WithPermissions(execPerm))
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	defer func() {
		// No-op once committed; otherwise removes the temp file.
		_ = pending.Cleanup()
	}()

	if _, err := io.Copy(pending, resp.Body); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("install %s: %w", dest, err)
	}
	return nil
}
