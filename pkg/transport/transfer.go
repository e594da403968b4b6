package transport

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/pkg/sftp"
)

// Push uploads a local file to the device over SFTP, returning the number
// of bytes written. Used by firmware upgrades and config restores.
func (c *Client) Push(localPath, remotePath string) (int64, error) {
	if c.client == nil {
		return 0, fmt.Errorf("not connected to %s", c.Addr())
	}

	local, err := os.Open(localPath)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", localPath, err)
	}
	defer local.Close()

	sc, err := sftp.NewClient(c.client)
	if err != nil {
		return 0, fmt.Errorf("SFTP subsystem: %w", err)
	}
	defer sc.Close()

	if dir := path.Dir(remotePath); dir != "." && dir != "/" {
		// Best effort; upload fails with a clearer error if this didn't work.
		sc.MkdirAll(dir)
	}

	remote, err := sc.Create(remotePath)
	if err != nil {
		return 0, fmt.Errorf("creating %s on %s: %w", remotePath, c.Addr(), err)
	}
	defer remote.Close()

	n, err := io.Copy(remote, local)
	if err != nil {
		return n, fmt.Errorf("uploading %s: %w", localPath, err)
	}
	return n, nil
}

// Pull downloads a remote file over SFTP, for config backups on platforms
// that export to a file instead of stdout.
func (c *Client) Pull(remotePath, localPath string) (int64, error) {
	if c.client == nil {
		return 0, fmt.Errorf("not connected to %s", c.Addr())
	}

	sc, err := sftp.NewClient(c.client)
	if err != nil {
		return 0, fmt.Errorf("SFTP subsystem: %w", err)
	}
	defer sc.Close()

	remote, err := sc.Open(remotePath)
	if err != nil {
		return 0, fmt.Errorf("opening %s on %s: %w", remotePath, c.Addr(), err)
	}
	defer remote.Close()

	local, err := os.Create(localPath)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", localPath, err)
	}
	defer local.Close()

	n, err := io.Copy(local, remote)
	if err != nil {
		return n, fmt.Errorf("downloading %s: %w", remotePath, err)
	}
	return n, nil
}
