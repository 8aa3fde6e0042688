// Package ftpx pushes exported feed files to the distribution FTP server.
package ftpx

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/jlaffaye/ftp"
	"go.uber.org/zap"
)

const dialTimeout = 10 * time.Second

// Credentials holds the already decrypted FTP endpoint settings.
type Credentials struct {
	Host      string
	Port      int
	Username  string
	Password  string
	RemoteDir string
}

// Upload stores the local file on the FTP server under its base name,
// optionally below RemoteDir. The connection is closed before returning.
func Upload(ctx context.Context, creds Credentials, localPath string) error {
	logger := zap.L()

	addr := fmt.Sprintf("%s:%d", creds.Host, creds.Port)
	conn, err := ftp.Dial(addr, ftp.DialWithContext(ctx), ftp.DialWithTimeout(dialTimeout))
	if err != nil {
		return fmt.Errorf("connect to %s: %w", addr, err)
	}
	defer func() {
		if qerr := conn.Quit(); qerr != nil {
			logger.Warn("Failed to close FTP connection.", zap.Error(qerr))
		}
	}()

	if err = conn.Login(creds.Username, creds.Password); err != nil {
		return fmt.Errorf("ftp login: %w", err)
	}

	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	remote := filepath.Base(localPath)
	if creds.RemoteDir != "" {
		remote = path.Join(creds.RemoteDir, remote)
	}

	if err = conn.Stor(remote, f); err != nil {
		return fmt.Errorf("store %s: %w", remote, err)
	}

	logger.Info("File uploaded to FTP server.", zap.String("remote", remote), zap.String("host", creds.Host))
	return nil
}
