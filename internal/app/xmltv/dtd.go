package xmltv

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// dtdTimeout bounds the one-shot grammar download. Retrieval failure is
// fatal only to validation, never to emission.
const dtdTimeout = 10 * time.Second

// EnsureDTD makes the XMLTV DTD available at path, downloading it from url
// on first use. An already cached file is left alone.
func EnsureDTD(ctx context.Context, url, path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	logger := zap.L()
	logger.Info("Downloading XMLTV DTD.", zap.String("url", url), zap.String("path", path))

	ctx, cancel := context.WithTimeout(ctx, dtdTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("download dtd: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download dtd: http status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("download dtd: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err = os.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	logger.Info("DTD downloaded.", zap.Int("bytes", len(data)))
	return nil
}
