package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

const maxDownloadAttempts = 5

// HTTPClient is used for feed downloads.
var HTTPClient = &http.Client{Timeout: 5 * time.Minute}

// download fetches source into a temporary file and returns its path.
// Server errors and transport failures are retried with exponential backoff,
// client errors are not.
func download(ctx context.Context, source string) (string, error) {
	tmpFile, err := os.CreateTemp(os.TempDir(), "gtfs2geojson-feed-")
	if err != nil {
		return "", err
	}
	defer tmpFile.Close()

	attempt := 0
	operation := func() error {
		attempt++

		if _, err := tmpFile.Seek(0, io.SeekStart); err != nil {
			return backoff.Permanent(err)
		}
		if err := tmpFile.Truncate(0); err != nil {
			return backoff.Permanent(err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", "gtfs2geojson")

		resp, err := HTTPClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("download %s: %s", source, resp.Status)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("download %s: %s", source, resp.Status))
		}

		_, err = io.Copy(tmpFile, resp.Body)
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxDownloadAttempts-1), ctx)
	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Int("attempt", attempt).Dur("wait", wait).Msg("Feed download failed, retrying")
	}

	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		os.Remove(tmpFile.Name())
		return "", err
	}

	log.Info().Str("source", source).Str("file", tmpFile.Name()).Msg("Downloaded feed")

	return tmpFile.Name(), nil
}
