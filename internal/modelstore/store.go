// Package modelstore makes sure a model artifact is present on local disk,
// downloading and unpacking it on first use.
package modelstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	"entityd/internal/common/fsutil"
)

// Options locates a model and says where to fetch it from when absent.
type Options struct {
	// Dir holds models; '~' is expanded.
	Dir string
	// Name is the model directory name under Dir.
	Name string
	// URL of a .tar.gz/.tgz/.tar/.zip archive containing the model.
	URL string
	// Retries for the download. Zero performs a single attempt.
	Retries int
	// Timeout bounds the whole download. Zero means no timeout.
	Timeout time.Duration
	Logger  zerolog.Logger
	// HTTPClient overrides the underlying client (tests).
	HTTPClient *http.Client
}

// errModelMissing is returned when the model is absent and no URL is configured.
type errModelMissing struct{ path string }

func (e errModelMissing) Error() string {
	return "model not found at " + e.path + " and no download url configured"
}

// IsModelMissing reports whether err means the model is absent locally and
// could not be fetched because no URL was configured.
func IsModelMissing(err error) bool {
	var target errModelMissing
	return errors.As(err, &target)
}

// Path returns the resolved on-disk location of the model.
func Path(opts Options) (string, error) {
	if strings.TrimSpace(opts.Name) == "" {
		return "", errors.New("model name is empty")
	}
	dir, err := fsutil.ExpandHome(opts.Dir)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs path: %w", err)
	}
	return filepath.Join(abs, opts.Name), nil
}

// Ensure returns the model directory, downloading it first if it is absent.
// The download is a blocking, one-time operation.
func Ensure(ctx context.Context, opts Options) (string, error) {
	target, err := Path(opts)
	if err != nil {
		return "", err
	}
	log := opts.Logger.With().Str("component", "modelstore").Str("model", opts.Name).Logger()
	if fsutil.DirExists(target) {
		log.Debug().Str("path", target).Msg("model present")
		return target, nil
	}
	if fsutil.PathExists(target) {
		return "", fmt.Errorf("model path %s exists but is not a directory", target)
	}
	if strings.TrimSpace(opts.URL) == "" {
		return "", errModelMissing{path: target}
	}

	parent := filepath.Dir(target)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return "", fmt.Errorf("create model dir: %w", err)
	}
	log.Info().Str("url", opts.URL).Str("path", target).Msg("downloading model, this may take a while")

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	archive, err := download(ctx, opts, parent, log)
	if err != nil {
		return "", err
	}
	defer os.Remove(archive)

	if err := install(archive, target, log); err != nil {
		return "", err
	}
	log.Info().Str("path", target).Msg("model installed")
	return target, nil
}

// download fetches opts.URL into a temporary file under dir.
func download(ctx context.Context, opts Options, dir string, log zerolog.Logger) (string, error) {
	client := retryablehttp.NewClient()
	client.RetryMax = opts.Retries
	client.RetryWaitMin = 500 * time.Millisecond
	client.RetryWaitMax = 5 * time.Second
	client.Logger = leveledLogger{log}
	if opts.HTTPClient != nil {
		client.HTTPClient = opts.HTTPClient
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, opts.URL, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download model: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download model: unexpected status %s", resp.Status)
	}

	f, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return "", err
	}
	start := time.Now()
	n, err := io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("download model: %w", err)
	}
	log.Info().Str("size", humanize.Bytes(uint64(n))).Dur("dur", time.Since(start)).Msg("model downloaded")
	return f.Name(), nil
}

// leveledLogger adapts zerolog to retryablehttp.LeveledLogger.
type leveledLogger struct{ l zerolog.Logger }

func (z leveledLogger) Error(msg string, kv ...interface{}) { z.l.Error().Fields(kv).Msg(msg) }
func (z leveledLogger) Info(msg string, kv ...interface{})  { z.l.Info().Fields(kv).Msg(msg) }
func (z leveledLogger) Debug(msg string, kv ...interface{}) { z.l.Debug().Fields(kv).Msg(msg) }
func (z leveledLogger) Warn(msg string, kv ...interface{})  { z.l.Warn().Fields(kv).Msg(msg) }
