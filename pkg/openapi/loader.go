package openapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"
)

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFileSystem enables SourceKindFS sources.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(l *Loader) {
		l.fs = files
	}
}

// WithHTTPClient enables SourceKindURL sources. A positive timeout caps each
// request.
func WithHTTPClient(client *http.Client, timeout time.Duration) LoaderOption {
	return func(l *Loader) {
		l.http = client
		l.timeout = timeout
	}
}

// Loader fetches raw OpenAPI documents.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
}

// NewLoader constructs a Loader. HTTP is disabled unless a client is given.
func NewLoader(options ...LoaderOption) *Loader {
	l := &Loader{}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Load returns the raw document bytes for src.
func (l *Loader) Load(ctx context.Context, src Source) ([]byte, error) {
	if src == nil {
		return nil, errors.New("openapi loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = os.ReadFile(src.Location())
	case SourceKindFS:
		if l.fs == nil {
			return nil, errors.New("openapi loader: filesystem is not configured")
		}
		data, err = fs.ReadFile(l.fs, src.Location())
	case SourceKindURL:
		data, err = l.loadHTTP(ctx, src.Location())
	default:
		err = fmt.Errorf("openapi loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("openapi loader: %s is empty", src.Location())
	}
	return data, nil
}

func (l *Loader) loadHTTP(ctx context.Context, url string) ([]byte, error) {
	if l.http == nil {
		return nil, errors.New("openapi loader: http support disabled")
	}
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New("openapi loader: unexpected status " + resp.Status)
	}
	return io.ReadAll(resp.Body)
}
