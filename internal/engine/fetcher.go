package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tartampluch/go-sambat/internal/config"
)

// ErrResponseTooLarge is returned when a calendar-data document exceeds
// config.MaxHTTPResponseSize, either as announced by Content-Length or while
// the body is being read.
var ErrResponseTooLarge = errors.New(config.ErrResponseSize)

// DataFetcher defines the contract for retrieving calendar-table overrides.
// This interface allows for mocking in tests and decoupling the sync from the network layer.
type DataFetcher interface {
	Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error)
}

// HTTPFetcher implements DataFetcher using the standard net/http library.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher creates a new instance of HTTPFetcher with configured timeouts.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{
			Timeout: config.HTTPTimeout,
		},
	}
}

// Fetch downloads a month-table JSON document from a remote URL.
// Only http and https are accepted and the query string never reaches the logs.
// The returned body fails with ErrResponseTooLarge once the document grows
// past config.MaxHTTPResponseSize.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL, user, pass string) (io.ReadCloser, error) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}

	// Calendar data is only ever served over HTTP(S).
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, safeURL(u)),
	)
	log.Debug("Requesting calendar data")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Identify ourselves and ask for the table format we can parse.
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	req.Header.Set(config.HeaderAccept, config.MimeJSONBare)

	// Public tables need no credentials; only send them when configured.
	if user != "" || pass != "" {
		req.SetBasicAuth(user, pass)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error during fetch: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close() // Ensure we don't leak the connection on error.
		log.Warn("Server returned error status",
			slog.Int(config.LogKeyStatus, resp.StatusCode),
		)
		return nil, fmt.Errorf("server returned unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	// Reject oversized documents before reading a single byte when the server
	// announces the size up front.
	if resp.ContentLength > config.MaxHTTPResponseSize {
		_ = resp.Body.Close()
		log.Warn("Calendar data too large",
			slog.Int64(config.LogKeySizeBytes, resp.ContentLength),
		)
		return nil, fmt.Errorf("%w: %d bytes", ErrResponseTooLarge, resp.ContentLength)
	}

	log.Info("Calendar data downloading",
		slog.Int64(config.LogKeySizeBytes, resp.ContentLength),
	)

	return &limitedBody{
		body:      resp.Body,
		remaining: config.MaxHTTPResponseSize,
	}, nil
}

// safeURL strips the query string and user info, which may carry tokens.
func safeURL(u *url.URL) string {
	return u.Scheme + "://" + u.Host + u.Path
}

// limitedBody reads at most `remaining` bytes from the network body.
// Streams without a Content-Length are only caught here: once the budget is
// spent, one extra byte is probed to tell a document that ends exactly at the
// limit from one that keeps going.
type limitedBody struct {
	body      io.ReadCloser
	remaining int64
}

func (l *limitedBody) Read(p []byte) (int, error) {
	if l.remaining <= 0 {
		var probe [1]byte
		if n, _ := io.ReadFull(l.body, probe[:]); n > 0 {
			return 0, ErrResponseTooLarge
		}
		return 0, io.EOF
	}

	if int64(len(p)) > l.remaining {
		p = p[:l.remaining]
	}
	n, err := l.body.Read(p)
	l.remaining -= int64(n)
	return n, err
}

// Close releases the underlying network connection.
func (l *limitedBody) Close() error {
	return l.body.Close()
}
