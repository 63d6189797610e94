// Package poster turns remote poster images into self-contained data URIs
// so the catalog never depends on a third-party image host at render time.
package poster

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// DefaultMaxBytes is the largest poster accepted, matching the upload limit of the admin form.
const DefaultMaxBytes = 1024 * 1024

const dataURIPrefix = "data:"

var (
	// ErrPosterTooLarge is returned when the image exceeds the configured byte limit.
	ErrPosterTooLarge = errors.New("poster image too large")

	// ErrNotImage is returned when the fetched body is not an image.
	ErrNotImage = errors.New("poster is not an image")

	// ErrUnsupportedURL is returned for anything other than http(s) or data URIs.
	ErrUnsupportedURL = errors.New("unsupported poster url")

	// ErrFetchFailed wraps transport failures, error statuses and an open breaker.
	ErrFetchFailed = errors.New("fetching poster")
)

// Inliner downloads poster images and encodes them as base64 data URIs.
type Inliner struct {
	client   *resty.Client
	cb       *gobreaker.CircuitBreaker[*resty.Response]
	maxBytes int64
	logger   *zap.Logger
}

// New creates a new Inliner. A non-positive cfg.MaxBytes uses DefaultMaxBytes.
func New(cfg ClientConfig, logger *zap.Logger) *Inliner {
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	return &Inliner{
		client:   NewRestyClient(cfg),
		cb:       NewCircuitBreaker[*resty.Response]("poster", cfg.CB, logger),
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// Inline returns rawURL as a data URI. Data URIs are returned unchanged after a size check.
func (i *Inliner) Inline(ctx context.Context, rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)

	if strings.HasPrefix(rawURL, dataURIPrefix) {
		if decodedLen(rawURL) > i.maxBytes {
			return "", ErrPosterTooLarge
		}
		return rawURL, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedURL, rawURL)
	}

	resp, err := i.cb.Execute(func() (*resty.Response, error) {
		r, err := i.client.R().
			SetContext(ctx).
			Get(rawURL)
		if err != nil {
			return nil, err
		}
		if r.IsError() {
			return nil, fmt.Errorf("poster host returned status %d", r.StatusCode())
		}

		return r, nil
	})
	if err != nil {
		i.logger.Warn("poster fetch failed",
			zap.String("url", rawURL),
			zap.Error(err),
			zap.String("state", i.cb.State().String()),
		)

		return "", fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	body := resp.Body()
	if int64(len(body)) > i.maxBytes {
		i.logger.Info("poster rejected: too large",
			zap.String("url", rawURL),
			zap.Int("bytes", len(body)),
			zap.Int64("limit", i.maxBytes),
		)
		return "", ErrPosterTooLarge
	}

	contentType := imageType(resp.Header().Get("Content-Type"), body)
	if contentType == "" {
		return "", ErrNotImage
	}

	i.logger.Debug("poster inlined",
		zap.String("url", rawURL),
		zap.String("content_type", contentType),
		zap.Int("bytes", len(body)),
	)

	return dataURIPrefix + contentType + ";base64," + base64.StdEncoding.EncodeToString(body), nil
}

// imageType prefers the declared media type and falls back to sniffing.
// It returns "" when neither says image.
func imageType(header string, body []byte) string {
	if mt, _, err := mime.ParseMediaType(header); err == nil && strings.HasPrefix(mt, "image/") {
		return mt
	}

	sniffed, _, _ := mime.ParseMediaType(http.DetectContentType(body))
	if strings.HasPrefix(sniffed, "image/") {
		return sniffed
	}
	return ""
}

// decodedLen estimates the payload size of a base64 data URI.
func decodedLen(dataURI string) int64 {
	comma := strings.IndexByte(dataURI, ',')
	if comma < 0 {
		return 0
	}
	meta, payload := dataURI[:comma], dataURI[comma+1:]
	if !strings.HasSuffix(meta, ";base64") {
		return int64(len(payload))
	}
	return int64(base64.StdEncoding.DecodedLen(len(payload)))
}
