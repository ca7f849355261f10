// Package subconverter talks to the external conversion service that turns
// proxy links into a Clash configuration document.
package subconverter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/orris-inc/subhub/internal/domain/subconverter"
	"github.com/orris-inc/subhub/internal/shared/config"
	apperrors "github.com/orris-inc/subhub/internal/shared/errors"
	"github.com/orris-inc/subhub/internal/shared/logger"
	"github.com/orris-inc/subhub/internal/shared/utils/logutil"
)

const (
	defaultTimeout      = 15 * time.Second
	defaultMaxBodyBytes = 5 << 20
	defaultUserAgent    = "subhub"

	// linkSeparator joins several links into one url parameter.
	linkSeparator = "|"

	targetClash = "clash"

	// errorSnippetBytes caps how much of a failed response ends up in an error.
	errorSnippetBytes = 256
)

var errBodyTooLarge = errors.New("response body exceeds limit")

// Client calls a subconverter instance over HTTP. It is safe for concurrent use.
type Client struct {
	httpClient   *http.Client
	maxBodyBytes int64
	userAgent    string
	logger       logger.Interface
}

// NewClient creates a client from the subconverter settings. Zero values
// fall back to a 15s timeout and a 5 MiB body limit.
func NewClient(cfg config.SubconverterConfig, log logger.Interface) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}

	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		maxBodyBytes: maxBody,
		userAgent:    ua,
		logger:       log,
	}
}

// Convert asks sc to render links as a Clash document and returns the raw
// body. An empty link list is sent as an empty url parameter.
func (c *Client) Convert(ctx context.Context, links []string, sc *subconverter.Subconverter) (string, error) {
	if sc == nil {
		return "", apperrors.NewInternalError("no subconverter given")
	}

	requestURL := BuildConvertURL(sc.BaseURL(), sc.QueryOptions(), links)

	c.logger.Debugw("requesting conversion",
		"subconverter_id", sc.ID(),
		"base_url", sc.BaseURL(),
		"links", len(links),
	)

	body, err := c.get(ctx, requestURL, "conversion")
	if err != nil {
		c.logger.Warnw("conversion failed",
			"subconverter_id", sc.ID(),
			"error", err,
		)
		return "", err
	}
	if strings.TrimSpace(body) == "" {
		return "", apperrors.NewUpstreamError("conversion service returned an empty document")
	}
	return body, nil
}

// Verify calls {baseURL}/version and returns the version text the service reports.
func (c *Client) Verify(ctx context.Context, baseURL string) (string, error) {
	base := subconverter.NormalizeBaseURL(baseURL)
	if err := validateBaseURL(base); err != nil {
		return "", err
	}

	body, err := c.get(ctx, base+"/version", "version check")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(body), nil
}

// BuildConvertURL assembles {base}/sub?{options}&target=clash&url={links}.
func BuildConvertURL(base, options string, links []string) string {
	q := "target=" + targetClash + "&url=" + url.QueryEscape(strings.Join(links, linkSeparator))
	options = strings.TrimLeft(strings.TrimSpace(options), "?&")
	if options != "" {
		q = options + "&" + q
	}
	return strings.TrimRight(base, "/") + "/sub?" + q
}

func validateBaseURL(base string) error {
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperrors.NewValidationError("subconverter url must be an absolute http(s) URL", base)
	}
	return nil
}

func (c *Client) get(ctx context.Context, rawURL, what string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", apperrors.NewValidationError("invalid subconverter url", err.Error()).WithCause(err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", transportError(what, err)
	}
	defer resp.Body.Close()

	body, readErr := c.readBody(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperrors.NewUpstreamError(
			fmt.Sprintf("%s failed: upstream returned status %d", what, resp.StatusCode),
			snippet(body),
		)
	}
	if readErr != nil {
		if errors.Is(readErr, errBodyTooLarge) {
			return "", apperrors.NewUpstreamError(
				fmt.Sprintf("%s failed: response larger than %d bytes", what, c.maxBodyBytes),
			).WithCause(readErr)
		}
		return "", transportError(what, readErr)
	}
	return body, nil
}

// readBody reads at most maxBodyBytes, reporting errBodyTooLarge past that.
func (c *Client) readBody(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, c.maxBodyBytes+1))
	if err != nil {
		return string(data), err
	}
	if int64(len(data)) > c.maxBodyBytes {
		return string(data[:c.maxBodyBytes]), errBodyTooLarge
	}
	return string(data), nil
}

func transportError(what string, err error) error {
	var ne net.Error
	switch {
	case errors.Is(err, context.Canceled):
		return apperrors.NewUpstreamError(what + " failed: request canceled").WithCause(err)
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &ne) && ne.Timeout():
		return apperrors.NewUpstreamError(what + " failed: upstream timed out").WithCause(err)
	default:
		return apperrors.NewUpstreamError(what+" failed: upstream unreachable", err.Error()).WithCause(err)
	}
}

func snippet(body string) string {
	return logutil.TruncateForLog(strings.TrimSpace(body), errorSnippetBytes)
}
