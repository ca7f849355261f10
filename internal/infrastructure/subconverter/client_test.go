package subconverter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/subhub/internal/domain/subconverter"
	"github.com/orris-inc/subhub/internal/shared/config"
	apperrors "github.com/orris-inc/subhub/internal/shared/errors"
	"github.com/orris-inc/subhub/internal/shared/logger"
)

func newTestClient(timeout time.Duration, maxBody int64) *Client {
	return NewClient(config.SubconverterConfig{
		Timeout:      timeout,
		MaxBodyBytes: maxBody,
		UserAgent:    "subhub-test",
	}, logger.NewNopLogger())
}

func TestBuildConvertURL(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		options string
		links   []string
		want    string
	}{
		{
			name:  "no options",
			base:  "http://sc.local",
			links: []string{"ss://a"},
			want:  "http://sc.local/sub?target=clash&url=ss%3A%2F%2Fa",
		},
		{
			name:    "options first",
			base:    "http://sc.local/",
			options: "?emoji=true&udp=true",
			links:   []string{"ss://a", "vmess://b"},
			want:    "http://sc.local/sub?emoji=true&udp=true&target=clash&url=ss%3A%2F%2Fa%7Cvmess%3A%2F%2Fb",
		},
		{
			name: "empty link set",
			base: "http://sc.local",
			want: "http://sc.local/sub?target=clash&url=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildConvertURL(tt.base, tt.options, tt.links))
		})
	}
}

func TestConvert_Success(t *testing.T) {
	var gotQuery map[string][]string
	var gotPath, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotUA = r.UserAgent()
		_, _ = w.Write([]byte("port: 7890\nproxies: []\n"))
	}))
	defer srv.Close()

	client := newTestClient(time.Second, 1024)
	sc := subconverter.ReconstructSubconverter("sc-1", srv.URL+"/", "&emoji=true", true)

	body, err := client.Convert(context.Background(), []string{"ss://a", "trojan://b"}, sc)
	require.NoError(t, err)

	assert.Equal(t, "port: 7890\nproxies: []\n", body)
	assert.Equal(t, "/sub", gotPath)
	assert.Equal(t, "clash", gotQuery["target"][0])
	assert.Equal(t, "ss://a|trojan://b", gotQuery["url"][0])
	assert.Equal(t, "true", gotQuery["emoji"][0])
	assert.Equal(t, "subhub-test", gotUA)
}

func TestConvert_EmptyLinkSetSendsEmptyPayload(t *testing.T) {
	var present bool
	var payload string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload = r.URL.Query().Get("url")
		_, present = r.URL.Query()["url"]
		_, _ = w.Write([]byte("proxies: []\n"))
	}))
	defer srv.Close()

	client := newTestClient(time.Second, 1024)
	sc := subconverter.ReconstructSubconverter("sc-1", srv.URL, "", true)

	_, err := client.Convert(context.Background(), nil, sc)
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, "", payload)
}

func TestConvert_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantMsg string
	}{
		{
			name: "service unavailable",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "backend overloaded", http.StatusServiceUnavailable)
			},
			wantMsg: "status 503",
		},
		{
			name: "empty body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
			wantMsg: "empty document",
		},
		{
			name: "body too large",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(strings.Repeat("x", 2048)))
			},
			wantMsg: "larger than",
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-time.After(time.Second):
				case <-r.Context().Done():
				}
			},
			wantMsg: "timed out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := newTestClient(100*time.Millisecond, 1024)
			sc := subconverter.ReconstructSubconverter("sc-1", srv.URL, "", true)

			body, err := client.Convert(context.Background(), []string{"ss://a"}, sc)
			require.Error(t, err)
			assert.Empty(t, body)
			assert.True(t, apperrors.IsUpstreamError(err), "got %v", err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestConvert_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	client := newTestClient(time.Second, 1024)
	_, err := client.Convert(context.Background(), []string{"ss://a"}, subconverter.ReconstructSubconverter("sc-1", addr, "", true))
	assert.True(t, apperrors.IsUpstreamError(err), "got %v", err)
}

func TestConvert_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("proxies: []\n"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := newTestClient(time.Second, 1024)
	_, err := client.Convert(ctx, []string{"ss://a"}, subconverter.ReconstructSubconverter("sc-1", srv.URL, "", true))
	assert.True(t, apperrors.IsUpstreamError(err), "got %v", err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestVerify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/version" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("subconverter v0.9.0 backend\n"))
	}))
	defer srv.Close()

	client := newTestClient(time.Second, 1024)

	version, err := client.Verify(context.Background(), srv.URL+"/")
	require.NoError(t, err)
	assert.Equal(t, "subconverter v0.9.0 backend", version)

	_, err = client.Verify(context.Background(), srv.URL+"/missing")
	assert.True(t, apperrors.IsUpstreamError(err))

	_, err = client.Verify(context.Background(), "ftp://example.com")
	assert.True(t, apperrors.IsValidationError(err))
}
