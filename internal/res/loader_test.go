package res

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDataURL(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	ref := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	l := NewLoader("")
	r, err := l.Load(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, payload, r.Data)
	assert.Equal(t, "image/png", r.MimeType)

	r, err = l.Load(context.Background(), "data:text/plain,Hello%20World")
	require.NoError(t, err)
	assert.Equal(t, "Hello World", string(r.Data))
	assert.Equal(t, "text/plain", r.MimeType)

	_, err = l.Fetch(context.Background(), "data:text/plain,Hello")
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = l.Load(context.Background(), "data:image/png;base64")
	assert.Error(t, err)
}

func TestLoadLocalRelativeToBase(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.png"), []byte("png-bytes"), 0o600))

	l := NewLoader(filepath.Join(dir, "round.yaml"))
	data, err := l.Fetch(context.Background(), "logo.png")
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	l = NewLoader(dir)
	data, err = l.Fetch(context.Background(), "logo.png")
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestLoadFromSearchPaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sign.svg"), []byte("<svg/>"), 0o600))

	l := NewLoader(t.TempDir())
	l.AddSearchPath(dir)

	r, err := l.Load(context.Background(), "assets/sign.svg")
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", r.MimeType)

	_, err = l.Load(context.Background(), "missing.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadRemote(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/missing.jpg" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg; charset=binary")
		_, _ = w.Write([]byte("jpeg"))
	}))
	defer srv.Close()

	l := NewLoader(srv.URL + "/rounds/")
	r, err := l.Load(context.Background(), "photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(r.Data))
	assert.Equal(t, "image/jpeg", r.MimeType)

	_, err = l.Load(context.Background(), "photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load(), "second load served from cache")

	_, err = l.Fetch(context.Background(), srv.URL+"/missing.jpg")
	assert.Error(t, err)
}

func TestLoadRemoteSendsHeaderAndSharesRequests(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Header.Get("Authorization") != "Bearer tenant-42" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		<-release
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png"))
	}))
	defer srv.Close()

	l := NewLoader(srv.URL)
	l.Header.Set("Authorization", "Bearer tenant-42")

	var wg sync.WaitGroup
	results := make([][]byte, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = l.Fetch(context.Background(), "/logo.png")
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "png", string(r))
	}
	assert.Equal(t, int32(1), hits.Load(), "concurrent loads share one request")
}

func TestFetchPassesUntypedUploads(t *testing.T) {
	payload := []byte("\x89PNG\r\n\x1a\nrest")
	types := map[string]string{
		"/signed":  "binary/octet-stream",
		"/plain":   "application/octet-stream",
		"/unknown": "application/x-upload",
		"/error":   "text/html; charset=utf-8",
		"/api":     "application/json",
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", types[r.URL.Path])
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	l := NewLoader("")
	for _, path := range []string{"/signed", "/plain", "/unknown"} {
		data, err := l.Fetch(context.Background(), srv.URL+path)
		require.NoError(t, err, path)
		assert.Equal(t, payload, data)
	}
	for _, path := range []string{"/error", "/api"} {
		_, err := l.Fetch(context.Background(), srv.URL+path)
		assert.ErrorIs(t, err, ErrNotImage, path)
	}

	r, err := l.Load(context.Background(), srv.URL+"/signed")
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", r.MimeType, "untyped uploads fall back to the extension")
}

func TestConfinedLoader(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "ok.png"), []byte("ok"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(outside, "secret.png"), []byte("secret"), 0o600))

	l := NewLoader(root)
	l.Confined = true

	data, err := l.Fetch(context.Background(), "ok.png")
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))

	_, err = l.Fetch(context.Background(), filepath.Join(outside, "secret.png"))
	assert.ErrorIs(t, err, ErrOutsideRoot)

	rel, err := filepath.Rel(root, filepath.Join(outside, "secret.png"))
	require.NoError(t, err)
	_, err = l.Fetch(context.Background(), rel)
	assert.ErrorIs(t, err, ErrOutsideRoot)
}

func TestLoadRemoteHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader("").Fetch(ctx, srv.URL+"/slow.png")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMimeType(t *testing.T) {
	tests := map[string]string{
		"a/b/photo.JPG":                   "image/jpeg",
		"logo.png":                        "image/png",
		"scan.tif":                        "image/tiff",
		"https://x.test/img.webp?sig=abc": "image/webp",
		"data:image/gif;base64,R0lGOD":    "image/gif",
		"data:,plain":                     "application/octet-stream",
		"noext":                           "application/octet-stream",
	}
	for ref, want := range tests {
		assert.Equal(t, want, MimeType(ref), ref)
	}
}
