// Package res loads image bytes referenced by reports: data URLs, local
// files and http(s) resources. A Loader satisfies images.Fetcher.
package res

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

var (
	// ErrNotFound is returned when a local resource exists in no search path
	ErrNotFound = errors.New("resource not found")
	// ErrNotImage is returned by Fetch for resources that are not images
	ErrNotImage = errors.New("resource is not an image")
	// ErrOutsideRoot is returned by a confined loader for local references
	// that leave the base directory
	ErrOutsideRoot = errors.New("resource outside base directory")
)

// maxResourceSize bounds a single download
const maxResourceSize = 32 << 20

// Resource is a loaded resource
type Resource struct {
	URL      string
	Data     []byte
	MimeType string
}

// Loader resolves references against a base directory or URL and caches what
// it loaded. It is safe for concurrent use; parallel loads of one reference
// share a single request.
type Loader struct {
	// BaseURL is the directory, file or URL relative references start from
	BaseURL string
	// Header is sent with every remote request, e.g. for storage credentials
	Header http.Header
	// Confined rejects absolute local paths and references leaving BaseURL
	Confined bool

	mu          sync.RWMutex
	cache       map[string]*Resource
	inflight    singleflight.Group
	searchPaths []string
	client      *http.Client
}

// NewLoader creates a loader rooted at baseURL
func NewLoader(baseURL string) *Loader {
	return &Loader{
		BaseURL: baseURL,
		Header:  make(http.Header),
		cache:   make(map[string]*Resource),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// AddSearchPath adds a directory tried, by file name, when a local
// reference does not exist
func (l *Loader) AddSearchPath(path string) {
	l.mu.Lock()
	l.searchPaths = append(l.searchPaths, path)
	l.mu.Unlock()
}

func (l *Loader) SetHTTPClient(c *http.Client) {
	if c != nil {
		l.client = c
	}
}

// Fetch returns the bytes behind an image reference. Text and JSON
// resources, typically error pages, are rejected; every other type is
// passed on for the decoder to sniff.
func (l *Loader) Fetch(ctx context.Context, ref string) ([]byte, error) {
	r, err := l.Load(ctx, ref)
	if err != nil {
		return nil, err
	}
	if isDocument(r.MimeType) {
		return nil, fmt.Errorf("%w: %s (%s)", ErrNotImage, ref, r.MimeType)
	}
	return r.Data, nil
}

func isDocument(mime string) bool {
	return strings.HasPrefix(mime, "text/") || mime == "application/json"
}

// isUntyped reports content types object stores use for unlabelled uploads
func isUntyped(mime string) bool {
	switch mime {
	case "", "application/octet-stream", "binary/octet-stream":
		return true
	}
	return false
}

// Load returns the resource behind ref, from the cache when possible
func (l *Loader) Load(ctx context.Context, ref string) (*Resource, error) {
	l.mu.RLock()
	r, ok := l.cache[ref]
	l.mu.RUnlock()
	if ok {
		return r, nil
	}

	v, err, _ := l.inflight.Do(ref, func() (any, error) {
		r, err := l.load(ctx, ref)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.cache[ref] = r
		l.mu.Unlock()
		return r, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Resource), nil
}

func (l *Loader) load(ctx context.Context, ref string) (*Resource, error) {
	if strings.HasPrefix(ref, "data:") {
		return parseDataURL(ref)
	}
	target, err := l.resolve(ref)
	if err != nil {
		return nil, err
	}
	if isRemote(target) {
		return l.loadRemote(ctx, target)
	}
	return l.loadLocal(target)
}

func isRemote(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// parseDataURL decodes an RFC 2397 data URL such as
//
//	data:image/png;base64,<base64>
//	data:text/plain,Hello%20World
func parseDataURL(u string) (*Resource, error) {
	meta, payload, found := strings.Cut(strings.TrimPrefix(u, "data:"), ",")
	if !found {
		return nil, errors.New("invalid data URL: missing comma")
	}

	mime, isBase64 := parseDataMeta(meta)
	r := &Resource{URL: u, MimeType: mime}
	if isBase64 {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 data URL: %w", err)
		}
		r.Data = data
		return r, nil
	}

	// the plain form is percent-encoded
	if d, err := url.PathUnescape(payload); err == nil {
		r.Data = []byte(d)
	} else {
		r.Data = []byte(payload)
	}
	return r, nil
}

// parseDataMeta splits "image/png;base64" into its mime type and encoding flag
func parseDataMeta(meta string) (string, bool) {
	mime := "application/octet-stream"
	isBase64 := false
	params := strings.Split(meta, ";")
	if m := strings.TrimSpace(params[0]); m != "" {
		mime = strings.ToLower(m)
	}
	for _, p := range params[1:] {
		if strings.EqualFold(strings.TrimSpace(p), "base64") {
			isBase64 = true
		}
	}
	return mime, isBase64
}

// baseDir is the directory local references start from
func (l *Loader) baseDir() string {
	dir := l.BaseURL
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	return dir
}

// resolve turns ref into an absolute URL or a file path
func (l *Loader) resolve(ref string) (string, error) {
	if isRemote(ref) {
		return ref, nil
	}

	if isRemote(l.BaseURL) {
		if filepath.IsAbs(ref) && l.Confined {
			return "", fmt.Errorf("%w: %s", ErrOutsideRoot, ref)
		}
		base, err := url.Parse(l.BaseURL)
		if err != nil {
			return "", fmt.Errorf("invalid base URL: %w", err)
		}
		rel, err := url.Parse(ref)
		if err != nil {
			return "", fmt.Errorf("invalid reference %q: %w", ref, err)
		}
		return base.ResolveReference(rel).String(), nil
	}

	if filepath.IsAbs(ref) {
		if l.Confined {
			return "", fmt.Errorf("%w: %s", ErrOutsideRoot, ref)
		}
		return ref, nil
	}
	dir := l.baseDir()
	path := filepath.Join(dir, ref)
	if l.Confined {
		rel, err := filepath.Rel(dir, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return "", fmt.Errorf("%w: %s", ErrOutsideRoot, ref)
		}
	}
	return path, nil
}

func (l *Loader) loadRemote(ctx context.Context, target string) (*Resource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	for k, vs := range l.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: HTTP %s", target, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResourceSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxResourceSize {
		return nil, fmt.Errorf("fetch %s: larger than %d bytes", target, maxResourceSize)
	}

	mime := resp.Header.Get("Content-Type")
	if m, _, ok := strings.Cut(mime, ";"); ok {
		mime = m
	}
	mime = strings.ToLower(strings.TrimSpace(mime))
	if isUntyped(mime) {
		mime = MimeType(target)
	}
	return &Resource{URL: target, Data: data, MimeType: mime}, nil
}

func (l *Loader) loadLocal(path string) (*Resource, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return l.loadFromSearchPaths(path)
	}
	if err != nil {
		return nil, err
	}
	return &Resource{URL: path, Data: data, MimeType: MimeType(path)}, nil
}

// loadFromSearchPaths looks for the file name of path in each search path
func (l *Loader) loadFromSearchPaths(path string) (*Resource, error) {
	name := filepath.Base(path)

	l.mu.RLock()
	dirs := append([]string(nil), l.searchPaths...)
	l.mu.RUnlock()

	for _, dir := range dirs {
		candidate := filepath.Join(dir, name)
		data, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		return &Resource{URL: candidate, Data: data, MimeType: MimeType(candidate)}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
}

// MimeType guesses the mime type of a reference from its data URL header or
// file extension. Query strings on URLs are ignored.
func MimeType(ref string) string {
	if rest, ok := strings.CutPrefix(ref, "data:"); ok {
		meta, _, _ := strings.Cut(rest, ",")
		mime, _ := parseDataMeta(meta)
		return mime
	}
	if isRemote(ref) {
		if u, err := url.Parse(ref); err == nil {
			ref = u.Path
		}
	}

	switch strings.ToLower(filepath.Ext(ref)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".tiff", ".tif":
		return "image/tiff"
	case ".bmp":
		return "image/bmp"
	case ".svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}
