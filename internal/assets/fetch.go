package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ProgressFunc is called while a remote asset downloads. total is -1 when
// the server sends no length.
type ProgressFunc func(source string, read, total int64)

// Fetcher reads asset bytes from disk or over HTTP.
type Fetcher struct {
	Client   *http.Client
	Progress ProgressFunc
}

// Fetch returns the full contents of src. src is an http(s) URL, a file://
// URL or a plain filesystem path.
func (f *Fetcher) Fetch(ctx context.Context, src string) ([]byte, error) {
	if isRemote(src) {
		return f.fetchHTTP(ctx, src)
	}
	data, err := os.ReadFile(localPath(src))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

func (f *Fetcher) fetchHTTP(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get: unexpected status %s", resp.Status)
	}

	var body io.Reader = resp.Body
	if f.Progress != nil {
		body = &progressReader{r: resp.Body, total: resp.ContentLength, src: src, fn: f.Progress}
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}

// localPath strips a file:// scheme.
func localPath(src string) string {
	if !strings.HasPrefix(src, "file://") {
		return src
	}
	if u, err := url.Parse(src); err == nil {
		return filepath.FromSlash(u.Path)
	}
	return strings.TrimPrefix(src, "file://")
}

func isRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// extension returns the lower-case extension of src, ignoring any URL
// query or fragment.
func extension(src string) string {
	if isRemote(src) || strings.HasPrefix(src, "file://") {
		if u, err := url.Parse(src); err == nil {
			src = u.Path
		}
	}
	return strings.ToLower(filepath.Ext(src))
}

type progressReader struct {
	r     io.Reader
	read  int64
	total int64
	src   string
	fn    ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		p.fn(p.src, p.read, p.total)
	}
	return n, err
}
