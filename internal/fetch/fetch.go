// Package fetch retrieves JSON content documents. Remote sources are read
// over HTTP(S); local directories go through an HTTP file transport so both
// report missing files the same way (404).
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
)

// FetchFailure is the single error kind for a document that could not be
// loaded: transport error, non-2xx status or a body that is not JSON.
type FetchFailure struct {
	Path   string
	Status int // 0 when the request never produced a usable response
	Err    error
}

func (e *FetchFailure) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("failed to fetch %s: %d", e.Path, e.Status)
	}
	return fmt.Sprintf("failed to fetch %s: %v", e.Path, e.Err)
}

func (e *FetchFailure) Unwrap() error { return e.Err }

// Fetcher issues single-attempt GETs relative to a base location. It keeps
// no state between calls.
type Fetcher struct {
	client *http.Client
	base   *url.URL
}

// New returns a Fetcher for source, which is either an http(s) base URL or
// a local directory.
func New(source string) (*Fetcher, error) {
	if source == "" {
		return nil, fmt.Errorf("fetch: empty data source")
	}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		base, err := url.Parse(source)
		if err != nil {
			return nil, fmt.Errorf("fetch: parse base url: %w", err)
		}
		if !strings.HasSuffix(base.Path, "/") {
			base.Path += "/"
		}
		return &Fetcher{client: &http.Client{}, base: base}, nil
	}

	root, err := filepath.Abs(source)
	if err != nil {
		return nil, fmt.Errorf("fetch: resolve data dir: %w", err)
	}
	transport := &http.Transport{}
	transport.RegisterProtocol("file", http.NewFileTransport(http.Dir(root)))
	return &Fetcher{
		client: &http.Client{Transport: transport},
		base:   &url.URL{Scheme: "file", Path: "/"},
	}, nil
}

// Fetch GETs path and returns the body once it is known to be valid JSON.
func (f *Fetcher) Fetch(ctx context.Context, path string) (json.RawMessage, error) {
	ref, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return nil, &FetchFailure{Path: path, Err: err}
	}
	target := f.base.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, &FetchFailure{Path: path, Err: err}
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchFailure{Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchFailure{Path: path, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchFailure{Path: path, Err: fmt.Errorf("reading body: %w", err)}
	}
	if !json.Valid(body) {
		return nil, &FetchFailure{Path: path, Err: fmt.Errorf("invalid JSON body")}
	}
	return json.RawMessage(body), nil
}
