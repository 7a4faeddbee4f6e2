// Package asset streams render inputs such as scene descriptions and
// spectrum table blobs from the local filesystem or an HTTP endpoint.
package asset

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Resource is a streamable render input. It can be backed by a local
// file, an http(s) endpoint or an arbitrary reader.
type Resource struct {
	io.ReadCloser
	url *url.URL
}

// Path returns the location this resource was opened from.
func (r *Resource) Path() string {
	return r.url.String()
}

// IsRemote reports whether the resource is streamed over http(s).
func (r *Resource) IsRemote() bool {
	return r.url.Scheme != ""
}

// NewResource opens a data stream for the given path or URL. When
// relTo is set and the path carries no scheme, the path is resolved
// against the location of relTo; scene descriptions use this to
// reference sibling assets no matter where the scene itself is served
// from. The caller must close the returned resource.
func NewResource(pathToResource string, relTo *Resource) (*Resource, error) {
	target, err := resolveURL(pathToResource, relTo)
	if err != nil {
		return nil, err
	}

	var reader io.ReadCloser
	switch target.Scheme {
	case "":
		if reader, err = os.Open(filepath.Clean(target.Path)); err != nil {
			return nil, err
		}
	case "http", "https":
		resp, err := http.Get(target.String())
		if err != nil {
			return nil, fmt.Errorf("asset: could not fetch '%s': %s", target.String(), err)
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, fmt.Errorf("asset: could not fetch '%s': status %d", target.String(), resp.StatusCode)
		}
		reader = resp.Body
	default:
		return nil, fmt.Errorf("asset: unsupported scheme '%s'", target.Scheme)
	}

	return &Resource{
		ReadCloser: reader,
		url:        target,
	}, nil
}

// NewResourceFromStream wraps an in-memory reader so embedded data can
// flow through the same loading paths as files and URLs.
func NewResourceFromStream(name string, source io.Reader) *Resource {
	url, _ := url.Parse(name)
	return &Resource{
		ReadCloser: io.NopCloser(source),
		url:        url,
	}
}

// resolveURL parses pathToResource, normalizing windows separators,
// and grafts scheme-less relative paths onto the location of relTo.
func resolveURL(pathToResource string, relTo *Resource) (*url.URL, error) {
	target, err := url.Parse(strings.ReplaceAll(pathToResource, `\`, `/`))
	if err != nil {
		return nil, err
	}
	if target.Scheme != "" || relTo == nil {
		return target, nil
	}

	path := target.Path
	target, _ = url.Parse(relTo.url.String())
	prefix := target.Path
	if target.Scheme == "" {
		if prefix, err = filepath.Abs(relTo.url.String()); err != nil {
			return nil, fmt.Errorf("asset: could not detect abs path for %s: %v", relTo.url.String(), err)
		}
	}
	target.Path = filepath.Dir(prefix) + "/" + path
	return target, nil
}
