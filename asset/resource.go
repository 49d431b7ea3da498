package asset

import (
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// A Resource is a readable stream backed by a local file, a remote http(s)
// location or an in-memory buffer.
type Resource struct {
	io.ReadCloser
	url *url.URL
}

// Returns the path to this resource.
func (r *Resource) Path() string {
	return r.url.String()
}

// Returns true if the Resource is streamed over http/https.
func (r *Resource) IsRemote() bool {
	return r.url.Scheme != ""
}

// Open a resource. Paths without a scheme that are not absolute are resolved
// relative to the directory containing relTo, if specified. Both local and
// http/https locations are supported.
//
// The caller must close the returned resource.
func NewResource(pathToResource string, relTo *Resource) (*Resource, error) {
	loc, err := url.Parse(strings.Replace(pathToResource, `\`, `/`, -1))
	if err != nil {
		return nil, err
	}

	if loc.Scheme == "" && relTo != nil && !filepath.IsAbs(loc.Path) {
		loc, err = resolveRelative(loc.Path, relTo)
		if err != nil {
			return nil, err
		}
	}

	var reader io.ReadCloser
	switch loc.Scheme {
	case "":
		if reader, err = os.Open(filepath.Clean(loc.Path)); err != nil {
			return nil, err
		}
	case "http", "https":
		if reader, err = fetch(loc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("resource: unsupported scheme '%s'", loc.Scheme)
	}

	return &Resource{
		ReadCloser: reader,
		url:        loc,
	}, nil
}

// Create a resource from a reader.
func NewResourceFromStream(name string, source io.Reader) *Resource {
	loc, err := url.Parse(name)
	if err != nil {
		loc = &url.URL{Path: name}
	}
	return &Resource{
		ReadCloser: ioutil.NopCloser(source),
		url:        loc,
	}
}

func resolveRelative(path string, relTo *Resource) (*url.URL, error) {
	base := *relTo.url
	dir := base.Path
	if base.Scheme == "" {
		abs, err := filepath.Abs(base.Path)
		if err != nil {
			return nil, fmt.Errorf("resource: could not detect abs path for %s: %s", base.String(), err.Error())
		}
		dir = abs
	}
	base.Path = filepath.ToSlash(filepath.Dir(dir)) + "/" + path
	return &base, nil
}

func fetch(loc *url.URL) (io.ReadCloser, error) {
	resp, err := http.Get(loc.String())
	if err != nil {
		return nil, fmt.Errorf("resource: could not fetch '%s': %s", loc.String(), err)
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, fmt.Errorf("resource: could not fetch '%s': status %d", loc.String(), resp.StatusCode)
	}
	return resp.Body, nil
}
