package model

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Load opens the model named by uri. Plain paths and file:// URIs load a JSON
// artifact; http(s):// URIs point at an inference sidecar.
func Load(uri string, timeout time.Duration) (Model, error) {
	if strings.TrimSpace(uri) == "" {
		return nil, fmt.Errorf("model uri is required")
	}

	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// No scheme, or a Windows drive letter: treat as a path
		return LoadArtifact(uri)
	}

	switch u.Scheme {
	case "file":
		path := u.Path
		if u.Host != "" {
			path = u.Host + path
		}
		return LoadArtifact(path)
	case "http", "https":
		return NewRemoteModel(uri, timeout), nil
	default:
		return nil, fmt.Errorf("unsupported model uri scheme %q", u.Scheme)
	}
}

// Describe returns model info when m provides it
func Describe(m Model) Info {
	if d, ok := m.(Describer); ok {
		return d.Info()
	}
	return Info{Name: fmt.Sprintf("%T", m)}
}
