package client

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

const (
	// DefaultBackendPort is the port of the backend when derived from the host
	DefaultBackendPort = "5000"
	// DefaultBackendPath is the API mount path when derived from the host
	DefaultBackendPath = "/api"
)

// ResolveBaseURL picks the backend base URL. A configured production URL
// always wins; otherwise the URL is derived from host as
// http://<host>:5000/api. An empty host means localhost.
func ResolveBaseURL(productionURL, host string) (*url.URL, error) {
	if raw := strings.TrimSpace(productionURL); raw != "" {
		u, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse api url: %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("api url %q must be absolute", raw)
		}
		return u, nil
	}

	host = strings.TrimSpace(host)
	if host == "" {
		host = "localhost"
	}

	// the host may already carry a port (e.g. "kiosk.local:8080"), keep the name only
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.Trim(host, "[]")

	return &url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(host, DefaultBackendPort),
		Path:   DefaultBackendPath,
	}, nil
}
