package utils

import (
	"context"
	"net"
	"net/url"
	"time"

	"github.com/pkg/errors"
)

// DefaultPingTimeout bounds a reachability check
const DefaultPingTimeout = 1500 * time.Millisecond

// PingService checks that a TCP connection can be opened to the host of serviceURL
func PingService(ctx context.Context, serviceURL string, timeout time.Duration) error {
	parsedURL, err := url.Parse(serviceURL)
	if err != nil {
		return errors.Wrap(err, "invalid URL")
	}
	if parsedURL.Hostname() == "" {
		return errors.Errorf("invalid URL %q: missing host", serviceURL)
	}

	port := parsedURL.Port()
	if port == "" {
		port = "80"
		if parsedURL.Scheme == "https" {
			port = "443"
		}
	}
	address := net.JoinHostPort(parsedURL.Hostname(), port)

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return errors.Wrapf(err, "failed to connect to %s", address)
	}
	return conn.Close()
}

// PingAuthorizer checks if the Authorizer service is reachable
func PingAuthorizer(ctx context.Context, authzURL string) error {
	return PingService(ctx, authzURL, DefaultPingTimeout)
}
