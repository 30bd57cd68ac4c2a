package utils

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"
)

// PingService checks if a TCP service is reachable at the given URL
func PingService(serviceURL string, timeout time.Duration) error {
	parsedURL, err := url.Parse(serviceURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	host := parsedURL.Hostname()
	if host == "" {
		return fmt.Errorf("invalid URL: no host in %q", parsedURL.Redacted())
	}
	port := parsedURL.Port()

	// Default ports if not specified
	if port == "" {
		port = defaultPort(parsedURL.Scheme)
	}

	address := net.JoinHostPort(host, port)

	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	defer conn.Close()

	return nil
}

// PingDatabaseHost checks that the host of a URL-form connection string accepts
// TCP connections. ok is false when the connection string has no network host
// (file databases, keyword/value DSNs), in which case nothing is dialed.
func PingDatabaseHost(databaseURL string) (ok bool, err error) {
	if !strings.Contains(databaseURL, "://") || strings.HasPrefix(databaseURL, "file:") {
		return false, nil
	}
	return true, PingService(databaseURL, 1500*time.Millisecond)
}

func defaultPort(scheme string) string {
	switch scheme {
	case "postgres", "postgresql":
		return "5432"
	case "mysql", "mariadb":
		return "3306"
	case "sqlserver":
		return "1433"
	case "https":
		return "443"
	default:
		return "80"
	}
}
