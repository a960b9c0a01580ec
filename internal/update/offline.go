package update

import (
	"errors"
	"net"
	"strings"
	"syscall"
)

// IsOffline reports whether err looks like the release server could not be
// reached at all, as opposed to answering with an error.
func IsOffline(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ETIMEDOUT) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range offlinePatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// Errors that lost their type on the way, e.g. through fmt.Errorf with %v.
var offlinePatterns = []string{
	"no such host",
	"connection refused",
	"network is unreachable",
	"no route to host",
	"temporary failure in name resolution",
}
