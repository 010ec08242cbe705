package util

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	labelRegex   = regexp.MustCompile(`^[a-zA-Z0-9_]([a-zA-Z0-9_-]*[a-zA-Z0-9_])?$`)
	numericRegex = regexp.MustCompile(`^[0-9]+$`)
)

// ValidateEndpoint checks that raw is an absolute http(s) URL with a usable host.
func ValidateEndpoint(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("endpoint URL is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid endpoint URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint URL %q must use http or https", raw)
	}
	if !IsValidHost(u.Host) {
		return fmt.Errorf("endpoint URL %q has an invalid host", raw)
	}
	return nil
}

// IsValidHost accepts localhost, IP addresses and host names, each with an
// optional port. Single-label names such as docker service names are allowed.
func IsValidHost(input string) bool {
	if strings.TrimSpace(input) == "" {
		return false
	}

	host := input
	if strings.Contains(input, ":") {
		var port string
		var err error
		host, port, err = net.SplitHostPort(input)
		if err != nil {
			// bare IPv6 without port
			host = strings.Trim(input, "[]")
		} else if !isValidPort(port) {
			return false
		}
	}

	if strings.ToLower(host) == "localhost" {
		return true
	}

	if ip := net.ParseIP(host); ip != nil {
		return true
	}

	return isValidDomain(host)
}

func isValidPort(port string) bool {
	if port == "" {
		return true
	}
	num, err := strconv.Atoi(port)
	return err == nil && num > 0 && num < 65536
}

func isValidDomain(domain string) bool {
	if domain == "" || len(domain) > 253 {
		return false
	}

	labels := strings.Split(domain, ".")
	for _, label := range labels {
		if len(label) > 63 || !labelRegex.MatchString(label) {
			return false
		}
	}

	// an all-numeric last label is a malformed IPv4 address, not a name
	return !numericRegex.MatchString(labels[len(labels)-1])
}
