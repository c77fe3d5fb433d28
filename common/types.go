package common

import (
	"net/netip"
	"strings"
)

// Host identifies which virtual domain an accepted request was addressed to.
// The server answers for exactly two domains; everything else resolves to
// HostNone and gets a 404.
type Host int

const (
	// HostNone means the Host header was missing or named a domain the
	// server does not answer for.
	HostNone Host = iota
	// HostMycology is the mycology subdomain.
	HostMycology
	// HostSite is the plain website domain.
	HostSite
)

// Domains the server answers for. The listener binds loopback, so the
// defaults are the loopback names; a reverse proxy in front rewrites real
// domains onto these.
const (
	DomainMycology = "mycology.localhost"
	DomainSite     = "localhost"
)

// HostFor maps a Host header value to a Host variant. A trailing :port is
// ignored. Unknown domains map to HostNone, which is a valid state (the
// request will be answered with a 404), not an error.
func HostFor(header string) Host {
	domain, _, _ := strings.Cut(header, ":")
	switch domain {
	case DomainMycology:
		return HostMycology
	case DomainSite, "www." + DomainSite:
		return HostSite
	default:
		return HostNone
	}
}

// String returns the domain name for log rendering. HostNone renders as the
// literal placeholder "None".
func (h Host) String() string {
	switch h {
	case HostMycology:
		return DomainMycology
	case HostSite:
		return DomainSite
	default:
		return "None"
	}
}

// RequestInfo is the request descriptor produced once per connection by the
// parser and immutable afterwards. Zero values mean the field was absent
// from the request: empty string for Path/UserAgent/Referer, the invalid
// netip.Addr for IP. Absent Host or Path is an expected state for malformed
// or unsupported requests, not an error.
type RequestInfo struct {
	Host      Host
	Path      string
	UserAgent string
	IP        netip.Addr
	Referer   string
}
