package accesslog

import (
	"fmt"
	"net/netip"
	"strings"
	"time"
)

// Placeholders rendered for absent values. Log lines never contain empty
// fields.
const (
	noneValue = "None"
	noIPValue = "No IP"
)

func orNone(s string) string {
	if s == "" {
		return noneValue
	}
	return s
}

// FormatIP renders a client address, using the "No IP" placeholder for the
// invalid zero Addr.
func FormatIP(ip netip.Addr) string {
	if !ip.IsValid() {
		return noIPValue
	}
	return ip.String()
}

// FormatTimestamp renders an instant as UTC date and time joined by " ~ ",
// with millisecond precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 ~ 15:04:05.000")
}

// FormatElapsed renders a duration bucketed at 1000x breakpoints:
// below 1000μs as μs, below 1000000μs as ms, everything above as whole
// seconds. Integer division, strict less-than at the boundaries.
func FormatElapsed(d time.Duration) string {
	us := d.Microseconds()
	if us < 0 {
		us = 0
	}
	switch {
	case us < 1_000:
		return fmt.Sprintf("%dμs", us)
	case us < 1_000_000:
		return fmt.Sprintf("%dms", us/1_000)
	default:
		return fmt.Sprintf("%ds", us/1_000_000)
	}
}

// FormatUptime renders a duration as its non-zero weeks/days/hours/mins/secs
// components, space-joined, in that fixed descending order. Zero components
// are omitted entirely, so exactly one week renders as "1 weeks".
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := uint64(d / time.Second)
	parts := [...]struct {
		unit  string
		value uint64
	}{
		{"weeks", secs / 604800},
		{"days", secs / 86400 % 7},
		{"hours", secs / 3600 % 24},
		{"mins", secs / 60 % 60},
		{"secs", secs % 60},
	}

	var b strings.Builder
	for _, p := range parts {
		if p.value == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d %s", p.value, p.unit)
	}
	return b.String()
}

// NormalizeStatus strips the HTTP-version token from a status line and
// rejoins the remaining tokens with single spaces, so "HTTP/1.1 200 OK"
// logs as "200 OK". Purely cosmetic; the wire status line is untouched.
func NormalizeStatus(status string) string {
	fields := strings.Fields(status)
	kept := fields[:0]
	for _, f := range fields {
		if strings.Contains(f, "HTTP") {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}
