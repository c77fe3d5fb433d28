package accesslog

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		name     string
		d        time.Duration
		expected string
	}{
		{"zero", 0, "0μs"},
		{"microseconds", 500 * time.Microsecond, "500μs"},
		{"just below ms bucket", 999 * time.Microsecond, "999μs"},
		{"ms bucket lower bound", 1000 * time.Microsecond, "1ms"},
		{"milliseconds", 250 * time.Millisecond, "250ms"},
		{"just below s bucket", 999999 * time.Microsecond, "999ms"},
		{"s bucket lower bound", 1000000 * time.Microsecond, "1s"},
		{"seconds", 3 * time.Second, "3s"},
		{"truncates, never rounds", 2500 * time.Millisecond, "2s"},
		{"negative clamps to zero", -time.Second, "0μs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatElapsed(tt.d))
		})
	}
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		name     string
		d        time.Duration
		expected string
	}{
		{"all components, zero weeks omitted", 90061 * time.Second, "1 days 1 hours 1 mins 1 secs"},
		{"seconds only", 59 * time.Second, "59 secs"},
		{"exactly one week", 604800 * time.Second, "1 weeks"},
		{"one minute, zero seconds omitted", 60 * time.Second, "1 mins"},
		{"everything", (2*604800 + 3*86400 + 4*3600 + 5*60 + 6) * time.Second, "2 weeks 3 days 4 hours 5 mins 6 secs"},
		{"zero renders empty", 0, ""},
		{"sub-second renders empty", 900 * time.Millisecond, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatUptime(tt.d))
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2026, 8, 30, 12, 34, 56, 789_000_000, time.UTC)
	assert.Equal(t, "2026-08-30 ~ 12:34:56.789", FormatTimestamp(ts))

	// Non-UTC instants render in UTC.
	est := time.FixedZone("EST", -5*3600)
	assert.Equal(t, "2026-08-30 ~ 12:34:56.789", FormatTimestamp(ts.In(est)))
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		expected string
	}{
		{"200", "HTTP/1.1 200 OK", "200 OK"},
		{"404", "HTTP/1.1 404 NOT FOUND", "404 NOT FOUND"},
		{"no version token", "200 OK", "200 OK"},
		{"extra whitespace collapses", "HTTP/1.1  200   OK", "200 OK"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeStatus(tt.status))
		})
	}
}

func TestFormatIP(t *testing.T) {
	assert.Equal(t, "1.2.3.4", FormatIP(netip.MustParseAddr("1.2.3.4")))
	assert.Equal(t, "No IP", FormatIP(netip.Addr{}))
}

func TestOrNone(t *testing.T) {
	assert.Equal(t, "/path", orNone("/path"))
	assert.Equal(t, "None", orNone(""))
}
