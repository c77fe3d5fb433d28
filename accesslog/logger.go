package accesslog

import (
	"fmt"
	"io"
	"net/netip"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// Logger is the single consumer of the log-event queue. It owns the only
// writable handle the pipeline has to the access-log file, which is what
// keeps record writes from interleaving; no other component may write
// through it. Running state (previous client IP, counters) is consumer-local
// and mutated only in event order.
type Logger struct {
	queue *Queue
	path  string
	// stdout mirrors every record; os.Stdout in production.
	stdout io.Writer

	prevIP      netip.Addr
	totalConns  uint64
	uniqueConns uint64
}

// NewLogger returns a consumer for queue that will persist records to the
// file at path and mirror them to stdout, normally os.Stdout.
func NewLogger(queue *Queue, path string, stdout io.Writer) *Logger {
	return &Logger{queue: queue, path: path, stdout: stdout}
}

// Run consumes events until the queue closes, which cannot happen while the
// server holds the send side, so in practice it runs for the life of the
// process. If the access-log file cannot be opened the consumer keeps
// draining so that producers are unaffected: every record still reaches
// stdout and the counters stay correct, and each skipped persistence gets
// one diagnostic. Write failures are reported and the next event is still
// processed.
func (l *Logger) Run() {
	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Error().Err(err).Str("path", l.path).Msg("cannot open access log")
		file = nil
	} else {
		defer file.Close()
	}

	for {
		ev, ok := l.queue.Recv()
		if !ok {
			return
		}

		record := l.record(ev, time.Now())

		if file == nil {
			log.Warn().Str("path", l.path).Msg("access log unavailable, record not persisted")
		} else if _, err := file.WriteString(record); err != nil {
			log.Error().Err(err).Str("path", l.path).Msg("error writing to access log")
		}

		if _, err := io.WriteString(l.stdout, record); err != nil {
			log.Error().Err(err).Msg("error mirroring record to stdout")
		}
	}
}

// record advances the running counters for one event and renders it. The
// compact shape is used when the event's client IP equals the previous
// processed event's IP, with absent IPs comparing equal to each other; any
// change of client promotes the record to the verbose shape and counts one
// more unique connection. "Unique" is continuity against the immediately
// preceding processed event only, not set membership, so queue-order races
// between handlers can split one client into several unique counts.
func (l *Logger) record(ev Event, now time.Time) string {
	l.totalConns++

	var s string
	if ev.IP == l.prevIP {
		s = compactRecord(ev, now, l.totalConns)
	} else {
		l.uniqueConns++
		s = verboseRecord(ev, now, l.totalConns, l.uniqueConns)
	}
	l.prevIP = ev.IP
	return s
}

// compactRecord renders the one-line shape used for repeat clients.
func compactRecord(ev Event, now time.Time, total uint64) string {
	return fmt.Sprintf("#%d - %s - %s - %s - %db - %s - %s\n",
		total,
		FormatIP(ev.IP),
		FormatTimestamp(ev.CxnTime),
		ev.Status,
		ev.Length,
		FormatElapsed(now.Sub(ev.CxnTime)),
		orNone(ev.Path),
	)
}

// verboseRecord renders the multi-field shape used whenever the client
// changed, carrying the full request and response descriptions plus the
// running counters and process uptime.
func verboseRecord(ev Event, now time.Time, total, unique uint64) string {
	return fmt.Sprintf("START\n"+
		"Timestamp: %s\n"+
		"# Unique: %d\n"+
		"# Total: %d\n"+
		"Up-time: %s\n"+
		"Request:\n"+
		"\tPath: %s\n"+
		"\tHost: %s\n"+
		"\tIp: %s\n"+
		"\tReferer: %s\n"+
		"\tAgent: %s\n"+
		"Response:\n"+
		"\tStatus: %s\n"+
		"\tLength: %d bytes\n"+
		"\tTurnaround: %s\n",
		FormatTimestamp(ev.CxnTime),
		unique,
		total,
		FormatUptime(now.Sub(ev.StartTime)),
		orNone(ev.Path),
		ev.Host,
		FormatIP(ev.IP),
		orNone(ev.Referer),
		orNone(ev.UserAgent),
		ev.Status,
		ev.Length,
		FormatElapsed(now.Sub(ev.CxnTime)),
	)
}
