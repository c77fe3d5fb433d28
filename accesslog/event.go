package accesslog

import (
	"net/netip"
	"time"

	"github.com/f5xs-0000a/rusty-website/common"
)

// Event describes one completed request/response exchange. The connection
// handler creates it after writing the response; ownership transfers to the
// logging consumer through a Queue and the consumer formats and discards it
// exactly once.
type Event struct {
	Path      string
	Host      common.Host
	UserAgent string
	IP        netip.Addr
	Referer   string
	Status    string
	Length    int
	// CxnTime is when the connection was accepted; the turnaround figure
	// is measured from here to formatting time, not to response write.
	CxnTime time.Time
	// StartTime is process start, carried on every event so the consumer
	// can render uptime without reaching into shared state.
	StartTime time.Time
}
