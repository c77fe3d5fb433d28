package server

import (
	"fmt"
	"net"
	"time"

	"github.com/f5xs-0000a/rusty-website/accesslog"
	"github.com/f5xs-0000a/rusty-website/common"
)

// handleConnection drives one accepted connection: parse the request,
// dispatch to a content provider, frame and write the response, submit
// exactly one log event. Errors end this connection only; the scheduler
// reports them and keeps accepting. A client that connects and never sends
// a full request parks this goroutine indefinitely; there is no read
// timeout, a known limitation.
func (s *Server) handleConnection(conn net.Conn) error {
	defer conn.Close()

	cxnTime := time.Now()

	info, err := ParseRequest(conn)
	if err != nil {
		return fmt.Errorf("parse request: %w", err)
	}

	resp := s.respond(info)

	if _, err := conn.Write(resp.Frame()); err != nil {
		return fmt.Errorf("write response: %w", err)
	}

	err = s.queue.Send(accesslog.Event{
		Path:      info.Path,
		Host:      info.Host,
		UserAgent: info.UserAgent,
		IP:        info.IP,
		Referer:   info.Referer,
		Status:    accesslog.NormalizeStatus(resp.Status),
		Length:    len(resp.Content),
		CxnTime:   cxnTime,
		StartTime: s.startTime,
	})
	if err != nil {
		return fmt.Errorf("submit log event: %w", err)
	}
	return nil
}

// respond selects the content provider by resolved host. The two hosts are
// a closed set, so this is an explicit switch rather than any registration
// mechanism. Absent host, absent path, and provider misses all collapse to
// the shared 404.
func (s *Server) respond(info common.RequestInfo) common.Response {
	if info.Host == common.HostNone || info.Path == "" {
		return common.NotFound()
	}

	var (
		resp common.Response
		err  error
	)
	switch info.Host {
	case common.HostMycology:
		resp, err = s.mycology.Get(info.Path)
	case common.HostSite:
		resp, err = s.site.Get(info.Path)
	}
	if err != nil {
		return common.NotFound()
	}
	return resp
}
