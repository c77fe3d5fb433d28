package server

import (
	"bufio"
	"fmt"
	"net"
	"net/netip"
	"strings"

	"github.com/f5xs-0000a/rusty-website/common"
)

// ParseRequest reads one HTTP request head from the connection and produces
// its descriptor. Parsing is deliberately tolerant: a malformed request line
// or an unrecognized Host header leaves the corresponding field absent
// rather than failing, since a 404 plus a log line is more useful than a
// dropped connection. Only a stream that dies before yielding a request
// line is an error.
func ParseRequest(conn net.Conn) (common.RequestInfo, error) {
	r := bufio.NewReader(conn)

	requestLine, err := r.ReadString('\n')
	if err != nil {
		return common.RequestInfo{}, fmt.Errorf("read request line: %w", err)
	}

	var info common.RequestInfo

	// "GET /path HTTP/1.1"; anything else leaves Path absent.
	if fields := strings.Fields(requestLine); len(fields) == 3 && strings.HasPrefix(fields[2], "HTTP/") {
		info.Path = fields[1]
	}

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			break
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}

		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)

		switch strings.ToLower(name) {
		case "host":
			info.Host = common.HostFor(value)
		case "user-agent":
			info.UserAgent = value
		case "referer":
			info.Referer = value
		case "x-forwarded-for":
			// First hop wins when the proxy appended a chain.
			first, _, _ := strings.Cut(value, ",")
			if ip, err := netip.ParseAddr(strings.TrimSpace(first)); err == nil {
				info.IP = ip.Unmap()
			}
		}
	}

	if !info.IP.IsValid() {
		info.IP = peerIP(conn)
	}
	return info, nil
}

// peerIP extracts the client address from the socket, for direct connections
// with no forwarding proxy. Returns the invalid Addr when the transport has
// no usable peer address.
func peerIP(conn net.Conn) netip.Addr {
	addrPort, err := netip.ParseAddrPort(conn.RemoteAddr().String())
	if err != nil {
		return netip.Addr{}
	}
	return addrPort.Addr().Unmap()
}
