package common

import (
	"errors"
	"strconv"
)

// ErrNotFound is the content-provider miss signal; the connection handler
// maps it to the shared 404 response.
var ErrNotFound = errors.New("file not found")

// Status lines written on the wire. These are full status-line fragments,
// not bare codes, because the framing concatenates them verbatim.
const (
	Status200 = "HTTP/1.1 200 OK"
	Status404 = "HTTP/1.1 404 NOT FOUND"
)

// Response is one content-provider result, consumed exactly once to frame
// bytes on the wire.
type Response struct {
	Status   string
	MimeType string
	Content  []byte
}

// Frame returns the complete wire image of the response: status line,
// Content-Length computed from the content byte length, Content-Type, a
// blank line, then the raw content. No other headers are written.
func (r Response) Frame() []byte {
	buf := make([]byte, 0, len(r.Status)+len(r.MimeType)+len(r.Content)+48)
	buf = append(buf, r.Status...)
	buf = append(buf, "\r\nContent-Length: "...)
	buf = strconv.AppendInt(buf, int64(len(r.Content)), 10)
	buf = append(buf, "\r\nContent-Type: "...)
	buf = append(buf, r.MimeType...)
	buf = append(buf, "\r\n\r\n"...)
	return append(buf, r.Content...)
}

var notFoundPage = []byte(`<!DOCTYPE html>
<html>
<head><title>404 Not Found</title></head>
<body><h1>404</h1><p>File Not Found</p></body>
</html>
`)

// NotFound returns the shared 404 response. Absent host, absent path,
// provider misses and provider errors all collapse to this.
func NotFound() Response {
	return Response{
		Status:   Status404,
		MimeType: "text/html",
		Content:  notFoundPage,
	}
}
