package http

import (
	"errors"
	"fmt"
	"maps"
	"net/textproto"
	"slices"
	"strings"
)

const (
	MaxRequestBodySize      = 2 * 1024 * 1024 // 2MB
	MaxRequestHeaders       = 255
	DefaultReadBufferSize   = 4096 // 4kB
	DefaultWriteBufferSize  = 4096 // 4kB
	DefaultProtocol         = "HTTP/1.1"
	crlf                    = "\r\n"
	headerSeparator         = ": "
	requestLineTokenCount   = 3
	requestLineTokenDivider = " "
)

var ErrUnsupportedMethod = errors.New("http: unsupported method")

type Method uint8

const (
	MethodGet Method = iota + 1
	MethodPost
	MethodPut
)

var methodNames = []string{
	MethodGet:  "GET",
	MethodPost: "POST",
	MethodPut:  "PUT",
}

// ParseMethod accepts the method token exactly as sent on the wire.
func ParseMethod(token string) (Method, error) {
	for method, name := range methodNames {
		if name != "" && name == token {
			return Method(method), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedMethod, token)
}

func (m Method) String() string {
	if int(m) < len(methodNames) && methodNames[m] != "" {
		return methodNames[m]
	}
	return "UNKNOWN"
}

// HeaderName is a canonicalized header field name. The names below are the
// ones the server core knows about; everything else is kept in its canonical
// MIME form.
type HeaderName string

const (
	HeaderAccept          HeaderName = "Accept"
	HeaderAcceptEncoding  HeaderName = "Accept-Encoding"
	HeaderConnection      HeaderName = "Connection"
	HeaderContentEncoding HeaderName = "Content-Encoding"
	HeaderContentLength   HeaderName = "Content-Length"
	HeaderContentType     HeaderName = "Content-Type"
	HeaderHost            HeaderName = "Host"
	HeaderUserAgent       HeaderName = "User-Agent"
)

var knownHeaders = map[string]HeaderName{
	"accept":           HeaderAccept,
	"accept-encoding":  HeaderAcceptEncoding,
	"connection":       HeaderConnection,
	"content-encoding": HeaderContentEncoding,
	"content-length":   HeaderContentLength,
	"content-type":     HeaderContentType,
	"host":             HeaderHost,
	"user-agent":       HeaderUserAgent,
}

func CanonicalHeaderName(name string) HeaderName {
	name = strings.TrimSpace(name)
	if known, ok := knownHeaders[strings.ToLower(name)]; ok {
		return known
	}
	return HeaderName(textproto.CanonicalMIMEHeaderKey(name))
}

func (name HeaderName) Known() bool {
	_, ok := knownHeaders[strings.ToLower(string(name))]
	return ok
}

// Headers holds one value per header name, the last write wins.
type Headers map[HeaderName]string

func (h Headers) Get(name HeaderName) string {
	return h[name]
}

func (h Headers) Lookup(name HeaderName) (string, bool) {
	v, ok := h[name]
	return v, ok
}

func (h Headers) Set(name HeaderName, value string) {
	h[name] = value
}

func (h Headers) Has(name HeaderName) bool {
	_, ok := h[name]
	return ok
}

func (h Headers) Del(name HeaderName) {
	delete(h, name)
}

func (h Headers) Clone() Headers {
	if h == nil {
		return Headers{}
	}
	return maps.Clone(h)
}

// Names returns the header names in lexicographic order.
func (h Headers) Names() []HeaderName {
	return slices.Sorted(maps.Keys(h))
}

type ContentType string

const (
	TextPlain              ContentType = "text/plain"
	ApplicationOctetStream ContentType = "application/octet-stream"
)

func (c ContentType) String() string {
	return string(c)
}
