package http

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

var (
	ErrMalformedRequestLine = errors.New("http: malformed request line")
	ErrTooManyHeaders       = errors.New("http: too many request headers")
	ErrBodyTooLarge         = errors.New("http: request body too large")
	ErrIncompleteBody       = errors.New("http: request body shorter than content-length")
)

// Request is one parsed client message. Target is kept exactly as sent;
// handlers derive whatever they need from it without rewriting it.
type Request struct {
	Method  Method
	Target  string
	Version string
	Headers Headers

	// Body is nil when the request carried no usable payload.
	Body []byte
}

// ReadRequest consumes one request from br: the request line, the header
// block and, when Content-Length asks for it, exactly that many body bytes.
// Nothing past the declared body is read.
//
// Header lines without a colon are dropped and a body that is not valid
// UTF-8 is treated as absent. A connection that closes before sending
// anything yields io.EOF.
func ReadRequest(br *bufio.Reader) (*Request, error) {
	requestLine, err := br.ReadString('\n')
	if err != nil && (err != io.EOF || requestLine == "") {
		return nil, err
	}

	parts := strings.Split(trimLineEnding(requestLine), requestLineTokenDivider)
	if len(parts) != requestLineTokenCount {
		return nil, fmt.Errorf("%w: %q", ErrMalformedRequestLine, trimLineEnding(requestLine))
	}

	method, err := ParseMethod(parts[0])
	if err != nil {
		return nil, err
	}

	req := Request{
		Method:  method,
		Target:  parts[1],
		Version: parts[2],
		Headers: Headers{},
	}

	if err := req.readHeaders(br); err != nil {
		return nil, err
	}

	if err := req.readBody(br); err != nil {
		return nil, err
	}

	return &req, nil
}

func (req *Request) readHeaders(br *bufio.Reader) error {
	for count := 0; ; count++ {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("http: reading headers: %w", err)
		}

		line = trimLineEnding(line)
		if line == "" {
			return nil
		}

		if count >= MaxRequestHeaders {
			return ErrTooManyHeaders
		}

		if name, value, ok := strings.Cut(line, ":"); ok {
			if name = strings.TrimSpace(name); name != "" {
				req.Headers.Set(CanonicalHeaderName(name), strings.TrimSpace(value))
			}
		}

		// a stream ending inside the header block ends the block
		if err == io.EOF {
			return nil
		}
	}
}

func (req *Request) readBody(br *bufio.Reader) error {
	value, found := req.Headers.Lookup(HeaderContentLength)
	if !found {
		return nil
	}

	n, err := atoi(value)
	if err != nil || n == 0 {
		return nil
	}
	if n > MaxRequestBodySize {
		return fmt.Errorf("%w: %d bytes", ErrBodyTooLarge, n)
	}

	body := make([]byte, n)
	if _, err := io.ReadFull(br, body); err != nil {
		return fmt.Errorf("%w: %w", ErrIncompleteBody, err)
	}

	if utf8.Valid(body) {
		req.Body = body
	}

	return nil
}

func (req *Request) HasBody() bool {
	return req.Body != nil
}

// TrimPrefix returns the part of the target after prefix and its separating
// slash, so "/echo/abc" with prefix "/echo" yields "abc". It reports false
// when the target does not continue with a slash, as in "/echoabc".
func (req *Request) TrimPrefix(prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(req.Target, prefix)
	if !ok {
		return "", false
	}
	if rest == "" {
		return "", true
	}
	rest, ok = strings.CutPrefix(rest, "/")
	if !ok {
		return "", false
	}
	return rest, true
}

// IsBadRequest reports whether err came from a request the client got wrong,
// as opposed to a transport failure.
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrMalformedRequestLine) ||
		errors.Is(err, ErrUnsupportedMethod) ||
		errors.Is(err, ErrTooManyHeaders) ||
		errors.Is(err, ErrBodyTooLarge) ||
		errors.Is(err, ErrIncompleteBody)
}
