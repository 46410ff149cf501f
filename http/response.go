package http

import (
	"bytes"
	"errors"
	"io"
	"strconv"

	"github.com/freekieb7/tinyhttp/codec"
)

// Response is a reply before encoding. Encodings is what the client accepts;
// it only selects the transformation applied at serialization time.
type Response struct {
	Version   string
	Status    Status
	Headers   Headers
	Body      []byte
	Encodings codec.Set
}

// ResponseError is the error side of a handler result: the request failed,
// but the failure still has a response to send.
type ResponseError struct {
	Response *Response
}

func (e *ResponseError) Error() string {
	return "http: " + e.Response.Status.String()
}

// AsResponseError wraps res so it can be returned as a handler error.
func AsResponseError(res *Response) error {
	return &ResponseError{Response: res}
}

// NewResponse builds a response. An Accept-Encoding entry in headers is
// consumed for negotiation and not sent back.
func NewResponse(status Status, body []byte, headers Headers) *Response {
	headers = headers.Clone()

	encodings := codec.Set{}
	if acceptEncoding, found := headers.Lookup(HeaderAcceptEncoding); found {
		encodings = codec.ParseAcceptEncoding(acceptEncoding)
		headers.Del(HeaderAcceptEncoding)
	}

	return &Response{
		Version:   DefaultProtocol,
		Status:    status,
		Headers:   headers,
		Body:      body,
		Encodings: encodings,
	}
}

// Respond builds a response negotiated against the request's Accept-Encoding.
func (req *Request) Respond(status Status, body []byte, headers Headers) *Response {
	headers = headers.Clone()
	if acceptEncoding, found := req.Headers.Lookup(HeaderAcceptEncoding); found {
		headers.Set(HeaderAcceptEncoding, acceptEncoding)
	}
	return NewResponse(status, body, headers)
}

// Text builds a plain text response that is never compressed.
func Text(status Status, body string) *Response {
	return NewResponse(status, []byte(body), Headers{HeaderContentType: TextPlain.String()})
}

func NotFound() *Response {
	return Text(StatusNotFound, "404 Not Found")
}

func BadRequest() *Response {
	return Text(StatusBadRequest, "400 Bad Request")
}

func InternalServerError() *Response {
	return Text(StatusInternalServerError, "500 Internal Server Error")
}

// Bytes serializes the response. The body is encoded first so Content-Length
// always describes the bytes that follow the header block.
func (res *Response) Bytes() ([]byte, error) {
	var buf bytes.Buffer

	version := res.Version
	if version == "" {
		version = DefaultProtocol
	}
	buf.WriteString(version)
	buf.WriteByte(' ')
	buf.WriteString(res.Status.String())
	buf.WriteString(crlf)

	headers := res.Headers.Clone()
	body := res.Body

	if res.Encodings.Has(codec.Gzip) {
		encoded, err := codec.Gzip.Encode(body)
		if err != nil {
			return nil, err
		}
		body = encoded
		token, _ := codec.Gzip.Token()
		headers.Set(HeaderContentEncoding, token)
	}

	headers.Set(HeaderContentLength, strconv.Itoa(len(body)))

	for _, name := range headers.Names() {
		buf.WriteString(string(name))
		buf.WriteString(headerSeparator)
		buf.WriteString(headers[name])
		buf.WriteString(crlf)
	}

	buf.WriteString(crlf)
	buf.Write(body)

	return buf.Bytes(), nil
}

func (res *Response) WriteTo(w io.Writer) (int64, error) {
	if res == nil {
		return 0, errors.New("http: nil response")
	}

	data, err := res.Bytes()
	if err != nil {
		return 0, err
	}

	n, err := w.Write(data)
	return int64(n), err
}
