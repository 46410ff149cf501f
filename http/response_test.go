package http

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/freekieb7/tinyhttp/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// splitResponse separates the head of a serialized response from its body.
func splitResponse(t *testing.T, raw []byte) (statusLine string, headers map[string]string, body []byte) {
	t.Helper()

	head, body, found := bytes.Cut(raw, []byte("\r\n\r\n"))
	require.True(t, found, "no blank line in %q", raw)

	lines := strings.Split(string(head), "\r\n")
	headers = make(map[string]string)
	for _, line := range lines[1:] {
		name, value, ok := strings.Cut(line, ": ")
		require.True(t, ok, "bad header line %q", line)
		headers[name] = value
	}

	return lines[0], headers, body
}

func TestResponseWrite_Basic(t *testing.T) {
	res := NewResponse(StatusOK, []byte("hello, world!"), Headers{HeaderContentType: "text/plain"})

	raw, err := res.Bytes()
	require.NoError(t, err)

	want := "HTTP/1.1 200 OK\r\n" +
		"Content-Length: 13\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"hello, world!"
	assert.Equal(t, want, string(raw))
}

func TestResponseWrite_Gzip(t *testing.T) {
	res := NewResponse(StatusOK, []byte("hi"), Headers{HeaderAcceptEncoding: "gzip"})

	raw, err := res.Bytes()
	require.NoError(t, err)

	statusLine, headers, body := splitResponse(t, raw)
	assert.Equal(t, "HTTP/1.1 200 OK", statusLine)
	assert.Equal(t, "gzip", headers["Content-Encoding"])
	assert.Equal(t, strconv.Itoa(len(body)), headers["Content-Length"])
	assert.NotContains(t, headers, "Accept-Encoding")

	encoded, err := codec.Gzip.Encode([]byte("hi"))
	require.NoError(t, err)
	assert.Len(t, body, len(encoded))

	decoded, err := codec.Gzip.Decode(body)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(decoded))
}

func TestResponseWrite_UnknownEncodingIsIdentity(t *testing.T) {
	res := NewResponse(StatusOK, []byte("abc"), Headers{HeaderAcceptEncoding: "invalid-encoding"})

	raw, err := res.Bytes()
	require.NoError(t, err)

	_, headers, body := splitResponse(t, raw)
	assert.NotContains(t, headers, "Content-Encoding")
	assert.Equal(t, "3", headers["Content-Length"])
	assert.Equal(t, "abc", string(body))
}

func TestResponseWrite_ContentLengthIsRecomputed(t *testing.T) {
	res := NewResponse(StatusOK, []byte("four"), Headers{HeaderContentLength: "9000"})

	raw, err := res.Bytes()
	require.NoError(t, err)

	_, headers, _ := splitResponse(t, raw)
	assert.Equal(t, "4", headers["Content-Length"])
}

func TestResponseWrite_EmptyBody(t *testing.T) {
	res := NewResponse(StatusCreated, nil, nil)

	raw, err := res.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 201 Created\r\nContent-Length: 0\r\n\r\n", string(raw))
}

func TestResponseWrite_HeadersSorted(t *testing.T) {
	res := NewResponse(StatusOK, nil, Headers{"X-Test": "foo", "X-Other": "bar", HeaderContentType: "text/plain"})

	raw, err := res.Bytes()
	require.NoError(t, err)

	want := "HTTP/1.1 200 OK\r\n" +
		"Content-Length: 0\r\n" +
		"Content-Type: text/plain\r\n" +
		"X-Other: bar\r\n" +
		"X-Test: foo\r\n" +
		"\r\n"
	assert.Equal(t, want, string(raw))
}

func TestResponseWrite_Repeatable(t *testing.T) {
	res := NewResponse(StatusOK, []byte("again"), Headers{HeaderAcceptEncoding: "gzip"})

	first, err := res.Bytes()
	require.NoError(t, err)
	second, err := res.Bytes()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "again", string(res.Body))
	assert.NotContains(t, res.Headers, HeaderContentLength)
}

func TestResponseWriteTo(t *testing.T) {
	res := NotFound()

	buf := &bytes.Buffer{}
	bw := bufio.NewWriter(buf)

	n, err := res.WriteTo(bw)
	require.NoError(t, err)
	require.NoError(t, bw.Flush())

	assert.Equal(t, int64(buf.Len()), n)
	statusLine, headers, body := splitResponse(t, buf.Bytes())
	assert.Equal(t, "HTTP/1.1 404 Not Found", statusLine)
	assert.Equal(t, "text/plain", headers["Content-Type"])
	assert.Equal(t, "404 Not Found", string(body))
}

func TestRequestRespondNegotiates(t *testing.T) {
	req := &Request{
		Method:  MethodGet,
		Target:  "/echo/abc",
		Headers: Headers{HeaderAcceptEncoding: "deflate, gzip", HeaderUserAgent: "curl"},
	}

	res := req.Respond(StatusOK, []byte("abc"), Headers{HeaderContentType: TextPlain.String()})
	assert.True(t, res.Encodings.Has(codec.Gzip))
	assert.NotContains(t, res.Headers, HeaderAcceptEncoding)
	assert.NotContains(t, res.Headers, HeaderUserAgent)

	plain := (&Request{Headers: Headers{}}).Respond(StatusOK, []byte("abc"), nil)
	assert.False(t, plain.Encodings.Has(codec.Gzip))
}

func TestStatusReason(t *testing.T) {
	testCases := map[Status]string{
		StatusOK:                  "OK",
		StatusCreated:             "Created",
		StatusBadRequest:          "Bad Request",
		StatusNotFound:            "Not Found",
		StatusInternalServerError: "Internal Server Error",
	}

	for status, reason := range testCases {
		assert.Equal(t, reason, status.Reason())
		assert.True(t, status.Valid())
	}

	assert.False(t, Status(418).Valid())
	assert.Equal(t, "404 Not Found", StatusNotFound.String())
}

func BenchmarkResponseWrite(b *testing.B) {
	res := NewResponse(StatusOK, []byte("benchmarking response write"), Headers{
		HeaderContentType: "text/plain",
		"X-Bench":         "1",
	})

	buf := &bytes.Buffer{}
	bw := bufio.NewWriter(buf)

	for b.Loop() {
		buf.Reset()
		bw.Reset(buf)
		if _, err := res.WriteTo(bw); err != nil {
			b.Fatal(err)
		}
	}
}
