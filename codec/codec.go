package codec

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"strings"
	"sync"
)

type Encoding uint8

const (
	None Encoding = iota
	Gzip
)

var gzipWriterPool = sync.Pool{
	New: func() any {
		return gzip.NewWriter(nil)
	},
}

// ParseEncoding maps a content-coding token onto a known encoding.
// Unknown tokens are not an error, they simply select no transformation.
func ParseEncoding(token string) Encoding {
	if strings.EqualFold(strings.TrimSpace(token), "gzip") {
		return Gzip
	}
	return None
}

func (e Encoding) String() string {
	if e == Gzip {
		return "gzip"
	}
	return "identity"
}

// Token returns the value used in a Content-Encoding header.
func (e Encoding) Token() (string, bool) {
	if e == Gzip {
		return "gzip", true
	}
	return "", false
}

func (e Encoding) Encode(src []byte) ([]byte, error) {
	if e != Gzip {
		return src, nil
	}

	var buf bytes.Buffer
	gw := gzipWriterPool.Get().(*gzip.Writer)
	defer gzipWriterPool.Put(gw)
	gw.Reset(&buf)

	if _, err := gw.Write(src); err != nil {
		return nil, fmt.Errorf("codec: gzip encode: %w", err)
	}
	if err := gw.Close(); err != nil {
		return nil, fmt.Errorf("codec: gzip encode: %w", err)
	}

	return buf.Bytes(), nil
}

func (e Encoding) Decode(src []byte) ([]byte, error) {
	if e != Gzip {
		return src, nil
	}

	gr, err := gzip.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("codec: gzip decode: %w", err)
	}
	defer gr.Close()

	out, err := io.ReadAll(gr)
	if err != nil {
		return nil, fmt.Errorf("codec: gzip decode: %w", err)
	}
	if out == nil {
		out = []byte{}
	}

	return out, nil
}
