package http

import (
	"errors"
	"math"
	"strings"
)

var errInvalidNumber = errors.New("invalid number")

// atoi parses an unsigned decimal without sign or whitespace tolerance.
func atoi(s string) (int, error) {
	if s == "" {
		return 0, errInvalidNumber
	}

	var n int
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, errInvalidNumber
		}
		if n > (math.MaxInt-int(c-'0'))/10 {
			return 0, errInvalidNumber
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}

// trimLineEnding strips the trailing "\r\n" (or a bare "\n") of a line.
func trimLineEnding(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
