package codec

import "strings"

// Set holds the encodings a client declared it accepts.
type Set map[Encoding]struct{}

// ParseAcceptEncoding reads an Accept-Encoding value such as "gzip, br;q=0.5".
// Quality parameters are dropped; every listed token counts as accepted.
func ParseAcceptEncoding(value string) Set {
	set := Set{}
	if strings.TrimSpace(value) == "" {
		return set
	}

	for _, token := range strings.Split(value, ",") {
		token, _, _ = strings.Cut(token, ";")
		set.Add(ParseEncoding(token))
	}

	return set
}

func (s Set) Add(e Encoding) {
	s[e] = struct{}{}
}

func (s Set) Has(e Encoding) bool {
	_, ok := s[e]
	return ok
}
