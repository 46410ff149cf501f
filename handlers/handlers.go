// Package handlers contains the endpoints served by tinyhttp: the root
// probe, /echo, /user-agent and the /files store.
package handlers

import (
	"github.com/freekieb7/tinyhttp/filesystem"
	"github.com/freekieb7/tinyhttp/http"
)

const (
	EchoPrefix      = "/echo"
	UserAgentPrefix = "/user-agent"
	FilesPrefix     = "/files"

	noUserAgent = "No User-Agent found"
)

func textHeaders() http.Headers {
	return http.Headers{http.HeaderContentType: http.TextPlain.String()}
}

// Register adds every endpoint to router. The /files routes are only added
// when fs is set.
func Register(router *http.Router, fs filesystem.Filesystem) {
	router.Get("/", Root)
	router.Get(EchoPrefix, Echo)
	router.Get(UserAgentPrefix, UserAgent)

	if fs != nil {
		files := &Files{FS: fs}
		router.Group(FilesPrefix, func(group *http.Router) {
			group.Get("", files.Get)
			group.Post("", files.Create)
			group.Put("", files.Create)
		})
	}
}

func Root(req *http.Request) (*http.Response, error) {
	return req.Respond(http.StatusOK, nil, textHeaders()), nil
}

// Echo answers /echo/{text} with {text}. Anything not separated from the
// prefix by a slash echoes nothing.
func Echo(req *http.Request) (*http.Response, error) {
	text, _ := req.TrimPrefix(EchoPrefix)
	return req.Respond(http.StatusOK, []byte(text), textHeaders()), nil
}

func UserAgent(req *http.Request) (*http.Response, error) {
	userAgent, found := req.Headers.Lookup(http.HeaderUserAgent)
	if !found {
		userAgent = noUserAgent
	}
	return req.Respond(http.StatusOK, []byte(userAgent), textHeaders()), nil
}
