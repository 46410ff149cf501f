package http

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func named(name string) Handler {
	return func(req *Request) (*Response, error) {
		return Text(StatusOK, name), nil
	}
}

func routeBody(t *testing.T, router *Router, method Method, target string) (string, Status) {
	t.Helper()

	res, err := router.Route(&Request{Method: method, Target: target, Headers: Headers{}})
	if err != nil {
		var responseErr *ResponseError
		require.ErrorAs(t, err, &responseErr)
		res = responseErr.Response
	}
	return string(res.Body), res.Status
}

func TestRouterLongestPrefixWins(t *testing.T) {
	router := NewRouter()
	router.Get("/", named("root"))
	router.Get("/echo", named("echo"))
	router.Get("/echo/extra", named("extra"))

	body, _ := routeBody(t, router, MethodGet, "/echo/extra/foo")
	assert.Equal(t, "extra", body)

	body, _ = routeBody(t, router, MethodGet, "/echo/foo")
	assert.Equal(t, "echo", body)

	body, _ = routeBody(t, router, MethodGet, "/")
	assert.Equal(t, "root", body)
}

func TestRouterRegistrationOrderDoesNotMatter(t *testing.T) {
	router := NewRouter()
	router.Get("/echo/extra", named("extra"))
	router.Get("/echo", named("echo"))

	body, _ := routeBody(t, router, MethodGet, "/echo/extra/foo")
	assert.Equal(t, "extra", body)
}

func TestRouterEqualLengthFirstRegisteredWins(t *testing.T) {
	router := NewRouter()
	router.Get("/ab", named("first"))
	router.Get("/ab", named("second"))

	body, _ := routeBody(t, router, MethodGet, "/abc")
	assert.Equal(t, "first", body)
}

func TestRouterRootMatchesOnlyRoot(t *testing.T) {
	router := NewRouter()
	router.Get("/", named("root"))

	body, status := routeBody(t, router, MethodGet, "/nope")
	assert.Equal(t, StatusNotFound, status)
	assert.Equal(t, "404 Not Found", body)
}

func TestRouterMethodSensitive(t *testing.T) {
	router := NewRouter()
	router.Get("/files", named("get"))

	_, status := routeBody(t, router, MethodPost, "/files/a")
	assert.Equal(t, StatusNotFound, status)

	router.Post("/files", named("post"))
	body, status := routeBody(t, router, MethodPost, "/files/a")
	assert.Equal(t, StatusOK, status)
	assert.Equal(t, "post", body)
}

func TestRouterNotFound(t *testing.T) {
	router := NewRouter()

	res, err := router.Route(&Request{Method: MethodGet, Target: "/nope"})
	assert.Nil(t, res)

	var responseErr *ResponseError
	require.ErrorAs(t, err, &responseErr)
	assert.Equal(t, StatusNotFound, responseErr.Response.Status)
	assert.Equal(t, "Not Found", responseErr.Response.Status.Reason())
	assert.Equal(t, "404 Not Found", string(responseErr.Response.Body))
}

func TestRouterPropagatesHandlerError(t *testing.T) {
	router := NewRouter()
	router.Get("/broken", func(req *Request) (*Response, error) {
		return nil, AsResponseError(InternalServerError())
	})

	_, status := routeBody(t, router, MethodGet, "/broken")
	assert.Equal(t, StatusInternalServerError, status)
}

func TestRouterRecoversPanics(t *testing.T) {
	router := NewRouter()
	router.Get("/panic", func(req *Request) (*Response, error) {
		panic("boom")
	})

	_, status := routeBody(t, router, MethodGet, "/panic")
	assert.Equal(t, StatusInternalServerError, status)
}

func TestRouterMiddleware(t *testing.T) {
	var calls []string
	trace := func(name string) Middleware {
		return func(next Handler) Handler {
			return func(req *Request) (*Response, error) {
				calls = append(calls, name)
				return next(req)
			}
		}
	}

	router := NewRouter()
	router.Use(trace("router"))
	router.Get("/", named("root"), trace("route"))

	_, status := routeBody(t, router, MethodGet, "/")
	assert.Equal(t, StatusOK, status)
	assert.Equal(t, []string{"router", "route"}, calls)
}

func TestRouterGroup(t *testing.T) {
	var calls []string
	tag := func(name string) Middleware {
		return func(next Handler) Handler {
			return func(req *Request) (*Response, error) {
				calls = append(calls, name)
				return next(req)
			}
		}
	}

	router := NewRouter()
	router.Get("/api", named("api"))
	router.Group("/api", func(group *Router) {
		group.Get("/users", named("users"))
		group.Post("/users", named("create"))
	}, tag("group"))

	body, _ := routeBody(t, router, MethodGet, "/api/users/1")
	assert.Equal(t, "users", body)
	assert.Equal(t, []string{"group"}, calls)

	body, _ = routeBody(t, router, MethodPost, "/api/users")
	assert.Equal(t, "create", body)

	body, _ = routeBody(t, router, MethodGet, "/api/other")
	assert.Equal(t, "api", body)
	assert.Len(t, calls, 2)

	routes := router.Routes()
	require.Len(t, routes, 3)
	assert.Equal(t, "/api/users", routes[1].Prefix)
	assert.Equal(t, MethodPost, routes[2].Method)
}

func TestRouterHandlerIsFrozen(t *testing.T) {
	router := NewRouter()
	router.Get("/a", named("a"))

	handler := router.Handler()
	router.Get("/b", named("b"))

	_, err := handler(&Request{Method: MethodGet, Target: "/b"})
	assert.True(t, errors.As(err, new(*ResponseError)))

	res, err := handler(&Request{Method: MethodGet, Target: "/a"})
	require.NoError(t, err)
	assert.Equal(t, "a", string(res.Body))
}

func TestRouterRoutes(t *testing.T) {
	router := NewRouter()
	router.Get("/", named("root"))
	router.Post("/files", named("files"))
	router.Put("/files", named("files"))

	routes := router.Routes()
	require.Len(t, routes, 3)
	assert.Equal(t, MethodGet, routes[0].Method)
	assert.Equal(t, "/files", routes[1].Prefix)
	assert.Equal(t, MethodPut, routes[2].Method)
}
