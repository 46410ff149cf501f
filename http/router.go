package http

import "slices"

// Router collects routes during startup. Handler freezes what was registered
// into a table that connection goroutines share without locking.
type Router struct {
	routes     []Route
	middleware []Middleware
}

func NewRouter() *Router {
	return &Router{
		routes: make([]Route, 0),
	}
}

func (router *Router) Get(prefix string, handler Handler, middleware ...Middleware) {
	router.Handle(MethodGet, prefix, handler, middleware...)
}

func (router *Router) Post(prefix string, handler Handler, middleware ...Middleware) {
	router.Handle(MethodPost, prefix, handler, middleware...)
}

func (router *Router) Put(prefix string, handler Handler, middleware ...Middleware) {
	router.Handle(MethodPut, prefix, handler, middleware...)
}

// Use adds middleware applied to every route registered after the call.
func (router *Router) Use(middleware ...Middleware) {
	router.middleware = append(router.middleware, middleware...)
}

func (router *Router) Handle(method Method, prefix string, handler Handler, middleware ...Middleware) {
	for _, m := range middleware {
		handler = m(handler)
	}
	for _, m := range router.middleware {
		handler = m(handler)
	}

	router.routes = append(router.routes, Route{
		Method:  method,
		Prefix:  prefix,
		Handler: Recover()(handler),
	})
}

// Group registers the routes added by groupFunc under prefix, so a route for
// "/{name}" inside Group("/files", ...) serves "/files/{name}".
func (router *Router) Group(prefix string, groupFunc func(group *Router), middleware ...Middleware) {
	group := NewRouter()
	groupFunc(group)

	for _, route := range group.routes {
		router.Handle(route.Method, prefix+route.Prefix, route.Handler, middleware...)
	}
}

// Routes returns the registrations in the order they were made.
func (router *Router) Routes() []Route {
	return slices.Clone(router.routes)
}

// Handler returns a dispatcher over the routes registered so far. The most
// specific (longest) matching prefix wins; among prefixes of equal length the
// first registered wins.
func (router *Router) Handler() Handler {
	return newRouteTable(router.routes).serve
}

// Route dispatches a single request against the current registrations.
func (router *Router) Route(req *Request) (*Response, error) {
	return newRouteTable(router.routes).serve(req)
}
