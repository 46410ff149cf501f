package http

import (
	"slices"
	"strings"
)

type Handler func(req *Request) (*Response, error)

type Route struct {
	Method  Method
	Prefix  string
	Handler Handler
}

// Matches applies the prefix rule: "/" only matches the root itself, any
// other prefix matches every path starting with it.
func (route Route) Matches(method Method, path string) bool {
	if route.Method != method {
		return false
	}
	if route.Prefix == "/" {
		return path == "/"
	}
	return strings.HasPrefix(path, route.Prefix)
}

var NotFoundHandler Handler = func(req *Request) (*Response, error) {
	return nil, AsResponseError(NotFound())
}

// routeTable is an immutable copy of the registered routes ordered by prefix
// length, longest first. The sort is stable so equal lengths keep their
// registration order.
type routeTable []Route

func newRouteTable(routes []Route) routeTable {
	table := slices.Clone(routes)
	slices.SortStableFunc(table, func(a, b Route) int {
		return len(b.Prefix) - len(a.Prefix)
	})
	return table
}

func (table routeTable) lookup(method Method, path string) (Route, bool) {
	for _, route := range table {
		if route.Matches(method, path) {
			return route, true
		}
	}
	return Route{}, false
}

func (table routeTable) serve(req *Request) (*Response, error) {
	route, found := table.lookup(req.Method, req.Target)
	if !found {
		return NotFoundHandler(req)
	}
	return route.Handler(req)
}
