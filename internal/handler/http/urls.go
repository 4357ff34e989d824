// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// NewsSiteNamespace groups the routes of the news site for reversing by
// "news_site:<name>".
const NewsSiteNamespace = "news_site"

// Route binds a path pattern, relative to the namespace root, to a named
// handler. The empty pattern is the namespace root.
type Route struct {
	Pattern string
	Name    string
	Handler http.HandlerFunc
}

// RouteTable is an ordered list of routes under a namespace. Earlier routes
// take precedence when patterns overlap.
type RouteTable struct {
	Namespace string
	Routes    []Route
}

// newsSiteRoutes returns the routes of the news site.
func (h *Handler) newsSiteRoutes() RouteTable {
	return RouteTable{
		Namespace: NewsSiteNamespace,
		Routes: []Route{
			{Pattern: "", Name: "home", Handler: h.home},
		},
	}
}

// Reverse returns the URL path of the route named "<namespace>:<name>".
func (t RouteTable) Reverse(name string) (string, error) {
	namespace, routeName, ok := strings.Cut(name, ":")
	if !ok || namespace != t.Namespace {
		return "", fmt.Errorf("%w: %q", ErrNoReverseMatch, name)
	}

	for _, route := range t.Routes {
		if route.Name == routeName {
			return "/" + route.Pattern, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrNoReverseMatch, name)
}

// Resolve returns the first route whose pattern matches path.
func (t RouteTable) Resolve(path string) (Route, error) {
	pattern := strings.TrimPrefix(path, "/")
	for _, route := range t.Routes {
		if route.Pattern == pattern {
			return route, nil
		}
	}
	return Route{}, fmt.Errorf("%w: %q", ErrNoRouteMatch, path)
}

// Mount registers every route for GET and HEAD on r. Handlers can read the
// namespaced route name with [ResolverMatch].
func (t RouteTable) Mount(r chi.Router) {
	for _, route := range t.Routes {
		handler := withResolverMatch(t.Namespace+":"+route.Name, route.Handler)
		r.Get("/"+route.Pattern, handler)
		r.Head("/"+route.Pattern, handler)
	}
}

type resolverMatchKey struct{}

func withResolverMatch(name string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), resolverMatchKey{}, name)
		next(w, r.WithContext(ctx))
	}
}

// ResolverMatch returns the namespaced name of the route serving r, such
// as "news_site:home", or "" outside a mounted route.
func ResolverMatch(r *http.Request) string {
	name, _ := r.Context().Value(resolverMatchKey{}).(string)
	return name
}
