// Package http implements the HTTP transport layer of the news site.
//
// It builds the router from the settings: the named middleware chain, the
// news_site route table and its templates, plus the operational /version
// and /metrics endpoints. Request tracing, access logging, panic recovery
// and response compression wrap every request before it reaches a view.
package http
