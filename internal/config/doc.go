// Package config provides configuration loading, merging, and validation
// facilities for the news-site application.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. Local .env file (never overrides the process environment)
//  3. Environment variables
//  4. Command-line flags
//  5. JSON config file
//
// The entry point is [Load]. The returned [Settings] is built once in main
// and passed to the components that need it; nothing in this package keeps
// global state.
package config
