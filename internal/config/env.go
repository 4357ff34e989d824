// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. Struct fields are mapped via their `env` tags defined on
// [Settings] and its nested types; `envDefault` values are applied for
// absent variables.
//
// Returns an error wrapping [ErrImproperlyConfigured] if parsing fails (e.g.
// a value cannot be converted to the target type).
func parseEnv(cfg any) error {
	err := env.ParseWithOptions(cfg, env.Options{
		FuncMap: map[reflect.Type]env.ParserFunc{
			reflect.TypeOf(time.Duration(0)): parseDuration,
		},
	})
	if err != nil {
		return fmt.Errorf("%w: error getting env configs: %w", ErrImproperlyConfigured, err)
	}

	return nil
}

// parseDuration accepts Go duration strings ("1h30m") and bare numbers,
// which are read as seconds ("10" is ten seconds).
func parseDuration(v string) (any, error) {
	if seconds, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(seconds * float64(time.Second)), nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return nil, fmt.Errorf("invalid duration %q: %w", v, err)
	}
	return d, nil
}
