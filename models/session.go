// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Session is a server-side session bound to a browser through a signed
// cookie.
type Session struct {
	// Key is the random session identifier stored in the cookie.
	Key string `json:"session_key"`

	// Data holds the values stored for the visitor. It is persisted as JSON,
	// so values come back as the types encoding/json decodes into.
	Data map[string]any `json:"session_data"`

	// ExpireDate is the moment after which the session is ignored and
	// eventually deleted by the cleanup worker.
	ExpireDate time.Time `json:"expire_date"`
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpireDate)
}
