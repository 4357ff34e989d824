// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides the password policy configured in the
// settings.
//
// Core concepts:
//   - Validator: generic interface to validate arbitrary values.
//     The variadic arguments carry context the rule compares against,
//     such as the user's name and email for password checks.
//   - PasswordValidator: a single named password rule with a help text.
//   - PasswordPolicy: the ordered set of rules built by name from
//     Settings.PasswordValidators.
//
// Usage patterns:
//  1. Build a policy once at startup with NewPasswordPolicy; an unknown
//     rule name is a configuration error.
//  2. Inject the policy into services as a Validator.
//  3. Call Validate with the password and the user's attributes.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
// Implementations may perform structural validation, semantic checks,
// cross-field rules.
type Validator interface {

	// Validate validates the provided input against optional
	// related values.
	Validate(context.Context, any, ...string) error
}

// PasswordValidator is a single password rule.
type PasswordValidator interface {
	// ValidatePassword returns nil when password satisfies the rule.
	// attributes are user attribute values such as the username or email.
	ValidatePassword(password string, attributes ...string) error

	// HelpText describes the rule to the end user.
	HelpText() string
}
