// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"bufio"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/news-site/internal/config"
)

const (
	DefaultMaxSimilarity = 0.7
	DefaultMinLength     = 8
)

//go:embed common_passwords.txt
var commonPasswordsList string

// PasswordPolicy runs every configured rule and reports all failures.
type PasswordPolicy struct {
	validators []PasswordValidator
}

// NewPasswordPolicy builds the policy from rule names in order.
// Returns ErrUnknownValidator for a name it does not recognize.
func NewPasswordPolicy(names []string) (*PasswordPolicy, error) {
	policy := &PasswordPolicy{validators: make([]PasswordValidator, 0, len(names))}
	for _, name := range names {
		v, err := passwordValidatorByName(name)
		if err != nil {
			return nil, err
		}
		policy.validators = append(policy.validators, v)
	}
	return policy, nil
}

func passwordValidatorByName(name string) (PasswordValidator, error) {
	switch name {
	case config.ValidatorUserAttributeSimilarity:
		return NewUserAttributeSimilarityValidator(DefaultMaxSimilarity), nil
	case config.ValidatorMinimumLength:
		return NewMinimumLengthValidator(DefaultMinLength), nil
	case config.ValidatorCommonPassword:
		return NewCommonPasswordValidator(), nil
	case config.ValidatorNumeric:
		return NewNumericValidator(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownValidator, name)
	}
}

// Validate checks obj, a string or *string password, against every rule.
// attributes are the user's attribute values.
//
// The returned error wraps ErrInvalidPassword and every failed rule error.
func (p *PasswordPolicy) Validate(_ context.Context, obj any, attributes ...string) error {
	var password string
	switch value := obj.(type) {
	case string:
		password = value
	case *string:
		if value == nil {
			return ErrUnsupportedType
		}
		password = *value
	default:
		return ErrUnsupportedType
	}

	var errs []error
	for _, v := range p.validators {
		if err := v.ValidatePassword(password, attributes...); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidPassword, errors.Join(errs...))
}

// HelpTexts returns the help text of every rule in order.
func (p *PasswordPolicy) HelpTexts() []string {
	texts := make([]string, 0, len(p.validators))
	for _, v := range p.validators {
		texts = append(texts, v.HelpText())
	}
	return texts
}

// UserAttributeSimilarityValidator rejects passwords that resemble one of
// the user's attributes.
type UserAttributeSimilarityValidator struct {
	maxSimilarity float64
}

func NewUserAttributeSimilarityValidator(maxSimilarity float64) *UserAttributeSimilarityValidator {
	return &UserAttributeSimilarityValidator{maxSimilarity: maxSimilarity}
}

var nonWord = regexp.MustCompile(`\W+`)

func (v *UserAttributeSimilarityValidator) ValidatePassword(password string, attributes ...string) error {
	password = strings.ToLower(password)
	for _, attr := range attributes {
		attr = strings.ToLower(attr)
		if attr == "" {
			continue
		}
		if exceedsMaxLengthRatio(password, attr, v.maxSimilarity) {
			continue
		}
		parts := append(nonWord.Split(attr, -1), attr)
		for _, part := range parts {
			if part == "" {
				continue
			}
			if quickRatio(password, part) >= v.maxSimilarity {
				return ErrPasswordTooSimilar
			}
		}
	}
	return nil
}

func (v *UserAttributeSimilarityValidator) HelpText() string {
	return "Your password can't be too similar to your other personal information."
}

// exceedsMaxLengthRatio reports whether password is so much longer than
// value that they cannot reach maxSimilarity.
func exceedsMaxLengthRatio(password, value string, maxSimilarity float64) bool {
	pwdLen := utf8.RuneCountInString(password)
	valueLen := utf8.RuneCountInString(value)
	lengthBound := maxSimilarity / 2 * float64(pwdLen)
	return pwdLen >= 10*valueLen && float64(valueLen) < lengthBound
}

// quickRatio is an upper bound on the similarity of a and b: twice the
// number of shared characters over the total length.
func quickRatio(a, b string) float64 {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 1
	}

	avail := make(map[rune]int)
	for _, r := range b {
		avail[r]++
	}
	matches := 0
	for _, r := range a {
		if avail[r] > 0 {
			avail[r]--
			matches++
		}
	}
	return 2 * float64(matches) / float64(total)
}

// MinimumLengthValidator rejects passwords shorter than a minimum number
// of characters.
type MinimumLengthValidator struct {
	minLength int
}

func NewMinimumLengthValidator(minLength int) *MinimumLengthValidator {
	return &MinimumLengthValidator{minLength: minLength}
}

func (v *MinimumLengthValidator) ValidatePassword(password string, _ ...string) error {
	if utf8.RuneCountInString(password) < v.minLength {
		return fmt.Errorf("%w: it must contain at least %d characters", ErrPasswordTooShort, v.minLength)
	}
	return nil
}

func (v *MinimumLengthValidator) HelpText() string {
	return fmt.Sprintf("Your password must contain at least %d characters.", v.minLength)
}

// CommonPasswordValidator rejects passwords from a list of frequently
// used passwords. Comparison is case-insensitive.
type CommonPasswordValidator struct {
	passwords map[string]struct{}
}

func NewCommonPasswordValidator() *CommonPasswordValidator {
	return &CommonPasswordValidator{passwords: parsePasswordList(commonPasswordsList)}
}

func parsePasswordList(list string) map[string]struct{} {
	passwords := make(map[string]struct{})
	scanner := bufio.NewScanner(strings.NewReader(list))
	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		passwords[line] = struct{}{}
	}
	return passwords
}

func (v *CommonPasswordValidator) ValidatePassword(password string, _ ...string) error {
	if _, ok := v.passwords[strings.ToLower(strings.TrimSpace(password))]; ok {
		return ErrPasswordTooCommon
	}
	return nil
}

func (v *CommonPasswordValidator) HelpText() string {
	return "Your password can't be a commonly used password."
}

// NumericValidator rejects passwords made of digits only.
type NumericValidator struct{}

func NewNumericValidator() *NumericValidator {
	return &NumericValidator{}
}

func (v *NumericValidator) ValidatePassword(password string, _ ...string) error {
	if password == "" {
		return nil
	}
	for _, r := range password {
		if !unicode.IsDigit(r) {
			return nil
		}
	}
	return ErrPasswordNumeric
}

func (v *NumericValidator) HelpText() string {
	return "Your password can't be entirely numeric."
}
