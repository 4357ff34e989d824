package config

import (
	"fmt"
	"net/mail"
	"path/filepath"
	"strings"
)

const defaultHost = "localhost"

// resolve fills the values derived from other settings once all sources
// are merged.
func resolve(cfg *Settings) error {
	if cfg.BaseDir == "" {
		cfg.BaseDir = workingDir()
	}
	if abs, err := filepath.Abs(cfg.BaseDir); err == nil {
		cfg.BaseDir = abs
	}

	cfg.AllowedHosts = allowedHosts(cfg.AllowedHosts)
	cfg.CSRFTrustedOrigins = splitList(cfg.CSRFTrustedOrigins)

	if cfg.Database.Name == "" {
		cfg.Database.Name = cfg.Database.AltName
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = filepath.Join(cfg.BaseDir, "db", "db.sqlite3")
	}

	cfg.Static = Assets{URL: staticURL, Root: filepath.Join(cfg.BaseDir, "static")}
	cfg.Media = Assets{URL: mediaURL, Root: filepath.Join(cfg.BaseDir, "media")}

	if cfg.Email.ServerEmail == "" {
		cfg.Email.ServerEmail = cfg.Email.DefaultFrom
	}

	if cfg.Debug {
		cfg.Logging.Level = "debug"
	}

	admins, err := parseAdmins(cfg.AdminsRaw)
	if err != nil {
		return err
	}
	cfg.Admins = admins

	return nil
}

// allowedHosts prepends "localhost" to hosts, trimming blanks and dropping
// duplicates.
func allowedHosts(hosts []string) []string {
	return splitList(append([]string{defaultHost}, hosts...))
}

// splitList trims every item, drops empty ones and keeps the first
// occurrence of duplicates. Items holding commas are split further, so a
// JSON value of "a,b" behaves like the environment variable.
func splitList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if _, ok := seen[part]; ok {
				continue
			}
			seen[part] = struct{}{}
			out = append(out, part)
		}
	}
	return out
}

// parseAdmins reads an RFC 5322 address list. An empty value yields no
// admins.
func parseAdmins(raw string) ([]Admin, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	addresses, err := mail.ParseAddressList(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAdmins, err)
	}

	admins := make([]Admin, 0, len(addresses))
	for _, a := range addresses {
		admins = append(admins, Admin{Name: a.Name, Email: a.Address})
	}
	return admins, nil
}
