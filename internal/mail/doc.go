// Package mail sends site email through the backend selected by
// EMAIL_BACKEND.
//
// Backends:
//   - console: writes formatted messages to an io.Writer (stdout by default)
//   - file:    writes one file per message under EMAIL_FILE_PATH
//   - smtp:    delivers to EMAIL_HOST:EMAIL_PORT with optional STARTTLS,
//     implicit TLS, client certificates and authentication
//   - locmem:  keeps messages in memory, used by tests
//   - dummy:   discards messages
//
// AdminNotifier sends error reports from SERVER_EMAIL to every ADMINS entry.
package mail
