package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/MKhiriev/news-site/internal/utils"
	"github.com/MKhiriev/news-site/models"
)

// RequestSession is the session of the current request. It is safe for
// concurrent use by the goroutines serving one request.
type RequestSession struct {
	mu       sync.Mutex
	session  models.Session
	snapshot []byte
	accessed bool
	flushed  bool
}

func newRequestSession(session models.Session) *RequestSession {
	if session.Data == nil {
		session.Data = map[string]any{}
	}
	snapshot, _ := json.Marshal(session.Data)
	return &RequestSession{session: session, snapshot: snapshot}
}

// SessionFromRequest returns the session loaded by the sessions middleware.
func SessionFromRequest(r *http.Request) (*RequestSession, bool) {
	s, ok := r.Context().Value(utils.SessionCtxKey).(*RequestSession)
	return s, ok
}

func withSession(ctx context.Context, s *RequestSession) context.Context {
	return context.WithValue(ctx, utils.SessionCtxKey, s)
}

// Key returns the session key, or "" for a session that was never saved.
func (s *RequestSession) Key() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Key
}

func (s *RequestSession) Get(name string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessed = true
	v, ok := s.session.Data[name]
	return v, ok
}

func (s *RequestSession) Set(name string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessed = true
	s.session.Data[name] = value
}

func (s *RequestSession) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessed = true
	delete(s.session.Data, name)
}

// Flush removes all data and the stored session. The browser cookie is
// deleted with the response.
func (s *RequestSession) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessed = true
	s.flushed = true
	s.session.Data = map[string]any{}
}

// state returns a copy of the session and whether its data differs from
// what was loaded.
func (s *RequestSession) state() (session models.Session, accessed, modified, flushed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := json.Marshal(s.session.Data)
	modified = err != nil || string(current) != string(s.snapshot)
	return s.session, s.accessed, modified, s.flushed
}
