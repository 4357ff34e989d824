package mail

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/news-site/internal/utils"
)

const separator = "-------------------------------------------------------------------------------"

// ConsoleBackend writes every message to an io.Writer followed by a
// separator line.
type ConsoleBackend struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

func NewConsoleBackend(w io.Writer) *ConsoleBackend {
	return &ConsoleBackend{w: w, now: time.Now}
}

func (b *ConsoleBackend) Send(_ context.Context, msg Message) error {
	data, err := msg.Format(b.now(), hostname())
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.w.Write(data); err != nil {
		return fmt.Errorf("%w: %w", ErrWritingMessage, err)
	}
	if _, err := io.WriteString(b.w, separator+"\n"); err != nil {
		return fmt.Errorf("%w: %w", ErrWritingMessage, err)
	}
	return nil
}

// FileBackend writes each message to its own file in dir.
// File names are "<UTC timestamp>-<random key>.log".
type FileBackend struct {
	dir string
	now func() time.Time
}

func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir, now: time.Now}
}

func (b *FileBackend) Send(_ context.Context, msg Message) error {
	now := b.now()
	data, err := msg.Format(now, hostname())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrWritingMessage, err)
	}

	name := fmt.Sprintf("%s-%s.log", now.UTC().Format("20060102-150405"), utils.NewUUIDGenerator().GenerateKey())
	if err := os.WriteFile(filepath.Join(b.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrWritingMessage, err)
	}
	return nil
}

// LocMemBackend keeps sent messages in memory.
type LocMemBackend struct {
	mu     sync.Mutex
	outbox []Message
}

func NewLocMemBackend() *LocMemBackend {
	return &LocMemBackend{}
}

func (b *LocMemBackend) Send(_ context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	msg.To = append([]string(nil), msg.To...)
	b.outbox = append(b.outbox, msg)
	return nil
}

// Outbox returns a copy of the messages sent so far.
func (b *LocMemBackend) Outbox() []Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Message(nil), b.outbox...)
}

// Reset empties the outbox.
func (b *LocMemBackend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.outbox = nil
}

// DummyBackend discards every message.
type DummyBackend struct{}

func NewDummyBackend() *DummyBackend {
	return &DummyBackend{}
}

func (b *DummyBackend) Send(context.Context, Message) error {
	return nil
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil || strings.TrimSpace(name) == "" {
		return "localhost"
	}
	return name
}
