// Package notify publishes run lifecycle events to interested parties.
package notify

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
)

// Event types
const (
	EventRunStarted    = "run.started"
	EventFileCompleted = "file.completed"
	EventRunCompleted  = "run.completed"
	EventRunFailed     = "run.failed"
)

// DefaultSubject is the NATS subject events are published on.
const DefaultSubject = "loggen.events"

// FileInfo describes one finished output file.
type FileInfo struct {
	Name           string `json:"name"`
	Path           string `json:"path"`
	TargetBytes    uint64 `json:"target_bytes"`
	PlannedRecords uint64 `json:"planned_records"`
	ActualBytes    uint64 `json:"actual_bytes"`
	Compressed     bool   `json:"compressed"`
}

// Event is one lifecycle notification.
type Event struct {
	Type      string    `json:"type"`
	RunID     string    `json:"run_id"`
	Time      time.Time `json:"time"`
	OutputDir string    `json:"output_dir,omitempty"`
	Files     int       `json:"files,omitempty"`
	File      *FileInfo `json:"file,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Notifier receives run events.
type Notifier interface {
	Notify(event Event) error
	Close() error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Notify(Event) error { return nil }
func (Nop) Close() error       { return nil }

type publisher interface {
	Publish(subject string, data []byte) error
	Flush() error
	Close()
}

// NATSNotifier publishes JSON-encoded events to a NATS subject.
type NATSNotifier struct {
	conn    publisher
	subject string
}

// NewNATSNotifier connects to url and publishes on subject.
func NewNATSNotifier(url, subject string, opts ...nats.Option) (*NATSNotifier, error) {
	if url == "" {
		url = nats.DefaultURL
	}
	opts = append([]nats.Option{nats.Name("loggen")}, opts...)

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "connect to NATS at %s", url)
	}
	return newNATSNotifier(conn, subject), nil
}

func newNATSNotifier(conn publisher, subject string) *NATSNotifier {
	if subject == "" {
		subject = DefaultSubject
	}
	return &NATSNotifier{conn: conn, subject: subject}
}

// Subject returns the subject events are published on.
func (n *NATSNotifier) Subject() string {
	return n.subject
}

// Notify publishes event.
func (n *NATSNotifier) Notify(event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}
	if err := n.conn.Publish(n.subject, data); err != nil {
		return errors.Wrapf(err, "publish %s", event.Type)
	}
	return nil
}

// Close flushes pending events and closes the connection.
func (n *NATSNotifier) Close() error {
	err := n.conn.Flush()
	n.conn.Close()
	if err != nil {
		return errors.Wrap(err, "flush NATS connection")
	}
	return nil
}
