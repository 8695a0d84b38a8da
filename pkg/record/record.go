// Package record builds and renders synthetic access-log records in the
// combined log format.
package record

import (
	"strconv"
	"time"
)

// TimeLayout renders the bracketed timestamp without its zone.
const TimeLayout = "02/Jan/2006:15:04:05"

// ZoneOffset is appended to every timestamp regardless of the time's location.
const ZoneOffset = "+0100"

// Record is one access-log line before rendering.
type Record struct {
	RemoteAddr    string
	RemoteUser    string
	Timestamp     time.Time
	Request       string
	Status        int
	BodyBytesSent int
	Referer       string
	UserAgent     string
}

// Generator produces records from a FieldProvider.
type Generator struct {
	provider FieldProvider
}

// NewGenerator creates a generator. A nil provider selects DefaultFixedProvider.
func NewGenerator(provider FieldProvider) *Generator {
	if provider == nil {
		provider = DefaultFixedProvider()
	}
	return &Generator{provider: provider}
}

// Generate builds a record stamped with ts.
func (g *Generator) Generate(ts time.Time) Record {
	return Record{
		RemoteAddr:    g.provider.RemoteAddr(),
		RemoteUser:    g.provider.RemoteUser(),
		Timestamp:     ts,
		Request:       g.provider.Request(),
		Status:        g.provider.Status(),
		BodyBytesSent: g.provider.BodyBytesSent(),
		Referer:       g.provider.Referer(),
		UserAgent:     g.provider.UserAgent(),
	}
}

// AppendTo appends the rendered record to buf, without a trailing newline.
func (r Record) AppendTo(buf []byte) []byte {
	buf = append(buf, r.RemoteAddr...)
	buf = append(buf, " - "...)
	buf = append(buf, r.RemoteUser...)
	buf = append(buf, " ["...)
	buf = r.Timestamp.AppendFormat(buf, TimeLayout)
	buf = append(buf, ' ')
	buf = append(buf, ZoneOffset...)
	buf = append(buf, "] \""...)
	buf = append(buf, r.Request...)
	buf = append(buf, "\" "...)
	buf = strconv.AppendInt(buf, int64(r.Status), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(r.BodyBytesSent), 10)
	buf = append(buf, " \""...)
	buf = append(buf, r.Referer...)
	buf = append(buf, "\" \""...)
	buf = append(buf, r.UserAgent...)
	buf = append(buf, '"')
	return buf
}

// String renders the record as a single line with no trailing newline.
func (r Record) String() string {
	return string(r.AppendTo(make([]byte, 0, 256)))
}

// Render is shorthand for r.String.
func Render(r Record) string {
	return r.String()
}
