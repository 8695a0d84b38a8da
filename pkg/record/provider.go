package record

import (
	"math/rand"
	"strconv"
	"sync"
	"time"
)

// Value pools drawn from by RandomProvider.
var (
	RemoteUsers = []string{"-", "root"}
	Statuses    = []int{200, 301, 400, 404, 405}
	BodySizes   = []int{77, 118, 150, 361, 125837}
	Referers    = []string{"-", "http://foo-referer/login.asp"}
	UserAgents  = []string{
		"Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:71.0) Gecko/20100101 Firefox/71.0",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/70.0.3538.67 Safari/537.36",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/60.0.3112.113 Safari/537.36",
	}
	Requests = []string{
		"GET / HTTP/1.1",
		"GET /index.html HTTP/1.1",
		"POST /foo/admin/formLogin HTTP/1.1",
	}
)

// FieldProvider supplies the non-timestamp fields of a record.
type FieldProvider interface {
	RemoteAddr() string
	RemoteUser() string
	Request() string
	Status() int
	BodyBytesSent() int
	Referer() string
	UserAgent() string
}

// RandomProvider draws every field independently and uniformly from the
// value pools. It owns its random source, so separate providers never
// share state.
type RandomProvider struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomProvider creates a provider reading from src.
func NewRandomProvider(src rand.Source) *RandomProvider {
	return &RandomProvider{rnd: rand.New(src)}
}

// NewSeededProvider creates a provider with a reproducible sequence.
// A zero seed means "seed from the wall clock".
func NewSeededProvider(seed int64) *RandomProvider {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewRandomProvider(rand.NewSource(seed))
}

func (p *RandomProvider) intn(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rnd.Intn(n)
}

func pick[T any](p *RandomProvider, choices []T) T {
	return choices[p.intn(len(choices))]
}

// RemoteAddr returns four octets in [0,256) joined by dots.
func (p *RandomProvider) RemoteAddr() string {
	buf := make([]byte, 0, 15)
	for i := 0; i < 4; i++ {
		if i > 0 {
			buf = append(buf, '.')
		}
		buf = strconv.AppendInt(buf, int64(p.intn(256)), 10)
	}
	return string(buf)
}

func (p *RandomProvider) RemoteUser() string { return pick(p, RemoteUsers) }
func (p *RandomProvider) Request() string    { return pick(p, Requests) }
func (p *RandomProvider) Status() int        { return pick(p, Statuses) }
func (p *RandomProvider) BodyBytesSent() int { return pick(p, BodySizes) }
func (p *RandomProvider) Referer() string    { return pick(p, Referers) }
func (p *RandomProvider) UserAgent() string  { return pick(p, UserAgents) }

// FixedProvider returns the same value for every field on every call.
// Zero-valued fields fall back to the values of DefaultFixedProvider.
type FixedProvider struct {
	Addr      string
	User      string
	Req       string
	Code      int
	BodyBytes int
	Ref       string
	Agent     string
}

// DefaultFixedProvider is the provider used in deterministic mode.
func DefaultFixedProvider() FixedProvider {
	return FixedProvider{
		Addr:      "8.8.8.8",
		User:      "-",
		Req:       "GET /index.html HTTP/1.1",
		Code:      200,
		BodyBytes: 118,
		Ref:       "http://foo-referer/login.asp",
		Agent:     UserAgents[0],
	}
}

func (f FixedProvider) RemoteAddr() string {
	return orDefault(f.Addr, DefaultFixedProvider().Addr)
}

func (f FixedProvider) RemoteUser() string {
	return orDefault(f.User, "-")
}

func (f FixedProvider) Request() string {
	return orDefault(f.Req, DefaultFixedProvider().Req)
}

func (f FixedProvider) Status() int {
	if f.Code == 0 {
		return 200
	}
	return f.Code
}

func (f FixedProvider) BodyBytesSent() int {
	if f.BodyBytes == 0 {
		return 118
	}
	return f.BodyBytes
}

func (f FixedProvider) Referer() string {
	return orDefault(f.Ref, DefaultFixedProvider().Ref)
}

func (f FixedProvider) UserAgent() string {
	return orDefault(f.Agent, UserAgents[0])
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
