// Package id provides ULID generation for builds, requests and trace spans.
//
// IDs are prefixed by kind (build_*, req_*, span_*) so log lines stay readable,
// and remain k-sortable by creation time.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// BuildID identifies one simulated build session
type BuildID string

// RequestID identifies an API request (also used as trace ID)
type RequestID string

// SpanID identifies a traced operation within a request
type SpanID string

const (
	BuildPrefix   = "build"
	RequestPrefix = "req"
	SpanPrefix    = "span"
)

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by crypto/rand
func NewGenerator() *Generator {
	return &Generator{entropy: rand.Reader}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// NewBuildID generates a new build session ID
func NewBuildID() BuildID {
	return BuildID(Default().GenerateWithPrefix(BuildPrefix))
}

// NewRequestID generates a new request ID
func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(RequestPrefix))
}

// NewSpanID generates a new span ID
func NewSpanID() SpanID {
	return SpanID(Default().GenerateWithPrefix(SpanPrefix))
}

func (id BuildID) String() string   { return string(id) }
func (id RequestID) String() string { return string(id) }
func (id SpanID) String() string    { return string(id) }

// IsValidPrefixed checks a "prefix_ULID" string against the expected prefix.
// Used to vet trace ids supplied by clients.
func IsValidPrefixed(id, prefix string) bool {
	rest, ok := strings.CutPrefix(id, prefix+"_")
	if !ok {
		return false
	}
	_, err := ulid.ParseStrict(rest)
	return err == nil
}
