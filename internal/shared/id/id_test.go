package id

import (
	"strings"
	"sync"
	"testing"
)

func TestGenerate(t *testing.T) {
	gen := NewGenerator()

	id1 := gen.Generate()
	id2 := gen.Generate()

	if id1.String() == id2.String() {
		t.Error("Generated IDs should be unique")
	}
}

func TestGenerateWithPrefix(t *testing.T) {
	id := NewGenerator().GenerateWithPrefix(BuildPrefix)

	if len(id) != len(BuildPrefix)+1+26 {
		t.Errorf("prefixed ULID should be %d characters, got %d", len(BuildPrefix)+27, len(id))
	}
}

func TestTypedIDGeneration(t *testing.T) {
	ids := map[string]string{
		BuildPrefix:   NewBuildID().String(),
		RequestPrefix: NewRequestID().String(),
		SpanPrefix:    NewSpanID().String(),
	}

	for prefix, id := range ids {
		if !strings.HasPrefix(id, prefix+"_") {
			t.Errorf("ID should start with '%s_', got: %s", prefix, id)
		}
		if !IsValidPrefixed(id, prefix) {
			t.Errorf("ID should be a valid prefixed ULID: %s", id)
		}
	}
}

func TestIsValidPrefixed(t *testing.T) {
	build := NewBuildID().String()

	if IsValidPrefixed(build, RequestPrefix) {
		t.Errorf("build ID should not validate as request ID: %s", build)
	}
	if IsValidPrefixed("build_notaulid", BuildPrefix) {
		t.Error("malformed ULID part should be rejected")
	}
	if IsValidPrefixed("", BuildPrefix) {
		t.Error("empty ID should be rejected")
	}
}

func TestIsValidPrefixedRejectsJunk(t *testing.T) {
	for _, id := range []string{"req_", "req_invalid", "req_1234567890", "req_zzzzzzzzzzzzzzzzzzzzzzzzzz", "req_" + strings.Repeat("0", 27)} {
		if IsValidPrefixed(id, RequestPrefix) {
			t.Errorf("ID should be invalid: %s", id)
		}
	}
}

func TestConcurrentGeneration(t *testing.T) {
	gen := NewGenerator()

	const goroutines = 50
	const idsPerGoroutine = 100

	var wg sync.WaitGroup
	idChan := make(chan string, goroutines*idsPerGoroutine)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < idsPerGoroutine; j++ {
				idChan <- gen.Generate().String()
			}
		}()
	}

	wg.Wait()
	close(idChan)

	seen := make(map[string]bool)
	for id := range idChan {
		if seen[id] {
			t.Errorf("Duplicate ID found in concurrent generation: %s", id)
		}
		seen[id] = true
	}

	if len(seen) != goroutines*idsPerGoroutine {
		t.Errorf("Expected %d unique IDs, got %d", goroutines*idsPerGoroutine, len(seen))
	}
}

func TestDefaultGenerator(t *testing.T) {
	if Default() != Default() {
		t.Error("Default() should return the same instance")
	}
}

func BenchmarkGenerateWithPrefix(b *testing.B) {
	gen := NewGenerator()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = gen.GenerateWithPrefix(BuildPrefix)
	}
}
