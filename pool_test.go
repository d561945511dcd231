package textformatter

import (
	"errors"
	"runtime"
	"sync"
	"testing"
	"time"
)

// Compile-time interface check.
var _ interface {
	Acquire() (*Converter, error)
	Release(*Converter)
	Size() int
	Close() error
} = (*ConverterPool)(nil)

// mustAcquire acquires a converter or fails the test.
func mustAcquire(t testing.TB, pool *ConverterPool) *Converter {
	t.Helper()
	conv, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if conv == nil {
		t.Fatal("Acquire() returned nil")
	}
	return conv
}

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	gomaxprocs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{
			name:    "explicit takes priority",
			workers: 4,
			want:    4,
		},
		{
			name:    "explicit=1 for sequential",
			workers: 1,
			want:    1,
		},
		{
			name:    "zero uses auto calculation",
			workers: 0,
			want:    min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ResolvePoolSize(tt.workers)
			if got != tt.want {
				t.Errorf("ResolvePoolSize(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

func TestResolvePoolSize_Bounds(t *testing.T) {
	t.Parallel()

	t.Run("minimum is 1", func(t *testing.T) {
		t.Parallel()

		got := ResolvePoolSize(0)
		if got < MinPoolSize {
			t.Errorf("ResolvePoolSize(0) = %d, should be at least %d", got, MinPoolSize)
		}
	})

	t.Run("maximum is 8", func(t *testing.T) {
		t.Parallel()

		got := ResolvePoolSize(0)
		if got > MaxPoolSize {
			t.Errorf("ResolvePoolSize(0) = %d, should be at most %d", got, MaxPoolSize)
		}
	})

	t.Run("explicit can exceed max", func(t *testing.T) {
		t.Parallel()

		got := ResolvePoolSize(16)
		if got != 16 {
			t.Errorf("ResolvePoolSize(16) = %d, want 16", got)
		}
	})
}

func TestConverterPool_AcquireRelease(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(2)
	defer pool.Close()

	// Acquire first converter
	conv1 := mustAcquire(t, pool)

	// Acquire second converter
	conv2 := mustAcquire(t, pool)

	// Converters should be different instances
	if conv1 == conv2 {
		t.Error("expected different converter instances")
	}

	// Release and re-acquire
	pool.Release(conv1)
	conv3 := mustAcquire(t, pool)

	if conv3 != conv1 {
		t.Error("expected to get back released converter")
	}

	// Cleanup
	pool.Release(conv2)
	pool.Release(conv3)
}

func TestConverterPool_Size(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		size int
		want int
	}{
		{"size 1", 1, 1},
		{"size 4", 4, 4},
		{"size 0 becomes 1", 0, 1},
		{"negative becomes 1", -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pool := NewConverterPool(tt.size)
			defer pool.Close()

			if got := pool.Size(); got != tt.want {
				t.Errorf("Size() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConverterPool_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(4)
	defer pool.Close()

	var wg sync.WaitGroup
	iterations := 20

	for i := 0; i < iterations; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conv, err := pool.Acquire()
			if err != nil {
				t.Errorf("Acquire() error = %v", err)
				return
			}
			time.Sleep(5 * time.Millisecond) // Simulate work
			pool.Release(conv)
		}()
	}

	// Should complete without deadlock
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(5 * time.Second)
	defer timer.Stop()

	select {
	case <-done:
		// Success
	case <-timer.C:
		t.Fatal("concurrent access test timed out - possible deadlock")
	}
}

func TestConverterPool_ClosePreventsFurtherRelease(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(2)

	conv := mustAcquire(t, pool)
	pool.Close()

	// Release after close should not panic
	pool.Release(conv) // Should be safe (no-op)
}

func TestConverterPool_DoubleClose(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1)

	// First close
	if err := pool.Close(); err != nil {
		t.Errorf("first Close() error = %v", err)
	}

	// Second close should not panic
	pool.Close()
}

func TestConverterPool_AcquireAfterClose(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(2)

	// Acquire one converter
	conv := mustAcquire(t, pool)

	// Close the pool
	pool.Close()

	// Release should not panic after close
	pool.Release(conv)

	// Note: Acquire after close will block forever on empty channel,
	// so we don't test that directly - it's documented behavior.
}

// TestConverterPool_HighContention verifies the pool remains deadlock-free under
// heavy concurrent access. A small pool (2 converters) with many goroutines (50)
// each performing multiple acquire/release cycles exposes race conditions and
// channel blocking issues that wouldn't surface with lighter loads.
func TestConverterPool_HighContention(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(2)
	defer pool.Close()

	var wg sync.WaitGroup
	goroutines := 50
	iterations := 10

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				conv, err := pool.Acquire()
				if err != nil {
					t.Errorf("Acquire() error = %v", err)
					return
				}
				// Simulate variable work duration
				time.Sleep(time.Duration(j%3) * time.Millisecond)
				pool.Release(conv)
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(30 * time.Second)
	defer timer.Stop()

	select {
	case <-done:
		// Success - no deadlock under high contention
	case <-timer.C:
		t.Fatal("high contention test timed out - possible deadlock")
	}
}

func TestConverterPool_AllConvertersAcquired(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(3)
	defer pool.Close()

	// Acquire all converters
	converters := make([]*Converter, 3)
	for i := 0; i < 3; i++ {
		converters[i] = mustAcquire(t, pool)
	}

	// Verify we got 3 distinct converters
	seen := make(map[*Converter]bool)
	for _, conv := range converters {
		if seen[conv] {
			t.Error("got duplicate converter from pool")
		}
		seen[conv] = true
	}

	// Release all
	for _, conv := range converters {
		pool.Release(conv)
	}
}

func TestConverterPool_LazyCreation(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(3)
	defer pool.Close()

	// Pool should not create converters until acquired
	// Acquire one converter
	conv1 := mustAcquire(t, pool)

	// Release it
	pool.Release(conv1)

	// Acquire again - should get the same converter (reuse)
	conv2 := mustAcquire(t, pool)
	if conv2 != conv1 {
		t.Error("expected to reuse released converter")
	}

	pool.Release(conv2)
}

func TestResolvePoolSize_NegativeWorkers(t *testing.T) {
	t.Parallel()

	// Negative workers should be treated as 0 (auto-calculate)
	got := ResolvePoolSize(-5)

	if got < MinPoolSize || got > MaxPoolSize {
		t.Errorf("ResolvePoolSize(-5) = %d, should be between %d and %d", got, MinPoolSize, MaxPoolSize)
	}
}

func TestResolvePoolSize_LargeExplicitValue(t *testing.T) {
	t.Parallel()

	// Explicit value above MaxPoolSize should be allowed
	got := ResolvePoolSize(100)

	if got != 100 {
		t.Errorf("ResolvePoolSize(100) = %d, want 100", got)
	}
}

func TestConverterPool_AcquireError(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1, WithTemplate("missing-template"))
	defer pool.Close()

	for i := range 2 {
		_, err := pool.Acquire()
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Fatalf("Acquire() #%d error = %v, want ErrTemplateNotFound", i, err)
		}
	}
}

func TestConverterPool_PassesOptions(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1, WithTemplate("plain"))
	defer pool.Close()

	conv := mustAcquire(t, pool)
	defer pool.Release(conv)

	plain, err := NewConverter(WithTemplate("plain"))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	if conv.Template() != plain.Template() {
		t.Error("pooled converter did not receive WithTemplate option")
	}
}
