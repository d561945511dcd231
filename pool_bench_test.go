//go:build bench

package textformatter

import (
	"fmt"
	"sync"
	"testing"
)

// BenchmarkResolvePoolSize benchmarks pool size calculation.
func BenchmarkResolvePoolSize(b *testing.B) {
	workers := []int{0, 1, 2, 4, 8}

	for _, w := range workers {
		b.Run(workerName(w), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_ = ResolvePoolSize(w)
			}
		})
	}
}

func workerName(w int) string {
	if w == 0 {
		return "auto"
	}
	return fmt.Sprintf("%d", w)
}

// BenchmarkConverterPoolAcquireRelease benchmarks pool acquire/release cycle.
// No browser is started: converters only launch Chrome for PDF output.
func BenchmarkConverterPoolAcquireRelease(b *testing.B) {
	sizes := []int{1, 2, 4, 8}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("size_%d", size), func(b *testing.B) {
			pool := NewConverterPool(size)
			converters := make([]*Converter, size)
			for i := range size {
				converters[i] = mustAcquire(b, pool)
			}
			for i := range size {
				pool.Release(converters[i])
			}

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				conv, _ := pool.Acquire()
				pool.Release(conv)
			}

			b.StopTimer()
			pool.Close()
		})
	}
}

// BenchmarkConverterPoolContention benchmarks pool under contention.
func BenchmarkConverterPoolContention(b *testing.B) {
	poolSize := 4
	goroutines := []int{4, 8, 16, 32}

	for _, g := range goroutines {
		b.Run(fmt.Sprintf("goroutines_%d", g), func(b *testing.B) {
			pool := NewConverterPool(poolSize)
			defer pool.Close()

			b.ReportAllocs()
			b.ResetTimer()

			var wg sync.WaitGroup
			perGoroutine := b.N/g + 1
			for range g {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for range perGoroutine {
						conv, err := pool.Acquire()
						if err != nil {
							return
						}
						pool.Release(conv)
					}
				}()
			}
			wg.Wait()
		})
	}
}
