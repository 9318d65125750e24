package benchmark

import (
	"context"
	"testing"

	"github.com/vnykmshr/bodyflow/pkg/adapters/limited"
	"github.com/vnykmshr/bodyflow/pkg/body"
)

// BenchmarkCollect measures aggregation of a chunked body.
func BenchmarkCollect(b *testing.B) {
	chunkCounts := []int{1, 16, 256}
	chunk := make([]byte, 1024)

	for _, count := range chunkCounts {
		b.Run(sizeLabel(count), func(b *testing.B) {
			ctx := context.Background()

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				chunks := make([][]byte, count)
				for j := range chunks {
					chunks[j] = chunk
				}
				if _, err := body.Collect(ctx, body.FromChunks(chunks...)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkLimitedNext measures the per-frame overhead of budget
// enforcement.
func BenchmarkLimitedNext(b *testing.B) {
	chunk := make([]byte, 1024)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l := limited.New(body.Full(chunk), 2048)
		if _, _, err := l.Next(ctx); err != nil {
			b.Fatal(err)
		}
	}
}
