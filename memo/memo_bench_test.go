package memo_test

import (
	"context"
	"testing"

	"github.com/on-the-ground/pentomino_tilings/memo"
)

func naiveFib(n int) int {
	if n <= 1 {
		return n
	}
	return naiveFib(n-1) + naiveFib(n-2)
}

func BenchmarkNaiveFib20(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = naiveFib(20)
	}
}

func BenchmarkMemoizedFib20(b *testing.B) {
	stores := map[string]memo.Store[int, int]{
		"map":          memo.NewMapStore[int, int](),
		"generational": memo.NewGenerationalStore[int, int](32),
	}
	for name, store := range stores {
		b.Run(name, func(b *testing.B) {
			ctx := context.Background()
			var fib func(context.Context, int) (int, error)
			fib = memo.Memoize(memo.New(memo.Config{}, store), func(ctx context.Context, n int) (int, error) {
				if n <= 1 {
					return n, nil
				}
				a, _ := fib(ctx, n-1)
				c, _ := fib(ctx, n-2)
				return a + c, nil
			})

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = fib(ctx, 20)
			}
		})
	}
}
