package batch

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Chunk splits items into consecutive slices of at most size elements. A size
// of zero or less yields a single chunk with all items.
func Chunk[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if size <= 0 {
		return [][]T{items}
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}

// ForEach processes chunks of items concurrently, at most parallel chunks at a
// time, calling fn with the chunk and the offset of its first element in
// items. The first error cancels the remaining work.
func ForEach[T any](ctx context.Context, items []T, size, parallel int, fn func(ctx context.Context, offset int, chunk []T) error) error {
	if parallel <= 0 {
		parallel = 1
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(parallel)

	offset := 0
	for _, chunk := range Chunk(items, size) {
		off := offset
		eg.Go(func() error {
			return fn(ctx, off, chunk)
		})
		offset += len(chunk)
	}

	return eg.Wait()
}
