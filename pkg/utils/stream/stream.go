// Package stream reads a body in bounded chunks so large archives never need to be held in memory.
package stream

import (
	"errors"
	"io"
	"iter"
)

// DefaultChunkSize is the read size used when none is given.
const DefaultChunkSize = 8 * 1024

// Chunk is one slice of the stream. Data is only valid until the next iteration; Total is the
// cumulative number of bytes read so far, including Data.
type Chunk struct {
	Data  []byte
	Total int64
}

// Chunks yields successive chunks read from r. A read error other than io.EOF is yielded once as
// the final element. size <= 0 falls back to DefaultChunkSize.
func Chunks(r io.Reader, size int) iter.Seq2[Chunk, error] {
	if size <= 0 {
		size = DefaultChunkSize
	}

	return func(yield func(Chunk, error) bool) {
		buf := make([]byte, size)
		var total int64

		for {
			n, err := r.Read(buf)
			if n > 0 {
				total += int64(n)
				if !yield(Chunk{Data: buf[:n], Total: total}, nil) {
					return
				}
			}

			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(Chunk{Total: total}, err)
				return
			}
		}
	}
}
