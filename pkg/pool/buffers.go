// Package pool reuses byte buffers on the rendering hot path.
package pool

import (
	"bytes"
	"sync"
)

// maxPooledSize caps the capacity of buffers returned to the pool. A rendered
// landing page is a few kilobytes; anything far larger is a one-off.
const maxPooledSize = 64 * 1024

var buffers = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// GetBuffer retrieves an empty buffer from the pool.
func GetBuffer() *bytes.Buffer {
	buf := buffers.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns a buffer to the pool. Buffers above 64KB are dropped.
func PutBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxPooledSize {
		return
	}
	buffers.Put(buf)
}

// Bytes runs fn against a pooled buffer and returns a copy of what it wrote.
func Bytes(fn func(*bytes.Buffer) error) ([]byte, error) {
	buf := GetBuffer()
	defer PutBuffer(buf)

	if err := fn(buf); err != nil {
		return nil, err
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}
