package httpvalidator

import (
	"bytes"
	"sync"
)

// Initial capacity of pooled body buffers.
const bodyBufferCap = 4 << 10

// Buffers that grew past this are dropped instead of pooled.
const maxPooledBufferCap = 1 << 20

var bodyBufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, bodyBufferCap))
	},
}

// getBodyBuffer retrieves an empty buffer from the pool.
func getBodyBuffer() *bytes.Buffer {
	b := bodyBufferPool.Get().(*bytes.Buffer)
	b.Reset()
	return b
}

// putBodyBuffer returns a buffer to the pool.
func putBodyBuffer(b *bytes.Buffer) {
	if b == nil || b.Cap() > maxPooledBufferCap {
		return
	}
	bodyBufferPool.Put(b)
}
