package internal

import (
	"bytes"
	"sync"
)

const maxPooledBufferSize = 64 * 1024

var bufferPool = sync.Pool{
	New: func() any {
		return &bytes.Buffer{}
	},
}

// GetBuffer 从池中获取 buffer
func GetBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer 归还 buffer，超大 buffer 不放回池中
func PutBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBufferSize {
		return
	}
	bufferPool.Put(buf)
}
