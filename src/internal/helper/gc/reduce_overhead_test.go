// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or use this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package gc

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBufferInterface verifies that bytebufferpool.ByteBuffer satisfies Buffer interface
func TestBufferInterface(t *testing.T) {
	tests := []struct {
		name  string
		setup func(buf Buffer)
		check func(t *testing.T, buf Buffer)
	}{
		{
			name: "WriteString",
			setup: func(buf Buffer) {
				buf.WriteString("test string")
			},
			check: func(t *testing.T, buf Buffer) {
				assert.Equal(t, "test string", string(buf.Bytes()))
			},
		},
		{
			name: "WriteByte",
			setup: func(buf Buffer) {
				buf.WriteByte('A')
			},
			check: func(t *testing.T, buf Buffer) {
				assert.Equal(t, "A", string(buf.Bytes()))
			},
		},
		{
			name: "Multiple operations",
			setup: func(buf Buffer) {
				buf.WriteString("hello test")
				buf.WriteByte('!')
			},
			check: func(t *testing.T, buf Buffer) {
				assert.Equal(t, []byte("hello test!"), buf.Bytes())
			},
		},
		{
			name: "Reset clears buffer",
			setup: func(buf Buffer) {
				buf.WriteString("data to clear")
				buf.Reset()
			},
			check: func(t *testing.T, buf Buffer) {
				assert.Empty(t, buf.Bytes(), "Reset() failed, buffer still contains data")
			},
		},
		{
			name:  "Empty buffer",
			setup: func(buf Buffer) {},
			check: func(t *testing.T, buf Buffer) {
				assert.Empty(t, buf.Bytes())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := Default.Get()
			defer func() {
				buf.Reset()
				Default.Put(buf)
			}()

			tt.setup(buf)
			tt.check(t, buf)
		})
	}
}

// TestBufferReadFrom verifies ReadFrom functionality
func TestBufferReadFrom(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantLen int64
	}{
		{
			name:    "Small data",
			data:    "Hello, World!",
			wantLen: 13,
		},
		{
			name:    "Empty reader",
			data:    "",
			wantLen: 0,
		},
		{
			name:    "Large data (10KB)",
			data:    strings.Repeat("0123456789", 1024),
			wantLen: 10240,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := Default.Get()
			defer func() {
				buf.Reset()
				Default.Put(buf)
			}()

			n, err := buf.ReadFrom(strings.NewReader(tt.data))
			require.NoError(t, err, "ReadFrom() should not return error")

			assert.Equal(t, tt.wantLen, n, "ReadFrom() read bytes")
			assert.Equal(t, tt.data, string(buf.Bytes()), "ReadFrom() result")
		})
	}
}

// TestPoolGetPut verifies pool Get/Put operations
func TestPoolGetPut(t *testing.T) {
	buf1 := Default.Get()
	require.NotNil(t, buf1, "Get() returned nil buffer")

	buf1.WriteString("test data")
	assert.Len(t, buf1.Bytes(), 9, "WriteString() length")
	buf1.Reset()
	assert.Empty(t, buf1.Bytes(), "Reset() failed")

	// Return to pool (buf1 must not be accessed after this)
	Default.Put(buf1)

	// Buffer from the pool must arrive empty
	buf2 := Default.Get()
	require.NotNil(t, buf2, "Get() returned nil buffer after Put()")
	assert.Empty(t, buf2.Bytes(), "Buffer from pool should be empty")

	buf2.Reset()
	Default.Put(buf2)
}

// TestConcurrentPoolUse verifies the pool is safe for concurrent use
func TestConcurrentPoolUse(t *testing.T) {
	const goroutines = 100
	const iterations = 1000

	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := range goroutines {
		go func(id int) {
			defer wg.Done()
			for range iterations {
				buf := Default.Get()

				buf.WriteString("goroutine #")
				buf.WriteByte(byte('0' + (id % 10)))

				assert.GreaterOrEqual(t, len(buf.Bytes()), 12, "Buffer should hold everything written")

				buf.Reset()
				Default.Put(buf)
			}
		}(i)
	}

	wg.Wait()
}

// TestPoolPutNonByteBuffer verifies Put handles non-ByteBuffer types gracefully
func TestPoolPutNonByteBuffer(t *testing.T) {
	Default.Put(&mockBuffer{buf: bytes.NewBuffer(nil)})
}

// TestPoolInterfaceImplementation verifies pool type implements Pool interface
func TestPoolInterfaceImplementation(t *testing.T) {
	var _ Pool = &pool{}
	var _ Pool = Default
}

// TestBufferReadFromError verifies ReadFrom handles read errors
func TestBufferReadFromError(t *testing.T) {
	buf := Default.Get()
	defer func() {
		buf.Reset()
		Default.Put(buf)
	}()

	_, err := buf.ReadFrom(&errorReader{err: io.ErrUnexpectedEOF})
	assert.Equal(t, io.ErrUnexpectedEOF, err, "ReadFrom error")
}
