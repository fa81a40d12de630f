// Copyright 2024 The h1-shader-packager Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package pakdata

import (
	"bytes"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// pattern returns n bytes of deterministic non-repeating filler.
func pattern(n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(i*7 + 3)
	}
	return buf
}

func TestTEA(t *testing.T) {
	t.Parallel()

	Convey("TEA", t, func() {
		Convey("block round-trips", func() {
			buf := pattern(BlockSize)
			ShaderTEA.EncryptBlock(buf)
			So(buf, ShouldNotResemble, pattern(BlockSize))
			ShaderTEA.DecryptBlock(buf)
			So(buf, ShouldResemble, pattern(BlockSize))
		})

		Convey("buffers below one block are untouched", func() {
			for n := 0; n < BlockSize; n++ {
				buf := pattern(n)
				ShaderTEA.EncryptBuffer(buf)
				So(buf, ShouldResemble, pattern(n))
				ShaderTEA.DecryptBuffer(buf)
				So(buf, ShouldResemble, pattern(n))
			}
		})

		Convey("buffers round-trip at every length", func() {
			for n := BlockSize; n < 5*BlockSize; n++ {
				buf := pattern(n)
				ShaderTEA.EncryptBuffer(buf)
				So(bytes.Equal(buf, pattern(n)), ShouldBeFalse)
				ShaderTEA.DecryptBuffer(buf)
				So(buf, ShouldResemble, pattern(n))
			}
		})

		Convey("block-aligned buffers encrypt blockwise", func() {
			buf := pattern(2 * BlockSize)
			ShaderTEA.EncryptBuffer(buf)

			want := pattern(2 * BlockSize)
			ShaderTEA.EncryptBlock(want)
			ShaderTEA.EncryptBlock(want[BlockSize:])
			So(buf, ShouldResemble, want)
		})

		Convey("a ragged tail is a second pass over the final block", func() {
			const n = BlockSize + 4
			buf := pattern(n)
			ShaderTEA.EncryptBuffer(buf)

			want := pattern(n)
			ShaderTEA.EncryptBlock(want)
			ShaderTEA.EncryptBlock(want[n-BlockSize:])
			So(buf, ShouldResemble, want)
		})

		Convey("decrypting front-first loses the ragged tail", func() {
			// The tail block must be undone before the front pass; the
			// reverse order destroys the overlapped bytes.
			const n = BlockSize + 4
			buf := pattern(n)
			ShaderTEA.EncryptBuffer(buf)
			ShaderTEA.DecryptBlock(buf)
			ShaderTEA.DecryptBlock(buf[n-BlockSize:])
			So(bytes.Equal(buf, pattern(n)), ShouldBeFalse)
		})
	})
}
