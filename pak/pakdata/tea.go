// Copyright 2024 The h1-shader-packager Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package pakdata

import "encoding/binary"

// BlockSize is the number of bytes in one TEA block: two 32-bit words.
const BlockSize = 8

const teaDelta = 0x9E3779B9 // golden-ratio constant from the TEA paper
const teaRounds = 32

// teaDecryptSum is teaDelta * teaRounds mod 2^32, the accumulator value
// encryption ends on.
const teaDecryptSum = 0xC6EF3720

// TEA implements the Tiny Encryption Algorithm over 8 byte blocks, reading
// and writing the two words of each block in little-endian order.
//
// See https://en.wikipedia.org/wiki/Tiny_Encryption_Algorithm.
type TEA struct {
	Key [4]uint32
}

// ShaderTEA is the cipher the engine uses for its shader archives.
var ShaderTEA = TEA{Key: [4]uint32{0x3FFFFFDD, 0x7FC3, 0xE5, 0x3FFFEF}}

// EncryptBlock encrypts the first BlockSize bytes of b in place. It always
// succeeds; b must be at least BlockSize bytes long.
func (t TEA) EncryptBlock(b []byte) {
	v0 := binary.LittleEndian.Uint32(b)
	v1 := binary.LittleEndian.Uint32(b[4:])

	k0, k1, k2, k3 := t.Key[0], t.Key[1], t.Key[2], t.Key[3]

	sum := uint32(0)
	for i := 0; i < teaRounds; i++ {
		sum += teaDelta
		v0 += ((v1 << 4) + k0) ^ (v1 + sum) ^ ((v1 >> 5) + k1)
		v1 += ((v0 << 4) + k2) ^ (v0 + sum) ^ ((v0 >> 5) + k3)
	}

	binary.LittleEndian.PutUint32(b, v0)
	binary.LittleEndian.PutUint32(b[4:], v1)
}

// DecryptBlock decrypts the first BlockSize bytes of b in place, exactly
// reversing EncryptBlock's round sequence.
func (t TEA) DecryptBlock(b []byte) {
	v0 := binary.LittleEndian.Uint32(b)
	v1 := binary.LittleEndian.Uint32(b[4:])

	k0, k1, k2, k3 := t.Key[0], t.Key[1], t.Key[2], t.Key[3]

	sum := uint32(teaDecryptSum)
	for i := 0; i < teaRounds; i++ {
		v1 -= ((v0 << 4) + k2) ^ (v0 + sum) ^ ((v0 >> 5) + k3)
		v0 -= ((v1 << 4) + k0) ^ (v1 + sum) ^ ((v1 >> 5) + k1)
		sum -= teaDelta
	}

	binary.LittleEndian.PutUint32(b, v0)
	binary.LittleEndian.PutUint32(b[4:], v1)
}

// EncryptBuffer encrypts buf in place.
//
// Buffers shorter than one block are left untouched; this is a defined
// no-op, not an error. Otherwise every complete block is encrypted front to
// back, and if buf's length is not a multiple of BlockSize, the final full
// block ending at buf's last byte is encrypted a second time. That second
// pass covers the tail bytes along with the already-encrypted end of the
// last complete block, which is how the format handles irregular lengths
// without a padding scheme.
//
// DecryptBuffer is the exact inverse. The two are deliberately written as
// independent procedures: the ordering asymmetry between them is the whole
// trick, and deriving one from the other obscures it.
func (t TEA) EncryptBuffer(buf []byte) {
	n := len(buf)
	if n < BlockSize {
		return
	}

	for off := 0; off < n-n%BlockSize; off += BlockSize {
		t.EncryptBlock(buf[off:])
	}

	if n%BlockSize != 0 {
		t.EncryptBlock(buf[n-BlockSize:])
	}
}

// DecryptBuffer decrypts buf in place, inverting EncryptBuffer.
//
// When a tail remainder exists, the final full block must be decrypted
// before the front-to-back pass: it was the last block encrypted, and
// decrypting the complete blocks first would destroy the overlapped bytes
// needed to recover it.
func (t TEA) DecryptBuffer(buf []byte) {
	n := len(buf)
	if n < BlockSize {
		return
	}

	if n%BlockSize != 0 {
		t.DecryptBlock(buf[n-BlockSize:])
	}

	buf = buf[:n-n%BlockSize]
	for off := 0; off < len(buf); off += BlockSize {
		t.DecryptBlock(buf[off:])
	}
}
