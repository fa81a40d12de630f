// Copyright 2024 The h1-shader-packager Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package pakdata

import "encoding/binary"

// HeaderSize is the size of the uint32 length field that prefixes every
// chunk's payload.
const HeaderSize = 4

// AppendChunk appends payload to dst as one chunk: a little-endian uint32
// payload length followed by the payload bytes.
func AppendChunk(dst, payload []byte) []byte {
	var hdr [HeaderSize]byte
	binary.LittleEndian.PutUint32(hdr[:], uint32(len(payload)))
	dst = append(dst, hdr[:]...)
	return append(dst, payload...)
}

// Enumerator is a cursor over the chunk region of an archive. It holds the
// not-yet-consumed suffix of the region and exposes one chunk at a time.
//
// Enumerators are cheap values: to restart a traversal, make a new one over
// the same region. The zero Enumerator is at its end.
//
// The chunk stream is a linked list flattened into a byte arena, so the
// cursor is just a shrinking slice; there are no pointers to chase.
type Enumerator struct {
	rest []byte
}

// NewEnumerator returns an Enumerator positioned at region's first chunk.
func NewEnumerator(region []byte) Enumerator {
	return Enumerator{rest: region}
}

// AtEnd reports whether every chunk in the region has been consumed.
func (e Enumerator) AtEnd() bool {
	return len(e.rest) == 0
}

// HasError reports whether the chunk at the cursor is structurally
// malformed: either the length field does not fit in the remaining bytes,
// or the declared payload would run past the end of the region.
//
// An Enumerator that is AtEnd has no error.
func (e Enumerator) HasError() bool {
	if e.AtEnd() {
		return false
	}
	if len(e.rest) < HeaderSize {
		return true
	}
	size := binary.LittleEndian.Uint32(e.rest)
	return uint64(size)+HeaderSize > uint64(len(e.rest))
}

// Finished reports whether the Enumerator can make no further progress,
// either because it is AtEnd or because it HasError.
func (e Enumerator) Finished() bool {
	return e.AtEnd() || e.HasError()
}

// Data returns the payload of the chunk at the cursor, with the length
// field skipped, or nil if the Enumerator is Finished.
//
// The returned slice aliases the region the Enumerator was created over.
func (e Enumerator) Data() []byte {
	if e.Finished() {
		return nil
	}
	size := binary.LittleEndian.Uint32(e.rest)
	return e.rest[HeaderSize : HeaderSize+int(size)]
}

// Advance moves the cursor past the current chunk. It does nothing if the
// Enumerator is Finished.
func (e *Enumerator) Advance() {
	if e.Finished() {
		return
	}
	size := binary.LittleEndian.Uint32(e.rest)
	e.rest = e.rest[HeaderSize+int(size):]
}

// Validate walks every chunk in region. It returns the number of chunks
// walked and whether the whole region is well-formed.
//
// When ok is false, n is the count of chunks successfully walked before the
// malformed one, so the offending chunk is the (n+1)th.
func Validate(region []byte) (n int, ok bool) {
	e := NewEnumerator(region)
	for ; !e.Finished(); e.Advance() {
		n++
	}
	return n, !e.HasError()
}
