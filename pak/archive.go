// Copyright 2024 The h1-shader-packager Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package pak reads and writes the engine's encrypted shader archives.
//
// An Archive is a single-buffer codec: it holds at most one loaded or
// assembled archive at a time, fully materialized in memory. Load (or
// ReadFile) decrypts and validates file bytes; LoadMembers assembles a new
// archive from member payloads; Flush (or FlushFile) encrypts the held
// buffer, emits it, and empties the codec, like flushing a write-once
// buffered resource.
package pak

import (
	"os"

	"go.chromium.org/luci/common/errors"

	"github.com/saddam1999/h1-shader-packager/pak/pakdata"
)

// MinArchiveSize is the smallest byte count Load accepts.
//
// Strictly a file of TrailerSize bytes could encode a zero-member archive,
// but the engine requires the archive to be non-empty, even if only by one
// byte, so the historical threshold of 34 is preserved as a compatibility
// requirement.
const MinArchiveSize = pakdata.TrailerSize + 1

// Archive is the shader archive codec. The zero value is an empty codec,
// ready for Load or LoadMembers.
//
// An Archive owns its buffer exclusively. Payload slices yielded by
// Enumerate or ForEach are windows into that buffer and must not be
// retained past the Archive's next Load, LoadMembers or Flush.
// Concurrent use of one Archive is not supported; independent archives
// want independent Archive values.
type Archive struct {
	// filebuf owns the whole decrypted archive, trailer included.
	filebuf []byte
	// data is the prefix of filebuf holding the chunk region.
	data []byte
}

// Loaded reports whether the codec currently holds an archive.
func (a *Archive) Loaded() bool {
	return a.filebuf != nil
}

// Load decrypts and validates buf as a complete archive file and takes
// ownership of it. buf is decrypted in place; the caller must not touch it
// again.
//
// On any validation failure Load returns an error wrapping ErrCorrupt and
// leaves the codec's prior contents (if any) untouched.
func (a *Archive) Load(buf []byte) error {
	if len(buf) < MinArchiveSize {
		return errors.Annotate(ErrCorrupt,
			"%d byte file, need at least %d", len(buf), MinArchiveSize).Err()
	}

	data := buf[:len(buf)-pakdata.TrailerSize]
	trailer := buf[len(buf)-pakdata.TrailerSize:]

	pakdata.ShaderTEA.DecryptBuffer(buf)

	// The stored digest is compared as a string, NUL included, never by
	// decoding the hex: the trailer is string-exact by contract with the
	// engine's loader.
	computed := pakdata.Digest(data)
	stored := string(trailer[:pakdata.DigestLen])
	if computed != stored || trailer[pakdata.DigestLen] != 0 {
		return errors.Annotate(ErrCorrupt,
			"digest mismatch: computed %s, stored %q", computed, stored).Err()
	}

	if n, ok := pakdata.Validate(data); !ok {
		return errors.Annotate(ErrCorrupt, "malformed chunk %d", n+1).Err()
	}

	a.filebuf = buf
	a.data = data
	return nil
}

// ReadFile reads the archive at path and Loads it. An unreadable file
// yields an error wrapping ErrCouldNotOpen; validation failures come from
// Load and wrap ErrCorrupt.
func (a *Archive) ReadFile(path string) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return errors.Annotate(ErrCouldNotOpen, "reading %q: %s", path, err).Err()
	}
	return errors.Annotate(a.Load(buf), "loading %q", path).Err()
}

// LoadMembers assembles a fresh archive from members, in order, replacing
// whatever the codec held. Each member becomes one chunk; members may be
// empty. The digest trailer is computed here, but the buffer is not
// encrypted until Flush.
func (a *Archive) LoadMembers(members [][]byte) {
	total := pakdata.TrailerSize
	for _, m := range members {
		total += pakdata.HeaderSize + len(m)
	}

	buf := make([]byte, 0, total)
	for _, m := range members {
		buf = pakdata.AppendChunk(buf, m)
	}
	buf = pakdata.AppendTrailer(buf)

	a.filebuf = buf
	a.data = buf[:len(buf)-pakdata.TrailerSize]
}

// Flush encrypts the held archive and returns its bytes, emptying the
// codec. The returned buffer is the codec's own, encrypted in place;
// ownership passes to the caller.
//
// Flush fails with ErrNoData if nothing is loaded or the chunk region
// cannot hold even one chunk header, in which case the codec is unchanged.
func (a *Archive) Flush() ([]byte, error) {
	if len(a.data) < pakdata.HeaderSize {
		return nil, ErrNoData
	}

	buf := a.filebuf
	pakdata.ShaderTEA.EncryptBuffer(buf)
	*a = Archive{}
	return buf, nil
}

// FlushFile encrypts the held archive and writes it to path, emptying the
// codec.
//
// The destination is opened before anything is encrypted, so an
// ErrCouldNotOpen failure leaves the codec loaded and untouched. Once the
// file is open the buffer is consumed: a late write error still empties
// the codec.
func (a *Archive) FlushFile(path string) error {
	if len(a.data) < pakdata.HeaderSize {
		return ErrNoData
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Annotate(ErrCouldNotOpen, "creating %q: %s", path, err).Err()
	}

	buf, _ := a.Flush()
	_, werr := f.Write(buf)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return errors.Annotate(ErrCouldNotOpen, "writing %q: %s", path, werr).Err()
	}
	return nil
}

// Enumerate returns a fresh cursor over the archive's members. Restart
// a traversal by calling Enumerate again; an Enumerator is not resumable
// mid-traversal across codec state changes.
//
// On an empty codec the cursor is immediately at its end.
func (a *Archive) Enumerate() pakdata.Enumerator {
	return pakdata.NewEnumerator(a.data)
}

// ForEach invokes cb on each member's payload, in archive order.
//
// ForEach never returns an error by itself, but forwards the error
// returned by cb (if any). Returning an error from cb immediately stops
// the loop, so callers can halt early with a sentinel of their own and
// distinguish "stopped by choice" from an exhausted traversal (nil).
func (a *Archive) ForEach(cb func(member []byte) error) error {
	for e := a.Enumerate(); !e.Finished(); e.Advance() {
		if err := cb(e.Data()); err != nil {
			return err
		}
	}
	return nil
}
