// Copyright 2024 The h1-shader-packager Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package pakdata

import (
	"crypto/md5"
	"encoding/hex"
)

// DigestLen is the number of hex characters in a stored digest.
const DigestLen = 2 * md5.Size

// TrailerSize is the exact size of an archive's integrity trailer: the hex
// digest plus its NUL terminator. The engine reads the stored digest as
// a C string, so the terminator is part of the format, not padding.
const TrailerSize = DigestLen + 1

// Digest returns the MD5 digest of b as DigestLen lowercase hex
// characters.
//
// MD5 is not here for security; it is the fingerprint the engine's loader
// checks, and the format fixes it.
func Digest(b []byte) string {
	sum := md5.Sum(b)
	return hex.EncodeToString(sum[:])
}

// AppendTrailer appends the TrailerSize byte trailer covering everything
// already in buf, and returns the extended buffer.
func AppendTrailer(buf []byte) []byte {
	d := Digest(buf)
	buf = append(buf, d...)
	return append(buf, 0)
}
