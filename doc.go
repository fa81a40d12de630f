// Copyright 2024 The h1-shader-packager Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package shaderpackager implements the container format and cipher used by
// a legacy FPS engine for its shader asset archives (effect collections and
// vertex shader collections). The format is write-once and trusting: it has
// no directory of names, no per-member metadata and no compression; member
// identity is purely positional, fixed by tables in the consuming engine.
//
// An archive has a very simple layout. All multi-byte integers are
// little-endian:
//   - zero or more members, each a uint32 payload size followed by that many
//     bytes of payload. The next member starts immediately after.
//   - a 33 byte trailer: the MD5 digest of every byte before the trailer,
//     as 32 lowercase hex characters, followed by a single NUL. The engine
//     reads the stored digest as a C string, so the NUL is load-bearing.
//
// The whole file (members and trailer alike) is then encrypted in place
// with the Tiny Encryption Algorithm under the fixed key
// {0x3FFFFFDD, 0x7FC3, 0xE5, 0x3FFFEF}. Because archives are almost never
// a multiple of the 8-byte TEA block, the final partial block is folded
// into a second encryption pass over the last whole block instead of being
// padded; see pak/pakdata for the exact scheme.
//
// The pak package holds the archive codec, pak/pakdata the low-level
// format pieces (cipher, member framing, digest trailer), and
// cmd/shaderpak a pack/unpack command line tool.
package shaderpackager
