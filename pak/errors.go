// Copyright 2024 The h1-shader-packager Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package pak

import "go.chromium.org/luci/common/errors"

// These are the failure kinds an Archive operation can report. Each is
// fatal to the attempted operation and to nothing else; there is no retry
// logic anywhere in this package. Match them with errors.Is; the
// annotations wrapped around them carry the diagnostic detail (path,
// digests, chunk index).
var (
	// ErrCouldNotOpen means the underlying byte source or sink was
	// inaccessible.
	ErrCouldNotOpen = errors.New("could not open file")

	// ErrCorrupt means the archive data failed validation: it is too short,
	// its stored digest does not match, or its chunk stream is malformed.
	ErrCorrupt = errors.New("archive data is corrupt")

	// ErrNoData means a flush was attempted with no archive loaded, or with
	// a chunk region too small to hold even one chunk header.
	ErrNoData = errors.New("no data to write")
)
