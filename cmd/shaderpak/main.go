// Copyright 2024 The h1-shader-packager Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Command shaderpak packs and unpacks the engine's encrypted shader
// archives.
//
// The engine maps archive members to shader names with fixed positional
// tables, so member order is everything. This tool keeps order with
// zero-padded ordinal filenames instead of shipping those tables: unpack
// writes members as 000.fx, 001.fx, ... and pack reads the same ordinals
// back until one is missing.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/common/logging"
	"go.chromium.org/luci/common/logging/gologger"

	"github.com/saddam1999/h1-shader-packager/pak"
)

var (
	dir = pflag.StringP("dir", "d", ".", "directory holding the member files")
	ext = pflag.StringP("ext", "x", "fx", "member file extension (fx or vsh)")
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage:
  %[1]s unpack ARCHIVE [-d DIR] [-x EXT]
      Validate ARCHIVE and write each member to DIR/NNN.EXT in order.
  %[1]s pack ARCHIVE [-d DIR] [-x EXT]
      Read DIR/000.EXT, DIR/001.EXT, ... and pack them into ARCHIVE.

`, filepath.Base(os.Args[0]))
	pflag.PrintDefaults()
}

func memberPath(i int) string {
	return filepath.Join(*dir, fmt.Sprintf("%03d.%s", i, *ext))
}

func unpack(ctx context.Context, file string) error {
	ar := &pak.Archive{}
	if err := ar.ReadFile(file); err != nil {
		return err
	}

	i := 0
	err := ar.ForEach(func(member []byte) error {
		name := memberPath(i)
		if err := os.WriteFile(name, member, 0666); err != nil {
			return errors.Annotate(err, "writing member %d", i).Err()
		}
		i++
		return nil
	})
	if err != nil {
		return err
	}

	logging.Infof(ctx, "unpacked %d members into %s", i, *dir)
	return nil
}

func pack(ctx context.Context, file string) error {
	var members [][]byte
	for i := 0; ; i++ {
		buf, err := os.ReadFile(memberPath(i))
		if os.IsNotExist(err) {
			break
		}
		if err != nil {
			return errors.Annotate(err, "reading member %d", i).Err()
		}
		members = append(members, buf)
	}
	if len(members) == 0 {
		return errors.Reason("no member files found in %q", *dir).Err()
	}

	ar := &pak.Archive{}
	ar.LoadMembers(members)
	if err := ar.FlushFile(file); err != nil {
		return err
	}

	logging.Infof(ctx, "packed %d members into %s", len(members), file)
	return nil
}

func main() {
	pflag.Usage = usage
	pflag.Parse()

	if pflag.NArg() != 2 {
		usage()
		os.Exit(2)
	}

	ctx := gologger.StdConfig.Use(context.Background())
	mode, file := pflag.Arg(0), pflag.Arg(1)

	var err error
	switch mode {
	case "unpack", "u":
		err = unpack(ctx, file)
	case "pack", "p":
		err = pack(ctx, file)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		logging.Errorf(ctx, "operation failed: %s", err)
		os.Exit(1)
	}
}
