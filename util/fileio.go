// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package util contains the path-level IO helpers shared by the annopipe
// stages.
package util

import (
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/klauspost/compress/gzip"
)

// Input is an opened input path. Reads are transparently decompressed when
// the content starts with a gzip or zstd magic number.
type Input struct {
	in     file.File
	reader io.ReadCloser
}

// OpenInput opens the given path for reading.
func OpenInput(ctx context.Context, path string) (*Input, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "open", path)
	}
	reader, _ := compress.NewReader(in.Reader(ctx))
	return &Input{in: in, reader: reader}, nil
}

// Read implements io.Reader.
func (i *Input) Read(p []byte) (int, error) {
	return i.reader.Read(p)
}

// Name returns the path the input was opened with.
func (i *Input) Name() string { return i.in.Name() }

// Close closes the decompressor and the underlying file.
func (i *Input) Close(ctx context.Context) error {
	err := i.reader.Close()
	if e := i.in.Close(ctx); e != nil && err == nil {
		err = e
	}
	if err != nil {
		return errors.E(err, "close", i.in.Name())
	}
	return nil
}

// Output is a created output path. If the path ends in ".gz" the data is
// gzip-compressed on the way out.
type Output struct {
	out file.File
	w   io.Writer
	gz  *gzip.Writer
}

// CreateOutput creates (or truncates) the given path.
func CreateOutput(ctx context.Context, path string) (*Output, error) {
	out, err := file.Create(ctx, path)
	if err != nil {
		return nil, errors.E(err, "create", path)
	}
	o := &Output{out: out, w: out.Writer(ctx)}
	if strings.HasSuffix(path, ".gz") {
		o.gz = gzip.NewWriter(o.w)
		o.w = o.gz
	}
	return o, nil
}

// Write implements io.Writer.
func (o *Output) Write(p []byte) (int, error) {
	return o.w.Write(p)
}

// Name returns the path the output was created with.
func (o *Output) Name() string { return o.out.Name() }

// Close flushes the compressor, if any, and closes the file. The file is
// not guaranteed to be complete until Close returns nil.
func (o *Output) Close(ctx context.Context) error {
	var err error
	if o.gz != nil {
		err = o.gz.Close()
	}
	if e := o.out.Close(ctx); e != nil && err == nil {
		err = e
	}
	if err != nil {
		return errors.E(err, "close", o.out.Name())
	}
	return nil
}

// Transform opens inPath, creates outPath and calls fn with both. Errors from
// fn take precedence over close errors.
func Transform(ctx context.Context, inPath, outPath string, fn func(r io.Reader, w io.Writer) error) (err error) {
	in, err := OpenInput(ctx, inPath)
	if err != nil {
		return err
	}
	defer func() {
		if e := in.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	out, err := CreateOutput(ctx, outPath)
	if err != nil {
		return err
	}
	defer func() {
		if e := out.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	return fn(in, out)
}

// ReadPath opens path and calls fn with its (decompressed) content.
func ReadPath(ctx context.Context, path string, fn func(r io.Reader) error) (err error) {
	in, err := OpenInput(ctx, path)
	if err != nil {
		return err
	}
	defer func() {
		if e := in.Close(ctx); e != nil && err == nil {
			err = e
		}
	}()
	return fn(in)
}
