package store

// Package store persists one parse session's outputs as a single
// compressed container file and reconstructs them on load.
//
// The container is a short magic header followed by a zstd stream of the
// gob encoding of rinex.Result. Load(Save(x)) is value-equal to x in every
// field; NaN cells survive because gob transmits float bit patterns.

import (
	"bufio"
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"rinex-ng/internal/rinex"
)

// magic identifies the container format; the trailing byte is the format
// version.
var magic = []byte("RNXNG\x00\x01")

// Write serializes res to w.
func Write(w io.Writer, res *rinex.Result) error {
	if res == nil {
		return fmt.Errorf("store: nil result")
	}
	if _, err := w.Write(magic); err != nil {
		return err
	}
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(zw).Encode(res); err != nil {
		_ = zw.Close()
		return fmt.Errorf("store: encode: %w", err)
	}
	return zw.Close()
}

// Read reconstructs a result from r.
func Read(r io.Reader) (*rinex.Result, error) {
	got := make([]byte, len(magic))
	if _, err := io.ReadFull(r, got); err != nil {
		return nil, fmt.Errorf("store: short container: %w", err)
	}
	if !bytes.Equal(got, magic) {
		return nil, fmt.Errorf("store: not a container file (bad magic %q)", got)
	}
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var res rinex.Result
	if err := gob.NewDecoder(zr).Decode(&res); err != nil {
		return nil, fmt.Errorf("store: decode: %w", err)
	}
	return &res, nil
}

// Save writes res to a container file at path.
func Save(path string, res *rinex.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(f, 64*1024)
	if err := Write(bw, res); err != nil {
		_ = f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Load reads a container file written by Save.
func Load(path string) (*rinex.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(bufio.NewReaderSize(f, 64*1024))
}
