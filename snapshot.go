package roar64

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec selects the compression wrapped around a snapshot.
type Codec uint8

const (
	CodecNone Codec = iota
	CodecLZ4
	CodecZstd
)

// WriteSnapshot emits a one-byte codec tag followed by the serialized
// bitmap compressed with that codec. Snapshots exist for handing the
// bitmap to storage; the plain WriteTo remains the interchange format.
func (b *Bitmap) WriteSnapshot(w io.Writer, codec Codec) error {
	if _, err := w.Write([]byte{byte(codec)}); err != nil {
		return err
	}
	switch codec {
	case CodecNone:
		_, err := b.WriteTo(w)
		return err
	case CodecLZ4:
		zw := lz4.NewWriter(w)
		if _, err := b.WriteTo(zw); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	case CodecZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return err
		}
		if _, err := b.WriteTo(zw); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	}
	return fmt.Errorf("%w: unknown snapshot codec %d", ErrFormat, codec)
}

// ReadSnapshot overwrites the bitmap with a snapshot written by
// WriteSnapshot. An unknown codec tag is ErrFormat.
func (b *Bitmap) ReadSnapshot(r io.Reader) error {
	var tag [1]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		return err
	}
	switch Codec(tag[0]) {
	case CodecNone:
		_, err := b.ReadFrom(r)
		return err
	case CodecLZ4:
		_, err := b.ReadFrom(lz4.NewReader(r))
		return err
	case CodecZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return err
		}
		defer zr.Close()
		_, err = b.ReadFrom(zr)
		return err
	}
	return fmt.Errorf("%w: unknown snapshot codec %d", ErrFormat, tag[0])
}
