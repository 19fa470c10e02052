package roar64

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/aglyzov/roar64/art"
	"github.com/aglyzov/roar64/container"
)

// The serialized layout is a u32 container count followed by each
// container as its 6-byte big-endian high key, a kind tag and the
// form-specific body, in ascending high-key order. Integers are
// little-endian except the high keys. There is no magic header and no
// checksum; the format is only promised to round-trip with this
// version.

// SerializedSize returns the number of bytes WriteTo produces.
func (b *Bitmap) SerializedSize() int {
	size := 4
	for it := b.index.Iterator(); ; {
		_, cv, ok := it.Next()
		if !ok {
			break
		}
		size += art.KeyLen + cv.(container.Container).SerializedSize()
	}
	return size
}

// WriteTo serializes the bitmap. The bitmap is not modified; consider
// RunOptimize first for a smaller image. On error the output may hold
// a truncated prefix.
func (b *Bitmap) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	var head [4]byte
	binary.LittleEndian.PutUint32(head[:], uint32(b.index.Size()))
	if _, err := cw.Write(head[:]); err != nil {
		return cw.n, err
	}
	for it := b.index.Iterator(); ; {
		key, cv, ok := it.Next()
		if !ok {
			break
		}
		if _, err := cw.Write(key[:]); err != nil {
			return cw.n, err
		}
		if err := container.Write(cw, cv.(container.Container)); err != nil {
			return cw.n, err
		}
	}
	return cw.n, nil
}

// ReadFrom overwrites the bitmap with a serialized image. Structural
// violations surface as ErrFormat; a failed read leaves the bitmap
// unchanged.
func (b *Bitmap) ReadFrom(r io.Reader) (int64, error) {
	index := art.New()
	cr := &countingReader{r: r}
	var head [4]byte
	if _, err := io.ReadFull(cr, head[:]); err != nil {
		return cr.n, truncated(err)
	}
	count := binary.LittleEndian.Uint32(head[:])
	prev := art.Key{}
	for i := uint32(0); i < count; i++ {
		var key art.Key
		if _, err := io.ReadFull(cr, key[:]); err != nil {
			return cr.n, truncated(err)
		}
		if i > 0 && art.Compare(key, prev) <= 0 {
			return cr.n, fmt.Errorf("%w: high keys not ascending", ErrFormat)
		}
		prev = key
		c, err := container.Read(cr)
		if err != nil {
			return cr.n, truncated(err)
		}
		if c.Cardinality() == 0 {
			return cr.n, fmt.Errorf("%w: empty container", ErrFormat)
		}
		index.Insert(key, c)
	}
	b.index = index
	return cr.n, nil
}

// ToBytes serializes the bitmap into a fresh buffer.
func (b *Bitmap) ToBytes() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(b.SerializedSize())
	if _, err := b.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FromBytes overwrites the bitmap with the serialized image in data.
func (b *Bitmap) FromBytes(data []byte) error {
	_, err := b.ReadFrom(bytes.NewReader(data))
	return err
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: truncated stream", ErrFormat)
	}
	return err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

type countingReader struct {
	r io.Reader
	n int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.n += int64(n)
	return n, err
}
