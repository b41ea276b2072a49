package png

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// Signature is the first 8 bytes of every PNG stream.
var Signature = []byte{137, 80, 78, 71, 13, 10, 26, 10}

// Header is the content of the IHDR chunk.
type Header struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorType         uint8
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   uint8
}

// String makes Header satisfy the Stringer interface.
func (h Header) String() string {
	return fmt.Sprintf("Width = %d, Height = %d, Bit depth = %d, Color type = %d, Compression method = %d, Filter method = %d, Interlace method = %d",
		h.Width, h.Height, h.BitDepth, h.ColorType, h.CompressionMethod, h.FilterMethod, h.InterlaceMethod)
}

// parseHeader reads the IHDR fields from the payload cursor.
// Width and height are required; the 5 trailing bytes are decoded when present.
func parseHeader(c *Chunk) (Header, error) {
	var h Header
	var err error
	if h.Width, err = c.Uint32(); err != nil {
		return h, err
	}
	if h.Height, err = c.Uint32(); err != nil {
		return h, err
	}

	for _, v := range []*uint8{&h.BitDepth, &h.ColorType, &h.CompressionMethod, &h.FilterMethod, &h.InterlaceMethod} {
		b, err := c.Uint8()
		if err != nil {
			break
		}
		*v = b
	}

	return h, nil
}

// File is a struct for the metadata of a PNG file.
type File struct {
	Width  uint32
	Height uint32
	Header Header
}

// Open opens the named file and reads its signature and IHDR chunk.
// The file is closed before Open returns.
func Open(name string) (*File, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("png: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

// Decode reads the signature and the IHDR chunk from r.
// No further chunks are read.
func Decode(r io.Reader) (*File, error) {
	if err := readSignature(r); err != nil {
		return nil, err
	}

	// a first chunk cut inside its length or type cannot be IHDR
	ihdr, err := readChunkHead(r)
	if err == io.EOF || errors.Is(err, ErrUnexpectedEnd) {
		return nil, errNotPNG
	}
	if err != nil {
		return nil, err
	}
	if ihdr.Type != TypeIHDR {
		return nil, errNotPNG
	}
	if err := ihdr.readBody(r); err != nil {
		return nil, err
	}

	h, err := parseHeader(ihdr)
	if err != nil {
		return nil, err
	}

	return &File{Width: h.Width, Height: h.Height, Header: h}, nil
}

func readSignature(r io.Reader) error {
	signature := make([]byte, len(Signature))
	if _, err := io.ReadFull(r, signature); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return errNotPNG
		}
		return err
	}
	if !bytes.Equal(signature, Signature) {
		return errNotPNG
	}
	return nil
}
