package png

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/dustin/go-humanize"
)

// Chunk type codes
var (
	TypeIHDR = [4]byte{'I', 'H', 'D', 'R'}
	TypeIEND = [4]byte{'I', 'E', 'N', 'D'}
	TypeSRGB = [4]byte{'s', 'R', 'G', 'B'}
	TypeTEXT = [4]byte{'t', 'E', 'X', 't'}
	TypeGAMA = [4]byte{'g', 'A', 'M', 'A'}
	TypePHYS = [4]byte{'p', 'H', 'Y', 's'}
)

// Flags are the properties encoded in the case of the chunk type letters.
type Flags struct {
	Ancillary  bool
	Public     bool
	reserved   bool
	SafeToCopy bool
}

// ParseFlags reads bit 5 of each type byte. Any 4 bytes are accepted.
func ParseFlags(typ [4]byte) Flags {
	bit := func(b byte) bool { return b&0x20 != 0 }
	return Flags{
		Ancillary:  bit(typ[0]),
		Public:     bit(typ[1]),
		reserved:   bit(typ[2]),
		SafeToCopy: bit(typ[3]),
	}
}

// String makes Flags satisfy the Stringer interface.
func (f Flags) String() string {
	s := []byte("----")
	if f.Ancillary {
		s[0] = 'a'
	}
	if f.Public {
		s[1] = 'p'
	}
	if f.reserved {
		s[2] = 'r'
	}
	if f.SafeToCopy {
		s[3] = 's'
	}
	return string(s)
}

// Chunk is a chunk record of png.
// chunk = length, type, data, CRC
type Chunk struct {
	Length uint32
	Type   [4]byte
	Data   []byte
	CRC    [4]byte
	Flags  Flags

	// Offset of the length field in the stream, set by Scanner.
	Offset int64

	pos int
}

// ReadChunk decodes one chunk record from r.
// The CRC is stored but not checked, see VerifyCRC.
func ReadChunk(r io.Reader) (*Chunk, error) {
	c, err := readChunkHead(r)
	if err != nil {
		return nil, err
	}
	if err := c.readBody(r); err != nil {
		return nil, err
	}
	return c, nil
}

// readChunkHead reads the length and type fields.
// io.EOF is returned as is when r ends exactly at a chunk boundary.
func readChunkHead(r io.Reader) (*Chunk, error) {
	var head [8]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, unexpectedEnd(err)
	}

	c := &Chunk{Length: binary.BigEndian.Uint32(head[0:4])}
	copy(c.Type[:], head[4:8])
	c.Flags = ParseFlags(c.Type)
	return c, nil
}

// readBody reads the data and CRC fields.
func (c *Chunk) readBody(r io.Reader) error {
	var data bytes.Buffer
	if _, err := io.CopyN(&data, r, int64(c.Length)); err != nil {
		return unexpectedEnd(err)
	}
	c.Data = data.Bytes()

	if _, err := io.ReadFull(r, c.CRC[:]); err != nil {
		return unexpectedEnd(err)
	}
	return nil
}

// Name returns the type code as text.
func (c *Chunk) Name() string {
	return string(c.Type[:])
}

// Size is the number of bytes the chunk occupies in the stream.
func (c *Chunk) Size() int64 {
	return 4 + 4 + int64(c.Length) + 4
}

// Read returns the next n bytes of the payload and advances the cursor.
// It does not check bounds: reading past the end of the payload
// returns a shorter slice, or an empty one once the cursor is at the end.
func (c *Chunk) Read(n int) []byte {
	start := c.pos
	c.pos += n
	if start > len(c.Data) {
		start = len(c.Data)
	}
	end := c.pos
	if end > len(c.Data) {
		end = len(c.Data)
	}
	return c.Data[start:end]
}

// Uint32 reads a big-endian uint32 field from the payload.
func (c *Chunk) Uint32() (uint32, error) {
	if len(c.Data)-c.pos < 4 {
		return 0, ErrUnexpectedEnd
	}
	return binary.BigEndian.Uint32(c.Read(4)), nil
}

// Uint8 reads a single byte field from the payload.
func (c *Chunk) Uint8() (uint8, error) {
	if len(c.Data)-c.pos < 1 {
		return 0, ErrUnexpectedEnd
	}
	return c.Read(1)[0], nil
}

// Rewind moves the payload cursor back to the start.
func (c *Chunk) Rewind() {
	c.pos = 0
}

// ComputeCRC calculates the CRC-32 of the type and data.
func (c *Chunk) ComputeCRC() uint32 {
	crc := crc32.NewIEEE()
	crc.Write(c.Type[:])
	crc.Write(c.Data)
	return crc.Sum32()
}

// VerifyCRC reports whether the stored CRC matches the chunk contents.
func (c *Chunk) VerifyCRC() bool {
	return binary.BigEndian.Uint32(c.CRC[:]) == c.ComputeCRC()
}

// String makes Chunk satisfy the Stringer interface.
func (c *Chunk) String() string {
	return fmt.Sprintf("chunk '%s' %s: %08x, %s", c.Name(), c.Flags, c.Offset, humanize.Bytes(uint64(c.Length)))
}

// DumpTo prints the content of Chunk.
func (c *Chunk) DumpTo(w io.Writer) {
	fmt.Fprint(w, c)
	if !c.VerifyCRC() {
		fmt.Fprint(w, " (bad CRC)")
	}

	pos := c.pos
	defer func() { c.pos = pos }()
	c.Rewind()

	switch c.Type {
	case TypeIHDR:
		h, err := parseHeader(c)
		if err != nil || c.Length != 13 {
			fmt.Fprintf(w, ": corrupted!\n")
			return
		}
		fmt.Fprintf(w, ": %v\n", h)
	case TypeSRGB:
		if c.Length != 1 {
			fmt.Fprintf(w, ": corrupted!\n")
			return
		}
		v, _ := c.Uint8()
		fmt.Fprintf(w, ": Rendering intent = %d\n", v)
	case TypeGAMA:
		if c.Length != 4 {
			fmt.Fprintf(w, ": corrupted!\n")
			return
		}
		v, _ := c.Uint32()
		fmt.Fprintf(w, ": Gamma = %d\n", v)
	case TypePHYS:
		if c.Length != 9 {
			fmt.Fprintf(w, ": corrupted!\n")
			return
		}
		x, _ := c.Uint32()
		y, _ := c.Uint32()
		u, _ := c.Uint8()
		fmt.Fprintf(w, ": Pixels per unit = %dx%d, Unit = %d\n", x, y, u)
	case TypeTEXT:
		if c.Length == 0 {
			fmt.Fprintf(w, ": corrupted!\n")
			return
		}
		// keyword, NUL, text
		key, text, _ := bytes.Cut(c.Data, []byte{0})
		fmt.Fprintf(w, ": %s = \"%s\"\n", key, text)
	default:
		fmt.Fprintf(w, "\n")
	}
}
