package png

import "io"

// Scanner reads the chunks of a PNG stream one at a time.
// It is finite and cannot be restarted once r has been consumed.
//
//	s := png.NewScanner(r)
//	for s.Scan() {
//		fmt.Println(s.Chunk())
//	}
//	if err := s.Err(); err != nil {
//		...
//	}
type Scanner struct {
	reader io.Reader
	offset int64
	chunk  *Chunk
	err    error
	done   bool
}

// NewScanner creates a new Scanner reading from r.
// The signature is checked by the first call to Scan.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{reader: r}
}

// Scan advances to the next chunk. It returns false at IEND, at the
// end of the stream, or on the first error.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}
	s.chunk = nil

	if s.offset == 0 {
		if err := readSignature(s.reader); err != nil {
			return s.fail(err)
		}
		s.offset = int64(len(Signature))
	}

	c, err := ReadChunk(s.reader)
	if err == io.EOF {
		s.done = true
		return false
	}
	if err != nil {
		return s.fail(err)
	}

	// chunk = length, type, data, CRC
	c.Offset = s.offset
	s.offset += c.Size()
	s.chunk = c

	if c.Type == TypeIEND {
		// IEND is returned, the next Scan stops
		s.done = true
	}
	return true
}

func (s *Scanner) fail(err error) bool {
	s.err = err
	s.done = true
	return false
}

// Chunk returns the chunk read by the last Scan.
func (s *Scanner) Chunk() *Chunk {
	return s.chunk
}

// Offset returns the number of bytes consumed so far.
func (s *Scanner) Offset() int64 {
	return s.offset
}

// Err returns the first error hit by Scan. A stream that ends at a chunk
// boundary is not an error.
func (s *Scanner) Err() error {
	return s.err
}
