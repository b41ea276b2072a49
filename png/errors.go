package png

import (
	"errors"
	"fmt"
	"io"
)

// A FormatError reports that the input is not a valid PNG.
type FormatError string

func (e FormatError) Error() string { return "png: invalid format: " + string(e) }

// errNotPNG is returned for a bad signature or a missing IHDR.
const errNotPNG = FormatError("not a valid image file")

// ErrUnexpectedEnd means the stream ended inside a chunk record
// or a field was read past the end of a chunk payload.
var ErrUnexpectedEnd = fmt.Errorf("png: unexpected end of input: %w", io.ErrUnexpectedEOF)

func unexpectedEnd(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrUnexpectedEnd
	}
	return err
}
