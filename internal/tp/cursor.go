package tp

import "io"

// cursor owns the byte stream for one parser and tracks total consumption.
// Short reads never escape: either the full count is returned or io.EOF.
type cursor struct {
	r    io.Reader
	read int64
}

func newCursor(r io.Reader) *cursor {
	return &cursor{r: r}
}

// ReadExact returns exactly n bytes, or io.EOF if fewer remain.
func (c *cursor) ReadExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	m, err := io.ReadFull(c.r, buf)
	c.read += int64(m)
	if err != nil {
		if err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return nil, err
	}
	return buf, nil
}

// ReadByte returns the next byte, or io.EOF at end of stream. Read errors
// other than end of stream pass through unchanged.
func (c *cursor) ReadByte() (byte, error) {
	var one [1]byte
	m, err := io.ReadFull(c.r, one[:])
	c.read += int64(m)
	if err != nil {
		if err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return 0, err
	}
	return one[0], nil
}

// BytesRead is the total number of bytes consumed through this cursor.
func (c *cursor) BytesRead() int64 { return c.read }
