package tp

import (
	"encoding/binary"
	"io"
)

// frame is one length-prefixed message within a segment.
type frame struct {
	tag     byte
	payload []byte
}

// readFrame reads the next message frame from the active segment and
// decrements its remaining count. Returns io.EOF if the segment is already
// drained; the caller must seek the next header before retrying.
func (p *Parser) readFrame() (frame, error) {
	if p.messagesLeft == 0 {
		return frame{}, io.EOF
	}

	lenBuf, err := p.cur.ReadExact(2)
	if err != nil {
		return frame{}, err
	}
	wireLen := int16(binary.LittleEndian.Uint16(lenBuf))
	p.messagesLeft--
	if wireLen < 1 {
		return frame{}, protocolErrorf("invalid message frame length %d", wireLen)
	}

	tagBuf, err := p.cur.ReadExact(1)
	if err != nil {
		return frame{}, err
	}
	payload, err := p.cur.ReadExact(int(wireLen) - 1)
	if err != nil {
		return frame{}, err
	}
	return frame{tag: tagBuf[0], payload: payload}, nil
}
