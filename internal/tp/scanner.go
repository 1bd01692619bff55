package tp

import (
	"fmt"
	"io"
)

// discoverSession scans r one byte at a time for the session-independent
// header prefix and returns the 4 session ID bytes that follow it. Every
// byte consumed, session included, is returned so the caller can replay the
// stream from its start for the main scan. Runs once, at parser
// construction.
func discoverSession(r io.Reader, base []byte) (session [4]byte, consumed []byte, err error) {
	var one [1]byte
	i := 0
	for i < len(base) {
		if _, err := io.ReadFull(r, one[:]); err != nil {
			return session, consumed, protocolErrorf("session ID could not be found in the supplied stream")
		}
		consumed = append(consumed, one[0])
		if one[0] == base[i] {
			i++
		} else {
			i = 0
		}
	}
	if _, err := io.ReadFull(r, session[:]); err != nil {
		return session, consumed, protocolErrorf("session ID could not be found in the supplied stream")
	}
	consumed = append(consumed, session[:]...)
	return session, consumed, nil
}

// seekHeader scans forward for the next full 12-byte header prefix and
// parses the trailer that follows it, replacing the active segment.
//
// The scan is a naive single pass: a mismatched byte resets the partial
// match and is not re-examined. A mismatch inside the session ID bytes,
// after the 8 session-independent bytes have matched, means the session ID
// changed mid-file and is a protocol violation. Inter-segment noise that
// happens to contain the exact 8-byte base prefix trips this check too; a
// real capture places the prefix only at segment boundaries, so the
// collision is accepted. Exhausting the stream mid-scan terminates with
// io.EOF.
func (p *Parser) seekHeader() error {
	i := 0
	for i < prefixLen {
		b, err := p.cur.ReadByte()
		if err != nil {
			return err
		}
		switch {
		case b == p.prefix[i]:
			i++
		case i >= basePrefixLen:
			return &ProtocolError{Reason: fmt.Sprintf(
				"session ID mismatch at capture offset %d: expected %02x at prefix byte %d, found %02x",
				p.cur.BytesRead()-1, p.prefix[i], i, b)}
		default:
			i = 0
		}
	}

	buf, err := p.cur.ReadExact(trailerLen)
	if err != nil {
		return err
	}
	h := parseTrailer(buf)
	p.header = &h
	p.messagesLeft = int(h.MessageCount)
	return nil
}
