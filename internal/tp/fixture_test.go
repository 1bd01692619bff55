package tp

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/rickgao/iexhist/internal/model"
)

// Synthetic capture fixtures. Frames and segments are assembled with the
// same little-endian layouts the decoder reads, so a fixture exercises the
// full scan -> frame -> decode path.

var testSession = [4]byte{0xDE, 0xAD, 0xBE, 0xEF}

type fixtureWriter struct {
	buf bytes.Buffer
}

func (w *fixtureWriter) u8(v uint8) { w.buf.WriteByte(v) }

func (w *fixtureWriter) char(s string) {
	if len(s) != 1 {
		panic("fixture char must be 1 byte")
	}
	w.buf.WriteString(s)
}

func (w *fixtureWriter) u16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *fixtureWriter) u32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *fixtureWriter) i64(v int64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	w.buf.Write(b[:])
}

// str writes s space-padded to width n, the wire convention for symbols.
func (w *fixtureWriter) str(s string, n int) {
	if len(s) > n {
		panic("fixture string too long")
	}
	w.buf.WriteString(s)
	for i := len(s); i < n; i++ {
		w.buf.WriteByte(' ')
	}
}

func (w *fixtureWriter) pad(n int) {
	for i := 0; i < n; i++ {
		w.buf.WriteByte(0)
	}
}

func (w *fixtureWriter) bytes() []byte { return w.buf.Bytes() }

// encodeFrame wraps a tagged payload in a message frame.
func encodeFrame(tag byte, payload []byte) []byte {
	var w fixtureWriter
	w.u16(uint16(1 + len(payload)))
	w.u8(tag)
	w.buf.Write(payload)
	return w.bytes()
}

// encodeSegment builds prefix + trailer + frames for one segment.
func encodeSegment(version Version, session [4]byte, frames ...[]byte) []byte {
	var w fixtureWriter
	w.buf.Write(basePrefix(version))
	w.buf.Write(session[:])

	payloadLen := 0
	for _, f := range frames {
		payloadLen += len(f)
	}
	w.u16(uint16(payloadLen))        // payload length
	w.u16(uint16(len(frames)))       // message count
	w.i64(int64(payloadLen))         // stream offset (arbitrary for tests)
	w.i64(1)                         // first sequence number
	w.i64(1_541_783_696_000_000_000) // send time

	for _, f := range frames {
		w.buf.Write(f)
	}
	return w.bytes()
}

const testTimestamp = int64(1_541_783_696_572_839_404)

func encodeSystemEvent() []byte {
	var w fixtureWriter
	w.u8('S')
	w.i64(testTimestamp)
	return w.bytes()
}

func encodeQuoteUpdate(symbol string, bidPriceInt, askPriceInt int64) []byte {
	var w fixtureWriter
	w.u8(0)
	w.i64(testTimestamp)
	w.str(symbol, 8)
	w.u32(900)
	w.i64(bidPriceInt)
	w.i64(askPriceInt)
	w.u32(1000)
	return w.bytes()
}

func encodeTradeReport(symbol string, priceInt, tradeID int64) []byte {
	var w fixtureWriter
	w.u8(0)
	w.i64(testTimestamp)
	w.str(symbol, 8)
	w.u32(100)
	w.i64(priceInt)
	w.i64(tradeID)
	return w.bytes()
}

func encodeOfficialPrice(symbol string, priceInt int64) []byte {
	var w fixtureWriter
	w.char("Q")
	w.i64(testTimestamp)
	w.str(symbol, 8)
	w.i64(priceInt)
	return w.bytes()
}

// junk returns n filler bytes that can never partially match a header
// prefix (the prefix starts with 0x01).
func junk(n int) []byte {
	return bytes.Repeat([]byte{0xFF}, n)
}

func mustParser(t *testing.T, capture []byte, opts ...Option) *Parser {
	t.Helper()
	p, err := NewParser(bytes.NewReader(capture), opts...)
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	return p
}

func drainKinds(t *testing.T, p *Parser, allowed ...model.Kind) []model.Kind {
	t.Helper()
	var kinds []model.Kind
	for {
		msg, err := p.Next(allowed...)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				t.Fatalf("Next: %v", err)
			}
			return kinds
		}
		kinds = append(kinds, msg.Kind())
	}
}
