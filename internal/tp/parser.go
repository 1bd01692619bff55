package tp

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rickgao/iexhist/internal/model"
)

// Parser reads one HIST capture sequentially and yields typed messages.
// A Parser exclusively owns its byte source for its lifetime and is not
// safe for concurrent use.
type Parser struct {
	cur     *cursor
	version Version
	feed    Feed
	decoder *Decoder

	// prefix is the full 12-byte header prefix, session ID included,
	// pinned at construction for the lifetime of the file.
	prefix    [prefixLen]byte
	sessionID [4]byte

	header       *SegmentHeader
	messagesLeft int

	closer io.Closer
	closed bool
}

// Option configures a Parser at construction.
type Option func(*parserSettings)

type parserSettings struct {
	feed       Feed
	feedSet    bool
	version    Version
	versionSet bool
}

// WithFeed selects the recorded feed kind. Defaults to TOPS.
func WithFeed(f Feed) Option {
	return func(s *parserSettings) {
		s.feed = f
		s.feedSet = true
	}
}

// WithVersion selects the protocol revision. Defaults to 1.6 for TOPS and
// 1.0 for DEEP.
func WithVersion(v Version) Option {
	return func(s *parserSettings) {
		s.version = v
		s.versionSet = true
	}
}

func resolveSettings(opts []Option) (Feed, Version, error) {
	s := parserSettings{feed: FeedTOPS, version: Version16}
	for _, opt := range opts {
		opt(&s)
	}

	if s.feedSet && !s.versionSet {
		if s.feed == FeedDEEP {
			s.version = Version10
		}
	}
	if s.versionSet && !s.feedSet {
		if s.version == Version10 {
			s.feed = FeedDEEP
		}
	}

	switch s.feed {
	case FeedTOPS:
		if s.version != Version15 && s.version != Version16 {
			return 0, 0, invalidArgumentf("feed TOPS supports versions 1.5 and 1.6, got %s", s.version)
		}
	case FeedDEEP:
		if s.version != Version10 {
			return 0, 0, invalidArgumentf("feed DEEP supports version 1.0 only, got %s", s.version)
		}
	default:
		return 0, 0, invalidArgumentf("unknown feed %d", int(s.feed))
	}
	return s.feed, s.version, nil
}

// NewParser constructs a parser over an already-open byte stream. The
// session ID is discovered immediately with a one-time pre-pass; a stream
// that never presents a header prefix fails here with *ProtocolError.
func NewParser(r io.Reader, opts ...Option) (*Parser, error) {
	feed, version, err := resolveSettings(opts)
	if err != nil {
		return nil, err
	}

	decoder, err := NewDecoder(version)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReaderSize(r, 64*1024)
	base := basePrefix(version)
	session, consumed, err := discoverSession(br, base)
	if err != nil {
		return nil, err
	}

	p := &Parser{
		// Replay the pre-pass bytes so the main scan and the byte
		// counter both start from the beginning of the capture.
		cur:       newCursor(io.MultiReader(bytes.NewReader(consumed), br)),
		version:   version,
		feed:      feed,
		decoder:   decoder,
		sessionID: session,
	}
	copy(p.prefix[:basePrefixLen], base)
	copy(p.prefix[basePrefixLen:], session[:])
	return p, nil
}

// Open opens a capture file and constructs a parser over it. Files ending
// in .gz are decompressed transparently. The file is released by Close, or
// automatically once iteration ends in io.EOF or a fatal error.
func Open(path string, opts ...Option) (*Parser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open capture: %w", err)
	}

	var src io.Reader = f
	closer := io.Closer(f)
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(bufio.NewReaderSize(f, 64*1024))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open gzip capture: %w", err)
		}
		src = zr
		closer = &stackedCloser{first: zr, second: f}
	}

	p, err := NewParser(src, opts...)
	if err != nil {
		closer.Close()
		return nil, err
	}
	p.closer = closer
	return p, nil
}

// stackedCloser closes a decompression layer before the file under it.
type stackedCloser struct {
	first  io.Closer
	second io.Closer
}

func (c *stackedCloser) Close() error {
	err := c.first.Close()
	if err2 := c.second.Close(); err == nil {
		err = err2
	}
	return err
}

// SessionID is the 4-byte session identifier discovered at construction.
func (p *Parser) SessionID() [4]byte { return p.sessionID }

// Version is the protocol version the parser decodes.
func (p *Parser) Version() Version { return p.version }

// Feed is the feed kind the parser decodes.
func (p *Parser) Feed() Feed { return p.feed }

// BytesRead is the total number of capture bytes consumed so far.
func (p *Parser) BytesRead() int64 { return p.cur.BytesRead() }

// Segment returns a copy of the active segment header, or false if no
// segment is active yet.
func (p *Parser) Segment() (SegmentHeader, bool) {
	if p.header == nil {
		return SegmentHeader{}, false
	}
	return *p.header, true
}

// Next returns the next decoded message. With no arguments every message is
// returned; with an allow-set only messages of those kinds are returned,
// though every skipped frame is still fully read and counted. io.EOF means
// clean end of capture.
func (p *Parser) Next(allowed ...model.Kind) (model.Message, error) {
	var allow map[model.Kind]bool
	if len(allowed) > 0 {
		allow = make(map[model.Kind]bool, len(allowed))
		for _, k := range allowed {
			if !k.Valid() {
				return nil, invalidArgumentf("unknown message kind %d in allow-set", int(k))
			}
			allow[k] = true
		}
	}

	for {
		for p.messagesLeft == 0 {
			if err := p.seekHeader(); err != nil {
				return nil, p.fail(err)
			}
		}

		fr, err := p.readFrame()
		if err != nil {
			return nil, p.fail(err)
		}
		msg, err := p.decoder.Decode(fr.tag, fr.payload)
		if err != nil {
			return nil, p.fail(err)
		}
		if allow != nil && !allow[msg.Kind()] {
			continue
		}
		return msg, nil
	}
}

// fail releases the byte source on terminal conditions and passes the error
// through. Iteration cannot resume after io.EOF or a protocol error.
func (p *Parser) fail(err error) error {
	p.Close()
	return err
}

// Close releases the underlying byte source. Safe to call more than once,
// and after iteration has already ended.
func (p *Parser) Close() error {
	if p.closed || p.closer == nil {
		p.closed = true
		return nil
	}
	p.closed = true
	return p.closer.Close()
}
