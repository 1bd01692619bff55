package tp

import (
	"encoding/binary"
	"strings"
	"time"
)

// Fixed Transport Protocol header bytes. These are constants of the
// published TOPS/DEEP specifications; a capture recorded under a different
// transport version or channel will not lock.
const (
	headerVersion  = 0x01
	headerReserved = 0x00
)

var channelID = [4]byte{0x01, 0x00, 0x00, 0x00}

// Feed identifies the recorded feed kind.
type Feed int

const (
	FeedTOPS Feed = iota
	FeedDEEP
)

func (f Feed) String() string {
	switch f {
	case FeedTOPS:
		return "TOPS"
	case FeedDEEP:
		return "DEEP"
	}
	return "Feed(invalid)"
}

// Version identifies the protocol revision of the recorded feed.
type Version int

const (
	Version10 Version = iota // DEEP 1.0
	Version15                // TOPS 1.5
	Version16                // TOPS 1.6
)

func (v Version) String() string {
	switch v {
	case Version10:
		return "1.0"
	case Version15:
		return "1.5"
	case Version16:
		return "1.6"
	}
	return "Version(invalid)"
}

// ParseFeed resolves a feed name ("TOPS" or "DEEP", case-insensitive).
func ParseFeed(s string) (Feed, error) {
	switch {
	case strings.EqualFold(s, "TOPS"):
		return FeedTOPS, nil
	case strings.EqualFold(s, "DEEP"):
		return FeedDEEP, nil
	}
	return 0, invalidArgumentf("unknown feed %q", s)
}

// ParseVersion resolves a protocol version string ("1.0", "1.5" or "1.6").
func ParseVersion(s string) (Version, error) {
	switch s {
	case "1.0":
		return Version10, nil
	case "1.5":
		return Version15, nil
	case "1.6":
		return Version16, nil
	}
	return 0, invalidArgumentf("unknown protocol version %q", s)
}

// protocolIDs maps each supported version to its 2-byte wire identifier.
var protocolIDs = map[Version][2]byte{
	Version15: {0x02, 0x80},
	Version16: {0x03, 0x80},
	Version10: {0x04, 0x80},
}

// prefixLen is the full header prefix: version + reserved + protocol ID +
// channel ID + session ID.
const prefixLen = 12

// basePrefixLen is the session-independent part of the prefix, used for the
// one-time session discovery pre-pass.
const basePrefixLen = 8

// trailerLen is the fixed-size remainder of a segment header that follows
// the prefix.
const trailerLen = 28

// basePrefix builds the 8 session-independent prefix bytes for a version.
func basePrefix(v Version) []byte {
	id := protocolIDs[v]
	p := make([]byte, 0, basePrefixLen)
	p = append(p, headerVersion, headerReserved, id[0], id[1])
	p = append(p, channelID[:]...)
	return p
}

// SegmentHeader is the parsed fixed-size header of one TP segment. A header
// is live while its message count is being drained and is replaced by the
// next successful header seek.
type SegmentHeader struct {
	PayloadLength       int16 // Byte count of the segment body
	MessageCount        int16 // Message frames in this segment
	StreamOffset        int64 // Byte offset of this segment in the feed stream
	FirstSequenceNumber int64 // Sequence number of the first frame
	SendTimeNanos       int64 // Send time, nanoseconds since epoch
}

// SendTime is the segment send time as a UTC instant.
func (h SegmentHeader) SendTime() time.Time {
	return time.Unix(0, h.SendTimeNanos).UTC()
}

func parseTrailer(buf []byte) SegmentHeader {
	return SegmentHeader{
		PayloadLength:       int16(binary.LittleEndian.Uint16(buf[0:2])),
		MessageCount:        int16(binary.LittleEndian.Uint16(buf[2:4])),
		StreamOffset:        int64(binary.LittleEndian.Uint64(buf[4:12])),
		FirstSequenceNumber: int64(binary.LittleEndian.Uint64(buf[12:20])),
		SendTimeNanos:       int64(binary.LittleEndian.Uint64(buf[20:28])),
	}
}
