// Package tp decodes IEX HIST capture files framed with the IEX Transport
// Protocol.
//
// A capture is a run of segments. Each segment starts with a 12-byte header
// prefix (version, reserved, protocol ID, channel ID, session ID) followed
// by a 28-byte trailer (payload length, message count, stream offset, first
// sequence number, send time). The segment body is message frames: an int16
// wire length, a one-byte type tag, and the payload. All integers are
// little-endian.
//
// The Parser locks onto segment boundaries by scanning for the header
// prefix, then yields one typed message per frame:
//
//	p, err := tp.Open("20180127_IEXTP1_TOPS1.6.pcap.gz")
//	if err != nil { ... }
//	defer p.Close()
//	for {
//		msg, err := p.Next()
//		if err == io.EOF {
//			break
//		}
//		...
//	}
//
// End of stream is io.EOF and ends iteration cleanly. Malformed input
// (unknown type tag, payload width mismatch, session ID change mid-file)
// surfaces as *ProtocolError and is fatal to the parse.
package tp
