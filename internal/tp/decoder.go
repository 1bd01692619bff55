package tp

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/rickgao/iexhist/internal/model"
)

// Decoder turns tagged message payloads into typed records for one protocol
// version. It is immutable after construction.
type Decoder struct {
	version Version
	specs   map[byte]DecodeSpec
}

// NewDecoder returns the decoder for v. Fails before any decoding if v is
// not a supported protocol version.
func NewDecoder(v Version) (*Decoder, error) {
	specs, ok := registry[v]
	if !ok {
		return nil, invalidArgumentf("unsupported protocol version %d", int(v))
	}
	return &Decoder{version: v, specs: specs}, nil
}

// Decode resolves tag against the version's registry, unpacks payload
// according to the resolved layout and constructs the typed record. An
// unregistered tag or a payload whose length differs from the layout width
// is a protocol error.
func (d *Decoder) Decode(tag byte, payload []byte) (model.Message, error) {
	spec, ok := d.specs[tag]
	if !ok {
		return nil, &ProtocolError{
			Reason: "unknown message type for protocol version " + d.version.String(),
			Tag:    tag,
		}
	}
	if want := spec.Width(); len(payload) != want {
		return nil, &ProtocolError{
			Reason: fmt.Sprintf("payload length mismatch: got %d bytes, layout requires %d", len(payload), want),
			Tag:    tag,
		}
	}
	r := &fieldReader{buf: payload}
	return buildMessage(spec.Kind, r), nil
}

// fieldReader walks a payload whose total width has already been validated,
// so the individual reads cannot run out of bytes.
type fieldReader struct {
	buf []byte
	off int
}

func (r *fieldReader) u8() uint8 {
	v := r.buf[r.off]
	r.off++
	return v
}

func (r *fieldReader) u32() uint32 {
	v := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v
}

func (r *fieldReader) i64() int64 {
	v := int64(binary.LittleEndian.Uint64(r.buf[r.off:]))
	r.off += 8
	return v
}

func (r *fieldReader) char() string {
	v := string(r.buf[r.off : r.off+1])
	r.off++
	return v
}

func (r *fieldReader) str(n int) string {
	v := strings.TrimSpace(string(r.buf[r.off : r.off+n]))
	r.off += n
	return v
}

// buildMessage constructs the record for kind by consuming r in the kind's
// wire field order. The switch is exhaustive over the closed message set.
func buildMessage(kind model.Kind, r *fieldReader) model.Message {
	switch kind {
	case model.KindSystemEvent:
		return model.SystemEvent{
			SystemEvent: r.u8(),
			Timestamp:   r.i64(),
		}
	case model.KindSecurityDirective:
		return model.SecurityDirective{
			Flags:            r.u8(),
			Timestamp:        r.i64(),
			Symbol:           r.str(8),
			RoundLotSize:     r.u32(),
			AdjustedPOCClose: r.i64(),
			LULDTier:         r.u8(),
		}
	case model.KindTradingStatus:
		return model.TradingStatus{
			Status:    r.char(),
			Timestamp: r.i64(),
			Symbol:    r.str(8),
			Reason:    r.str(4),
		}
	case model.KindOperationalHalt:
		return model.OperationalHalt{
			HaltStatus: r.char(),
			Timestamp:  r.i64(),
			Symbol:     r.str(8),
		}
	case model.KindShortSalePriceSale:
		return model.ShortSalePriceSale{
			ShortSaleStatus: r.u8(),
			Timestamp:       r.i64(),
			Symbol:          r.str(8),
			Detail:          r.char(),
		}
	case model.KindSecurityEvent:
		return model.SecurityEvent{
			SecurityEvent: r.u8(),
			Timestamp:     r.i64(),
			Symbol:        r.str(8),
		}
	case model.KindBidPriceLevelUpdate:
		return model.BidPriceLevelUpdate{
			EventFlags: r.u8(),
			Timestamp:  r.i64(),
			Symbol:     r.str(8),
			Size:       r.u32(),
			PriceInt:   r.i64(),
		}
	case model.KindAskPriceLevelUpdate:
		return model.AskPriceLevelUpdate{
			EventFlags: r.u8(),
			Timestamp:  r.i64(),
			Symbol:     r.str(8),
			Size:       r.u32(),
			PriceInt:   r.i64(),
		}
	case model.KindQuoteUpdate:
		return model.QuoteUpdate{
			Flags:       r.u8(),
			Timestamp:   r.i64(),
			Symbol:      r.str(8),
			BidSize:     r.u32(),
			BidPriceInt: r.i64(),
			AskPriceInt: r.i64(),
			AskSize:     r.u32(),
		}
	case model.KindTradeReport:
		return model.TradeReport{
			Flags:     r.u8(),
			Timestamp: r.i64(),
			Symbol:    r.str(8),
			Size:      r.u32(),
			PriceInt:  r.i64(),
			TradeID:   r.i64(),
		}
	case model.KindOfficialPrice:
		return model.OfficialPrice{
			PriceType: r.char(),
			Timestamp: r.i64(),
			Symbol:    r.str(8),
			PriceInt:  r.i64(),
		}
	case model.KindTradeBreak:
		return model.TradeBreak{
			SaleFlags: r.char(),
			Timestamp: r.i64(),
			Symbol:    r.str(8),
			Size:      r.u32(),
			PriceInt:  r.i64(),
			TradeID:   r.i64(),
		}
	case model.KindAuctionInformation:
		return model.AuctionInformation{
			AuctionType:                 r.char(),
			Timestamp:                   r.i64(),
			Symbol:                      r.str(8),
			PairedShares:                r.u32(),
			ReferencePriceInt:           r.i64(),
			IndicativeClearingPriceInt:  r.i64(),
			ImbalanceShares:             r.u32(),
			ImbalanceSide:               r.char(),
			ExtensionNumber:             r.u8(),
			ScheduledAuctionTime:        r.u32(),
			AuctionBookClearingPriceInt: r.i64(),
			CollarReferencePriceInt:     r.i64(),
			LowerAuctionCollarPriceInt:  r.i64(),
			UpperAuctionCollarPriceInt:  r.i64(),
		}
	}
	// Unreachable: the registry only maps defined kinds.
	return nil
}
