package tp

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rickgao/iexhist/internal/model"
)

func mustDecoder(t *testing.T, v Version) *Decoder {
	t.Helper()
	d, err := NewDecoder(v)
	if err != nil {
		t.Fatalf("NewDecoder(%s): %v", v, err)
	}
	return d
}

// TestRoundTrip encodes a synthetic payload for every message kind with
// known field values and checks the decoded record reproduces them,
// derived values included.
func TestRoundTrip(t *testing.T) {
	wantTime := time.Unix(0, testTimestamp).UTC()

	t.Run("SystemEvent", func(t *testing.T) {
		var w fixtureWriter
		w.u8('S')
		w.i64(testTimestamp)

		m := decodeAs[model.SystemEvent](t, Version16, tagSystemEvent, w.bytes())
		if m.SystemEvent != 'S' {
			t.Errorf("SystemEvent = %d, want %d", m.SystemEvent, 'S')
		}
		if !m.Time().Equal(wantTime) {
			t.Errorf("Time() = %v, want %v", m.Time(), wantTime)
		}
		if m.Description() != "start_of_system_hours" {
			t.Errorf("Description() = %q, want start_of_system_hours", m.Description())
		}
	})

	t.Run("SecurityDirective", func(t *testing.T) {
		var w fixtureWriter
		w.u8(0x80)
		w.i64(testTimestamp)
		w.str("ZIEXT", 8)
		w.u32(100)
		w.i64(995000)
		w.u8(1)

		m := decodeAs[model.SecurityDirective](t, Version16, tagSecurityDirective, w.bytes())
		if m.Symbol != "ZIEXT" {
			t.Errorf("Symbol = %q, want ZIEXT", m.Symbol)
		}
		if m.RoundLotSize != 100 {
			t.Errorf("RoundLotSize = %d, want 100", m.RoundLotSize)
		}
		if m.LULDTier != 1 {
			t.Errorf("LULDTier = %d, want 1", m.LULDTier)
		}
		if got := m.AdjustedPOCClosePrice(); got != 99.5 {
			t.Errorf("AdjustedPOCClosePrice() = %v, want 99.5", got)
		}
	})

	t.Run("TradingStatus", func(t *testing.T) {
		var w fixtureWriter
		w.char("H")
		w.i64(testTimestamp)
		w.str("ZIEXT", 8)
		w.str("T1", 4)

		m := decodeAs[model.TradingStatus](t, Version16, tagTradingStatus, w.bytes())
		if m.Status != "H" {
			t.Errorf("Status = %q, want H", m.Status)
		}
		if m.Reason != "T1" {
			t.Errorf("Reason = %q, want T1", m.Reason)
		}
		if m.Description() != "Trading halted across all US equity markets" {
			t.Errorf("Description() = %q", m.Description())
		}
	})

	t.Run("OperationalHalt", func(t *testing.T) {
		var w fixtureWriter
		w.char("O")
		w.i64(testTimestamp)
		w.str("ZIEXT", 8)

		m := decodeAs[model.OperationalHalt](t, Version16, tagOperationalHalt, w.bytes())
		if m.HaltStatus != "O" {
			t.Errorf("HaltStatus = %q, want O", m.HaltStatus)
		}
		if m.Symbol != "ZIEXT" {
			t.Errorf("Symbol = %q, want ZIEXT", m.Symbol)
		}
	})

	t.Run("ShortSalePriceSale", func(t *testing.T) {
		var w fixtureWriter
		w.u8(0x40)
		w.i64(testTimestamp)
		w.str("ZIEXT", 8)
		w.char("A")

		m := decodeAs[model.ShortSalePriceSale](t, Version16, tagShortSalePriceSale, w.bytes())
		if m.ShortSaleStatus != 0x40 {
			t.Errorf("ShortSaleStatus = %#x, want 0x40", m.ShortSaleStatus)
		}
		if m.Detail != "A" {
			t.Errorf("Detail = %q, want A", m.Detail)
		}
	})

	t.Run("SecurityEvent", func(t *testing.T) {
		var w fixtureWriter
		w.u8('O')
		w.i64(testTimestamp)
		w.str("ZIEXT", 8)

		m := decodeAs[model.SecurityEvent](t, Version10, tagSecurityEvent, w.bytes())
		if m.SecurityEvent != 'O' {
			t.Errorf("SecurityEvent = %d, want %d", m.SecurityEvent, 'O')
		}
	})

	t.Run("BidPriceLevelUpdate", func(t *testing.T) {
		var w fixtureWriter
		w.u8(1)
		w.i64(testTimestamp)
		w.str("ZIEXT", 8)
		w.u32(500)
		w.i64(1234500)

		m := decodeAs[model.BidPriceLevelUpdate](t, Version10, tagBidPriceLevelUpdate, w.bytes())
		if m.Size != 500 {
			t.Errorf("Size = %d, want 500", m.Size)
		}
		if got := m.Price(); got != 123.45 {
			t.Errorf("Price() = %v, want 123.45", got)
		}
	})

	t.Run("AskPriceLevelUpdate", func(t *testing.T) {
		var w fixtureWriter
		w.u8(0)
		w.i64(testTimestamp)
		w.str("ZIEXT", 8)
		w.u32(0) // level removed
		w.i64(1235000)

		m := decodeAs[model.AskPriceLevelUpdate](t, Version10, tagAskPriceLevelUpdate, w.bytes())
		if m.Size != 0 {
			t.Errorf("Size = %d, want 0", m.Size)
		}
		if got := m.Price(); got != 123.5 {
			t.Errorf("Price() = %v, want 123.5", got)
		}
	})

	t.Run("QuoteUpdate", func(t *testing.T) {
		m := decodeAs[model.QuoteUpdate](t, Version16, tagQuoteUpdate,
			encodeQuoteUpdate("ZIEXT", 1234000, 1235700))
		if m.BidSize != 900 || m.AskSize != 1000 {
			t.Errorf("sizes = %d/%d, want 900/1000", m.BidSize, m.AskSize)
		}
		if got := m.BidPrice(); got != 123.4 {
			t.Errorf("BidPrice() = %v, want 123.4", got)
		}
		if got := m.AskPrice(); got != 123.57 {
			t.Errorf("AskPrice() = %v, want 123.57", got)
		}
	})

	t.Run("TradeReport", func(t *testing.T) {
		m := decodeAs[model.TradeReport](t, Version16, tagTradeReport,
			encodeTradeReport("ZIEXT", 1234500, 429974))
		if m.Size != 100 {
			t.Errorf("Size = %d, want 100", m.Size)
		}
		if m.TradeID != 429974 {
			t.Errorf("TradeID = %d, want 429974", m.TradeID)
		}
		if got := m.Price(); got != 123.45 {
			t.Errorf("Price() = %v, want 123.45", got)
		}
	})

	t.Run("OfficialPrice", func(t *testing.T) {
		m := decodeAs[model.OfficialPrice](t, Version16, tagOfficialPrice,
			encodeOfficialPrice("ZIEXT", 990000))
		if m.PriceType != "Q" {
			t.Errorf("PriceType = %q, want Q", m.PriceType)
		}
		if got := m.Price(); got != 99.0 {
			t.Errorf("Price() = %v, want 99.0", got)
		}
	})

	t.Run("TradeBreak", func(t *testing.T) {
		var w fixtureWriter
		w.char("I")
		w.i64(testTimestamp)
		w.str("ZIEXT", 8)
		w.u32(100)
		w.i64(1234500)
		w.i64(429974)

		m := decodeAs[model.TradeBreak](t, Version16, tagTradeBreak, w.bytes())
		if m.SaleFlags != "I" {
			t.Errorf("SaleFlags = %q, want I", m.SaleFlags)
		}
		if m.TradeID != 429974 {
			t.Errorf("TradeID = %d, want 429974", m.TradeID)
		}
		if got := m.Price(); got != 123.45 {
			t.Errorf("Price() = %v, want 123.45", got)
		}
	})

	t.Run("AuctionInformation", func(t *testing.T) {
		var w fixtureWriter
		w.char("C")
		w.i64(testTimestamp)
		w.str("ZIEXT", 8)
		w.u32(10000)
		w.i64(1234500)
		w.i64(1234600)
		w.u32(300)
		w.char("B")
		w.u8(2)
		w.u32(1_541_797_200)
		w.i64(1234700)
		w.i64(1234800)
		w.i64(1170000)
		w.i64(1300000)

		m := decodeAs[model.AuctionInformation](t, Version16, tagAuctionInformation, w.bytes())
		if m.AuctionType != "C" {
			t.Errorf("AuctionType = %q, want C", m.AuctionType)
		}
		if m.PairedShares != 10000 {
			t.Errorf("PairedShares = %d, want 10000", m.PairedShares)
		}
		if m.ImbalanceSide != "B" {
			t.Errorf("ImbalanceSide = %q, want B", m.ImbalanceSide)
		}
		if m.ExtensionNumber != 2 {
			t.Errorf("ExtensionNumber = %d, want 2", m.ExtensionNumber)
		}
		if got := m.ScheduledTime().Unix(); got != 1_541_797_200 {
			t.Errorf("ScheduledTime() = %d, want 1541797200", got)
		}
		checks := []struct {
			name string
			got  float64
			want float64
		}{
			{"ReferencePrice", m.ReferencePrice(), 123.45},
			{"IndicativeClearingPrice", m.IndicativeClearingPrice(), 123.46},
			{"AuctionBookClearingPrice", m.AuctionBookClearingPrice(), 123.47},
			{"CollarReferencePrice", m.CollarReferencePrice(), 123.48},
			{"LowerAuctionCollarPrice", m.LowerAuctionCollarPrice(), 117.0},
			{"UpperAuctionCollarPrice", m.UpperAuctionCollarPrice(), 130.0},
		}
		for _, c := range checks {
			if c.got != c.want {
				t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
			}
		}
	})
}

func decodeAs[T model.Message](t *testing.T, v Version, tag byte, payload []byte) T {
	t.Helper()
	msg, err := mustDecoder(t, v).Decode(tag, payload)
	if err != nil {
		t.Fatalf("Decode(%#x): %v", tag, err)
	}
	m, ok := msg.(T)
	if !ok {
		t.Fatalf("Decode(%#x) type = %T", tag, msg)
	}
	return m
}

// Every price must be exactly the integer wire price over 10,000.
func TestPriceScaling(t *testing.T) {
	prices := []int64{0, 1, 9999, 10000, 1234500, math.MaxInt32}
	d := mustDecoder(t, Version16)
	for _, p := range prices {
		msg, err := d.Decode(tagTradeReport, encodeTradeReport("ZIEXT", p, 1))
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		tr := msg.(model.TradeReport)
		want := float64(p) / 10000.0
		if tr.Price() != want {
			t.Errorf("Price() for priceInt %d = %v, want %v", p, tr.Price(), want)
		}
	}
}

func TestDecodeUnknownTag(t *testing.T) {
	d := mustDecoder(t, Version16)
	_, err := d.Decode(0x99, []byte{0})
	var perr *ProtocolError
	if !errors.As(err, &perr) {
		t.Fatalf("Decode unknown tag = %v, want *ProtocolError", err)
	}
	if perr.Tag != 0x99 {
		t.Errorf("ProtocolError.Tag = %#x, want 0x99", perr.Tag)
	}

	// QuoteUpdate is not part of the 1.5 tag set's complement; conversely
	// the DEEP-only price level tags are unknown to 1.6.
	if _, err := d.Decode(tagBidPriceLevelUpdate, junk(29)); err == nil {
		t.Error("Decode(DEEP tag) on 1.6 decoder succeeded, want error")
	}
}

func TestDecodeWidthMismatch(t *testing.T) {
	d := mustDecoder(t, Version16)
	payload := encodeTradeReport("ZIEXT", 1234500, 1)

	bad := [][]byte{
		payload[:len(payload)-1],
		append(append([]byte{}, payload...), 0),
		{},
	}
	for _, b := range bad {
		_, err := d.Decode(tagTradeReport, b)
		var perr *ProtocolError
		if !errors.As(err, &perr) {
			t.Errorf("Decode with %d-byte payload = %v, want *ProtocolError", len(b), err)
		}
	}
}

// TOPS 1.5 trade layouts carry 4 reserved trailing bytes that 1.6 dropped.
func TestVersion15PadBytes(t *testing.T) {
	d15 := mustDecoder(t, Version15)
	payload := append(encodeTradeReport("ZIEXT", 1234500, 99), 0, 0, 0, 0)

	msg, err := d15.Decode(tagTradeReport, payload)
	if err != nil {
		t.Fatalf("Decode 1.5 trade report: %v", err)
	}
	tr := msg.(model.TradeReport)
	if tr.TradeID != 99 {
		t.Errorf("TradeID = %d, want 99", tr.TradeID)
	}

	// The unpadded 1.6 payload is one word short for 1.5.
	if _, err := d15.Decode(tagTradeReport, payload[:len(payload)-4]); err == nil {
		t.Error("Decode 1.5 trade report without pad bytes succeeded, want error")
	}
}
