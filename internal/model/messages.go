package model

import "time"

// PriceScale converts integer wire prices to dollars: ten-thousandths.
const PriceScale = 10_000

// Message is implemented by every decoded record.
type Message interface {
	Kind() Kind
	// Time is the event timestamp converted to a UTC instant.
	Time() time.Time
}

func nsToTime(ns int64) time.Time {
	return time.Unix(0, ns).UTC()
}

func toPrice(priceInt int64) float64 {
	return float64(priceInt) / PriceScale
}

// systemEventNames resolves the System Event Message code byte.
var systemEventNames = map[uint8]string{
	'O': "start_of_messages",
	'S': "start_of_system_hours",
	'R': "start_of_regular_hours",
	'C': "end_of_messages",
	'E': "end_of_system_hours",
	'M': "end_of_regular_hours",
}

// tradingStatusDescriptions resolves the Trading Status Message status byte.
var tradingStatusDescriptions = map[string]string{
	"H": "Trading halted across all US equity markets",
	"O": "Trading halt released into an Order Acceptance Period on IEX (IEX-listed securities only)",
	"P": "Trading paused and Order Acceptance Period on IEX (IEX-listed securities only)",
	"T": "Trading on IEX",
}

// SystemEvent indicates events that apply to the market or the data feed as
// a whole; one per event type per trading session.
type SystemEvent struct {
	SystemEvent uint8 // Event code ('O', 'S', 'R', 'C', 'E', 'M')
	Timestamp   int64 // Nanoseconds since epoch
}

func (m SystemEvent) Kind() Kind      { return KindSystemEvent }
func (m SystemEvent) Time() time.Time { return nsToTime(m.Timestamp) }

// Description resolves the event code to its symbolic name, or "" if the
// code is not defined by the feed specification.
func (m SystemEvent) Description() string { return systemEventNames[m.SystemEvent] }

// SecurityDirective relays the security directory: per-security reference
// data disseminated pre-market and on intraday changes.
type SecurityDirective struct {
	Flags            uint8  // Directory flags bitfield
	Timestamp        int64  // Nanoseconds since epoch
	Symbol           string // Security identifier
	RoundLotSize     uint32 // Shares per round lot
	AdjustedPOCClose int64  // Adjusted prior-day official close (price int)
	LULDTier         uint8  // Limit Up-Limit Down tier
}

func (m SecurityDirective) Kind() Kind      { return KindSecurityDirective }
func (m SecurityDirective) Time() time.Time { return nsToTime(m.Timestamp) }

// AdjustedPOCClosePrice is the prior-day official close in dollars.
func (m SecurityDirective) AdjustedPOCClosePrice() float64 { return toPrice(m.AdjustedPOCClose) }

// TradingStatus indicates the current trading status of a security.
type TradingStatus struct {
	Status    string // "H", "O", "P" or "T"
	Timestamp int64  // Nanoseconds since epoch
	Symbol    string // Security identifier
	Reason    string // Halt reason code (e.g. "T1", "IPO1", "MCB3", "NA")
}

func (m TradingStatus) Kind() Kind      { return KindTradingStatus }
func (m TradingStatus) Time() time.Time { return nsToTime(m.Timestamp) }

// Description resolves the status code to the human-readable phrasing from
// the feed specification, or "" for an undefined code.
func (m TradingStatus) Description() string { return tradingStatusDescriptions[m.Status] }

// OperationalHalt indicates a security halted on IEX for operational reasons.
type OperationalHalt struct {
	HaltStatus string // "O" operationally halted, "N" not halted
	Timestamp  int64  // Nanoseconds since epoch
	Symbol     string // Security identifier
}

func (m OperationalHalt) Kind() Kind      { return KindOperationalHalt }
func (m OperationalHalt) Time() time.Time { return nsToTime(m.Timestamp) }

// ShortSalePriceSale indicates whether a Reg SHO Rule 201 short sale price
// test restriction is in effect for a security.
type ShortSalePriceSale struct {
	ShortSaleStatus uint8  // Restriction flag
	Timestamp       int64  // Nanoseconds since epoch
	Symbol          string // Security identifier
	Detail          string // Restriction detail code
}

func (m ShortSalePriceSale) Kind() Kind      { return KindShortSalePriceSale }
func (m ShortSalePriceSale) Time() time.Time { return nsToTime(m.Timestamp) }

// SecurityEvent indicates events that apply to a single security (DEEP only).
type SecurityEvent struct {
	SecurityEvent uint8  // Event code
	Timestamp     int64  // Nanoseconds since epoch
	Symbol        string // Security identifier
}

func (m SecurityEvent) Kind() Kind      { return KindSecurityEvent }
func (m SecurityEvent) Time() time.Time { return nsToTime(m.Timestamp) }

// BidPriceLevelUpdate reports a change to a displayed bid price level
// (DEEP only). Size zero removes the level.
type BidPriceLevelUpdate struct {
	EventFlags uint8  // Event flags bitfield
	Timestamp  int64  // Nanoseconds since epoch
	Symbol     string // Security identifier
	Size       uint32 // Aggregate size at this level
	PriceInt   int64  // Price level (price int)
}

func (m BidPriceLevelUpdate) Kind() Kind      { return KindBidPriceLevelUpdate }
func (m BidPriceLevelUpdate) Time() time.Time { return nsToTime(m.Timestamp) }

// Price is the level price in dollars.
func (m BidPriceLevelUpdate) Price() float64 { return toPrice(m.PriceInt) }

// AskPriceLevelUpdate reports a change to a displayed ask price level
// (DEEP only). Size zero removes the level.
type AskPriceLevelUpdate struct {
	EventFlags uint8  // Event flags bitfield
	Timestamp  int64  // Nanoseconds since epoch
	Symbol     string // Security identifier
	Size       uint32 // Aggregate size at this level
	PriceInt   int64  // Price level (price int)
}

func (m AskPriceLevelUpdate) Kind() Kind      { return KindAskPriceLevelUpdate }
func (m AskPriceLevelUpdate) Time() time.Time { return nsToTime(m.Timestamp) }

// Price is the level price in dollars.
func (m AskPriceLevelUpdate) Price() float64 { return toPrice(m.PriceInt) }

// QuoteUpdate carries IEX's best bid and offer for a security.
type QuoteUpdate struct {
	Flags       uint8  // Quote flags bitfield
	Timestamp   int64  // Nanoseconds since epoch
	Symbol      string // Security identifier
	BidSize     uint32 // Aggregate best bid size
	BidPriceInt int64  // Best bid (price int)
	AskPriceInt int64  // Best ask (price int)
	AskSize     uint32 // Aggregate best ask size
}

func (m QuoteUpdate) Kind() Kind      { return KindQuoteUpdate }
func (m QuoteUpdate) Time() time.Time { return nsToTime(m.Timestamp) }

// BidPrice is the best bid in dollars.
func (m QuoteUpdate) BidPrice() float64 { return toPrice(m.BidPriceInt) }

// AskPrice is the best ask in dollars.
func (m QuoteUpdate) AskPrice() float64 { return toPrice(m.AskPriceInt) }

// TradeReport reports an execution on the IEX order book, one per fill.
type TradeReport struct {
	Flags     uint8  // Sale condition flags bitfield
	Timestamp int64  // Nanoseconds since epoch
	Symbol    string // Security identifier
	Size      uint32 // Trade volume
	PriceInt  int64  // Trade price (price int)
	TradeID   int64  // Unique within the day
}

func (m TradeReport) Kind() Kind      { return KindTradeReport }
func (m TradeReport) Time() time.Time { return nsToTime(m.Timestamp) }

// Price is the execution price in dollars.
func (m TradeReport) Price() float64 { return toPrice(m.PriceInt) }

// OfficialPrice carries the IEX Official Opening or Closing Price for an
// IEX-listed security.
type OfficialPrice struct {
	PriceType string // "Q" opening, "M" closing
	Timestamp int64  // Nanoseconds since epoch
	Symbol    string // Security identifier
	PriceInt  int64  // Official price (price int)
}

func (m OfficialPrice) Kind() Kind      { return KindOfficialPrice }
func (m OfficialPrice) Time() time.Time { return nsToTime(m.Timestamp) }

// Price is the official price in dollars.
func (m OfficialPrice) Price() float64 { return toPrice(m.PriceInt) }

// TradeBreak reports an execution broken on the same trading day.
type TradeBreak struct {
	SaleFlags string // Sale condition flags
	Timestamp int64  // Nanoseconds since epoch
	Symbol    string // Security identifier
	Size      uint32 // Broken trade volume
	PriceInt  int64  // Broken trade price (price int)
	TradeID   int64  // Trade ID of the broken execution
}

func (m TradeBreak) Kind() Kind      { return KindTradeBreak }
func (m TradeBreak) Time() time.Time { return nsToTime(m.Timestamp) }

// Price is the broken trade price in dollars.
func (m TradeBreak) Price() float64 { return toPrice(m.PriceInt) }

// AuctionInformation is broadcast during auction periods for IEX-listed
// securities: pairing, imbalance and collar state ahead of the match.
type AuctionInformation struct {
	AuctionType                 string // "O" open, "C" close, "I" IPO, "H" halt, "V" volatility
	Timestamp                   int64  // Nanoseconds since epoch
	Symbol                      string // Security identifier
	PairedShares                uint32 // Shares paired at the reference price
	ReferencePriceInt           int64  // Reference price (price int)
	IndicativeClearingPriceInt  int64  // Clearing price using eligible auction orders
	ImbalanceShares             uint32 // Unpaired shares at the reference price
	ImbalanceSide               string // "B" buy side, "S" sell side, "N" none
	ExtensionNumber             uint8  // Number of auction extensions
	ScheduledAuctionTime        uint32 // Seconds since epoch
	AuctionBookClearingPriceInt int64  // Clearing price using auction-book orders
	CollarReferencePriceInt     int64  // Collar calculation reference (price int)
	LowerAuctionCollarPriceInt  int64  // Lower collar bound (price int)
	UpperAuctionCollarPriceInt  int64  // Upper collar bound (price int)
}

func (m AuctionInformation) Kind() Kind      { return KindAuctionInformation }
func (m AuctionInformation) Time() time.Time { return nsToTime(m.Timestamp) }

// ScheduledTime is the scheduled auction time as a UTC instant.
func (m AuctionInformation) ScheduledTime() time.Time {
	return time.Unix(int64(m.ScheduledAuctionTime), 0).UTC()
}

func (m AuctionInformation) ReferencePrice() float64 { return toPrice(m.ReferencePriceInt) }

func (m AuctionInformation) IndicativeClearingPrice() float64 {
	return toPrice(m.IndicativeClearingPriceInt)
}

func (m AuctionInformation) AuctionBookClearingPrice() float64 {
	return toPrice(m.AuctionBookClearingPriceInt)
}

func (m AuctionInformation) CollarReferencePrice() float64 {
	return toPrice(m.CollarReferencePriceInt)
}

func (m AuctionInformation) LowerAuctionCollarPrice() float64 {
	return toPrice(m.LowerAuctionCollarPriceInt)
}

func (m AuctionInformation) UpperAuctionCollarPrice() float64 {
	return toPrice(m.UpperAuctionCollarPriceInt)
}
