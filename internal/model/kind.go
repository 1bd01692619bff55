package model

// Kind identifies one of the thirteen message kinds defined by the TOPS and
// DEEP feed specifications.
type Kind int

const (
	KindSystemEvent Kind = iota
	KindSecurityDirective
	KindTradingStatus
	KindOperationalHalt
	KindShortSalePriceSale
	KindSecurityEvent
	KindBidPriceLevelUpdate
	KindAskPriceLevelUpdate
	KindQuoteUpdate
	KindTradeReport
	KindOfficialPrice
	KindTradeBreak
	KindAuctionInformation

	kindCount // sentinel, not a message kind
)

var kindNames = [...]string{
	KindSystemEvent:         "SystemEvent",
	KindSecurityDirective:   "SecurityDirective",
	KindTradingStatus:       "TradingStatus",
	KindOperationalHalt:     "OperationalHalt",
	KindShortSalePriceSale:  "ShortSalePriceSale",
	KindSecurityEvent:       "SecurityEvent",
	KindBidPriceLevelUpdate: "BidPriceLevelUpdate",
	KindAskPriceLevelUpdate: "AskPriceLevelUpdate",
	KindQuoteUpdate:         "QuoteUpdate",
	KindTradeReport:         "TradeReport",
	KindOfficialPrice:       "OfficialPrice",
	KindTradeBreak:          "TradeBreak",
	KindAuctionInformation:  "AuctionInformation",
}

func (k Kind) String() string {
	if !k.Valid() {
		return "Kind(invalid)"
	}
	return kindNames[k]
}

// Valid reports whether k names one of the defined message kinds.
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

// Kinds returns all defined message kinds in declaration order.
func Kinds() []Kind {
	out := make([]Kind, kindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// KindFromName resolves a kind by its canonical name. The second return is
// false if the name is unknown.
func KindFromName(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}
