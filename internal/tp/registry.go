package tp

import "github.com/rickgao/iexhist/internal/model"

// Message type tags shared by the TOPS and DEEP wire formats.
const (
	tagSystemEvent         = 0x53 // 'S'
	tagSecurityDirective   = 0x44 // 'D'
	tagTradingStatus       = 0x48 // 'H'
	tagOperationalHalt     = 0x4f // 'O'
	tagShortSalePriceSale  = 0x50 // 'P'
	tagSecurityEvent       = 0x45 // 'E'
	tagBidPriceLevelUpdate = 0x38 // '8'
	tagAskPriceLevelUpdate = 0x35 // '5'
	tagQuoteUpdate         = 0x51 // 'Q'
	tagTradeReport         = 0x54 // 'T'
	tagOfficialPrice       = 0x58 // 'X'
	tagTradeBreak          = 0x42 // 'B'
	tagAuctionInformation  = 0x41 // 'A'
)

// fieldType names one fixed-width wire field within a message payload.
type fieldType int

const (
	fieldUint8   fieldType = iota // unsigned byte
	fieldUint32                   // unsigned 4-byte little-endian integer
	fieldInt64                    // signed 8-byte little-endian integer
	fieldChar                     // single-character string
	fieldString4                  // 4-byte string, trimmed
	fieldSymbol                   // 8-byte symbol, trimmed
	fieldPad4                     // 4 reserved bytes
)

var fieldWidths = [...]int{
	fieldUint8:   1,
	fieldUint32:  4,
	fieldInt64:   8,
	fieldChar:    1,
	fieldString4: 4,
	fieldSymbol:  8,
	fieldPad4:    4,
}

// DecodeSpec binds one message type tag to its fixed payload layout and the
// record kind it constructs.
type DecodeSpec struct {
	Kind   model.Kind
	Layout []fieldType
}

// Width is the exact payload byte count the layout describes.
func (s DecodeSpec) Width() int {
	w := 0
	for _, f := range s.Layout {
		w += fieldWidths[f]
	}
	return w
}

// Shared layouts. TOPS 1.5 appends 4 reserved pad bytes to its trade
// layouts; 1.6 dropped them.
var (
	layoutSystemEvent        = []fieldType{fieldUint8, fieldInt64}
	layoutSecurityDirective  = []fieldType{fieldUint8, fieldInt64, fieldSymbol, fieldUint32, fieldInt64, fieldUint8}
	layoutTradingStatus      = []fieldType{fieldChar, fieldInt64, fieldSymbol, fieldString4}
	layoutOperationalHalt    = []fieldType{fieldChar, fieldInt64, fieldSymbol}
	layoutShortSalePriceSale = []fieldType{fieldUint8, fieldInt64, fieldSymbol, fieldChar}
	layoutSecurityEvent      = []fieldType{fieldUint8, fieldInt64, fieldSymbol}
	layoutPriceLevelUpdate   = []fieldType{fieldUint8, fieldInt64, fieldSymbol, fieldUint32, fieldInt64}
	layoutQuoteUpdate        = []fieldType{fieldUint8, fieldInt64, fieldSymbol, fieldUint32, fieldInt64, fieldInt64, fieldUint32}
	layoutTradeReport        = []fieldType{fieldUint8, fieldInt64, fieldSymbol, fieldUint32, fieldInt64, fieldInt64}
	layoutTradeReport15      = []fieldType{fieldUint8, fieldInt64, fieldSymbol, fieldUint32, fieldInt64, fieldInt64, fieldPad4}
	layoutOfficialPrice      = []fieldType{fieldChar, fieldInt64, fieldSymbol, fieldInt64}
	layoutTradeBreak         = []fieldType{fieldChar, fieldInt64, fieldSymbol, fieldUint32, fieldInt64, fieldInt64}
	layoutTradeBreak15       = []fieldType{fieldChar, fieldInt64, fieldSymbol, fieldUint32, fieldInt64, fieldInt64, fieldPad4}
	layoutAuctionInformation = []fieldType{
		fieldChar, fieldInt64, fieldSymbol, fieldUint32, fieldInt64, fieldInt64,
		fieldUint32, fieldChar, fieldUint8, fieldUint32, fieldInt64, fieldInt64,
		fieldInt64, fieldInt64,
	}
)

// registry is the immutable (version, tag) decode table. Built once at
// package initialization, never mutated afterwards.
var registry = map[Version]map[byte]DecodeSpec{
	Version16: {
		tagSystemEvent:        {model.KindSystemEvent, layoutSystemEvent},
		tagSecurityDirective:  {model.KindSecurityDirective, layoutSecurityDirective},
		tagTradingStatus:      {model.KindTradingStatus, layoutTradingStatus},
		tagOperationalHalt:    {model.KindOperationalHalt, layoutOperationalHalt},
		tagShortSalePriceSale: {model.KindShortSalePriceSale, layoutShortSalePriceSale},
		tagQuoteUpdate:        {model.KindQuoteUpdate, layoutQuoteUpdate},
		tagTradeReport:        {model.KindTradeReport, layoutTradeReport},
		tagOfficialPrice:      {model.KindOfficialPrice, layoutOfficialPrice},
		tagTradeBreak:         {model.KindTradeBreak, layoutTradeBreak},
		tagAuctionInformation: {model.KindAuctionInformation, layoutAuctionInformation},
	},
	Version15: {
		tagQuoteUpdate: {model.KindQuoteUpdate, layoutQuoteUpdate},
		tagTradeReport: {model.KindTradeReport, layoutTradeReport15},
		tagTradeBreak:  {model.KindTradeBreak, layoutTradeBreak15},
	},
	Version10: {
		tagSystemEvent:         {model.KindSystemEvent, layoutSystemEvent},
		tagSecurityDirective:   {model.KindSecurityDirective, layoutSecurityDirective},
		tagTradingStatus:       {model.KindTradingStatus, layoutTradingStatus},
		tagOperationalHalt:     {model.KindOperationalHalt, layoutOperationalHalt},
		tagShortSalePriceSale:  {model.KindShortSalePriceSale, layoutShortSalePriceSale},
		tagSecurityEvent:       {model.KindSecurityEvent, layoutSecurityEvent},
		tagBidPriceLevelUpdate: {model.KindBidPriceLevelUpdate, layoutPriceLevelUpdate},
		tagAskPriceLevelUpdate: {model.KindAskPriceLevelUpdate, layoutPriceLevelUpdate},
		tagTradeReport:         {model.KindTradeReport, layoutTradeReport},
		tagOfficialPrice:       {model.KindOfficialPrice, layoutOfficialPrice},
		tagTradeBreak:          {model.KindTradeBreak, layoutTradeBreak},
		tagAuctionInformation:  {model.KindAuctionInformation, layoutAuctionInformation},
	},
}
