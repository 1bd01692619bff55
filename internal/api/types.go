package api

// HISTEntry describes one downloadable HIST capture from GET /hist.
type HISTEntry struct {
	Link     string `json:"link"`     // Download URL
	Date     string `json:"date"`     // Trading day, YYYYMMDD
	Feed     string `json:"feed"`     // "TOPS" or "DEEP"
	Version  string `json:"version"`  // Protocol revision, e.g. "1.6"
	Protocol string `json:"protocol"` // Transport protocol, e.g. "IEXTP1"
	Size     string `json:"size"`     // Compressed size in bytes
}

// Filename is the conventional local name for the capture this entry
// describes: DATE_PROTOCOL_FEEDVERSION.pcap.gz.
func (e HISTEntry) Filename() string {
	return e.Date + "_" + e.Protocol + "_" + e.Feed + e.Version + ".pcap.gz"
}

// TOPSQuote is one symbol's entry from GET /tops.
type TOPSQuote struct {
	Symbol        string  `json:"symbol"`
	BidSize       int     `json:"bidSize"`
	BidPrice      float64 `json:"bidPrice"`
	AskSize       int     `json:"askSize"`
	AskPrice      float64 `json:"askPrice"`
	Volume        int64   `json:"volume"`
	LastSalePrice float64 `json:"lastSalePrice"`
	LastSaleSize  int     `json:"lastSaleSize"`
	LastSaleTime  int64   `json:"lastSaleTime"` // Milliseconds since epoch
	LastUpdated   int64   `json:"lastUpdated"`  // Milliseconds since epoch
}

// LastTrade is one symbol's entry from GET /tops/last.
type LastTrade struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	Size   int     `json:"size"`
	Time   int64   `json:"time"` // Milliseconds since epoch
}
