package domain

// Unknown is the sentinel recorded for any attribute the collection page
// did not report.
const Unknown = "unknown"

// ExtraAttribute is a collected key/value pair outside the known field set.
// Extras are kept as an ordered slice so reports render deterministically.
type ExtraAttribute struct {
	Key   string
	Value string
}

// AttributeBundle is the normalized environment/network data collected for
// one completed verification. All fields are strings; anything the page did
// not supply holds the Unknown sentinel. Owned by its VerificationToken and
// immutable once attached.
type AttributeBundle struct {
	ID      string // internal ULID
	TokenID string

	// Network
	IP          string
	Country     string
	City        string
	Region      string
	GeoTimezone string

	// Device / browser
	UserAgent      string
	BrowserName    string
	BrowserVersion string
	OS             string
	Platform       string
	IsMobile       string
	ScreenWidth    string
	ScreenHeight   string
	Language       string
	TimezoneOffset string

	Extras []ExtraAttribute
}
