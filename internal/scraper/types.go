package scraper

import "time"

// Record represents one scraped business contact. Fields other than Name
// are best-effort; extraction leaves them empty on selector misses.
type Record struct {
	Name        string
	Email       string
	Phone       string
	Website     string
	Address     string
	City        string
	State       string
	ZipCode     string
	SocialMedia string
	Specialty   string
	SourceURL   string
}

// SelectorList is one or more CSS selectors tried in order until one
// matches. Real-world directory markup varies, so most fields carry
// several candidates.
type SelectorList []string

// Selectors contains the CSS selectors for one directory site
type Selectors struct {
	Listing   SelectorList
	Name      SelectorList
	Website   SelectorList
	Phone     SelectorList
	Email     SelectorList
	Address   SelectorList
	City      SelectorList
	State     SelectorList
	ZipCode   SelectorList
	Specialty SelectorList
	NextPage  SelectorList
}

// SourceConfig contains the configuration for one directory source
type SourceConfig struct {
	BaseURL           string
	SearchURLTemplate string
	// ListURL points at a curated list page; it takes precedence over
	// SearchURLTemplate and disables query substitution.
	ListURL   string
	RateLimit time.Duration
	// RequiresJS selects the headless-browser fetch strategy.
	RequiresJS bool
	// ReadySelector is the element the browser waits for before taking
	// the DOM; defaults to the first listing selector.
	ReadySelector string
	// EnrichEmail visits each record's website to find an email address
	// not shown on the listing page.
	EnrichEmail bool
	// OutputFile overrides the global output path for this source.
	OutputFile string
	Selectors  Selectors
}
