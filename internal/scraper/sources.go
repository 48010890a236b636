package scraper

import (
	"sort"
	"time"

	apperrors "tmalin/leadharvest/pkg/errors"
)

// sourceConfigs is the registry of supported directory sites. Selector
// lists are ordered most-specific first; sites change markup often, so
// most fields carry fallbacks.
var sourceConfigs = map[string]SourceConfig{
	"yelp": {
		BaseURL:           "https://www.yelp.com",
		SearchURLTemplate: "https://www.yelp.com/search?find_desc={query}&find_loc=",
		RateLimit:         2 * time.Second,
		Selectors: Selectors{
			Listing: SelectorList{
				`div[class*="businessName"]`,
				`a[class*="businessName"]`,
				`.business-name`,
			},
			Name:     SelectorList{`h3 a, .business-name, [class*="businessName"]`},
			Website:  SelectorList{`a[href*="biz_redir"]`},
			Phone:    SelectorList{`[class*="phone"]`},
			Address:  SelectorList{`[class*="address"]`},
			City:     SelectorList{`[class*="city"]`},
			State:    SelectorList{`[class*="state"]`},
			ZipCode:  SelectorList{`[class*="zip"]`},
			NextPage: SelectorList{`a[aria-label="Next"]`},
		},
	},
	"houzz": {
		BaseURL:           "https://www.houzz.com",
		SearchURLTemplate: "https://www.houzz.com/professionals/interior-designer/c/{query}",
		RateLimit:         1500 * time.Millisecond,
		Selectors: Selectors{
			Listing: SelectorList{
				`.hz-pro-search-result`,
				`.hz-pro-card`,
				`[class*="pro-card"]`,
			},
			Name:      SelectorList{`h3 a, .hz-pro-card__title`},
			Website:   SelectorList{`a[href*="professional"]`},
			Phone:     SelectorList{`[class*="phone"]`},
			Address:   SelectorList{`[class*="address"]`},
			City:      SelectorList{`[class*="city"]`},
			State:     SelectorList{`[class*="state"]`},
			Specialty: SelectorList{`[class*="specialty"]`},
			NextPage:  SelectorList{`a[aria-label="Next"], .hz-pagination-next`},
		},
	},
	"bocadolobo": {
		BaseURL:     "https://www.bocadolobo.com",
		ListURL:     "https://www.bocadolobo.com/en/inspiration-and-ideas/50-best-interior-designers-in-new-york/",
		RateLimit:   2 * time.Second,
		EnrichEmail: true,
		Selectors: Selectors{
			// Editorial list page; entries are numbered headings rather
			// than structured cards.
			Listing: SelectorList{
				`article`,
				`div[class*="entry"]`,
				`div[class*="post"]`,
				`div[class*="designer"]`,
				`section`,
				`h5`,
			},
			Name: SelectorList{
				`h5`, `h4`, `h3`, `h2`,
				`[class*="title"]`,
				`[class*="name"]`,
				`strong`,
			},
			Website: SelectorList{
				`a[href*="http"]`,
				`a[href*="www"]`,
			},
			Specialty: SelectorList{
				`p`,
				`[class*="description"]`,
				`[class*="content"]`,
			},
		},
	},
	"asid": {
		BaseURL:       "https://designfinder.asid.org",
		ListURL:       "https://designfinder.asid.org/search?FreeTextSearch=&View=List&ContentType=Suppliers&ListingType=Designers%2B%26%2BFirms&SortBy=Distance&Latitude=40.7460972&Longitude=-73.9799209&Distance=17&PlaceName=231-237+Lexington+Ave%2C+New+York%2C+NY%2C+10016%2C+USA&DistanceSearchHQ=true&DistanceSearchBranches=true",
		RateLimit:     2 * time.Second,
		RequiresJS:    true,
		ReadySelector: `div[class*="result"]`,
		OutputFile:    "output/asid_results.csv",
		Selectors: Selectors{
			Listing: SelectorList{
				`div[data-supplier-id]`,
				`[class*="supplier-card"]`,
				`[class*="result-card"]`,
				`[class*="listing-card"]`,
				`div[class*="supplier"]`,
				`div[class*="result"]`,
				`article`,
				`div[itemtype*="Organization"]`,
			},
			Name: SelectorList{
				`[class*="supplier-name"]`,
				`[class*="company-name"]`,
				`[itemprop="name"]`,
				`h2 a`, `h3 a`, `h4 a`,
				`h2`, `h3`, `h4`,
			},
			Website: SelectorList{
				`a[class*="website"]`,
				`[itemprop="url"]`,
				`a[href^="http"][target="_blank"]`,
			},
			Phone: SelectorList{
				`a[href^="tel:"]`,
				`[class*="phone"]`,
				`[itemprop="telephone"]`,
			},
			Email: SelectorList{
				`a[href^="mailto:"]`,
				`[class*="email"]`,
				`[itemprop="email"]`,
			},
			Address: SelectorList{
				`[class*="address"]`,
				`[itemprop="streetAddress"]`,
			},
			City:    SelectorList{`[class*="city"]`, `[itemprop="addressLocality"]`},
			State:   SelectorList{`[class*="state"]`, `[itemprop="addressRegion"]`},
			ZipCode: SelectorList{`[class*="zip"]`, `[itemprop="postalCode"]`},
			Specialty: SelectorList{
				`[class*="specialty"]`,
				`[class*="category"]`,
			},
			NextPage: SelectorList{
				`a[aria-label*="Next"]`,
				`.pagination-next`,
				`a[class*="next"]`,
			},
		},
	},
}

// GetSourceConfig returns the configuration for a named source
func GetSourceConfig(name string) (SourceConfig, error) {
	config, ok := sourceConfigs[name]
	if !ok {
		return SourceConfig{}, apperrors.NewConfiguration("unknown source: " + name)
	}
	return config, nil
}

// SourceNames returns the registered source names in sorted order
func SourceNames() []string {
	names := make([]string, 0, len(sourceConfigs))
	for name := range sourceConfigs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
