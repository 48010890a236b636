package dedupe

import (
	"regexp"
	"strings"

	"tmalin/leadharvest/internal/scraper"
)

var (
	spacePattern = regexp.MustCompile(`\s+`)
	digitOnly    = regexp.MustCompile(`\D`)
)

// Deduplicate removes records describing the same business, keeping the
// first occurrence and preserving input order. Two records match when
// they share a normalized name together with the same phone or the same
// website; records with neither fall back to name plus city.
func Deduplicate(records []scraper.Record) []scraper.Record {
	seen := make(map[string]bool, len(records))
	result := make([]scraper.Record, 0, len(records))

	for _, record := range records {
		keys := identityKeys(record)

		dup := false
		for _, key := range keys {
			if seen[key] {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		for _, key := range keys {
			seen[key] = true
		}
		result = append(result, record)
	}
	return result
}

func identityKeys(record scraper.Record) []string {
	name := normalizeText(record.Name)

	var keys []string
	if phone := normalizePhone(record.Phone); phone != "" {
		keys = append(keys, "p|"+name+"|"+phone)
	}
	if website := normalizeWebsite(record.Website); website != "" {
		keys = append(keys, "w|"+name+"|"+website)
	}
	if len(keys) == 0 {
		keys = append(keys, "c|"+name+"|"+normalizeText(record.City))
	}
	return keys
}

// normalizePhone reduces a phone number to bare digits, dropping the
// US country code so "+1 (212) 555-0187" keys the same as the ten-digit
// form.
func normalizePhone(s string) string {
	digits := digitOnly.ReplaceAllString(s, "")
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	return digits
}

func normalizeText(s string) string {
	return spacePattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

func normalizeWebsite(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.TrimSuffix(s, "/")
}
