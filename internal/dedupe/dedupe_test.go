package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tmalin/leadharvest/internal/scraper"
)

func TestDeduplicateByPhone(t *testing.T) {
	records := []scraper.Record{
		{Name: "Kelly Behun", Phone: "(212) 555-0187"},
		{Name: "KELLY BEHUN", Phone: "212.555.0187", Website: "https://kellybehun.com"},
		{Name: "Kelly Behun", Phone: "(212) 555-0100"},
	}

	result := Deduplicate(records)
	assert.Len(t, result, 2)
	assert.Equal(t, "(212) 555-0187", result[0].Phone)
	assert.Equal(t, "(212) 555-0100", result[1].Phone)
}

func TestDeduplicateIgnoresCountryCode(t *testing.T) {
	records := []scraper.Record{
		{Name: "Kelly Behun", Phone: "(212) 555-0187"},
		{Name: "Kelly Behun", Phone: "+1 (212) 555-0187"},
	}

	assert.Len(t, Deduplicate(records), 1)
}

func TestDeduplicateByWebsite(t *testing.T) {
	records := []scraper.Record{
		{Name: "Drake/Anderson", Website: "https://drakeanderson.com/"},
		{Name: "drake/anderson", Website: "https://drakeanderson.com"},
	}

	assert.Len(t, Deduplicate(records), 1)
}

func TestDeduplicateDifferentContactsKept(t *testing.T) {
	// Same name but one has only a phone and the other only a website,
	// and neither value matches, so both stay.
	records := []scraper.Record{
		{Name: "Studio Sofield", Phone: "(212) 555-0142"},
		{Name: "Studio Sofield", Website: "https://studiosofield.com"},
	}

	assert.Len(t, Deduplicate(records), 2)
}

func TestDeduplicateFallbackNameCity(t *testing.T) {
	records := []scraper.Record{
		{Name: "Amy Lau Design", City: "New York"},
		{Name: "Amy Lau Design", City: "new york"},
		{Name: "Amy Lau Design", City: "Miami"},
	}

	result := Deduplicate(records)
	assert.Len(t, result, 2)
	assert.Equal(t, "New York", result[0].City)
	assert.Equal(t, "Miami", result[1].City)
}

func TestDeduplicateStableOrder(t *testing.T) {
	records := []scraper.Record{
		{Name: "B Studio", Phone: "(212) 555-0002"},
		{Name: "A Studio", Phone: "(212) 555-0001"},
		{Name: "B Studio", Phone: "(212) 555-0002"},
		{Name: "C Studio", Phone: "(212) 555-0003"},
	}

	result := Deduplicate(records)
	assert.Len(t, result, 3)
	assert.Equal(t, "B Studio", result[0].Name)
	assert.Equal(t, "A Studio", result[1].Name)
	assert.Equal(t, "C Studio", result[2].Name)
}

func TestDeduplicateIdempotent(t *testing.T) {
	records := []scraper.Record{
		{Name: "Kelly Behun", Phone: "(212) 555-0187"},
		{Name: "Kelly Behun", Phone: "(212) 555-0187"},
		{Name: "Drake/Anderson", Website: "https://drakeanderson.com"},
	}

	once := Deduplicate(records)
	twice := Deduplicate(once)
	assert.Equal(t, once, twice)
}

func TestDeduplicateEmpty(t *testing.T) {
	assert.Empty(t, Deduplicate(nil))
}
