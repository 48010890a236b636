package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanName(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"1. Kelly Behun", "Kelly Behun"},
		{"12 Studio Sofield", "Studio Sofield"},
		{"  Drake/Anderson  ", "Drake/Anderson"},
		{"Nicole   Fuller\nInteriors", "Nicole Fuller Interiors"},
		{"No results found", ""},
		{"Loading...", ""},
		{"Search", ""},
		{"ab", ""},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, CleanName(tc.input), "input %q", tc.input)
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"212-555-0187", "(212) 555-0187"},
		{"(212) 555.0187", "(212) 555-0187"},
		{"1-212-555-0187", "+1 (212) 555-0187"},
		{"+44 20 7946 0958", "+44 20 7946 0958"},
		{"555-0187", "555-0187"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, NormalizePhone(tc.input), "input %q", tc.input)
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "info@studio.com", NormalizeEmail(" Info@Studio.com "))
	assert.Equal(t, "", NormalizeEmail("not-an-email"))
	assert.Equal(t, "", NormalizeEmail("missing@tld"))
	assert.Equal(t, "", NormalizeEmail(""))
}

func TestRecordNormalize(t *testing.T) {
	record := Record{
		Name:  "3. Amy  Lau Design",
		Email: "HELLO@AMYLAU.COM",
		Phone: "2125550142",
		City:  " New York ",
	}
	record.Normalize()

	assert.Equal(t, "Amy Lau Design", record.Name)
	assert.Equal(t, "hello@amylau.com", record.Email)
	assert.Equal(t, "(212) 555-0142", record.Phone)
	assert.Equal(t, "New York", record.City)
}
