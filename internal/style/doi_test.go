// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package style

import "testing"

func TestFormatDOI(t *testing.T) {
	tests := []struct {
		format DOIFormat
		want   string
	}{
		{DOIBare, "10.1039/B917103G"},
		{DOILowerPrefix, "doi:10.1039/B917103G"},
		{DOIUpperPrefix, "DOI:10.1039/B917103G"},
		{DOIURL, "https://doi.org/10.1039/B917103G"},
	}
	for _, tt := range tests {
		if got := FormatDOI("10.1039/B917103G", tt.format); got != tt.want {
			t.Errorf("FormatDOI(%s) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

// Stripping any formatted form must recover the original DOI, case intact.
func TestStripDOIPrefixRoundTrip(t *testing.T) {
	doi := "10.1039/B917103G"
	for f := range doiFormatNames {
		if got := StripDOIPrefix(FormatDOI(doi, f)); got != doi {
			t.Errorf("round trip through %s = %q, want %q", f, got, doi)
		}
	}
}

func TestStripDOIPrefix(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://dx.doi.org/10.1038/nature12373", "10.1038/nature12373"},
		{"http://doi.org/10.1038/nature12373", "10.1038/nature12373"},
		{"doi: 10.1039/B917103G", "10.1039/B917103G"},
		{"10.1039/B917103G", "10.1039/B917103G"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripDOIPrefix(tt.in); got != tt.want {
			t.Errorf("StripDOIPrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDOITarget(t *testing.T) {
	want := "https://doi.org/10.1039/B917103G"
	if got := DOITarget("10.1039/B917103G"); got != want {
		t.Errorf("DOITarget = %q, want %q", got, want)
	}
}
