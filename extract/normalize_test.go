package extract

import "testing"

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  float64
		valid bool
	}{
		{"comma decimal", "64,74", 64.74, true},
		{"period decimal", "64.74", 64.74, true},
		{"currency prefix", "€ 64,74", 64.74, true},
		{"whole amount", "64", 64, true},
		{"trailing dash", "64,-", 64, true},
		{"non-numeric", "onbekend", 0, false},
		{"empty", "", 0, false},
		{"symbols only", "€ -", 0, false},
		// Thousands separators survive the comma swap and fail to parse;
		// the raw text is kept and the value stays absent.
		{"thousands separator", "1.234,56", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePrice(tt.in)
			if !tt.valid {
				if got != nil {
					t.Errorf("ParsePrice(%q) = %v, want nil", tt.in, *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ParsePrice(%q) = nil, want %v", tt.in, tt.want)
			}
			if *got != tt.want {
				t.Errorf("ParsePrice(%q) = %v, want %v", tt.in, *got, tt.want)
			}
		})
	}
}

func TestStripLabel(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"labelled", "Merk: Philips", "Philips"},
		{"labelled no space", "Merk:Philips", "Philips"},
		{"unlabelled", "Philips", "Philips"},
		{"label only", "Merk:", ""},
		{"padded", "  Merk: Philips  ", "Philips"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripLabel(tt.in, "Merk:"); got != tt.want {
				t.Errorf("stripLabel(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDigitsOnly(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"8712345678901", "8712345678901"},
		{" 871 2345 678901 ", "8712345678901"},
		{"EAN: 8712345678901", "8712345678901"},
		{"geen", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := digitsOnly(tt.in); got != tt.want {
			t.Errorf("digitsOnly(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeSpace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Philips   Hue  ", "Philips Hue"},
		{"line\none\n\tline two", "line one line two"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := normalizeSpace(tt.in); got != tt.want {
			t.Errorf("normalizeSpace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
