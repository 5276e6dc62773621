package finreport

import "testing"

func TestNewAsset(t *testing.T) {
	tests := []struct {
		name, isin, ticker string
		wantErr            bool
	}{
		{"Microsoft", "US5949181045", "MSFT", false},
		{"Bitcoin", "", "BTC", false},
		{"", "US5949181045", "", true},   // missing name
		{"Microsoft", "5949181045", "", true}, // ISIN without country prefix
		{"Microsoft", "US59491810", "", true}, // ISIN too short
	}
	for _, tt := range tests {
		_, err := NewAsset(tt.name, tt.isin, tt.ticker)
		if (err != nil) != tt.wantErr {
			t.Errorf("NewAsset(%q, %q, %q) error = %v, wantErr %v", tt.name, tt.isin, tt.ticker, err, tt.wantErr)
		}
	}
}

func TestAsset_Key(t *testing.T) {
	if got := msf.Key(); got != "US5949181045" {
		t.Errorf("Key() = %q, want the ISIN", got)
	}
	if got := btc.Key(); got != "Bitcoin" {
		t.Errorf("Key() = %q, want the name", got)
	}
}
