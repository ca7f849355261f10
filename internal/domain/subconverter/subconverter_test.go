package subconverter

import "testing"

func TestSubconverter_Normalization(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		options     string
		wantBase    string
		wantOptions string
	}{
		{"clean", "http://sc.local:25500", "emoji=true", "http://sc.local:25500", "emoji=true"},
		{"trailing slash", "http://sc.local:25500/", "", "http://sc.local:25500", ""},
		{"many slashes and spaces", "  https://sc.example.com//  ", "  ?emoji=true&udp=true", "https://sc.example.com", "emoji=true&udp=true"},
		{"leading ampersand", "https://sc.example.com", "&list=false", "https://sc.example.com", "list=false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := ReconstructSubconverter("sc-1", tt.url, tt.options, false)
			if got := sc.BaseURL(); got != tt.wantBase {
				t.Errorf("BaseURL() = %q, want %q", got, tt.wantBase)
			}
			if got := sc.QueryOptions(); got != tt.wantOptions {
				t.Errorf("QueryOptions() = %q, want %q", got, tt.wantOptions)
			}
		})
	}
}
