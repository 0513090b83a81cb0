package common

import "testing"

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "canonical", input: "https://quotes.toscrape.com/", want: "https://quotes.toscrape.com/"},
		{name: "adds slash", input: "https://quotes.toscrape.com", want: "https://quotes.toscrape.com/"},
		{name: "nested path", input: "http://localhost:8080/js", want: "http://localhost:8080/js/"},
		{name: "whitespace and comma", input: "  https://quotes.toscrape.com/, ", want: "https://quotes.toscrape.com/"},
		{name: "markdown link", input: "[quotes](https://quotes.toscrape.com/)", want: "https://quotes.toscrape.com/"},
		{name: "empty", input: "   ", wantErr: true},
		{name: "ftp scheme", input: "ftp://quotes.toscrape.com/", wantErr: true},
		{name: "no scheme", input: "quotes.toscrape.com", wantErr: true},
		{name: "spaces", input: "https://quotes.toscrape.com/a b", wantErr: true},
		{name: "query", input: "https://quotes.toscrape.com/?page=1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateBaseURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateBaseURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ValidateBaseURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestContentHash(t *testing.T) {
	a := ContentHash([]byte("page one"))
	b := ContentHash([]byte("page one"))
	c := ContentHash([]byte("page two"))

	if a != b {
		t.Error("same content must hash equally")
	}
	if a == c {
		t.Error("different content must hash differently")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64", len(a))
	}
}
