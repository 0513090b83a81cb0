package models

import "testing"

func TestTagsString(t *testing.T) {
	tests := []struct {
		name string
		tags Tags
		want string
	}{
		{name: "nil", tags: nil, want: "[]"},
		{name: "empty", tags: Tags{}, want: "[]"},
		{name: "single", tags: Tags{"love"}, want: "['love']"},
		{name: "several", tags: Tags{"change", "deep-thoughts", "world"}, want: "['change', 'deep-thoughts', 'world']"},
		{name: "apostrophe", tags: Tags{"don't"}, want: `["don't"]`},
		{name: "both quotes", tags: Tags{`it's "fine"`}, want: `['it\'s "fine"']`},
		{name: "backslash", tags: Tags{`a\b`}, want: `['a\\b']`},
		{name: "whitespace escapes", tags: Tags{"a\tb\nc"}, want: `['a\tb\nc']`},
		{name: "control characters", tags: Tags{"nul\x00", "del\x7f"}, want: `['nul\x00', 'del\x7f']`},
		{name: "no-break space", tags: Tags{"a\u00a0b"}, want: `['a\xa0b']`},
		{name: "zero width space", tags: Tags{"a\u200bb"}, want: `['a\u200bb']`},
		{name: "supplementary private use", tags: Tags{"\U000f0000"}, want: `['\U000f0000']`},
		{name: "printable non-ascii", tags: Tags{"café", "日本"}, want: "['café', '日本']"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tags.String(); got != tt.want {
				t.Errorf("Tags.String() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestQuoteRecord(t *testing.T) {
	q := Quote{Text: "“A day without sunshine is like, you know, night.”", Author: "Steve Martin", Tags: Tags{"humor", "obvious"}}

	rec := q.Record()
	if len(rec) != len(QuoteFields()) {
		t.Fatalf("Record() has %d columns, want %d", len(rec), len(QuoteFields()))
	}
	if rec[0] != q.Text {
		t.Errorf("text column = %q, want %q", rec[0], q.Text)
	}
	if rec[1] != q.Author {
		t.Errorf("author column = %q, want %q", rec[1], q.Author)
	}
	if rec[2] != "['humor', 'obvious']" {
		t.Errorf("tags column = %q", rec[2])
	}
}

func TestQuoteEqual(t *testing.T) {
	a := Quote{Text: "x", Author: "y", Tags: Tags{"a", "b"}}
	b := Quote{Text: "x", Author: "y", Tags: Tags{"a", "b"}}
	c := Quote{Text: "x", Author: "y", Tags: Tags{"b", "a"}}

	if !a.Equal(b) {
		t.Error("expected equal quotes")
	}
	if a.Equal(c) {
		t.Error("tag order must matter for equality")
	}
}
