package language

import (
	"testing"

	"github.com/pemistahl/lingua-go"
)

func TestDetect(t *testing.T) {
	d := NewDetector(lingua.English, lingua.French, lingua.German)

	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{
			name:   "english",
			text:   "The world as we have created it is a process of our thinking. It cannot be changed without changing our thinking.",
			want:   "en",
			wantOK: true,
		},
		{
			name:   "french",
			text:   "On ne voit bien qu'avec le cœur. L'essentiel est invisible pour les yeux.",
			want:   "fr",
			wantOK: true,
		},
		{
			name:   "german",
			text:   "Das Leben ist wie ein Fahrrad. Man muss sich vorwärts bewegen, um das Gleichgewicht nicht zu verlieren.",
			want:   "de",
			wantOK: true,
		},
		{name: "blank", text: "   ", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := d.Detect(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("Detect() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Code != tt.want {
				t.Errorf("Detect() code = %q, want %q", got.Code, tt.want)
			}
			if got.Confidence <= 0 || got.Confidence > 1 {
				t.Errorf("Detect() confidence = %v, want (0, 1]", got.Confidence)
			}
		})
	}
}
