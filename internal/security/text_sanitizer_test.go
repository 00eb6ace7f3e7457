package security

import "testing"

func TestTextSanitizer_Sanitize(t *testing.T) {
	s := NewTextSanitizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text passes through",
			input: "Widget",
			want:  "Widget",
		},
		{
			name:  "empty input returns empty",
			input: "",
			want:  "",
		},
		{
			name:  "strips tags keeping text",
			input: "<b>Widget</b> deluxe",
			want:  "Widget deluxe",
		},
		{
			name:  "removes script elements entirely",
			input: "Widget<script>alert('x')</script>",
			want:  "Widget",
		},
		{
			name:  "unescapes entities after stripping",
			input: "Tom &amp; Jerry",
			want:  "Tom & Jerry",
		},
		{
			name:  "trims surrounding whitespace",
			input: "  Widget  ",
			want:  "Widget",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// サニタイズ済みの文字列を再度通しても変化しないこと
func TestTextSanitizer_Sanitize_Idempotent(t *testing.T) {
	s := NewTextSanitizer()

	inputs := []string{
		"Widget",
		"<b>Widget</b> deluxe",
		"Tom &amp; Jerry",
	}
	for _, input := range inputs {
		once := s.Sanitize(input)
		twice := s.Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize is not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}
