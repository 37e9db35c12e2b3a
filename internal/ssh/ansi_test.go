package ssh

import "testing"

func TestStripEscapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "color codes",
			input: "\x1b[31mHello\x1b[0m",
			want:  "Hello",
		},
		{
			name:  "window title",
			input: "\x1b]0;title\x07World",
			want:  "World",
		},
		{
			name:  "charset select",
			input: "\x1b(BPlain\x1b)0",
			want:  "Plain",
		},
		{
			name:  "cursor movement and clear",
			input: "\x1b[2J\x1b[Hprompt$ ",
			want:  "prompt$ ",
		},
		{
			name:  "private mode parameters",
			input: "\x1b[?25hready",
			want:  "ready",
		},
		{
			name:  "mixed sequences in one chunk",
			input: "\x1b[1;32muser@host\x1b[0m:\x1b[1;34m~\x1b[0m$ ls",
			want:  "user@host:~$ ls",
		},
		{
			name:  "plain text unchanged",
			input: "no escapes here",
			want:  "no escapes here",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripEscapes(tt.input); got != tt.want {
				t.Errorf("StripEscapes(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
