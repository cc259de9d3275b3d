package ui

import "testing"

func TestFormatSize(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"bytes", 512, "512 B"},
		{"kilobytes", 2048, "2.0 KB"},
		{"megabytes", 5 * 1 << 20, "5.0 MB"},
		{"gigabytes", 3 * 1 << 30, "3.0 GB"},
		{"large no decimals", 250 * 1 << 30, "250 GB"},
		{"terabytes", 2 * 1 << 40, "2.0 TB"},
		{"unknown", -1, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSize(tt.bytes); got != tt.want {
				t.Errorf("FormatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}
