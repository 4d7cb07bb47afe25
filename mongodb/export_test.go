package mongodb

import "testing"

func TestSanitizeExportTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "inventory", "inventory"},
		{"spaces and punctuation", "My Report!", "My_Report_"},
		{"keeps dashes and underscores", "q3-orders_2019", "q3-orders_2019"},
		{"path separators replaced", "../etc/passwd", "___etc_passwd"},
		{"unicode letters kept", "rapport_été", "rapport_été"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeExportTitle(tt.in); got != tt.want {
				t.Errorf("sanitizeExportTitle(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
