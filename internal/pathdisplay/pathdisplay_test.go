package pathdisplay

import "testing"

func TestRelative(t *testing.T) {
	tests := []struct {
		name, abs, root, want string
	}{
		{"simple", "/home/user/project/a.symtypes", "/home/user/project", "a.symtypes"},
		{"nested", "/home/user/project/drivers/net/e1000.symtypes", "/home/user/project", "drivers/net/e1000.symtypes"},
		{"already relative", "a.symtypes", "/home/user/project", "a.symtypes"},
		{"outside root", "/other/place/a.symtypes", "/home/user/project", "/other/place/a.symtypes"},
		{"equal to root", "/home/user/project", "/home/user/project", "."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Relative(tt.abs, tt.root); got != tt.want {
				t.Errorf("Relative(%q, %q) = %q, want %q", tt.abs, tt.root, got, tt.want)
			}
		})
	}
}
