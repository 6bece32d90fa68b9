package srcpos

import "testing"

func TestLocationAccessors(t *testing.T) {
	t.Parallel()

	byOffset := AtOffset(7)
	if !byOffset.ByOffset() {
		t.Error("AtOffset location does not report ByOffset")
	}
	if got := byOffset.Offset(); got != 7 {
		t.Errorf("Offset() = %d, want 7", got)
	}

	byLineCol := AtLineCol(2, 3)
	if byLineCol.ByOffset() {
		t.Error("AtLineCol location reports ByOffset")
	}
	line, col := byLineCol.LineCol()
	if line != 2 || col != 3 {
		t.Errorf("LineCol() = %d:%d, want 2:3", line, col)
	}
}

func TestLocationPanics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func()
	}{
		{"negative offset", func() { AtOffset(-1) }},
		{"negative line", func() { AtLineCol(-1, 0) }},
		{"negative column", func() { AtLineCol(0, -1) }},
		{"LineCol on offset location", func() { AtOffset(0).LineCol() }},
		{"Offset on line/col location", func() { AtLineCol(0, 0).Offset() }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			test.fn()
		})
	}
}
