package weft

import "testing"

func TestDrawBorder(t *testing.T) {
	t.Run("SingleBorderGolden", func(t *testing.T) {
		buf := NewBuffer(10, 3)
		buf.DrawBorder(0, 0, 10, 3, BorderSingle, EdgeAll, DefaultStyle())

		want := []string{
			"┌────────┐",
			"│        │",
			"└────────┘",
		}
		for y, line := range want {
			if got := buf.GetLine(y); got != line {
				t.Errorf("row %d: expected %q, got %q", y, line, got)
			}
		}
	})

	t.Run("CornersAndEdges", func(t *testing.T) {
		buf := NewBuffer(20, 10)
		buf.DrawBorder(0, 0, 5, 3, BorderSingle, EdgeAll, DefaultStyle())

		if buf.Get(0, 0).Rune != BoxTopLeft {
			t.Error("expected top-left corner")
		}
		if buf.Get(4, 0).Rune != BoxTopRight {
			t.Error("expected top-right corner")
		}
		if buf.Get(0, 2).Rune != BoxBottomLeft {
			t.Error("expected bottom-left corner")
		}
		if buf.Get(4, 2).Rune != BoxBottomRight {
			t.Error("expected bottom-right corner")
		}
		for x := 1; x < 4; x++ {
			if buf.Get(x, 0).Rune != BoxHorizontal {
				t.Errorf("expected horizontal at (%d,0)", x)
			}
		}
		if buf.Get(0, 1).Rune != BoxVertical {
			t.Error("expected vertical at (0,1)")
		}
		// The interior is untouched.
		if buf.Get(2, 1).Rune != ' ' {
			t.Error("border painted inside the rectangle")
		}
	})

	t.Run("TooSmallDrawsNothing", func(t *testing.T) {
		buf := NewBuffer(10, 10)
		buf.DrawBorder(0, 0, 1, 5, BorderSingle, EdgeAll, DefaultStyle())
		buf.DrawBorder(0, 0, 5, 1, BorderSingle, EdgeAll, DefaultStyle())
		for y := 0; y < 10; y++ {
			if buf.GetLine(y) != "" {
				t.Fatalf("expected empty buffer, row %d = %q", y, buf.GetLine(y))
			}
		}
	})

	t.Run("EdgeSubset", func(t *testing.T) {
		buf := NewBuffer(6, 3)
		buf.DrawBorder(0, 0, 6, 3, BorderSingle, EdgeTop, DefaultStyle())

		// A lone top edge runs straight through its corner cells.
		if got := buf.GetLine(0); got != "──────" {
			t.Errorf("expected full horizontal run, got %q", got)
		}
		if buf.Get(0, 1).Rune != ' ' {
			t.Error("left edge drawn without being requested")
		}
	})

	t.Run("SharedVerticalEdgeJoins", func(t *testing.T) {
		buf := NewBuffer(10, 3)
		buf.DrawBorder(0, 0, 5, 3, BorderSingle, EdgeAll, DefaultStyle())
		buf.DrawBorder(4, 0, 5, 3, BorderSingle, EdgeAll, DefaultStyle())

		if buf.Get(4, 0).Rune != BoxTeeDown {
			t.Errorf("expected ┬ where top edges meet, got %q", buf.Get(4, 0).Rune)
		}
		if buf.Get(4, 1).Rune != BoxVertical {
			t.Errorf("expected │ on the shared edge, got %q", buf.Get(4, 1).Rune)
		}
		if buf.Get(4, 2).Rune != BoxTeeUp {
			t.Errorf("expected ┴ where bottom edges meet, got %q", buf.Get(4, 2).Rune)
		}
	})

	t.Run("SharedHorizontalEdgeJoins", func(t *testing.T) {
		buf := NewBuffer(5, 5)
		buf.DrawBorder(0, 0, 5, 3, BorderSingle, EdgeAll, DefaultStyle())
		buf.DrawBorder(0, 2, 5, 3, BorderSingle, EdgeAll, DefaultStyle())

		if buf.Get(0, 2).Rune != BoxTeeRight {
			t.Errorf("expected ├ at shared left corner, got %q", buf.Get(0, 2).Rune)
		}
		if buf.Get(4, 2).Rune != BoxTeeLeft {
			t.Errorf("expected ┤ at shared right corner, got %q", buf.Get(4, 2).Rune)
		}
	})

	t.Run("FourWayCross", func(t *testing.T) {
		buf := NewBuffer(9, 5)
		buf.DrawBorder(0, 0, 5, 3, BorderSingle, EdgeAll, DefaultStyle())
		buf.DrawBorder(4, 0, 5, 3, BorderSingle, EdgeAll, DefaultStyle())
		buf.DrawBorder(0, 2, 5, 3, BorderSingle, EdgeAll, DefaultStyle())
		buf.DrawBorder(4, 2, 5, 3, BorderSingle, EdgeAll, DefaultStyle())

		if buf.Get(4, 2).Rune != BoxCross {
			t.Errorf("expected ┼ where four corners meet, got %q", buf.Get(4, 2).Rune)
		}
	})

	t.Run("HeavyStylesDoNotJoin", func(t *testing.T) {
		buf := NewBuffer(10, 3)
		buf.DrawBorder(0, 0, 5, 3, BorderDouble, EdgeAll, DefaultStyle())
		buf.DrawBorder(4, 0, 5, 3, BorderDouble, EdgeAll, DefaultStyle())

		// Double-line glyphs are not in the joint table; last write wins.
		if buf.Get(4, 0).Rune != BorderDouble.TopLeft {
			t.Errorf("expected plain overwrite, got %q", buf.Get(4, 0).Rune)
		}
	})

	t.Run("RoundedCorners", func(t *testing.T) {
		buf := NewBuffer(6, 3)
		buf.DrawBorder(0, 0, 6, 3, BorderRounded, EdgeAll, DefaultStyle())
		if buf.Get(0, 0).Rune != '╭' || buf.Get(5, 0).Rune != '╮' {
			t.Error("expected rounded top corners")
		}
		if buf.Get(0, 2).Rune != '╰' || buf.Get(5, 2).Rune != '╯' {
			t.Error("expected rounded bottom corners")
		}
	})
}
