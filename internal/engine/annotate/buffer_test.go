package annotate

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	buf := New("hello world")

	if buf.Text() != "hello world" {
		t.Errorf("Text() = %q, want %q", buf.Text(), "hello world")
	}
	if buf.Len() != 0 {
		t.Errorf("Len() = %d, want 0", buf.Len())
	}
	if buf.RuneLen() != 11 {
		t.Errorf("RuneLen() = %d, want 11", buf.RuneLen())
	}
}

func TestCreateAlias(t *testing.T) {
	t.Run("registers disabled alias", func(t *testing.T) {
		buf := New("hello world")
		a, err := buf.CreateAlias(6, 11, Literal("there"))
		if err != nil {
			t.Fatalf("CreateAlias() error = %v", err)
		}

		if a.Enabled() {
			t.Error("new alias should be disabled")
		}
		if a.Start() != 6 || a.End() != 11 {
			t.Errorf("range = %v, want [6:11)", a.Range())
		}
		if a.Buffer() != buf {
			t.Error("Buffer() should return the owning buffer")
		}
		if buf.Len() != 1 {
			t.Errorf("Len() = %d, want 1", buf.Len())
		}
		if got := buf.Aliases()[0]; got != a {
			t.Error("Aliases()[0] should be the created alias")
		}
	})

	t.Run("start after end", func(t *testing.T) {
		buf := New("hello world")
		a, err := buf.CreateAlias(5, 2, Literal("x"))
		if a != nil {
			t.Error("expected nil alias")
		}
		if !errors.Is(err, ErrInvalidRange) {
			t.Fatalf("error = %v, want ErrInvalidRange", err)
		}
		var rangeErr *RangeError
		if !errors.As(err, &rangeErr) {
			t.Fatalf("error should be *RangeError, got %T", err)
		}
		if rangeErr.Start != 5 || rangeErr.End != 2 {
			t.Errorf("RangeError = %+v, want {5 2}", rangeErr)
		}
		if buf.Len() != 0 {
			t.Errorf("Len() = %d, want 0 after failed create", buf.Len())
		}
	})

	t.Run("negative start", func(t *testing.T) {
		buf := New("abc")
		if _, err := buf.CreateAlias(-1, 2, Literal("x")); !errors.Is(err, ErrInvalidRange) {
			t.Errorf("error = %v, want ErrInvalidRange", err)
		}
	})

	t.Run("end past text is allowed", func(t *testing.T) {
		buf := New("abc")
		if _, err := buf.CreateAlias(1, 100, Literal("x")); err != nil {
			t.Errorf("CreateAlias() error = %v", err)
		}
	})

	t.Run("redundant registration", func(t *testing.T) {
		buf := New("abc")
		a, _ := buf.CreateAlias(0, 1, Literal("x"))
		a.register(buf)
		a.register(buf)
		if buf.Len() != 1 {
			t.Errorf("Len() = %d, want 1", buf.Len())
		}
	})

	t.Run("nil replacement", func(t *testing.T) {
		buf := New("abc")
		a, _ := buf.CreateAlias(0, 1, nil)
		a.Enable()
		got, err := buf.Render()
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if got != "bc" {
			t.Errorf("Render() = %q, want %q", got, "bc")
		}
	})
}

func TestAliasEnableDisable(t *testing.T) {
	buf := New("abc")
	a, _ := buf.CreateAlias(0, 1, Literal("x"))

	a.Enable()
	if !a.Enabled() {
		t.Error("Enable() should enable alias")
	}
	a.Disable()
	if a.Enabled() {
		t.Error("Disable() should disable alias")
	}
}

func TestAliasesIsCopy(t *testing.T) {
	buf := New("abc")
	_, _ = buf.CreateAlias(0, 1, Literal("x"))

	list := buf.Aliases()
	list[0] = nil
	if buf.Aliases()[0] == nil {
		t.Error("mutating Aliases() result should not affect the buffer")
	}
}

func TestSlice(t *testing.T) {
	buf := New("naïve café")

	tests := []struct {
		r    Range
		want string
	}{
		{Range{0, 5}, "naïve"},
		{Range{6, 10}, "café"},
		{Range{6, 50}, "café"},
		{Range{3, 3}, ""},
	}
	for _, tt := range tests {
		if got := buf.Slice(tt.r); got != tt.want {
			t.Errorf("Slice(%v) = %q, want %q", tt.r, got, tt.want)
		}
	}
}

func TestRange(t *testing.T) {
	r := Range{Start: 2, End: 5}
	if r.String() != "[2:5)" {
		t.Errorf("String() = %q", r.String())
	}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}
	if r.IsEmpty() {
		t.Error("IsEmpty() should be false")
	}
	if !r.Overlaps(Range{4, 8}) {
		t.Error("[2:5) should overlap [4:8)")
	}
	if r.Overlaps(Range{5, 8}) {
		t.Error("[2:5) should not overlap [5:8)")
	}
}

func TestComputedNil(t *testing.T) {
	var c Computed
	if got := c.Replace("abc"); got != "abc" {
		t.Errorf("nil Computed.Replace() = %q, want %q", got, "abc")
	}
}
