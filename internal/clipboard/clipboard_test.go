package clipboard

import (
	"errors"
	"testing"

	cerrors "github.com/zhubert/chatpane/internal/errors"
)

func TestWriteText(t *testing.T) {
	var got string
	SetWriter(func(text string) error {
		got = text
		return nil
	})
	defer ResetWriter()

	if err := WriteText("Ada: hello"); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	if got != "Ada: hello" {
		t.Errorf("clipboard got %q", got)
	}
}

func TestWriteText_Empty(t *testing.T) {
	called := false
	SetWriter(func(string) error {
		called = true
		return nil
	})
	defer ResetWriter()

	err := WriteText("")
	if !cerrors.Is(err, cerrors.KindInvalid) {
		t.Errorf("WriteText(\"\") error = %v, want KindInvalid", err)
	}
	if called {
		t.Error("backend should not be called for empty text")
	}
}

func TestWriteText_BackendError(t *testing.T) {
	SetWriter(func(string) error { return errors.New("no display") })
	defer ResetWriter()

	err := WriteText("x")
	if !cerrors.Is(err, cerrors.KindIO) {
		t.Errorf("error = %v, want KindIO", err)
	}
}
