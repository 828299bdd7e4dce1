// Package clipboard writes text to the system clipboard.
package clipboard

import (
	"sync"

	"golang.design/x/clipboard"

	"github.com/zhubert/chatpane/internal/errors"
	"github.com/zhubert/chatpane/internal/logger"
)

var (
	initOnce sync.Once
	initErr  error

	// writer is swapped out in tests so they never touch the real clipboard
	writer = systemWrite
)

func systemWrite(text string) error {
	initOnce.Do(func() {
		initErr = clipboard.Init()
		if initErr != nil {
			logger.WithComponent("clipboard").Warn("failed to initialize clipboard", "error", initErr)
		}
	})
	if initErr != nil {
		return initErr
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

// WriteText copies text to the clipboard. Empty text is rejected.
func WriteText(text string) error {
	const op errors.Op = "clipboard.WriteText"
	if text == "" {
		return errors.E(op, errors.KindInvalid, "nothing to copy")
	}
	if err := writer(text); err != nil {
		return errors.E(op, errors.KindIO, err)
	}
	logger.WithComponent("clipboard").Debug("copied text", "bytes", len(text))
	return nil
}

// SetWriter replaces the clipboard backend. Used in tests.
func SetWriter(fn func(string) error) {
	writer = fn
}

// ResetWriter restores the system clipboard backend.
func ResetWriter() {
	writer = systemWrite
}
