package main

import (
	"golang.design/x/clipboard"
)

// systemClipboard adapts the OS clipboard to the engine's clipboard sink.
type systemClipboard struct{}

func newSystemClipboard() (*systemClipboard, error) {
	if err := clipboard.Init(); err != nil {
		return nil, err
	}
	return &systemClipboard{}, nil
}

func (s *systemClipboard) WriteClipboard(data []byte) error {
	clipboard.Write(clipboard.FmtText, data)
	return nil
}

func (s *systemClipboard) ReadClipboard() ([]byte, error) {
	return clipboard.Read(clipboard.FmtText), nil
}
