package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// HiddenInput prompts for a value without echoing it.
func HiddenInput(title string) (string, error) {
	var result string
	err := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&result).
		Run()
	if err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}
	return result, nil
}
