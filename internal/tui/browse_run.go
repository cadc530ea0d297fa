// Package tui implements the interactive service browser: a tree of
// resources and operations that can be run in place, with streamed
// websocket events rendered live.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// RunBrowse launches the TUI browser over the description at location.
func RunBrowse(ctx context.Context, location string) error {
	ti := textinput.New()
	ti.Placeholder = "http://example.com/api-docs"
	ti.Prompt = ""
	ti.CharLimit = 2048
	ti.Width = 60

	ai := textinput.New()
	ai.Placeholder = "petId=42 status=available"
	ai.Prompt = ""
	ai.CharLimit = 2048
	ai.Width = 60

	m := &model{
		ctx:       ctx,
		location:  normalizeLocation(location),
		locInput:  ti,
		argsInput: ai,
		viewport:  viewport.New(0, 0),
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	if m.client != nil {
		m.client.Close()
	}
	return err
}
