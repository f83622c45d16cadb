package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
)

// chatKeyMap holds the chat screen bindings
type chatKeyMap struct {
	Send     key.Binding
	Copy     key.Binding
	OpenWeb  key.Binding
	OpenRepo key.Binding
	Quit     key.Binding
}

func defaultChatKeys() chatKeyMap {
	return chatKeyMap{
		Send:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Send")),
		Copy:     key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("^Y", "Copy reply")),
		OpenWeb:  key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("^O", "Open Web")),
		OpenRepo: key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("^G", "Repo")),
		Quit:     key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("Esc", "Quit")),
	}
}

// shortHelp lists the bindings shown in the status bar
func (k chatKeyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Copy, k.OpenWeb, k.OpenRepo, k.Quit}
}

// chatViewportKeys scrolls the chat log with page keys only. Letter and arrow
// keys belong to the draft.
func chatViewportKeys() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
	}
}

// consoleKeyMap holds the boot and console bindings
type consoleKeyMap struct {
	Submit key.Binding
	Skip   key.Binding
	Quit   key.Binding
}

func defaultConsoleKeys() consoleKeyMap {
	return consoleKeyMap{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Submit")),
		Skip:   key.NewBinding(key.WithKeys("esc", " "), key.WithHelp("Esc", "Skip")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("^C", "Quit")),
	}
}
