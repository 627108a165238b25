package tui

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type KeyHandler func(m Model, key string) (Model, tea.Cmd, bool)

type KeyBinding struct {
	Key         string
	Label       string // shown in help instead of Key when set
	Handler     KeyHandler
	Description string
	Modes       []Mode
	Priority    int
}

func (b KeyBinding) AppliesToMode(mode Mode) bool {
	if len(b.Modes) == 0 {
		return true
	}
	for _, v := range b.Modes {
		if v == mode {
			return true
		}
	}
	return false
}

type HandlerRegistry struct {
	bindings []KeyBinding
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{}
}

func (r *HandlerRegistry) Register(b KeyBinding) {
	r.bindings = append(r.bindings, b)
	sort.SliceStable(r.bindings, func(i, j int) bool {
		return r.bindings[i].Priority > r.bindings[j].Priority
	})
}

func (r *HandlerRegistry) Handle(m Model, key string) (Model, tea.Cmd, bool) {
	for _, b := range r.bindings {
		if b.Key == key && b.AppliesToMode(m.mode) {
			next, cmd, handled := b.Handler(m, key)
			if handled {
				return next, cmd, true
			}
		}
	}
	return m, nil, false
}

func (r *HandlerRegistry) GetBindingsForMode(mode Mode) []KeyBinding {
	var out []KeyBinding
	for _, b := range r.bindings {
		if b.AppliesToMode(mode) {
			out = append(out, b)
		}
	}
	return out
}

func (r *HandlerRegistry) HelpForMode(mode Mode) string {
	bindings := r.GetBindingsForMode(mode)
	seen := make(map[string]bool)
	var parts []string
	for _, b := range bindings {
		if b.Description == "" {
			continue
		}
		label := b.Key
		if b.Label != "" {
			label = b.Label
		}
		if seen[label] {
			continue
		}
		seen[label] = true
		parts = append(parts, "["+label+"]"+b.Description)
	}
	return strings.Join(parts, " ")
}
