// Package router keeps the stack of open screens. Screens navigate by
// returning one of the Cmd helpers; the router applies the resulting
// message before anything reaches the active screen.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vidya/internal/screen"
)

// PushScreenMsg opens Screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the top screen.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the top screen for Screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// ResetScreenMsg drops every screen and starts over from Screen, as on
// sign-out.
type ResetScreenMsg struct {
	Screen screen.Screen
}

// PushCmd, PopCmd, ReplaceCmd and ResetCmd wrap the navigation messages
// as commands.
func PushCmd(s screen.Screen) tea.Cmd    { return func() tea.Msg { return PushScreenMsg{Screen: s} } }
func PopCmd() tea.Cmd                    { return func() tea.Msg { return PopScreenMsg{} } }
func ReplaceCmd(s screen.Screen) tea.Cmd { return func() tea.Msg { return ReplaceScreenMsg{Screen: s} } }
func ResetCmd(s screen.Screen) tea.Cmd   { return func() tea.Msg { return ResetScreenMsg{Screen: s} } }

// Router is a stack of screens; the last one is active. It never empties.
type Router struct {
	stack []screen.Screen
}

// New returns a router showing initial.
func New(initial screen.Screen) *Router {
	return &Router{stack: []screen.Screen{initial}}
}

// Push opens s above the active screen.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the active screen unless it is the last one. The screen it
// uncovers receives screen.ResumeMsg.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) < 2 {
		return nil
	}
	r.stack[len(r.stack)-1] = nil
	r.stack = r.stack[:len(r.stack)-1]
	return func() tea.Msg { return screen.ResumeMsg{} }
}

// Replace swaps the active screen for s.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// Reset makes s the only screen.
func (r *Router) Reset(s screen.Screen) tea.Cmd {
	clear(r.stack)
	r.stack = append(r.stack[:0], s)
	return s.Init()
}

// Active returns the top screen.
func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of open screens.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case ResetScreenMsg:
		return r.Reset(msg.Screen)
	}

	top := len(r.stack) - 1
	next, cmd := r.stack[top].Update(msg)
	r.stack[top] = next
	return cmd
}

// View renders the active screen at the given size.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
