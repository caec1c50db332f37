package views

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"shiguang/internal/application/cascade"
	"shiguang/internal/application/commands"
	"shiguang/internal/domain"
	"shiguang/internal/ports"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Deps are the collaborators shared by every view.
type Deps struct {
	Store     ports.Store
	Cal       ports.Calendar
	Env       cascade.Env
	Clipboard ports.Clipboard
	YearStart int
	YearEnd   int
}

func (d Deps) yearRange(kind domain.CalendarKind) (int, int) {
	start, end := d.YearStart, d.YearEnd
	if start == 0 {
		start = domain.DefaultLunarStartYear
		if kind == domain.KindSolar {
			start = domain.DefaultSolarStartYear
		}
	}
	if end == 0 {
		end = domain.DefaultEndYear
	}
	return start, end
}

// currentUserID returns the logged-in user's ID, or "" when logged out.
func (d Deps) currentUserID(ctx context.Context) string {
	u, err := commands.NewCurrentUserCommand(d.Store, d.Store).Execute(ctx)
	if err != nil || u == nil {
		return ""
	}
	return u.ID
}

// TickMsg refreshes the live countdowns.
type TickMsg time.Time

// Tick schedules the next TickMsg one second from now.
func Tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// View switching messages
type (
	SwitchToListMsg     struct{}
	SwitchToCreateMsg   struct{}
	SwitchToHelpMsg     struct{}
	SwitchToMessagesMsg struct{}
	SwitchToRewardsMsg  struct{}
	SwitchToDetailMsg   struct{ Event *domain.Event }
	SwitchToDeleteMsg   struct{ Event *domain.Event }
)

var errClipboardUnavailable = errors.New("clipboard unavailable")

type errMsg struct {
	err error
}

type successMsg struct {
	message string
}

// copyCmd places text on the clipboard.
func copyCmd(clip ports.Clipboard, text, confirmation string) tea.Cmd {
	return func() tea.Msg {
		if clip == nil {
			return errMsg{errClipboardUnavailable}
		}
		if err := clip.Copy(text); err != nil {
			return errMsg{err}
		}
		return successMsg{confirmation}
	}
}
