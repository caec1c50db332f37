package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"shiguang/internal/adapters/tui/styles"
	"shiguang/internal/application/commands"
	"shiguang/internal/domain"
)

var rewardsBack = key.NewBinding(
	key.WithKeys("esc", "q"),
	key.WithHelp("esc", "back"),
)

// RewardsModel shows the achievements and activity of the current user
type RewardsModel struct {
	ViewState
	deps    Deps
	profile *domain.Profile
}

// NewRewardsModel creates a new rewards view
func NewRewardsModel(deps Deps) *RewardsModel {
	return &RewardsModel{deps: deps}
}

type profileLoadedMsg struct {
	profile *domain.Profile
}

// Init computes the profile
func (m *RewardsModel) Init() tea.Cmd {
	return func() tea.Msg {
		s := m.deps.Store
		p, err := commands.NewRewardsCommand(s, s, s, m.deps.Env.Clock).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return profileLoadedMsg{p}
	}
}

// Update handles messages for the rewards view
func (m *RewardsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case profileLoadedMsg:
		m.profile = msg.profile
	case errMsg:
		m.SetMessage(msg.err.Error(), true)
	case tea.KeyMsg:
		if key.Matches(msg, rewardsBack) {
			return m, func() tea.Msg { return SwitchToListMsg{} }
		}
	}
	return m, nil
}

// View renders the rewards view
func (m *RewardsModel) View() string {
	v := NewViewBuilder().Title("成就")
	v.Message(m.Message, m.MessageErr)

	p := m.profile
	if p == nil {
		return v.Muted("Loading...").BlankLine().Help(rewardsBack).String()
	}

	if p.User != nil {
		v.Subtitle(fmt.Sprintf("%s · 已加入 %d 天", p.User.Name, p.TotalDays))
	} else {
		v.Subtitle("未登录 · 当前统计本机全部记录")
	}

	v.Line(RenderLabelValue("活跃度", strings.Repeat("★", p.ActivityLevel)+styles.MutedText.Render(strings.Repeat("☆", 10-p.ActivityLevel))))
	v.Line(RenderLabelValue("最长连续", fmt.Sprintf("%d 天", p.Streak)))

	if len(p.Badges) > 0 {
		var badges []string
		for _, b := range p.Badges {
			badges = append(badges, styles.Badge.Render(b))
		}
		v.BlankLine().Line(strings.Join(badges, ""))
	}

	v.BlankLine()
	for _, a := range p.Achievements {
		name := a.Name
		if a.Unlocked {
			name = styles.Success.Render("✓ " + name)
		} else {
			name = styles.Item.Render("  " + name)
		}
		v.Line(padRight(name, 16) + " " + RenderProgress(a.Progress))
		v.Muted("    " + a.Description)
	}

	v.BlankLine()
	v.Help(rewardsBack)
	return v.String()
}
