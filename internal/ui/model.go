// Package ui 实现本地同屏对战的终端界面
package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/elite-card-game/internal/config"
	"github.com/palemoky/elite-card-game/internal/game/engine"
	"github.com/palemoky/elite-card-game/internal/sound"
)

// 本地消息类型
type (
	// autoDealTickMsg 自动发牌节拍
	autoDealTickMsg struct{}
	// nextRoundMsg 回合间歇结束
	nextRoundMsg struct{ round int }
	// clearErrMsg 清除错误提示
	clearErrMsg struct{}
)

const autoDealInterval = 200 * time.Millisecond

// Model 牌桌的 Bubble Tea model。所有游戏规则都在引擎里，
// 这里只负责按键到引擎操作的映射和状态渲染。
type Model struct {
	game         *engine.Game
	cfg          *config.Config
	soundManager *sound.SoundManager

	width  int
	height int

	// 开局设置
	nameInput   textinput.Model
	playerCount int
	direction   engine.Direction

	// 选庄
	useHighest bool

	// 发牌
	dealChoice   engine.DealChoice
	flushCount   int
	autoDeal     bool
	manualTarget bool
	targetCursor int

	// 出牌
	cardCursor    int
	confirmOptOut bool

	err string
}

// New 创建牌桌 model，开局默认值来自配置文件
func New(cfg *config.Config) *Model {
	ti := textinput.New()
	ti.Placeholder = "玩家名，用逗号分隔（留空用默认名）..."
	ti.CharLimit = 80
	ti.Width = 50
	ti.SetValue(strings.Join(cfg.Game.PlayerNames, ","))
	ti.Focus()

	direction := engine.Clockwise
	if cfg.Game.Direction == "anticlockwise" {
		direction = engine.Anticlockwise
	}

	return &Model{
		cfg:          cfg,
		nameInput:    ti,
		playerCount:  cfg.Game.PlayerCount,
		direction:    direction,
		useHighest:   true,
		dealChoice:   engine.DealStraight,
		flushCount:   1,
		soundManager: sound.NewSoundManager(),
	}
}

func (m *Model) Init() tea.Cmd {
	if m.cfg.UI.Sound {
		go func() {
			_ = m.soundManager.Init()
		}()
	}
	return textinput.Blink
}

// autoDealTick 发牌动画的下一拍
func autoDealTick() tea.Cmd {
	return tea.Tick(autoDealInterval, func(time.Time) tea.Msg {
		return autoDealTickMsg{}
	})
}

// scheduleNextRound 回合结束后的间歇，时长来自配置
func (m *Model) scheduleNextRound() tea.Cmd {
	round := m.game.Round()
	return tea.Tick(m.cfg.Game.RoundDelayDuration(), func(time.Time) tea.Msg {
		return nextRoundMsg{round: round}
	})
}

func clearError() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearErrMsg{}
	})
}

// playEventSound 把引擎最近一次事件映射为音效
func (m *Model) playEventSound() {
	if m.game != nil {
		m.soundManager.PlayEvent(m.game.LastEvent())
	}
}
