package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/elite-card-game/internal/game/engine"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case clearErrMsg:
		m.err = ""
		return m, nil

	case autoDealTickMsg:
		return m.handleAutoDealTick()

	case nextRoundMsg:
		// 过期的定时器直接忽略（玩家可能已经手动开始了下一回合）
		if m.game != nil && m.game.Phase() == engine.PhaseRoundEnd && m.game.Round() == msg.round {
			return m.startNextRound()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.game == nil || m.game.Phase() == engine.PhaseSetup {
		return m.handleSetupKey(msg)
	}

	switch m.game.Phase() {
	case engine.PhaseDealerSelection:
		return m.handleDealerSelectionKey(msg)
	case engine.PhaseDealing:
		return m.handleDealingKey(msg)
	case engine.PhasePlaying:
		return m.handlePlayingKey(msg)
	case engine.PhaseRoundEnd:
		return m.handleRoundEndKey(msg)
	case engine.PhaseGameEnd:
		return m.handleGameEndKey(msg)
	}
	return m, nil
}

// handleSetupKey 开局设置：人数、方向、玩家名
func (m *Model) handleSetupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyUp:
		if m.playerCount < 6 {
			m.playerCount++
		}
		return m, nil

	case tea.KeyDown:
		if m.playerCount > 2 {
			m.playerCount--
		}
		return m, nil

	case tea.KeyTab:
		if m.direction == engine.Clockwise {
			m.direction = engine.Anticlockwise
		} else {
			m.direction = engine.Clockwise
		}
		return m, nil

	case tea.KeyEnter:
		return m.startGame()
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// startGame 创建引擎并立刻进入选庄抽牌
func (m *Model) startGame() (tea.Model, tea.Cmd) {
	var names []string
	if v := strings.TrimSpace(m.nameInput.Value()); v != "" {
		for _, name := range strings.Split(v, ",") {
			names = append(names, strings.TrimSpace(name))
		}
	}

	g, err := engine.NewGame(engine.Options{
		PlayerCount: m.playerCount,
		PlayerNames: names,
		Direction:   m.direction,
	})
	if err != nil {
		return m.fail(err)
	}
	m.game = g

	if err := m.game.DrawForDealer(); err != nil {
		return m.fail(err)
	}
	m.nameInput.Blur()
	return m, nil
}

// handleDealerSelectionKey 亮牌后选择最大还是最小的做庄
func (m *Model) handleDealerSelectionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyLeft, tea.KeyRight:
		m.useHighest = !m.useHighest
		return m, nil

	case tea.KeyEnter:
		if err := m.game.ResolveDealer(m.useHighest); err != nil {
			return m.fail(err)
		}
		m.playEventSound()
		return m, nil
	}
	return m, nil
}

// handleDealingKey 发牌阶段：先定发牌方式，再一张张发
func (m *Model) handleDealingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.game.Snapshot()
	if !snap.Dealing.Started {
		return m.handleDealChoiceKey(msg)
	}

	switch msg.String() {
	case " ":
		return m.dealNext()

	case "a", "A":
		m.autoDeal = !m.autoDeal
		m.manualTarget = false
		if m.autoDeal {
			return m, autoDealTick()
		}
		return m, nil

	case "m", "M":
		m.manualTarget = !m.manualTarget
		m.autoDeal = false
		m.targetCursor = snap.Dealing.TargetSeat
		return m, nil
	}

	if m.manualTarget {
		switch msg.Type {
		case tea.KeyLeft:
			m.targetCursor = (m.targetCursor - 1 + len(snap.Players)) % len(snap.Players)
		case tea.KeyRight:
			m.targetCursor = (m.targetCursor + 1) % len(snap.Players)
		case tea.KeyEnter:
			// 发给光标指向的玩家，发错人的后果由引擎按犯规结算
			if err := m.game.DealOneCardTo(snap.Players[m.targetCursor].ID); err != nil {
				return m.fail(err)
			}
			m.playEventSound()
			m.afterDeal()
		}
	}
	return m, nil
}

// handleDealChoiceKey 庄家选直发还是先洗掉几张
func (m *Model) handleDealChoiceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyLeft, tea.KeyRight:
		if m.dealChoice == engine.DealStraight {
			m.dealChoice = engine.DealFlush
		} else {
			m.dealChoice = engine.DealStraight
		}
		return m, nil

	case tea.KeyUp:
		if m.dealChoice == engine.DealFlush && m.flushCount < engine.MaxFlushCount {
			m.flushCount++
		}
		return m, nil

	case tea.KeyDown:
		if m.dealChoice == engine.DealFlush && m.flushCount > 1 {
			m.flushCount--
		}
		return m, nil

	case tea.KeyEnter:
		count := 0
		if m.dealChoice == engine.DealFlush {
			count = m.flushCount
		}
		if err := m.game.SetDealerChoice(m.dealChoice, count); err != nil {
			return m.fail(err)
		}
		if err := m.game.StartDealing(); err != nil {
			return m.fail(err)
		}
		m.autoDeal = true
		return m, autoDealTick()
	}
	return m, nil
}

func (m *Model) handleAutoDealTick() (tea.Model, tea.Cmd) {
	if !m.autoDeal || m.game == nil || m.game.Phase() != engine.PhaseDealing {
		return m, nil
	}
	return m.dealNext()
}

// dealNext 按引擎期望的顺序发出下一张
func (m *Model) dealNext() (tea.Model, tea.Cmd) {
	if err := m.game.DealOneCard(); err != nil {
		return m.fail(err)
	}
	m.playEventSound()
	m.afterDeal()
	if m.autoDeal && m.game.Phase() == engine.PhaseDealing {
		return m, autoDealTick()
	}
	return m, nil
}

// afterDeal 发牌结束时清掉发牌期的界面状态
func (m *Model) afterDeal() {
	if m.game.Phase() != engine.PhaseDealing {
		m.autoDeal = false
		m.manualTarget = false
		m.cardCursor = 0
	}
}

// handlePlayingKey 出牌阶段：同屏轮流操作，手牌永远显示当前行动玩家的
func (m *Model) handlePlayingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.game.Snapshot()

	if m.confirmOptOut {
		switch msg.String() {
		case "y", "Y":
			m.confirmOptOut = false
			current := snap.Players[snap.CurrentSeat]
			if err := m.game.OptOut(current.ID); err != nil {
				return m.fail(err)
			}
			m.cardCursor = 0
			return m.afterPlay()
		default:
			m.confirmOptOut = false
		}
		return m, nil
	}

	hand := snap.Players[snap.CurrentSeat].Hand

	switch msg.Type {
	case tea.KeyLeft:
		if m.cardCursor > 0 {
			m.cardCursor--
		}
		return m, nil

	case tea.KeyRight:
		if m.cardCursor < len(hand)-1 {
			m.cardCursor++
		}
		return m, nil

	case tea.KeyEnter:
		current := snap.Players[snap.CurrentSeat]
		if err := m.game.PlayCard(current.ID, m.cardCursor); err != nil {
			return m.fail(err)
		}
		m.playEventSound()
		m.cardCursor = 0
		return m.afterPlay()
	}

	if s := msg.String(); s == "o" || s == "O" {
		m.confirmOptOut = true
	}
	return m, nil
}

// afterPlay 出牌或退出后检查回合是否结束
func (m *Model) afterPlay() (tea.Model, tea.Cmd) {
	if m.game.Phase() == engine.PhaseRoundEnd {
		return m, m.scheduleNextRound()
	}
	return m, nil
}

func (m *Model) handleRoundEndKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// 回车跳过间歇直接开下一回合
	if msg.Type == tea.KeyEnter {
		return m.startNextRound()
	}
	return m, nil
}

func (m *Model) startNextRound() (tea.Model, tea.Cmd) {
	if err := m.game.StartNextRound(); err != nil {
		return m.fail(err)
	}
	m.dealChoice = engine.DealStraight
	m.flushCount = 1
	return m, nil
}

func (m *Model) handleGameEndKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r", "R":
		m.game.Reset()
		m.game = nil
		m.nameInput.Focus()
		m.cardCursor = 0
		m.confirmOptOut = false
		return m, textinput.Blink
	case "q", "Q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

// fail 把引擎返回的错误显示几秒
func (m *Model) fail(err error) (tea.Model, tea.Cmd) {
	m.err = err.Error()
	return m, clearError()
}
