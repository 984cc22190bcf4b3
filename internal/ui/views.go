package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/elite-card-game/internal/game/card"
	"github.com/palemoky/elite-card-game/internal/game/engine"
)

func (m *Model) View() string {
	var content string
	if m.game == nil || m.game.Phase() == engine.PhaseSetup {
		content = m.setupView()
	} else {
		snap := m.game.Snapshot()
		switch snap.Phase {
		case engine.PhaseDealerSelection:
			content = m.dealerSelectionView(snap)
		case engine.PhaseDealing:
			content = m.dealingView(snap)
		case engine.PhasePlaying:
			content = m.playingView(snap)
		case engine.PhaseRoundEnd:
			content = m.roundEndView(snap)
		case engine.PhaseGameEnd:
			content = m.gameEndView(snap)
		}
	}

	if m.err != "" {
		content += "\n" + errorStyle.Render("⚠️ "+m.err)
	}

	if m.width == 0 {
		return docStyle.Render(content)
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) setupView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle("🃏 精英堂"))
	sb.WriteString("\n\n")

	direction := "顺时针"
	if m.direction == engine.Anticlockwise {
		direction = "逆时针"
	}
	fmt.Fprintf(&sb, "玩家人数: %s  （↑/↓ 调整）\n", selectStyle.Render(fmt.Sprintf("%d", m.playerCount)))
	fmt.Fprintf(&sb, "出牌方向: %s  （Tab 切换）\n\n", selectStyle.Render(direction))

	sb.WriteString(m.nameInput.View())
	sb.WriteString("\n\n")
	sb.WriteString(hintStyle.Render("回车开始，Esc 退出"))

	return boxStyle.Render(sb.String())
}

// dealerSelectionView 亮出各家抽到的牌，选定庄规则
func (m *Model) dealerSelectionView(snap engine.Snapshot) string {
	var sb strings.Builder

	sb.WriteString(titleStyle("🎲 抽牌定庄"))
	sb.WriteString("\n\n")

	for _, sel := range snap.Selections {
		p := snap.Players[sel.Seat]
		fmt.Fprintf(&sb, "  %s 抽到 %s\n", p.Name, renderInlineCard(sel.Card))
	}
	sb.WriteString("\n")

	highest, lowest := "最大者坐庄", "最小者坐庄"
	if m.useHighest {
		highest = selectStyle.Render("▶ " + highest)
		lowest = "  " + lowest
	} else {
		highest = "  " + highest
		lowest = selectStyle.Render("▶ " + lowest)
	}
	sb.WriteString(highest + "\n" + lowest + "\n\n")
	sb.WriteString(hintStyle.Render("←/→ 切换，回车确定"))

	return boxStyle.Render(sb.String())
}

func (m *Model) dealingView(snap engine.Snapshot) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\n\n", titleStyle(fmt.Sprintf("🂠 第 %d 回合 · 发牌", snap.Round)))
	sb.WriteString(m.renderPlayers(snap))
	sb.WriteString("\n")

	if !snap.Dealing.Started {
		sb.WriteString(m.renderDealChoice(snap))
	} else {
		sb.WriteString(m.renderDealProgress(snap))
	}

	sb.WriteString("\n" + m.renderMessage(snap))
	return sb.String()
}

// renderDealChoice 庄家选择发牌方式
func (m *Model) renderDealChoice(snap engine.Snapshot) string {
	var sb strings.Builder

	dealer := snap.Players[snap.DealerSeat]
	fmt.Fprintf(&sb, "%s %s 选择发牌方式:\n\n", DealerIcon, dealer.Name)

	straight, flush := "直接发牌", fmt.Sprintf("先洗掉 %d 张（↑/↓ 调整）", m.flushCount)
	if m.dealChoice == engine.DealStraight {
		straight = selectStyle.Render("▶ " + straight)
		flush = "  " + flush
	} else {
		straight = "  " + straight
		flush = selectStyle.Render("▶ " + flush)
	}
	sb.WriteString(straight + "\n" + flush + "\n\n")
	sb.WriteString(hintStyle.Render("←/→ 切换，回车开始发牌"))

	return boxStyle.Render(sb.String())
}

// renderDealProgress 一张张发牌的进度
func (m *Model) renderDealProgress(snap engine.Snapshot) string {
	var sb strings.Builder

	if len(snap.FlushedCards) > 0 {
		fmt.Fprintf(&sb, "洗掉的牌: %s\n", renderInlineCards(snap.FlushedCards))
	}
	fmt.Fprintf(&sb, "牌堆剩余: %d 张\n\n", snap.DeckSize)

	if snap.Dealing.TargetSeat >= 0 {
		target := snap.Players[snap.Dealing.TargetSeat]
		fmt.Fprintf(&sb, "下一张发给: %s（第 %d/%d 张）\n",
			selectStyle.Render(target.Name),
			snap.Dealing.CardsDealt+1, snap.Dealing.CardsInPhase)
	}

	if m.manualTarget {
		var seats []string
		for i, p := range snap.Players {
			name := p.Name
			if p.OptedOut {
				name = OptedOutIcon + name
			}
			if i == m.targetCursor {
				name = selectStyle.Render("▶" + name)
			}
			seats = append(seats, name)
		}
		sb.WriteString("\n发给: " + strings.Join(seats, "  ") + "\n")
		sb.WriteString(hintStyle.Render("←/→ 选人，回车发牌（发错人庄家吃 2 点犯规），M 返回"))
	} else if m.autoDeal {
		sb.WriteString(hintStyle.Render("自动发牌中... A 暂停，M 手动指定接牌人"))
	} else {
		sb.WriteString(hintStyle.Render("空格发下一张，A 自动发牌，M 手动指定接牌人"))
	}

	return sb.String()
}

func (m *Model) playingView(snap engine.Snapshot) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\n\n", titleStyle(fmt.Sprintf("🃏 第 %d 回合", snap.Round)))
	sb.WriteString(m.renderPlayers(snap))
	sb.WriteString("\n")
	sb.WriteString(m.renderTable(snap))
	sb.WriteString("\n")

	current := snap.Players[snap.CurrentSeat]
	sb.WriteString(m.renderHand(current))
	sb.WriteString("\n")

	if m.confirmOptOut {
		sb.WriteString(warnStyle.Render(fmt.Sprintf("%s 确定退出本局？（Y 确定，其他键取消）", current.Name)))
	} else {
		sb.WriteString(promptStyle.Render(hintStyle.Render("←/→ 选牌，回车打出，O 退出本局")))
	}

	sb.WriteString("\n" + m.renderMessage(snap))
	return sb.String()
}

// renderTable 桌面中央：叫牌和本墩已出的牌
func (m *Model) renderTable(snap engine.Snapshot) string {
	var sb strings.Builder

	if snap.CallingCard != nil {
		fmt.Fprintf(&sb, "叫牌花色: %s\n", renderInlineCard(*snap.CallingCard))
	} else {
		sb.WriteString("等待领出叫牌...\n")
	}

	if len(snap.Trick) > 0 {
		var plays []string
		for _, play := range snap.Trick {
			plays = append(plays, fmt.Sprintf("%s %s",
				snap.Players[play.Seat].Name, renderInlineCard(play.Card)))
		}
		sb.WriteString("本墩: " + strings.Join(plays, " · "))
	}

	return boxStyle.Render(sb.String())
}

// renderHand 当前行动玩家的手牌，光标牌高亮
func (m *Model) renderHand(p engine.PlayerView) string {
	if len(p.Hand) == 0 {
		return boxStyle.Render("(无手牌)")
	}

	var rankStr, suitStr, markStr strings.Builder
	for i, c := range p.Hand {
		style := blackStyle
		if c.Suit.Color() == card.Red {
			style = redStyle
		}
		style = style.Align(lipgloss.Center).Margin(0, 1)
		rankStr.WriteString(style.Render(fmt.Sprintf("%-2s", c.Rank.String())))
		suitStr.WriteString(style.Render(fmt.Sprintf("%-2s", c.Suit.String())))
		if i == m.cardCursor {
			markStr.WriteString("  ▲ ")
		} else {
			markStr.WriteString("    ")
		}
	}

	title := fmt.Sprintf("%s 的手牌（%d 张）", p.Name, len(p.Hand))
	content := lipgloss.JoinVertical(lipgloss.Center, title, rankStr.String(), suitStr.String(), markStr.String())
	return boxStyle.Render(content)
}

// renderPlayers 所有玩家的状态行
func (m *Model) renderPlayers(snap engine.Snapshot) string {
	var sb strings.Builder
	for i, p := range snap.Players {
		icon := "  "
		if i == snap.CurrentSeat && !p.OptedOut {
			icon = TurnIcon
		}
		name := p.Name
		if p.IsDealer {
			name = DealerIcon + " " + name
		}
		if p.OptedOut {
			name = OptedOutIcon + " " + hintStyle.Render(name)
		}

		rings := strings.Repeat(GoldIcon, p.Rings.Gold) + strings.Repeat(PlatinumIcon, p.Rings.Platinum)
		fmt.Fprintf(&sb, "%s %-20s %2d 点  %d 张牌  %s\n", icon, name, p.Points, len(p.Hand), rings)
	}
	return boxStyle.Render(sb.String())
}

func (m *Model) roundEndView(snap engine.Snapshot) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\n\n", titleStyle(fmt.Sprintf("🏁 第 %d 回合结束", snap.Round)))
	sb.WriteString(m.renderPlayers(snap))
	sb.WriteString("\n")
	sb.WriteString(m.renderHistory(snap))
	sb.WriteString("\n" + m.renderMessage(snap))
	sb.WriteString("\n\n" + hintStyle.Render(fmt.Sprintf("%s 后自动开始下一回合，回车跳过等待", m.cfg.Game.RoundDelayDuration())))
	return sb.String()
}

// renderHistory 各回合最后一墩的记录
func (m *Model) renderHistory(snap engine.Snapshot) string {
	if len(snap.History) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("对局回顾:\n")
	for _, rec := range snap.History {
		winner := snap.Players[rec.WinnerSeat]
		fmt.Fprintf(&sb, "  第 %d 回合  %s 以 %s 取胜\n",
			rec.Round, winner.Name, renderInlineCard(rec.WinningCard))
	}
	return boxStyle.Render(sb.String())
}

func (m *Model) gameEndView(snap engine.Snapshot) string {
	var sb strings.Builder

	sb.WriteString(titleStyle("🎉 游戏结束"))
	sb.WriteString("\n\n")
	sb.WriteString(msgStyle.Render(snap.Message))
	sb.WriteString("\n\n")
	sb.WriteString(m.renderPlayers(snap))
	sb.WriteString("\n")
	sb.WriteString(m.renderHistory(snap))
	sb.WriteString("\n\n" + hintStyle.Render("R 再来一局，Q 退出"))
	return sb.String()
}

// renderMessage 引擎产出的提示语，犯规类消息用醒目颜色
func (m *Model) renderMessage(snap engine.Snapshot) string {
	if snap.Message == "" {
		return ""
	}
	switch snap.LastEvent {
	case engine.EventFoul, engine.EventKnockout:
		return warnStyle.Render(snap.Message)
	default:
		return msgStyle.Render(snap.Message)
	}
}

// renderInlineCard 单张牌的行内表示，红花色标红
func renderInlineCard(c card.Card) string {
	if c.Suit.Color() == card.Red {
		return redStyle.Render(" " + c.ID + " ")
	}
	return blackStyle.Render(" " + c.ID + " ")
}

func renderInlineCards(cards []card.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = renderInlineCard(c)
	}
	return strings.Join(parts, " ")
}
