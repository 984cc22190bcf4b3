package engine

import (
	"fmt"

	"github.com/palemoky/elite-card-game/internal/apperrors"
	"github.com/palemoky/elite-card-game/internal/game/card"
)

// DealerDraw 选庄时某个玩家抽到的牌
type DealerDraw struct {
	Seat int
	Card card.Card
}

// DrawForDealer 开局选庄：洗一副新牌，每个玩家从牌顶各抽一张。
// 只在整局的第一回合前进行，之后的回合由上回合赢家坐庄。
func (g *Game) DrawForDealer() error {
	if g.phase != PhaseSetup {
		return apperrors.ErrWrongPhase
	}

	g.deck = card.NewDeck(g.rng)
	g.selections = make([]DealerDraw, 0, len(g.players))
	for _, p := range g.players {
		if p.OptedOut {
			continue
		}
		c, ok := g.deck.Draw()
		if !ok {
			return apperrors.ErrDeckExhausted
		}
		g.selections = append(g.selections, DealerDraw{Seat: p.Seat, Card: c})
	}

	g.phase = PhaseDealerSelection
	g.message = `Each player has drawn a card. Click "Determine Dealer" to see who deals first.`
	return nil
}

// ResolveDealer 根据抽到的牌决定庄家：useHighest 为 true 取序号最大者，
// 否则取最小者。从左到右扫描，先抽到的赢下平局。
func (g *Game) ResolveDealer(useHighest bool) error {
	if g.phase != PhaseDealerSelection {
		return apperrors.ErrWrongPhase
	}

	best := g.selections[0]
	for _, sel := range g.selections[1:] {
		if useHighest {
			if sel.Card.Rank.Order() > best.Card.Rank.Order() {
				best = sel
			}
		} else {
			if sel.Card.Rank.Order() < best.Card.Rank.Order() {
				best = sel
			}
		}
	}

	for _, p := range g.players {
		p.IsDealer = p.Seat == best.Seat
	}
	g.currentPlayer = best.Seat

	// 回合用牌必须是完整的一副，选庄抽掉的牌随重洗回到牌堆
	g.deck = card.NewDeck(g.rng)
	g.phase = PhaseDealing
	g.lastEvent = EventDealerChosen
	g.message = fmt.Sprintf("%s deals first! (Drew %s)",
		g.players[best.Seat].Name, best.Card)
	return nil
}
