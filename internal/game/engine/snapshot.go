package engine

import (
	"slices"

	"github.com/palemoky/elite-card-game/internal/game/card"
)

// PlayerView 渲染层看到的玩家
type PlayerView struct {
	ID       string
	Name     string
	Seat     int
	Hand     []card.Card
	Points   int
	IsDealer bool
	OptedOut bool
	Rings    Rings
}

// DealProgress 发牌进度
type DealProgress struct {
	Started      bool
	Choice       DealChoice
	FlushCount   int
	Phase        int // 0 或 1
	CardsInPhase int // 本阶段每人应收张数
	TargetSeat   int // 下一张应发给谁，-1 表示未在发牌
	CardsDealt   int // 当前目标已收张数
}

// Snapshot 游戏状态的只读快照。所有切片都是拷贝，
// 渲染层拿到后引擎继续推进也不会改变它。
type Snapshot struct {
	Phase         Phase
	Direction     Direction
	Round         int
	Message       string
	LastEvent     Event
	Players       []PlayerView
	CurrentSeat   int
	DealerSeat    int
	DeckSize      int
	Selections    []DealerDraw
	Dealing       DealProgress
	CallingCard   *card.Card
	Trick         []Play
	Discards      []card.Card
	FlushedCards  []card.Card
	History       []TrickRecord
	ActivePlayers int
}

// Snapshot 产出当前状态的快照，供渲染层重建整个可见牌桌
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:         g.phase,
		Direction:     g.direction,
		Round:         g.round,
		Message:       g.message,
		LastEvent:     g.lastEvent,
		CurrentSeat:   g.currentPlayer,
		DealerSeat:    g.dealerSeat(),
		DeckSize:      len(g.deck),
		Selections:    slices.Clone(g.selections),
		Trick:         slices.Clone(g.trick),
		Discards:      slices.Clone(g.discards),
		FlushedCards:  slices.Clone(g.flushed),
		History:       slices.Clone(g.history),
		ActivePlayers: g.activeCount(),
	}

	if g.callingCard != nil {
		calling := *g.callingCard
		snap.CallingCard = &calling
	}

	snap.Players = make([]PlayerView, len(g.players))
	for i, p := range g.players {
		snap.Players[i] = PlayerView{
			ID:       p.ID,
			Name:     p.Name,
			Seat:     p.Seat,
			Hand:     slices.Clone(p.Hand),
			Points:   p.Points,
			IsDealer: p.IsDealer,
			OptedOut: p.OptedOut,
			Rings:    p.Rings,
		}
	}

	snap.Dealing = DealProgress{
		Started:    g.dealOrder != nil,
		Choice:     g.dealerChoice,
		FlushCount: g.flushCount,
		Phase:      g.dealPhase,
		TargetSeat: -1,
		CardsDealt: g.cardsDealt,
	}
	if g.dealPhase < len(cardsPerPhase) {
		snap.Dealing.CardsInPhase = cardsPerPhase[g.dealPhase]
	}
	if g.dealOrder != nil && g.dealPos < len(g.dealOrder) {
		snap.Dealing.TargetSeat = g.dealOrder[g.dealPos]
	}

	return snap
}

// Phase 当前阶段
func (g *Game) Phase() Phase { return g.phase }

// Message 最近一条用户可见消息
func (g *Game) Message() string { return g.message }

// LastEvent 最近一次事件
func (g *Game) LastEvent() Event { return g.lastEvent }

// Round 当前回合数，从 1 开始
func (g *Game) Round() int { return g.round }
