package engine

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/palemoky/elite-card-game/internal/apperrors"
	"github.com/palemoky/elite-card-game/internal/game/card"
)

// Phase 游戏阶段
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseDealerSelection
	PhaseDealing
	PhasePlaying
	PhaseRoundEnd
	PhaseGameEnd
)

// phaseNames 阶段名称映射表
var phaseNames = map[Phase]string{
	PhaseSetup:           "setup",
	PhaseDealerSelection: "dealer_selection",
	PhaseDealing:         "dealing",
	PhasePlaying:         "playing",
	PhaseRoundEnd:        "round_end",
	PhaseGameEnd:         "game_end",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// Direction 出牌方向
type Direction int

const (
	Clockwise Direction = iota
	Anticlockwise
)

// DealChoice 庄家的发牌选择
type DealChoice int

const (
	DealUnset    DealChoice = iota
	DealStraight            // 直接发牌
	DealFlush               // 先弃掉若干张再发
)

// Event 供渲染层消费的最近一次事件，用于触发音效等
type Event int

const (
	EventNone Event = iota
	EventDealerChosen
	EventCardDealt
	EventCardPlayed
	EventFoul
	EventTrickWon
	EventDamage
	EventRing
	EventKnockout
	EventGameEnd
)

const (
	// FoulPenalty 犯规罚分
	FoulPenalty = 2
	// KnockoutThreshold 累计达到该点数即被淘汰
	KnockoutThreshold = 12
	// MaxFlushCount 最多可弃掉的牌数
	MaxFlushCount = 5

	minPlayers = 2
	maxPlayers = 6
)

// cardsPerPhase 两阶段发牌：先每人 3 张，再每人 2 张
var cardsPerPhase = [2]int{3, 2}

// Rings 零失分赢下回合获得的奖励
type Rings struct {
	Gold     int
	Platinum int
}

// Player 牌桌上的玩家
type Player struct {
	ID       string
	Name     string
	Seat     int
	Hand     []card.Card // 顺序即界面上从左到右的顺序
	Points   int
	IsDealer bool
	OptedOut bool
	Rings    Rings
}

// Play 一墩中的一次出牌
type Play struct {
	Card card.Card
	Seat int
}

// TrickRecord 回合史：每回合最后一墩的记录
type TrickRecord struct {
	Round       int
	Plays       []Play
	WinnerSeat  int
	WinningCard card.Card
}

// Options 开局配置
type Options struct {
	PlayerCount int
	PlayerNames []string // 可选，不足时自动补齐
	Direction   Direction
	Rand        *rand.Rand // 可选，缺省使用系统随机源
}

// Game 单局游戏的完整状态机。
// 引擎本身不做任何并发控制，调用方保证同一时间只有一个操作在执行。
type Game struct {
	rng       *rand.Rand
	phase     Phase
	direction Direction
	players   []*Player
	deck      card.Deck

	currentPlayer int // 座位号

	// 选庄
	selections []DealerDraw

	// 发牌
	dealerChoice DealChoice
	flushCount   int
	flushed      []card.Card
	dealOrder    []int // 本阶段的发牌顺序，庄家固定在最后
	dealPos      int   // dealOrder 中的位置
	dealPhase    int   // 0 或 1
	cardsDealt   int   // 当前目标在本阶段已收到的张数

	// 出牌
	callingCard *card.Card
	trick       []Play
	discards    []card.Card // 已结算墩里的牌，回合内牌数守恒靠它闭合

	round   int
	history []TrickRecord

	message   string
	lastEvent Event
}

// NewGame 校验配置并创建处于 Setup 阶段的游戏
func NewGame(opts Options) (*Game, error) {
	if opts.PlayerCount < minPlayers || opts.PlayerCount > maxPlayers {
		return nil, fmt.Errorf("player count %d: %w", opts.PlayerCount, apperrors.ErrInvalidConfig)
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	players := make([]*Player, opts.PlayerCount)
	for i := range players {
		name := fmt.Sprintf("Player %d", i+1)
		if i < len(opts.PlayerNames) && opts.PlayerNames[i] != "" {
			name = opts.PlayerNames[i]
		}
		players[i] = &Player{
			ID:   uuid.NewString(),
			Name: name,
			Seat: i,
		}
	}

	return &Game{
		rng:           rng,
		phase:         PhaseSetup,
		direction:     opts.Direction,
		players:       players,
		currentPlayer: -1,
		round:         1,
		message:       "Welcome! Set up the game to begin.",
	}, nil
}

// Reset 将整局游戏重置回 Setup 阶段，玩家身份保留，成绩清空
func (g *Game) Reset() {
	for _, p := range g.players {
		p.Hand = nil
		p.Points = 0
		p.IsDealer = false
		p.OptedOut = false
		p.Rings = Rings{}
	}
	g.phase = PhaseSetup
	g.deck = nil
	g.currentPlayer = -1
	g.selections = nil
	g.resetRoundState()
	g.round = 1
	g.history = nil
	g.message = "Welcome! Set up the game to begin."
	g.lastEvent = EventNone
}

// resetRoundState 清空单回合内的临时状态
func (g *Game) resetRoundState() {
	g.dealerChoice = DealUnset
	g.flushCount = 0
	g.flushed = nil
	g.dealOrder = nil
	g.dealPos = 0
	g.dealPhase = 0
	g.cardsDealt = 0
	g.callingCard = nil
	g.trick = nil
	g.discards = nil
}

// nextActiveSeat 按方向找到 seat 之后第一个未退出的座位。
// 发牌、出牌、伤害目标都使用这一个函数，不再各自内联循环。
func (g *Game) nextActiveSeat(seat int) int {
	n := len(g.players)
	for range n {
		if g.direction == Clockwise {
			seat = (seat + 1) % n
		} else {
			seat = (seat - 1 + n) % n
		}
		if !g.players[seat].OptedOut {
			return seat
		}
	}
	return -1
}

// activeCount 未退出玩家数
func (g *Game) activeCount() int {
	count := 0
	for _, p := range g.players {
		if !p.OptedOut {
			count++
		}
	}
	return count
}

// dealerSeat 当前庄家座位，没有庄家时返回 -1
func (g *Game) dealerSeat() int {
	for _, p := range g.players {
		if p.IsDealer {
			return p.Seat
		}
	}
	return -1
}

// playerByID 按 ID 查找玩家
func (g *Game) playerByID(id string) *Player {
	for _, p := range g.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// applyFoul 犯规：罚 2 分并记录消息，游戏继续
func (g *Game) applyFoul(seat int, reason string) {
	p := g.players[seat]
	p.Points += FoulPenalty
	g.message = fmt.Sprintf("Foul! %s: %s (+%d points)", p.Name, reason, FoulPenalty)
	g.lastEvent = EventFoul
}

// OptOut 玩家主动退出本局，之后不再收牌、不再出牌。
// 只允许在出牌阶段退出：发牌中途退出会破坏既定的发牌顺序。
func (g *Game) OptOut(playerID string) error {
	if g.phase != PhasePlaying {
		return apperrors.ErrWrongPhase
	}

	p := g.playerByID(playerID)
	if p == nil {
		return apperrors.ErrInvalidPlayer
	}
	if p.OptedOut {
		return apperrors.ErrAlreadyOptedOut
	}

	p.OptedOut = true
	g.message = fmt.Sprintf("%s has opted out of the game.", p.Name)

	// 剩余不足两人则整局直接结束
	if g.activeCount() <= 1 {
		g.finishGame()
		return nil
	}

	// 轮到他时要让出回合，这一墩也可能因此凑齐
	if g.currentPlayer == p.Seat {
		g.currentPlayer = g.nextActiveSeat(p.Seat)
	}
	g.maybeResolveTrick()

	return nil
}

// finishGame 终局：最后一名未退出玩家即赢家
func (g *Game) finishGame() {
	g.phase = PhaseGameEnd
	g.lastEvent = EventGameEnd
	for _, p := range g.players {
		if !p.OptedOut {
			g.message = fmt.Sprintf("%s wins the game!", p.Name)
			return
		}
	}
	g.message = "Game over - no players remaining!"
}
