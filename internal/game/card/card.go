package card

import (
	"math/rand/v2"
	"strconv"
)

// Suit 定义花色
type Suit int

// Rank 定义点数
type Rank int

// CardColor 定义牌的颜色
type CardColor int

const (
	Black CardColor = iota
	Red
)

const (
	Spade   Suit = iota // 黑桃
	Heart               // 红心
	Diamond             // 方块
	Club                // 梅花
)

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	Spade:   "♠",
	Heart:   "♥",
	Diamond: "♦",
	Club:    "♣",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return ""
}

// Color 返回花色对应的颜色
func (s Suit) Color() CardColor {
	if s == Heart || s == Diamond {
		return Red
	}
	return Black
}

// 这副牌不含 2、J、Q、K 和大小王，只有 A 和 3~10 共 9 种点数。
// Rank 的整数值即比较大小时的序号：A 最小为 1，其余按牌面数字。
const (
	RankA  Rank = 1
	Rank3  Rank = 3
	Rank4  Rank = 4
	Rank5  Rank = 5
	Rank6  Rank = 6
	Rank7  Rank = 7
	Rank8  Rank = 8
	Rank9  Rank = 9
	Rank10 Rank = 10
)

// Ranks 按牌面从小到大列出所有点数
var Ranks = []Rank{RankA, Rank3, Rank4, Rank5, Rank6, Rank7, Rank8, Rank9, Rank10}

// Suits 列出所有花色
var Suits = []Suit{Spade, Heart, Diamond, Club}

func (r Rank) String() string {
	if r == RankA {
		return "A"
	}
	return strconv.Itoa(int(r))
}

// Order 返回用于比较大小的序号，仅用于选庄和判断赢墩。
// 注意与 Value（攻击点数）无关：A 的序号最小，但攻击点数是 2。
func (r Rank) Order() int {
	return int(r)
}

// Card 定义一张牌
type Card struct {
	Suit  Suit
	Rank  Rank
	Value int    // 攻击点数，回合结算时造成的伤害
	ID    string // 点数+花色，全副牌内唯一
}

// New 创建一张牌并派生攻击点数与 ID
func New(suit Suit, rank Rank) Card {
	return Card{
		Suit:  suit,
		Rank:  rank,
		Value: cardValue(rank, suit),
		ID:    rank.String() + suit.String(),
	}
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// cardValue 攻击点数表：黑桃3 最高，其余 3 次之，4、A 再次，其余为 1
func cardValue(rank Rank, suit Suit) int {
	switch {
	case rank == Rank3 && suit == Spade:
		return 12
	case rank == Rank3:
		return 6
	case rank == Rank4:
		return 4
	case rank == RankA:
		return 2
	default:
		return 1
	}
}

// Deck 定义一副牌
type Deck []Card

// NewDeck 生成 36 张牌并用传入的随机源洗牌。
// 随机源由调用方注入，测试中使用固定种子即可复现发牌。
func NewDeck(rng *rand.Rand) Deck {
	deck := make(Deck, 0, 36)
	for _, s := range Suits {
		for _, r := range Ranks {
			deck = append(deck, New(s, r))
		}
	}
	deck.Shuffle(rng)
	return deck
}

// Shuffle Fisher–Yates 洗牌
func (d Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// Draw 从牌堆顶抽一张牌，牌堆为空时返回 false
func (d *Deck) Draw() (Card, bool) {
	if len(*d) == 0 {
		return Card{}, false
	}
	top := (*d)[0]
	*d = (*d)[1:]
	return top, true
}

// HasSuit 检查一组牌中是否含有指定花色
func HasSuit(cards []Card, suit Suit) bool {
	for _, c := range cards {
		if c.Suit == suit {
			return true
		}
	}
	return false
}
