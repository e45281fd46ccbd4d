package deck

import (
	"errors"
	"math/rand"
)

// ErrDeckExhausted 正常流程不可能触发：8 人桌最多 16+5=21 张
var ErrDeckExhausted = errors.New("deck: no cards remaining")

// Deck 一局一副，发完即弃，不跨局复用
type Deck struct {
	cards []Card
}

// New 初始化 52 张并洗牌（Fisher–Yates）
func New(rnd *rand.Rand) *Deck {
	cards := make([]Card, 0, 52)
	for s := 0; s < 4; s++ {
		for r := 2; r <= 14; r++ {
			cards = append(cards, Card{Suit: s, Rank: r})
		}
	}
	for i := len(cards) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
	return &Deck{cards: cards}
}

// Deal 从牌堆尾部取一张
func (d *Deck) Deal() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrDeckExhausted
	}
	c := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return c, nil
}

// Remaining 剩余张数
func (d *Deck) Remaining() int {
	return len(d.cards)
}
