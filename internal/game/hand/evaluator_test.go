package hand

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"PokerRoom/internal/game/deck"
)

func c(rank, suit int) deck.Card {
	return deck.Card{Suit: suit, Rank: rank}
}

const (
	clubs    = deck.Clubs
	diamonds = deck.Diamonds
	hearts   = deck.Hearts
	spades   = deck.Spades
)

// ✅ 每个牌型一个典型 5 张手牌，验证两两之间的强弱次序
func TestCategoryOrdering(t *testing.T) {
	canonical := []struct {
		name  string
		cards []deck.Card
		want  Category
	}{
		{"high card", []deck.Card{c(14, spades), c(12, hearts), c(9, clubs), c(7, diamonds), c(3, spades)}, HighCard},
		{"one pair", []deck.Card{c(10, spades), c(10, hearts), c(8, clubs), c(6, diamonds), c(2, spades)}, OnePair},
		{"two pair", []deck.Card{c(11, spades), c(11, hearts), c(4, clubs), c(4, diamonds), c(9, spades)}, TwoPair},
		{"trips", []deck.Card{c(7, spades), c(7, hearts), c(7, clubs), c(13, diamonds), c(2, spades)}, ThreeOfAKind},
		{"straight", []deck.Card{c(9, spades), c(8, hearts), c(7, clubs), c(6, diamonds), c(5, spades)}, Straight},
		{"flush", []deck.Card{c(13, hearts), c(10, hearts), c(8, hearts), c(5, hearts), c(2, hearts)}, Flush},
		{"full house", []deck.Card{c(6, spades), c(6, hearts), c(6, clubs), c(12, diamonds), c(12, spades)}, FullHouse},
		{"quads", []deck.Card{c(3, spades), c(3, hearts), c(3, clubs), c(3, diamonds), c(10, spades)}, FourOfAKind},
		{"straight flush", []deck.Card{c(9, clubs), c(8, clubs), c(7, clubs), c(6, clubs), c(5, clubs)}, StraightFlush},
		{"royal flush", []deck.Card{c(14, spades), c(13, spades), c(12, spades), c(11, spades), c(10, spades)}, RoyalFlush},
	}

	evals := make([]Evaluation, len(canonical))
	for i, tc := range canonical {
		evals[i] = Evaluate(tc.cards)
		assert.Equal(t, tc.want, evals[i].Category, tc.name)
	}

	for i := 0; i < len(evals); i++ {
		for j := i + 1; j < len(evals); j++ {
			assert.Equal(t, -1, Compare(evals[i], evals[j]),
				"%s should lose to %s", canonical[i].name, canonical[j].name)
		}
	}
}

// ✅ 轮子规则：A-2-3-4-5 按 5 高算，输给 6 高顺
func TestWheelStraight(t *testing.T) {
	wheel := Evaluate([]deck.Card{c(14, spades), c(5, hearts), c(4, clubs), c(3, diamonds), c(2, spades)})
	assert.Equal(t, Straight, wheel.Category)
	assert.Equal(t, []int{5}, wheel.Kickers)
	assert.Equal(t, []int{5, 4, 3, 2, 1}, wheel.AllValues)

	sixHigh := Evaluate([]deck.Card{c(6, spades), c(5, diamonds), c(4, hearts), c(3, spades), c(2, clubs)})
	assert.Equal(t, Straight, sixHigh.Category)
	assert.Equal(t, 1, Compare(sixHigh, wheel))
}

func TestWheelStraightFlushBelowSixHigh(t *testing.T) {
	steelWheel := Evaluate([]deck.Card{c(14, hearts), c(5, hearts), c(4, hearts), c(3, hearts), c(2, hearts)})
	assert.Equal(t, StraightFlush, steelWheel.Category)
	assert.Equal(t, []int{5}, steelWheel.Kickers)

	sixHigh := Evaluate([]deck.Card{c(6, clubs), c(5, clubs), c(4, clubs), c(3, clubs), c(2, clubs)})
	assert.Equal(t, 1, Compare(sixHigh, steelWheel))
}

// ✅ 分组比较键：四条 = [四条值, 单张]，葫芦 = [三条值, 对子值]
func TestGroupedKickers(t *testing.T) {
	quads := Evaluate([]deck.Card{c(14, spades), c(14, hearts), c(14, diamonds), c(14, clubs), c(13, spades)})
	assert.Equal(t, []int{14, 13}, quads.Kickers)

	boat := Evaluate([]deck.Card{c(13, spades), c(13, hearts), c(13, diamonds), c(14, clubs), c(14, spades)})
	assert.Equal(t, []int{13, 14}, boat.Kickers)

	twoPair := Evaluate([]deck.Card{c(14, spades), c(14, hearts), c(13, diamonds), c(13, clubs), c(9, spades)})
	assert.Equal(t, []int{14, 13, 9}, twoPair.Kickers)
}

// 比较用例取自原始规则清单：两手七张牌，胜者应为 want
func TestBestOfSevenComparisons(t *testing.T) {
	cases := []struct {
		name string
		a, b []deck.Card
		want int // Compare(bestA, bestB)
	}{
		{
			"straight flush high card",
			[]deck.Card{c(9, spades), c(8, spades), c(7, spades), c(6, spades), c(5, spades), c(13, clubs), c(12, clubs)},
			[]deck.Card{c(8, diamonds), c(7, diamonds), c(6, diamonds), c(5, diamonds), c(4, diamonds), c(13, clubs), c(12, clubs)},
			1,
		},
		{
			"quads value",
			[]deck.Card{c(14, spades), c(14, clubs), c(14, diamonds), c(14, hearts), c(13, spades), c(12, clubs), c(11, clubs)},
			[]deck.Card{c(13, spades), c(13, diamonds), c(13, hearts), c(13, clubs), c(14, spades), c(12, clubs), c(11, clubs)},			1,
		},
		{
			"quads kicker",
			[]deck.Card{c(14, spades), c(13, spades), c(14, diamonds), c(14, hearts), c(14, clubs), c(12, clubs), c(11, clubs)},
			[]deck.Card{c(14, spades), c(12, spades), c(14, diamonds), c(14, hearts), c(14, clubs), c(13, clubs), c(11, clubs)},
			0, // 双方最佳都是四条 A 带 K
		},
		{
			"full house trips",
			[]deck.Card{c(14, spades), c(14, clubs), c(14, diamonds), c(13, hearts), c(13, spades), c(12, clubs), c(11, clubs)},
			[]deck.Card{c(13, spades), c(13, diamonds), c(13, hearts), c(14, spades), c(14, clubs), c(12, clubs), c(11, clubs)},
			1,
		},
		{
			"flush second card",
			[]deck.Card{c(14, spades), c(13, spades), c(12, spades), c(11, spades), c(9, spades), c(8, clubs), c(7, clubs)},
			[]deck.Card{c(14, diamonds), c(12, diamonds), c(13, diamonds), c(11, diamonds), c(9, diamonds), c(8, clubs), c(7, clubs)},
			0, // 同为 A-K-Q-J-9 同花
		},
		{
			"straight ace high vs king high",
			[]deck.Card{c(14, spades), c(13, clubs), c(12, diamonds), c(11, hearts), c(10, spades), c(9, clubs), c(8, clubs)},
			[]deck.Card{c(13, spades), c(12, diamonds), c(11, hearts), c(10, spades), c(9, clubs), c(8, diamonds), c(7, clubs)},
			1,
		},
		{
			"two pair high pair",
			[]deck.Card{c(14, spades), c(14, clubs), c(13, diamonds), c(13, hearts), c(12, spades), c(11, clubs), c(10, clubs)},
			[]deck.Card{c(13, spades), c(13, diamonds), c(12, hearts), c(12, spades), c(14, clubs), c(11, diamonds), c(10, clubs)},
			1,
		},
		{
			"pair kicker chain",
			[]deck.Card{c(14, spades), c(11, spades), c(14, diamonds), c(13, clubs), c(12, diamonds), c(10, clubs), c(5, clubs)},
			[]deck.Card{c(14, spades), c(10, spades), c(14, diamonds), c(13, clubs), c(12, diamonds), c(11, clubs), c(5, clubs)},
			0, // 对 A + K Q J 两边都能凑出
		},
	}

	for _, tc := range cases {
		_, ea := Best(tc.a)
		_, eb := Best(tc.b)
		assert.Equal(t, tc.want, Compare(ea, eb), tc.name)
	}
}

// ✅ 轮子端到端：共享公共牌 4♥ 3♠ 2♣ A♦ K♣，5♠4♦ 成轮子，6♠5♦ 成 6 高顺
func TestWheelVersusSixHighOnSharedBoard(t *testing.T) {
	community := []deck.Card{c(4, hearts), c(3, spades), c(2, clubs), c(14, diamonds), c(13, clubs)}

	_, a := Best(append([]deck.Card{c(5, spades), c(4, diamonds)}, community...))
	_, b := Best(append([]deck.Card{c(6, spades), c(5, diamonds)}, community...))

	assert.Equal(t, Straight, a.Category)
	assert.Equal(t, []int{5}, a.Kickers)
	assert.Equal(t, Straight, b.Category)
	assert.Equal(t, []int{6}, b.Kickers)
	assert.Equal(t, -1, Compare(a, b))
}

func TestBestPicksHighestSubset(t *testing.T) {
	// 七张里藏着同花顺，Best 必须放弃单纯同花/顺子选出它
	cards := []deck.Card{
		c(9, hearts), c(8, hearts), c(7, hearts), c(6, hearts), c(5, hearts),
		c(14, spades), c(14, hearts),
	}
	best, eval := Best(cards)
	assert.Equal(t, StraightFlush, eval.Category)
	assert.Len(t, best, 5)
}

func TestEvaluateRejectsWrongSize(t *testing.T) {
	eval := Evaluate([]deck.Card{c(2, clubs), c(3, clubs)})
	assert.Equal(t, Category(0), eval.Category)
	assert.Equal(t, "Invalid Hand", eval.Name)
}
