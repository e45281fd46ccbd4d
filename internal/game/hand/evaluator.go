package hand

import (
	"sort"

	"PokerRoom/internal/game/deck"
)

// Category 牌型等级，数值越大越强
type Category int

const (
	HighCard Category = iota + 1
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

var categoryNames = map[Category]string{
	HighCard:      "High Card",
	OnePair:       "One Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
	RoyalFlush:    "Royal Flush",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Invalid Hand"
}

// Evaluation 评估结果：
// Kickers 按 (出现次数降序, 牌值降序) 排列的比较键；
// AllValues 五张牌值降序，用于 Kickers 相同后的逐张比较。
// A-2-3-4-5 轮子顺按 5 高处理，AllValues 记作 [5 4 3 2 1]。
type Evaluation struct {
	Category  Category `json:"category"`
	Name      string   `json:"name"`
	Kickers   []int    `json:"kickers"`
	AllValues []int    `json:"allValues"`
}

// Evaluate 评估恰好 5 张牌
func Evaluate(cards []deck.Card) Evaluation {
	if len(cards) != 5 {
		return Evaluation{Category: 0, Name: "Invalid Hand"}
	}

	values := make([]int, 5)
	for i, c := range cards {
		values[i] = c.Rank
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))

	valueCounts := make(map[int]int)
	for _, v := range values {
		valueCounts[v]++
	}
	counts := make([]int, 0, len(valueCounts))
	for _, n := range valueCounts {
		counts = append(counts, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))

	flush := true
	for _, c := range cards {
		if c.Suit != cards[0].Suit {
			flush = false
			break
		}
	}
	straight := isStraight(values)

	// 按 (次数降序, 牌值降序) 排列的分组牌值
	grouped := func() []int {
		distinct := make([]int, 0, len(valueCounts))
		for v := range valueCounts {
			distinct = append(distinct, v)
		}
		sort.Slice(distinct, func(i, j int) bool {
			if valueCounts[distinct[i]] != valueCounts[distinct[j]] {
				return valueCounts[distinct[i]] > valueCounts[distinct[j]]
			}
			return distinct[i] > distinct[j]
		})
		return distinct
	}

	mk := func(cat Category, kickers, allValues []int) Evaluation {
		return Evaluation{Category: cat, Name: cat.String(), Kickers: kickers, AllValues: allValues}
	}

	switch {
	case straight && flush:
		if values[0] == 14 && values[1] == 13 {
			return mk(RoyalFlush, []int{14}, values)
		}
		if values[0] == 14 && values[1] == 5 {
			// 轮子同花顺：A 作 1，5 为高牌
			return mk(StraightFlush, []int{5}, []int{5, 4, 3, 2, 1})
		}
		return mk(StraightFlush, []int{values[0]}, values)
	case counts[0] == 4:
		return mk(FourOfAKind, grouped(), values)
	case counts[0] == 3 && counts[1] == 2:
		return mk(FullHouse, grouped(), values)
	case flush:
		return mk(Flush, values, values)
	case straight:
		if values[0] == 14 && values[1] == 5 {
			return mk(Straight, []int{5}, []int{5, 4, 3, 2, 1})
		}
		return mk(Straight, []int{values[0]}, values)
	case counts[0] == 3:
		return mk(ThreeOfAKind, grouped(), values)
	case counts[0] == 2 && counts[1] == 2:
		return mk(TwoPair, grouped(), values)
	case counts[0] == 2:
		return mk(OnePair, grouped(), values)
	default:
		return mk(HighCard, values, values)
	}
}

// values 必须已降序
func isStraight(values []int) bool {
	for i := 0; i < len(values)-1; i++ {
		if values[i]-values[i+1] != 1 {
			// A-2-3-4-5 特例
			if values[0] == 14 && values[1] == 5 && values[2] == 4 && values[3] == 3 && values[4] == 2 {
				return true
			}
			return false
		}
	}
	return true
}

// Compare 按 (牌型, Kickers, AllValues) 字典序比较，a 强返回 1，b 强返回 -1
func Compare(a, b Evaluation) int {
	if a.Category != b.Category {
		if a.Category > b.Category {
			return 1
		}
		return -1
	}
	if c := compareSeq(a.Kickers, b.Kickers); c != 0 {
		return c
	}
	return compareSeq(a.AllValues, b.AllValues)
}

func compareSeq(a, b []int) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		va, vb := 0, 0
		if i < len(a) {
			va = a[i]
		}
		if i < len(b) {
			vb = b[i]
		}
		if va != vb {
			if va > vb {
				return 1
			}
			return -1
		}
	}
	return 0
}

// Best 从 5 张以上候选牌中选出最佳 5 张组合。
// 河牌局面是 C(7,5)=21 个子集；提前全下的残局公共牌不足 5 张时子集更少。
// 完全同值的组合保留先遍历到的那个。
func Best(cards []deck.Card) ([]deck.Card, Evaluation) {
	if len(cards) < 5 {
		return nil, Evaluation{Category: 0, Name: "Invalid Hand"}
	}

	var bestHand []deck.Card
	var bestEval Evaluation

	pick := make([]deck.Card, 5)
	var walk func(start, depth int)
	walk = func(start, depth int) {
		if depth == 5 {
			eval := Evaluate(pick)
			if bestHand == nil || Compare(eval, bestEval) > 0 {
				bestHand = append([]deck.Card(nil), pick...)
				bestEval = eval
			}
			return
		}
		for i := start; i <= len(cards)-(5-depth); i++ {
			pick[depth] = cards[i]
			walk(i+1, depth+1)
		}
	}
	walk(0, 0)

	return bestHand, bestEval
}
