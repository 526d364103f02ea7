package quizui

import "math/rand"

// optionOrder returns display positions for n options. With shuffle off the
// content order is kept.
func optionOrder(rnd *rand.Rand, n int, shuffle bool) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if shuffle && rnd != nil {
		rnd.Shuffle(n, func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}
	return order
}
