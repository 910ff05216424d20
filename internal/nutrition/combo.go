package nutrition

import (
	"math/rand/v2"

	"github.com/foodmind/foodmind-backend/internal/domain"
)

// minDessertRoom is the leftover budget needed before a dessert is considered.
const minDessertRoom = 30

// ComboGenerator picks a main dish and an optional dessert under a calorie
// budget. It is a greedy randomized heuristic, not an optimal solve.
type ComboGenerator struct {
	rnd *rand.Rand
}

// NewComboGenerator uses rnd for shuffling and dessert choice. A nil rnd
// falls back to the package-level source, which is safe for concurrent use.
func NewComboGenerator(rnd *rand.Rand) *ComboGenerator {
	return &ComboGenerator{rnd: rnd}
}

// Generate returns nil when no main dish is available at all.
func (g *ComboGenerator) Generate(mains, desserts []domain.FoodItem, budget float64, exclude map[string]struct{}) *domain.ComboResult {
	pool := make([]domain.FoodItem, 0, len(mains))
	for _, m := range mains {
		if _, skip := exclude[m.Name]; !skip {
			pool = append(pool, m)
		}
	}
	if len(pool) == 0 {
		pool = append(pool, mains...)
	}
	if len(pool) == 0 {
		return nil
	}

	g.shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	picked, found := domain.FoodItem{}, false
	for _, m := range pool {
		if m.Calories <= budget {
			picked, found = m, true
			break
		}
	}
	if !found {
		picked = lowestCalorie(pool)
	}

	items := []domain.FoodItem{picked}
	total := picked.Calories

	remaining := budget - picked.Calories
	if remaining > minDessertRoom {
		var fitting []domain.FoodItem
		for _, d := range desserts {
			if d.Calories <= remaining {
				fitting = append(fitting, d)
			}
		}
		if len(fitting) > 0 {
			d := fitting[g.intN(len(fitting))]
			items = append(items, d)
			total += d.Calories
		}
	}

	return &domain.ComboResult{Items: items, TotalCalories: int(total)}
}

func (g *ComboGenerator) shuffle(n int, swap func(i, j int)) {
	if g.rnd == nil {
		rand.Shuffle(n, swap)
		return
	}
	g.rnd.Shuffle(n, swap)
}

func (g *ComboGenerator) intN(n int) int {
	if g.rnd == nil {
		return rand.IntN(n)
	}
	return g.rnd.IntN(n)
}

func lowestCalorie(pool []domain.FoodItem) domain.FoodItem {
	lowest := pool[0]
	for _, f := range pool[1:] {
		if f.Calories < lowest.Calories {
			lowest = f
		}
	}
	return lowest
}
