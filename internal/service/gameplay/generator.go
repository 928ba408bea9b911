package gameplay

import (
	"errors"
	"math/rand"
)

// ErrExhausted сигнализирует, что все операнды диапазона уже были использованы
// в текущей сессии. Вызывающая сторона обязана завершить игру.
var ErrExhausted = errors.New("all operands exhausted")

// Generator выдает операнды для вопросов без повторов внутри сессии
// и генерирует варианты ответов. Не хранит состояние между вызовами:
// множество использованных операндов передается снаружи.
type Generator struct {
	config *Config
	rng    *rand.Rand
}

// NewGenerator создает новый генератор вопросов.
// rng передается явно, чтобы тесты могли использовать детерминированный источник.
func NewGenerator(config *Config, rng *rand.Rand) *Generator {
	return &Generator{config: config, rng: rng}
}

// NextOperand выбирает равновероятно случайный операнд из [MinOperand, MaxOperand],
// еще не встречавшийся в used. Если неиспользованных операндов не осталось,
// возвращает ErrExhausted.
func (g *Generator) NextOperand(used []int) (int, error) {
	usedSet := make(map[int]bool, len(used))
	for _, op := range used {
		usedSet[op] = true
	}

	remaining := make([]int, 0, g.config.OperandCount())
	for op := g.config.MinOperand; op <= g.config.MaxOperand; op++ {
		if !usedSet[op] {
			remaining = append(remaining, op)
		}
	}

	if len(remaining) == 0 {
		return 0, ErrExhausted
	}

	return remaining[g.rng.Intn(len(remaining))], nil
}

// GenerateOptions возвращает OptionsPerQuestion различных вариантов ответа,
// среди которых обязательно присутствует correct. Неправильные варианты
// выбираются равновероятно из [1, correct+10], дубликаты отбрасываются.
// Порядок вариантов случаен.
func (g *Generator) GenerateOptions(correct int) []int {
	options := []int{correct}
	seen := map[int]bool{correct: true}

	for len(options) < g.config.OptionsPerQuestion {
		candidate := g.rng.Intn(correct+10) + 1
		if !seen[candidate] {
			seen[candidate] = true
			options = append(options, candidate)
		}
	}

	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return options
}
