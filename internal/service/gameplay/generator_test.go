package gameplay

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestGenerator(seed int64) *Generator {
	return NewGenerator(DefaultConfig(), rand.New(rand.NewSource(seed)))
}

func TestGenerator_NextOperand_ReturnsUnusedOperand(t *testing.T) {
	gen := newTestGenerator(1)

	used := []int{2, 3, 4, 5, 6, 7, 8}

	// Остались только 9 и 10 — выбранный операнд обязан быть одним из них
	for i := 0; i < 50; i++ {
		op, err := gen.NextOperand(used)
		assert.NoError(t, err)
		assert.Contains(t, []int{9, 10}, op, "Операнд должен быть из неиспользованных")
	}
}

func TestGenerator_NextOperand_ExhaustedAfterAllOperands(t *testing.T) {
	gen := newTestGenerator(2)

	// Полный проход: каждый операнд 2..10 выдается ровно один раз
	used := []int{}
	seen := map[int]bool{}
	for i := 0; i < 9; i++ {
		op, err := gen.NextOperand(used)
		assert.NoError(t, err)
		assert.False(t, seen[op], "Операнд %d не должен повторяться", op)
		assert.GreaterOrEqual(t, op, 2)
		assert.LessOrEqual(t, op, 10)
		seen[op] = true
		used = append(used, op)
	}

	// Все 9 операндов использованы — генератор обязан сигнализировать исчерпание
	_, err := gen.NextOperand(used)
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestGenerator_NextOperand_CoversAllOperands(t *testing.T) {
	// Проверяем, что последовательность не фиксирована: на разных сидах
	// первый операнд различается хотя бы однажды
	first := map[int]bool{}
	for seed := int64(0); seed < 20; seed++ {
		gen := newTestGenerator(seed)
		op, err := gen.NextOperand(nil)
		assert.NoError(t, err)
		first[op] = true
	}
	assert.Greater(t, len(first), 1, "Первый операнд не должен быть детерминированным")
}

func TestGenerator_GenerateOptions_FourDistinctWithCorrect(t *testing.T) {
	gen := newTestGenerator(3)

	for _, correct := range []int{4, 21, 49, 100} {
		for i := 0; i < 100; i++ {
			options := gen.GenerateOptions(correct)

			assert.Len(t, options, 4, "Должно быть ровно 4 варианта")
			assert.Contains(t, options, correct, "Правильный ответ должен присутствовать")

			seen := map[int]bool{}
			for _, opt := range options {
				assert.False(t, seen[opt], "Вариант %d не должен дублироваться", opt)
				seen[opt] = true
				assert.GreaterOrEqual(t, opt, 1, "Варианты должны быть положительными")
				assert.LessOrEqual(t, opt, correct+10, "Варианты ограничены correct+10")
			}
		}
	}
}

func TestGenerator_GenerateOptions_OrderIsShuffled(t *testing.T) {
	gen := newTestGenerator(4)

	// Правильный ответ не обязан стоять первым: за серию генераций
	// он должен встретиться хотя бы раз не на первой позиции
	notFirst := false
	for i := 0; i < 50; i++ {
		options := gen.GenerateOptions(36)
		if options[0] != 36 {
			notFirst = true
			break
		}
	}
	assert.True(t, notFirst, "Позиция правильного ответа должна быть случайной")
}
