package gameplay

import "math"

// Score подсчитывает итоговые очки по формуле точности:
//
//	accuracy = correctCount / totalAttempts
//	score    = round(correctCount * basePoints * accuracy)
//
// Очки пересчитываются целиком после каждого ответа, а не накапливаются:
// неправильный ответ снижает уже набранные очки задним числом.
// totalAttempts всегда >= 1 к моменту вызова (вызывается только после
// хотя бы одной попытки); на всякий случай 0 попыток дает 0 очков.
func Score(correctCount, totalAttempts, basePoints int) int {
	if totalAttempts <= 0 || correctCount <= 0 {
		return 0
	}
	accuracy := float64(correctCount) / float64(totalAttempts)
	return int(math.Round(float64(correctCount) * float64(basePoints) * accuracy))
}
