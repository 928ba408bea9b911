package gameplay

// Константы игры по умолчанию
const (
	DefaultQuestionsPerGame    = 10
	DefaultMinOperand          = 2
	DefaultMaxOperand          = 10
	DefaultOptionsPerQuestion  = 4
	DefaultPointsPerCorrect    = 10
	DefaultLeaderboardCapacity = 100
)

// Config содержит настройки игрового процесса.
// Значения фиксированы для всех сессий и не меняются в рантайме.
type Config struct {
	// QuestionsPerGame — максимальное количество вопросов за одну игру
	QuestionsPerGame int

	// MinOperand и MaxOperand — диапазон второго множителя (включительно)
	MinOperand int
	MaxOperand int

	// OptionsPerQuestion — количество вариантов ответа на вопрос
	OptionsPerQuestion int

	// PointsPerCorrect — базовые очки за правильный ответ
	PointsPerCorrect int

	// LeaderboardCapacity — максимальное количество записей в лидерборде
	LeaderboardCapacity int
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *Config {
	return &Config{
		QuestionsPerGame:    DefaultQuestionsPerGame,
		MinOperand:          DefaultMinOperand,
		MaxOperand:          DefaultMaxOperand,
		OptionsPerQuestion:  DefaultOptionsPerQuestion,
		PointsPerCorrect:    DefaultPointsPerCorrect,
		LeaderboardCapacity: DefaultLeaderboardCapacity,
	}
}

// OperandCount возвращает количество различных операндов в диапазоне.
// Для диапазона [2,10] это 9 — верхняя граница размера usedOperands.
func (c *Config) OperandCount() int {
	return c.MaxOperand - c.MinOperand + 1
}

// IsValidTable проверяет, что выбранная таблица умножения входит в диапазон
func (c *Config) IsValidTable(table int) bool {
	return table >= c.MinOperand && table <= c.MaxOperand
}
