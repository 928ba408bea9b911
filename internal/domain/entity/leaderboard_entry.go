package entity

import (
	"time"
)

// LeaderboardEntry представляет итоговую запись одной завершенной игры.
// Запись иммутабельна после создания; политика слияния "лучший результат
// по имени игрока" реализуется на уровне хранилищ, а не мутацией записи.
type LeaderboardEntry struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	PlayerName   string    `gorm:"size:50;not null;uniqueIndex:idx_player_name" json:"player_name"`
	Score        int       `gorm:"not null;default:0;index:idx_score" json:"score"`
	BestStreak   int       `gorm:"not null;default:0" json:"best_streak"`
	WrongAnswers int       `gorm:"not null;default:0" json:"wrong_answers"`
	ChosenTable  int       `gorm:"not null;default:0" json:"chosen_table"`
	RecordedAt   time.Time `gorm:"not null" json:"recorded_at"`
}

// TableName определяет имя таблицы для GORM
func (LeaderboardEntry) TableName() string {
	return "leaderboard_entries"
}
