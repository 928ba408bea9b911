package dto

import (
	"time"

	"github.com/yourusername/gangetabel-api/internal/domain/entity"
)

// SubmitEntryRequest — тело запроса на прямую отправку результата.
// Метку времени проставляет сервер, клиент ее не передает.
type SubmitEntryRequest struct {
	PlayerName   string `json:"player_name" binding:"required"`
	Score        int    `json:"score"`
	BestStreak   int    `json:"best_streak"`
	WrongAnswers int    `json:"wrong_answers"`
	ChosenTable  int    `json:"chosen_table"`
}

// LeaderboardEntryResponse представляет запись лидерборда для клиента
type LeaderboardEntryResponse struct {
	PlayerName   string    `json:"player_name"`
	Score        int       `json:"score"`
	BestStreak   int       `json:"best_streak"`
	WrongAnswers int       `json:"wrong_answers"`
	ChosenTable  int       `json:"chosen_table"`
	RecordedAt   time.Time `json:"recorded_at"`
}

// LeaderboardResponse представляет список записей с меткой происхождения
// данных (local/remote) — клиент может показать предупреждение при деградации
type LeaderboardResponse struct {
	Entries []LeaderboardEntryResponse `json:"entries"`
	Source  string                     `json:"source"`
}

// SubmitEntryResponse — ответ на отправку результата.
// Success всегда true при успешной локальной записи; наличие entries
// опционально, клиент не должен на него полагаться.
type SubmitEntryResponse struct {
	Success bool                       `json:"success"`
	Entries []LeaderboardEntryResponse `json:"entries,omitempty"`
}

// NewLeaderboardEntryResponse создает DTO записи лидерборда
func NewLeaderboardEntryResponse(entry *entity.LeaderboardEntry) LeaderboardEntryResponse {
	return LeaderboardEntryResponse{
		PlayerName:   entry.PlayerName,
		Score:        entry.Score,
		BestStreak:   entry.BestStreak,
		WrongAnswers: entry.WrongAnswers,
		ChosenTable:  entry.ChosenTable,
		RecordedAt:   entry.RecordedAt,
	}
}

// NewLeaderboardEntryResponses создает слайс DTO из записей
func NewLeaderboardEntryResponses(entries []entity.LeaderboardEntry) []LeaderboardEntryResponse {
	responses := make([]LeaderboardEntryResponse, len(entries))
	for i := range entries {
		responses[i] = NewLeaderboardEntryResponse(&entries[i])
	}
	return responses
}
