package dto

import (
	"github.com/yourusername/gangetabel-api/internal/domain/entity"
	"github.com/yourusername/gangetabel-api/internal/service/gameplay"
)

// SubmitNameRequest — тело запроса на ввод имени игрока
type SubmitNameRequest struct {
	PlayerName string `json:"player_name" binding:"required"`
}

// ChooseTableRequest — тело запроса на выбор таблицы умножения
type ChooseTableRequest struct {
	Table int `json:"table" binding:"required"`
}

// SubmitAnswerRequest — тело запроса с выбранным ответом
type SubmitAnswerRequest struct {
	Selected int `json:"selected"`
}

// QuestionResponse представляет активный вопрос для клиента.
// Правильный ответ клиенту не раскрывается — только варианты.
type QuestionResponse struct {
	Table   int   `json:"table"`
	Operand int   `json:"operand"`
	Options []int `json:"options"`
}

// SessionResponse представляет состояние сессии для клиента
type SessionResponse struct {
	SessionID         string            `json:"session_id"`
	Screen            string            `json:"screen"`
	PlayerName        string            `json:"player_name,omitempty"`
	ChosenTable       int               `json:"chosen_table,omitempty"`
	QuestionsAnswered int               `json:"questions_answered"`
	WrongAnswers      int               `json:"wrong_answers"`
	Score             int               `json:"score"`
	CurrentStreak     int               `json:"current_streak"`
	BestStreak        int               `json:"best_streak"`
	WelcomeMessage    string            `json:"welcome_message,omitempty"`
	Question          *QuestionResponse `json:"question,omitempty"`
}

// AnswerResponse представляет исход обработки ответа
type AnswerResponse struct {
	Correct bool             `json:"correct"`
	Message string           `json:"message"`
	State   *SessionResponse `json:"state"`
}

// NewSessionResponse создает DTO состояния сессии
func NewSessionResponse(session *entity.GameSession, options []int) *SessionResponse {
	resp := &SessionResponse{
		SessionID:         session.ID,
		Screen:            string(session.Screen),
		PlayerName:        session.PlayerName,
		ChosenTable:       session.ChosenTable,
		QuestionsAnswered: session.QuestionsAnswered,
		WrongAnswers:      session.WrongAnswers,
		Score:             session.Score,
		CurrentStreak:     session.CurrentStreak,
		BestStreak:        session.BestStreak,
	}

	if session.Screen == entity.ScreenTableSelect {
		resp.WelcomeMessage = gameplay.WelcomeMessage(session.PlayerName)
	}

	if session.HasActiveQuestion() && len(options) > 0 {
		resp.Question = &QuestionResponse{
			Table:   session.ChosenTable,
			Operand: session.CurrentOperand,
			Options: options,
		}
	}

	return resp
}
