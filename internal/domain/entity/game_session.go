package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Screen — явное состояние игрового автомата сессии.
// Переходы выполняются только сервисом GameService, поэтому
// недопустимые комбинации полей (например, экран игры без выбранной
// таблицы) не могут возникнуть.
type Screen string

const (
	ScreenNameEntry   Screen = "name_entry"
	ScreenTableSelect Screen = "table_select"
	ScreenQuiz        Screen = "quiz"
	ScreenResults     Screen = "results"
)

// IntArray - пользовательский тип для работы с JSONB
type IntArray []int

// Scan реализует интерфейс sql.Scanner для IntArray
// Используется GORM для чтения JSONB данных из базы
func (a *IntArray) Scan(value interface{}) error {
	// Обработка NULL значений из базы данных
	if value == nil {
		*a = IntArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*a = IntArray{}
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Value реализует интерфейс driver.Valuer для IntArray
// Используется GORM для записи IntArray в JSONB в базе
func (a IntArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return []byte("[]"), nil // Возвращаем пустой JSON массив вместо null
	}
	return json.Marshal(a)
}

// GameSession представляет состояние одной игровой сессии.
// Хранится как единственный именованный слот на клиента (ключ — ID сессии)
// и целиком перезаписывается при каждом изменении.
type GameSession struct {
	ID                string    `gorm:"type:uuid;primaryKey" json:"id"`
	PlayerName        string    `gorm:"size:50;not null;default:''" json:"player_name"`
	ChosenTable       int       `gorm:"not null;default:0" json:"chosen_table"`    // 0 = не выбрана
	CurrentOperand    int       `gorm:"not null;default:0" json:"current_operand"` // 0 = нет активного вопроса
	UsedOperands      IntArray  `gorm:"type:jsonb;not null" json:"used_operands"`
	QuestionsAnswered int       `gorm:"not null;default:0" json:"questions_answered"`
	WrongAnswers      int       `gorm:"not null;default:0" json:"wrong_answers"`
	Score             int       `gorm:"not null;default:0" json:"score"`
	CurrentStreak     int       `gorm:"not null;default:0" json:"current_streak"`
	BestStreak        int       `gorm:"not null;default:0" json:"best_streak"`
	Screen            Screen    `gorm:"size:20;not null;default:'name_entry'" json:"screen"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (GameSession) TableName() string {
	return "game_sessions"
}

// CorrectAnswer возвращает правильный ответ на текущий вопрос
func (s *GameSession) CorrectAnswer() int {
	return s.ChosenTable * s.CurrentOperand
}

// HasActiveQuestion проверяет, есть ли у сессии активный вопрос
func (s *GameSession) HasActiveQuestion() bool {
	return s.Screen == ScreenQuiz && s.ChosenTable != 0 && s.CurrentOperand != 0
}

// UsedOperandsContain проверяет, встречался ли операнд в текущей игре
func (s *GameSession) UsedOperandsContain(operand int) bool {
	for _, op := range s.UsedOperands {
		if op == operand {
			return true
		}
	}
	return false
}
