package repository

import (
	"github.com/yourusername/gangetabel-api/internal/domain/entity"
)

// SessionRepository определяет методы для работы со слотом игровой сессии.
// Слот читается и перезаписывается целиком; один писатель на сессию.
type SessionRepository interface {
	// GetByID возвращает сессию по ключу слота или apperrors.ErrNotFound
	GetByID(id string) (*entity.GameSession, error)

	// Save создает или целиком перезаписывает слот сессии
	Save(session *entity.GameSession) error

	// Delete удаляет слот сессии (сброс по клику на маскота).
	// Отсутствие слота ошибкой не считается.
	Delete(id string) error
}
