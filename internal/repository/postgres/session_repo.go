package postgres

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/gangetabel-api/internal/domain/entity"
	apperrors "github.com/yourusername/gangetabel-api/internal/pkg/errors"
)

// SessionRepo реализует repository.SessionRepository
type SessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo создает новый репозиторий игровых сессий
func NewSessionRepo(db *gorm.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// GetByID возвращает сессию по ключу слота
func (r *SessionRepo) GetByID(id string) (*entity.GameSession, error) {
	var session entity.GameSession
	err := r.db.Where("id = ?", id).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// Save создает или целиком перезаписывает слот сессии.
// Слот — единственная точка записи состояния: конкурирующие клиенты
// с одним ID перезаписывают друг друга (последний писатель побеждает).
func (r *SessionRepo) Save(session *entity.GameSession) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(session).Error
}

// Delete удаляет слот сессии. Отсутствующий слот ошибкой не считается.
func (r *SessionRepo) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&entity.GameSession{}).Error
}
