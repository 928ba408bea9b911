package postgres

import (
	"errors"
	"log"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/yourusername/gangetabel-api/internal/domain/entity"
)

// Код ошибки PostgreSQL unique_violation
const pgUniqueViolation = "23505"

// LeaderboardRepo реализует repository.LeaderboardRepository
type LeaderboardRepo struct {
	db *gorm.DB
}

// NewLeaderboardRepo создает новый репозиторий локального лидерборда
func NewLeaderboardRepo(db *gorm.DB) *LeaderboardRepo {
	return &LeaderboardRepo{db: db}
}

// Upsert вставляет запись или обновляет существующую по имени игрока.
// Политика слияния: хранится лучший (максимальный) результат игрока;
// запись с меньшим или равным счетом существующую не трогает.
func (r *LeaderboardRepo) Upsert(entry *entity.LeaderboardEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing entity.LeaderboardEntry
		err := tx.Where("player_name = ?", entry.PlayerName).First(&existing).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			createErr := tx.Create(entry).Error
			if isUniqueViolation(createErr) {
				// Конкурирующая вставка того же игрока между SELECT и INSERT:
				// перечитываем строку и продолжаем как обновление
				log.Printf("[LeaderboardRepo] Конкурирующая вставка для игрока %q, переходим к обновлению", entry.PlayerName)
				if err := tx.Where("player_name = ?", entry.PlayerName).First(&existing).Error; err != nil {
					return err
				}
			} else {
				return createErr
			}
		} else if err != nil {
			return err
		}

		if entry.Score <= existing.Score {
			// Новый результат не лучше сохраненного — оставляем как есть
			return nil
		}

		return tx.Model(&existing).Updates(map[string]interface{}{
			"score":         entry.Score,
			"best_streak":   entry.BestStreak,
			"wrong_answers": entry.WrongAnswers,
			"chosen_table":  entry.ChosenTable,
			"recorded_at":   entry.RecordedAt,
		}).Error
	})
}

// ListByScore возвращает до limit записей по убыванию очков
func (r *LeaderboardRepo) ListByScore(limit int) ([]entity.LeaderboardEntry, error) {
	var entries []entity.LeaderboardEntry
	err := r.db.Order("score DESC, recorded_at ASC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// ListByDate возвращает до limit записей по убыванию даты записи
func (r *LeaderboardRepo) ListByDate(limit int) ([]entity.LeaderboardEntry, error) {
	var entries []entity.LeaderboardEntry
	err := r.db.Order("recorded_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// Count возвращает общее количество записей
func (r *LeaderboardRepo) Count() (int64, error) {
	var total int64
	err := r.db.Model(&entity.LeaderboardEntry{}).Count(&total).Error
	return total, err
}

// isUniqueViolation проверяет, является ли ошибка нарушением уникального индекса
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}
	return false
}
