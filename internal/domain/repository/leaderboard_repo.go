package repository

import (
	"context"

	"github.com/yourusername/gangetabel-api/internal/domain/entity"
)

// LeaderboardRepository определяет методы локального (долговечного) хранилища
// записей лидерборда. Это кеш на случай недоступности удаленного хранилища:
// запись сюда выполняется безусловно и первой.
type LeaderboardRepository interface {
	// Upsert вставляет запись или обновляет существующую по имени игрока,
	// если новый результат лучше (политика "лучший результат на игрока").
	Upsert(entry *entity.LeaderboardEntry) error

	// ListByScore возвращает до limit записей по убыванию очков
	ListByScore(limit int) ([]entity.LeaderboardEntry, error)

	// ListByDate возвращает до limit записей по убыванию даты записи
	ListByDate(limit int) ([]entity.LeaderboardEntry, error)

	// Count возвращает общее количество записей в локальном хранилище
	Count() (int64, error)
}

// RemoteLeaderboardStore определяет контракт удаленного key-value хранилища,
// держащего весь сериализованный список записей под фиксированным ключом.
// Хранилище считается ненадежным: любая ошибка (сеть, конфигурация,
// некорректные данные) обрабатывается вызывающей стороной как деградация
// в локальный режим и не должна прерывать игровой процесс.
type RemoteLeaderboardStore interface {
	// GetEntries читает весь список с удаленного хранилища.
	// Отсутствие ключа — не ошибка: возвращается пустой список.
	GetEntries(ctx context.Context) ([]entity.LeaderboardEntry, error)

	// SetEntries целиком перезаписывает список в удаленном хранилище
	SetEntries(ctx context.Context, entries []entity.LeaderboardEntry) error
}
