package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrValidation используется для ошибок валидации входных данных
	// (пустое имя игрока, таблица вне диапазона).
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния игровой сессии
	// (например, попытка ответить на вопрос вне экрана игры).
	ErrConflict = errors.New("session state conflict")

	// ErrRemoteUnavailable используется внутри движка синхронизации лидерборда,
	// когда удаленное хранилище недоступно или вернуло некорректные данные.
	// Эта ошибка НЕ должна покидать границу LeaderboardService.
	ErrRemoteUnavailable = errors.New("remote store unavailable")
)
