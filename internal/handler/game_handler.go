package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/gangetabel-api/internal/handler/dto"
	"github.com/yourusername/gangetabel-api/internal/middleware"
	apperrors "github.com/yourusername/gangetabel-api/internal/pkg/errors"
	"github.com/yourusername/gangetabel-api/internal/service"
)

// GameHandler обрабатывает запросы игровой сессии
type GameHandler struct {
	gameService *service.GameService
}

// NewGameHandler создает новый обработчик игры
func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{
		gameService: gameService,
	}
}

// StartSession создает новую сессию и возвращает ее идентификатор.
// Клиент обязан передавать этот ID в заголовке X-Session-ID во всех
// последующих запросах.
func (h *GameHandler) StartSession(c *gin.Context) {
	id := uuid.NewString()
	session, err := h.gameService.StartSession(id)
	if err != nil {
		log.Printf("[GameHandler] Ошибка создания сессии: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"session_id": id,
		"state":      dto.NewSessionResponse(session, nil),
	})
}

// GetState возвращает текущее состояние сессии
func (h *GameHandler) GetState(c *gin.Context) {
	id := middleware.SessionIDFromContext(c)
	session, options, err := h.gameService.GetState(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": dto.NewSessionResponse(session, options)})
}

// SubmitName обрабатывает ввод имени игрока
func (h *GameHandler) SubmitName(c *gin.Context) {
	var req dto.SubmitNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	id := middleware.SessionIDFromContext(c)
	session, err := h.gameService.SubmitName(id, req.PlayerName)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": dto.NewSessionResponse(session, nil)})
}

// ChooseTable обрабатывает выбор таблицы умножения и начало игры
func (h *GameHandler) ChooseTable(c *gin.Context) {
	var req dto.ChooseTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	id := middleware.SessionIDFromContext(c)
	session, options, err := h.gameService.ChooseTable(id, req.Table)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": dto.NewSessionResponse(session, options)})
}

// SubmitAnswer обрабатывает ответ на текущий вопрос
func (h *GameHandler) SubmitAnswer(c *gin.Context) {
	var req dto.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	id := middleware.SessionIDFromContext(c)
	outcome, err := h.gameService.SubmitAnswer(id, req.Selected)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AnswerResponse{
		Correct: outcome.Correct,
		Message: outcome.Message,
		State:   dto.NewSessionResponse(outcome.Session, outcome.Options),
	})
}

// Restart обрабатывает рестарт игры с экрана результатов
func (h *GameHandler) Restart(c *gin.Context) {
	id := middleware.SessionIDFromContext(c)
	session, err := h.gameService.Restart(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": dto.NewSessionResponse(session, nil)})
}

// Reset полностью удаляет слот сессии (клик по маскоту)
func (h *GameHandler) Reset(c *gin.Context) {
	id := middleware.SessionIDFromContext(c)
	if err := h.gameService.Reset(id); err != nil {
		log.Printf("[GameHandler] Ошибка сброса сессии %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset session"})
		return
	}
	c.Status(http.StatusNoContent)
}

// respondError транслирует ошибки сервисного слоя в HTTP статусы
func (h *GameHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("[GameHandler] Внутренняя ошибка: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
