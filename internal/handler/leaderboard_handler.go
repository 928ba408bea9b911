package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/gangetabel-api/internal/domain/entity"
	"github.com/yourusername/gangetabel-api/internal/handler/dto"
	"github.com/yourusername/gangetabel-api/internal/service"
)

// LeaderboardHandler обрабатывает запросы лидерборда
type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
}

// NewLeaderboardHandler создает новый обработчик лидерборда
func NewLeaderboardHandler(leaderboardService *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

// parseSortBy читает параметр сортировки из query (score по умолчанию)
func parseSortBy(c *gin.Context) service.SortBy {
	if c.DefaultQuery("sort", "score") == "date" {
		return service.SortByDate
	}
	return service.SortByScore
}

// GetLeaderboard возвращает записи лидерборда с меткой происхождения.
// Недоступность удаленного хранилища клиенту как ошибка не видна:
// он получает локальные данные с source=local.
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	entries, source := h.leaderboardService.Fetch(c.Request.Context(), parseSortBy(c))

	c.JSON(http.StatusOK, dto.LeaderboardResponse{
		Entries: dto.NewLeaderboardEntryResponses(entries),
		Source:  string(source),
	})
}

// SubmitEntry обрабатывает прямую отправку результата игры.
// Метку времени проставляет сервер. Ошибкой считается только отказ
// локального хранилища; судьба удаленной сверки на ответ не влияет.
func (h *LeaderboardHandler) SubmitEntry(c *gin.Context) {
	var req dto.SubmitEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Score < 0 || req.BestStreak < 0 || req.WrongAnswers < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Counters must be non-negative"})
		return
	}

	entry := &entity.LeaderboardEntry{
		PlayerName:   req.PlayerName,
		Score:        req.Score,
		BestStreak:   req.BestStreak,
		WrongAnswers: req.WrongAnswers,
		ChosenTable:  req.ChosenTable,
		RecordedAt:   time.Now().UTC(),
	}

	if err := h.leaderboardService.Submit(c.Request.Context(), entry); err != nil {
		log.Printf("[LeaderboardHandler] Ошибка локальной записи результата: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save leaderboard entry"})
		return
	}

	// Возвращаем актуальный список — поле опциональное, клиент не обязан
	// его использовать
	entries, _ := h.leaderboardService.Fetch(c.Request.Context(), service.SortByScore)
	c.JSON(http.StatusOK, dto.SubmitEntryResponse{
		Success: true,
		Entries: dto.NewLeaderboardEntryResponses(entries),
	})
}

// Export выгружает лидерборд в CSV или XLSX
func (h *LeaderboardHandler) Export(c *gin.Context) {
	entries, _ := h.leaderboardService.Fetch(c.Request.Context(), parseSortBy(c))

	filename := fmt.Sprintf("leaderboard_%s", time.Now().Format("2006-01-02"))
	switch c.DefaultQuery("format", "csv") {
	case "xlsx":
		h.exportXLSX(c, entries, filename)
	case "csv":
		h.exportCSV(c, entries, filename)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported format, use csv or xlsx"})
	}
}

// exportCSV экспортирует записи в CSV
func (h *LeaderboardHandler) exportCSV(c *gin.Context, entries []entity.LeaderboardEntry, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Place", "Player", "Score", "Best streak", "Wrong answers", "Table", "Recorded at"})

	for i, e := range entries {
		writer.Write([]string{
			strconv.Itoa(i + 1),
			sanitizeForExcel(e.PlayerName),
			strconv.Itoa(e.Score),
			strconv.Itoa(e.BestStreak),
			strconv.Itoa(e.WrongAnswers),
			strconv.Itoa(e.ChosenTable),
			e.RecordedAt.Format(time.RFC3339),
		})
	}
}

// exportXLSX экспортирует записи в Excel с использованием StreamWriter
func (h *LeaderboardHandler) exportXLSX(c *gin.Context, entries []entity.LeaderboardEntry, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Leaderboard"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[LeaderboardHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	// Заголовки
	headers := []interface{}{"Place", "Player", "Score", "Best streak", "Wrong answers", "Table", "Recorded at"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[LeaderboardHandler] Ошибка записи заголовков: %v", err)
	}

	// Данные
	for i, e := range entries {
		rowNum := i + 2 // Начинаем с 2 строки (1 - заголовки)
		cell := fmt.Sprintf("A%d", rowNum)
		row := []interface{}{
			i + 1,
			sanitizeForExcel(e.PlayerName),
			e.Score,
			e.BestStreak,
			e.WrongAnswers,
			e.ChosenTable,
			e.RecordedAt.Format(time.RFC3339),
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[LeaderboardHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[LeaderboardHandler] Ошибка при Flush: %v", err)
	}

	// Записываем в response
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[LeaderboardHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV.
// Имена игроков приходят от клиентов и попадают в выгрузку как есть.
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
