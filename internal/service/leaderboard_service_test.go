package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/yourusername/gangetabel-api/internal/domain/entity"
	apperrors "github.com/yourusername/gangetabel-api/internal/pkg/errors"
	"github.com/yourusername/gangetabel-api/internal/service/gameplay"
)

// ============================================================================
// Моки для LeaderboardService
// ============================================================================

// MockRemoteStoreForLeaderboard реализует repository.RemoteLeaderboardStore
type MockRemoteStoreForLeaderboard struct {
	mock.Mock
}

func (m *MockRemoteStoreForLeaderboard) GetEntries(ctx context.Context) ([]entity.LeaderboardEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.LeaderboardEntry), args.Error(1)
}

func (m *MockRemoteStoreForLeaderboard) SetEntries(ctx context.Context, entries []entity.LeaderboardEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

// MockLocalRepoForLeaderboard реализует repository.LeaderboardRepository
type MockLocalRepoForLeaderboard struct {
	mock.Mock
}

func (m *MockLocalRepoForLeaderboard) Upsert(entry *entity.LeaderboardEntry) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockLocalRepoForLeaderboard) ListByScore(limit int) ([]entity.LeaderboardEntry, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.LeaderboardEntry), args.Error(1)
}

func (m *MockLocalRepoForLeaderboard) ListByDate(limit int) ([]entity.LeaderboardEntry, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.LeaderboardEntry), args.Error(1)
}

func (m *MockLocalRepoForLeaderboard) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func makeEntries(n int, baseScore int) []entity.LeaderboardEntry {
	entries := make([]entity.LeaderboardEntry, n)
	for i := 0; i < n; i++ {
		entries[i] = entity.LeaderboardEntry{
			PlayerName: fmt.Sprintf("player-%d", i),
			Score:      baseScore + i,
			RecordedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Hour),
		}
	}
	return entries
}

// ============================================================================
// Тесты Fetch
// ============================================================================

func TestLeaderboardService_Fetch_RemoteSuccess(t *testing.T) {
	mockRemote := new(MockRemoteStoreForLeaderboard)
	mockLocal := new(MockLocalRepoForLeaderboard)
	svc := NewLeaderboardService(mockLocal, mockRemote, gameplay.DefaultConfig())

	remote := []entity.LeaderboardEntry{
		{PlayerName: "Emil", Score: 40},
		{PlayerName: "Freja", Score: 90},
		{PlayerName: "Ida", Score: 70},
	}
	mockRemote.On("GetEntries", mock.Anything).Return(remote, nil)

	entries, source := svc.Fetch(context.Background(), SortByScore)

	assert.Equal(t, SourceRemote, source)
	assert.Len(t, entries, 3)
	// Отображение всегда по убыванию очков
	assert.Equal(t, "Freja", entries[0].PlayerName)
	assert.Equal(t, "Ida", entries[1].PlayerName)
	assert.Equal(t, "Emil", entries[2].PlayerName)
	// Локальный кеш не трогаем, если удаленное хранилище доступно
	mockLocal.AssertNotCalled(t, "ListByScore", mock.Anything)
}

func TestLeaderboardService_Fetch_RemoteFailureFallsBackToLocal(t *testing.T) {
	mockRemote := new(MockRemoteStoreForLeaderboard)
	mockLocal := new(MockLocalRepoForLeaderboard)
	svc := NewLeaderboardService(mockLocal, mockRemote, gameplay.DefaultConfig())

	mockRemote.On("GetEntries", mock.Anything).Return(nil, apperrors.ErrRemoteUnavailable)
	local := []entity.LeaderboardEntry{{PlayerName: "Freja", Score: 55}}
	mockLocal.On("ListByScore", 100).Return(local, nil)

	entries, source := svc.Fetch(context.Background(), SortByScore)

	// Ошибка удаленного хранилища НЕ поднимается наружу — только метка source
	assert.Equal(t, SourceLocal, source)
	assert.Equal(t, local, entries)
	mockRemote.AssertExpectations(t)
	mockLocal.AssertExpectations(t)
}

func TestLeaderboardService_Fetch_EmptyEverywhere(t *testing.T) {
	mockRemote := new(MockRemoteStoreForLeaderboard)
	mockLocal := new(MockLocalRepoForLeaderboard)
	svc := NewLeaderboardService(mockLocal, mockRemote, gameplay.DefaultConfig())

	mockRemote.On("GetEntries", mock.Anything).Return(nil, errors.New("dial tcp: connection refused"))
	mockLocal.On("ListByScore", 100).Return([]entity.LeaderboardEntry{}, nil)

	entries, source := svc.Fetch(context.Background(), SortByScore)

	assert.Equal(t, SourceLocal, source)
	assert.Empty(t, entries)
}

func TestLeaderboardService_Fetch_Idempotent(t *testing.T) {
	mockRemote := new(MockRemoteStoreForLeaderboard)
	mockLocal := new(MockLocalRepoForLeaderboard)
	svc := NewLeaderboardService(mockLocal, mockRemote, gameplay.DefaultConfig())

	remote := makeEntries(5, 10)
	mockRemote.On("GetEntries", mock.Anything).Return(remote, nil)

	// Два Fetch без Submit между ними возвращают одинаковый список
	first, _ := svc.Fetch(context.Background(), SortByScore)
	second, _ := svc.Fetch(context.Background(), SortByScore)
	assert.Equal(t, first, second)
}

func TestLeaderboardService_Fetch_SortByDate(t *testing.T) {
	mockRemote := new(MockRemoteStoreForLeaderboard)
	mockLocal := new(MockLocalRepoForLeaderboard)
	svc := NewLeaderboardService(mockLocal, mockRemote, gameplay.DefaultConfig())

	old := entity.LeaderboardEntry{PlayerName: "Emil", Score: 100, RecordedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	recent := entity.LeaderboardEntry{PlayerName: "Freja", Score: 10, RecordedAt: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)}
	mockRemote.On("GetEntries", mock.Anything).Return([]entity.LeaderboardEntry{old, recent}, nil)

	entries, _ := svc.Fetch(context.Background(), SortByDate)

	// Сортировка по дате: свежие записи первыми, очки роли не играют
	assert.Equal(t, "Freja", entries[0].PlayerName)
	assert.Equal(t, "Emil", entries[1].PlayerName)
}

// ============================================================================
// Тесты Submit
// ============================================================================

func TestLeaderboardService_Submit_LocalWriteHappensFirst(t *testing.T) {
	mockRemote := new(MockRemoteStoreForLeaderboard)
	mockLocal := new(MockLocalRepoForLeaderboard)
	svc := NewLeaderboardService(mockLocal, mockRemote, gameplay.DefaultConfig())

	var order []string
	mockLocal.On("Upsert", mock.AnythingOfType("*entity.LeaderboardEntry")).
		Run(func(args mock.Arguments) { order = append(order, "local") }).
		Return(nil)
	mockRemote.On("GetEntries", mock.Anything).
		Run(func(args mock.Arguments) { order = append(order, "remote-read") }).
		Return([]entity.LeaderboardEntry{}, nil)
	mockRemote.On("SetEntries", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { order = append(order, "remote-write") }).
		Return(nil)

	err := svc.Submit(context.Background(), &entity.LeaderboardEntry{PlayerName: "Freja", Score: 80})

	assert.NoError(t, err)
	assert.Equal(t, []string{"local", "remote-read", "remote-write"}, order,
		"Локальная запись обязана предшествовать любым сетевым операциям")
}

func TestLeaderboardService_Submit_RemoteWriteFailureStillSucceeds(t *testing.T) {
	mockRemote := new(MockRemoteStoreForLeaderboard)
	mockLocal := new(MockLocalRepoForLeaderboard)
	svc := NewLeaderboardService(mockLocal, mockRemote, gameplay.DefaultConfig())

	mockLocal.On("Upsert", mock.AnythingOfType("*entity.LeaderboardEntry")).Return(nil)
	mockRemote.On("GetEntries", mock.Anything).Return([]entity.LeaderboardEntry{}, nil)
	mockRemote.On("SetEntries", mock.Anything, mock.Anything).Return(apperrors.ErrRemoteUnavailable)

	err := svc.Submit(context.Background(), &entity.LeaderboardEntry{PlayerName: "Freja", Score: 80})

	// Неудача удаленной записи не видна вызывающему: локальная запись уже есть
	assert.NoError(t, err)
	mockLocal.AssertExpectations(t)
	mockRemote.AssertExpectations(t)
}

func TestLeaderboardService_Submit_RemoteReadFailureSkipsWrite(t *testing.T) {
	mockRemote := new(MockRemoteStoreForLeaderboard)
	mockLocal := new(MockLocalRepoForLeaderboard)
	svc := NewLeaderboardService(mockLocal, mockRemote, gameplay.DefaultConfig())

	mockLocal.On("Upsert", mock.AnythingOfType("*entity.LeaderboardEntry")).Return(nil)
	mockRemote.On("GetEntries", mock.Anything).Return(nil, apperrors.ErrRemoteUnavailable)

	err := svc.Submit(context.Background(), &entity.LeaderboardEntry{PlayerName: "Freja", Score: 80})

	assert.NoError(t, err)
	// Без успешного чтения нет и записи (merge не с чем делать)
	mockRemote.AssertNotCalled(t, "SetEntries", mock.Anything, mock.Anything)
}

func TestLeaderboardService_Submit_LocalFailureIsSurfaced(t *testing.T) {
	mockRemote := new(MockRemoteStoreForLeaderboard)
	mockLocal := new(MockLocalRepoForLeaderboard)
	svc := NewLeaderboardService(mockLocal, mockRemote, gameplay.DefaultConfig())

	dbErr := errors.New("pq: connection reset")
	mockLocal.On("Upsert", mock.AnythingOfType("*entity.LeaderboardEntry")).Return(dbErr)

	err := svc.Submit(context.Background(), &entity.LeaderboardEntry{PlayerName: "Freja", Score: 80})

	// Единственная ошибка, которую видит вызывающий — отказ локального хранилища
	assert.ErrorIs(t, err, dbErr)
	mockRemote.AssertNotCalled(t, "GetEntries", mock.Anything)
}

func TestLeaderboardService_Submit_StampsRecordedAt(t *testing.T) {
	mockRemote := new(MockRemoteStoreForLeaderboard)
	mockLocal := new(MockLocalRepoForLeaderboard)
	svc := NewLeaderboardService(mockLocal, mockRemote, gameplay.DefaultConfig())

	mockLocal.On("Upsert", mock.AnythingOfType("*entity.LeaderboardEntry")).Return(nil)
	mockRemote.On("GetEntries", mock.Anything).Return([]entity.LeaderboardEntry{}, nil)
	mockRemote.On("SetEntries", mock.Anything, mock.Anything).Return(nil)

	entry := &entity.LeaderboardEntry{PlayerName: "Freja", Score: 80}
	err := svc.Submit(context.Background(), entry)

	assert.NoError(t, err)
	assert.False(t, entry.RecordedAt.IsZero(), "Submit должен проставить метку времени")
}

func TestLeaderboardService_Submit_TruncatesToCapacity(t *testing.T) {
	mockRemote := new(MockRemoteStoreForLeaderboard)
	mockLocal := new(MockLocalRepoForLeaderboard)
	svc := NewLeaderboardService(mockLocal, mockRemote, gameplay.DefaultConfig())

	// Удаленный список уже полон: 100 записей с очками 50..149
	full := makeEntries(100, 50)
	mockLocal.On("Upsert", mock.AnythingOfType("*entity.LeaderboardEntry")).Return(nil)
	mockRemote.On("GetEntries", mock.Anything).Return(full, nil)

	var written []entity.LeaderboardEntry
	mockRemote.On("SetEntries", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			written = args.Get(1).([]entity.LeaderboardEntry)
		}).
		Return(nil)

	// 101-я запись с очками выше минимальных вытесняет худшую
	newcomer := &entity.LeaderboardEntry{PlayerName: "Freja", Score: 60}
	err := svc.Submit(context.Background(), newcomer)

	assert.NoError(t, err)
	assert.Len(t, written, 100, "Список обрезается ровно до вместимости")
	assert.Equal(t, 51, written[len(written)-1].Score,
		"Худшая запись (50) вытеснена, минимальный оставшийся счет — 51")
	for _, e := range written {
		assert.GreaterOrEqual(t, e.Score, 51, "Все оставшиеся не хуже вытесненной записи")
	}
}

func TestLeaderboardService_Submit_MergeUpdatesByPlayerName(t *testing.T) {
	mockRemote := new(MockRemoteStoreForLeaderboard)
	mockLocal := new(MockLocalRepoForLeaderboard)
	svc := NewLeaderboardService(mockLocal, mockRemote, gameplay.DefaultConfig())

	remote := []entity.LeaderboardEntry{
		{PlayerName: "Freja", Score: 70},
		{PlayerName: "Emil", Score: 40},
	}
	mockLocal.On("Upsert", mock.AnythingOfType("*entity.LeaderboardEntry")).Return(nil)
	mockRemote.On("GetEntries", mock.Anything).Return(remote, nil)

	var written []entity.LeaderboardEntry
	mockRemote.On("SetEntries", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			written = args.Get(1).([]entity.LeaderboardEntry)
		}).
		Return(nil)

	// Лучший результат того же игрока обновляет его запись, а не добавляет новую
	err := svc.Submit(context.Background(), &entity.LeaderboardEntry{PlayerName: "Freja", Score: 95})

	assert.NoError(t, err)
	assert.Len(t, written, 2, "Запись обновляется по имени, дубликат не создается")
	assert.Equal(t, 95, written[0].Score)
	assert.Equal(t, "Freja", written[0].PlayerName)
}

func TestLeaderboardService_Submit_MergeKeepsBetterExistingScore(t *testing.T) {
	mockRemote := new(MockRemoteStoreForLeaderboard)
	mockLocal := new(MockLocalRepoForLeaderboard)
	svc := NewLeaderboardService(mockLocal, mockRemote, gameplay.DefaultConfig())

	remote := []entity.LeaderboardEntry{{PlayerName: "Freja", Score: 95}}
	mockLocal.On("Upsert", mock.AnythingOfType("*entity.LeaderboardEntry")).Return(nil)
	mockRemote.On("GetEntries", mock.Anything).Return(remote, nil)

	var written []entity.LeaderboardEntry
	mockRemote.On("SetEntries", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			written = args.Get(1).([]entity.LeaderboardEntry)
		}).
		Return(nil)

	// Худший повторный результат не затирает сохраненный лучший
	err := svc.Submit(context.Background(), &entity.LeaderboardEntry{PlayerName: "Freja", Score: 30})

	assert.NoError(t, err)
	assert.Len(t, written, 1)
	assert.Equal(t, 95, written[0].Score)
}

// ============================================================================
// Тесты SyncLocalToRemote (инструмент восстановления)
// ============================================================================

func TestLeaderboardService_SyncLocalToRemote_MergesLocalIntoRemote(t *testing.T) {
	mockRemote := new(MockRemoteStoreForLeaderboard)
	mockLocal := new(MockLocalRepoForLeaderboard)
	svc := NewLeaderboardService(mockLocal, mockRemote, gameplay.DefaultConfig())

	local := []entity.LeaderboardEntry{
		{PlayerName: "Freja", Score: 90},
		{PlayerName: "Emil", Score: 40},
	}
	remote := []entity.LeaderboardEntry{
		{PlayerName: "Emil", Score: 60}, // лучше локального, должен остаться
		{PlayerName: "Ida", Score: 70},
	}
	mockLocal.On("ListByScore", 100).Return(local, nil)
	mockRemote.On("GetEntries", mock.Anything).Return(remote, nil)

	var written []entity.LeaderboardEntry
	mockRemote.On("SetEntries", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			written = args.Get(1).([]entity.LeaderboardEntry)
		}).
		Return(nil)

	synced, err := svc.SyncLocalToRemote(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, synced)
	assert.Len(t, written, 3)
	assert.Equal(t, "Freja", written[0].PlayerName)
	assert.Equal(t, "Ida", written[1].PlayerName)
	assert.Equal(t, "Emil", written[2].PlayerName)
	assert.Equal(t, 60, written[2].Score)
}

func TestLeaderboardService_SyncLocalToRemote_RemoteFailureIsSurfaced(t *testing.T) {
	mockRemote := new(MockRemoteStoreForLeaderboard)
	mockLocal := new(MockLocalRepoForLeaderboard)
	svc := NewLeaderboardService(mockLocal, mockRemote, gameplay.DefaultConfig())

	mockLocal.On("ListByScore", 100).Return([]entity.LeaderboardEntry{{PlayerName: "Freja", Score: 90}}, nil)
	mockRemote.On("GetEntries", mock.Anything).Return(nil, apperrors.ErrRemoteUnavailable)

	_, err := svc.SyncLocalToRemote(context.Background())

	// В отличие от Submit, инструмент восстановления не скрывает ошибки
	assert.ErrorIs(t, err, apperrors.ErrRemoteUnavailable)
	mockRemote.AssertNotCalled(t, "SetEntries", mock.Anything, mock.Anything)
}
