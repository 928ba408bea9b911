package service

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/yourusername/gangetabel-api/internal/domain/entity"
	"github.com/yourusername/gangetabel-api/internal/domain/repository"
	"github.com/yourusername/gangetabel-api/internal/service/gameplay"
)

// Source помечает происхождение данных лидерборда для клиента
type Source string

const (
	SourceLocal  Source = "local"
	SourceRemote Source = "remote"
)

// SortBy задает порядок сортировки лидерборда при отображении
type SortBy string

const (
	SortByScore SortBy = "score"
	SortByDate  SortBy = "date"
)

// Таймаут фоновой сверки с удаленным хранилищем
const remoteSyncTimeout = 10 * time.Second

// LeaderboardService — движок синхронизации лидерборда.
// Сверяет локальный кеш (Postgres) и удаленное key-value хранилище (Redis):
// запись всегда сначала попадает в локальный кеш, сверка с удаленным
// хранилищем выполняется по принципу best-effort и никогда не приводит
// к ошибке для игрока.
type LeaderboardService struct {
	localRepo repository.LeaderboardRepository
	remote    repository.RemoteLeaderboardStore
	config    *gameplay.Config
}

// NewLeaderboardService создает новый сервис лидерборда
func NewLeaderboardService(
	localRepo repository.LeaderboardRepository,
	remote repository.RemoteLeaderboardStore,
	config *gameplay.Config,
) *LeaderboardService {
	return &LeaderboardService{
		localRepo: localRepo,
		remote:    remote,
		config:    config,
	}
}

// Fetch возвращает записи лидерборда и метку их происхождения.
// Сначала пытается прочитать удаленное хранилище; при ЛЮБОЙ ошибке
// (недоступность, некорректный payload) тихо деградирует в локальный кеш.
// Ошибки наружу не возвращаются вовсе: пустой локальный кеш — это просто
// пустой список с source=local.
func (s *LeaderboardService) Fetch(ctx context.Context, sortBy SortBy) ([]entity.LeaderboardEntry, Source) {
	entries, err := s.remote.GetEntries(ctx)
	if err == nil {
		sortEntries(entries, sortBy)
		if len(entries) > s.config.LeaderboardCapacity {
			entries = entries[:s.config.LeaderboardCapacity]
		}
		return entries, SourceRemote
	}

	log.Printf("[LeaderboardService] Удаленное хранилище недоступно, переключаемся на локальный кеш: %v", err)

	local, localErr := s.listLocal(sortBy)
	if localErr != nil {
		log.Printf("[LeaderboardService] Локальный кеш тоже недоступен: %v", localErr)
		return []entity.LeaderboardEntry{}, SourceLocal
	}
	return local, SourceLocal
}

// Submit сохраняет запись завершенной игры.
// Шаг 1 (обязательный): запись в локальный кеш — выполняется до любых
// сетевых операций и не откатывается при их неудаче.
// Шаг 2 (best-effort): read-merge-write всего списка в удаленном хранилище.
// Неудача шага 2 логируется и НЕ превращается в ошибку для вызывающего:
// локальная запись уже гарантирует, что результат не потерян.
func (s *LeaderboardService) Submit(ctx context.Context, entry *entity.LeaderboardEntry) error {
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now().UTC()
	}

	// Шаг 1: безусловная локальная запись
	if err := s.localRepo.Upsert(entry); err != nil {
		log.Printf("[LeaderboardService] Ошибка записи в локальный кеш для игрока %q: %v", entry.PlayerName, err)
		return err
	}

	// Шаг 2: сверка с удаленным хранилищем
	if err := s.reconcileRemote(ctx, entry); err != nil {
		log.Printf("[LeaderboardService] Сверка с удаленным хранилищем не удалась (игрок %q): %v. Результат сохранен локально.",
			entry.PlayerName, err)
	}

	return nil
}

// SubmitInBackground запускает Submit в отдельной горутине с собственным
// контекстом. Используется игровым автоматом при переходе на экран результатов:
// переход не блокируется сетевым исходом, начатая сверка может пережить
// рестарт сессии.
func (s *LeaderboardService) SubmitInBackground(entry *entity.LeaderboardEntry) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), remoteSyncTimeout)
		defer cancel()
		if err := s.Submit(ctx, entry); err != nil {
			log.Printf("[LeaderboardService] Фоновая отправка результата игрока %q не удалась: %v", entry.PlayerName, err)
		}
	}()
}

// SyncLocalToRemote вливает ВСЕ записи локального кеша в удаленное хранилище
// одним циклом read-merge-write. Это инструмент восстановления (cmd/sync-leaderboard),
// а не часть игрового пути: ошибки здесь возвращаются вызывающему как есть.
// Возвращает количество локальных записей, участвовавших в слиянии.
func (s *LeaderboardService) SyncLocalToRemote(ctx context.Context) (int, error) {
	local, err := s.localRepo.ListByScore(s.config.LeaderboardCapacity)
	if err != nil {
		return 0, err
	}

	remote, err := s.remote.GetEntries(ctx)
	if err != nil {
		return 0, err
	}

	merged := remote
	for _, entry := range local {
		merged = mergeEntry(merged, entry)
	}

	sortEntries(merged, SortByScore)
	if len(merged) > s.config.LeaderboardCapacity {
		merged = merged[:s.config.LeaderboardCapacity]
	}

	if err := s.remote.SetEntries(ctx, merged); err != nil {
		return 0, err
	}
	return len(local), nil
}

// reconcileRemote выполняет цикл read-merge-write с удаленным хранилищем.
// Read-merge-write всего списка не атомарен между инстансами: конкурирующие
// писатели могут потерять обновления друг друга — допустимо для
// развлекательного лидерборда.
func (s *LeaderboardService) reconcileRemote(ctx context.Context, entry *entity.LeaderboardEntry) error {
	entries, err := s.remote.GetEntries(ctx)
	if err != nil {
		return err
	}

	merged := mergeEntry(entries, *entry)

	// Каноничный порядок хранения — по убыванию очков; при переполнении
	// остаются только LeaderboardCapacity лучших записей
	sortEntries(merged, SortByScore)
	if len(merged) > s.config.LeaderboardCapacity {
		merged = merged[:s.config.LeaderboardCapacity]
	}

	return s.remote.SetEntries(ctx, merged)
}

// listLocal читает локальный кеш в заданном порядке
func (s *LeaderboardService) listLocal(sortBy SortBy) ([]entity.LeaderboardEntry, error) {
	if sortBy == SortByDate {
		return s.localRepo.ListByDate(s.config.LeaderboardCapacity)
	}
	return s.localRepo.ListByScore(s.config.LeaderboardCapacity)
}

// mergeEntry вливает запись в список по политике "лучший результат на игрока":
// существующая запись с тем же именем заменяется, только если новый счет выше.
// Игрок без записи в списке добавляется в конец.
func mergeEntry(entries []entity.LeaderboardEntry, entry entity.LeaderboardEntry) []entity.LeaderboardEntry {
	for i := range entries {
		if entries[i].PlayerName == entry.PlayerName {
			if entry.Score > entries[i].Score {
				entries[i] = entry
			}
			return entries
		}
	}
	return append(entries, entry)
}

// sortEntries сортирует записи для отображения. Сортировка стабильная:
// при равных очках сохраняется исходный порядок (произвольный разрыв ничьих).
func sortEntries(entries []entity.LeaderboardEntry, sortBy SortBy) {
	switch sortBy {
	case SortByDate:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].RecordedAt.After(entries[j].RecordedAt)
		})
	default:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Score > entries[j].Score
		})
	}
}
