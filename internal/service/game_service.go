package service

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/yourusername/gangetabel-api/internal/domain/entity"
	"github.com/yourusername/gangetabel-api/internal/domain/repository"
	apperrors "github.com/yourusername/gangetabel-api/internal/pkg/errors"
	"github.com/yourusername/gangetabel-api/internal/service/gameplay"
)

// AnswerOutcome — результат обработки ответа на вопрос
type AnswerOutcome struct {
	Session *entity.GameSession
	Correct bool
	Message string
	// Options заполнены, пока сессия остается на экране игры
	Options []int
}

// GameService — игровой автомат сессии.
// Каждая операция загружает слот сессии, проверяет текущий экран,
// применяет переход и сохраняет слот целиком. Обработка события
// выполняется до конца, прежде чем будет обработано следующее.
type GameService struct {
	sessionRepo repository.SessionRepository
	leaderboard *LeaderboardService
	generator   *gameplay.Generator
	config      *gameplay.Config

	// rand.Rand не потокобезопасен — доступ к генератору сериализуется
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGameService создает новый игровой сервис
func NewGameService(
	sessionRepo repository.SessionRepository,
	leaderboard *LeaderboardService,
	config *gameplay.Config,
) *GameService {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &GameService{
		sessionRepo: sessionRepo,
		leaderboard: leaderboard,
		generator:   gameplay.NewGenerator(config, rng),
		config:      config,
		rng:         rng,
	}
}

// StartSession создает новый слот сессии на экране ввода имени
func (s *GameService) StartSession(id string) (*entity.GameSession, error) {
	session := &entity.GameSession{
		ID:           id,
		UsedOperands: entity.IntArray{},
		Screen:       entity.ScreenNameEntry,
	}
	if err := s.sessionRepo.Save(session); err != nil {
		return nil, err
	}
	log.Printf("[GameService] Создана сессия %s", id)
	return session, nil
}

// GetState возвращает текущее состояние сессии и варианты ответа
// для активного вопроса (если он есть)
func (s *GameService) GetState(id string) (*entity.GameSession, []int, error) {
	session, err := s.sessionRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	return session, s.optionsFor(session), nil
}

// SubmitName обрабатывает ввод имени: NameEntry -> TableSelect.
// Пустое (после обрезки пробелов) имя отклоняется без изменения состояния.
func (s *GameService) SubmitName(id, name string) (*entity.GameSession, error) {
	session, err := s.sessionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if session.Screen != entity.ScreenNameEntry {
		return nil, fmt.Errorf("%w: cannot submit name on screen %q", apperrors.ErrConflict, session.Screen)
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: player name must not be blank", apperrors.ErrValidation)
	}

	session.PlayerName = trimmed
	session.Screen = entity.ScreenTableSelect
	if err := s.sessionRepo.Save(session); err != nil {
		return nil, err
	}
	return session, nil
}

// ChooseTable обрабатывает выбор таблицы умножения: TableSelect -> Quiz.
// Инициализирует счетчики игры и выдает первый вопрос.
func (s *GameService) ChooseTable(id string, table int) (*entity.GameSession, []int, error) {
	session, err := s.sessionRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if session.Screen != entity.ScreenTableSelect {
		return nil, nil, fmt.Errorf("%w: cannot choose table on screen %q", apperrors.ErrConflict, session.Screen)
	}
	if !s.config.IsValidTable(table) {
		return nil, nil, fmt.Errorf("%w: table must be in [%d,%d]", apperrors.ErrValidation, s.config.MinOperand, s.config.MaxOperand)
	}

	session.ChosenTable = table
	session.UsedOperands = entity.IntArray{}
	session.QuestionsAnswered = 0
	session.WrongAnswers = 0
	session.Score = 0
	session.CurrentStreak = 0
	// BestStreak сознательно не сбрасывается: лучший стрик живет,
	// пока жив слот сессии

	s.mu.Lock()
	operand, err := s.generator.NextOperand(session.UsedOperands)
	s.mu.Unlock()
	if err != nil {
		// Недостижимо при пустом usedOperands, но не паникуем
		return nil, nil, err
	}
	session.CurrentOperand = operand
	session.Screen = entity.ScreenQuiz

	if err := s.sessionRepo.Save(session); err != nil {
		return nil, nil, err
	}
	log.Printf("[GameService] Сессия %s: игрок %q начал таблицу %d", id, session.PlayerName, table)
	return session, s.optionsFor(session), nil
}

// SubmitAnswer обрабатывает ответ на текущий вопрос.
// Правильный ответ продвигает игру (новый вопрос, либо переход на экран
// результатов при достижении лимита вопросов или исчерпании операндов).
// Неправильный ответ оставляет ТОТ ЖЕ вопрос: он задается заново, а не
// пропускается. Очки пересчитываются от счетчиков после каждого ответа.
func (s *GameService) SubmitAnswer(id string, selected int) (*AnswerOutcome, error) {
	session, err := s.sessionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !session.HasActiveQuestion() {
		return nil, fmt.Errorf("%w: no active question on screen %q", apperrors.ErrConflict, session.Screen)
	}

	correct := session.CorrectAnswer()
	outcome := &AnswerOutcome{Session: session}

	if selected == correct {
		session.UsedOperands = append(session.UsedOperands, session.CurrentOperand)
		session.QuestionsAnswered++
		session.CurrentStreak++
		if session.CurrentStreak > session.BestStreak {
			session.BestStreak = session.CurrentStreak
		}
		session.Score = gameplay.Score(
			session.QuestionsAnswered,
			session.QuestionsAnswered+session.WrongAnswers,
			s.config.PointsPerCorrect,
		)
		outcome.Correct = true

		finished := session.QuestionsAnswered >= s.config.QuestionsPerGame
		if !finished {
			s.mu.Lock()
			operand, genErr := s.generator.NextOperand(session.UsedOperands)
			s.mu.Unlock()
			if genErr == gameplay.ErrExhausted {
				finished = true
			} else if genErr != nil {
				return nil, genErr
			} else {
				session.CurrentOperand = operand
			}
		}

		if finished {
			s.finishGame(session)
			outcome.Message = gameplay.EndGameMessage(session.PlayerName, session.ChosenTable)
		} else {
			s.mu.Lock()
			outcome.Message = gameplay.RandomCorrectMessage(s.rng, session.PlayerName)
			s.mu.Unlock()
		}
	} else {
		session.WrongAnswers++
		session.CurrentStreak = 0
		session.Score = gameplay.Score(
			session.QuestionsAnswered,
			session.QuestionsAnswered+session.WrongAnswers,
			s.config.PointsPerCorrect,
		)
		s.mu.Lock()
		outcome.Message = gameplay.RandomWrongMessage(s.rng, session.PlayerName)
		s.mu.Unlock()
	}

	if err := s.sessionRepo.Save(session); err != nil {
		return nil, err
	}
	outcome.Options = s.optionsFor(session)
	return outcome, nil
}

// Restart обрабатывает рестарт: Results -> TableSelect.
// Имя игрока и лучший стрик сохраняются, игровые счетчики сбрасываются.
func (s *GameService) Restart(id string) (*entity.GameSession, error) {
	session, err := s.sessionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if session.Screen != entity.ScreenResults {
		return nil, fmt.Errorf("%w: cannot restart on screen %q", apperrors.ErrConflict, session.Screen)
	}

	session.ChosenTable = 0
	session.CurrentOperand = 0
	session.UsedOperands = entity.IntArray{}
	session.QuestionsAnswered = 0
	session.WrongAnswers = 0
	session.Score = 0
	session.CurrentStreak = 0
	session.Screen = entity.ScreenTableSelect

	if err := s.sessionRepo.Save(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Reset полностью удаляет слот сессии (клик по маскоту).
// Следующее обращение начнет с чистого состояния на экране ввода имени.
func (s *GameService) Reset(id string) error {
	log.Printf("[GameService] Полный сброс сессии %s", id)
	return s.sessionRepo.Delete(id)
}

// finishGame переводит сессию на экран результатов и передает итоговую
// запись движку синхронизации лидерборда. Отправка выполняется в фоне:
// переход на экран результатов не ждет сетевого исхода.
func (s *GameService) finishGame(session *entity.GameSession) {
	session.Screen = entity.ScreenResults
	session.CurrentOperand = 0

	entry := &entity.LeaderboardEntry{
		PlayerName:   session.PlayerName,
		Score:        session.Score,
		BestStreak:   session.BestStreak,
		WrongAnswers: session.WrongAnswers,
		ChosenTable:  session.ChosenTable,
		RecordedAt:   time.Now().UTC(),
	}
	s.leaderboard.SubmitInBackground(entry)

	log.Printf("[GameService] Сессия %s завершена: игрок %q, таблица %d, очки %d, лучший стрик %d",
		session.ID, session.PlayerName, session.ChosenTable, session.Score, session.BestStreak)
}

// optionsFor генерирует варианты ответа для активного вопроса сессии.
// Варианты — презентационная забота и не хранятся в слоте: при каждом
// запросе состояния они генерируются заново.
func (s *GameService) optionsFor(session *entity.GameSession) []int {
	if !session.HasActiveQuestion() {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generator.GenerateOptions(session.CorrectAnswer())
}
