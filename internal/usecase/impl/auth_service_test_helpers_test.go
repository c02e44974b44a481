package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"farmweather/config"
	"farmweather/internal/domain/entity"
	"farmweather/internal/domain/repository"
	"farmweather/internal/observability"
	"farmweather/internal/usecase"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(minPasswordLength int) *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:        10,
			MinPasswordLength: minPasswordLength,
		},
	}
}

// fakeAccountStore is an in-memory AccountRepository with the same uniqueness
// semantics as the Postgres implementation.
type fakeAccountStore struct {
	mu       sync.Mutex
	accounts []*entity.Account

	findErr   error
	createErr error
	creates   int
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{}
}

func (s *fakeAccountStore) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range s.accounts {
		if account.ID == id {
			return account, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (s *fakeAccountStore) FindByUsername(_ context.Context, username string) (*entity.Account, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range s.accounts {
		if account.Username == username {
			return account, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (s *fakeAccountStore) FindByUsernameOrEmail(_ context.Context, username, email string) (*entity.Account, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range s.accounts {
		if account.Username == username || account.Email == email {
			return account, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (s *fakeAccountStore) Create(_ context.Context, account *entity.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creates++
	if s.createErr != nil {
		return s.createErr
	}

	for _, existing := range s.accounts {
		if existing.Username == account.Username || existing.Email == account.Email {
			return repository.ErrAccountExists
		}
	}

	account.ID = uuid.New()
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	s.accounts = append(s.accounts, account)

	return nil
}

// fakeSessionStore is an in-memory SessionRepository keyed by token hash.
type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*entity.Session

	createErr error
	now       func() time.Time
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{
		sessions: make(map[string]*entity.Session),
		now:      time.Now,
	}
}

func (s *fakeSessionStore) Create(_ context.Context, session *entity.Session) error {
	if s.createErr != nil {
		return s.createErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session.ID = uuid.New()
	session.CreatedAt = s.now()
	s.sessions[session.TokenHash] = session

	return nil
}

func (s *fakeSessionStore) FindByTokenHash(_ context.Context, tokenHash string) (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[tokenHash]
	if !ok || session.Expired(s.now()) {
		return nil, repository.ErrSessionNotFound
	}

	return session, nil
}

func (s *fakeSessionStore) DeleteByTokenHash(_ context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, tokenHash)

	return nil
}

func (s *fakeSessionStore) DeleteByAccountID(_ context.Context, accountID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for hash, session := range s.sessions {
		if session.AccountID == accountID {
			delete(s.sessions, hash)
		}
	}

	return nil
}

func (s *fakeSessionStore) DeleteExpired(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for hash, session := range s.sessions {
		if session.Expired(s.now()) {
			delete(s.sessions, hash)
			deleted++
		}
	}

	return deleted, nil
}

// fakeTxManager runs the transactional function directly against the fakes.
type fakeTxManager struct {
	accounts *fakeAccountStore
	sessions *fakeSessionStore
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m)
}

func (m *fakeTxManager) AccountRepo() repository.AccountRepository { return m.accounts }
func (m *fakeTxManager) SessionRepo() repository.SessionRepository { return m.sessions }

// fakePasswordHasher makes hashes deterministic so tests can assert on them.
type fakePasswordHasher struct {
	hashErr error
}

func (h *fakePasswordHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}

	return "hashed:" + password, nil
}

func (h *fakePasswordHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// fakeTokenService issues predictable tokens.
type fakeTokenService struct {
	mu          sync.Mutex
	counter     int
	generateErr error
	ttl         time.Duration
}

func (t *fakeTokenService) Generate() (string, error) {
	if t.generateErr != nil {
		return "", t.generateErr
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.counter++

	return "token-" + string(rune('a'+t.counter-1)), nil
}

func (t *fakeTokenService) HashToken(token string) string {
	return "h:" + token
}

func (t *fakeTokenService) TTL() time.Duration {
	if t.ttl > 0 {
		return t.ttl
	}

	return time.Hour
}

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service  usecase.AuthUsecase
	accounts *fakeAccountStore
	sessions *fakeSessionStore
	hasher   *fakePasswordHasher
	tokens   *fakeTokenService
}

func createTestAuthService() authServiceFixtures {
	return createTestAuthServiceWithMinPassword(6)
}

func createTestAuthServiceWithMinPassword(minPasswordLength int) authServiceFixtures {
	accounts := newFakeAccountStore()
	sessions := newFakeSessionStore()
	hasher := &fakePasswordHasher{}
	tokens := &fakeTokenService{}

	service := NewAuthService(AuthServiceParams{
		TxManager:   &fakeTxManager{accounts: accounts, sessions: sessions},
		AccountRepo: accounts,
		SessionRepo: sessions,
		Hasher:      hasher,
		Tokens:      tokens,
		Config:      newTestConfig(minPasswordLength),
		Metrics:     observability.NewMetricsFor(prometheus.NewRegistry()),
		Logger:      newDiscardLogger(),
	})

	return authServiceFixtures{
		service:  service,
		accounts: accounts,
		sessions: sessions,
		hasher:   hasher,
		tokens:   tokens,
	}
}
