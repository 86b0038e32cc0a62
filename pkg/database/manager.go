package database

import (
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/pkg/config"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

// Manager owns the process-wide connection pool. It is created once at
// process start and torn down at process stop. When the initial connection
// fails the manager keeps retrying in the background at a fixed delay;
// queries issued while no pool exists fail fast with a connection error
// instead of blocking.
type Manager struct {
	cfg    config.DatabaseConfig
	logger *zap.Logger

	mu sync.RWMutex
	db *sqlx.DB

	stop     chan struct{}
	stopOnce sync.Once
	retrying sync.WaitGroup
}

// NewManager builds the manager and attempts an initial connection. A failed
// initial connection does not return an error; a background retry loop is
// scheduled instead.
func NewManager(cfg config.DatabaseConfig, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Manager{cfg: cfg, logger: logger, stop: make(chan struct{})}

	db, err := m.connect()
	if err != nil {
		m.logger.Warn("initial database connection failed, scheduling retry",
			zap.Error(err), zap.Duration("delay", cfg.ReconnectDelay))
		m.retrying.Add(1)
		go m.retryLoop()
		return m
	}
	m.db = db
	return m
}

// DB returns the live pool, failing fast while the store is unreachable.
func (m *Manager) DB() (*sqlx.DB, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.db == nil {
		return nil, appErrors.Clone(appErrors.ErrStoreUnavailable, "store unavailable")
	}
	return m.db, nil
}

// AcquireTimeout exposes the configured wait bound for pool checkout.
func (m *Manager) AcquireTimeout() time.Duration {
	if m.cfg.AcquireTimeout <= 0 {
		return 5 * time.Second
	}
	return m.cfg.AcquireTimeout
}

// Close tears down the pool and stops the retry loop.
func (m *Manager) Close() error {
	m.stopOnce.Do(func() { close(m.stop) })
	m.retrying.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	return err
}

func (m *Manager) connect() (*sqlx.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		m.cfg.Host,
		m.cfg.Port,
		m.cfg.User,
		m.cfg.Password,
		m.cfg.Name,
		m.cfg.SSLMode,
	)

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if m.cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(m.cfg.MaxOpenConns)
	}
	if m.cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(m.cfg.MaxIdleConns)
	}

	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func (m *Manager) retryLoop() {
	defer m.retrying.Done()

	delay := m.cfg.ReconnectDelay
	if delay <= 0 {
		delay = 10 * time.Second
	}
	ticker := time.NewTicker(delay)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			db, err := m.connect()
			if err != nil {
				m.logger.Warn("database reconnect failed", zap.Error(err))
				continue
			}
			m.mu.Lock()
			m.db = db
			m.mu.Unlock()
			m.logger.Info("database connection established")
			return
		}
	}
}
