package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/achievekit/achievement-engine/pkg/errors"
)

// PostgresRepository implements EventRepository and AchievementRepository
// on PostgreSQL.
//
// Expected tables:
//
//	user_event_counters (user_id, event_name, score, updated_at)
//	  PRIMARY KEY (user_id, event_name)
//	user_achievements (user_id, achievement_id, level, unlocked_at)
//	  PRIMARY KEY (user_id, achievement_id, level)
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a PostgreSQL-backed repository.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
	}
}

// Repository bundles the Postgres stores into the aggregate the engine takes.
func (r *PostgresRepository) Repository() Repository {
	return Repository{Events: r, Achievements: r}
}

// ScoreOf returns the current counter value for an event.
func (r *PostgresRepository) ScoreOf(ctx context.Context, userID, event string) (int64, error) {
	query := `
		SELECT score
		FROM user_event_counters
		WHERE user_id = $1 AND event_name = $2
	`

	var score int64
	err := r.db.QueryRowContext(ctx, query, userID, event).Scan(&score)
	if err == sql.ErrNoRows {
		return 0, nil // No counter recorded yet
	}
	if err != nil {
		return 0, errors.ErrDatabaseError("score of", err)
	}

	return score, nil
}

// SetScore stores an absolute counter value and returns the new value.
func (r *PostgresRepository) SetScore(ctx context.Context, userID, event string, score int64) (int64, error) {
	query := `
		INSERT INTO user_event_counters (user_id, event_name, score, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, event_name) DO UPDATE SET
			score = EXCLUDED.score,
			updated_at = NOW()
		RETURNING score
	`

	var current int64
	if err := r.db.QueryRowContext(ctx, query, userID, event, score).Scan(&current); err != nil {
		return 0, errors.ErrDatabaseError("set score", err)
	}

	return current, nil
}

// Increment atomically adds one to the counter and returns the new value.
func (r *PostgresRepository) Increment(ctx context.Context, userID, event string) (int64, error) {
	query := `
		INSERT INTO user_event_counters (user_id, event_name, score, updated_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (user_id, event_name) DO UPDATE SET
			score = user_event_counters.score + 1,
			updated_at = NOW()
		RETURNING score
	`

	var current int64
	if err := r.db.QueryRowContext(ctx, query, userID, event).Scan(&current); err != nil {
		return 0, errors.ErrDatabaseError("increment", err)
	}

	return current, nil
}

// ResetCounters removes every counter of the user.
func (r *PostgresRepository) ResetCounters(ctx context.Context, userID string) error {
	query := `DELETE FROM user_event_counters WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return errors.ErrDatabaseError("reset counters", err)
	}
	return nil
}

// IsUnlocked reports whether any level of the achievement is unlocked.
func (r *PostgresRepository) IsUnlocked(ctx context.Context, userID, achievementID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM user_achievements
			WHERE user_id = $1 AND achievement_id = $2
		)
	`

	var unlocked bool
	if err := r.db.QueryRowContext(ctx, query, userID, achievementID).Scan(&unlocked); err != nil {
		return false, errors.ErrDatabaseError("is unlocked", err)
	}
	return unlocked, nil
}

// IsLevelUnlocked reports whether a specific level is unlocked.
func (r *PostgresRepository) IsLevelUnlocked(ctx context.Context, userID, achievementID string, level int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM user_achievements
			WHERE user_id = $1 AND achievement_id = $2 AND level = $3
		)
	`

	var unlocked bool
	if err := r.db.QueryRowContext(ctx, query, userID, achievementID, level).Scan(&unlocked); err != nil {
		return false, errors.ErrDatabaseError("is level unlocked", err)
	}
	return unlocked, nil
}

// Unlock marks a level as unlocked. The conditional insert makes the
// idempotency gate a single atomic write: a concurrent duplicate simply
// affects zero rows and reports false.
func (r *PostgresRepository) Unlock(ctx context.Context, userID, achievementID string, level int) (bool, error) {
	query := `
		INSERT INTO user_achievements (user_id, achievement_id, level, unlocked_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, achievement_id, level) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, userID, achievementID, level)
	if err != nil {
		return false, errors.ErrDatabaseError("unlock", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, errors.ErrDatabaseError("unlock", err)
	}
	return affected > 0, nil
}

// GetAll returns every unlock record of the user.
func (r *PostgresRepository) GetAll(ctx context.Context, userID string) ([]UnlockRecord, error) {
	query := `
		SELECT user_id, achievement_id, level, unlocked_at
		FROM user_achievements
		WHERE user_id = $1
		ORDER BY unlocked_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errors.ErrDatabaseError("get all", err)
	}
	defer func() { _ = rows.Close() }()

	var records []UnlockRecord
	for rows.Next() {
		var record UnlockRecord
		if err := rows.Scan(&record.UserID, &record.AchievementID, &record.Level, &record.UnlockedAt); err != nil {
			return nil, errors.ErrDatabaseError("get all", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.ErrDatabaseError("get all", err)
	}

	return records, nil
}

// Clear removes every unlock record of the user.
func (r *PostgresRepository) Clear(ctx context.Context, userID string) error {
	query := `DELETE FROM user_achievements WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return errors.ErrDatabaseError("clear", err)
	}
	return nil
}

// Config holds PostgreSQL connection settings.
type Config struct {
	Host            string
	Port            int
	Database        string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// NewConfigFromEnv builds a Config from DB_* environment variables,
// falling back to development defaults.
func NewConfigFromEnv() Config {
	return Config{
		Host:            envString("DB_HOST", "localhost"),
		Port:            envInt("DB_PORT", 5432),
		Database:        envString("DB_NAME", "achievement_engine"),
		User:            envString("DB_USER", "postgres"),
		Password:        envString("DB_PASSWORD", ""),
		SSLMode:         envString("DB_SSLMODE", "disable"),
		MaxOpenConns:    envInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    envInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: time.Duration(envInt("DB_CONN_MAX_LIFETIME", 300)) * time.Second,
		ConnMaxIdleTime: time.Duration(envInt("DB_CONN_MAX_IDLE_TIME", 300)) * time.Second,
	}
}

// Connect opens a connection pool and verifies it with a ping.
func Connect(ctx context.Context, cfg Config) (*sql.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.Database, cfg.User, cfg.Password, cfg.SSLMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.ErrDatabaseError("open connection", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.ErrDatabaseError("ping", err)
	}

	return db, nil
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
