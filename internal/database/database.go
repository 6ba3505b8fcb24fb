package database

import (
	"errors"
	"strings"
	"time"

	"aura/internal/domain"
	"aura/internal/pkg/logger"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

type Options struct {
	MaxOpenConns int
	MaxIdleConns int
	// Debug logs every SQL statement.
	Debug bool
}

// Connect opens PostgreSQL for postgres:// DSNs and pure-Go SQLite otherwise.
func Connect(dsn string, opts Options, log *logger.Logger) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	}
	if opts.Debug {
		gcfg.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	var (
		db  *gorm.DB
		err error
	)
	if IsPostgres(dsn) {
		log.Info("connecting to PostgreSQL")
		db, err = gorm.Open(postgres.Open(dsn), gcfg)
	} else {
		log.Info("using SQLite", "dsn", dsn)
		db, err = gorm.Open(gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        withSQLitePragmas(dsn),
		}), gcfg)
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	pool := poolFor(dsn, opts)
	sqlDB.SetMaxOpenConns(pool.maxOpen)
	if pool.maxIdle > 0 {
		sqlDB.SetMaxIdleConns(pool.maxIdle)
	}
	sqlDB.SetConnMaxLifetime(pool.maxLifetime)
	return db, nil
}

type poolSettings struct {
	maxOpen     int
	maxIdle     int
	maxLifetime time.Duration
}

// poolFor pins SQLite to one connection that is never recycled: an in-memory
// database lives and dies with it.
func poolFor(dsn string, opts Options) poolSettings {
	if !IsPostgres(dsn) {
		return poolSettings{maxOpen: 1, maxIdle: 1}
	}
	return poolSettings{maxOpen: opts.MaxOpenConns, maxIdle: opts.MaxIdleConns, maxLifetime: 30 * time.Minute}
}

func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(domain.Models()...)
}

// IsUniqueViolation recognises duplicate-key failures from either driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func withSQLitePragmas(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
