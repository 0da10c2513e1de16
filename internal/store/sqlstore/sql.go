package sqlstore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Skotchmaster/buildmart/internal/store"
)

// document is one stored record; Body holds the JSON encoding including "id".
type document struct {
	Seq        uint64    `gorm:"primaryKey;autoIncrement"`
	ID         string    `gorm:"size:24;uniqueIndex;not null"`
	Collection string    `gorm:"size:64;index;not null"`
	Body       string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (document) TableName() string { return "documents" }

type GormStore struct {
	DB   *gorm.DB
	name string
}

// Open accepts postgres://, postgresql:// and sqlite:// URLs.
func Open(ctx context.Context, dsn string) (*GormStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	var (
		dialector gorm.Dialector
		name      string
		isSQLite  bool
	)
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		dialector = postgres.Open(dsn)
		if u, err := url.Parse(dsn); err == nil {
			name = strings.TrimPrefix(u.Path, "/")
		}
	case strings.HasPrefix(dsn, "sqlite://"):
		path := strings.TrimPrefix(dsn, "sqlite://")
		dialector = sqlite.Open(path)
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		isSQLite = true
	default:
		return nil, fmt.Errorf("unsupported database url scheme: %q", dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt: true,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if isSQLite {
		configureSQLitePool(sqlDB)
	} else {
		configurePool(sqlDB)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return New(db, name)
}

// New migrates the documents table on an already opened connection.
func New(db *gorm.DB, name string) (*GormStore, error) {
	if err := db.AutoMigrate(&document{}); err != nil {
		return nil, fmt.Errorf("migrate documents: %w", err)
	}
	return &GormStore{DB: db, name: name}, nil
}

func configurePool(sqlDB *sql.DB) {
	const (
		maxOpenConns    = 20
		maxIdleConns    = 10
		connMaxLifetime = 30 * time.Minute
		connMaxIdleTime = 5 * time.Minute
	)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
}

// A single never-expiring connection; an in-memory database lives only as long as it does.
func configureSQLitePool(sqlDB *sql.DB) {
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)
}

func (s *GormStore) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *GormStore) Name() string {
	return s.name
}

func (s *GormStore) Create(ctx context.Context, collection string, doc any) (string, error) {
	row, err := newDocument(collection, doc)
	if err != nil {
		return "", err
	}
	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return "", classify("insert", err)
	}
	return row.ID, nil
}

func (s *GormStore) Find(ctx context.Context, collection, id string, out any) error {
	if _, err := store.ParseID(id); err != nil {
		return err
	}

	var row document
	err := s.DB.WithContext(ctx).Where("collection = ? AND id = ?", collection, id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	if err != nil {
		return classify("find", err)
	}

	if err := json.Unmarshal([]byte(row.Body), out); err != nil {
		return fmt.Errorf("decode document %s: %w", id, err)
	}
	return nil
}

func (s *GormStore) Query(ctx context.Context, collection string, filter store.Filter, out any) error {
	var rows []document
	if err := s.DB.WithContext(ctx).Where("collection = ?", collection).Order("seq ASC").Find(&rows).Error; err != nil {
		return classify("query", err)
	}

	matched := make([]json.RawMessage, 0, len(rows))
	for _, row := range rows {
		var fields map[string]any
		if err := json.Unmarshal([]byte(row.Body), &fields); err != nil {
			return fmt.Errorf("decode document %s: %w", row.ID, err)
		}
		if Matches(fields, filter) {
			matched = append(matched, json.RawMessage(row.Body))
		}
	}

	buf, err := json.Marshal(matched)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if err := json.Unmarshal(buf, out); err != nil {
		return fmt.Errorf("decode results: %w", err)
	}
	return nil
}

func (s *GormStore) Count(ctx context.Context, collection string) (int64, error) {
	var n int64
	if err := s.DB.WithContext(ctx).Model(&document{}).Where("collection = ?", collection).Count(&n).Error; err != nil {
		return 0, classify("count", err)
	}
	return n, nil
}

func (s *GormStore) InsertMany(ctx context.Context, collection string, docs []any) ([]string, error) {
	if len(docs) == 0 {
		return []string{}, nil
	}
	rows := make([]document, 0, len(docs))
	for _, doc := range docs {
		row, err := newDocument(collection, doc)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	if err := s.DB.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, classify("insert many", err)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids, nil
}

func (s *GormStore) Collections(ctx context.Context) ([]string, error) {
	var names []string
	if err := s.DB.WithContext(ctx).Model(&document{}).Distinct().Order("collection").Pluck("collection", &names).Error; err != nil {
		return nil, classify("list collections", err)
	}
	return names, nil
}

// Matches reports whether a decoded document satisfies f. Text matching is a
// case-insensitive literal substring test; non-string fields never match.
func Matches(fields map[string]any, f store.Filter) bool {
	for k, want := range f.Equals {
		got, ok := fields[k].(string)
		if !ok || got != want {
			return false
		}
	}
	if f.Text == "" || len(f.TextFields) == 0 {
		return true
	}
	needle := strings.ToLower(f.Text)
	for _, field := range f.TextFields {
		if v, ok := fields[field].(string); ok && strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

func newDocument(collection string, doc any) (document, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return document{}, fmt.Errorf("encode document: %w", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return document{}, fmt.Errorf("document must be an object: %w", err)
	}
	if fields == nil {
		return document{}, errors.New("document must be an object")
	}

	id := store.NewID()
	fields["id"], _ = json.Marshal(id)
	body, err := json.Marshal(fields)
	if err != nil {
		return document{}, fmt.Errorf("encode document: %w", err)
	}

	return document{ID: id, Collection: collection, Body: string(body)}, nil
}

func classify(op string, err error) error {
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) || errors.As(err, &netErr) {
		return fmt.Errorf("%s: %w: %v", op, store.ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
