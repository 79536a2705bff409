// Package db implements the dual-backend database connector. A single
// connection string is classified as MongoDB or Postgres by its scheme (and a
// couple of known relational hosting domains), and the resulting Handle
// exposes whichever driver was selected. Repositories pick their
// implementation once at startup based on Handle.Type.
package db

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Type identifies which backend a connection string resolved to.
type Type string

const (
	TypeMongo    Type = "mongodb"
	TypePostgres Type = "postgres"
)

const (
	defaultDialTimeout = 5 * time.Second

	// Used when a MongoDB URI carries no database path segment.
	defaultMongoDatabase = "bot"
)

// ErrClosed is returned when a Handle is used after Close.
var ErrClosed = errors.New("db: handle is closed")

var authMechanismRe = regexp.MustCompile(`[?&]authMechanism=`)

// Handle is the uniform connection object returned by Connect. Exactly one of
// the backend fields is populated, indicated by Type.
type Handle struct {
	Type Type

	// Mongo is set when Type == TypeMongo.
	Mongo *mongo.Database

	// Gorm and Pool are set when Type == TypePostgres.
	Gorm *gorm.DB
	Pool *pgxpool.Pool

	client *mongo.Client

	mu     sync.Mutex
	closed bool
}

// Normalize trims whitespace and strips accidental matching wrapping quotes,
// a common pitfall when connection strings are pasted into secret managers.
func Normalize(raw string) string {
	uri := strings.TrimSpace(raw)
	if len(uri) >= 2 &&
		((strings.HasPrefix(uri, `"`) && strings.HasSuffix(uri, `"`)) ||
			(strings.HasPrefix(uri, "'") && strings.HasSuffix(uri, "'"))) {
		uri = strings.TrimSpace(uri[1 : len(uri)-1])
	}
	return uri
}

// Detect classifies a connection string. Unrecognized strings default to
// Postgres.
func Detect(raw string) Type {
	uri := Normalize(raw)
	if strings.HasPrefix(uri, "mongodb://") || strings.HasPrefix(uri, "mongodb+srv://") {
		return TypeMongo
	}
	if strings.HasPrefix(uri, "postgres://") || strings.HasPrefix(uri, "postgresql://") ||
		strings.Contains(uri, "neon.tech") || strings.Contains(uri, "supabase.co") {
		return TypePostgres
	}
	// Default to Postgres if unclear.
	return TypePostgres
}

// NormalizeMongoURI appends authMechanism=SCRAM-SHA-1 when the URI carries no
// explicit auth mechanism. Hosted Atlas SRV URLs fail SASL negotiation
// without it on some driver versions.
func NormalizeMongoURI(raw string) string {
	uri := Normalize(raw)
	if !strings.HasPrefix(uri, "mongodb://") && !strings.HasPrefix(uri, "mongodb+srv://") {
		return uri
	}
	if authMechanismRe.MatchString(uri) {
		return uri
	}
	if strings.Contains(uri, "?") {
		return uri + "&authMechanism=SCRAM-SHA-1"
	}
	return uri + "?authMechanism=SCRAM-SHA-1"
}

// NormalizePostgresURI forces TLS when the URI does not state an sslmode.
// Hosted Postgres (Neon, Supabase) rejects plaintext connections.
func NormalizePostgresURI(raw string) string {
	uri := Normalize(raw)
	if strings.Contains(uri, "sslmode=") {
		return uri
	}
	if strings.Contains(uri, "?") {
		return uri + "&sslmode=require"
	}
	return uri + "?sslmode=require"
}

// Connect opens the backend selected by the connection string and returns a
// Handle. The caller owns the Handle and must Close it exactly once.
func Connect(ctx context.Context, rawURI string) (*Handle, error) {
	if strings.TrimSpace(rawURI) == "" {
		return nil, errors.New("db: connection string is empty")
	}

	switch Detect(rawURI) {
	case TypeMongo:
		return connectMongo(ctx, rawURI)
	default:
		return connectPostgres(ctx, rawURI)
	}
}

func connectMongo(ctx context.Context, rawURI string) (*Handle, error) {
	uri := NormalizeMongoURI(rawURI)

	dialCtx, cancel := context.WithTimeout(ctx, defaultDialTimeout)
	defer cancel()

	client, err := mongo.Connect(dialCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("db: connect mongodb: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, defaultDialTimeout)
	defer pingCancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("db: ping mongodb: %w", err)
	}

	return &Handle{
		Type:   TypeMongo,
		Mongo:  client.Database(mongoDatabaseName(uri)),
		client: client,
	}, nil
}

func connectPostgres(ctx context.Context, rawURI string) (*Handle, error) {
	uri := NormalizePostgresURI(rawURI)

	poolCfg, err := pgxpool.ParseConfig(uri)
	if err != nil {
		return nil, fmt.Errorf("db: parse postgres uri: %w", err)
	}

	dialCtx, cancel := context.WithTimeout(ctx, defaultDialTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(dialCtx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("db: create postgres pool: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, defaultDialTimeout)
	defer pingCancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db: ping postgres: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		Conn: stdlib.OpenDBFromPool(pool),
	}), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("db: open gorm connection: %w", err)
	}

	return &Handle{
		Type: TypePostgres,
		Gorm: gormDB,
		Pool: pool,
	}, nil
}

// mongoDatabaseName extracts the default database from the URI path.
func mongoDatabaseName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return defaultMongoDatabase
	}
	name := strings.TrimPrefix(u.Path, "/")
	if name == "" {
		return defaultMongoDatabase
	}
	return name
}

// Close releases the underlying connections. Safe to call multiple times and
// safe to call on a Handle that never issued a query; the Handle is unusable
// afterwards.
func (h *Handle) Close(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true

	switch h.Type {
	case TypeMongo:
		if h.client != nil {
			return h.client.Disconnect(ctx)
		}
	case TypePostgres:
		if h.Gorm != nil {
			if sqlDB, err := h.Gorm.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		if h.Pool != nil {
			h.Pool.Close()
		}
	}
	return nil
}

// Closed reports whether Close has been called.
func (h *Handle) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

// Ping verifies connectivity on the selected backend.
func (h *Handle) Ping(ctx context.Context) error {
	if h.Closed() {
		return ErrClosed
	}

	switch h.Type {
	case TypeMongo:
		if h.client == nil {
			return ErrClosed
		}
		return h.client.Ping(ctx, readpref.Primary())
	case TypePostgres:
		if h.Pool == nil {
			return ErrClosed
		}
		return h.Pool.Ping(ctx)
	}
	return fmt.Errorf("db: unknown backend type %q", h.Type)
}
