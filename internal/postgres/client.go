package postgres

import (
	"context"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/leaseflow/leaseflow/internal/config"
	ierr "github.com/leaseflow/leaseflow/internal/errors"
	"github.com/leaseflow/leaseflow/internal/logger"
	"github.com/leaseflow/leaseflow/internal/types"
)

type txContextKey struct{}

// IClient is the database access contract handed to repositories and
// services. Querier returns the ambient transaction when one is active so a
// repository call participates in its caller's transaction transparently.
type IClient interface {
	// Querier returns the gorm handle for the current context: the active
	// transaction if one is stashed on the context, the root connection
	// otherwise.
	Querier(ctx context.Context) *gorm.DB

	// WithTx runs fn inside a transaction. The transaction handle is
	// stashed on the context passed to fn. Nested calls join the existing
	// transaction.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Client implements IClient over a gorm connection
type Client struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewClient opens the configured database and returns a client
func NewClient(cfg *config.Configuration, log *logger.Logger) (IClient, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Database.DSN)
	default:
		dialector = sqlite.Open(cfg.Database.DSN)
	}

	gormLogLevel := gormlogger.Warn
	if cfg.Logging.Level == types.LogLevelDebug {
		gormLogLevel = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormLogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to connect to the database").
			WithReportableDetails(map[string]interface{}{"driver": cfg.Database.Driver}).
			Mark(ierr.ErrDatabase)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to access the underlying connection pool").
			Mark(ierr.ErrDatabase)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	log.Infow("database connection established", "driver", cfg.Database.Driver)

	return &Client{db: db, logger: log}, nil
}

// NewClientWithDB wraps an existing gorm handle, used by migration scripts
func NewClientWithDB(db *gorm.DB, log *logger.Logger) *Client {
	return &Client{db: db, logger: log}
}

// Querier returns the active transaction from the context, or the root
// connection
func (c *Client) Querier(ctx context.Context) *gorm.DB {
	if tx := c.TxFromContext(ctx); tx != nil {
		return tx
	}
	return c.db.WithContext(ctx)
}

// TxFromContext returns the transaction stashed on the context, if any
func (c *Client) TxFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return nil
}

// WithTx runs fn inside a transaction; nested calls join the ambient one
func (c *Client) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx := c.TxFromContext(ctx); tx != nil {
		return fn(ctx)
	}

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
	if err != nil {
		// Marked errors from fn pass through untouched
		var ie *ierr.InternalError
		if ierr.As(err, &ie) {
			return err
		}
		return ierr.WithError(err).
			WithHint("Transaction failed").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
