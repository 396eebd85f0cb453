package lessonhub

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/lesson-hub/internal/config"
	"github.com/magabrotheeeer/lesson-hub/internal/migrations"
	"github.com/magabrotheeeer/lesson-hub/internal/models"
	"github.com/magabrotheeeer/lesson-hub/internal/storage/mongodb"
	"github.com/magabrotheeeer/lesson-hub/internal/storage/postgresql"
)

// Store общий набор операций, который реализуют оба драйвера хранилища.
type Store interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	InsertUserIfAbsent(ctx context.Context, user models.User) (string, error)
	SetUserTier(ctx context.Context, email string, tier models.Tier) (bool, error)

	FindPaymentByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	InsertPayment(ctx context.Context, payment models.Payment) (string, error)
	ListPayments(ctx context.Context, email string) ([]*models.Payment, error)

	CreateLesson(ctx context.Context, lesson models.Lesson) (string, error)
	GetLesson(ctx context.Context, id string) (*models.Lesson, error)
	UpdateLesson(ctx context.Context, lesson models.Lesson) error
	DeleteLesson(ctx context.Context, id string) (int64, error)
	IncrementLessonViews(ctx context.Context, id string) error
	ListLessons(ctx context.Context, filter models.LessonFilter) ([]*models.Lesson, error)

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

var (
	_ Store = (*postgresql.Storage)(nil)
	_ Store = (*mongodb.Storage)(nil)
)

// openStore подключает хранилище, выбранное в storage.driver.
// Для PostgreSQL перед стартом применяются миграции.
func openStore(ctx context.Context, cfg config.Storage, logger *slog.Logger) (Store, error) {
	const op = "app.lessonhub.openStore"

	switch cfg.Driver {
	case config.DriverMongo:
		st, err := mongodb.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		logger.Info("storage connected", slog.String("driver", cfg.Driver), slog.String("database", cfg.MongoDatabase))
		return st, nil
	case config.DriverPostgres:
		st, err := postgresql.New(ctx, cfg.ConnectionString)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		version, err := migrations.Run(st.DB, cfg.MigrationsPath)
		if err != nil {
			_ = st.Close(ctx)
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		logger.Info("storage connected", slog.String("driver", cfg.Driver), slog.Uint64("schema_version", uint64(version)))
		return st, nil
	default:
		return nil, fmt.Errorf("%s: unknown storage driver %q", op, cfg.Driver)
	}
}
