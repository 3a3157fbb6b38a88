package postgres

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/internlink/internship-service/internal/cache"
	"github.com/internlink/internship-service/internal/repositories"
)

// PostgreSQLRepository implements the aggregate Repository interface.
type PostgreSQLRepository struct {
	db           *gorm.DB
	redisClient  *redis.Client
	cacheManager *cache.CacheManager

	users         repositories.UserRepository
	internships   repositories.InternshipRepository
	applications  repositories.ApplicationRepository
	tasks         repositories.TaskRepository
	feedback      repositories.FeedbackRepository
	notifications repositories.NotificationRepository
}

// RepositoryConfig holds what the repository layer needs at construction.
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
}

// NewPostgreSQLRepository creates the repository manager with all
// sub-repositories bound to the shared connection pool.
func NewPostgreSQLRepository(config RepositoryConfig) repositories.Repository {
	repo := &PostgreSQLRepository{
		db:           config.DB,
		redisClient:  config.RedisClient,
		cacheManager: cache.NewCacheManager(config.RedisClient),
	}
	repo.bind(config.DB)
	return repo
}

func (r *PostgreSQLRepository) bind(db *gorm.DB) {
	r.users = NewUserPostgreSQL(db, r.cacheManager)
	r.internships = NewInternshipPostgreSQL(db, r.cacheManager)
	r.applications = NewApplicationPostgreSQL(db)
	r.tasks = NewTaskPostgreSQL(db)
	r.feedback = NewFeedbackPostgreSQL(db)
	r.notifications = NewNotificationPostgreSQL(db)
}

func (r *PostgreSQLRepository) Users() repositories.UserRepository { return r.users }

func (r *PostgreSQLRepository) Internships() repositories.InternshipRepository {
	return r.internships
}

func (r *PostgreSQLRepository) Applications() repositories.ApplicationRepository {
	return r.applications
}

func (r *PostgreSQLRepository) Tasks() repositories.TaskRepository { return r.tasks }

func (r *PostgreSQLRepository) Feedback() repositories.FeedbackRepository { return r.feedback }

func (r *PostgreSQLRepository) Notifications() repositories.NotificationRepository {
	return r.notifications
}

// WithTransaction executes fn with every sub-repository rebound to a single
// database transaction. gorm rolls the transaction back when fn errors.
func (r *PostgreSQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &PostgreSQLRepository{
			db:           tx,
			redisClient:  r.redisClient,
			cacheManager: r.cacheManager,
		}
		txRepo.bind(tx)
		return fn(txRepo)
	})
}

func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
