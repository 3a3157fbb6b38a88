package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/internlink/internship-service/internal/events"
	"github.com/internlink/internship-service/internal/repositories"
	"github.com/internlink/internship-service/internal/storage"
	"github.com/internlink/internship-service/internal/validator"
)

// ServiceManagerConfig carries everything the services need beyond their
// repository.
type ServiceManagerConfig struct {
	Repository repositories.Repository
	Publisher  events.Publisher
	Files      storage.FileStore
	Logger     *slog.Logger

	JWTSecret    string
	TokenTTL     time.Duration
	ScanInterval time.Duration
}

type serviceManager struct {
	repo      repositories.Repository
	publisher events.Publisher
	logger    *slog.Logger

	auth          AuthService
	users         UserService
	internships   InternshipService
	applications  ApplicationService
	tasks         TaskService
	feedback      FeedbackService
	notifications NotificationService
	scanner       *DeadlineScanner
}

func NewServiceManager(cfg ServiceManagerConfig) (ServiceManager, error) {
	if cfg.Repository == nil {
		return nil, fmt.Errorf("service manager requires a repository")
	}
	if cfg.Publisher == nil {
		return nil, fmt.Errorf("service manager requires an event publisher")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("service manager requires a signing secret")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	v := validator.New()
	tokens := NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	notifications := NewNotificationService(cfg.Repository, cfg.Publisher, cfg.Logger)

	m := &serviceManager{
		repo:          cfg.Repository,
		publisher:     cfg.Publisher,
		logger:        cfg.Logger,
		auth:          NewAuthService(cfg.Repository, tokens, cfg.Logger, v),
		users:         NewUserService(cfg.Repository, cfg.Files, cfg.Logger, v),
		internships:   NewInternshipService(cfg.Repository, cfg.Logger, v),
		applications:  NewApplicationService(cfg.Repository, notifications, cfg.Logger, v),
		tasks:         NewTaskService(cfg.Repository, notifications, cfg.Logger, v),
		feedback:      NewFeedbackService(cfg.Repository, cfg.Logger, v),
		notifications: notifications,
	}
	m.scanner = NewDeadlineScanner(cfg.Repository, notifications, cfg.Logger, cfg.ScanInterval)
	return m, nil
}

func (m *serviceManager) Auth() AuthService                  { return m.auth }
func (m *serviceManager) Users() UserService                 { return m.users }
func (m *serviceManager) Internships() InternshipService     { return m.internships }
func (m *serviceManager) Applications() ApplicationService   { return m.applications }
func (m *serviceManager) Tasks() TaskService                 { return m.tasks }
func (m *serviceManager) Feedback() FeedbackService          { return m.feedback }
func (m *serviceManager) Notifications() NotificationService { return m.notifications }
func (m *serviceManager) DeadlineScanner() *DeadlineScanner  { return m.scanner }

func (m *serviceManager) Initialize(ctx context.Context) error {
	if err := m.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository ping: %w", err)
	}
	m.logger.Info("services initialized")
	return nil
}

func (m *serviceManager) Shutdown(ctx context.Context) error {
	// The scanner's context is cancelled by the caller; wait for its loop
	// to drain before tearing down what it depends on.
	select {
	case <-m.scanner.Done():
	case <-ctx.Done():
		m.logger.Warn("shutdown deadline reached before scanner stopped")
	}

	if err := m.publisher.Close(); err != nil {
		m.logger.Error("event publisher close failed", "error", err)
	}
	if err := m.repo.Close(); err != nil {
		return fmt.Errorf("repository close: %w", err)
	}
	m.logger.Info("services shut down")
	return nil
}
