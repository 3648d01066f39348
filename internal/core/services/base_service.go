package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/pg_console/internal/apperrors"
	"github.com/SscSPs/pg_console/internal/core/domain"
	portssvc "github.com/SscSPs/pg_console/internal/core/ports/services"
	"github.com/SscSPs/pg_console/internal/metrics"
	"github.com/SscSPs/pg_console/internal/middleware"
	"github.com/SscSPs/pg_console/internal/utils"
	"github.com/go-playground/validator/v10"
)

// BaseService provides common functionality for all services
type BaseService struct {
	validate *validator.Validate
	metrics  *metrics.Metrics
	events   utils.EventSink
	now      func() time.Time
}

// ServiceOption is a functional option shared by every service constructor
type ServiceOption func(*BaseService)

// WithMetrics counts mutations by operation and result.
func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *BaseService) { s.metrics = m }
}

// WithEventSink sends workflow events to analytics.
func WithEventSink(sink utils.EventSink) ServiceOption {
	return func(s *BaseService) { s.events = sink }
}

// WithClock replaces time.Now for audit stamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *BaseService) { s.now = now }
}

func newBaseService(options ...ServiceOption) BaseService {
	v := validator.New(validator.WithRequiredStructEnabled())
	// same tags gin checks at the HTTP boundary
	v.SetTagName("binding")
	base := BaseService{validate: v, now: time.Now}
	for _, option := range options {
		option(&base)
	}
	return base
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// RequireCapability returns the scope's actor if its role grants c.
func (s *BaseService) RequireCapability(ctx context.Context, scope portssvc.Scope, c domain.Capability) (*domain.Actor, error) {
	actor := scope.Actor()
	if actor == nil {
		return nil, apperrors.NewUnauthorizedError("authentication required")
	}
	if !actor.Can(c) {
		s.LogDebug(ctx, "Capability denied",
			slog.String("user_id", actor.ID),
			slog.String("role", string(actor.Role)),
			slog.String("capability", string(c)))
		return nil, apperrors.NewForbiddenError(fmt.Sprintf("role %q is not allowed to %s", actor.Role, strings.ReplaceAll(string(c), "_", " ")))
	}
	return actor, nil
}

// RequireProperty returns the visible property with propertyID. Managers and
// viewers must also be assigned to it by name.
func (s *BaseService) RequireProperty(ctx context.Context, scope portssvc.Scope, actor *domain.Actor, propertyID string) (domain.Property, error) {
	prop, ok := scope.Current().Property(propertyID)
	if !ok {
		if actor.HasFullVisibility() {
			return domain.Property{}, apperrors.NewNotFoundError(fmt.Sprintf("property %s not found", propertyID))
		}
		return domain.Property{}, apperrors.NewForbiddenError("property is not assigned to you")
	}
	if !actor.HasFullVisibility() && !actor.IsAssignedTo(prop.Name) {
		s.LogDebug(ctx, "Property scope denied",
			slog.String("user_id", actor.ID),
			slog.String("property_id", propertyID))
		return domain.Property{}, apperrors.NewForbiddenError("property is not assigned to you")
	}
	return prop, nil
}

// Validate checks struct tags and converts failures into a validation error.
func (s *BaseService) Validate(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewValidationFailedError(err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return apperrors.NewValidationFailedError(strings.Join(msgs, "; "))
}

// WrapWriteError keeps typed store errors and wraps everything else as a 500.
func (s *BaseService) WrapWriteError(ctx context.Context, err error, msg string) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrDuplicate) {
		return err
	}
	s.LogError(ctx, err, msg)
	return apperrors.NewAppError(http.StatusInternalServerError, msg, err)
}

// RefreshAfterWrite forces the scope's dataset to reflect a completed write.
// A failure is logged and recorded on the snapshot; the write still stands.
func (s *BaseService) RefreshAfterWrite(ctx context.Context, scope portssvc.Scope, operation string) {
	if err := scope.Refresh(ctx); err != nil {
		s.LogError(ctx, err, "Refresh after write failed", slog.String("operation", operation))
	}
}

// Observe counts a finished mutation.
func (s *BaseService) Observe(operation string, err error) {
	s.metrics.ObserveMutation(operation, err)
}

// Emit sends an analytics event when a sink is configured.
func (s *BaseService) Emit(actorID, event string, props map[string]any) {
	if s.events == nil {
		return
	}
	s.events.Enqueue(actorID, event, props)
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
