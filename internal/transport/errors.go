package transport

import (
	"context"

	"sales-api/internal/domain"
	"sales-api/internal/logger"

	"go.uber.org/zap"
)

// resolverError carries the error kind to clients as extensions.code
type resolverError struct {
	message string
	kind    domain.Kind
	err     error
}

func (e *resolverError) Error() string { return e.message }

func (e *resolverError) Unwrap() error { return e.err }

func (e *resolverError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": string(e.kind)}
}

// fail classifies err for the client. Domain errors keep their message;
// unclassified ones are logged and replaced with a generic message.
func (r *Resolver) fail(ctx context.Context, err error) error {
	kind := domain.KindOf(err)
	log := logger.FromContext(ctx, r.logger)
	message := err.Error()

	switch kind {
	case domain.KindInternal:
		log.Error("Resolver failed", zap.Error(err))
		message = "internal server error"
	case domain.KindStoreUnavailable:
		log.Error("Store unavailable", zap.Error(err))
		message = domain.ErrStoreUnavailable.Error()
	default:
		log.Debug("Resolver rejected request", zap.Error(err), zap.String("kind", string(kind)))
	}

	return &resolverError{message: message, kind: kind, err: err}
}

// panicLogger routes resolver panics to zap
type panicLogger struct {
	logger *zap.Logger
}

func (l panicLogger) LogPanic(ctx context.Context, value interface{}) {
	logger.FromContext(ctx, l.logger).Error("Resolver panic", zap.Any("panic", value), zap.Stack("stack"))
}
