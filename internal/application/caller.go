package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Stashly-Luggage/service-storage/pkg/auth"
	"github.com/Stashly-Luggage/service-storage/pkg/kafka"
	"github.com/Stashly-Luggage/service-storage/pkg/metrics"
)

const eventSource = "service-storage"

// Caller is the authenticated principal of a request.
type Caller struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

// IsAdmin reports whether the caller has the admin role.
func (c Caller) IsAdmin() bool { return c.Role == auth.RoleAdmin }

// eventPublisher wraps a kafka.Publisher with best-effort semantics: a
// failed publish is logged and never fails the use case.
type eventPublisher struct {
	producer kafka.Publisher
	logger   *zap.Logger
}

func (p eventPublisher) publish(ctx context.Context, topic, eventType, key string, data interface{}) {
	if p.producer == nil {
		return
	}
	cloudEvent, err := kafka.NewCloudEvent(eventSource, eventType, data)
	if err != nil {
		p.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := p.producer.PublishEvent(ctx, topic, key, cloudEvent); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("publish_event").Inc()
		p.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
