package application

import (
	"context"

	"go.uber.org/zap"

	"github.com/Stashly-Luggage/service-storage/internal/notification"
	"github.com/Stashly-Luggage/service-storage/pkg/domain"
	"github.com/Stashly-Luggage/service-storage/pkg/metrics"
)

// EnquiryRequest is a contact form submission.
type EnquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Mobile  string `json:"mobile"`
	Message string `json:"message"`
}

// EnquiryNotifier delivers enquiries.
type EnquiryNotifier interface {
	SendEnquiry(ctx context.Context, e notification.Enquiry) error
}

// EnquiryService forwards contact form submissions to the operator.
type EnquiryService struct {
	notifier EnquiryNotifier
	logger   *zap.Logger
}

// NewEnquiryService creates a new EnquiryService.
func NewEnquiryService(notifier EnquiryNotifier, logger *zap.Logger) *EnquiryService {
	return &EnquiryService{notifier: notifier, logger: logger}
}

// SendEnquiry mails the operator and acknowledges the sender.
func (s *EnquiryService) SendEnquiry(ctx context.Context, req EnquiryRequest) error {
	if req.Name == "" || req.Email == "" || req.Mobile == "" || req.Message == "" {
		return domain.NewValidationError("All fields are required")
	}

	err := s.notifier.SendEnquiry(ctx, notification.Enquiry{
		Name:    req.Name,
		Email:   req.Email,
		Mobile:  req.Mobile,
		Message: req.Message,
	})
	if err != nil {
		metrics.NotificationFailuresTotal.WithLabelValues("enquiry").Inc()
		s.logger.Error("failed to send enquiry", zap.Error(err))
		return domain.NewInternalError("Error sending email.", err)
	}
	return nil
}
