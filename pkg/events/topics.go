package events

// Topics.
const (
	TopicOrderEvents   = "order.events"
	TopicPaymentEvents = "payment.events"
)

// Order event types, produced by this service.
const (
	OrderCreated         = "order.created"
	OrderUpdated         = "order.updated"
	OrderCancelled       = "order.cancelled"
	OrderPaymentRecorded = "order.payment_recorded"
)

// Payment event types, produced by the payment service.
const (
	PaymentCaptured = "payment.captured"
	PaymentFailed   = "payment.failed"
)
