//go:build integration

package main_test

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Stashly-Luggage/service-storage/internal/application"
	orderDomain "github.com/Stashly-Luggage/service-storage/internal/domain/order"
	storeDomain "github.com/Stashly-Luggage/service-storage/internal/domain/store"
	storageEvents "github.com/Stashly-Luggage/service-storage/internal/events"
	"github.com/Stashly-Luggage/service-storage/internal/geo"
	"github.com/Stashly-Luggage/service-storage/internal/notification"
	"github.com/Stashly-Luggage/service-storage/internal/repository"
	"github.com/Stashly-Luggage/service-storage/pkg/database"
	"github.com/Stashly-Luggage/service-storage/pkg/kafka"
)

// storageStack holds wired-up storage service components.
type storageStack struct {
	Orders          *application.OrderService
	Stores          *repository.GormStoreRepository
	Consumer        *storageEvents.PaymentEventConsumer
	CleanupProducer func()
}

// setupPostgres starts a PostgreSQL testcontainer, applies the migrations
// and returns a connected GORM DB.
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()
	logger := zap.NewNop()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_storage",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	})

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := database.PostgresConfig{
		Host:     pgHost,
		Port:     pgPort.Port(),
		User:     "test",
		Password: "test",
		DBName:   "test_storage",
		SSLMode:  "disable",
	}

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = database.Connect(cfg, logger)
		return err == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, database.RunMigrations(cfg.DatabaseURL(), "migrations", logger))
	return db
}

// setupKafka starts a Kafka testcontainer with the service topics created.
func setupKafka(t *testing.T) []string {
	t.Helper()
	ctx := context.Background()

	// confluent-local supports KRaft natively.
	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")
	t.Cleanup(func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
	})

	brokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	createTopics(t, brokers, "order.events", "payment.events")
	return brokers
}

// setupStorageStack wires the order service over db. With no brokers the
// service runs without Kafka and no consumer is created.
func setupStorageStack(t *testing.T, db *gorm.DB, brokers []string) *storageStack {
	t.Helper()
	logger := zap.NewNop()

	storeRepo := repository.NewGormStoreRepository(db)
	orderRepo := repository.NewGormOrderRepository(db)
	pricing := application.NewPricingService(
		orderDomain.NewStandardPricingStrategy(orderDomain.DefaultRateCard()),
		geo.HaversineProvider{},
		storeRepo,
		3.5,
		logger,
	)
	notifier := notification.NewNotifier(notification.NewLogMailer(logger), "ops@example.com")

	stack := &storageStack{Stores: storeRepo, CleanupProducer: func() {}}
	var publisher kafka.Publisher
	if len(brokers) > 0 {
		producer := kafka.NewProducer(brokers, logger)
		publisher = producer
		stack.CleanupProducer = func() { _ = producer.Close() }
	}
	stack.Orders = application.NewOrderService(orderRepo, storeRepo, pricing, notifier, publisher, logger)

	if len(brokers) > 0 {
		groupID := fmt.Sprintf("test-storage-%s", uuid.New().String()[:8])
		stack.Consumer = storageEvents.NewPaymentEventConsumer(brokers, groupID, stack.Orders, logger)
	}
	return stack
}

// seedStore inserts an open store with the given capacity.
func seedStore(t *testing.T, stores *repository.GormStoreRepository, capacity int) *storeDomain.Store {
	t.Helper()
	st, err := storeDomain.NewStore(uuid.New(), storeDomain.Details{
		Name:     "Koramangala Lockers",
		Address:  "80 Feet Road",
		City:     "Bengaluru",
		IsOpen:   true,
		Location: &storeDomain.Location{Latitude: 12.9352, Longitude: 77.6245},
	}, capacity)
	require.NoError(t, err)
	require.NoError(t, stores.Save(context.Background(), st), "failed to seed store")
	return st
}

// storeCapacity reads the remaining capacity straight from the stores table.
func storeCapacity(t *testing.T, db *gorm.DB, storeID uuid.UUID) int {
	t.Helper()
	var model repository.StoreModel
	require.NoError(t, db.Where("id = ?", storeID).First(&model).Error)
	return model.Capacity
}

// publishTestEvent publishes a CloudEvent to Kafka.
func publishTestEvent(t *testing.T, brokers []string, topic, source, eventType, key string, data interface{}) {
	t.Helper()
	producer := kafka.NewProducer(brokers, zap.NewNop())
	defer func() { _ = producer.Close() }()

	ce, err := kafka.NewCloudEvent(source, eventType, data)
	require.NoError(t, err, "failed to create cloud event")

	err = producer.PublishEvent(context.Background(), topic, key, ce)
	require.NoError(t, err, "failed to publish event")
}

// waitForOrderStatus polls the orders table until the status matches.
func waitForOrderStatus(t *testing.T, db *gorm.DB, orderID uuid.UUID, expectedStatus string, timeout time.Duration) repository.OrderModel {
	t.Helper()
	var result repository.OrderModel
	require.Eventually(t, func() bool {
		var model repository.OrderModel
		if err := db.Where("id = ?", orderID).First(&model).Error; err != nil {
			return false
		}
		if model.Status == expectedStatus {
			result = model
			return true
		}
		return false
	}, timeout, 200*time.Millisecond, "order did not transition to %s", expectedStatus)
	return result
}

// consumeOneEvent reads from a Kafka topic until it finds an event of the expected type.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType string, timeout time.Duration) kafka.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		ce, err := kafka.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if ce.Type == expectedType {
			return ce
		}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
