package orderrepo_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"rental/internal/adapters/out/postgres/orderrepo"
	"rental/internal/core/domain/model/kernel"
	"rental/internal/core/domain/model/order"
	"rental/internal/pkg/errs"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.assertItemCount(2)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_ReturnsOrder() {
	ctx := context.Background()

	originalOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", originalOrder.ID(), originalOrder).Once()

	err := suite.repository.Add(ctx, originalOrder)
	suite.Require().NoError(err)

	retrievedOrder, err := suite.repository.Get(ctx, originalOrder.ID())
	suite.Require().NoError(err)

	// The full pricing snapshot and lines survive the round trip
	suite.Equal(originalOrder.ID(), retrievedOrder.ID())
	suite.Equal(originalOrder.OrderNumber(), retrievedOrder.OrderNumber())
	suite.Equal(originalOrder.CustomerEmail(), retrievedOrder.CustomerEmail())
	suite.Equal(originalOrder.Subtotal(), retrievedOrder.Subtotal())
	suite.Equal(originalOrder.DeliveryCharge(), retrievedOrder.DeliveryCharge())
	suite.Equal(originalOrder.TotalAmount(), retrievedOrder.TotalAmount())
	suite.Equal(order.OrderPending, retrievedOrder.OrderStatus())
	suite.Equal(order.PaymentPending, retrievedOrder.PaymentStatus())
	suite.Equal(order.DeliveryNotSet, retrievedOrder.DeliveryStatus())
	suite.Nil(retrievedOrder.DeliveryPartner())

	suite.Require().Len(retrievedOrder.Items(), 2)
	names := []string{retrievedOrder.Items()[0].ProductName(), retrievedOrder.Items()[1].ProductName()}
	suite.ElementsMatch([]string{"Tundra Tent", "Camp Stove"}, names)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	nonExistentID := kernel.NewUUID()
	retrievedOrder, err := suite.repository.Get(ctx, nonExistentID)

	suite.Nil(retrievedOrder)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StatusFieldsPersisted() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	at := time.Now().UTC()
	suite.Require().NoError(testOrder.ApplyOrderStatus(order.OrderConfirmed, at))
	suite.Require().NoError(testOrder.ApplyPaymentStatus(order.PaymentPaid, at))
	workerID := kernel.NewUUID()
	suite.Require().NoError(testOrder.AssignDeliveryPartner(workerID, at))

	err = suite.repository.Update(ctx, testOrder)
	suite.Require().NoError(err)

	retrievedOrder, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.OrderConfirmed, retrievedOrder.OrderStatus())
	suite.Equal(order.PaymentPaid, retrievedOrder.PaymentStatus())
	suite.Require().NotNil(retrievedOrder.DeliveryPartner())
	suite.True(retrievedOrder.DeliveryPartner().IsEqual(workerID))
	suite.Equal(testOrder.Version()+1, retrievedOrder.Version())

	// Lines are untouched by updates
	suite.assertItemCount(2)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsVersionError() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(2)

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	// First writer wins
	freshCopy, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	at := time.Now().UTC()
	suite.Require().NoError(freshCopy.ApplyOrderStatus(order.OrderConfirmed, at))
	suite.Require().NoError(suite.repository.Update(ctx, freshCopy))

	// Second writer holds the stale version
	suite.Require().NoError(testOrder.ApplyOrderStatus(order.OrderRejected, at))
	err = suite.repository.Update(ctx, testOrder)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)

	retrievedOrder, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.OrderConfirmed, retrievedOrder.OrderStatus())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	ctx := context.Background()

	nonExistentOrder := suite.createTestOrder()

	// No expectations on tracker since operation should fail
	err := suite.repository.Update(ctx, nonExistentOrder)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllByDeliveryPartner_FiltersByWorker() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)

	workerID := kernel.NewUUID()
	otherWorkerID := kernel.NewUUID()
	at := time.Now().UTC()

	mine1 := suite.createTestOrder()
	suite.Require().NoError(mine1.AssignDeliveryPartner(workerID, at))
	suite.Require().NoError(suite.repository.Add(ctx, mine1))

	mine2 := suite.createTestOrder()
	suite.Require().NoError(mine2.AssignDeliveryPartner(workerID, at))
	suite.Require().NoError(suite.repository.Add(ctx, mine2))

	theirs := suite.createTestOrder()
	suite.Require().NoError(theirs.AssignDeliveryPartner(otherWorkerID, at))
	suite.Require().NoError(suite.repository.Add(ctx, theirs))

	assigned, err := suite.repository.GetAllByDeliveryPartner(ctx, workerID)
	suite.Require().NoError(err)
	suite.Require().Len(assigned, 2)
	for _, assignedOrder := range assigned {
		suite.True(assignedOrder.IsAssignedTo(workerID))
		suite.Len(assignedOrder.Items(), 2)
	}

	unassigned, err := suite.repository.GetAllByDeliveryPartner(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Empty(unassigned)

	suite.tracker.AssertExpectations(suite.T())
}

// TestOrderRepository_ErrorScenarios verifies error handling for various failure cases.
func (suite *OrderRepositoryIntegrationTestSuite) TestOrderRepository_ErrorScenarios() {
	testCases := []struct {
		name      string
		operation func() error
		expected  string
	}{
		{
			name: "get with invalid UUID",
			operation: func() error {
				invalidID := kernel.UUID{}
				_, err := suite.repository.Get(context.Background(), invalidID)
				return err
			},
			expected: "not found",
		},
		{
			name: "get non-existent order",
			operation: func() error {
				nonExistentID := kernel.NewUUID()
				_, err := suite.repository.Get(context.Background(), nonExistentID)
				return err
			},
			expected: "not found",
		},
		{
			name: "update non-existent order",
			operation: func() error {
				nonExistentOrder := suite.createTestOrder()
				return suite.repository.Update(context.Background(), nonExistentOrder)
			},
			expected: "version is invalid",
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			err := tc.operation()
			suite.Require().Error(err)
			suite.Contains(strings.ToLower(err.Error()), strings.ToLower(tc.expected))
			suite.tracker.AssertExpectations(suite.T())
		})
	}
}

// TestOrderRepository_Concurrency verifies repository behavior under concurrent access.
func (suite *OrderRepositoryIntegrationTestSuite) TestOrderRepository_Concurrency() {
	ctx := context.Background()

	initialOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", initialOrder.ID(), initialOrder).Once()
	err := suite.repository.Add(ctx, initialOrder)
	suite.Require().NoError(err)

	// Simulate concurrent reads
	results := make(chan *order.Order, 3)
	errors := make(chan error, 3)

	for range 3 {
		go func() {
			retrievedOrder, readErr := suite.repository.Get(ctx, initialOrder.ID())
			if readErr != nil {
				errors <- readErr
			} else {
				results <- retrievedOrder
			}
		}()
	}

	// Collect results
	for range 3 {
		select {
		case result := <-results:
			suite.Equal(initialOrder.ID(), result.ID())
		case readErr := <-errors:
			suite.Failf("Unexpected error in concurrent read", "%v", readErr)
		}
	}

	suite.tracker.AssertExpectations(suite.T())
}

// createTestOrder creates a freshly placed order with two lines.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	window, err := order.NewRentalWindow(
		time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.July, 4, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)

	tent, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"Tundra Tent", "4-person", 2, kernel.Money(500))
	suite.Require().NoError(err)
	stove, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"Camp Stove", "", 1, kernel.Money(250))
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), "RNT-"+kernel.NewUUID().String()[:8], "renter@example.com",
		[]order.Item{tent, stove}, window,
		kernel.Money(1250), kernel.Money(100), kernel.Money(0), kernel.Money(1350),
		nil, time.Now().UTC())
	suite.Require().NoError(err)
	return testOrder
}

// assertOrderCount verifies the number of orders in the database.
func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

// assertItemCount verifies the number of order lines in the database.
func (suite *OrderRepositoryIntegrationTestSuite) assertItemCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderItemDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
