package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "tracksaidas/internal/adapters/out/postgres"
	"tracksaidas/internal/adapters/out/postgres/billingrepo"
	"tracksaidas/internal/adapters/out/postgres/closurerepo"
	"tracksaidas/internal/adapters/out/postgres/deliveryrepo"
	"tracksaidas/internal/adapters/out/postgres/historyrepo"
	"tracksaidas/internal/adapters/out/postgres/sessionrepo"
	"tracksaidas/internal/core/domain/model/closure"
	"tracksaidas/internal/core/domain/model/delivery"
	"tracksaidas/internal/core/domain/model/history"
	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/core/domain/model/session"
	"tracksaidas/internal/core/ports"
	"tracksaidas/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides comprehensive integration testing
// for the GORM-based Unit of Work implementation with real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Connect to database
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Run migrations
	err = db.AutoMigrate(
		&deliveryrepo.DeliveryDTO{},
		&historyrepo.HistoryEntryDTO{},
		&sessionrepo.RouteSessionDTO{},
		&billingrepo.BillingItemDTO{},
		&closurerepo.ClosureDTO{},
		&closurerepo.ClosureLineItemDTO{},
	)
	suite.Require().NoError(err)

	// Create factory
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
// Truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE deliveries, history_entries, route_sessions, billing_items, closures, closure_line_items",
	).Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies factory creates unit of work instances
// with proper initialization and isolation between instances.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.DeliveryRepository(), "First instance should provide delivery repository")
	suite.NotNil(uow1.SessionRepository(), "First instance should provide session repository")
	suite.NotNil(uow2.HistoryRepository(), "Second instance should provide history repository")
	suite.NotNil(uow2.BillingRepository(), "Second instance should provide billing repository")
	suite.NotNil(uow2.ClosureRepository(), "Second instance should provide closure repository")
}

// TestUnitOfWork_TransactionLifecycle verifies proper transaction management
// including begin, commit, and rollback operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	// Multiple begin calls are safe
	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_TransactionErrors verifies error handling for invalid transaction operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_TransitionWithLedgerEntry verifies that a delivery and its
// ledger entry written in the same transaction persist together.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransitionWithLedgerEntry() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testDelivery := createTestDelivery("BR100000001")

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.DeliveryRepository().Add(ctx, testDelivery)
	suite.Require().NoError(err)

	entry := createdEntryFor(testDelivery)
	err = uow.HistoryRepository().Add(ctx, entry)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Verify both records persisted using a new unit of work
	newUow := suite.factory.Create()

	retrieved, err := newUow.DeliveryRepository().Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.Pending, retrieved.Status())

	entries, err := newUow.HistoryRepository().ListFor(ctx, testDelivery.ID())
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal(history.EventCreated, entries[0].Kind())
}

// TestUnitOfWork_TransactionRollback verifies rollback discards all changes
// made within the transaction across multiple repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testDelivery := createTestDelivery("BR100000002")

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.DeliveryRepository().Add(ctx, testDelivery)
	suite.Require().NoError(err)

	err = uow.HistoryRepository().Add(ctx, createdEntryFor(testDelivery))
	suite.Require().NoError(err)

	// Both records visible within the transaction
	_, err = uow.DeliveryRepository().Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	// Neither record survives the rollback
	newUow := suite.factory.Create()

	_, err = newUow.DeliveryRepository().Get(ctx, testDelivery.ID())
	suite.Require().Error(err, "Delivery should not exist after rollback")

	entries, err := newUow.HistoryRepository().ListFor(ctx, testDelivery.ID())
	suite.Require().NoError(err)
	suite.Empty(entries, "Ledger should not contain entries after rollback")
}

// TestUnitOfWork_DeliveredWithBillingItem verifies the delivered transition,
// its ledger entry and the billing item commit as one unit.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_DeliveredWithBillingItem() {
	ctx := context.Background()
	courierID := kernel.NewUUID()

	// Seed an assigned delivery outside the transaction under test
	testDelivery := createTestDelivery("BR100000003")
	_, err := testDelivery.Assign(courierID)
	suite.Require().NoError(err)

	seedUow := suite.factory.Create()
	err = seedUow.DeliveryRepository().Add(ctx, testDelivery)
	suite.Require().NoError(err)

	// Deliver and bill within one transaction
	uow := suite.factory.Create()
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	loaded, err := uow.DeliveryRepository().Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)

	deliveredAt := time.Now().UTC().Truncate(time.Second)
	err = loaded.MarkDelivered(deliveredAt)
	suite.Require().NoError(err)
	err = uow.DeliveryRepository().Update(ctx, loaded)
	suite.Require().NoError(err)

	item, err := closureTestItem(loaded, courierID)
	suite.Require().NoError(err)
	err = uow.BillingRepository().Add(ctx, item)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Verify both sides of the transaction
	newUow := suite.factory.Create()

	retrieved, err := newUow.DeliveryRepository().Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.Delivered, retrieved.Status())
	suite.Require().NotNil(retrieved.DeliveredAt())

	billed, err := newUow.BillingRepository().GetForDelivery(ctx, testDelivery.ID())
	suite.Require().NoError(err)
	suite.Equal(courierID, billed.Courier())
	suite.False(billed.IsCancelled())
}

// TestUnitOfWork_OptimisticConflict verifies that a stale update loses against
// a committed concurrent change and surfaces as a conflict.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_OptimisticConflict() {
	ctx := context.Background()

	testDelivery := createTestDelivery("BR100000004")
	seedUow := suite.factory.Create()
	err := seedUow.DeliveryRepository().Add(ctx, testDelivery)
	suite.Require().NoError(err)

	// Two actors load the same version
	uow1 := suite.factory.Create()
	loaded1, err := uow1.DeliveryRepository().Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)

	uow2 := suite.factory.Create()
	loaded2, err := uow2.DeliveryRepository().Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)

	// First actor wins
	_, err = loaded1.Assign(kernel.NewUUID())
	suite.Require().NoError(err)
	err = uow1.DeliveryRepository().Update(ctx, loaded1)
	suite.Require().NoError(err)

	// Second actor's update targets a version that no longer exists
	_, err = loaded2.Assign(kernel.NewUUID())
	suite.Require().NoError(err)
	err = uow2.DeliveryRepository().Update(ctx, loaded2)
	suite.Require().ErrorIs(err, errs.ErrConflict)
}

// TestUnitOfWork_DuplicateShipmentRef verifies that a second active delivery
// with the same shipment reference is rejected as a conflict.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_DuplicateShipmentRef() {
	ctx := context.Background()
	uow := suite.factory.Create()

	first := createTestDelivery("BR100000005")
	err := first.LinkShipment("SHP-900", "ORD-900")
	suite.Require().NoError(err)
	err = uow.DeliveryRepository().Add(ctx, first)
	suite.Require().NoError(err)

	second := createTestDelivery("BR100000006")
	err = second.LinkShipment("SHP-900", "ORD-901")
	suite.Require().NoError(err)
	err = uow.DeliveryRepository().Add(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrConflict)
}

// TestUnitOfWork_OneActiveSessionPerCourierDay verifies the route session
// uniqueness rule holds at the persistence boundary.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_OneActiveSessionPerCourierDay() {
	ctx := context.Background()
	uow := suite.factory.Create()

	courierID := kernel.NewUUID()
	day := testDay()

	first, err := session.NewRouteSession(
		kernel.NewUUID(), courierID, day,
		[]kernel.UUID{kernel.NewUUID()}, day.Add(8*time.Hour))
	suite.Require().NoError(err)
	err = uow.SessionRepository().Add(ctx, first)
	suite.Require().NoError(err)

	second, err := session.NewRouteSession(
		kernel.NewUUID(), courierID, day,
		[]kernel.UUID{kernel.NewUUID()}, day.Add(9*time.Hour))
	suite.Require().NoError(err)
	err = uow.SessionRepository().Add(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrConflict)

	// Finishing the first session frees the slot
	err = first.Finish(day.Add(10 * time.Hour))
	suite.Require().NoError(err)
	err = uow.SessionRepository().Update(ctx, first)
	suite.Require().NoError(err)

	err = uow.SessionRepository().Add(ctx, second)
	suite.Require().NoError(err)
}

// TestUnitOfWork_ShipmentRefIndexIsFinalArbiter verifies the partial unique
// index on shipment references holds even for writes that bypass the
// repository, and that cancelled rows fall outside its predicate.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ShipmentRefIndexIsFinalArbiter() {
	row := deliveryrepo.DeliveryDTO{
		ID:          uuid.New(),
		Date:        testDay(),
		Code:        "BR100000010",
		ServiceKind: int(delivery.ServiceShopee),
		Base:        "centro",
		Status:      int(delivery.Pending),
		ShipmentRef: "SHP-901",
		Version:     1,
	}
	err := suite.db.Create(&row).Error
	suite.Require().NoError(err)

	dup := row
	dup.ID = uuid.New()
	dup.Code = "BR100000011"
	err = suite.db.Create(&dup).Error
	suite.Require().Error(err, "Index should reject a second active row for the same shipment reference")

	dup.Status = int(delivery.Cancelled)
	err = suite.db.Create(&dup).Error
	suite.Require().NoError(err, "Cancelled rows should not occupy the shipment reference")
}

// TestUnitOfWork_ActiveSessionIndexIsFinalArbiter verifies the one active
// session per courier and day rule is enforced by the index itself.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ActiveSessionIndexIsFinalArbiter() {
	row := sessionrepo.RouteSessionDTO{
		ID:        uuid.New(),
		CourierID: uuid.New(),
		Date:      testDay(),
		StopOrder: pq.StringArray{kernel.NewUUID().String()},
		NextIndex: 0,
		Status:    int(session.Active),
		StartedAt: testDay().Add(8 * time.Hour),
		Version:   1,
	}
	err := suite.db.Create(&row).Error
	suite.Require().NoError(err)

	dup := row
	dup.ID = uuid.New()
	err = suite.db.Create(&dup).Error
	suite.Require().Error(err, "Index should reject a second active session for the courier and day")

	finishedAt := testDay().Add(10 * time.Hour)
	dup.Status = int(session.Finished)
	dup.FinishedAt = &finishedAt
	err = suite.db.Create(&dup).Error
	suite.Require().NoError(err, "Terminal sessions should fall outside the index")
}

// TestUnitOfWork_CancelledDeliveryFreesShipmentRef verifies that cancelling a
// delivery releases its shipment reference for re-ingestion.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CancelledDeliveryFreesShipmentRef() {
	ctx := context.Background()
	uow := suite.factory.Create()

	first := createTestDelivery("BR100000012")
	err := first.LinkShipment("SHP-902", "ORD-902")
	suite.Require().NoError(err)
	err = uow.DeliveryRepository().Add(ctx, first)
	suite.Require().NoError(err)

	err = first.Cancel()
	suite.Require().NoError(err)
	err = uow.DeliveryRepository().Update(ctx, first)
	suite.Require().NoError(err)

	second := createTestDelivery("BR100000013")
	err = second.LinkShipment("SHP-902", "ORD-903")
	suite.Require().NoError(err)
	err = uow.DeliveryRepository().Add(ctx, second)
	suite.Require().NoError(err)
}

// TestUnitOfWork_RepositoryIsolation verifies that repositories obtained
// from different unit of work instances operate independently.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	delivery1 := createTestDelivery("BR100000007")
	delivery2 := createTestDelivery("BR100000008")

	err := uow1.Begin(ctx)
	suite.Require().NoError(err)

	err = uow2.Begin(ctx)
	suite.Require().NoError(err)

	err = uow1.DeliveryRepository().Add(ctx, delivery1)
	suite.Require().NoError(err)

	err = uow2.DeliveryRepository().Add(ctx, delivery2)
	suite.Require().NoError(err)

	// Each transaction only sees its own changes
	_, err = uow1.DeliveryRepository().Get(ctx, delivery1.ID())
	suite.Require().NoError(err, "UOW1 should see delivery1")

	_, err = uow1.DeliveryRepository().Get(ctx, delivery2.ID())
	suite.Require().Error(err, "UOW1 should not see delivery2")

	_, err = uow2.DeliveryRepository().Get(ctx, delivery2.ID())
	suite.Require().NoError(err, "UOW2 should see delivery2")

	_, err = uow2.DeliveryRepository().Get(ctx, delivery1.ID())
	suite.Require().Error(err, "UOW2 should not see delivery1")

	err = uow1.Commit(ctx)
	suite.Require().NoError(err)

	err = uow2.Rollback(ctx)
	suite.Require().NoError(err)

	// Only delivery1 persisted
	newUow := suite.factory.Create()
	_, err = newUow.DeliveryRepository().Get(ctx, delivery1.ID())
	suite.Require().NoError(err, "Delivery1 should persist after commit")

	_, err = newUow.DeliveryRepository().Get(ctx, delivery2.ID())
	suite.Require().Error(err, "Delivery2 should not persist after rollback")
}

// TestUnitOfWork_WithoutTransaction verifies that repositories work correctly
// without explicit transaction boundaries for immediate operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testDelivery := createTestDelivery("BR100000009")

	err := uow.DeliveryRepository().Add(ctx, testDelivery)
	suite.Require().NoError(err)

	retrieved, err := uow.DeliveryRepository().Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)
	suite.Equal(testDelivery.ID(), retrieved.ID())

	newUow := suite.factory.Create()
	retrieved, err = newUow.DeliveryRepository().Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)
	suite.Equal(testDelivery.ID(), retrieved.ID())
}

func testDay() time.Time {
	return time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
}

// createTestDelivery creates a valid pending delivery for testing purposes.
func createTestDelivery(code string) *delivery.Delivery {
	d, _ := delivery.NewDelivery(
		kernel.NewUUID(), testDay(), code, delivery.ServiceShopee, "centro", "zona-sul")
	return d
}

// closureTestItem builds a billing item for a delivered parcel.
func closureTestItem(d *delivery.Delivery, courierID kernel.UUID) (*closure.BillingItem, error) {
	return closure.NewBillingItem(closure.BillingItemParams{
		ID:          kernel.NewUUID(),
		DeliveryID:  d.ID(),
		CourierID:   courierID,
		Date:        d.Date(),
		ServiceKind: d.ServiceKind(),
		Base:        d.Base(),
		SubBase:     d.SubBase(),
		UnitPrice:   kernel.NewMoneyFromCents(350),
	})
}

// createdEntryFor builds the Created ledger entry matching a fresh delivery.
func createdEntryFor(d *delivery.Delivery) *history.Entry {
	entry, _ := history.NewEntry(history.EntryParams{
		ID:         kernel.NewUUID(),
		DeliveryID: d.ID(),
		Kind:       history.EventCreated,
		OccurredAt: d.Date().Add(8 * time.Hour),
		FromStatus: delivery.Unknown,
		ToStatus:   d.Status(),
	})
	return entry
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
