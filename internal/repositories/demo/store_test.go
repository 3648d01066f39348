package demo_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/SscSPs/pg_console/internal/apperrors"
	"github.com/SscSPs/pg_console/internal/core/fetch"
	"github.com/SscSPs/pg_console/internal/core/snapshot"
	"github.com/SscSPs/pg_console/internal/models"
	"github.com/SscSPs/pg_console/internal/repositories/demo"
	"github.com/SscSPs/pg_console/internal/utils/mapping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

type DemoStoreTestSuite struct {
	suite.Suite
	kv    *demo.MemoryKV
	store *demo.Store
	ctx   context.Context
	now   time.Time
}

func TestDemoStoreTestSuite(t *testing.T) {
	suite.Run(t, new(DemoStoreTestSuite))
}

func (s *DemoStoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	s.kv = demo.NewMemoryKV()
	s.store = demo.NewStore(s.kv)

	seeded, err := s.store.Seed(s.ctx, s.now)
	s.Require().NoError(err)
	s.Require().True(seeded)
}

func (s *DemoStoreTestSuite) TestSeedIsWrittenOnce() {
	seeded, err := s.store.Seed(s.ctx, s.now)
	s.NoError(err)
	s.False(seeded)

	raw, ok, err := s.kv.Get(s.ctx, demo.KeyUsers)
	s.Require().NoError(err)
	s.True(ok)
	s.Contains(string(raw), `"demo-manager"`)
}

func (s *DemoStoreTestSuite) TestSeededDatasetJoinsLikeTheDatabase() {
	raw, err := fetch.NewFetcher(s.store.Provider(), fetch.Options{}, nil).FetchAll(s.ctx, true)
	s.Require().NoError(err)

	user, err := s.store.FindUserByID(s.ctx, "demo-manager")
	s.Require().NoError(err)
	actor := mapping.ToDomainActor(*user)
	s.True(actor.IsDemo)

	ds := snapshot.Build(raw, &actor)
	s.Require().Len(ds.Properties, 1)
	s.Equal("Sunrise", ds.Properties[0].Name)

	asha, ok := ds.Tenant("demo-tenant-asha")
	s.Require().True(ok)
	s.Equal("6500", asha.Balance.Paid.String())
	s.Equal("6500", asha.Balance.Pending.String())

	room, ok := ds.Room("demo-room-101")
	s.Require().True(ok)
	s.Len(room.Occupants, 2)
}

func (s *DemoStoreTestSuite) TestPaymentDecisionIsFinal() {
	out, err := s.store.DecidePayment(s.ctx, "demo-pay-2", "approved", "demo-accountant", s.now)
	s.Require().NoError(err)
	s.Equal("approved", *out.ApprovalStatus)
	s.Equal("demo-accountant", *out.ApprovedBy)

	_, err = s.store.DecidePayment(s.ctx, "demo-pay-2", "rejected", "demo-accountant", s.now)
	s.ErrorIs(err, apperrors.ErrConflict)

	_, err = s.store.DecidePayment(s.ctx, "missing", "approved", "demo-accountant", s.now)
	s.ErrorIs(err, apperrors.ErrNotFound)

	s.ErrorIs(s.store.DeletePayment(s.ctx, "demo-pay-2"), apperrors.ErrConflict)
}

func (s *DemoStoreTestSuite) TestInsertAndDeletePayment() {
	status := "pending"
	rec, err := s.store.InsertPayment(s.ctx, models.PaymentRecord{
		ID: "p-new", TenantID: strPtr("demo-tenant-chen"), ApprovalStatus: &status,
	})
	s.Require().NoError(err)
	s.Equal("p-new", rec.ID)

	s.NoError(s.store.DeletePayment(s.ctx, "p-new"))
	s.ErrorIs(s.store.DeletePayment(s.ctx, "p-new"), apperrors.ErrNotFound)

	_, err = s.store.InsertPayment(s.ctx, models.PaymentRecord{ID: "p-x", TenantID: strPtr("nobody")})
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *DemoStoreTestSuite) TestReferencesAreChecked() {
	_, err := s.store.InsertRoom(s.ctx, models.RoomRecord{ID: "r-x", PropertyID: strPtr("nowhere"), Number: strPtr("1")})
	s.ErrorIs(err, apperrors.ErrConflict)

	_, err = s.store.InsertTenant(s.ctx, models.TenantRecord{ID: "t-x", Name: strPtr("X"), RoomID: strPtr("nowhere")})
	s.ErrorIs(err, apperrors.ErrConflict)

	s.ErrorIs(s.store.DeleteRoom(s.ctx, "demo-room-101"), apperrors.ErrConflict)
	s.ErrorIs(s.store.DeleteProperty(s.ctx, "demo-prop-sunrise"), apperrors.ErrConflict)
	s.NoError(s.store.DeleteRoom(s.ctx, "demo-room-201"))
}

func (s *DemoStoreTestSuite) TestTenantWritesNeedAFreeBed() {
	_, err := s.store.InsertTenant(s.ctx, models.TenantRecord{ID: "t-1", Name: strPtr("One"), RoomID: strPtr("demo-room-102")})
	s.Require().NoError(err)

	_, err = s.store.InsertTenant(s.ctx, models.TenantRecord{ID: "t-2", Name: strPtr("Two"), RoomID: strPtr("demo-room-102")})
	s.ErrorIs(err, apperrors.ErrConflict)
	s.Contains(err.Error(), "full (1/1)")

	_, err = s.store.InsertTenant(s.ctx, models.TenantRecord{ID: "t-3", Name: strPtr("Three"), RoomID: strPtr("demo-room-201")})
	s.ErrorIs(err, apperrors.ErrConflict)
	s.Contains(err.Error(), "maintenance")

	tenants, err := s.store.ListTenants(s.ctx)
	s.Require().NoError(err)
	var chen models.TenantRecord
	for _, t := range tenants {
		if t.ID == "demo-tenant-chen" {
			chen = t
		}
	}
	chen.RoomID = strPtr("demo-room-101")
	_, err = s.store.UpdateTenant(s.ctx, chen)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *DemoStoreTestSuite) TestUpdateTenantKeepsPayments() {
	tenants, err := s.store.ListTenants(s.ctx)
	s.Require().NoError(err)
	var asha models.TenantRecord
	for _, t := range tenants {
		if t.ID == "demo-tenant-asha" {
			asha = t
		}
	}
	asha.Name = strPtr("Asha R.")
	asha.Payments = nil

	out, err := s.store.UpdateTenant(s.ctx, asha)
	s.Require().NoError(err)
	s.Equal("Asha R.", *out.Name)
	s.Len(out.Payments, 2)
}

func (s *DemoStoreTestSuite) TestUpdatePropertyWithRoomCapacities() {
	props, err := s.store.ListProperties(s.ctx)
	s.Require().NoError(err)
	sunrise := props[0]
	sunrise.RoomTypes[1].Capacity = intPtr(3)
	sunrise.LastUpdatedBy = "demo-admin"

	_, err = s.store.UpdatePropertyWithRoomCapacities(s.ctx, sunrise, map[string]int{"double": 3})
	s.Require().NoError(err)

	rooms, err := s.store.ListRooms(s.ctx)
	s.Require().NoError(err)
	for _, r := range rooms {
		if *r.PropertyID == "demo-prop-sunrise" && *r.RoomType == "double" {
			s.Equal(3, *r.Capacity, r.ID)
			s.Equal("demo-admin", r.LastUpdatedBy)
		}
	}
}

func TestRedisKV(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	client, err := demo.NewRedisClient(ctx, addr, 0)
	require.NoError(t, err)
	defer client.Close()

	kv := demo.NewRedisKV(client)
	key := "pg_demo_test_" + time.Now().Format("150405.000000")
	defer kv.Delete(ctx, key)

	_, ok, err := kv.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, key, []byte(`[]`)))
	v, ok, err := kv.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", string(v))
}
