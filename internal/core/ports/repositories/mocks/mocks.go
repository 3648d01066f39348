// Package mocks provides testify mocks of the repository ports.
package mocks

import (
	"context"
	"time"

	portsrepo "github.com/SscSPs/pg_console/internal/core/ports/repositories"
	"github.com/SscSPs/pg_console/internal/models"
	"github.com/stretchr/testify/mock"
)

// --- Mock PropertyRepository ---
type PropertyRepository struct {
	mock.Mock
}

var _ portsrepo.PropertyRepositoryFacade = (*PropertyRepository)(nil)

func (m *PropertyRepository) ListProperties(ctx context.Context) ([]models.PropertyRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PropertyRecord), args.Error(1)
}

func (m *PropertyRepository) InsertProperty(ctx context.Context, rec models.PropertyRecord) (*models.PropertyRecord, error) {
	args := m.Called(ctx, rec)
	return written(args, rec)
}

func (m *PropertyRepository) UpdateProperty(ctx context.Context, rec models.PropertyRecord) (*models.PropertyRecord, error) {
	args := m.Called(ctx, rec)
	return written(args, rec)
}

func (m *PropertyRepository) UpdatePropertyWithRoomCapacities(ctx context.Context, rec models.PropertyRecord, capacityByRoomType map[string]int) (*models.PropertyRecord, error) {
	args := m.Called(ctx, rec, capacityByRoomType)
	return written(args, rec)
}

func (m *PropertyRepository) DeleteProperty(ctx context.Context, propertyID string) error {
	return m.Called(ctx, propertyID).Error(0)
}

// --- Mock RoomRepository ---
type RoomRepository struct {
	mock.Mock
}

var _ portsrepo.RoomRepositoryFacade = (*RoomRepository)(nil)

func (m *RoomRepository) ListRooms(ctx context.Context) ([]models.RoomRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RoomRecord), args.Error(1)
}

func (m *RoomRepository) InsertRoom(ctx context.Context, rec models.RoomRecord) (*models.RoomRecord, error) {
	args := m.Called(ctx, rec)
	return written(args, rec)
}

func (m *RoomRepository) UpdateRoom(ctx context.Context, rec models.RoomRecord) (*models.RoomRecord, error) {
	args := m.Called(ctx, rec)
	return written(args, rec)
}

func (m *RoomRepository) DeleteRoom(ctx context.Context, roomID string) error {
	return m.Called(ctx, roomID).Error(0)
}

// --- Mock TenantRepository ---
type TenantRepository struct {
	mock.Mock
}

var _ portsrepo.TenantRepositoryFacade = (*TenantRepository)(nil)

func (m *TenantRepository) ListTenants(ctx context.Context) ([]models.TenantRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TenantRecord), args.Error(1)
}

func (m *TenantRepository) InsertTenant(ctx context.Context, rec models.TenantRecord) (*models.TenantRecord, error) {
	args := m.Called(ctx, rec)
	return written(args, rec)
}

func (m *TenantRepository) UpdateTenant(ctx context.Context, rec models.TenantRecord) (*models.TenantRecord, error) {
	args := m.Called(ctx, rec)
	return written(args, rec)
}

func (m *TenantRepository) DeleteTenant(ctx context.Context, tenantID string) error {
	return m.Called(ctx, tenantID).Error(0)
}

// --- Mock PaymentRepository ---
type PaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepositoryFacade = (*PaymentRepository)(nil)

func (m *PaymentRepository) InsertPayment(ctx context.Context, rec models.PaymentRecord) (*models.PaymentRecord, error) {
	args := m.Called(ctx, rec)
	return written(args, rec)
}

func (m *PaymentRepository) DecidePayment(ctx context.Context, paymentID string, status string, decidedBy string, decidedAt time.Time) (*models.PaymentRecord, error) {
	args := m.Called(ctx, paymentID, status, decidedBy, decidedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentRecord), args.Error(1)
}

func (m *PaymentRepository) DeletePayment(ctx context.Context, paymentID string) error {
	return m.Called(ctx, paymentID).Error(0)
}

// --- Mock UserRepository ---
type UserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

func (m *UserRepository) ListUsers(ctx context.Context) ([]models.UserRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserRecord), args.Error(1)
}

func (m *UserRepository) FindUserByID(ctx context.Context, userID string) (*models.UserRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserRecord), args.Error(1)
}

// written returns the configured row. A func(T) *T return value is called with
// the row the service passed in.
func written[T any](args mock.Arguments, rec T) (*T, error) {
	switch v := args.Get(0).(type) {
	case nil:
		return nil, args.Error(1)
	case func(T) *T:
		return v(rec), args.Error(1)
	default:
		return v.(*T), args.Error(1)
	}
}

// Echo is a Return value that hands back the row as written.
func Echo[T any]() func(T) *T {
	return func(rec T) *T { return &rec }
}

// Repos bundles one mock per port.
type Repos struct {
	Properties *PropertyRepository
	Rooms      *RoomRepository
	Tenants    *TenantRepository
	Payments   *PaymentRepository
	Users      *UserRepository
}

// NewRepos creates a fresh set of mocks.
func NewRepos() *Repos {
	return &Repos{
		Properties: &PropertyRepository{},
		Rooms:      &RoomRepository{},
		Tenants:    &TenantRepository{},
		Payments:   &PaymentRepository{},
		Users:      &UserRepository{},
	}
}

// Provider wires the mocks into a RepositoryProvider.
func (r *Repos) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		PropertyRepo: r.Properties,
		RoomRepo:     r.Rooms,
		TenantRepo:   r.Tenants,
		PaymentRepo:  r.Payments,
		UserRepo:     r.Users,
	}
}

// ExpectLists makes every List call return the given rows.
func (r *Repos) ExpectLists(props []models.PropertyRecord, rooms []models.RoomRecord, tenants []models.TenantRecord, users []models.UserRecord) {
	r.Properties.On("ListProperties", mock.Anything).Return(props, nil)
	r.Rooms.On("ListRooms", mock.Anything).Return(rooms, nil)
	r.Tenants.On("ListTenants", mock.Anything).Return(tenants, nil)
	r.Users.On("ListUsers", mock.Anything).Return(users, nil)
}

// AssertExpectations checks every mock.
func (r *Repos) AssertExpectations(t mock.TestingT) {
	r.Properties.AssertExpectations(t)
	r.Rooms.AssertExpectations(t)
	r.Tenants.AssertExpectations(t)
	r.Payments.AssertExpectations(t)
	r.Users.AssertExpectations(t)
}
