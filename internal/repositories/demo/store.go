package demo

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/pg_console/internal/apperrors"
	"github.com/SscSPs/pg_console/internal/core/domain"
	portsrepo "github.com/SscSPs/pg_console/internal/core/ports/repositories"
	"github.com/SscSPs/pg_console/internal/models"
	"github.com/SscSPs/pg_console/internal/utils/mapping"
)

// Store implements every repository port over a KV backend. Writes are
// read-modify-write of a whole collection and are serialized per process.
type Store struct {
	kv KV
	mu sync.Mutex
}

// NewStore creates a demo store over kv.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

var (
	_ portsrepo.PropertyRepositoryFacade = (*Store)(nil)
	_ portsrepo.RoomRepositoryFacade     = (*Store)(nil)
	_ portsrepo.TenantRepositoryFacade   = (*Store)(nil)
	_ portsrepo.PaymentRepositoryFacade  = (*Store)(nil)
	_ portsrepo.UserRepositoryFacade     = (*Store)(nil)
)

// Provider exposes the store as a RepositoryProvider.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		PropertyRepo: s,
		RoomRepo:     s,
		TenantRepo:   s,
		PaymentRepo:  s,
		UserRepo:     s,
	}
}

func load[T any](ctx context.Context, kv KV, key string) ([]T, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	items := []T{}
	if !ok || len(raw) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return items, nil
}

func save[T any](ctx context.Context, kv KV, key string, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func indexOf[T any](items []T, id func(T) string, want string) int {
	for i, it := range items {
		if id(it) == want {
			return i
		}
	}
	return -1
}

func propertyID(p domain.Property) string { return p.ID }
func roomID(r domain.Room) string         { return r.ID }
func tenantID(t domain.Tenant) string     { return t.ID }
func userID(a domain.Actor) string        { return a.ID }

// --- properties ---

func (s *Store) ListProperties(ctx context.Context) ([]models.PropertyRecord, error) {
	props, err := load[domain.Property](ctx, s.kv, KeyProperties)
	if err != nil {
		return nil, err
	}
	out := make([]models.PropertyRecord, len(props))
	for i, p := range props {
		out[i] = mapping.ToPropertyRecord(p)
	}
	return out, nil
}

func (s *Store) InsertProperty(ctx context.Context, rec models.PropertyRecord) (*models.PropertyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	props, err := load[domain.Property](ctx, s.kv, KeyProperties)
	if err != nil {
		return nil, err
	}
	if indexOf(props, propertyID, rec.ID) >= 0 {
		return nil, apperrors.NewDuplicateError(fmt.Sprintf("property %s already exists", rec.ID))
	}
	p := mapping.ToDomainProperty(rec)
	if err := save(ctx, s.kv, KeyProperties, append(props, p)); err != nil {
		return nil, err
	}
	out := mapping.ToPropertyRecord(p)
	return &out, nil
}

func (s *Store) UpdateProperty(ctx context.Context, rec models.PropertyRecord) (*models.PropertyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatePropertyLocked(ctx, rec)
}

func (s *Store) UpdatePropertyWithRoomCapacities(ctx context.Context, rec models.PropertyRecord, capacityByRoomType map[string]int) (*models.PropertyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms, err := load[domain.Room](ctx, s.kv, KeyRooms)
	if err != nil {
		return nil, err
	}
	out, err := s.updatePropertyLocked(ctx, rec)
	if err != nil {
		return nil, err
	}
	for i := range rooms {
		if rooms[i].PropertyID != rec.ID {
			continue
		}
		if capacity, ok := capacityByRoomType[rooms[i].RoomType]; ok {
			rooms[i].Capacity = capacity
			rooms[i].Touch(rec.LastUpdatedBy, rec.LastUpdatedAt)
		}
	}
	if err := save(ctx, s.kv, KeyRooms, rooms); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) updatePropertyLocked(ctx context.Context, rec models.PropertyRecord) (*models.PropertyRecord, error) {
	props, err := load[domain.Property](ctx, s.kv, KeyProperties)
	if err != nil {
		return nil, err
	}
	i := indexOf(props, propertyID, rec.ID)
	if i < 0 {
		return nil, fmt.Errorf("property %s: %w", rec.ID, apperrors.ErrNotFound)
	}
	p := mapping.ToDomainProperty(rec)
	p.CreatedAt, p.CreatedBy = props[i].CreatedAt, props[i].CreatedBy
	props[i] = p
	if err := save(ctx, s.kv, KeyProperties, props); err != nil {
		return nil, err
	}
	out := mapping.ToPropertyRecord(p)
	return &out, nil
}

func (s *Store) DeleteProperty(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rooms, err := load[domain.Room](ctx, s.kv, KeyRooms)
	if err != nil {
		return err
	}
	for _, r := range rooms {
		if r.PropertyID == id {
			return apperrors.NewConflictError(fmt.Sprintf("property %s still has rooms", id))
		}
	}
	return deleteByID(ctx, s.kv, KeyProperties, propertyID, id, "property")
}

// --- rooms ---

func (s *Store) ListRooms(ctx context.Context) ([]models.RoomRecord, error) {
	rooms, err := load[domain.Room](ctx, s.kv, KeyRooms)
	if err != nil {
		return nil, err
	}
	out := make([]models.RoomRecord, len(rooms))
	for i, r := range rooms {
		out[i] = mapping.ToRoomRecord(r)
	}
	return out, nil
}

func (s *Store) InsertRoom(ctx context.Context, rec models.RoomRecord) (*models.RoomRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room := mapping.ToDomainRoom(rec)
	if err := requireEntity(ctx, s.kv, KeyProperties, propertyID, room.PropertyID, "property"); err != nil {
		return nil, err
	}
	rooms, err := load[domain.Room](ctx, s.kv, KeyRooms)
	if err != nil {
		return nil, err
	}
	if indexOf(rooms, roomID, rec.ID) >= 0 {
		return nil, apperrors.NewDuplicateError(fmt.Sprintf("room %s already exists", rec.ID))
	}
	if err := save(ctx, s.kv, KeyRooms, append(rooms, room)); err != nil {
		return nil, err
	}
	out := mapping.ToRoomRecord(room)
	return &out, nil
}

func (s *Store) UpdateRoom(ctx context.Context, rec models.RoomRecord) (*models.RoomRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rooms, err := load[domain.Room](ctx, s.kv, KeyRooms)
	if err != nil {
		return nil, err
	}
	i := indexOf(rooms, roomID, rec.ID)
	if i < 0 {
		return nil, fmt.Errorf("room %s: %w", rec.ID, apperrors.ErrNotFound)
	}
	room := mapping.ToDomainRoom(rec)
	room.CreatedAt, room.CreatedBy = rooms[i].CreatedAt, rooms[i].CreatedBy
	rooms[i] = room
	if err := save(ctx, s.kv, KeyRooms, rooms); err != nil {
		return nil, err
	}
	out := mapping.ToRoomRecord(room)
	return &out, nil
}

func (s *Store) DeleteRoom(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tenants, err := load[domain.Tenant](ctx, s.kv, KeyTenants)
	if err != nil {
		return err
	}
	for _, t := range tenants {
		if t.RoomID == id {
			return apperrors.NewConflictError(fmt.Sprintf("room %s still has tenants", id))
		}
	}
	return deleteByID(ctx, s.kv, KeyRooms, roomID, id, "room")
}

// --- tenants ---

func (s *Store) ListTenants(ctx context.Context) ([]models.TenantRecord, error) {
	tenants, err := load[domain.Tenant](ctx, s.kv, KeyTenants)
	if err != nil {
		return nil, err
	}
	out := make([]models.TenantRecord, len(tenants))
	for i, t := range tenants {
		out[i] = mapping.ToTenantRecord(t)
	}
	return out, nil
}

func (s *Store) InsertTenant(ctx context.Context, rec models.TenantRecord) (*models.TenantRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tenant := mapping.ToDomainTenant(rec)
	tenants, err := load[domain.Tenant](ctx, s.kv, KeyTenants)
	if err != nil {
		return nil, err
	}
	if indexOf(tenants, tenantID, rec.ID) >= 0 {
		return nil, apperrors.NewDuplicateError(fmt.Sprintf("tenant %s already exists", rec.ID))
	}
	if err := requireBed(ctx, s.kv, tenants, tenant.RoomID, tenant.ID); err != nil {
		return nil, err
	}
	tenant.Payments = []domain.Payment{}
	if err := save(ctx, s.kv, KeyTenants, append(tenants, tenant)); err != nil {
		return nil, err
	}
	out := mapping.ToTenantRecord(tenant)
	return &out, nil
}

// UpdateTenant keeps the stored payments; they change only through the payment methods.
func (s *Store) UpdateTenant(ctx context.Context, rec models.TenantRecord) (*models.TenantRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tenants, err := load[domain.Tenant](ctx, s.kv, KeyTenants)
	if err != nil {
		return nil, err
	}
	i := indexOf(tenants, tenantID, rec.ID)
	if i < 0 {
		return nil, fmt.Errorf("tenant %s: %w", rec.ID, apperrors.ErrNotFound)
	}
	tenant := mapping.ToDomainTenant(rec)
	if tenant.RoomID != tenants[i].RoomID {
		if err := requireBed(ctx, s.kv, tenants, tenant.RoomID, tenant.ID); err != nil {
			return nil, err
		}
	}
	tenant.Payments = tenants[i].Payments
	tenant.CreatedAt, tenant.CreatedBy = tenants[i].CreatedAt, tenants[i].CreatedBy
	tenant.Balance = domain.ComputeBalance(tenant.TotalFees, tenant.Payments)
	tenants[i] = tenant
	if err := save(ctx, s.kv, KeyTenants, tenants); err != nil {
		return nil, err
	}
	out := mapping.ToTenantRecord(tenant)
	return &out, nil
}

func (s *Store) DeleteTenant(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deleteByID(ctx, s.kv, KeyTenants, tenantID, id, "tenant")
}

// --- payments ---

func (s *Store) InsertPayment(ctx context.Context, rec models.PaymentRecord) (*models.PaymentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payment := mapping.ToDomainPayment(rec)
	out, err := s.withTenantOf(ctx, payment.TenantID, func(t *domain.Tenant) (*domain.Payment, error) {
		t.Payments = append(t.Payments, payment)
		return &t.Payments[len(t.Payments)-1], nil
	})
	if err != nil {
		return nil, err
	}
	written := mapping.ToPaymentRecord(*out)
	return &written, nil
}

func (s *Store) DecidePayment(ctx context.Context, paymentID, status, decidedBy string, decidedAt time.Time) (*models.PaymentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tenants, err := load[domain.Tenant](ctx, s.kv, KeyTenants)
	if err != nil {
		return nil, err
	}
	ti, pi := findPayment(tenants, paymentID)
	if ti < 0 {
		return nil, fmt.Errorf("payment %s: %w", paymentID, apperrors.ErrNotFound)
	}
	t := &tenants[ti]
	if err := t.Payments[pi].Decide(domain.ApprovalStatus(status), decidedBy, decidedAt); err != nil {
		return nil, err
	}
	t.Balance = domain.ComputeBalance(t.TotalFees, t.Payments)
	if err := save(ctx, s.kv, KeyTenants, tenants); err != nil {
		return nil, err
	}
	out := mapping.ToPaymentRecord(t.Payments[pi])
	return &out, nil
}

func (s *Store) DeletePayment(ctx context.Context, paymentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tenants, err := load[domain.Tenant](ctx, s.kv, KeyTenants)
	if err != nil {
		return err
	}
	ti, pi := findPayment(tenants, paymentID)
	if ti < 0 {
		return fmt.Errorf("payment %s: %w", paymentID, apperrors.ErrNotFound)
	}
	t := &tenants[ti]
	if st := t.Payments[pi].ApprovalStatus; st != domain.ApprovalPending {
		return apperrors.NewConflictError(fmt.Sprintf("payment is already %s and cannot be deleted", st))
	}
	t.Payments = append(t.Payments[:pi], t.Payments[pi+1:]...)
	t.Balance = domain.ComputeBalance(t.TotalFees, t.Payments)
	return save(ctx, s.kv, KeyTenants, tenants)
}

func (s *Store) withTenantOf(ctx context.Context, id string, fn func(*domain.Tenant) (*domain.Payment, error)) (*domain.Payment, error) {
	tenants, err := load[domain.Tenant](ctx, s.kv, KeyTenants)
	if err != nil {
		return nil, err
	}
	i := indexOf(tenants, tenantID, id)
	if i < 0 {
		return nil, fmt.Errorf("tenant %s: %w", id, apperrors.ErrNotFound)
	}
	p, err := fn(&tenants[i])
	if err != nil {
		return nil, err
	}
	out := *p
	tenants[i].Balance = domain.ComputeBalance(tenants[i].TotalFees, tenants[i].Payments)
	if err := save(ctx, s.kv, KeyTenants, tenants); err != nil {
		return nil, err
	}
	return &out, nil
}

func findPayment(tenants []domain.Tenant, paymentID string) (int, int) {
	for ti, t := range tenants {
		for pi, p := range t.Payments {
			if p.ID == paymentID {
				return ti, pi
			}
		}
	}
	return -1, -1
}

// --- users ---

func (s *Store) ListUsers(ctx context.Context) ([]models.UserRecord, error) {
	users, err := load[domain.Actor](ctx, s.kv, KeyUsers)
	if err != nil {
		return nil, err
	}
	out := make([]models.UserRecord, len(users))
	for i, u := range users {
		out[i] = mapping.ToUserRecord(u)
	}
	return out, nil
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*models.UserRecord, error) {
	users, err := load[domain.Actor](ctx, s.kv, KeyUsers)
	if err != nil {
		return nil, err
	}
	i := indexOf(users, userID, id)
	if i < 0 {
		return nil, fmt.Errorf("user %s: %w", id, apperrors.ErrNotFound)
	}
	out := mapping.ToUserRecord(users[i])
	return &out, nil
}

// --- helpers ---

// requireEntity rejects a reference to a row that does not exist.
func requireEntity[T any](ctx context.Context, kv KV, key string, id func(T) string, want, entity string) error {
	items, err := load[T](ctx, kv, key)
	if err != nil {
		return err
	}
	if indexOf(items, id, want) < 0 {
		return apperrors.NewConflictError(fmt.Sprintf("%s %s does not exist", entity, want))
	}
	return nil
}

// requireBed fails with a conflict unless room want exists, is not under
// maintenance and has a free bed. selfID is not counted.
func requireBed(ctx context.Context, kv KV, tenants []domain.Tenant, want, selfID string) error {
	rooms, err := load[domain.Room](ctx, kv, KeyRooms)
	if err != nil {
		return err
	}
	i := indexOf(rooms, roomID, want)
	if i < 0 {
		return apperrors.NewConflictError(fmt.Sprintf("room %s does not exist", want))
	}
	room := rooms[i]
	if room.UnderMaintenance {
		return apperrors.NewConflictError(fmt.Sprintf("room %s is under maintenance", room.Number))
	}
	occupants := 0
	for _, t := range tenants {
		if t.RoomID == want && t.ID != selfID {
			occupants++
		}
	}
	if occupants >= room.Capacity {
		return apperrors.NewConflictError(fmt.Sprintf("room %s is full (%d/%d)", room.Number, occupants, room.Capacity))
	}
	return nil
}

func deleteByID[T any](ctx context.Context, kv KV, key string, id func(T) string, want, entity string) error {
	items, err := load[T](ctx, kv, key)
	if err != nil {
		return err
	}
	i := indexOf(items, id, want)
	if i < 0 {
		return fmt.Errorf("%s %s: %w", entity, want, apperrors.ErrNotFound)
	}
	return save(ctx, kv, key, append(items[:i], items[i+1:]...))
}
