package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/pg_console/internal/apperrors"
	"github.com/SscSPs/pg_console/internal/core/domain"
	portsrepo "github.com/SscSPs/pg_console/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pg_console/internal/core/ports/services"
	"github.com/SscSPs/pg_console/internal/dto"
	"github.com/SscSPs/pg_console/internal/utils/mapping"
	"github.com/google/uuid"
)

type tenantService struct {
	BaseService
	tenantRepo portsrepo.TenantRepositoryFacade
}

// NewTenantService creates a tenant service over repo.
func NewTenantService(repo portsrepo.TenantRepositoryFacade, options ...ServiceOption) portssvc.TenantSvcFacade {
	return &tenantService{
		BaseService: newBaseService(options...),
		tenantRepo:  repo,
	}
}

var _ portssvc.TenantSvcFacade = (*tenantService)(nil)

func (s *tenantService) CreateTenant(ctx context.Context, scope portssvc.Scope, req dto.TenantRequest) (_ *domain.Tenant, err error) {
	defer func() { s.Observe("tenant.create", err) }()

	actor, err := s.RequireCapability(ctx, scope, domain.CapManageOccupancy)
	if err != nil {
		return nil, err
	}
	if err := s.validateTenant(req); err != nil {
		return nil, err
	}
	room, err := s.requireBed(ctx, scope, actor, req.RoomID)
	if err != nil {
		return nil, err
	}
	if err := s.checkIdentity(scope, room.PropertyID, "", req); err != nil {
		return nil, err
	}

	tenant := domain.Tenant{
		ID:          uuid.NewString(),
		Payments:    []domain.Payment{},
		AuditFields: domain.NewAuditFields(actor.ID, s.now()),
	}
	applyTenantRequest(&tenant, req, room)

	stored, err := s.tenantRepo.InsertTenant(ctx, mapping.ToTenantRecord(tenant))
	if err != nil {
		return nil, s.WrapWriteError(ctx, err, "failed to create tenant")
	}
	s.LogInfo(ctx, "Tenant created",
		slog.String("tenant_id", stored.ID),
		slog.String("room_id", room.ID),
		slog.String("user_id", actor.ID))

	s.RefreshAfterWrite(ctx, scope, "tenant.create")
	return s.resolve(scope, mapping.ToDomainTenant(*stored)), nil
}

func (s *tenantService) UpdateTenant(ctx context.Context, scope portssvc.Scope, tenantID string, req dto.TenantRequest) (_ *domain.Tenant, err error) {
	defer func() { s.Observe("tenant.update", err) }()

	actor, existing, err := s.requireTenant(ctx, scope, tenantID)
	if err != nil {
		return nil, err
	}
	if err := s.validateTenant(req); err != nil {
		return nil, err
	}

	room, ok := scope.Current().Room(existing.RoomID)
	if req.RoomID != existing.RoomID || !ok {
		room, err = s.requireBed(ctx, scope, actor, req.RoomID)
		if err != nil {
			return nil, err
		}
	}
	if err := s.checkIdentity(scope, room.PropertyID, existing.ID, req); err != nil {
		return nil, err
	}

	updated := existing
	applyTenantRequest(&updated, req, room)
	updated.Touch(actor.ID, s.now())

	stored, err := s.tenantRepo.UpdateTenant(ctx, mapping.ToTenantRecord(updated))
	if err != nil {
		return nil, s.WrapWriteError(ctx, err, "failed to update tenant")
	}

	s.RefreshAfterWrite(ctx, scope, "tenant.update")
	return s.resolve(scope, mapping.ToDomainTenant(*stored)), nil
}

func (s *tenantService) MoveTenant(ctx context.Context, scope portssvc.Scope, tenantID, roomID string) (_ *domain.Tenant, err error) {
	defer func() { s.Observe("tenant.move", err) }()

	actor, existing, err := s.requireTenant(ctx, scope, tenantID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(roomID) == "" {
		return nil, apperrors.NewValidationFailedError("target room is required")
	}
	if roomID == existing.RoomID {
		return nil, apperrors.NewValidationFailedError("tenant is already in that room")
	}
	room, err := s.requireBed(ctx, scope, actor, roomID)
	if err != nil {
		return nil, err
	}
	if room.PropertyID != existing.PropertyID {
		for _, other := range scope.Current().TenantsOf(room.PropertyID) {
			if other.SharesIdentity(existing.Phone, existing.NationalID) {
				return nil, apperrors.NewDuplicateError("a tenant with the same phone or national id already lives in the target property")
			}
		}
	}

	updated := existing
	updated.RoomID = room.ID
	updated.PropertyID = room.PropertyID
	updated.Touch(actor.ID, s.now())

	stored, err := s.tenantRepo.UpdateTenant(ctx, mapping.ToTenantRecord(updated))
	if err != nil {
		return nil, s.WrapWriteError(ctx, err, "failed to move tenant")
	}
	s.LogInfo(ctx, "Tenant moved",
		slog.String("tenant_id", tenantID),
		slog.String("from_room_id", existing.RoomID),
		slog.String("to_room_id", room.ID))

	s.RefreshAfterWrite(ctx, scope, "tenant.move")
	return s.resolve(scope, mapping.ToDomainTenant(*stored)), nil
}

func (s *tenantService) DeleteTenant(ctx context.Context, scope portssvc.Scope, tenantID string) (err error) {
	defer func() { s.Observe("tenant.delete", err) }()

	actor, _, err := s.requireTenant(ctx, scope, tenantID)
	if err != nil {
		return err
	}
	if err := s.tenantRepo.DeleteTenant(ctx, tenantID); err != nil {
		return s.WrapWriteError(ctx, err, "failed to delete tenant")
	}
	s.LogInfo(ctx, "Tenant deleted", slog.String("tenant_id", tenantID), slog.String("user_id", actor.ID))

	s.RefreshAfterWrite(ctx, scope, "tenant.delete")
	return nil
}

func (s *tenantService) requireTenant(ctx context.Context, scope portssvc.Scope, tenantID string) (*domain.Actor, domain.Tenant, error) {
	actor, err := s.RequireCapability(ctx, scope, domain.CapManageOccupancy)
	if err != nil {
		return nil, domain.Tenant{}, err
	}
	tenant, ok := scope.Current().Tenant(tenantID)
	if !ok {
		return nil, domain.Tenant{}, apperrors.NewNotFoundError(fmt.Sprintf("tenant %s not found", tenantID))
	}
	if _, err := s.RequireProperty(ctx, scope, actor, tenant.PropertyID); err != nil {
		return nil, domain.Tenant{}, err
	}
	return actor, tenant, nil
}

// requireBed finds a room in the actor's scope that can take one more tenant.
// The check runs against the live dataset, before anything is written.
func (s *tenantService) requireBed(ctx context.Context, scope portssvc.Scope, actor *domain.Actor, roomID string) (domain.Room, error) {
	room, ok := scope.Current().Room(roomID)
	if !ok {
		return domain.Room{}, apperrors.NewNotFoundError(fmt.Sprintf("room %s not found", roomID))
	}
	if _, err := s.RequireProperty(ctx, scope, actor, room.PropertyID); err != nil {
		return domain.Room{}, err
	}
	if room.UnderMaintenance {
		return domain.Room{}, apperrors.NewConflictError(fmt.Sprintf("room %s is under maintenance", room.Number))
	}
	if !room.CanAccept() {
		return domain.Room{}, apperrors.NewConflictError(fmt.Sprintf("room %s is full (%d/%d)", room.Number, len(room.Occupants), room.Capacity))
	}
	return room, nil
}

// checkIdentity rejects a phone or national id already used by another tenant of the property.
func (s *tenantService) checkIdentity(scope portssvc.Scope, propertyID, selfID string, req dto.TenantRequest) error {
	for _, other := range scope.Current().TenantsOf(propertyID) {
		if other.ID != selfID && other.SharesIdentity(req.Phone, req.NationalID) {
			return apperrors.NewDuplicateError(fmt.Sprintf("tenant %s already uses this phone or national id", other.Name))
		}
	}
	return nil
}

func (s *tenantService) validateTenant(req dto.TenantRequest) error {
	if err := s.Validate(req); err != nil {
		return err
	}
	if req.TotalFees.IsNegative() || req.Deposit.IsNegative() {
		return apperrors.NewValidationFailedError("fees and deposit cannot be negative")
	}
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return apperrors.NewValidationFailedError("end date is before start date")
	}
	return nil
}

func (s *tenantService) resolve(scope portssvc.Scope, written domain.Tenant) *domain.Tenant {
	if t, ok := scope.Current().Tenant(written.ID); ok {
		return &t
	}
	return &written
}

func applyTenantRequest(t *domain.Tenant, req dto.TenantRequest, room domain.Room) {
	t.Name = strings.TrimSpace(req.Name)
	t.Phone = strings.TrimSpace(req.Phone)
	t.Email = strings.TrimSpace(req.Email)
	t.NationalID = strings.TrimSpace(req.NationalID)
	t.GuardianName = req.GuardianName
	t.GuardianPhone = req.GuardianPhone
	t.Address = req.Address
	t.TotalFees = req.TotalFees
	t.Deposit = req.Deposit
	t.StartDate = req.StartDate
	t.EndDate = req.EndDate
	t.RoomID = room.ID
	t.PropertyID = room.PropertyID
}
