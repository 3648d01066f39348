package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/SscSPs/pg_console/internal/apperrors"
	"github.com/SscSPs/pg_console/internal/core/domain"
	portsrepo "github.com/SscSPs/pg_console/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pg_console/internal/core/ports/services"
	"github.com/SscSPs/pg_console/internal/dto"
	"github.com/SscSPs/pg_console/internal/models"
	"github.com/SscSPs/pg_console/internal/utils/mapping"
	"github.com/google/uuid"
)

type propertyService struct {
	BaseService
	propertyRepo portsrepo.PropertyRepositoryFacade
}

// NewPropertyService creates a property service over repo.
func NewPropertyService(repo portsrepo.PropertyRepositoryFacade, options ...ServiceOption) portssvc.PropertySvcFacade {
	return &propertyService{
		BaseService:  newBaseService(options...),
		propertyRepo: repo,
	}
}

var _ portssvc.PropertySvcFacade = (*propertyService)(nil)

func (s *propertyService) CreateProperty(ctx context.Context, scope portssvc.Scope, req dto.PropertyRequest) (_ *domain.Property, err error) {
	defer func() { s.Observe("property.create", err) }()

	actor, err := s.RequireCapability(ctx, scope, domain.CapManageProperties)
	if err != nil {
		return nil, err
	}
	if err := s.validateProperty(req); err != nil {
		return nil, err
	}
	ds := scope.Current()
	for _, p := range ds.Properties {
		if sameName(p.Name, req.Name) {
			return nil, apperrors.NewDuplicateError(fmt.Sprintf("a property named %q already exists", req.Name))
		}
	}

	now := s.now()
	prop := domain.Property{
		ID:          uuid.NewString(),
		AuditFields: domain.NewAuditFields(actor.ID, now),
	}
	applyPropertyRequest(&prop, req)

	stored, err := s.propertyRepo.InsertProperty(ctx, mapping.ToPropertyRecord(prop))
	if err != nil {
		return nil, s.WrapWriteError(ctx, err, "failed to create property")
	}
	s.LogInfo(ctx, "Property created", slog.String("property_id", stored.ID), slog.String("user_id", actor.ID))

	s.RefreshAfterWrite(ctx, scope, "property.create")
	return s.resolve(scope, mapping.ToDomainProperty(*stored)), nil
}

func (s *propertyService) UpdateProperty(ctx context.Context, scope portssvc.Scope, propertyID string, req dto.PropertyRequest) (_ *domain.Property, err error) {
	defer func() { s.Observe("property.update", err) }()

	actor, err := s.RequireCapability(ctx, scope, domain.CapManageProperties)
	if err != nil {
		return nil, err
	}
	existing, err := s.RequireProperty(ctx, scope, actor, propertyID)
	if err != nil {
		return nil, err
	}
	if err := s.validateProperty(req); err != nil {
		return nil, err
	}
	ds := scope.Current()
	for _, p := range ds.Properties {
		if p.ID != propertyID && sameName(p.Name, req.Name) {
			return nil, apperrors.NewDuplicateError(fmt.Sprintf("a property named %q already exists", req.Name))
		}
	}

	changes := existing.CapacityChanges(req.RoomTypeSpecs())
	for _, room := range ds.RoomsOf(propertyID) {
		newCap, ok := changes[room.RoomType]
		if ok && len(room.Occupants) > newCap {
			return nil, apperrors.NewConflictError(fmt.Sprintf(
				"room %s has %d occupants, more than the new %s capacity of %d",
				room.Number, len(room.Occupants), room.RoomType, newCap))
		}
	}

	updated := existing
	applyPropertyRequest(&updated, req)
	updated.Touch(actor.ID, s.now())
	rec := mapping.ToPropertyRecord(updated)

	var stored *models.PropertyRecord
	if len(changes) > 0 {
		stored, err = s.propertyRepo.UpdatePropertyWithRoomCapacities(ctx, rec, changes)
	} else {
		stored, err = s.propertyRepo.UpdateProperty(ctx, rec)
	}
	if err != nil {
		return nil, s.WrapWriteError(ctx, err, "failed to update property")
	}
	if len(changes) > 0 {
		s.LogInfo(ctx, "Room capacities updated with property",
			slog.String("property_id", propertyID),
			slog.String("room_types", strings.Join(sortedKeys(changes), ",")))
	}

	s.RefreshAfterWrite(ctx, scope, "property.update")
	return s.resolve(scope, mapping.ToDomainProperty(*stored)), nil
}

func (s *propertyService) DeleteProperty(ctx context.Context, scope portssvc.Scope, propertyID string) (err error) {
	defer func() { s.Observe("property.delete", err) }()

	actor, err := s.RequireCapability(ctx, scope, domain.CapManageProperties)
	if err != nil {
		return err
	}
	if _, err := s.RequireProperty(ctx, scope, actor, propertyID); err != nil {
		return err
	}
	if rooms := scope.Current().RoomsOf(propertyID); len(rooms) > 0 {
		return apperrors.NewConflictError(fmt.Sprintf("property still has %d rooms", len(rooms)))
	}

	if err := s.propertyRepo.DeleteProperty(ctx, propertyID); err != nil {
		return s.WrapWriteError(ctx, err, "failed to delete property")
	}
	s.LogInfo(ctx, "Property deleted", slog.String("property_id", propertyID), slog.String("user_id", actor.ID))

	s.RefreshAfterWrite(ctx, scope, "property.delete")
	return nil
}

func (s *propertyService) validateProperty(req dto.PropertyRequest) error {
	if err := s.Validate(req); err != nil {
		return err
	}
	seen := make(map[string]bool, len(req.RoomTypes))
	for _, rt := range req.RoomTypes {
		key := strings.ToLower(strings.TrimSpace(rt.Name))
		if seen[key] {
			return apperrors.NewValidationFailedError(fmt.Sprintf("room type %q is listed twice", rt.Name))
		}
		seen[key] = true
		if rt.Rent.IsNegative() {
			return apperrors.NewValidationFailedError(fmt.Sprintf("rent of room type %q is negative", rt.Name))
		}
	}
	return nil
}

// resolve prefers the joined entity from the refreshed dataset.
func (s *propertyService) resolve(scope portssvc.Scope, written domain.Property) *domain.Property {
	if p, ok := scope.Current().Property(written.ID); ok {
		return &p
	}
	return &written
}

func applyPropertyRequest(p *domain.Property, req dto.PropertyRequest) {
	p.Name = strings.TrimSpace(req.Name)
	p.Type = req.Type
	p.Location = req.Location
	p.FloorCount = req.FloorCount
	if p.FloorCount == 0 {
		p.FloorCount = mapping.DefaultFloor
	}
	p.TotalRoomCount = req.TotalRoomCount
	p.TotalBedCount = req.TotalBedCount
	p.ManagerID = req.ManagerID
	p.RoomTypes = req.RoomTypeSpecs()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
