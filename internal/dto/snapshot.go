package dto

import (
	"time"

	"github.com/SscSPs/pg_console/internal/core/domain"
	"github.com/SscSPs/pg_console/internal/core/snapshot"
)

// SnapshotResponse is the role-filtered view returned to the console.
type SnapshotResponse struct {
	Properties []domain.Property `json:"properties"`
	Rooms      []domain.Room     `json:"rooms"`
	Tenants    []domain.Tenant   `json:"tenants"`
	Users      []domain.Actor    `json:"users"`
	Loading    bool              `json:"loading"`
	Refreshing bool              `json:"refreshing"`
	Error      string            `json:"error,omitempty"`
	LoadedAt   *time.Time        `json:"loadedAt,omitempty"`
	Generation uint64            `json:"generation"`
}

// ToSnapshotResponse converts a loader snapshot.
func ToSnapshotResponse(s snapshot.Snapshot) SnapshotResponse {
	data := s.Data
	if data == nil {
		data = snapshot.EmptyDataset()
	}
	resp := SnapshotResponse{
		Properties: data.Properties,
		Rooms:      data.Rooms,
		Tenants:    data.Tenants,
		Users:      data.Users,
		Loading:    s.Loading,
		Refreshing: s.Refreshing,
		Generation: s.Generation,
	}
	if s.Err != nil {
		resp.Error = s.Err.Error()
	}
	if !s.LoadedAt.IsZero() {
		loadedAt := s.LoadedAt
		resp.LoadedAt = &loadedAt
	}
	return resp
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
