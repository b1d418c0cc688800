package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	venueerrors "bukid/internal/pavilions/errors"
	"bukid/internal/pavilions/repository"
	"bukid/internal/pavilions/validator"
	"bukid/pkg/config"
	apperrors "bukid/pkg/errors"
	"bukid/pkg/model"
	"bukid/pkg/sanitizer"
)

// VenueService manages pavilions and the lodging rooms attached to them.
// A pavilion cannot be deleted while rooms still reference it.
type VenueService interface {
	CreatePavilion(ctx context.Context, pavilion *model.Pavilion) error
	GetPavilion(ctx context.Context, id string) (*model.Pavilion, error)
	GetAllPavilions(ctx context.Context, limit int, offset int64) ([]*model.Pavilion, int64, error)
	UpdatePavilion(ctx context.Context, id string, updates *model.PavilionUpdate) error
	DeletePavilion(ctx context.Context, id string) error

	CreateRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, id string) (*model.Room, error)
	GetRoomsForPavilion(ctx context.Context, pavilionID string) ([]*model.Room, error)
	UpdateRoom(ctx context.Context, id string, updates *model.RoomUpdate) error
	DeleteRoom(ctx context.Context, id string) error
}

type venueService struct {
	pavilions repository.PavilionRepository
	rooms     repository.RoomRepository
	validator *validator.VenueValidator
	cfg       *config.Config
}

func NewVenueService(
	pavilions repository.PavilionRepository,
	rooms repository.RoomRepository,
	validator *validator.VenueValidator,
	cfg *config.Config,
) VenueService {
	return &venueService{
		pavilions: pavilions,
		rooms:     rooms,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *venueService) CreatePavilion(ctx context.Context, pavilion *model.Pavilion) error {
	pavilion.Name = sanitizer.NormalizeName(pavilion.Name)
	pavilion.Description = sanitizer.TrimAndNormalize(pavilion.Description)

	if err := s.validator.ValidatePavilion(pavilion); err != nil {
		s.cfg.Log.Warn("Pavilion validation failed", "error", err)
		return apperrors.Validation("Pavilion validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.pavilions.Create(ctx, pavilion); err != nil {
		s.cfg.Log.Error("Failed to create pavilion", "error", err)
		return apperrors.Internal("Failed to create pavilion", err)
	}

	s.cfg.Log.Info("Pavilion created", "id", pavilion.ID, "name", pavilion.Name)
	return nil
}

func (s *venueService) GetPavilion(ctx context.Context, id string) (*model.Pavilion, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Pavilion ID cannot be empty")
	}

	pavilion, err := s.pavilions.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapPavilionError(err, id, "Failed to retrieve pavilion")
	}
	return pavilion, nil
}

func (s *venueService) GetAllPavilions(ctx context.Context, limit int, offset int64) ([]*model.Pavilion, int64, error) {
	var count int64
	var pavilions []*model.Pavilion
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.pavilions.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count pavilions", "error", errCount)
			errCount = apperrors.Internal("Failed to count pavilions", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		pavilions, errFind = s.pavilions.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list pavilions", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve pavilions", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return pavilions, count, nil
}

func (s *venueService) UpdatePavilion(ctx context.Context, id string, updates *model.PavilionUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Pavilion ID cannot be empty")
	}

	existing, err := s.pavilions.FindByID(ctx, id)
	if err != nil {
		return s.mapPavilionError(err, id, "Failed to check pavilion existence")
	}

	if err := s.validator.ValidatePavilionUpdate(updates); err != nil {
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := *existing
	if updates.Name != "" {
		merged.Name = sanitizer.NormalizeName(updates.Name)
	}
	if updates.Description != nil {
		merged.Description = sanitizer.TrimAndNormalize(*updates.Description)
	}
	if updates.Capacity != nil {
		merged.Capacity = *updates.Capacity
	}
	if updates.BaseRate != nil {
		merged.BaseRate = *updates.BaseRate
	}
	if updates.Active != nil {
		merged.Active = *updates.Active
	}

	if err := s.validator.ValidatePavilion(&merged); err != nil {
		return apperrors.Validation("Pavilion validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.pavilions.Update(ctx, id, &merged); err != nil {
		return s.mapPavilionError(err, id, "Failed to update pavilion")
	}

	s.cfg.Log.Info("Pavilion updated", "id", id)
	return nil
}

func (s *venueService) DeletePavilion(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Pavilion ID cannot be empty")
	}

	roomCount, err := s.rooms.CountByPavilion(ctx, id)
	if err != nil {
		s.cfg.Log.Error("Failed to count rooms for pavilion", "pavilion_id", id, "error", err)
		return apperrors.Internal("Failed to check pavilion rooms", err)
	}
	if roomCount > 0 {
		return apperrors.Conflict(fmt.Sprintf("Pavilion still has %d room(s); delete them first", roomCount))
	}

	if err := s.pavilions.Delete(ctx, id); err != nil {
		return s.mapPavilionError(err, id, "Failed to delete pavilion")
	}

	s.cfg.Log.Info("Pavilion deleted", "id", id)
	return nil
}

func (s *venueService) CreateRoom(ctx context.Context, room *model.Room) error {
	room.Name = sanitizer.NormalizeName(room.Name)
	if room.Status == "" {
		room.Status = "available"
	}

	if err := s.validator.ValidateRoom(room); err != nil {
		s.cfg.Log.Warn("Room validation failed", "error", err)
		return apperrors.Validation("Room validation failed", map[string]any{"error": err.Error()})
	}

	// A room must hang off an existing pavilion.
	if _, err := s.pavilions.FindByID(ctx, room.PavilionID); err != nil {
		return s.mapPavilionError(err, room.PavilionID, "Failed to verify pavilion")
	}

	if err := s.rooms.Create(ctx, room); err != nil {
		s.cfg.Log.Error("Failed to create room", "error", err)
		return apperrors.Internal("Failed to create room", err)
	}

	s.cfg.Log.Info("Room created", "id", room.ID, "pavilion_id", room.PavilionID, "name", room.Name)
	return nil
}

func (s *venueService) GetRoom(ctx context.Context, id string) (*model.Room, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Room ID cannot be empty")
	}

	room, err := s.rooms.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRoomError(err, id, "Failed to retrieve room")
	}
	return room, nil
}

func (s *venueService) GetRoomsForPavilion(ctx context.Context, pavilionID string) ([]*model.Room, error) {
	if pavilionID == "" {
		return nil, apperrors.InvalidInput("Pavilion ID cannot be empty")
	}

	if _, err := s.pavilions.FindByID(ctx, pavilionID); err != nil {
		return nil, s.mapPavilionError(err, pavilionID, "Failed to verify pavilion")
	}

	rooms, err := s.rooms.FindByPavilion(ctx, pavilionID)
	if err != nil {
		s.cfg.Log.Error("Failed to list rooms", "pavilion_id", pavilionID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve rooms", err)
	}
	return rooms, nil
}

func (s *venueService) UpdateRoom(ctx context.Context, id string, updates *model.RoomUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Room ID cannot be empty")
	}

	existing, err := s.rooms.FindByID(ctx, id)
	if err != nil {
		return s.mapRoomError(err, id, "Failed to check room existence")
	}

	if err := s.validator.ValidateRoomUpdate(updates); err != nil {
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := *existing
	if updates.Name != "" {
		merged.Name = sanitizer.NormalizeName(updates.Name)
	}
	if updates.Capacity != nil {
		merged.Capacity = *updates.Capacity
	}
	if updates.Rate != nil {
		merged.Rate = *updates.Rate
	}
	if updates.Status != "" {
		merged.Status = updates.Status
	}

	if err := s.validator.ValidateRoom(&merged); err != nil {
		return apperrors.Validation("Room validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.rooms.Update(ctx, id, &merged); err != nil {
		return s.mapRoomError(err, id, "Failed to update room")
	}

	s.cfg.Log.Info("Room updated", "id", id)
	return nil
}

func (s *venueService) DeleteRoom(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Room ID cannot be empty")
	}

	if err := s.rooms.Delete(ctx, id); err != nil {
		return s.mapRoomError(err, id, "Failed to delete room")
	}

	s.cfg.Log.Info("Room deleted", "id", id)
	return nil
}

func (s *venueService) mapPavilionError(err error, id, internalMsg string) error {
	if errors.Is(err, venueerrors.ErrPavilionNotFound) {
		return apperrors.NotFoundWithID("Pavilion", id)
	}
	if errors.Is(err, venueerrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid pavilion ID format")
	}
	return apperrors.Internal(internalMsg, err)
}

func (s *venueService) mapRoomError(err error, id, internalMsg string) error {
	if errors.Is(err, venueerrors.ErrRoomNotFound) {
		return apperrors.NotFoundWithID("Room", id)
	}
	if errors.Is(err, venueerrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid room ID format")
	}
	return apperrors.Internal(internalMsg, err)
}
