package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	venueerrors "bukid/internal/pavilions/errors"
	"bukid/internal/pavilions/validator"
	"bukid/pkg/config"
	apperrors "bukid/pkg/errors"
	"bukid/pkg/logger"
	"bukid/pkg/model"
)

const (
	testPavilionID = "64f1b2a3c4d5e6f7a8b9c0d1"
	testRoomID     = "64f1b2a3c4d5e6f7a8b9c0d2"
)

type mockPavilionRepo struct {
	pavilion *model.Pavilion
	deleted  []string
}

func (m *mockPavilionRepo) Create(ctx context.Context, pavilion *model.Pavilion) error {
	pavilion.ID = testPavilionID
	m.pavilion = pavilion
	return nil
}

func (m *mockPavilionRepo) FindByID(ctx context.Context, id string) (*model.Pavilion, error) {
	if m.pavilion == nil {
		return nil, venueerrors.ErrPavilionNotFound
	}
	return m.pavilion, nil
}

func (m *mockPavilionRepo) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Pavilion, error) {
	if m.pavilion == nil {
		return nil, nil
	}
	return []*model.Pavilion{m.pavilion}, nil
}

func (m *mockPavilionRepo) Count(ctx context.Context) (int64, error) {
	if m.pavilion == nil {
		return 0, nil
	}
	return 1, nil
}

func (m *mockPavilionRepo) Update(ctx context.Context, id string, pavilion *model.Pavilion) error {
	m.pavilion = pavilion
	return nil
}

func (m *mockPavilionRepo) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	m.pavilion = nil
	return nil
}

type mockRoomRepo struct {
	rooms []*model.Room
}

func (m *mockRoomRepo) Create(ctx context.Context, room *model.Room) error {
	room.ID = testRoomID
	m.rooms = append(m.rooms, room)
	return nil
}

func (m *mockRoomRepo) FindByID(ctx context.Context, id string) (*model.Room, error) {
	for _, room := range m.rooms {
		if room.ID == id {
			return room, nil
		}
	}
	return nil, venueerrors.ErrRoomNotFound
}

func (m *mockRoomRepo) FindByPavilion(ctx context.Context, pavilionID string) ([]*model.Room, error) {
	var out []*model.Room
	for _, room := range m.rooms {
		if room.PavilionID == pavilionID {
			out = append(out, room)
		}
	}
	return out, nil
}

func (m *mockRoomRepo) CountByPavilion(ctx context.Context, pavilionID string) (int64, error) {
	rooms, _ := m.FindByPavilion(ctx, pavilionID)
	return int64(len(rooms)), nil
}

func (m *mockRoomRepo) Update(ctx context.Context, id string, room *model.Room) error { return nil }

func (m *mockRoomRepo) Delete(ctx context.Context, id string) error {
	for i, room := range m.rooms {
		if room.ID == id {
			m.rooms = append(m.rooms[:i], m.rooms[i+1:]...)
			return nil
		}
	}
	return venueerrors.ErrRoomNotFound
}

func venueConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
		Location:     time.UTC,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func newTestVenues(t *testing.T, pavilions *mockPavilionRepo, rooms *mockRoomRepo) VenueService {
	t.Helper()
	cfg := venueConfig(t)
	return NewVenueService(pavilions, rooms, validator.NewVenueValidator(cfg.Log), cfg)
}

func grandPavilion() *model.Pavilion {
	return &model.Pavilion{
		ID:       testPavilionID,
		Name:     "Grand Pavilion",
		Capacity: 300,
		BaseRate: 45000,
		Active:   true,
	}
}

func TestCreatePavilion_NormalizesName(t *testing.T) {
	pavilions := &mockPavilionRepo{}
	svc := newTestVenues(t, pavilions, &mockRoomRepo{})

	pavilion := &model.Pavilion{
		Name:     "  Grand   Pavilion  ",
		Capacity: 300,
		BaseRate: 45000,
	}
	err := svc.CreatePavilion(context.Background(), pavilion)
	require.NoError(t, err)

	assert.Equal(t, testPavilionID, pavilion.ID)
	assert.Equal(t, "Grand Pavilion", pavilion.Name)
}

func TestCreatePavilion_RejectsInvalid(t *testing.T) {
	svc := newTestVenues(t, &mockPavilionRepo{}, &mockRoomRepo{})

	err := svc.CreatePavilion(context.Background(), &model.Pavilion{Name: "G", Capacity: 0})
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}

func TestDeletePavilion_WithRoomsIsConflict(t *testing.T) {
	pavilions := &mockPavilionRepo{pavilion: grandPavilion()}
	rooms := &mockRoomRepo{rooms: []*model.Room{
		{ID: testRoomID, PavilionID: testPavilionID, Name: "Kubo 1", Capacity: 4, Rate: 2500},
	}}
	svc := newTestVenues(t, pavilions, rooms)

	err := svc.DeletePavilion(context.Background(), testPavilionID)
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
	assert.Empty(t, pavilions.deleted)
}

func TestDeletePavilion_EmptySucceeds(t *testing.T) {
	pavilions := &mockPavilionRepo{pavilion: grandPavilion()}
	svc := newTestVenues(t, pavilions, &mockRoomRepo{})

	err := svc.DeletePavilion(context.Background(), testPavilionID)
	require.NoError(t, err)
	assert.Equal(t, []string{testPavilionID}, pavilions.deleted)
}

func TestCreateRoom_RequiresExistingPavilion(t *testing.T) {
	svc := newTestVenues(t, &mockPavilionRepo{}, &mockRoomRepo{})

	room := &model.Room{PavilionID: testPavilionID, Name: "Kubo 1", Capacity: 4, Rate: 2500}
	err := svc.CreateRoom(context.Background(), room)
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestCreateRoom_DefaultsStatusAvailable(t *testing.T) {
	pavilions := &mockPavilionRepo{pavilion: grandPavilion()}
	rooms := &mockRoomRepo{}
	svc := newTestVenues(t, pavilions, rooms)

	room := &model.Room{PavilionID: testPavilionID, Name: "Kubo 1", Capacity: 4, Rate: 2500}
	err := svc.CreateRoom(context.Background(), room)
	require.NoError(t, err)

	assert.Equal(t, "available", room.Status)
	assert.Len(t, rooms.rooms, 1)
}

func TestUpdateRoom_MergesFields(t *testing.T) {
	pavilions := &mockPavilionRepo{pavilion: grandPavilion()}
	rooms := &mockRoomRepo{rooms: []*model.Room{
		{ID: testRoomID, PavilionID: testPavilionID, Name: "Kubo 1", Capacity: 4, Rate: 2500, Status: "available"},
	}}
	svc := newTestVenues(t, pavilions, rooms)

	newRate := 3000.0
	err := svc.UpdateRoom(context.Background(), testRoomID, &model.RoomUpdate{
		Rate:   &newRate,
		Status: "maintenance",
	})
	require.NoError(t, err)
}

func TestUpdatePavilion_InvalidUpdateRejected(t *testing.T) {
	pavilions := &mockPavilionRepo{pavilion: grandPavilion()}
	svc := newTestVenues(t, pavilions, &mockRoomRepo{})

	badCapacity := 0
	err := svc.UpdatePavilion(context.Background(), testPavilionID, &model.PavilionUpdate{Capacity: &badCapacity})
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}
