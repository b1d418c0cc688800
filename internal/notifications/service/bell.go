package service

import (
	"context"
	"errors"
	"sync"

	notiferrors "bukid/internal/notifications/errors"
	"bukid/internal/notifications/repository"
	"bukid/pkg/config"
	apperrors "bukid/pkg/errors"
	"bukid/pkg/model"
)

// BellService backs the notification bell UI: list, mark read, delete.
type BellService interface {
	GetAll(ctx context.Context, unreadOnly bool, limit int, offset int64) ([]*model.Notification, int64, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
}

type bellService struct {
	repo repository.NotificationRepository
	cfg  *config.Config
}

func NewBellService(repo repository.NotificationRepository, cfg *config.Config) BellService {
	return &bellService{
		repo: repo,
		cfg:  cfg,
	}
}

func (s *bellService) GetAll(ctx context.Context, unreadOnly bool, limit int, offset int64) ([]*model.Notification, int64, error) {
	var count int64
	var notifications []*model.Notification
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, unreadOnly)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count notifications", "error", errCount)
			errCount = apperrors.Internal("Failed to count notifications", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		notifications, errFind = s.repo.FindAll(ctx, unreadOnly, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list notifications", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve notifications", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return notifications, count, nil
}

func (s *bellService) MarkRead(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Notification ID cannot be empty")
	}

	if err := s.repo.MarkRead(ctx, id); err != nil {
		return s.mapRepoError(err, id, "Failed to mark notification read")
	}
	return nil
}

func (s *bellService) MarkAllRead(ctx context.Context) (int64, error) {
	modified, err := s.repo.MarkAllRead(ctx)
	if err != nil {
		return 0, apperrors.Internal("Failed to mark notifications read", err)
	}
	return modified, nil
}

func (s *bellService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Notification ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, id, "Failed to delete notification")
	}

	s.cfg.Log.Info("Notification deleted", "id", id)
	return nil
}

func (s *bellService) mapRepoError(err error, id, internalMsg string) error {
	if errors.Is(err, notiferrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Notification", id)
	}
	if errors.Is(err, notiferrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid notification ID format")
	}
	return apperrors.Internal(internalMsg, err)
}
