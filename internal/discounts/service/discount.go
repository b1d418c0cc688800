package service

import (
	"context"
	"errors"
	"sync"

	discounterrors "bukid/internal/discounts/errors"
	"bukid/internal/discounts/repository"
	"bukid/internal/discounts/validator"
	"bukid/pkg/config"
	apperrors "bukid/pkg/errors"
	"bukid/pkg/model"
	"bukid/pkg/sanitizer"
)

// BookingGateway is the slice of the bookings API the discount workflow
// needs: verifying the target booking and settling an approved amount.
type BookingGateway interface {
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	ApplyDiscount(ctx context.Context, id string, amount float64) error
}

// DiscountService runs the discount request workflow. Requests are created
// pending; a reviewer then approves, rejects, or modifies them. Reviews are
// final, and approval settles the amount against the booking's balance.
type DiscountService interface {
	Create(ctx context.Context, discount *model.Discount) error
	GetByID(ctx context.Context, id string) (*model.Discount, error)
	GetAll(ctx context.Context, status model.DiscountStatus, limit int, offset int64) ([]*model.Discount, int64, error)
	Approve(ctx context.Context, id string, review *model.DiscountReview) error
	Reject(ctx context.Context, id string, review *model.DiscountReview) error
	Modify(ctx context.Context, id string, review *model.DiscountReview) error
	Delete(ctx context.Context, id string) error
}

type discountService struct {
	discounts repository.DiscountRepository
	bookings  BookingGateway
	validator *validator.DiscountValidator
	cfg       *config.Config
}

func NewDiscountService(
	discounts repository.DiscountRepository,
	bookings BookingGateway,
	validator *validator.DiscountValidator,
	cfg *config.Config,
) DiscountService {
	return &discountService{
		discounts: discounts,
		bookings:  bookings,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *discountService) Create(ctx context.Context, discount *model.Discount) error {
	discount.RequestedBy = sanitizer.NormalizeName(discount.RequestedBy)
	discount.Reason = sanitizer.TrimAndNormalize(discount.Reason)
	discount.Status = model.DiscountPending
	discount.ReviewedBy = ""
	discount.ReviewedAt = nil

	if err := s.validator.Validate(discount); err != nil {
		s.cfg.Log.Warn("Discount request validation failed", "error", err)
		return apperrors.Validation("Discount request validation failed", map[string]any{"error": err.Error()})
	}

	booking, err := s.bookings.GetByID(ctx, discount.BookingID)
	if err != nil {
		s.cfg.Log.Warn("Failed to verify booking for discount request",
			"booking_id", discount.BookingID, "error", err)
		return apperrors.Validation("Booking could not be verified",
			map[string]any{"booking_id": discount.BookingID})
	}
	if discount.Amount > booking.Balance {
		return apperrors.Validation("Discount exceeds the booking's outstanding balance",
			map[string]any{"amount": discount.Amount, "balance": booking.Balance})
	}

	if err := s.discounts.Create(ctx, discount); err != nil {
		s.cfg.Log.Error("Failed to create discount request", "error", err)
		return apperrors.Internal("Failed to create discount request", err)
	}

	s.cfg.Log.Info("Discount request created",
		"id", discount.ID, "booking_id", discount.BookingID, "amount", discount.Amount)
	return nil
}

func (s *discountService) GetByID(ctx context.Context, id string) (*model.Discount, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Discount request ID cannot be empty")
	}

	discount, err := s.discounts.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to retrieve discount request")
	}
	return discount, nil
}

func (s *discountService) GetAll(ctx context.Context, status model.DiscountStatus, limit int, offset int64) ([]*model.Discount, int64, error) {
	if status != "" && !status.IsValid() {
		return nil, 0, apperrors.InvalidInput("Unknown discount status filter")
	}

	var count int64
	var discounts []*model.Discount
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.discounts.Count(ctx, status)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count discount requests", "error", errCount)
			errCount = apperrors.Internal("Failed to count discount requests", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		discounts, errFind = s.discounts.FindAll(ctx, status, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list discount requests", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve discount requests", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return discounts, count, nil
}

// Approve marks the request approved, then settles the requested amount
// against the booking. The pending->approved transition is claimed first so
// two reviewers cannot both settle the same request; if the bookings call
// then fails the error is surfaced and the settlement must be retried by
// hand.
func (s *discountService) Approve(ctx context.Context, id string, review *model.DiscountReview) error {
	discount, err := s.beginReview(ctx, id, review)
	if err != nil {
		return err
	}

	if err := s.discounts.Review(ctx, id, model.DiscountApproved, review.ReviewedBy, discount.Amount); err != nil {
		return s.mapRepoError(err, id, "Failed to approve discount request")
	}

	if err := s.bookings.ApplyDiscount(ctx, discount.BookingID, discount.Amount); err != nil {
		s.cfg.Log.Error("Failed to settle approved discount against booking",
			"id", id, "booking_id", discount.BookingID, "error", err)
		return apperrors.Internal("Discount approved but could not be settled against the booking", err)
	}

	s.cfg.Log.Info("Discount request approved",
		"id", id, "booking_id", discount.BookingID, "amount", discount.Amount, "reviewed_by", review.ReviewedBy)
	return nil
}

func (s *discountService) Reject(ctx context.Context, id string, review *model.DiscountReview) error {
	discount, err := s.beginReview(ctx, id, review)
	if err != nil {
		return err
	}

	if err := s.discounts.Review(ctx, id, model.DiscountRejected, review.ReviewedBy, discount.Amount); err != nil {
		return s.mapRepoError(err, id, "Failed to reject discount request")
	}

	s.cfg.Log.Info("Discount request rejected", "id", id, "reviewed_by", review.ReviewedBy)
	return nil
}

// Modify approves the request at the reviewer's amount instead of the
// requested one.
func (s *discountService) Modify(ctx context.Context, id string, review *model.DiscountReview) error {
	if review.Amount <= 0 {
		return apperrors.InvalidInput("Modified amount must be greater than zero")
	}

	discount, err := s.beginReview(ctx, id, review)
	if err != nil {
		return err
	}

	if err := s.discounts.Review(ctx, id, model.DiscountModified, review.ReviewedBy, review.Amount); err != nil {
		return s.mapRepoError(err, id, "Failed to modify discount request")
	}

	if err := s.bookings.ApplyDiscount(ctx, discount.BookingID, review.Amount); err != nil {
		s.cfg.Log.Error("Failed to settle modified discount against booking",
			"id", id, "booking_id", discount.BookingID, "error", err)
		return apperrors.Internal("Discount modified but could not be settled against the booking", err)
	}

	s.cfg.Log.Info("Discount request modified",
		"id", id, "booking_id", discount.BookingID,
		"requested", discount.Amount, "granted", review.Amount, "reviewed_by", review.ReviewedBy)
	return nil
}

func (s *discountService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Discount request ID cannot be empty")
	}

	if err := s.discounts.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, id, "Failed to delete discount request")
	}

	s.cfg.Log.Info("Discount request deleted", "id", id)
	return nil
}

// beginReview validates the review payload and loads the pending request.
func (s *discountService) beginReview(ctx context.Context, id string, review *model.DiscountReview) (*model.Discount, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Discount request ID cannot be empty")
	}

	review.ReviewedBy = sanitizer.NormalizeName(review.ReviewedBy)
	if err := s.validator.ValidateReview(review); err != nil {
		return nil, apperrors.Validation("Invalid review input", map[string]any{"error": err.Error()})
	}

	discount, err := s.discounts.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to retrieve discount request")
	}
	if discount.Status != model.DiscountPending {
		return nil, apperrors.Conflict("Discount request has already been reviewed")
	}

	return discount, nil
}

func (s *discountService) mapRepoError(err error, id, internalMsg string) error {
	if errors.Is(err, discounterrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Discount request", id)
	}
	if errors.Is(err, discounterrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid discount request ID format")
	}
	if errors.Is(err, discounterrors.ErrNotPending) {
		return apperrors.Conflict("Discount request has already been reviewed")
	}
	return apperrors.Internal(internalMsg, err)
}
