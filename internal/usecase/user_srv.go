package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	DeactivateUser(ctx context.Context, userID uuid.UUID) error
	DeleteUser(ctx context.Context, userID uuid.UUID) error

	AddPassenger(ctx context.Context, userID uuid.UUID, req *request.CreatePassengerRequest) (*response.PassengerResponse, error)
	ListPassengers(ctx context.Context, userID uuid.UUID) ([]*response.PassengerResponse, error)
	UpdatePassenger(ctx context.Context, userID, passengerID uuid.UUID, req *request.UpdatePassengerRequest) (*response.PassengerResponse, error)
	SetDefaultPassenger(ctx context.Context, userID, passengerID uuid.UUID) error
	DeletePassenger(ctx context.Context, userID, passengerID uuid.UUID) error

	AddFrequentFlyerCard(ctx context.Context, userID uuid.UUID, req *request.CreateFrequentFlyerCardRequest) (*response.FrequentFlyerCardResponse, error)
	ListFrequentFlyerCards(ctx context.Context, userID uuid.UUID) ([]*response.FrequentFlyerCardResponse, error)
	DeleteFrequentFlyerCard(ctx context.Context, userID, cardID uuid.UUID) error
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("user not found: %w", err)
		}
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to get profile")
	}

	return response.UserToResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("user not found: %w", err)
		}
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to update profile")
	}

	if req.FullName != nil {
		user.FullName = req.FullName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to update user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to update profile")
	}

	// Re-read so the response carries the server-side updated_at.
	user, err = s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to reload user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to update profile")
	}

	return response.UserToResponse(user), nil
}

func (s *userService) DeactivateUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.User.SetActive(ctx, userID, false); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return fmt.Errorf("user not found: %w", err)
		}
		s.log.Error("Failed to deactivate user", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("failed to deactivate user")
	}

	s.log.Info("User deactivated", zap.String("user_id", userID.String()))
	return nil
}

// DeleteUser removes the account and everything owned by it. Bookings are
// kept with user_id set to NULL so booking history survives the account.
func (s *userService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.User.Delete(ctx, userID); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return fmt.Errorf("user not found: %w", err)
		}
		s.log.Error("Failed to delete user", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("failed to delete user")
	}

	s.log.Info("User deleted", zap.String("user_id", userID.String()))
	return nil
}

// ==================== PASSENGERS ====================

func (s *userService) AddPassenger(ctx context.Context, userID uuid.UUID, req *request.CreatePassengerRequest) (*response.PassengerResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("invalid date_of_birth")
	}
	passportExpiry, err := parseDate(req.PassportExpiry)
	if err != nil {
		return nil, fmt.Errorf("invalid passport_expiry")
	}

	passengerType := entity.PassengerTypeAdult
	if req.PassengerType != "" {
		passengerType = entity.PassengerType(req.PassengerType)
	}

	now := time.Now()
	passenger := &entity.Passenger{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:          userID,
		PassengerType:   passengerType,
		Title:           req.Title,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		DateOfBirth:     dob,
		Gender:          req.Gender,
		Nationality:     req.Nationality,
		PassportNumber:  req.PassportNumber,
		PassportExpiry:  passportExpiry,
		PassportCountry: req.PassportCountry,
		IsDefault:       false,
	}

	if err := s.repo.Passenger.Create(ctx, passenger); err != nil {
		if errors.Is(err, entity.ErrIntegrityViolation) {
			return nil, fmt.Errorf("user not found: %w", entity.ErrNotFound)
		}
		s.log.Error("Failed to create passenger", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to add passenger")
	}

	// The default flag goes through SetDefault so only one row can hold it.
	if req.IsDefault {
		if err := s.repo.Passenger.SetDefault(ctx, userID, passenger.ID); err != nil {
			s.log.Error("Failed to set default passenger", zap.Error(err),
				zap.String("passenger_id", passenger.ID.String()))
			return nil, fmt.Errorf("failed to set default passenger")
		}
		passenger.IsDefault = true
	}

	s.log.Info("Passenger added",
		zap.String("user_id", userID.String()),
		zap.String("passenger_id", passenger.ID.String()))

	return response.PassengerToResponse(passenger), nil
}

func (s *userService) ListPassengers(ctx context.Context, userID uuid.UUID) ([]*response.PassengerResponse, error) {
	passengers, err := s.repo.Passenger.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to list passengers", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to list passengers")
	}

	result := make([]*response.PassengerResponse, 0, len(passengers))
	for _, p := range passengers {
		result = append(result, response.PassengerToResponse(p))
	}
	return result, nil
}

func (s *userService) UpdatePassenger(ctx context.Context, userID, passengerID uuid.UUID, req *request.UpdatePassengerRequest) (*response.PassengerResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	passenger, err := s.findOwnedPassenger(ctx, userID, passengerID)
	if err != nil {
		return nil, err
	}

	if req.PassengerType != nil {
		passenger.PassengerType = entity.PassengerType(*req.PassengerType)
	}
	if req.Title != nil {
		passenger.Title = req.Title
	}
	if req.FirstName != nil {
		passenger.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		passenger.LastName = *req.LastName
	}
	if req.DateOfBirth != nil {
		dob, err := parseDate(req.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("invalid date_of_birth")
		}
		passenger.DateOfBirth = dob
	}
	if req.Gender != nil {
		passenger.Gender = req.Gender
	}
	if req.Nationality != nil {
		passenger.Nationality = req.Nationality
	}
	if req.PassportNumber != nil {
		passenger.PassportNumber = req.PassportNumber
	}
	if req.PassportExpiry != nil {
		expiry, err := parseDate(req.PassportExpiry)
		if err != nil {
			return nil, fmt.Errorf("invalid passport_expiry")
		}
		passenger.PassportExpiry = expiry
	}
	if req.PassportCountry != nil {
		passenger.PassportCountry = req.PassportCountry
	}

	if err := s.repo.Passenger.Update(ctx, passenger); err != nil {
		s.log.Error("Failed to update passenger", zap.Error(err),
			zap.String("passenger_id", passengerID.String()))
		return nil, fmt.Errorf("failed to update passenger")
	}

	passenger, err = s.repo.Passenger.FindByID(ctx, passengerID)
	if err != nil {
		s.log.Error("Failed to reload passenger", zap.Error(err),
			zap.String("passenger_id", passengerID.String()))
		return nil, fmt.Errorf("failed to update passenger")
	}

	return response.PassengerToResponse(passenger), nil
}

func (s *userService) SetDefaultPassenger(ctx context.Context, userID, passengerID uuid.UUID) error {
	if _, err := s.findOwnedPassenger(ctx, userID, passengerID); err != nil {
		return err
	}

	if err := s.repo.Passenger.SetDefault(ctx, userID, passengerID); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return fmt.Errorf("passenger not found: %w", err)
		}
		s.log.Error("Failed to set default passenger", zap.Error(err),
			zap.String("passenger_id", passengerID.String()))
		return fmt.Errorf("failed to set default passenger")
	}

	s.log.Info("Default passenger set",
		zap.String("user_id", userID.String()),
		zap.String("passenger_id", passengerID.String()))
	return nil
}

func (s *userService) DeletePassenger(ctx context.Context, userID, passengerID uuid.UUID) error {
	if _, err := s.findOwnedPassenger(ctx, userID, passengerID); err != nil {
		return err
	}

	if err := s.repo.Passenger.Delete(ctx, passengerID); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return fmt.Errorf("passenger not found: %w", err)
		}
		s.log.Error("Failed to delete passenger", zap.Error(err),
			zap.String("passenger_id", passengerID.String()))
		return fmt.Errorf("failed to delete passenger")
	}

	s.log.Info("Passenger deleted", zap.String("passenger_id", passengerID.String()))
	return nil
}

// ==================== FREQUENT FLYER CARDS ====================

func (s *userService) AddFrequentFlyerCard(ctx context.Context, userID uuid.UUID, req *request.CreateFrequentFlyerCardRequest) (*response.FrequentFlyerCardResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	card := &entity.FrequentFlyerCard{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:      userID,
		AirlineCode: req.AirlineCode,
		CardNumber:  req.CardNumber,
		CardType:    req.CardType,
	}

	if err := s.repo.FFCard.Create(ctx, card); err != nil {
		if errors.Is(err, entity.ErrDuplicateKey) {
			return nil, fmt.Errorf("card already registered for this airline: %w", err)
		}
		if errors.Is(err, entity.ErrIntegrityViolation) {
			return nil, fmt.Errorf("user not found: %w", entity.ErrNotFound)
		}
		s.log.Error("Failed to create frequent flyer card", zap.Error(err),
			zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to add frequent flyer card")
	}

	s.log.Info("Frequent flyer card added",
		zap.String("user_id", userID.String()),
		zap.String("airline_code", card.AirlineCode))

	return response.FrequentFlyerCardToResponse(card), nil
}

func (s *userService) ListFrequentFlyerCards(ctx context.Context, userID uuid.UUID) ([]*response.FrequentFlyerCardResponse, error) {
	cards, err := s.repo.FFCard.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to list frequent flyer cards", zap.Error(err),
			zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to list frequent flyer cards")
	}

	result := make([]*response.FrequentFlyerCardResponse, 0, len(cards))
	for _, card := range cards {
		result = append(result, response.FrequentFlyerCardToResponse(card))
	}
	return result, nil
}

func (s *userService) DeleteFrequentFlyerCard(ctx context.Context, userID, cardID uuid.UUID) error {
	if err := s.repo.FFCard.Delete(ctx, cardID, userID); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return fmt.Errorf("frequent flyer card not found: %w", err)
		}
		s.log.Error("Failed to delete frequent flyer card", zap.Error(err),
			zap.String("card_id", cardID.String()))
		return fmt.Errorf("failed to delete frequent flyer card")
	}

	s.log.Info("Frequent flyer card deleted", zap.String("card_id", cardID.String()))
	return nil
}

// ==================== HELPER METHODS ====================

// findOwnedPassenger hides other users' passengers behind not found.
func (s *userService) findOwnedPassenger(ctx context.Context, userID, passengerID uuid.UUID) (*entity.Passenger, error) {
	passenger, err := s.repo.Passenger.FindByID(ctx, passengerID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("passenger not found: %w", err)
		}
		s.log.Error("Failed to find passenger", zap.Error(err),
			zap.String("passenger_id", passengerID.String()))
		return nil, fmt.Errorf("failed to find passenger")
	}

	if passenger.UserID != userID {
		return nil, fmt.Errorf("passenger not found: %w", entity.ErrNotFound)
	}

	return passenger, nil
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
