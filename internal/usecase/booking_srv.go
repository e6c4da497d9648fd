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
	"travel-booking/internal/kafka"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, userID *uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*response.BookingResponse, error)
	GetBookingByPNR(ctx context.Context, pnr string) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[*response.BookingResponse], error)

	ConfirmBooking(ctx context.Context, id uuid.UUID) (*response.BookingResponse, error)
	TicketBooking(ctx context.Context, id uuid.UUID, req *request.TicketBookingRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, id uuid.UUID) (*response.BookingResponse, error)
	ReapExpired(ctx context.Context) (*response.ReapResponse, error)

	AddPassenger(ctx context.Context, bookingID, userID uuid.UUID, req *request.AddBookingPassengerRequest) (*response.BookingPassengerResponse, error)
	ListPassengers(ctx context.Context, bookingID uuid.UUID) ([]*response.BookingPassengerResponse, error)
	UpdateBookingData(ctx context.Context, id uuid.UUID, req *request.UpdateBookingDataRequest) (*response.BookingResponse, error)
	DeleteBooking(ctx context.Context, id uuid.UUID) error
}

type bookingService struct {
	repo     *repository.Repository
	config   *utils.Config
	producer *kafka.Producer
	log      *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	config *utils.Config,
	producer *kafka.Producer,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:     repo,
		config:   config,
		producer: producer,
		log:      log,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID *uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	source := req.Source
	if source == "" {
		source = "api"
	}
	currency := req.Currency
	if currency == "" {
		currency = "VND"
	}

	// 2. Every new booking starts as a pending hold with a deadline.
	holdMinutes := s.config.Booking.HoldTTLMinutes
	if req.HoldMinutes != nil {
		holdMinutes = *req.HoldMinutes
	}

	now := time.Now()
	expiresAt := now.Add(time.Duration(holdMinutes) * time.Minute)

	bookingData := entity.Document(req.BookingData)
	if bookingData == nil {
		bookingData = entity.Document{}
	}

	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:      userID,
		PNR:         req.PNR,
		BookingCode: req.BookingCode,
		Source:      source,
		Status:      entity.BookingStatusPending,
		BookingData: bookingData,
		TotalPrice:  req.TotalPrice,
		Currency:    currency,
		ExpiresAt:   &expiresAt,
	}

	// 3. Save booking
	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		if errors.Is(err, entity.ErrDuplicateKey) {
			return nil, fmt.Errorf("pnr already exists: %w", err)
		}
		if errors.Is(err, entity.ErrIntegrityViolation) {
			return nil, fmt.Errorf("user not found: %w", entity.ErrNotFound)
		}
		s.log.Error("Failed to create booking", zap.Error(err))
		return nil, fmt.Errorf("failed to create booking")
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("source", booking.Source),
		zap.Time("expires_at", expiresAt))

	s.publishEvent(ctx, kafka.EventBookingCreated, booking)

	return response.BookingToResponse(booking), nil
}

func (s *bookingService) GetBooking(ctx context.Context, id uuid.UUID) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("booking not found: %w", err)
		}
		s.log.Error("Failed to find booking", zap.Error(err), zap.String("booking_id", id.String()))
		return nil, fmt.Errorf("failed to get booking")
	}

	return s.withPassengers(ctx, booking)
}

func (s *bookingService) GetBookingByPNR(ctx context.Context, pnr string) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByPNR(ctx, pnr)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("booking not found: %w", err)
		}
		s.log.Error("Failed to find booking by PNR", zap.Error(err), zap.String("pnr", pnr))
		return nil, fmt.Errorf("failed to get booking")
	}

	return s.withPassengers(ctx, booking)
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[*response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindByUserID(ctx, userID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to list bookings")
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count bookings", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to list bookings")
	}

	data := make([]*response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		data = append(data, response.BookingToResponse(b))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

// ==================== LIFECYCLE ====================

func (s *bookingService) ConfirmBooking(ctx context.Context, id uuid.UUID) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.Confirm(ctx, id)
	if err != nil {
		return nil, s.transitionError(ctx, id, "confirm", entity.BookingStatusConfirmed, err)
	}

	s.log.Info("Booking confirmed", zap.String("booking_id", id.String()))
	s.publishEvent(ctx, kafka.EventBookingConfirmed, booking)

	return response.BookingToResponse(booking), nil
}

func (s *bookingService) TicketBooking(ctx context.Context, id uuid.UUID, req *request.TicketBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	tickets := make(map[uuid.UUID]string, len(req.Tickets))
	for linkID, ticketNumber := range req.Tickets {
		parsed, err := uuid.Parse(linkID)
		if err != nil {
			return nil, fmt.Errorf("invalid booking passenger id %q", linkID)
		}
		if ticketNumber == "" {
			return nil, fmt.Errorf("empty ticket number for passenger %q", linkID)
		}
		tickets[parsed] = ticketNumber
	}

	booking, err := s.repo.Booking.Ticket(ctx, id, tickets)
	if err != nil {
		if errors.Is(err, entity.ErrIncompleteTicketing) {
			return nil, fmt.Errorf("every passenger needs a ticket number: %w", err)
		}
		return nil, s.transitionError(ctx, id, "ticket", entity.BookingStatusTicketed, err)
	}

	s.log.Info("Booking ticketed",
		zap.String("booking_id", id.String()),
		zap.Int("tickets", len(tickets)))
	s.publishEvent(ctx, kafka.EventBookingTicketed, booking)

	return response.BookingToResponse(booking), nil
}

func (s *bookingService) CancelBooking(ctx context.Context, id uuid.UUID) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.Cancel(ctx, id)
	if err != nil {
		return nil, s.transitionError(ctx, id, "cancel", entity.BookingStatusCancelled, err)
	}

	s.log.Info("Booking cancelled", zap.String("booking_id", id.String()))
	s.publishEvent(ctx, kafka.EventBookingCancelled, booking)

	return response.BookingToResponse(booking), nil
}

// ReapExpired cancels every pending booking whose hold deadline has passed.
// Safe to call from overlapping sweeps: the store only matches rows still
// pending, so each booking is reaped exactly once.
func (s *bookingService) ReapExpired(ctx context.Context) (*response.ReapResponse, error) {
	reaped, err := s.repo.Booking.ReapExpired(ctx)
	if err != nil {
		s.log.Error("Failed to reap expired bookings", zap.Error(err))
		return nil, fmt.Errorf("failed to reap expired bookings")
	}

	ids := make([]string, 0, len(reaped))
	for _, booking := range reaped {
		ids = append(ids, booking.ID.String())
		s.publishEvent(ctx, kafka.EventBookingExpired, booking)
	}

	if len(reaped) > 0 {
		s.log.Info("Expired bookings reaped", zap.Int("count", len(reaped)))
	}

	return &response.ReapResponse{Reaped: len(reaped), BookingIDs: ids}, nil
}

// ==================== PASSENGERS ====================

func (s *bookingService) AddPassenger(ctx context.Context, bookingID, userID uuid.UUID, req *request.AddBookingPassengerRequest) (*response.BookingPassengerResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Booking must exist and still be open
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("booking not found: %w", err)
		}
		s.log.Error("Failed to find booking", zap.Error(err), zap.String("booking_id", bookingID.String()))
		return nil, fmt.Errorf("failed to add passenger")
	}
	if booking.IsTerminal() || booking.Status == entity.BookingStatusTicketed {
		return nil, fmt.Errorf("booking is %s, passengers are frozen: %w",
			booking.Status, entity.ErrInvalidTransition)
	}

	// 3. Build the snapshot, either from the stored passenger or inline
	link := &entity.BookingPassenger{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		BookingID:     bookingID,
		PassengerType: entity.PassengerTypeAdult,
	}

	if req.PassengerID != nil {
		passengerID, err := uuid.Parse(*req.PassengerID)
		if err != nil {
			return nil, fmt.Errorf("invalid passenger id")
		}

		passenger, err := s.repo.Passenger.FindByID(ctx, passengerID)
		if err != nil {
			if errors.Is(err, entity.ErrNotFound) {
				return nil, fmt.Errorf("passenger not found: %w", err)
			}
			s.log.Error("Failed to find passenger", zap.Error(err),
				zap.String("passenger_id", passengerID.String()))
			return nil, fmt.Errorf("failed to add passenger")
		}
		if passenger.UserID != userID {
			return nil, fmt.Errorf("passenger not found: %w", entity.ErrNotFound)
		}

		// Copy the fields now; later edits to the saved passenger must not
		// leak into this booking.
		link.PassengerID = &passenger.ID
		link.PassengerType = passenger.PassengerType
		link.Title = passenger.Title
		link.FirstName = passenger.FirstName
		link.LastName = passenger.LastName
		link.DateOfBirth = passenger.DateOfBirth
	} else {
		if req.FirstName == nil || req.LastName == nil {
			return nil, fmt.Errorf("first_name and last_name are required without passenger_id")
		}
		if req.PassengerType != nil {
			link.PassengerType = entity.PassengerType(*req.PassengerType)
		}
		dob, err := parseDate(req.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("invalid date_of_birth")
		}
		link.Title = req.Title
		link.FirstName = *req.FirstName
		link.LastName = *req.LastName
		link.DateOfBirth = dob
	}

	// 4. Save link
	if err := s.repo.BookingPassenger.Create(ctx, link); err != nil {
		if errors.Is(err, entity.ErrIntegrityViolation) {
			return nil, fmt.Errorf("booking not found: %w", entity.ErrNotFound)
		}
		s.log.Error("Failed to link passenger", zap.Error(err),
			zap.String("booking_id", bookingID.String()))
		return nil, fmt.Errorf("failed to add passenger")
	}

	s.log.Info("Passenger linked to booking",
		zap.String("booking_id", bookingID.String()),
		zap.String("link_id", link.ID.String()))

	return response.BookingPassengerToResponse(link), nil
}

func (s *bookingService) ListPassengers(ctx context.Context, bookingID uuid.UUID) ([]*response.BookingPassengerResponse, error) {
	links, err := s.repo.BookingPassenger.FindByBookingID(ctx, bookingID)
	if err != nil {
		s.log.Error("Failed to list booking passengers", zap.Error(err),
			zap.String("booking_id", bookingID.String()))
		return nil, fmt.Errorf("failed to list passengers")
	}

	result := make([]*response.BookingPassengerResponse, 0, len(links))
	for _, link := range links {
		result = append(result, response.BookingPassengerToResponse(link))
	}
	return result, nil
}

func (s *bookingService) UpdateBookingData(ctx context.Context, id uuid.UUID, req *request.UpdateBookingDataRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if err := s.repo.Booking.UpdateData(ctx, id, entity.Document(req.BookingData)); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("booking not found: %w", err)
		}
		s.log.Error("Failed to update booking data", zap.Error(err),
			zap.String("booking_id", id.String()))
		return nil, fmt.Errorf("failed to update booking data")
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to reload booking", zap.Error(err), zap.String("booking_id", id.String()))
		return nil, fmt.Errorf("failed to update booking data")
	}

	return response.BookingToResponse(booking), nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Booking.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return fmt.Errorf("booking not found: %w", err)
		}
		s.log.Error("Failed to delete booking", zap.Error(err), zap.String("booking_id", id.String()))
		return fmt.Errorf("failed to delete booking")
	}

	s.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}

// ==================== HELPER METHODS ====================

// transitionError tells a missing booking apart from one in the wrong state.
// The conditional UPDATE matches zero rows in both cases, so re-read once.
func (s *bookingService) transitionError(ctx context.Context, id uuid.UUID, verb string, target entity.BookingStatus, err error) error {
	if !errors.Is(err, entity.ErrNotFound) {
		s.log.Error("Failed to "+verb+" booking", zap.Error(err), zap.String("booking_id", id.String()))
		return fmt.Errorf("failed to %s booking", verb)
	}

	booking, findErr := s.repo.Booking.FindByID(ctx, id)
	if findErr != nil {
		return fmt.Errorf("booking not found: %w", entity.ErrNotFound)
	}

	s.log.Warn("Rejected booking transition",
		zap.String("booking_id", id.String()),
		zap.String("from", string(booking.Status)),
		zap.String("to", string(target)))

	return fmt.Errorf("cannot %s booking in status %s: %w", verb, booking.Status, entity.ErrInvalidTransition)
}

func (s *bookingService) withPassengers(ctx context.Context, booking *entity.Booking) (*response.BookingResponse, error) {
	resp := response.BookingToResponse(booking)

	links, err := s.repo.BookingPassenger.FindByBookingID(ctx, booking.ID)
	if err != nil {
		s.log.Error("Failed to load booking passengers", zap.Error(err),
			zap.String("booking_id", booking.ID.String()))
		return nil, fmt.Errorf("failed to get booking")
	}

	for _, link := range links {
		resp.Passengers = append(resp.Passengers, response.BookingPassengerToResponse(link))
	}
	return resp, nil
}

func (s *bookingService) publishEvent(ctx context.Context, eventType string, booking *entity.Booking) {
	if s.producer == nil {
		return
	}

	event := kafka.BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID.String(),
		Source:     booking.Source,
		Status:     string(booking.Status),
		Currency:   booking.Currency,
		TotalPrice: booking.TotalPrice,
		ExpiresAt:  booking.ExpiresAt,
	}
	if booking.UserID != nil {
		event.UserID = booking.UserID.String()
	}
	if booking.PNR != nil {
		event.PNR = *booking.PNR
	}

	topic := s.config.Kafka.BookingEventsTopic
	if err := s.producer.Publish(ctx, topic, event.BookingID, event); err != nil {
		// Events are best effort, the booking is already persisted.
		s.log.Warn("Failed to publish booking event",
			zap.Error(err),
			zap.String("type", eventType),
			zap.String("booking_id", event.BookingID))
	}
}
