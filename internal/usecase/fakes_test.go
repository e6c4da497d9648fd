package usecase_test

import (
	"context"
	"fmt"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for the persistence layer. It mirrors
// the store's guard semantics: conditional transitions report ErrNotFound
// when no row matches, and unique indexes report ErrDuplicateKey. The
// per-interface wrappers below share one store so cross-table effects
// (cascades, snapshot links) behave like the real schema.
type fakeStore struct {
	users      map[uuid.UUID]entity.User
	passengers map[uuid.UUID]entity.Passenger
	ffCards    map[uuid.UUID]entity.FrequentFlyerCard
	bookings   map[uuid.UUID]entity.Booking
	links      map[uuid.UUID]entity.BookingPassenger
	sessions   map[uuid.UUID]entity.Session
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      make(map[uuid.UUID]entity.User),
		passengers: make(map[uuid.UUID]entity.Passenger),
		ffCards:    make(map[uuid.UUID]entity.FrequentFlyerCard),
		bookings:   make(map[uuid.UUID]entity.Booking),
		links:      make(map[uuid.UUID]entity.BookingPassenger),
		sessions:   make(map[uuid.UUID]entity.Session),
	}
}

func (f *fakeStore) repository() *repository.Repository {
	return &repository.Repository{
		User:             &fakeUserRepo{f},
		Passenger:        &fakePassengerRepo{f},
		FFCard:           &fakeFFCardRepo{f},
		Booking:          &fakeBookingRepo{f},
		BookingPassenger: &fakeLinkRepo{f},
		Session:          &fakeSessionRepo{f},
	}
}

func testConfig() *utils.Config {
	return &utils.Config{
		Session: utils.SessionConfig{TTLHours: 24, CacheTTLMinutes: 30},
		Booking: utils.BookingConfig{HoldTTLMinutes: 30, SweepMinutes: 5},
		Kafka:   utils.KafkaConfig{BookingEventsTopic: "booking-events"},
	}
}

// ==================== USERS ====================

type fakeUserRepo struct{ s *fakeStore }

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	for _, existing := range r.s.users {
		if existing.Email == user.Email {
			return fmt.Errorf("create user %s: %w", user.Email, entity.ErrDuplicateKey)
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.s.users[id]
	if !ok {
		return nil, fmt.Errorf("find user: %w", entity.ErrNotFound)
	}
	return &user, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range r.s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, fmt.Errorf("find user by email: %w", entity.ErrNotFound)
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	if _, ok := r.s.users[user.ID]; !ok {
		return fmt.Errorf("update user: %w", entity.ErrNotFound)
	}
	updated := *user
	updated.UpdatedAt = time.Now()
	r.s.users[user.ID] = updated
	return nil
}

func (r *fakeUserRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	user, ok := r.s.users[id]
	if !ok {
		return fmt.Errorf("set user active: %w", entity.ErrNotFound)
	}
	user.IsActive = active
	user.UpdatedAt = time.Now()
	r.s.users[id] = user
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.s.users[id]; !ok {
		return fmt.Errorf("delete user: %w", entity.ErrNotFound)
	}
	for pid, p := range r.s.passengers {
		if p.UserID == id {
			r.s.nullifyLinks(pid)
			delete(r.s.passengers, pid)
		}
	}
	for cid, c := range r.s.ffCards {
		if c.UserID == id {
			delete(r.s.ffCards, cid)
		}
	}
	for sid, s := range r.s.sessions {
		if s.UserID != nil && *s.UserID == id {
			delete(r.s.sessions, sid)
		}
	}
	for bid, b := range r.s.bookings {
		if b.UserID != nil && *b.UserID == id {
			b.UserID = nil
			b.UpdatedAt = time.Now()
			r.s.bookings[bid] = b
		}
	}
	delete(r.s.users, id)
	return nil
}

// ==================== PASSENGERS ====================

type fakePassengerRepo struct{ s *fakeStore }

func (r *fakePassengerRepo) Create(ctx context.Context, passenger *entity.Passenger) error {
	if _, ok := r.s.users[passenger.UserID]; !ok {
		return fmt.Errorf("create passenger: %w", entity.ErrIntegrityViolation)
	}
	r.s.passengers[passenger.ID] = *passenger
	return nil
}

func (r *fakePassengerRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Passenger, error) {
	p, ok := r.s.passengers[id]
	if !ok {
		return nil, fmt.Errorf("find passenger: %w", entity.ErrNotFound)
	}
	return &p, nil
}

func (r *fakePassengerRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Passenger, error) {
	var result []*entity.Passenger
	for _, p := range r.s.passengers {
		if p.UserID == userID {
			copied := p
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakePassengerRepo) Update(ctx context.Context, passenger *entity.Passenger) error {
	if _, ok := r.s.passengers[passenger.ID]; !ok {
		return fmt.Errorf("update passenger: %w", entity.ErrNotFound)
	}
	updated := *passenger
	updated.UpdatedAt = time.Now()
	r.s.passengers[passenger.ID] = updated
	return nil
}

func (r *fakePassengerRepo) SetDefault(ctx context.Context, userID, passengerID uuid.UUID) error {
	target, ok := r.s.passengers[passengerID]
	if !ok || target.UserID != userID {
		return fmt.Errorf("set default passenger: %w", entity.ErrNotFound)
	}
	for pid, p := range r.s.passengers {
		if p.UserID == userID && p.IsDefault && pid != passengerID {
			p.IsDefault = false
			r.s.passengers[pid] = p
		}
	}
	target.IsDefault = true
	r.s.passengers[passengerID] = target
	return nil
}

func (r *fakePassengerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.s.passengers[id]; !ok {
		return fmt.Errorf("delete passenger: %w", entity.ErrNotFound)
	}
	r.s.nullifyLinks(id)
	delete(r.s.passengers, id)
	return nil
}

func (f *fakeStore) nullifyLinks(passengerID uuid.UUID) {
	for lid, link := range f.links {
		if link.PassengerID != nil && *link.PassengerID == passengerID {
			link.PassengerID = nil
			f.links[lid] = link
		}
	}
}

// ==================== FREQUENT FLYER CARDS ====================

type fakeFFCardRepo struct{ s *fakeStore }

func (r *fakeFFCardRepo) Create(ctx context.Context, card *entity.FrequentFlyerCard) error {
	for _, existing := range r.s.ffCards {
		if existing.UserID == card.UserID &&
			existing.AirlineCode == card.AirlineCode &&
			existing.CardNumber == card.CardNumber {
			return fmt.Errorf("create FF card: %w", entity.ErrDuplicateKey)
		}
	}
	r.s.ffCards[card.ID] = *card
	return nil
}

func (r *fakeFFCardRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.FrequentFlyerCard, error) {
	var result []*entity.FrequentFlyerCard
	for _, card := range r.s.ffCards {
		if card.UserID == userID {
			copied := card
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeFFCardRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	card, ok := r.s.ffCards[id]
	if !ok || card.UserID != userID {
		return fmt.Errorf("delete FF card: %w", entity.ErrNotFound)
	}
	delete(r.s.ffCards, id)
	return nil
}

// ==================== BOOKINGS ====================

type fakeBookingRepo struct{ s *fakeStore }

func (r *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	r.s.bookings[booking.ID] = *booking
	return nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, fmt.Errorf("find booking: %w", entity.ErrNotFound)
	}
	return &b, nil
}

func (r *fakeBookingRepo) FindByPNR(ctx context.Context, pnr string) (*entity.Booking, error) {
	for _, b := range r.s.bookings {
		if b.PNR != nil && *b.PNR == pnr {
			copied := b
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("find booking by PNR: %w", entity.ErrNotFound)
}

func (r *fakeBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	var result []*entity.Booking
	for _, b := range r.s.bookings {
		if b.UserID != nil && *b.UserID == userID {
			copied := b
			result = append(result, &copied)
		}
	}
	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]
	if limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

func (r *fakeBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, b := range r.s.bookings {
		if b.UserID != nil && *b.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) Confirm(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	b, ok := r.s.bookings[id]
	if !ok || b.Status != entity.BookingStatusPending {
		return nil, fmt.Errorf("confirm booking: %w", entity.ErrNotFound)
	}
	b.Status = entity.BookingStatusConfirmed
	b.UpdatedAt = time.Now()
	r.s.bookings[id] = b
	return &b, nil
}

func (r *fakeBookingRepo) Ticket(ctx context.Context, id uuid.UUID, tickets map[uuid.UUID]string) (*entity.Booking, error) {
	var linkIDs []uuid.UUID
	for lid, link := range r.s.links {
		if link.BookingID == id {
			linkIDs = append(linkIDs, lid)
		}
	}

	if len(linkIDs) == 0 || len(tickets) != len(linkIDs) {
		return nil, fmt.Errorf("ticket booking: %w", entity.ErrIncompleteTicketing)
	}
	for _, lid := range linkIDs {
		if _, ok := tickets[lid]; !ok {
			return nil, fmt.Errorf("ticket booking: %w", entity.ErrIncompleteTicketing)
		}
	}

	b, ok := r.s.bookings[id]
	if !ok || b.Status != entity.BookingStatusConfirmed {
		return nil, fmt.Errorf("ticket booking: %w", entity.ErrNotFound)
	}

	for _, lid := range linkIDs {
		link := r.s.links[lid]
		number := tickets[lid]
		link.TicketNumber = &number
		r.s.links[lid] = link
	}

	b.Status = entity.BookingStatusTicketed
	b.UpdatedAt = time.Now()
	r.s.bookings[id] = b
	return &b, nil
}

func (r *fakeBookingRepo) Cancel(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	b, ok := r.s.bookings[id]
	if !ok || (b.Status != entity.BookingStatusPending && b.Status != entity.BookingStatusConfirmed) {
		return nil, fmt.Errorf("cancel booking: %w", entity.ErrNotFound)
	}
	b.Status = entity.BookingStatusCancelled
	b.ExpiresAt = nil
	b.UpdatedAt = time.Now()
	r.s.bookings[id] = b
	return &b, nil
}

func (r *fakeBookingRepo) ReapExpired(ctx context.Context) ([]*entity.Booking, error) {
	now := time.Now()
	var reaped []*entity.Booking
	for id, b := range r.s.bookings {
		if b.Status == entity.BookingStatusPending && b.ExpiresAt != nil && b.ExpiresAt.Before(now) {
			b.Status = entity.BookingStatusCancelled
			b.ExpiresAt = nil
			b.UpdatedAt = now
			r.s.bookings[id] = b
			copied := b
			reaped = append(reaped, &copied)
		}
	}
	return reaped, nil
}

func (r *fakeBookingRepo) UpdateData(ctx context.Context, id uuid.UUID, data entity.Document) error {
	b, ok := r.s.bookings[id]
	if !ok {
		return fmt.Errorf("update booking data: %w", entity.ErrNotFound)
	}
	b.BookingData = data
	b.UpdatedAt = time.Now()
	r.s.bookings[id] = b
	return nil
}

func (r *fakeBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.s.bookings[id]; !ok {
		return fmt.Errorf("delete booking: %w", entity.ErrNotFound)
	}
	for lid, link := range r.s.links {
		if link.BookingID == id {
			delete(r.s.links, lid)
		}
	}
	delete(r.s.bookings, id)
	return nil
}

// ==================== BOOKING PASSENGERS ====================

type fakeLinkRepo struct{ s *fakeStore }

func (r *fakeLinkRepo) Create(ctx context.Context, link *entity.BookingPassenger) error {
	if _, ok := r.s.bookings[link.BookingID]; !ok {
		return fmt.Errorf("create passenger link: %w", entity.ErrIntegrityViolation)
	}
	r.s.links[link.ID] = *link
	return nil
}

func (r *fakeLinkRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingPassenger, error) {
	var result []*entity.BookingPassenger
	for _, link := range r.s.links {
		if link.BookingID == bookingID {
			copied := link
			result = append(result, &copied)
		}
	}
	return result, nil
}

// ==================== SESSIONS ====================

type fakeSessionRepo struct{ s *fakeStore }

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	for _, existing := range r.s.sessions {
		if existing.SessionToken == session.SessionToken {
			return fmt.Errorf("create session: %w", entity.ErrDuplicateKey)
		}
	}
	r.s.sessions[session.ID] = *session
	return nil
}

func (r *fakeSessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	s, ok := r.s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("find session: %w", entity.ErrNotFound)
	}
	return &s, nil
}

func (r *fakeSessionRepo) FindByToken(ctx context.Context, token string) (*entity.Session, error) {
	for _, s := range r.s.sessions {
		if s.SessionToken == token {
			copied := s
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("find session by token: %w", entity.ErrNotFound)
}

func (r *fakeSessionRepo) SaveState(ctx context.Context, id uuid.UUID, agentState, context entity.Document) (*entity.Session, error) {
	s, ok := r.s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("save session state: %w", entity.ErrNotFound)
	}
	s.AgentState = agentState
	s.Context = context
	s.UpdatedAt = time.Now()
	r.s.sessions[id] = s
	return &s, nil
}

func (r *fakeSessionRepo) Touch(ctx context.Context, id uuid.UUID, expiresAt time.Time) error {
	s, ok := r.s.sessions[id]
	if !ok {
		return fmt.Errorf("touch session: %w", entity.ErrNotFound)
	}
	s.ExpiresAt = &expiresAt
	s.UpdatedAt = time.Now()
	r.s.sessions[id] = s
	return nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.s.sessions[id]; !ok {
		return fmt.Errorf("delete session: %w", entity.ErrNotFound)
	}
	delete(r.s.sessions, id)
	return nil
}

func (r *fakeSessionRepo) DeleteByToken(ctx context.Context, token string) error {
	for id, s := range r.s.sessions {
		if s.SessionToken == token {
			delete(r.s.sessions, id)
			return nil
		}
	}
	return fmt.Errorf("delete session by token: %w", entity.ErrNotFound)
}
