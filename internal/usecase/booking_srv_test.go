package usecase_test

import (
	"context"
	"testing"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedUser(store *fakeStore) uuid.UUID {
	id := uuid.New()
	store.users[id] = entity.User{
		Base:         entity.Base{ID: id, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Email:        "traveller@example.com",
		PasswordHash: "$2a$10$fakehash",
		IsActive:     true,
	}
	return id
}

func seedBooking(store *fakeStore, userID *uuid.UUID, status entity.BookingStatus, expiresAt *time.Time) uuid.UUID {
	id := uuid.New()
	store.bookings[id] = entity.Booking{
		Base:        entity.Base{ID: id, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		UserID:      userID,
		Source:      "api",
		Status:      status,
		BookingData: entity.Document{},
		Currency:    "VND",
		ExpiresAt:   expiresAt,
	}
	return id
}

func seedLink(store *fakeStore, bookingID uuid.UUID, firstName, lastName string) uuid.UUID {
	id := uuid.New()
	store.links[id] = entity.BookingPassenger{
		BaseSimple:    entity.BaseSimple{ID: id, CreatedAt: time.Now()},
		BookingID:     bookingID,
		PassengerType: entity.PassengerTypeAdult,
		FirstName:     firstName,
		LastName:      lastName,
	}
	return id
}

func newBookingService(store *fakeStore) usecase.BookingService {
	return usecase.NewBookingService(store.repository(), testConfig(), nil, zap.NewNop())
}

func TestCreateBookingDefaultsAndHold(t *testing.T) {
	store := newFakeStore()
	svc := newBookingService(store)
	userID := seedUser(store)

	before := time.Now()
	resp, err := svc.CreateBooking(context.Background(), &userID, &request.CreateBookingRequest{})
	require.NoError(t, err)

	assert.Equal(t, entity.BookingStatusPending, resp.Status)
	assert.Equal(t, "api", resp.Source)
	assert.Equal(t, "VND", resp.Currency)
	require.NotNil(t, resp.UserID)
	assert.Equal(t, userID.String(), *resp.UserID)

	// Default hold from config is 30 minutes.
	require.NotNil(t, resp.ExpiresAt)
	assert.WithinDuration(t, before.Add(30*time.Minute), *resp.ExpiresAt, 5*time.Second)
}

func TestCreateBookingCustomHold(t *testing.T) {
	store := newFakeStore()
	svc := newBookingService(store)

	hold := 120
	pnr := "ABC123"
	price := 1500000.0
	resp, err := svc.CreateBooking(context.Background(), nil, &request.CreateBookingRequest{
		Source:      "agent",
		PNR:         &pnr,
		TotalPrice:  &price,
		Currency:    "USD",
		HoldMinutes: &hold,
	})
	require.NoError(t, err)

	assert.Equal(t, "agent", resp.Source)
	assert.Equal(t, "USD", resp.Currency)
	assert.Nil(t, resp.UserID)
	require.NotNil(t, resp.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), *resp.ExpiresAt, 5*time.Second)

	// The booking is findable by its record locator.
	found, err := svc.GetBookingByPNR(context.Background(), "ABC123")
	require.NoError(t, err)
	assert.Equal(t, resp.ID, found.ID)
}

func TestConfirmBooking(t *testing.T) {
	store := newFakeStore()
	svc := newBookingService(store)
	id := seedBooking(store, nil, entity.BookingStatusPending, nil)

	resp, err := svc.ConfirmBooking(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, resp.Status)
}

func TestConfirmBookingWrongState(t *testing.T) {
	store := newFakeStore()
	svc := newBookingService(store)
	id := seedBooking(store, nil, entity.BookingStatusCancelled, nil)

	_, err := svc.ConfirmBooking(context.Background(), id)
	require.Error(t, err)
	// The booking exists but is in the wrong state, so the caller sees an
	// invalid transition, not a missing resource.
	assert.ErrorIs(t, err, entity.ErrInvalidTransition)
	assert.NotErrorIs(t, err, entity.ErrNotFound)
}

func TestConfirmBookingMissing(t *testing.T) {
	store := newFakeStore()
	svc := newBookingService(store)

	_, err := svc.ConfirmBooking(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestCancelBookingClearsHold(t *testing.T) {
	store := newFakeStore()
	svc := newBookingService(store)
	expires := time.Now().Add(30 * time.Minute)
	id := seedBooking(store, nil, entity.BookingStatusPending, &expires)

	resp, err := svc.CancelBooking(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, resp.Status)
	assert.Nil(t, resp.ExpiresAt)
}

func TestCancelTicketedBooking(t *testing.T) {
	store := newFakeStore()
	svc := newBookingService(store)
	id := seedBooking(store, nil, entity.BookingStatusTicketed, nil)

	_, err := svc.CancelBooking(context.Background(), id)
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrInvalidTransition)
}

func TestTicketBooking(t *testing.T) {
	store := newFakeStore()
	svc := newBookingService(store)
	id := seedBooking(store, nil, entity.BookingStatusConfirmed, nil)
	link1 := seedLink(store, id, "Linh", "Nguyen")
	link2 := seedLink(store, id, "Minh", "Tran")

	resp, err := svc.TicketBooking(context.Background(), id, &request.TicketBookingRequest{
		Tickets: map[string]string{
			link1.String(): "738-2400000001",
			link2.String(): "738-2400000002",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusTicketed, resp.Status)

	links, err := svc.ListPassengers(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, links, 2)
	for _, link := range links {
		require.NotNil(t, link.TicketNumber)
		assert.NotEmpty(t, *link.TicketNumber)
	}
}

func TestTicketBookingIncompleteCoverage(t *testing.T) {
	store := newFakeStore()
	svc := newBookingService(store)
	id := seedBooking(store, nil, entity.BookingStatusConfirmed, nil)
	link1 := seedLink(store, id, "Linh", "Nguyen")
	seedLink(store, id, "Minh", "Tran")

	_, err := svc.TicketBooking(context.Background(), id, &request.TicketBookingRequest{
		Tickets: map[string]string{link1.String(): "738-2400000001"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrIncompleteTicketing)

	// The partial attempt must not flip the status or write any numbers.
	assert.Equal(t, entity.BookingStatusConfirmed, store.bookings[id].Status)
	assert.Nil(t, store.links[link1].TicketNumber)
}

func TestTicketBookingWithoutPassengers(t *testing.T) {
	store := newFakeStore()
	svc := newBookingService(store)
	id := seedBooking(store, nil, entity.BookingStatusConfirmed, nil)

	_, err := svc.TicketBooking(context.Background(), id, &request.TicketBookingRequest{
		Tickets: map[string]string{uuid.NewString(): "738-2400000001"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrIncompleteTicketing)
}

func TestTicketBookingRejectsEmptyNumber(t *testing.T) {
	store := newFakeStore()
	svc := newBookingService(store)
	id := seedBooking(store, nil, entity.BookingStatusConfirmed, nil)
	link := seedLink(store, id, "Linh", "Nguyen")

	_, err := svc.TicketBooking(context.Background(), id, &request.TicketBookingRequest{
		Tickets: map[string]string{link.String(): ""},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty ticket number")
}

func TestReapExpired(t *testing.T) {
	store := newFakeStore()
	svc := newBookingService(store)

	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(30 * time.Minute)
	expired1 := seedBooking(store, nil, entity.BookingStatusPending, &past)
	expired2 := seedBooking(store, nil, entity.BookingStatusPending, &past)
	live := seedBooking(store, nil, entity.BookingStatusPending, &future)
	confirmed := seedBooking(store, nil, entity.BookingStatusConfirmed, &past)

	resp, err := svc.ReapExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Reaped)
	assert.ElementsMatch(t, []string{expired1.String(), expired2.String()}, resp.BookingIDs)

	// Only pending holds past their deadline are swept.
	assert.Equal(t, entity.BookingStatusCancelled, store.bookings[expired1].Status)
	assert.Equal(t, entity.BookingStatusPending, store.bookings[live].Status)
	assert.Equal(t, entity.BookingStatusConfirmed, store.bookings[confirmed].Status)

	// A second sweep finds nothing.
	resp, err = svc.ReapExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Reaped)
}

func TestAddPassengerSnapshotImmutable(t *testing.T) {
	store := newFakeStore()
	svc := newBookingService(store)
	userID := seedUser(store)
	bookingID := seedBooking(store, &userID, entity.BookingStatusPending, nil)

	passengerID := uuid.New()
	store.passengers[passengerID] = entity.Passenger{
		Base:          entity.Base{ID: passengerID, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		UserID:        userID,
		PassengerType: entity.PassengerTypeAdult,
		FirstName:     "Linh",
		LastName:      "Nguyen",
	}

	pid := passengerID.String()
	link, err := svc.AddPassenger(context.Background(), bookingID, userID, &request.AddBookingPassengerRequest{
		PassengerID: &pid,
	})
	require.NoError(t, err)
	assert.Equal(t, "Linh", link.FirstName)
	assert.Equal(t, "Nguyen", link.LastName)

	// Rename the saved passenger after linking.
	p := store.passengers[passengerID]
	p.LastName = "Pham"
	store.passengers[passengerID] = p

	links, err := svc.ListPassengers(context.Background(), bookingID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "Nguyen", links[0].LastName, "snapshot must not follow passenger edits")
}

func TestAddPassengerOwnership(t *testing.T) {
	store := newFakeStore()
	svc := newBookingService(store)
	owner := seedUser(store)
	bookingID := seedBooking(store, &owner, entity.BookingStatusPending, nil)

	// Passenger belongs to somebody else.
	strangerID := uuid.New()
	store.users[strangerID] = entity.User{Base: entity.Base{ID: strangerID}, Email: "other@example.com", IsActive: true}
	passengerID := uuid.New()
	store.passengers[passengerID] = entity.Passenger{
		Base:      entity.Base{ID: passengerID},
		UserID:    strangerID,
		FirstName: "Minh",
		LastName:  "Tran",
	}

	pid := passengerID.String()
	_, err := svc.AddPassenger(context.Background(), bookingID, owner, &request.AddBookingPassengerRequest{
		PassengerID: &pid,
	})
	require.Error(t, err)
	// Existence is not leaked: a foreign passenger reads as missing.
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestAddPassengerInline(t *testing.T) {
	store := newFakeStore()
	svc := newBookingService(store)
	userID := seedUser(store)
	bookingID := seedBooking(store, &userID, entity.BookingStatusConfirmed, nil)

	first, last, ptype, dob := "Bao", "Le", "CHD", "2015-06-01"
	link, err := svc.AddPassenger(context.Background(), bookingID, userID, &request.AddBookingPassengerRequest{
		PassengerType: &ptype,
		FirstName:     &first,
		LastName:      &last,
		DateOfBirth:   &dob,
	})
	require.NoError(t, err)
	assert.Nil(t, link.PassengerID)
	assert.Equal(t, "CHD", link.PassengerType)
	require.NotNil(t, link.DateOfBirth)
	assert.Equal(t, "2015-06-01", *link.DateOfBirth)
}

func TestAddPassengerFrozenAfterTicketing(t *testing.T) {
	store := newFakeStore()
	svc := newBookingService(store)
	userID := seedUser(store)
	bookingID := seedBooking(store, &userID, entity.BookingStatusTicketed, nil)

	first, last := "Bao", "Le"
	_, err := svc.AddPassenger(context.Background(), bookingID, userID, &request.AddBookingPassengerRequest{
		FirstName: &first,
		LastName:  &last,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrInvalidTransition)
}

func TestGetUserBookingsPagination(t *testing.T) {
	store := newFakeStore()
	svc := newBookingService(store)
	userID := seedUser(store)
	for i := 0; i < 5; i++ {
		seedBooking(store, &userID, entity.BookingStatusPending, nil)
	}

	resp, err := svc.GetUserBookings(context.Background(), userID, &request.PaginatedRequest{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, int64(5), resp.Pagination.Total)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
}

func TestUpdateBookingData(t *testing.T) {
	store := newFakeStore()
	svc := newBookingService(store)
	id := seedBooking(store, nil, entity.BookingStatusPending, nil)

	resp, err := svc.UpdateBookingData(context.Background(), id, &request.UpdateBookingDataRequest{
		BookingData: map[string]any{"flight": "VN-238", "cabin": "Y"},
	})
	require.NoError(t, err)
	assert.Equal(t, "VN-238", resp.BookingData["flight"])
}

func TestDeleteBookingRemovesLinks(t *testing.T) {
	store := newFakeStore()
	svc := newBookingService(store)
	id := seedBooking(store, nil, entity.BookingStatusCancelled, nil)
	seedLink(store, id, "Linh", "Nguyen")

	require.NoError(t, svc.DeleteBooking(context.Background(), id))
	assert.Empty(t, store.links)

	err := svc.DeleteBooking(context.Background(), id)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
