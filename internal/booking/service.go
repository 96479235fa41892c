package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"staymate/internal/availability"
	"staymate/internal/events"
	"staymate/internal/shared/config"
	"staymate/internal/shared/constants"
	"staymate/internal/shared/upstream"
	"staymate/pkg/cache"
	"staymate/pkg/logger"
)

var (
	ErrDraftNotFound       = errors.New("booking draft not found")
	ErrDuplicateSubmission = errors.New("booking draft already submitted")
	ErrForbidden           = errors.New("booking does not belong to this user")
	ErrInvalidStatus       = errors.New("invalid booking status")
	ErrEmptyDateRange      = errors.New("check-in and check-out dates are required")
)

const enrichConcurrency = 8

// Service implements the booking flow: draft lifecycle, availability,
// submission and the enriched booking list views.
type Service interface {
	GetDraft(ctx context.Context, userID, hotelID int64) (*DraftView, error)
	SetDates(ctx context.Context, userID, hotelID int64, checkIn, checkOut string) (*DraftView, error)
	SetRooms(ctx context.Context, userID, hotelID int64, roomType string, count int) (*DraftView, error)
	Submit(ctx context.Context, userID, hotelID int64) (*SubmitResult, error)
	AvailableRooms(ctx context.Context, hotelID int64, checkIn, checkOut string) ([]upstream.Room, error)

	UserBookings(ctx context.Context, userID int64) ([]EnrichedBooking, error)
	HotelBookings(ctx context.Context, hotelID int64) ([]EnrichedBooking, error)
	AllBookings(ctx context.Context) ([]EnrichedBooking, error)
	Cancel(ctx context.Context, userID, bookingID int64, isAdmin bool) error
	UpdateStatus(ctx context.Context, bookingID int64, status string) error
}

type service struct {
	clients   *upstream.Clients
	cache     cache.Service
	publisher events.Publisher
	cfg       *config.Config
	log       *logger.Logger
}

func NewService(clients *upstream.Clients, cacheService cache.Service, publisher events.Publisher, cfg *config.Config, log *logger.Logger) Service {
	return &service{
		clients:   clients,
		cache:     cacheService,
		publisher: publisher,
		cfg:       cfg,
		log:       log,
	}
}

func (s *service) GetDraft(ctx context.Context, userID, hotelID int64) (*DraftView, error) {
	draft, err := s.loadOrInitDraft(ctx, userID, hotelID)
	if err != nil {
		return nil, err
	}
	return s.viewAndSave(ctx, draft, nil)
}

func (s *service) SetDates(ctx context.Context, userID, hotelID int64, checkIn, checkOut string) (*DraftView, error) {
	draft, err := s.loadOrInitDraft(ctx, userID, hotelID)
	if err != nil {
		return nil, err
	}
	return s.viewAndSave(ctx, draft, func(b *Builder) {
		b.SetDates(checkIn, checkOut)
	})
}

func (s *service) SetRooms(ctx context.Context, userID, hotelID int64, roomType string, count int) (*DraftView, error) {
	draft, err := s.loadOrInitDraft(ctx, userID, hotelID)
	if err != nil {
		return nil, err
	}
	return s.viewAndSave(ctx, draft, func(b *Builder) {
		b.SetRoomCount(roomType, count)
	})
}

// viewAndSave resolves the draft's available rooms, applies the mutation,
// persists the draft and returns the refreshed view.
func (s *service) viewAndSave(ctx context.Context, draft Draft, mutate func(*Builder)) (*DraftView, error) {
	available, err := s.availableRooms(ctx, draft.HotelID, draft.CheckInDate, draft.CheckOutDate)
	if err != nil {
		return nil, err
	}

	builder := NewBuilder(draft, available)
	if mutate != nil {
		mutate(builder)
		// Date changes shift what is available; refresh before selections
		// are resolved again.
		updated := builder.Draft()
		if updated.CheckInDate != draft.CheckInDate || updated.CheckOutDate != draft.CheckOutDate {
			available, err = s.availableRooms(ctx, updated.HotelID, updated.CheckInDate, updated.CheckOutDate)
			if err != nil {
				return nil, err
			}
			builder = NewBuilder(updated, available)
			builder.SetDates(updated.CheckInDate, updated.CheckOutDate)
		}
	}

	draft = builder.Draft()
	if err := s.cache.Set(ctx, constants.DraftKey(draft.UserID, draft.HotelID), draft, s.cfg.Redis.DraftTTL); err != nil {
		return nil, fmt.Errorf("persist draft: %w", err)
	}

	return &DraftView{
		Draft:                draft,
		AvailableRooms:       available,
		Nights:               builder.Nights(),
		RoomSelectionEnabled: builder.DatesValid(),
	}, nil
}

func (s *service) Submit(ctx context.Context, userID, hotelID int64) (*SubmitResult, error) {
	var draft Draft
	err := s.cache.Get(ctx, constants.DraftKey(userID, hotelID), &draft)
	if err == cache.ErrCacheMiss {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}

	if fieldErrs := draft.Validate(); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	// Reserve the idempotency key before calling out. A replayed submit of
	// the same draft short-circuits here instead of double-booking.
	reservation := constants.IdempotencyKey(draft.IdempotencyKey)
	stored, err := s.cache.SetNX(ctx, reservation, draft.UserID, s.cfg.Redis.IdempotencyTTL)
	if err != nil {
		return nil, fmt.Errorf("reserve submission: %w", err)
	}
	if !stored {
		return nil, ErrDuplicateSubmission
	}

	created, err := s.clients.Bookings.Create(ctx, upstream.CreateBookingRequest{
		UserID:         draft.UserID,
		HotelID:        draft.HotelID,
		RoomIDs:        draft.RoomIDs,
		CheckInDate:    draft.CheckInDate,
		CheckOutDate:   draft.CheckOutDate,
		TotalAmount:    draft.TotalAmount,
		IdempotencyKey: draft.IdempotencyKey,
	})
	if err != nil {
		// Single attempt: release the reservation so the user can submit
		// again after seeing the error.
		if delErr := s.cache.Delete(ctx, reservation); delErr != nil {
			s.log.Warn("failed to release submission reservation", slog.Any("error", delErr))
		}
		return nil, err
	}

	if err := s.cache.Delete(ctx, constants.DraftKey(userID, hotelID)); err != nil {
		s.log.Warn("failed to drop submitted draft", slog.Any("error", err))
	}

	s.refreshNotifications(ctx, userID)
	s.publish(ctx, events.Event{
		Type:      events.TypeBookingCreated,
		UserID:    userID,
		HotelID:   hotelID,
		Amount:    draft.TotalAmount,
		BookingID: firstBookingID(created),
	})
	s.log.LogBookingSubmitted(ctx, userID, hotelID, len(draft.RoomIDs), draft.TotalAmount)

	return &SubmitResult{
		Bookings: created,
		Message:  "Booking created successfully!",
	}, nil
}

func (s *service) AvailableRooms(ctx context.Context, hotelID int64, checkIn, checkOut string) ([]upstream.Room, error) {
	if checkIn == "" || checkOut == "" {
		return nil, ErrEmptyDateRange
	}
	return s.availableRooms(ctx, hotelID, checkIn, checkOut)
}

// availableRooms fetches the hotel's inventory and strips rooms occupied in
// the window. Without a usable window the full inventory is returned. When
// the overlap lookup fails the configured fail mode decides what the user
// sees.
func (s *service) availableRooms(ctx context.Context, hotelID int64, checkIn, checkOut string) ([]upstream.Room, error) {
	rooms, err := s.clients.Hotels.Rooms(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	if _, ok := nightsBetween(checkIn, checkOut); !ok {
		return rooms, nil
	}

	overlapping, err := s.clients.Bookings.SearchByDate(ctx, checkIn, checkOut)
	if err != nil {
		s.log.Warn("overlap lookup failed, applying availability fail mode",
			slog.Int64("hotel_id", hotelID),
			slog.String("mode", string(s.cfg.AvailabilityFailMode)),
			slog.Any("error", err),
		)
		return availability.OnLookupFailure(s.cfg.AvailabilityFailMode, rooms), nil
	}

	return availability.FilterAvailable(rooms, overlapping, hotelID), nil
}

func (s *service) UserBookings(ctx context.Context, userID int64) ([]EnrichedBooking, error) {
	bookings, err := s.clients.Bookings.ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, bookings), nil
}

func (s *service) HotelBookings(ctx context.Context, hotelID int64) ([]EnrichedBooking, error) {
	bookings, err := s.clients.Bookings.ByHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, bookings), nil
}

func (s *service) AllBookings(ctx context.Context) ([]EnrichedBooking, error) {
	bookings, err := s.clients.Bookings.All(ctx)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, bookings), nil
}

func (s *service) Cancel(ctx context.Context, userID, bookingID int64, isAdmin bool) error {
	booking, err := s.clients.Bookings.ByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if !isAdmin && booking.UserID != userID {
		return ErrForbidden
	}

	if err := s.clients.Bookings.Cancel(ctx, bookingID); err != nil {
		return err
	}

	s.refreshNotifications(ctx, booking.UserID)
	s.publish(ctx, events.Event{
		Type:      events.TypeBookingCancelled,
		UserID:    booking.UserID,
		HotelID:   booking.HotelID,
		BookingID: bookingID,
	})
	s.log.LogBookingCancelled(ctx, bookingID, booking.UserID)
	return nil
}

func (s *service) UpdateStatus(ctx context.Context, bookingID int64, status string) error {
	switch status {
	case upstream.BookingStatusPending, upstream.BookingStatusConfirmed, upstream.BookingStatusCancelled:
	default:
		return ErrInvalidStatus
	}

	booking, err := s.clients.Bookings.ByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if err := s.clients.Bookings.UpdateStatus(ctx, bookingID, status); err != nil {
		return err
	}

	s.refreshNotifications(ctx, booking.UserID)
	return nil
}

// enrich joins bookings with guest and hotel context. Lookups run in
// parallel, once per distinct id; an individual failure degrades that field
// to a placeholder rather than failing the batch.
func (s *service) enrich(ctx context.Context, bookings []upstream.Booking) []EnrichedBooking {
	userIDs := make(map[int64]struct{})
	hotelIDs := make(map[int64]struct{})
	for _, booking := range bookings {
		userIDs[booking.UserID] = struct{}{}
		hotelIDs[booking.HotelID] = struct{}{}
	}

	var mu sync.Mutex
	userByID := make(map[int64]*upstream.User, len(userIDs))
	hotelByID := make(map[int64]*upstream.Hotel, len(hotelIDs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(enrichConcurrency)

	for userID := range userIDs {
		group.Go(func() error {
			user, err := s.clients.Users.ByID(groupCtx, userID)
			if err != nil {
				s.log.Warn("booking enrichment: user lookup failed",
					slog.Int64("user_id", userID), slog.Any("error", err))
				return nil
			}
			mu.Lock()
			userByID[userID] = user
			mu.Unlock()
			return nil
		})
	}
	for hotelID := range hotelIDs {
		group.Go(func() error {
			hotel, err := s.clients.Hotels.ByID(groupCtx, hotelID)
			if err != nil {
				s.log.Warn("booking enrichment: hotel lookup failed",
					slog.Int64("hotel_id", hotelID), slog.Any("error", err))
				return nil
			}
			mu.Lock()
			hotelByID[hotelID] = hotel
			mu.Unlock()
			return nil
		})
	}
	_ = group.Wait() // workers never return errors, failures degrade per item

	enriched := make([]EnrichedBooking, 0, len(bookings))
	for _, booking := range bookings {
		row := EnrichedBooking{
			Booking:           booking,
			UserFirstName:     "Deleted User",
			UserLastName:      "",
			HotelName:         "Unknown",
			HotelCheckInTime:  "N/A",
			HotelCheckOutTime: "N/A",
		}
		if user := userByID[booking.UserID]; user != nil {
			row.UserFirstName = user.FirstName
			row.UserLastName = user.LastName
		}
		if hotel := hotelByID[booking.HotelID]; hotel != nil {
			row.HotelName = hotel.Name
			if hotel.CheckIn != "" {
				row.HotelCheckInTime = hotel.CheckIn
			}
			if hotel.CheckOut != "" {
				row.HotelCheckOutTime = hotel.CheckOut
			}
		}
		enriched = append(enriched, row)
	}
	return enriched
}

func (s *service) loadOrInitDraft(ctx context.Context, userID, hotelID int64) (Draft, error) {
	var draft Draft
	err := s.cache.Get(ctx, constants.DraftKey(userID, hotelID), &draft)
	if err == nil {
		return draft, nil
	}
	if err != cache.ErrCacheMiss {
		return Draft{}, fmt.Errorf("load draft: %w", err)
	}

	return Draft{
		UserID:         userID,
		HotelID:        hotelID,
		RoomIDs:        []int64{},
		IdempotencyKey: uuid.New().String(),
	}, nil
}

// refreshNotifications drops the user's cached notification list so the
// next fetch sees the upstream notification written for this action.
func (s *service) refreshNotifications(ctx context.Context, userID int64) {
	if err := s.cache.DeletePattern(ctx, constants.NotificationPattern(userID)); err != nil {
		s.log.Warn("notification cache invalidation failed",
			slog.Int64("user_id", userID), slog.Any("error", err))
	}
}

func (s *service) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("event publish failed",
			slog.String("event_type", string(event.Type)), slog.Any("error", err))
	}
}

func firstBookingID(bookings []upstream.Booking) int64 {
	if len(bookings) == 0 {
		return 0
	}
	return bookings[0].ID
}
