package payments

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"staymate/internal/events"
	"staymate/internal/shared/constants"
	"staymate/internal/shared/upstream"
	"staymate/pkg/cache"
	"staymate/pkg/logger"
)

var (
	ErrForbidden        = errors.New("payment does not belong to user")
	ErrInvalidAmount    = errors.New("payment amount must be greater than zero")
	ErrAmountExceedsDue = errors.New("payment amount exceeds remaining balance")
	ErrAlreadyPaid      = errors.New("booking is already fully paid")
)

const enrichConcurrency = 8

type Service interface {
	MyPayments(ctx context.Context, userID int64) ([]Group, error)
	BookingState(ctx context.Context, userID, bookingID int64, isAdmin bool) (*State, error)
	MethodBreakdown(ctx context.Context, userID, bookingID int64, isAdmin bool) ([]MethodSummary, error)
	Pay(ctx context.Context, userID, bookingID int64, amount float64, method string) (*upstream.Payment, error)
	AdminPayments(ctx context.Context) ([]AdminGroup, error)
}

type service struct {
	clients   *upstream.Clients
	cache     cache.Service
	publisher events.Publisher
	log       *logger.Logger
}

func NewService(clients *upstream.Clients, cacheService cache.Service, publisher events.Publisher, log *logger.Logger) Service {
	return &service{clients: clients, cache: cacheService, publisher: publisher, log: log}
}

// MyPayments groups the user's payments by booking, filling in each
// booking's total via fan-out. A booking lookup failure leaves that
// group's total at zero rather than failing the whole view.
func (s *service) MyPayments(ctx context.Context, userID int64) ([]Group, error) {
	payments, err := s.clients.Payments.ByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching payments: %w", err)
	}

	seen := make(map[int64]bool)
	var bookingIDs []int64
	for _, p := range payments {
		if !seen[p.BookingID] {
			seen[p.BookingID] = true
			bookingIDs = append(bookingIDs, p.BookingID)
		}
	}

	totals := make(map[int64]float64, len(bookingIDs))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for _, id := range bookingIDs {
		g.Go(func() error {
			booking, err := s.clients.Bookings.ByID(gctx, id)
			if err != nil {
				s.log.Warn("Booking total lookup failed", "booking_id", id, "error", err)
				return nil
			}
			mu.Lock()
			totals[id] = booking.TotalAmount
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return GroupByBooking(payments, totals), nil
}

// BookingState reports what has been paid toward a booking and what remains.
func (s *service) BookingState(ctx context.Context, userID, bookingID int64, isAdmin bool) (*State, error) {
	booking, err := s.clients.Bookings.ByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("fetching booking: %w", err)
	}
	if booking.UserID != userID && !isAdmin {
		return nil, ErrForbidden
	}

	state := &State{Booking: booking, TotalAmount: booking.TotalAmount}

	hotel, err := s.clients.Hotels.ByID(ctx, booking.HotelID)
	if err != nil {
		s.log.Warn("Hotel lookup failed for payment state", "hotel_id", booking.HotelID, "error", err)
	} else {
		state.Hotel = hotel
	}

	payments, err := s.clients.Payments.ByBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("fetching payments: %w", err)
	}
	for _, p := range payments {
		if p.PaymentStatus == upstream.PaymentStatusSuccess {
			state.AmountPaid += p.AmountPaid
		}
	}

	state.RemainingAmount = state.TotalAmount - state.AmountPaid
	if state.RemainingAmount < 0 {
		state.RemainingAmount = 0
	}
	return state, nil
}

// MethodBreakdown sums a booking's payments per payment method for the
// payment selection view.
func (s *service) MethodBreakdown(ctx context.Context, userID, bookingID int64, isAdmin bool) ([]MethodSummary, error) {
	booking, err := s.clients.Bookings.ByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("fetching booking: %w", err)
	}
	if booking.UserID != userID && !isAdmin {
		return nil, ErrForbidden
	}

	payments, err := s.clients.Payments.ByBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("fetching payments: %w", err)
	}
	return RollupByMethod(Group{BookingID: bookingID, Payments: payments}), nil
}

// Pay validates the amount against the remaining balance in integer cents
// and forwards the charge to the payment service.
func (s *service) Pay(ctx context.Context, userID, bookingID int64, amount float64, method string) (*upstream.Payment, error) {
	state, err := s.BookingState(ctx, userID, bookingID, false)
	if err != nil {
		return nil, err
	}

	remainingCents := Cents(state.RemainingAmount)
	payCents := Cents(amount)
	switch {
	case remainingCents <= 0:
		return nil, ErrAlreadyPaid
	case payCents <= 0:
		return nil, ErrInvalidAmount
	case payCents > remainingCents:
		return nil, ErrAmountExceedsDue
	}

	payment, err := s.clients.Payments.CreateAndProcess(ctx, upstream.PaymentRequest{
		BookingID: bookingID,
		Amount:    amount,
	}, method)
	if err != nil {
		return nil, fmt.Errorf("processing payment: %w", err)
	}

	if payment.PaymentStatus == upstream.PaymentStatusSuccess {
		// Fully settled bookings move to CONFIRMED.
		if payCents == remainingCents {
			if err := s.clients.Bookings.UpdateStatus(ctx, bookingID, upstream.BookingStatusConfirmed); err != nil {
				s.log.Warn("Booking confirmation failed after payment", "booking_id", bookingID, "error", err)
			}
		}
		if err := s.cache.DeletePattern(ctx, constants.NotificationPattern(userID)); err != nil {
			s.log.Warn("Notification cache invalidation failed", "user_id", userID, "error", err)
		}
		s.publish(ctx, events.Event{
			Type:      events.TypePaymentProcessed,
			UserID:    userID,
			BookingID: bookingID,
			Amount:    amount,
		})
	}

	s.log.LogPaymentProcessed(ctx, bookingID, userID, amount, method)
	return payment, nil
}

// AdminPayments returns every payment grouped by booking, enriched with
// guest and hotel names for the back-office table.
func (s *service) AdminPayments(ctx context.Context) ([]AdminGroup, error) {
	payments, err := s.clients.Payments.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching payments: %w", err)
	}

	groups := GroupForAdmin(payments)

	bookings := make(map[int64]*upstream.Booking, len(groups))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for i := range groups {
		id := groups[i].BookingID
		g.Go(func() error {
			booking, err := s.clients.Bookings.ByID(gctx, id)
			if err != nil {
				s.log.Warn("Booking enrichment failed", "booking_id", id, "error", err)
				return nil
			}
			mu.Lock()
			bookings[id] = booking
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	userIDs := make(map[int64]bool)
	hotelIDs := make(map[int64]bool)
	for _, b := range bookings {
		userIDs[b.UserID] = true
		hotelIDs[b.HotelID] = true
	}

	users := make(map[int64]*upstream.User, len(userIDs))
	hotels := make(map[int64]*upstream.Hotel, len(hotelIDs))

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for id := range userIDs {
		g.Go(func() error {
			user, err := s.clients.Users.ByID(gctx, id)
			if err != nil {
				return nil
			}
			mu.Lock()
			users[id] = user
			mu.Unlock()
			return nil
		})
	}
	for id := range hotelIDs {
		g.Go(func() error {
			hotel, err := s.clients.Hotels.ByID(gctx, id)
			if err != nil {
				return nil
			}
			mu.Lock()
			hotels[id] = hotel
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range groups {
		groups[i].GuestFirstName = "Unknown"
		groups[i].GuestLastName = ""
		groups[i].HotelName = "Unknown"

		booking, ok := bookings[groups[i].BookingID]
		if !ok {
			continue
		}
		groups[i].Booking = booking
		if user, ok := users[booking.UserID]; ok {
			groups[i].GuestFirstName = user.FirstName
			groups[i].GuestLastName = user.LastName
		}
		if hotel, ok := hotels[booking.HotelID]; ok {
			groups[i].HotelName = hotel.Name
		}
	}
	return groups, nil
}

func (s *service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("Event publish failed", "type", event.Type, "error", err)
	}
}
