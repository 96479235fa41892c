package hotels

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"staymate/internal/shared/config"
	"staymate/internal/shared/constants"
	"staymate/internal/shared/upstream"
	"staymate/pkg/cache"
	"staymate/pkg/logger"
)

type Service interface {
	List(ctx context.Context, filter Filter) ([]upstream.Hotel, error)
	Detail(ctx context.Context, hotelID int64) (*Detail, error)
	Destinations(ctx context.Context) ([]Destination, error)
	Reviews(ctx context.Context, hotelID int64) ([]upstream.Review, error)
	SubmitReview(ctx context.Context, userID, hotelID int64, rating float64, comment string) (*upstream.Review, error)
	Create(ctx context.Context, req upstream.HotelRequest) (*upstream.Hotel, error)
	Update(ctx context.Context, hotelID int64, req upstream.HotelRequest) (*upstream.Hotel, error)
	Delete(ctx context.Context, hotelID int64) error
}

type service struct {
	clients *upstream.Clients
	cache   cache.Service
	cfg     *config.Config
	log     *logger.Logger
}

func NewService(clients *upstream.Clients, cacheService cache.Service, cfg *config.Config, log *logger.Logger) Service {
	return &service{clients: clients, cache: cacheService, cfg: cfg, log: log}
}

// List serves the hotel catalogue from cache and filters it in-process.
// The upstream list is small enough that filtering after the cache read
// keeps every filter combination on the same cached entry.
func (s *service) List(ctx context.Context, filter Filter) ([]upstream.Hotel, error) {
	all, err := s.cachedList(ctx)
	if err != nil {
		return nil, err
	}
	return Apply(all, filter), nil
}

// Detail fans out to the hotel, room and review endpoints in parallel.
// The hotel itself is required; rooms and reviews degrade to empty lists.
func (s *service) Detail(ctx context.Context, hotelID int64) (*Detail, error) {
	var detail Detail
	err := s.cache.GetOrSet(ctx, constants.HotelDetailKey(hotelID), s.cfg.Redis.HotelCacheTTL,
		func() (interface{}, error) {
			return s.fetchDetail(ctx, hotelID)
		}, &detail)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *service) fetchDetail(ctx context.Context, hotelID int64) (*Detail, error) {
	var detail Detail

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hotel, err := s.clients.Hotels.ByID(gctx, hotelID)
		if err != nil {
			return fmt.Errorf("fetching hotel: %w", err)
		}
		detail.Hotel = *hotel
		return nil
	})
	g.Go(func() error {
		rooms, err := s.clients.Hotels.Rooms(gctx, hotelID)
		if err != nil {
			s.log.Warn("Room listing failed", "hotel_id", hotelID, "error", err)
			rooms = []upstream.Room{}
		}
		detail.Rooms = rooms
		return nil
	})
	g.Go(func() error {
		reviews, err := s.clients.Hotels.ReviewsByHotel(gctx, hotelID)
		if err != nil {
			s.log.Warn("Review listing failed", "hotel_id", hotelID, "error", err)
			reviews = []upstream.Review{}
		}
		detail.Reviews = reviews
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Destinations derives the browsable city list from the hotel catalogue.
func (s *service) Destinations(ctx context.Context) ([]Destination, error) {
	var destinations []Destination
	err := s.cache.GetOrSet(ctx, constants.DestinationsKey(), s.cfg.Redis.HotelCacheTTL,
		func() (interface{}, error) {
			hotels, err := s.cachedList(ctx)
			if err != nil {
				return nil, err
			}
			return Destinations(hotels), nil
		}, &destinations)
	if err != nil {
		return nil, err
	}
	return destinations, nil
}

func (s *service) Reviews(ctx context.Context, hotelID int64) ([]upstream.Review, error) {
	return s.clients.Hotels.ReviewsByHotel(ctx, hotelID)
}

func (s *service) SubmitReview(ctx context.Context, userID, hotelID int64, rating float64, comment string) (*upstream.Review, error) {
	review, err := s.clients.Hotels.CreateReview(ctx, upstream.ReviewRequest{
		HotelID: hotelID,
		UserID:  userID,
		Rating:  rating,
		Comment: comment,
	})
	if err != nil {
		return nil, fmt.Errorf("submitting review: %w", err)
	}
	// Ratings feed the cached detail and list, so both entries go stale.
	s.invalidate(ctx, hotelID)
	return review, nil
}

func (s *service) Create(ctx context.Context, req upstream.HotelRequest) (*upstream.Hotel, error) {
	hotel, err := s.clients.Hotels.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, hotel.ID)
	return hotel, nil
}

func (s *service) Update(ctx context.Context, hotelID int64, req upstream.HotelRequest) (*upstream.Hotel, error) {
	hotel, err := s.clients.Hotels.Update(ctx, hotelID, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, hotelID)
	return hotel, nil
}

func (s *service) Delete(ctx context.Context, hotelID int64) error {
	if err := s.clients.Hotels.Delete(ctx, hotelID); err != nil {
		return err
	}
	s.invalidate(ctx, hotelID)
	return nil
}

func (s *service) cachedList(ctx context.Context) ([]upstream.Hotel, error) {
	var hotels []upstream.Hotel
	err := s.cache.GetOrSet(ctx, constants.HotelListKey(), s.cfg.Redis.HotelCacheTTL,
		func() (interface{}, error) {
			return s.clients.Hotels.List(ctx)
		}, &hotels)
	if err != nil {
		return nil, fmt.Errorf("fetching hotels: %w", err)
	}
	return hotels, nil
}

func (s *service) invalidate(ctx context.Context, hotelID int64) {
	for _, key := range []string{
		constants.HotelListKey(),
		constants.HotelDetailKey(hotelID),
		constants.DestinationsKey(),
	} {
		if err := s.cache.Delete(ctx, key); err != nil {
			s.log.Warn("Hotel cache invalidation failed", "key", key, "error", err)
		}
	}
}
