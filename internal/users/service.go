package users

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/sync/errgroup"

	"staymate/internal/shared/config"
	"staymate/internal/shared/constants"
	"staymate/internal/shared/upstream"
	"staymate/pkg/logger"
)

var ErrForbidden = errors.New("user may only access their own account")

const enrichConcurrency = 8

type Service interface {
	Login(ctx context.Context, creds upstream.Credentials) (*AuthResponse, error)
	Register(ctx context.Context, req upstream.RegisterRequest) (*AuthResponse, error)
	Profile(ctx context.Context, userID int64) (*upstream.User, error)
	UpdateProfile(ctx context.Context, userID int64, req upstream.UpdateUserRequest) (*upstream.User, error)
	Bookmarks(ctx context.Context, userID int64) ([]int64, error)
	BookmarkedHotels(ctx context.Context, userID int64) ([]upstream.Hotel, error)
	AddBookmark(ctx context.Context, userID, hotelID int64) error
	RemoveBookmark(ctx context.Context, userID, hotelID int64) error
	AllUsers(ctx context.Context) ([]upstream.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

type service struct {
	clients *upstream.Clients
	cfg     *config.Config
	log     *logger.Logger
}

func NewService(clients *upstream.Clients, cfg *config.Config, log *logger.Logger) Service {
	return &service{clients: clients, cfg: cfg, log: log}
}

// Login verifies credentials with the user service and mints a session
// token carrying the identity the middleware reconstructs per request.
func (s *service) Login(ctx context.Context, creds upstream.Credentials) (*AuthResponse, error) {
	user, err := s.clients.Users.Login(ctx, creds)
	if err != nil {
		s.log.LogAuthFailure(ctx, "upstream login rejected", "")
		return nil, err
	}

	token, err := s.mintSessionToken(user)
	if err != nil {
		return nil, fmt.Errorf("minting session token: %w", err)
	}

	s.log.LogAuthSuccess(ctx, user.ID, "login")
	return &AuthResponse{Token: token, User: *user}, nil
}

// Register creates the account upstream and logs the new user in.
func (s *service) Register(ctx context.Context, req upstream.RegisterRequest) (*AuthResponse, error) {
	user, err := s.clients.Users.Register(ctx, req)
	if err != nil {
		return nil, err
	}

	token, err := s.mintSessionToken(user)
	if err != nil {
		return nil, fmt.Errorf("minting session token: %w", err)
	}

	s.log.LogAuthSuccess(ctx, user.ID, "register")
	return &AuthResponse{Token: token, User: *user}, nil
}

func (s *service) Profile(ctx context.Context, userID int64) (*upstream.User, error) {
	return s.clients.Users.ByID(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, userID int64, req upstream.UpdateUserRequest) (*upstream.User, error) {
	return s.clients.Users.Update(ctx, userID, req)
}

func (s *service) Bookmarks(ctx context.Context, userID int64) ([]int64, error) {
	return s.clients.Users.Bookmarks(ctx, userID)
}

// BookmarkedHotels resolves the user's bookmarked hotel IDs into hotel
// records. A hotel that no longer exists is silently dropped from the list.
func (s *service) BookmarkedHotels(ctx context.Context, userID int64) ([]upstream.Hotel, error) {
	ids, err := s.clients.Users.Bookmarks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching bookmarks: %w", err)
	}

	hotels := make(map[int64]*upstream.Hotel, len(ids))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for _, id := range ids {
		g.Go(func() error {
			hotel, err := s.clients.Hotels.ByID(gctx, id)
			if err != nil {
				s.log.Warn("Bookmarked hotel lookup failed", "hotel_id", id, "error", err)
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

	out := make([]upstream.Hotel, 0, len(ids))
	for _, id := range ids {
		if hotel, ok := hotels[id]; ok {
			out = append(out, *hotel)
		}
	}
	return out, nil
}

func (s *service) AddBookmark(ctx context.Context, userID, hotelID int64) error {
	return s.clients.Users.AddBookmark(ctx, userID, hotelID)
}

func (s *service) RemoveBookmark(ctx context.Context, userID, hotelID int64) error {
	return s.clients.Users.RemoveBookmark(ctx, userID, hotelID)
}

func (s *service) AllUsers(ctx context.Context) ([]upstream.User, error) {
	return s.clients.Users.All(ctx)
}

func (s *service) DeleteUser(ctx context.Context, userID int64) error {
	return s.clients.Users.Delete(ctx, userID)
}

func (s *service) mintSessionToken(user *upstream.User) (string, error) {
	role := user.Role
	if !constants.IsValidRole(role) {
		role = string(constants.RoleUser)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"type":       "session",
		"user_id":    user.ID,
		"role":       role,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"iat":        now.Unix(),
		"exp":        now.Add(s.cfg.JWT.ExpiresIn).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWT.Secret))
}
