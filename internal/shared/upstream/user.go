package upstream

import (
	"context"
	"fmt"
)

// UserClient wraps the user service REST API, including the bookmark
// sub-resource.
type UserClient struct {
	*caller
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

type UpdateUserRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// Login verifies credentials against the user service and returns the
// authenticated user. Password hashes never leave the user service.
func (c *UserClient) Login(ctx context.Context, creds Credentials) (*User, error) {
	var user User
	if err := c.post(ctx, "/users/login", nil, creds, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *UserClient) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var user User
	if err := c.post(ctx, "/users/register", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *UserClient) ByID(ctx context.Context, id int64) (*User, error) {
	var user User
	if err := c.get(ctx, fmt.Sprintf("/users/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *UserClient) Update(ctx context.Context, id int64, req UpdateUserRequest) (*User, error) {
	var user User
	if err := c.put(ctx, fmt.Sprintf("/users/%d", id), nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *UserClient) All(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.get(ctx, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *UserClient) Delete(ctx context.Context, id int64) error {
	return c.del(ctx, fmt.Sprintf("/users/%d", id), nil)
}

// Bookmarks returns the hotel ids the user has bookmarked.
func (c *UserClient) Bookmarks(ctx context.Context, userID int64) ([]int64, error) {
	var hotelIDs []int64
	if err := c.get(ctx, fmt.Sprintf("/users/%d/bookmarks", userID), nil, &hotelIDs); err != nil {
		return nil, err
	}
	return hotelIDs, nil
}

func (c *UserClient) AddBookmark(ctx context.Context, userID, hotelID int64) error {
	return c.post(ctx, fmt.Sprintf("/users/%d/bookmarks/%d", userID, hotelID), nil, nil, nil)
}

func (c *UserClient) RemoveBookmark(ctx context.Context, userID, hotelID int64) error {
	return c.del(ctx, fmt.Sprintf("/users/%d/bookmarks/%d", userID, hotelID), nil)
}
