package userservice

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/sushihentaime/currytech/internal/common"
)

var (
	ErrAuthenticationFailure = errors.New("invalid credentials")
)

func NewUserService(db *sql.DB, mb common.MessageProducer, tokens *TokenMaker, logger *slog.Logger) *UserService {
	return &UserService{
		m:      newUserModel(db),
		mb:     mb,
		tokens: tokens,
		logger: logger,
	}
}

// CreateUser registers a user with the default role, publishes a
// user.registered event and returns a signed credential.
func (s *UserService) CreateUser(ctx context.Context, req RegisterRequest) (string, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	v := common.NewValidator()
	validateRegistration(v, req)
	if !v.Valid() {
		return "", v.ValidationError()
	}

	u := User{
		Name:  req.Name,
		Email: req.Email,
		Role:  RoleUser,
	}

	err := u.Password.set(req.Password)
	if err != nil {
		return "", err
	}

	err = s.m.insertUser(ctx, &u)
	if err != nil {
		return "", err
	}

	event := common.UserRegisteredEvent{Name: u.Name, Email: u.Email}
	if err := common.PublishEvent(ctx, s.mb, common.UserRegisteredKey, event); err != nil {
		s.logger.Error("could not publish user registered event", slog.String("user_id", u.ID), slog.String("error", err.Error()))
	}

	return s.tokens.NewToken(&u)
}

// LoginUser checks the credentials and returns a signed credential.
func (s *UserService) LoginUser(ctx context.Context, email, password string) (string, error) {
	v := common.NewValidator()
	v.Check(strings.TrimSpace(email) != "", "email", "must be provided")
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return "", v.ValidationError()
	}

	user, err := s.m.getUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			return "", ErrAuthenticationFailure
		default:
			return "", err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return "", err
	}

	if !ok {
		return "", ErrAuthenticationFailure
	}

	return s.tokens.NewToken(user)
}

// GetUserByToken resolves a bearer credential to the current state of its user.
// A valid token whose user no longer exists is rejected.
func (s *UserService) GetUserByToken(ctx context.Context, token string) (*User, error) {
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.m.getUserByID(ctx, claims.Subject)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			return nil, ErrInvalidToken
		default:
			return nil, err
		}
	}

	return user, nil
}

// PromoteToAdmin grants the admin role to the user. Only reachable from the
// development-only make-admin route.
func (s *UserService) PromoteToAdmin(ctx context.Context, id string) (*User, error) {
	return s.m.updateUserRole(ctx, id, RoleAdmin)
}

func (u *User) IsAnonymous() bool {
	return u == nil || u == &AnonymousUser || u.ID == ""
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

func (u *User) HasRole(roles ...Role) bool {
	if u.IsAnonymous() {
		return false
	}

	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}

	return false
}

// CanModify reports whether u may edit or delete a record owned by ownerID.
func (u *User) CanModify(ownerID string) bool {
	if u.IsAnonymous() {
		return false
	}

	return u.ID == ownerID || u.IsAdmin()
}
