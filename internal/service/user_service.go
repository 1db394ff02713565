package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/platform/logger"
	"github.com/phrazzld/taskmanager-api/internal/service/auth"
	"github.com/phrazzld/taskmanager-api/internal/store"
)

// TokenTypeBearer is the token_type reported with every access token.
const TokenTypeBearer = "bearer"

// SignupInput carries the data submitted at signup.
type SignupInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	AccessToken string
	TokenType   string
	User        *domain.User
}

// Assignee is a user as offered for task assignment.
type Assignee struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserService provides signup, login and user listings.
type UserService interface {
	// Signup registers a new user. Returns ErrEmailTaken if the email is
	// already registered, or a domain validation error.
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)

	// Login checks the credentials and issues an access token.
	// Returns ErrInvalidCredentials for an unknown email or wrong password.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// ListUsers returns all users ordered by ID.
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// ListAssignees returns every user as an assignment candidate.
	ListAssignees(ctx context.Context) ([]Assignee, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	users    store.UserStore
	hasher   auth.PasswordHasher
	verifier auth.PasswordVerifier
	tokens   auth.JWTService
	logger   *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService
func NewUserService(
	users store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	tokens auth.JWTService,
	logger *slog.Logger,
) *UserServiceImpl {
	if users == nil || hasher == nil || verifier == nil || tokens == nil {
		panic("user service dependencies cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		users:    users,
		hasher:   hasher,
		verifier: verifier,
		tokens:   tokens,
		logger:   logger.With("component", "user_service"),
	}
}

// Signup validates and stores a new user with a hashed password.
func (s *UserServiceImpl) Signup(ctx context.Context, input SignupInput) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(input.Email, input.FirstName, input.LastName, input.Password)
	if err != nil {
		log.Debug("signup rejected by validation", "error", err)
		return nil, err
	}

	hash, err := s.hasher.Hash(user.Password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		return nil, newUserServiceError("signup", err)
	}
	user.HashedPassword = hash

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("attempted to sign up with existing email")
			return nil, ErrEmailTaken
		}
		log.Error("failed to save user to database", "error", err)
		return nil, newUserServiceError("signup", err)
	}
	user.Password = ""

	log.Info("user signed up", "user_id", user.ID)
	return user, nil
}

// Login verifies the email and password and returns a bearer token whose
// subject is the user's email.
func (s *UserServiceImpl) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login attempt for unknown email")
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to look up user for login", "error", err)
		return nil, newUserServiceError("login", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login attempt with wrong password", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(ctx, user.Email)
	if err != nil {
		log.Error("failed to issue access token", "error", err, "user_id", user.ID)
		return nil, newUserServiceError("login", err)
	}

	log.Info("user logged in", "user_id", user.ID)
	return &LoginResult{
		AccessToken: token,
		TokenType:   TokenTypeBearer,
		User:        user,
	}, nil
}

// ListUsers returns all registered users.
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list users", "error", err)
		return nil, newUserServiceError("list_users", err)
	}
	return users, nil
}

// ListAssignees returns every user with their display name.
func (s *UserServiceImpl) ListAssignees(ctx context.Context) ([]Assignee, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list assignees", "error", err)
		return nil, newUserServiceError("list_assignees", err)
	}

	assignees := make([]Assignee, 0, len(users))
	for _, u := range users {
		assignees = append(assignees, Assignee{ID: u.ID, Name: u.DisplayName()})
	}
	return assignees, nil
}
