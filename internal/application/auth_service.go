package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/okisetiana/blog-api/internal/domain/entity"
	repo "github.com/okisetiana/blog-api/internal/domain/repository"
	"github.com/okisetiana/blog-api/pkg/helpers"
	"github.com/okisetiana/blog-api/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("invalid role")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

// AuthService handles registration, login, and profile management. Tokens
// are stateless: once issued they stay valid until expiry, there is no
// server-side session to invalidate.
type AuthService struct {
	Users    repo.UserRepository
	Articles repo.ArticleRepository
	JWT      *helpers.JWTManager
	Logger   *logrus.Logger
	Mail     *helpers.RabbitPublisher // optional; nil disables welcome email
}

func NewAuthService(users repo.UserRepository, articles repo.ArticleRepository, jwt *helpers.JWTManager, logger *logrus.Logger, mail *helpers.RabbitPublisher) *AuthService {
	return &AuthService{Users: users, Articles: articles, JWT: jwt, Logger: logger, Mail: mail}
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string // optional; defaults to READER
}

// Register creates an account and signs the first token. Duplicate
// username/email surface as the repository conflict sentinels; the unique
// constraints make the check-then-insert safe under concurrency.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)

	role := entity.RoleReader
	if in.Role != "" {
		r, ok := entity.ParseRole(in.Role)
		if !ok {
			return nil, ErrInvalidRole
		}
		role = r
	}

	if taken, err := s.Users.ExistsByUsername(ctx, username); err != nil {
		return nil, err
	} else if taken {
		return nil, repo.ErrUsernameTaken
	}
	if taken, err := s.Users.ExistsByEmail(ctx, email); err != nil {
		return nil, err
	} else if taken {
		return nil, repo.ErrEmailTaken
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Username: username, Email: email, Password: hash, Role: role}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.sendWelcome(ctx, u)

	token, exp, err := s.JWT.Generate(u)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresAt: exp, User: u}, nil
}

// Login verifies the credentials and issues a token. Unknown username and
// wrong password are indistinguishable; storage failures are not credential
// failures and propagate unchanged.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	u, err := s.Users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CheckPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	token, exp, err := s.JWT.Generate(u)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresAt: exp, User: u}, nil
}

// ProfileView is the public projection of an account.
type ProfileView struct {
	ID           int64       `json:"id"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	Role         entity.Role `json:"role"`
	ArticleCount int64       `json:"article_count"`
}

func (s *AuthService) Profile(ctx context.Context, userID int64) (*ProfileView, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	count, err := s.Articles.CountByAuthor(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return &ProfileView{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role, ArticleCount: count}, nil
}

type UpdateProfileInput struct {
	Username        string
	Email           string
	CurrentPassword string
	NewPassword     string
}

// UpdateProfile applies optional username/email changes (kept globally
// unique) and an optional password change that requires the current
// password.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (*ProfileView, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if username := strings.TrimSpace(in.Username); username != "" && username != u.Username {
		if taken, err := s.Users.ExistsByUsername(ctx, username); err != nil {
			return nil, err
		} else if taken {
			return nil, repo.ErrUsernameTaken
		}
		u.Username = username
	}
	if email := strings.TrimSpace(in.Email); email != "" && email != u.Email {
		if taken, err := s.Users.ExistsByEmail(ctx, email); err != nil {
			return nil, err
		} else if taken {
			return nil, repo.ErrEmailTaken
		}
		u.Email = email
	}
	if in.NewPassword != "" {
		if in.CurrentPassword == "" || !helpers.CheckPassword(u.Password, in.CurrentPassword) {
			return nil, ErrWrongPassword
		}
		hash, err := helpers.HashPassword(in.NewPassword)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}

	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}

	count, err := s.Articles.CountByAuthor(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return &ProfileView{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role, ArticleCount: count}, nil
}

// sendWelcome enqueues the welcome email. Failures are logged, never fatal:
// registration must not depend on the broker.
func (s *AuthService) sendWelcome(ctx context.Context, u *entity.User) {
	if s.Mail == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data: map[string]any{
			"Username": u.Username,
			"Role":     string(u.Role),
			"CanWrite": u.Role != entity.RoleReader,
		},
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email enqueue failed")
	}
}
