// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "bistro/internal/delivery/context"
	"bistro/internal/domain/entity"
	domainerrors "bistro/internal/domain/errors"
	"bistro/internal/domain/repository"
	"bistro/internal/domain/service"
	"bistro/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	sessionRepo  repository.SessionRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	SessionRepo  repository.SessionRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		sessionRepo:  params.SessionRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new customer account. The duplicate check covers email
// and phone together, and the resulting error never says which one collided.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	// Hash outside the transaction: bcrypt is CPU-bound.
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during registration")
	}

	newUser := &entity.User{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: hashedPassword,
		Roles:        entity.Roles{entity.RoleCustomer},
		Status:       entity.StatusActive,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		taken, err := userRepo.ExistsByEmailOrPhone(ctx, input.Email, input.Phone)
		if err != nil {
			return errors.Wrap(err, "failed to check identity availability")
		}
		if taken {
			return errors.Wrap(domainerrors.ErrDuplicateIdentity, "registration rejected")
		}

		if err := userRepo.CreateUser(ctx, newUser); err != nil {
			// The unique indexes are the last line of defence against a
			// concurrent registration slipping past the check above.
			if errors.Is(err, repository.ErrDuplicateUser) {
				return errors.Wrap(domainerrors.ErrDuplicateIdentity, "registration rejected")
			}

			return errors.Wrap(err, "failed to create user during registration")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.RegisterOutput{User: newUser.Public()}, nil
}

// Login verifies credentials and opens a fresh refresh session. An unknown
// identifier and a wrong password fail identically so the response does not
// disclose which accounts exist.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.TokenPairOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("identifier", input.Identifier))

	user, err := srv.userRepo.FindUserByIdentifier(ctx, input.Identifier)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("identifier", input.Identifier))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	// Check password outside transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("identifier", input.Identifier))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	if user.Status == entity.StatusBlocked {
		srv.log(ctx).Warn("Blocked account attempted login", slog.Any("userID", user.ID))

		return nil, errors.Wrap(domainerrors.ErrUserBlocked, "login rejected")
	}

	pair, err := srv.openSession(ctx, user, input.ClientIP, input.ClientAgent)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("identifier", input.Identifier), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("User logged in", slog.Any("userID", user.ID))

	return pair, nil
}

// Refresh rotates a refresh token. The presented token's session is revoked
// with a conditional update, so under concurrent redeems exactly one caller
// wins and everyone else sees the same invalid-token error.
func (srv *authService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.TokenPairOutput, error) {
	srv.log(ctx).Debug("Attempting token refresh")

	claims, err := srv.tokenService.VerifyRefreshToken(input.RefreshToken)
	if err != nil {
		srv.log(ctx).Warn("Refresh with unverifiable token", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrInvalidToken, "refresh rejected")
	}

	tokenHash := srv.tokenService.HashToken(input.RefreshToken)

	var pair *usecase.TokenPairOutput
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		sessionRepo := repoFactory.NewSessionRepository()

		session, err := sessionRepo.FindActiveSession(ctx, claims.UserID, tokenHash)
		if err != nil {
			if errors.Is(err, repository.ErrSessionNotFound) {
				return errors.Wrap(domainerrors.ErrInvalidToken, "refresh rejected")
			}

			return errors.Wrap(err, "failed to load session for refresh")
		}

		// Spend the old session. Losing a concurrent race here is
		// indistinguishable from presenting a revoked token.
		if err := sessionRepo.RevokeSession(ctx, session.ID); err != nil {
			if errors.Is(err, repository.ErrSessionAlreadyRevoked) {
				return errors.Wrap(domainerrors.ErrInvalidToken, "refresh rejected")
			}

			return errors.Wrap(err, "failed to revoke session during refresh")
		}

		// Roles are re-read from storage, not trusted from the old token.
		user, err := userRepo.FindUserByID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrInvalidToken, "refresh rejected")
			}

			return errors.Wrap(err, "failed to load user for refresh")
		}
		if user.Status == entity.StatusBlocked {
			return errors.Wrap(domainerrors.ErrInvalidToken, "refresh rejected")
		}

		pair, err = srv.issueSession(ctx, sessionRepo, user, input.ClientIP, input.ClientAgent)
		if err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Refresh failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute refresh transaction")
	}

	srv.log(ctx).Debug("Token refreshed", slog.Any("userID", claims.UserID))

	return pair, nil
}

// Logout revokes the session behind the presented token. Unknown, expired and
// already revoked tokens all succeed silently; logout is idempotent.
func (srv *authService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	srv.log(ctx).Debug("Attempting logout")

	claims, err := srv.tokenService.VerifyRefreshToken(input.RefreshToken)
	if err != nil {
		// Nothing to revoke for a token we cannot attribute to a user.
		srv.log(ctx).Warn("Logout with unverifiable token", slog.Any("error", err))

		return nil
	}

	tokenHash := srv.tokenService.HashToken(input.RefreshToken)

	if err := srv.sessionRepo.RevokeSessionByHash(ctx, claims.UserID, tokenHash); err != nil {
		srv.log(ctx).Error("Failed to revoke session on logout", slog.Any("error", err))

		return errors.Wrap(err, "failed to revoke session on logout")
	}

	srv.log(ctx).Debug("Logged out", slog.Any("userID", claims.UserID))

	return nil
}

// CleanupExpiredSessions removes sessions past their expiry.
func (srv *authService) CleanupExpiredSessions(ctx context.Context) error {
	if err := srv.sessionRepo.DeleteExpiredSessions(ctx); err != nil {
		return errors.Wrap(err, "failed to delete expired sessions")
	}

	return nil
}

// openSession issues a token pair and persists the session outside any
// surrounding transaction.
func (srv *authService) openSession(ctx context.Context, user *entity.User, clientIP, clientAgent string) (*usecase.TokenPairOutput, error) {
	return srv.issueSession(ctx, srv.sessionRepo, user, clientIP, clientAgent)
}

// issueSession creates the token pair and stores the new session through the
// given repository, which may be transaction-bound.
func (srv *authService) issueSession(ctx context.Context, sessionRepo repository.SessionRepository, user *entity.User, clientIP, clientAgent string) (*usecase.TokenPairOutput, error) {
	accessToken, err := srv.tokenService.IssueAccessToken(user.ID, user.Email, user.Phone, user.Roles.ToStrings())
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	sessionID := uuid.New()
	refreshToken, expiresAt, err := srv.tokenService.IssueRefreshToken(user.ID, user.Email, user.Phone, user.Roles.ToStrings(), sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue refresh token")
	}

	newSession := &entity.Session{
		ID:          sessionID,
		UserID:      user.ID,
		TokenHash:   srv.tokenService.HashToken(refreshToken),
		ClientIP:    clientIP,
		ClientAgent: clientAgent,
		ExpiresAt:   expiresAt,
	}

	if err := sessionRepo.CreateSession(ctx, newSession); err != nil {
		return nil, errors.Wrap(err, "failed to store session")
	}

	return &usecase.TokenPairOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.Public(),
	}, nil
}
