package postgres

import (
	"context"
	"time"

	"bistro/internal/domain/entity"
	domainerrors "bistro/internal/domain/errors"
	"bistro/internal/domain/repository"
	"bistro/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// sessionRepository implements the domain.SessionRepository interface.
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// CreateSession persists a new refresh session.
func (repo *sessionRepository) CreateSession(ctx context.Context, session *entity.Session) error {
	sessionM := fromSessionDomain(session)

	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("invalid user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create session")
	}

	session.ID = sessionM.ID
	session.CreatedAt = sessionM.CreatedAt

	return nil
}

// FindActiveSession retrieves the session for a user and token hash that is
// neither revoked nor expired. Revoked, expired and missing sessions are all
// reported as ErrSessionNotFound.
func (repo *sessionRepository) FindActiveSession(ctx context.Context, userID uuid.UUID, tokenHash string) (*entity.Session, error) {
	var sessionM model.SessionModel
	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND token_hash = ? AND is_revoked = ? AND expires_at > ?",
			userID, tokenHash, false, time.Now()).
		First(&sessionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toSessionDomain(&sessionM), nil
}

// RevokeSession flips is_revoked only when it is still false. The guard makes
// concurrent refreshes race safely: exactly one caller wins, the rest get
// ErrSessionAlreadyRevoked.
func (repo *sessionRepository) RevokeSession(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.SessionModel{}).
		Where("id = ? AND is_revoked = ?", id, false).
		Update("is_revoked", true)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to revoke session")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSessionAlreadyRevoked
	}

	return nil
}

// RevokeSessionByHash marks the matching session revoked. Missing or already
// revoked sessions are ignored so logout stays idempotent.
func (repo *sessionRepository) RevokeSessionByHash(ctx context.Context, userID uuid.UUID, tokenHash string) error {
	if err := repo.db.WithContext(ctx).
		Model(&model.SessionModel{}).
		Where("user_id = ? AND token_hash = ?", userID, tokenHash).
		Update("is_revoked", true).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to revoke session by hash")
	}

	return nil
}

// DeleteExpiredSessions removes all sessions past their expiry.
func (repo *sessionRepository) DeleteExpiredSessions(ctx context.Context) error {
	if err := repo.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&model.SessionModel{}).Error; err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// --- Mapper Functions ---

// toSessionDomain converts a GORM SessionModel to a domain Session entity.
func toSessionDomain(data *model.SessionModel) *entity.Session {
	if data == nil {
		return nil
	}

	return &entity.Session{
		ID:          data.ID,
		UserID:      data.UserID,
		TokenHash:   data.TokenHash,
		ClientIP:    data.ClientIP,
		ClientAgent: data.ClientAgent,
		IsRevoked:   data.IsRevoked,
		ExpiresAt:   data.ExpiresAt,
		CreatedAt:   data.CreatedAt,
	}
}

// fromSessionDomain converts a domain Session entity to a GORM SessionModel.
func fromSessionDomain(data *entity.Session) *model.SessionModel {
	if data == nil {
		return nil
	}

	return &model.SessionModel{
		ID:          data.ID,
		UserID:      data.UserID,
		TokenHash:   data.TokenHash,
		ClientIP:    data.ClientIP,
		ClientAgent: data.ClientAgent,
		IsRevoked:   data.IsRevoked,
		ExpiresAt:   data.ExpiresAt,
		CreatedAt:   data.CreatedAt,
	}
}
