package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"bistro/internal/domain/entity"
	"bistro/internal/domain/repository"
	"bistro/internal/domain/service"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- in-memory repositories ---

type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *memUserRepo) CreateUser(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Phone == user.Phone {
			return repository.ErrDuplicateUser
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone

	return nil
}

func (r *memUserRepo) FindUserByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user

	return &clone, nil
}

func (r *memUserRepo) FindUserByIdentifier(_ context.Context, identifier string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == identifier || user.Phone == identifier {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) ExistsByEmailOrPhone(_ context.Context, email, phone string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email || user.Phone == phone {
			return true, nil
		}
	}

	return false, nil
}

func (r *memUserRepo) ListUsers(_ context.Context, filter repository.UserListFilter) ([]*entity.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*entity.User
	for _, user := range r.users {
		if filter.Status != "" && string(user.Status) != filter.Status {
			continue
		}
		if filter.Role != "" && !user.Roles.Contains(entity.Role(filter.Role)) {
			continue
		}
		if filter.Search != "" && !strings.Contains(user.Email, filter.Search) && !strings.Contains(user.Name, filter.Search) {
			continue
		}
		clone := *user
		matched = append(matched, &clone)
	}

	return matched, int64(len(matched)), nil
}

func (r *memUserRepo) UpdateUser(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	for id, existing := range r.users {
		if id != user.ID && (existing.Email == user.Email || existing.Phone == user.Phone) {
			return repository.ErrDuplicateUser
		}
	}
	clone := *user
	r.users[user.ID] = &clone

	return nil
}

func (r *memUserRepo) UpdateUserStatus(_ context.Context, id uuid.UUID, status entity.UserStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.Status = status

	return nil
}

func (r *memUserRepo) UpdateUserRoles(_ context.Context, id uuid.UUID, roles entity.Roles) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.Roles = roles

	return nil
}

func (r *memUserRepo) CountUsers(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.users)), nil
}

type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (r *memSessionRepo) CreateSession(_ context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	session.CreatedAt = time.Now()
	clone := *session
	r.sessions[session.ID] = &clone

	return nil
}

func (r *memSessionRepo) FindActiveSession(_ context.Context, userID uuid.UUID, tokenHash string) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, session := range r.sessions {
		if session.UserID == userID && session.TokenHash == tokenHash && session.Usable(time.Now()) {
			clone := *session

			return &clone, nil
		}
	}

	return nil, repository.ErrSessionNotFound
}

func (r *memSessionRepo) RevokeSession(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok || session.IsRevoked {
		return repository.ErrSessionAlreadyRevoked
	}
	session.IsRevoked = true

	return nil
}

func (r *memSessionRepo) RevokeSessionByHash(_ context.Context, userID uuid.UUID, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, session := range r.sessions {
		if session.UserID == userID && session.TokenHash == tokenHash {
			session.IsRevoked = true
		}
	}

	return nil
}

func (r *memSessionRepo) DeleteExpiredSessions(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, session := range r.sessions {
		if session.ExpiresAt.Before(time.Now()) {
			delete(r.sessions, id)
		}
	}

	return nil
}

type memMenuRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.MenuItem
}

func newMemMenuRepo() *memMenuRepo {
	return &memMenuRepo{items: make(map[uuid.UUID]*entity.MenuItem)}
}

func (r *memMenuRepo) CreateMenuItem(_ context.Context, item *entity.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.CreatedAt = time.Now()
	clone := *item
	r.items[item.ID] = &clone

	return nil
}

func (r *memMenuRepo) FindMenuItemByID(_ context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, repository.ErrMenuItemNotFound
	}
	clone := *item

	return &clone, nil
}

func (r *memMenuRepo) ListMenuItems(_ context.Context, filter repository.MenuItemFilter) ([]*entity.MenuItem, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	var matched []*entity.MenuItem
	for _, item := range r.items {
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.Type != "" && item.Type != filter.Type {
			continue
		}
		if filter.AvailableOnly && !item.IsAvailable {
			continue
		}
		if filter.ActiveDiscount && !item.DiscountActive(now) {
			continue
		}
		if filter.Search != "" && !strings.Contains(item.Name, filter.Search) && !strings.Contains(item.Description, filter.Search) {
			continue
		}
		if filter.MinPrice != nil && item.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && item.Price > *filter.MaxPrice {
			continue
		}
		clone := *item
		matched = append(matched, &clone)
	}

	return matched, int64(len(matched)), nil
}

func (r *memMenuRepo) UpdateMenuItem(_ context.Context, item *entity.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[item.ID]
	if !ok {
		return repository.ErrMenuItemNotFound
	}
	item.Rate = existing.Rate
	item.RateCount = existing.RateCount
	clone := *item
	r.items[item.ID] = &clone

	return nil
}

func (r *memMenuRepo) UpdateMenuItemRating(_ context.Context, id uuid.UUID, summary entity.RatingSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return repository.ErrMenuItemNotFound
	}
	item.Rate = summary.Average
	item.RateCount = summary.Count

	return nil
}

func (r *memMenuRepo) DeleteMenuItem(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return repository.ErrMenuItemNotFound
	}
	delete(r.items, id)

	return nil
}

func (r *memMenuRepo) CountMenuItems(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.items)), nil
}

func (r *memMenuRepo) MenuItemStats(_ context.Context, now time.Time) (repository.MenuStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var sum float64
	var rated int
	var discounted int64
	for _, item := range r.items {
		if item.RateCount > 0 {
			sum += item.Rate
			rated++
		}
		if item.DiscountActive(now) {
			discounted++
		}
	}

	stats := repository.MenuStats{DiscountedCount: discounted}
	if rated > 0 {
		stats.AverageRating = math.Round(sum/float64(rated)*100) / 100
	}

	return stats, nil
}

type memReviewRepo struct {
	mu      sync.Mutex
	reviews map[uuid.UUID]*entity.Review
}

func newMemReviewRepo() *memReviewRepo {
	return &memReviewRepo{reviews: make(map[uuid.UUID]*entity.Review)}
}

func (r *memReviewRepo) UpsertReview(_ context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.reviews {
		if existing.MenuItemID == review.MenuItemID && existing.UserID == review.UserID {
			existing.Rating = review.Rating
			existing.Comment = review.Comment
			existing.Images = review.Images
			existing.UpdatedAt = time.Now()
			review.ID = existing.ID

			return nil
		}
	}
	review.ID = uuid.New()
	review.CreatedAt = time.Now()
	clone := *review
	r.reviews[review.ID] = &clone

	return nil
}

func (r *memReviewRepo) FindReview(_ context.Context, menuItemID, userID uuid.UUID) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, review := range r.reviews {
		if review.MenuItemID == menuItemID && review.UserID == userID {
			clone := *review

			return &clone, nil
		}
	}

	return nil, repository.ErrReviewNotFound
}

func (r *memReviewRepo) ListReviewsByMenuItem(_ context.Context, menuItemID uuid.UUID, _, _ int) ([]*entity.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*entity.Review
	for _, review := range r.reviews {
		if review.MenuItemID == menuItemID {
			clone := *review
			matched = append(matched, &clone)
		}
	}

	return matched, int64(len(matched)), nil
}

func (r *memReviewRepo) DeleteReview(_ context.Context, menuItemID, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, review := range r.reviews {
		if review.MenuItemID == menuItemID && review.UserID == userID {
			delete(r.reviews, id)

			return nil
		}
	}

	return repository.ErrReviewNotFound
}

func (r *memReviewRepo) SummarizeRatings(_ context.Context, menuItemID uuid.UUID) (entity.RatingSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var sum float64
	var count int
	for _, review := range r.reviews {
		if review.MenuItemID == menuItemID {
			sum += review.Rating
			count++
		}
	}
	if count == 0 {
		return entity.RatingSummary{}, nil
	}

	return entity.RatingSummary{
		Average: math.Round(sum/float64(count)*100) / 100,
		Count:   count,
	}, nil
}

func (r *memReviewRepo) CountReviews(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.reviews)), nil
}

type memPrefRepo struct {
	mu    sync.Mutex
	prefs map[uuid.UUID]*entity.UserPreference
}

func newMemPrefRepo() *memPrefRepo {
	return &memPrefRepo{prefs: make(map[uuid.UUID]*entity.UserPreference)}
}

func (r *memPrefRepo) FindPreferenceByUserID(_ context.Context, userID uuid.UUID) (*entity.UserPreference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pref, ok := r.prefs[userID]
	if !ok {
		return &entity.UserPreference{UserID: userID}, nil
	}
	clone := *pref

	return &clone, nil
}

func (r *memPrefRepo) SavePreference(_ context.Context, pref *entity.UserPreference) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if pref.ID == uuid.Nil {
		pref.ID = uuid.New()
	}
	pref.UpdatedAt = time.Now()
	clone := *pref
	r.prefs[pref.UserID] = &clone

	return nil
}

// --- transaction plumbing ---

type memFactory struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	menuRepo    repository.MenuItemRepository
	reviewRepo  repository.ReviewRepository
	prefRepo    repository.PreferenceRepository
}

func (f *memFactory) NewUserRepository() repository.UserRepository             { return f.userRepo }
func (f *memFactory) NewSessionRepository() repository.SessionRepository       { return f.sessionRepo }
func (f *memFactory) NewMenuItemRepository() repository.MenuItemRepository     { return f.menuRepo }
func (f *memFactory) NewReviewRepository() repository.ReviewRepository         { return f.reviewRepo }
func (f *memFactory) NewPreferenceRepository() repository.PreferenceRepository { return f.prefRepo }

type memTxManager struct {
	factory *memFactory
}

func (tm *memTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(tm.factory)
}

// --- stateless service fakes ---

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Check(password, hash string) bool { return hash == "hashed:"+password }

// fakeTokenService issues opaque tokens and remembers their claims.
type fakeTokenService struct {
	mu     sync.Mutex
	seq    int
	claims map[string]*service.Claims
	ttl    time.Duration
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{
		claims: make(map[string]*service.Claims),
		ttl:    time.Hour,
	}
}

func (s *fakeTokenService) IssueAccessToken(userID uuid.UUID, email, phone string, roles []string) (string, error) {
	return s.issue("access", userID, email, phone, roles, uuid.Nil), nil
}

func (s *fakeTokenService) IssueRefreshToken(userID uuid.UUID, email, phone string, roles []string, sessionID uuid.UUID) (string, time.Time, error) {
	return s.issue("refresh", userID, email, phone, roles, sessionID), time.Now().Add(s.ttl), nil
}

func (s *fakeTokenService) issue(kind string, userID uuid.UUID, email, phone string, roles []string, sessionID uuid.UUID) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	token := fmt.Sprintf("%s-token-%d", kind, s.seq)
	s.claims[token] = &service.Claims{
		UserID:    userID,
		Email:     email,
		Phone:     phone,
		Roles:     roles,
		SessionID: sessionID,
	}

	return token
}

func (s *fakeTokenService) VerifyAccessToken(token string) (*service.Claims, error) {
	return s.verify(token, "access")
}

func (s *fakeTokenService) VerifyRefreshToken(token string) (*service.Claims, error) {
	return s.verify(token, "refresh")
}

func (s *fakeTokenService) verify(token, kind string) (*service.Claims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	claims, ok := s.claims[token]
	if !ok || !strings.HasPrefix(token, kind) {
		return nil, fmt.Errorf("token is unverifiable")
	}

	return claims, nil
}

func (s *fakeTokenService) HashToken(token string) string { return "sha:" + token }

func (s *fakeTokenService) RefreshTokenDuration() time.Duration { return s.ttl }
