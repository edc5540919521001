package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/SalvereHW/SelfCoach-backend/models"
	"github.com/SalvereHW/SelfCoach-backend/utils"

	"gorm.io/gorm"
)

const identityCacheTTL = 5 * time.Minute

// UserRepo is the slice of the store the resolver needs. The gorm-backed
// implementation is used in production; tests inject fakes.
type UserRepo interface {
	FindBySubject(subject string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	LinkSubject(userID uint, subject string) (*models.User, error)
	Create(user *models.User) error
}

// IdentityService maps a verified claim set to a persisted User. Unknown
// but trusted subjects are provisioned on first sight; subjects matching
// an existing email get linked to that row instead of duplicated.
type IdentityService struct {
	repo UserRepo

	mu    sync.RWMutex
	cache map[string]cachedIdentity
}

type cachedIdentity struct {
	user    *models.User
	expires time.Time
}

func NewIdentityService(repo UserRepo) *IdentityService {
	return &IdentityService{
		repo:  repo,
		cache: make(map[string]cachedIdentity),
	}
}

func (s *IdentityService) Resolve(claims *Claims) (*models.User, error) {
	if claims == nil || claims.Subject == "" {
		return nil, ErrUserResolution
	}

	if user := s.cached(claims.Subject); user != nil {
		return user, nil
	}

	user, err := s.repo.FindBySubject(claims.Subject)
	switch {
	case err == nil:
		s.store(claims.Subject, user)
		return user, nil
	case !errors.Is(err, ErrNotFound):
		return nil, fmt.Errorf("lookup by subject: %w", err)
	}

	if claims.Email == "" {
		return nil, fmt.Errorf("%w: subject unknown and token carries no email", ErrUserResolution)
	}

	existing, err := s.repo.FindByEmail(claims.Email)
	switch {
	case err == nil:
		linked, err := s.repo.LinkSubject(existing.ID, claims.Subject)
		if err != nil {
			return nil, fmt.Errorf("link subject: %w", err)
		}
		utils.LogInfo("linked identity subject to existing user", utils.Fields{
			"user_id": linked.ID,
		})
		s.store(claims.Subject, linked)
		return linked, nil
	case !errors.Is(err, ErrNotFound):
		return nil, fmt.Errorf("lookup by email: %w", err)
	}

	user = provisionFromClaims(claims)
	if err := s.repo.Create(user); err != nil {
		return nil, fmt.Errorf("provision user: %w", err)
	}
	utils.LogInfo("provisioned user from first token", utils.Fields{
		"user_id": user.ID,
	})
	s.store(claims.Subject, user)
	return user, nil
}

// Invalidate drops the cached entry for a subject. Profile mutations call
// this so the next request observes the committed row.
func (s *IdentityService) Invalidate(subject string) {
	s.mu.Lock()
	delete(s.cache, subject)
	s.mu.Unlock()
}

func (s *IdentityService) cached(subject string) *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.cache[subject]
	if !ok || time.Now().After(entry.expires) {
		return nil
	}
	return entry.user
}

func (s *IdentityService) store(subject string, user *models.User) {
	s.mu.Lock()
	s.cache[subject] = cachedIdentity{user: user, expires: time.Now().Add(identityCacheTTL)}
	s.mu.Unlock()
}

func provisionFromClaims(claims *Claims) *models.User {
	subject := claims.Subject
	user := &models.User{
		SubjectID: &subject,
		Email:     claims.Email,
		FirstName: "Unknown",
		LastName:  "User",
		IsActive:  true,
	}
	if v, ok := claims.Metadata["first_name"].(string); ok && v != "" {
		user.FirstName = v
	}
	if v, ok := claims.Metadata["last_name"].(string); ok && v != "" {
		user.LastName = v
	}
	return user
}

// GormUserRepo is the production UserRepo.
type GormUserRepo struct {
	db *gorm.DB
}

func NewGormUserRepo(db *gorm.DB) *GormUserRepo { return &GormUserRepo{db: db} }

func (r *GormUserRepo) FindBySubject(subject string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("subject_id = ?", subject).First(&user).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &user, nil
}

func (r *GormUserRepo) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &user, nil
}

func (r *GormUserRepo) LinkSubject(userID uint, subject string) (*models.User, error) {
	if err := r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("subject_id", subject).Error; err != nil {
		return nil, err
	}
	var user models.User
	if err := r.db.First(&user, userID).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &user, nil
}

func (r *GormUserRepo) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func translateGormError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
