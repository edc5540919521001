package services

import (
	"errors"
	"strings"
	"time"

	"github.com/SalvereHW/SelfCoach-backend/models"
	"github.com/SalvereHW/SelfCoach-backend/utils"

	"gorm.io/gorm"
)

type UserService struct {
	db         *gorm.DB
	identities *IdentityService
}

func NewUserService(db *gorm.DB, identities *IdentityService) *UserService {
	return &UserService{db: db, identities: identities}
}

// ProfileUpdate carries the patchable profile fields. Nil pointers leave
// the stored value untouched; list fields arrive as slices and are stored
// comma-separated.
type ProfileUpdate struct {
	FirstName        *string    `json:"first_name"`
	LastName         *string    `json:"last_name"`
	DateOfBirth      *time.Time `json:"date_of_birth"`
	Gender           *string    `json:"gender"`
	Height           *float64   `json:"height"`
	Weight           *float64   `json:"weight"`
	HealthConditions []string   `json:"health_conditions"`
	DietPreferences  []string   `json:"diet_preferences"`
	Allergies        []string   `json:"allergies"`
	ActivityLevel    *string    `json:"activity_level"`
	Preferences      *string    `json:"preferences"`
}

// CreateProfile fills in the skeleton row provisioned at first login. The
// subject and email come from the verified token, never the request body.
func (s *UserService) CreateProfile(user *models.User, input ProfileUpdate) (*models.User, error) {
	return s.UpdateProfile(user.ID, input)
}

func (s *UserService) Get(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &user, nil
}

// UpdateProfile applies the patch and invalidates the identity cache so
// the next authenticated request sees the committed row.
func (s *UserService) UpdateProfile(userID uint, input ProfileUpdate) (*models.User, error) {
	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	patch := map[string]any{}
	if input.FirstName != nil {
		patch["first_name"] = *input.FirstName
	}
	if input.LastName != nil {
		patch["last_name"] = *input.LastName
	}
	if input.DateOfBirth != nil {
		patch["date_of_birth"] = *input.DateOfBirth
	}
	if input.Gender != nil {
		patch["gender"] = *input.Gender
	}
	if input.Height != nil {
		patch["height"] = *input.Height
	}
	if input.Weight != nil {
		patch["weight"] = *input.Weight
	}
	if input.HealthConditions != nil {
		patch["health_conditions"] = strings.Join(input.HealthConditions, ",")
	}
	if input.DietPreferences != nil {
		patch["diet_preferences"] = strings.Join(input.DietPreferences, ",")
	}
	if input.Allergies != nil {
		patch["allergies"] = strings.Join(input.Allergies, ",")
	}
	if input.ActivityLevel != nil {
		patch["activity_level"] = *input.ActivityLevel
	}
	if input.Preferences != nil {
		patch["preferences"] = *input.Preferences
	}

	if len(patch) > 0 {
		if err := s.db.Model(user).Updates(patch).Error; err != nil {
			if isUniqueViolation(err) {
				return nil, ErrDuplicate
			}
			return nil, err
		}
	}

	s.invalidateIdentity(user)
	utils.LogDataAccess("update", "user_profile", utils.Fields{"user_id": userID})
	return s.Get(userID)
}

// Delete removes the account along with everything it owns, in one
// transaction. Deletion goes through gorm's DeletedAt marker, which is
// enough to stop identity resolution and the reminder sweep immediately;
// the owned rows are removed explicitly because the marker never reaches
// the database-level cascade.
func (s *UserService) Delete(userID uint) error {
	user, err := s.Get(userID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		owned := []any{
			&models.ReminderAction{},
			&models.Reminder{},
			&models.SleepMetric{},
			&models.NutritionMetric{},
			&models.ActivityMetric{},
			&models.DailySummary{},
			&models.SessionProgress{},
			&models.AIInsight{},
		}
		for _, m := range owned {
			if err := tx.Where("user_id = ?", userID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(user).Error
	})
	if err != nil {
		return err
	}

	s.invalidateIdentity(user)
	utils.LogDataAccess("delete", "user_profile", utils.Fields{"user_id": userID})
	return nil
}

// ListAll returns every profile row, newest first. Admin surface only.
func (s *UserService) ListAll(limit int) ([]models.User, error) {
	q := s.db.Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) invalidateIdentity(user *models.User) {
	if s.identities != nil && user.SubjectID != nil {
		s.identities.Invalidate(*user.SubjectID)
	}
}

// isUniqueViolation matches the duplicate-key errors the postgres driver
// surfaces through gorm.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}
