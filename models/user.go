package models

import (
	"time"

	"gorm.io/gorm"
)

type ActivityLevel string

const (
	ActivityLevelSedentary        ActivityLevel = "sedentary"
	ActivityLevelLightlyActive    ActivityLevel = "lightly_active"
	ActivityLevelModeratelyActive ActivityLevel = "moderately_active"
	ActivityLevelVeryActive       ActivityLevel = "very_active"
	ActivityLevelExtraActive      ActivityLevel = "extra_active"
)

// User is the profile row. SubjectID is the stable identifier issued by the
// external identity provider; it stays nil until the account is linked or
// provisioned from a first token.
type User struct {
	gorm.Model
	SubjectID        *string       `gorm:"uniqueIndex" json:"subject_id,omitempty"`
	Email            string        `gorm:"uniqueIndex;not null" json:"email"`
	FirstName        string        `json:"first_name"`
	LastName         string        `json:"last_name"`
	DateOfBirth      *time.Time    `json:"date_of_birth,omitempty"`
	Gender           string        `json:"gender,omitempty"`
	Height           float64       `json:"height,omitempty"`            // cm
	Weight           float64       `json:"weight,omitempty"`            // kg
	HealthConditions string        `json:"health_conditions,omitempty"` // comma-sep
	DietPreferences  string        `json:"diet_preferences,omitempty"`  // comma-sep
	ActivityLevel    ActivityLevel `gorm:"type:varchar(32);default:moderately_active" json:"activity_level"`
	Allergies        string        `json:"allergies,omitempty"`   // comma-sep
	Preferences      string        `json:"preferences,omitempty"` // free-form JSON blob
	IsActive         bool          `gorm:"default:true" json:"is_active"`
	IsAdmin          bool          `gorm:"default:false" json:"-"`
}

func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Age at the given instant; -1 when no birth date is recorded.
func (u *User) Age(now time.Time) int {
	if u.DateOfBirth == nil {
		return -1
	}
	b := *u.DateOfBirth
	age := now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		age--
	}
	return age
}
