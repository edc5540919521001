package models

import (
	"time"

	"gorm.io/gorm"
)

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
	MealDrink     MealType = "drink"
)

type ServingUnit string

const (
	UnitGrams       ServingUnit = "grams"
	UnitOunces      ServingUnit = "ounces"
	UnitCups        ServingUnit = "cups"
	UnitTablespoons ServingUnit = "tablespoons"
	UnitTeaspoons   ServingUnit = "teaspoons"
	UnitPieces      ServingUnit = "pieces"
	UnitSlices      ServingUnit = "slices"
	UnitMilliliters ServingUnit = "milliliters"
	UnitLiters      ServingUnit = "liters"
	UnitFluidOunces ServingUnit = "fluid_ounces"
)

// NutritionMetric is one self-reported food/drink entry. Macro fields are
// grams, sodium mg, water ml.
type NutritionMetric struct {
	gorm.Model
	Date        time.Time   `gorm:"index:idx_nutrition_user_date,priority:2" json:"date"`
	MealType    MealType    `gorm:"type:varchar(16);not null" json:"meal_type"`
	FoodName    string      `gorm:"not null" json:"food_name"`
	ServingSize float64     `json:"serving_size"`
	ServingUnit ServingUnit `gorm:"type:varchar(16)" json:"serving_unit"`
	Calories    float64     `json:"calories,omitempty"`
	Protein     float64     `json:"protein,omitempty"`
	Carbs       float64     `json:"carbs,omitempty"`
	Fats        float64     `json:"fats,omitempty"`
	Fiber       float64     `json:"fiber,omitempty"`
	Sugar       float64     `json:"sugar,omitempty"`
	Sodium      float64     `json:"sodium,omitempty"`
	WaterIntake float64     `json:"water_intake,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	UserID      uint        `gorm:"index:idx_nutrition_user_date,priority:1;not null" json:"user_id"`

	User *User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type MacroBreakdown struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fats    int `json:"fats"`
}

// Macros returns the percent split of calories across protein/carbs/fats,
// or nil when any macro is missing.
func (n *NutritionMetric) Macros() *MacroBreakdown {
	if n.Protein == 0 || n.Carbs == 0 || n.Fats == 0 {
		return nil
	}

	proteinCal := n.Protein * 4
	carbCal := n.Carbs * 4
	fatCal := n.Fats * 9
	total := proteinCal + carbCal + fatCal
	if total == 0 {
		return nil
	}

	return &MacroBreakdown{
		Protein: int(proteinCal/total*100 + 0.5),
		Carbs:   int(carbCal/total*100 + 0.5),
		Fats:    int(fatCal/total*100 + 0.5),
	}
}
