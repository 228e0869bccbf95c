package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"triptacticx/internal/models"
)

// budgetNoise удаляется из строки бюджета перед разбором числа.
// "Rs." идет раньше "Rs", иначе останется точка.
var budgetNoise = strings.NewReplacer(
	"Rs.", "",
	"Rs", "",
	"rs.", "",
	"rs", "",
	"INR", "",
	"inr", "",
	"₹", "",
	"$", "",
	",", "",
	" ", "",
	"\t", "",
	"\u00a0", "",
)

// ParseBudget разбирает бюджет вида "Rs 45,000", "₹12000" или "1500.50".
func ParseBudget(raw string) (float64, error) {
	cleaned := strings.TrimSpace(budgetNoise.Replace(strings.TrimSpace(raw)))
	if cleaned == "" {
		return 0, fmt.Errorf("%w: budget is empty", models.ErrInvalidInput)
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: budget %q is not a number", models.ErrInvalidInput, raw)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: budget %q is not a finite number", models.ErrInvalidInput, raw)
	}
	if value < 0 {
		return 0, fmt.Errorf("%w: budget must not be negative", models.ErrInvalidInput)
	}
	return value, nil
}
