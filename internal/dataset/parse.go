package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sachihirani/supplier-risk-dashboard/internal/common"
	"github.com/sachihirani/supplier-risk-dashboard/internal/model"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	errInvalidDate   = errors.New("invalid date")
	errInvalidBool   = errors.New("invalid boolean")
	errInvalidAmount = errors.New("invalid amount")
	errInvalidNumber = errors.New("invalid number")
	errInvalidRisk   = errors.New("risk score must be 1, 2 or 3")
)

// dateLayouts are tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"02-Jan-2006",
	"2 Jan 2006",
}

// isBlank treats empty cells and the usual missing markers as absent.
func isBlank(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nan", "nat", "null", "none", "n/a":
		return true
	}
	return false
}

// parseDate returns the zero time for blank values.
func parseDate(s string) (time.Time, error) {
	if isBlank(s) {
		return time.Time{}, nil
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return model.DateOf(t), nil
		}
	}
	return time.Time{}, errInvalidDate
}

func parseBool(s string) (bool, error) {
	if isBlank(s) {
		return false, nil
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "1.0", "true", "t", "yes", "y":
		return true, nil
	case "0", "0.0", "false", "f", "no", "n":
		return false, nil
	}
	return false, errInvalidBool
}

func parseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return decimal.Zero, errInvalidAmount
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, errInvalidAmount
	}
	return d, nil
}

// parseWholeNumber accepts integers written as floats, e.g. "30.0".
func parseWholeNumber(s string) (int, error) {
	if isBlank(s) {
		return 0, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f != math.Trunc(f) {
		return 0, errInvalidNumber
	}
	return int(f), nil
}

func parseRiskScore(s string) (model.RiskScore, error) {
	n, err := parseWholeNumber(s)
	if err != nil {
		return model.RiskNone, errInvalidRisk
	}
	score := model.RiskScore(n)
	if score == model.RiskNone || score.Valid() {
		return score, nil
	}
	return model.RiskNone, errInvalidRisk
}

// normalizeStatus trims and title-cases a status string.
func normalizeStatus(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	// Casers carry state, so one is built per call.
	return cases.Title(language.English).String(s)
}

func cleanText(s string) string {
	if isBlank(s) {
		return ""
	}
	return strings.TrimSpace(s)
}

func fieldError(row int, column, value string, err error) error {
	return &common.RowError{
		Row:    row,
		Column: column,
		Value:  value,
		Err:    fmt.Errorf("%w: %w", common.ErrInvalidRow, err),
	}
}
