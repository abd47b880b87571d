package catalog

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"polynomial-residence/internal/residence/models"
	"polynomial-residence/internal/residence/units"
)

// ============================================================
// Consistency check
// ============================================================

// ErrInconsistent marks a disagreement between two independently authored
// facts of the feed, e.g. an area polynomial and its verification text.
var ErrInconsistent = errors.New("catalog inconsistent")

var verificationPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)ft x (\d+(?:\.\d+)?)ft = ([\d,]+(?:\.\d+)?) sq ft$`)

const epsilon = 1e-6

// Check cross-validates the polynomial text, verification strings and cost
// breakdowns of every room plus the house totals. All findings are joined.
func Check(c *Catalog) error {
	var errs []error

	house, err := MeasureHouse(c.house)
	if err != nil {
		errs = append(errs, err)
	} else {
		errs = append(errs, checkHouse(house)...)
	}

	for _, room := range c.Rooms() {
		m, err := MeasureRoom(room, c.house.CheckValue)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		errs = append(errs, checkRoom(room, m)...)
	}

	return errors.Join(errs...)
}

func checkHouse(h HouseMeasure) []error {
	var errs []error
	if !near(h.Width*h.Height, h.Area) {
		errs = append(errs, inconsistent("house", "area %s does not match %s x %s", units.Number(h.Area), units.Number(h.Width), units.Number(h.Height)))
	}
	if !near(2*(h.Width+h.Height), h.Perimeter) {
		errs = append(errs, inconsistent("house", "perimeter %s does not match 2(%s + %s)", units.Number(h.Perimeter), units.Number(h.Width), units.Number(h.Height)))
	}
	if h.HallwayWidth <= 0 || h.HallwayWidth >= h.Width {
		errs = append(errs, inconsistent("house", "hallway width %s outside house width %s", units.Number(h.HallwayWidth), units.Number(h.Width)))
	}
	return errs
}

func checkRoom(room models.RoomSpec, m Measure) []error {
	var errs []error
	subject := fmt.Sprintf("room %q", room.ID)

	if m.Width <= 0 || m.Height <= 0 {
		errs = append(errs, inconsistent(subject, "non-positive size %s x %s", units.Number(m.Width), units.Number(m.Height)))
	}
	if !near(m.Width*m.Height, m.Area) {
		errs = append(errs, inconsistent(subject, "area polynomial gives %s, dimensions give %s", units.Number(m.Area), units.Number(m.Width*m.Height)))
	}
	if !near(2*(m.Width+m.Height), m.Perimeter) {
		errs = append(errs, inconsistent(subject, "perimeter polynomial gives %s, dimensions give %s", units.Number(m.Perimeter), units.Number(2*(m.Width+m.Height))))
	}

	if w, h, area, err := parseVerification(room.Verification); err != nil {
		errs = append(errs, inconsistent(subject, "%v", err))
	} else if !near(w, m.Width) || !near(h, m.Height) || !near(area, m.Area) {
		errs = append(errs, inconsistent(subject, "verification %q disagrees with %s x %s = %s",
			room.Verification, units.Number(m.Width), units.Number(m.Height), units.Number(m.Area)))
	}

	if room.CostBreakdown != nil {
		errs = append(errs, checkCost(subject, room.CostBreakdown, m)...)
	}
	return errs
}

func checkCost(subject string, cb *models.CostBreakdown, m Measure) []error {
	var errs []error
	var sum int64

	if carpet := cb.Carpet; carpet != nil {
		if !near(carpet.Area, m.Area) {
			errs = append(errs, inconsistent(subject, "carpet area %s differs from room area %s", units.Number(carpet.Area), units.Number(m.Area)))
		}
		if units.Cents(carpet.Area*carpet.Rate) != units.Cents(carpet.Total) {
			errs = append(errs, inconsistent(subject, "carpet total %s is not area x rate", units.Money(carpet.Total)))
		}
		sum += units.Cents(carpet.Total)
	}
	if molding := cb.Molding; molding != nil {
		if !near(molding.Perimeter, m.Perimeter) {
			errs = append(errs, inconsistent(subject, "molding perimeter %s differs from room perimeter %s", units.Number(molding.Perimeter), units.Number(m.Perimeter)))
		}
		if units.Cents(molding.Perimeter*molding.Rate) != units.Cents(molding.Total) {
			errs = append(errs, inconsistent(subject, "molding total %s is not perimeter x rate", units.Money(molding.Total)))
		}
		sum += units.Cents(molding.Total)
	}
	if cb.Installation != nil {
		sum += units.Cents(*cb.Installation)
	}

	if sum != units.Cents(cb.Total) {
		errs = append(errs, inconsistent(subject, "cost total %s differs from line items %s", units.Money(cb.Total), units.Money(float64(sum)/100)))
	}
	return errs
}

func parseVerification(text string) (width, height, area float64, err error) {
	m := verificationPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0, 0, 0, fmt.Errorf("verification %q is not \"<w>ft x <h>ft = <area> sq ft\"", text)
	}
	values := make([]float64, 3)
	for i, raw := range m[1:] {
		v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("verification %q: %w", text, err)
		}
		values[i] = v
	}
	return values[0], values[1], values[2], nil
}

func inconsistent(subject, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInconsistent, subject, fmt.Sprintf(format, args...))
}

func near(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}
