package domain

import (
	"fmt"
	"time"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/pkg/types"
)

// CategoryRule is one row of the category band table: a set of weekdays plus
// a half-open [From, To) time-of-day band mapping to a category. Rules are
// evaluated in order, first match wins.
type CategoryRule struct {
	Name     string
	Days     []time.Weekday
	From     types.TimeString
	To       types.TimeString
	Category SlotCategory
}

// Matches reports whether the rule covers the given weekday and start time.
// Band intervals are half-open: a start exactly on From matches, a start
// exactly on To does not. That is the documented tie-break for boundary
// times shared by two adjacent bands.
func (r *CategoryRule) Matches(day time.Weekday, start types.TimeString) bool {
	dayOK := false
	for _, d := range r.Days {
		if d == day {
			dayOK = true
			break
		}
	}
	if !dayOK {
		return false
	}
	return !start.IsBefore(r.From) && start.IsBefore(r.To)
}

// Validate checks the rule shape.
func (r *CategoryRule) Validate() error {
	if len(r.Days) == 0 {
		return fmt.Errorf("rule %q: no days", r.Name)
	}
	if err := r.From.Validate(); err != nil {
		return fmt.Errorf("rule %q: from: %v", r.Name, err)
	}
	if err := r.To.Validate(); err != nil {
		return fmt.Errorf("rule %q: to: %v", r.Name, err)
	}
	if !r.From.IsBefore(r.To) {
		return fmt.Errorf("rule %q: from %s must be before to %s", r.Name, r.From, r.To)
	}
	if !r.Category.IsValid() {
		return fmt.Errorf("rule %q: unknown category %q", r.Name, r.Category)
	}
	return nil
}

// CategoryTable is the declarative categorization config: an ordered rule
// list, a total category→fee mapping and per-category note templates. It is
// loaded once at startup so categorization stays a pure function over it.
type CategoryTable struct {
	Rules         []CategoryRule
	FeePercentage map[SlotCategory]int
	NoteTemplates map[SlotCategory]string
}

// FeeFor returns the rush fee percentage for a category. The mapping is
// total: categories without an explicit entry map to 0.
func (t *CategoryTable) FeeFor(c SlotCategory) int {
	if fee, ok := t.FeePercentage[c]; ok {
		return fee
	}
	return 0
}

// NoteFor renders the descriptive provider note for a category and start
// time. Purely cosmetic; callers must not branch on it.
func (t *CategoryTable) NoteFor(c SlotCategory, start types.TimeString) string {
	tmpl, ok := t.NoteTemplates[c]
	if !ok {
		tmpl = "%s slot starting at %s"
		return fmt.Sprintf(tmpl, c, start)
	}
	return fmt.Sprintf(tmpl, start)
}

// Validate checks every rule and fee entry.
func (t *CategoryTable) Validate() error {
	for i := range t.Rules {
		if err := t.Rules[i].Validate(); err != nil {
			return err
		}
	}
	for c, fee := range t.FeePercentage {
		if !c.IsValid() {
			return fmt.Errorf("fee table: unknown category %q", c)
		}
		if fee < 0 || fee > 100 {
			return fmt.Errorf("fee table: category %q fee %d out of range [0, 100]", c, fee)
		}
	}
	return nil
}

// DefaultCategoryTable returns the built-in band table used when the config
// file does not override it. Weekday evenings are rush hours, weekend
// daytime is peak, early weekday mornings are off-peak.
func DefaultCategoryTable() *CategoryTable {
	weekdays := []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
	weekend := []time.Weekday{time.Saturday, time.Sunday}

	return &CategoryTable{
		Rules: []CategoryRule{
			{Name: "weekday_evening_rush", Days: weekdays, From: "17:00", To: "20:00", Category: CategoryRush},
			{Name: "weekday_early_morning", Days: weekdays, From: "06:00", To: "09:00", Category: CategoryOffPeak},
			{Name: "weekend_daytime", Days: weekend, From: "09:00", To: "18:00", Category: CategoryPeak},
			{Name: "weekend_evening", Days: weekend, From: "18:00", To: "21:00", Category: CategoryRush},
		},
		FeePercentage: map[SlotCategory]int{
			CategoryNormal:  0,
			CategoryOffPeak: 0,
			CategoryPeak:    15,
			CategoryRush:    25,
			CategoryExpress: 30,
		},
		NoteTemplates: map[SlotCategory]string{
			CategoryNormal:  "Standard slot starting at %s",
			CategoryOffPeak: "Off-peak slot starting at %s - discounted demand period",
			CategoryPeak:    "Peak slot starting at %s - high demand period",
			CategoryRush:    "Rush-hour slot starting at %s - surcharge applies",
			CategoryExpress: "Express slot starting at %s - priority service",
		},
	}
}
