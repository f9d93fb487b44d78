package categorizer

import (
	"time"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/pkg/types"
)

// Result is the categorization of one (date, start time) pair.
type Result struct {
	Category      domain.SlotCategory
	IsRush        bool
	FeePercentage int
	Note          string
}

// Categorizer maps a calendar date and start time onto a slot category using
// the declarative band table loaded at startup. It performs no I/O and holds
// no mutable state, so the same inputs always produce the same Result.
type Categorizer struct {
	table *domain.CategoryTable
}

// New creates a categorizer over the given table.
func New(table *domain.CategoryTable) *Categorizer {
	return &Categorizer{table: table}
}

// Categorize resolves the category, rush flag, fee percentage and provider
// note for a slot starting at start on date.
//
// Rules are evaluated in table order, first match wins, and bands are
// half-open [from, to): a start time exactly on a band boundary belongs to
// the band that begins there, never the one that ends there.
func (c *Categorizer) Categorize(date time.Time, start types.TimeString) Result {
	category := domain.CategoryNormal

	day := date.Weekday()
	for i := range c.table.Rules {
		if c.table.Rules[i].Matches(day, start) {
			category = c.table.Rules[i].Category
			break
		}
	}

	return Result{
		Category:      category,
		IsRush:        category != domain.CategoryNormal,
		FeePercentage: c.table.FeeFor(category),
		Note:          c.table.NoteFor(category, start),
	}
}
