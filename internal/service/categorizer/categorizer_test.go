package categorizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/FarhanAlam-Official/SewaBazaar-sub002/internal/domain"
	"github.com/FarhanAlam-Official/SewaBazaar-sub002/pkg/types"
)

// 2026-03-16 is a Monday, 2026-03-21 a Saturday.
var (
	monday   = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC)
)

func TestCategorize_DefaultTable(t *testing.T) {
	c := New(domain.DefaultCategoryTable())

	cases := []struct {
		name     string
		date     time.Time
		start    types.TimeString
		category domain.SlotCategory
		fee      int
	}{
		{"weekday evening is rush", monday, "18:00", domain.CategoryRush, 25},
		{"weekday early morning is off-peak", monday, "07:00", domain.CategoryOffPeak, 0},
		{"weekday midday falls through to normal", monday, "12:00", domain.CategoryNormal, 0},
		{"weekend daytime is peak", saturday, "10:00", domain.CategoryPeak, 15},
		{"weekend evening is rush", saturday, "19:00", domain.CategoryRush, 25},
		{"weekend late night is normal", saturday, "22:00", domain.CategoryNormal, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := c.Categorize(tc.date, tc.start)
			assert.Equal(t, tc.category, result.Category)
			assert.Equal(t, tc.fee, result.FeePercentage)
			assert.Equal(t, tc.category != domain.CategoryNormal, result.IsRush)
			assert.NotEmpty(t, result.Note)
		})
	}
}

func TestCategorize_HalfOpenBoundaries(t *testing.T) {
	c := New(domain.DefaultCategoryTable())

	// 17:00 starts the weekday rush band; 20:00 is already outside it.
	assert.Equal(t, domain.CategoryRush, c.Categorize(monday, "17:00").Category)
	assert.Equal(t, domain.CategoryNormal, c.Categorize(monday, "20:00").Category)

	// 18:00 on a weekend is the boundary between peak and evening rush; the
	// band that begins there wins.
	assert.Equal(t, domain.CategoryRush, c.Categorize(saturday, "18:00").Category)
}

func TestCategorize_FirstMatchWins(t *testing.T) {
	table := &domain.CategoryTable{
		Rules: []domain.CategoryRule{
			{Name: "first", Days: []time.Weekday{time.Monday}, From: "09:00", To: "12:00", Category: domain.CategoryExpress},
			{Name: "second", Days: []time.Weekday{time.Monday}, From: "09:00", To: "12:00", Category: domain.CategoryPeak},
		},
		FeePercentage: map[domain.SlotCategory]int{domain.CategoryExpress: 30},
		NoteTemplates: map[domain.SlotCategory]string{},
	}

	result := New(table).Categorize(monday, "10:00")
	assert.Equal(t, domain.CategoryExpress, result.Category)
	assert.Equal(t, 30, result.FeePercentage)
}

func TestCategorize_Deterministic(t *testing.T) {
	c := New(domain.DefaultCategoryTable())

	first := c.Categorize(monday, "17:30")
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, c.Categorize(monday, "17:30"))
	}
}
