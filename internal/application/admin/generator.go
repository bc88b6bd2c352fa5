package admin

import (
	"encoding/binary"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/c-gorringe/moxie-app/internal/domain/identity"
	"github.com/c-gorringe/moxie-app/internal/domain/report"
	"github.com/c-gorringe/moxie-app/internal/domain/sales"
)

// Demo week: Jan 18-24, a calendar window with elevated simulated volume.
const (
	demoWeekMonth    = time.January
	demoWeekStartDay = 18
	demoWeekEndDay   = 24
)

// GenerateSales produces a deterministic sales history for one user over the
// trailing historyDays window. The PRNG is seeded from the user's ID, so
// reseeding the same users yields the same data.
func GenerateSales(user *identity.User, now time.Time, historyDays int) []*sales.Sale {
	rng := rand.New(rand.NewSource(seedFromUser(user)))

	var rows []*sales.Sale
	for offset := historyDays; offset >= 0; offset-- {
		day := report.StartOfDay(now.AddDate(0, 0, -offset))

		count := rng.Intn(5) // 0-4 sales per day
		if isDemoWeek(day) {
			count = 4 + rng.Intn(6) // 4-9 during the demo window
		}

		for i := 0; i < count; i++ {
			occurredAt := day.
				Add(time.Duration(8+rng.Intn(12)) * time.Hour).
				Add(time.Duration(rng.Intn(60)) * time.Minute)
			revenue := decimal.NewFromInt(int64(100 + 50*rng.Intn(11))) // 100-600 in steps of 50

			rows = append(rows, &sales.Sale{
				UserID:       user.ID,
				OccurredAt:   occurredAt,
				Revenue:      revenue,
				AccountsSold: 1,
				IsCanceled:   rng.Intn(100) < 8,
				IsInstall:    rng.Intn(100) < 60,
			})
		}
	}
	return rows
}

func isDemoWeek(day time.Time) bool {
	return day.Month() == demoWeekMonth &&
		day.Day() >= demoWeekStartDay &&
		day.Day() <= demoWeekEndDay
}

func seedFromUser(user *identity.User) int64 {
	id := user.ID
	return int64(binary.BigEndian.Uint64(id[:8]))
}
