package admin

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/c-gorringe/moxie-app/internal/domain/report"
	"github.com/c-gorringe/moxie-app/internal/domain/sales"
)

// RollupRates holds the commission derivation constants.
type RollupRates struct {
	CommissionRate  decimal.Decimal
	WithholdingRate decimal.Decimal
	PaidLagDays     int
}

type dayKey struct {
	userID uuid.UUID
	day    time.Time
}

// RollupCommissions derives one commission row per (user, calendar day) with
// at least one non-canceled sale:
//
//	earned   = Σ(non-canceled revenue that day) × commission rate
//	withheld = earned × withholding rate
//	paid     = earned − withheld
//
// accountsSold counts the day's non-canceled sales. A row is marked paid once
// its date is older than the paid lag. Rows come back ordered by user then
// date so regeneration is deterministic.
func RollupCommissions(rows []*sales.Sale, now time.Time, rates RollupRates) []*sales.Commission {
	type bucket struct {
		revenue      decimal.Decimal
		accountsSold int
	}
	buckets := make(map[dayKey]*bucket)

	for _, sale := range rows {
		if !sale.CountsTowardRevenue() {
			continue
		}
		key := dayKey{userID: sale.UserID, day: report.StartOfDay(sale.OccurredAt)}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{revenue: decimal.Zero}
			buckets[key] = b
		}
		b.revenue = b.revenue.Add(sale.Revenue)
		b.accountsSold++
	}

	paidBefore := now.AddDate(0, 0, -rates.PaidLagDays)
	commissions := make([]*sales.Commission, 0, len(buckets))
	for key, b := range buckets {
		earned := b.revenue.Mul(rates.CommissionRate).Round(2)
		withheld := earned.Mul(rates.WithholdingRate).Round(2)
		payStart, payEnd := report.PayPeriodBounds(key.day)

		commissions = append(commissions, &sales.Commission{
			UserID:         key.userID,
			Date:           key.day,
			AccountsSold:   b.accountsSold,
			Earned:         earned,
			Withheld:       withheld,
			Paid:           earned.Sub(withheld),
			PayPeriodStart: payStart,
			PayPeriodEnd:   payEnd,
			IsPaid:         key.day.Before(paidBefore),
		})
	}

	sort.Slice(commissions, func(i, j int) bool {
		if commissions[i].UserID != commissions[j].UserID {
			return commissions[i].UserID.String() < commissions[j].UserID.String()
		}
		return commissions[i].Date.Before(commissions[j].Date)
	})
	return commissions
}

// ComputeWithholdingLimits recomputes each user's withheld total from the
// generated commissions, clamped at the ceiling.
func ComputeWithholdingLimits(commissions []*sales.Commission, limit decimal.Decimal, resetDate time.Time) []*sales.WithholdingLimit {
	totals := make(map[uuid.UUID]decimal.Decimal)
	order := make([]uuid.UUID, 0)
	for _, c := range commissions {
		if _, ok := totals[c.UserID]; !ok {
			order = append(order, c.UserID)
		}
		totals[c.UserID] = totals[c.UserID].Add(c.Withheld)
	}

	limits := make([]*sales.WithholdingLimit, 0, len(order))
	for _, userID := range order {
		limits = append(limits, &sales.WithholdingLimit{
			UserID:        userID,
			CurrentAmount: sales.ClampWithheld(totals[userID], limit),
			LimitAmount:   limit,
			ResetDate:     resetDate,
		})
	}
	return limits
}
