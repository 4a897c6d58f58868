// Package dashboard contains the payment reconciliation and overview use cases.
package dashboard

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rm-entrenador/backend/internal/domain/entity"
	"github.com/rm-entrenador/backend/internal/domain/valueobject"
)

// EnrichedClient is a client joined with its governing payment and the
// payment status derived from it.
type EnrichedClient struct {
	Client      *entity.Client
	Payment     *entity.Payment
	Status      entity.PaymentStatus
	PayDate     *time.Time
	DueDate     *time.Time
	DaysOverdue int
}

// PlanShare is one plan tier's slice of the active client base.
type PlanShare struct {
	Count   int
	Percent int
}

// AggregateStats summarizes the reconciled client list for the dashboard
// header cards. Collected, pending and overdue totals are kept separate,
// each summing governing-payment amounts for the matching status.
type AggregateStats struct {
	TotalClients     int
	StatusCounts     map[entity.PaymentStatus]int
	CollectedAmount  decimal.Decimal
	PendingAmount    decimal.Decimal
	OverdueAmount    decimal.Decimal
	LoyaltyPercent   int
	PlanDistribution map[string]PlanShare
	TopPlanTier      string
}

// Overview is the full reconciliation result.
type Overview struct {
	Clients []EnrichedClient
	Stats   AggregateStats
}

// Reconcile joins every client with its governing payment, classifies each
// one relative to today and derives aggregate stats. It is a pure function
// of its inputs so callers control the clock.
//
// Clients whose latest subscription was never renewed are excluded from the
// loyalty ratio, the amounts and the plan distribution entirely; they still
// appear in the client list and the status counts so the trainer can follow
// up with them.
//
// planTiers is the configured tier enumeration; its declaration order
// breaks ties in the plan distribution and the top-tier pick. Tiers found
// in the data but not configured rank after the configured ones.
func Reconcile(clients []*entity.Client, payments []*entity.Payment, today time.Time, opts entity.ClassifierOptions, planTiers []string) Overview {
	today = valueobject.Midnight(today)

	byClient := make(map[uuid.UUID][]*entity.Payment, len(clients))
	for _, p := range payments {
		byClient[p.ClientID] = append(byClient[p.ClientID], p)
	}

	enriched := make([]EnrichedClient, 0, len(clients))
	stats := AggregateStats{
		TotalClients:    len(clients),
		StatusCounts:    make(map[entity.PaymentStatus]int),
		CollectedAmount: decimal.Zero,
		PendingAmount:   decimal.Zero,
		OverdueAmount:   decimal.Zero,
	}

	planCounts := make(map[string]int)
	active := 0
	paid := 0

	for _, c := range clients {
		governing := governingPayment(byClient[c.ID])

		ec := EnrichedClient{
			Client:  c,
			Payment: governing,
			Status:  entity.StatusUndefined,
		}

		if governing != nil {
			ec.PayDate = governing.PayDate
			ec.DueDate = governing.DueDate
			ec.Status = governing.Status(today, opts)
			if governing.DueDate != nil {
				if d := valueobject.DaysBetween(*governing.DueDate, today); d > 0 {
					ec.DaysOverdue = d
				}
			}
		}

		stats.StatusCounts[ec.Status]++

		if ec.Status != entity.StatusNotRenewed {
			active++
			if c.PlanTier != "" {
				planCounts[c.PlanTier]++
			}
			switch ec.Status {
			case entity.StatusPaid:
				paid++
				if governing != nil {
					stats.CollectedAmount = stats.CollectedAmount.Add(governing.Amount)
				}
			case entity.StatusPending:
				if governing != nil {
					stats.PendingAmount = stats.PendingAmount.Add(governing.Amount)
				}
			case entity.StatusOverdue:
				if governing != nil {
					stats.OverdueAmount = stats.OverdueAmount.Add(governing.Amount)
				}
			}
		}

		enriched = append(enriched, ec)
	}

	if active > 0 {
		stats.LoyaltyPercent = roundPercent(paid, active)
	}
	stats.PlanDistribution = distributePercent(planCounts, planTiers)
	stats.TopPlanTier = topPlanTier(planCounts, planTiers)

	sort.SliceStable(enriched, func(i, j int) bool {
		ri, rj := entity.StatusRank(enriched[i].Status), entity.StatusRank(enriched[j].Status)
		if ri != rj {
			return ri < rj
		}
		return enriched[i].Client.Name < enriched[j].Client.Name
	})

	overview := Overview{
		Clients: enriched,
		Stats:   stats,
	}
	return overview
}

// governingPayment picks the payment that determines a client's status:
// the one with the latest pay date, falling back to the latest due date
// when no payment has been registered, with the lexicographically greatest
// id breaking ties so the result is deterministic.
func governingPayment(payments []*entity.Payment) *entity.Payment {
	var best *entity.Payment
	for _, p := range payments {
		if best == nil {
			best = p
			continue
		}
		if paymentAfter(p, best) {
			best = p
		}
	}
	return best
}

func paymentAfter(a, b *entity.Payment) bool {
	switch {
	case a.PayDate != nil && b.PayDate != nil:
		if !a.PayDate.Equal(*b.PayDate) {
			return a.PayDate.After(*b.PayDate)
		}
	case a.PayDate != nil:
		return true
	case b.PayDate != nil:
		return false
	default:
		if a.DueDate != nil && b.DueDate != nil && !a.DueDate.Equal(*b.DueDate) {
			return a.DueDate.After(*b.DueDate)
		}
		if a.DueDate != nil && b.DueDate == nil {
			return true
		}
		if a.DueDate == nil && b.DueDate != nil {
			return false
		}
	}
	return strings.Compare(a.ID.String(), b.ID.String()) > 0
}

// roundPercent returns round(100 * part / total).
func roundPercent(part, total int) int {
	return (200*part + total) / (2 * total)
}

// tierRank orders tiers by their position in the configured enumeration;
// unconfigured tiers sort after every configured one.
func tierRank(tier string, order []string) int {
	for i, t := range order {
		if t == tier {
			return i
		}
	}
	return len(order)
}

// distributePercent converts raw counts into per-tier count and integer
// percentage, using largest-remainder rounding so the percentages always
// add up to 100. Remainder ties go to the tier declared first.
func distributePercent(counts map[string]int, order []string) map[string]PlanShare {
	out := make(map[string]PlanShare, len(counts))
	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return out
	}

	type share struct {
		key       string
		count     int
		floor     int
		remainder int
	}
	shares := make([]share, 0, len(counts))
	assigned := 0
	for k, n := range counts {
		f := (100 * n) / total
		shares = append(shares, share{key: k, count: n, floor: f, remainder: (100 * n) % total})
		assigned += f
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].remainder != shares[j].remainder {
			return shares[i].remainder > shares[j].remainder
		}
		ri, rj := tierRank(shares[i].key, order), tierRank(shares[j].key, order)
		if ri != rj {
			return ri < rj
		}
		return shares[i].key < shares[j].key
	})

	for i := range shares {
		if assigned < 100 {
			shares[i].floor++
			assigned++
		}
		out[shares[i].key] = PlanShare{Count: shares[i].count, Percent: shares[i].floor}
	}
	return out
}

// topPlanTier picks the tier with the most active clients; count ties go
// to the tier declared first in the configured enumeration.
func topPlanTier(counts map[string]int, order []string) string {
	top := ""
	best := 0
	for tier, n := range counts {
		switch {
		case n > best:
			top, best = tier, n
		case n == best && top != "":
			ri, rj := tierRank(tier, order), tierRank(top, order)
			if ri < rj || (ri == rj && tier < top) {
				top = tier
			}
		}
	}
	return top
}
