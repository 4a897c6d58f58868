// Package dashboard contains the payment reconciliation and overview use cases.
package dashboard

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rm-entrenador/backend/internal/domain/entity"
)

var today = time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

func day(year int, month time.Month, d int) *time.Time {
	t := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func testClient(name, planTier string) *entity.Client {
	return &entity.Client{
		ID:       uuid.New(),
		Name:     name,
		PlanTier: planTier,
	}
}

func testPayment(clientID uuid.UUID, amount string, payDate, dueDate *time.Time) *entity.Payment {
	amt, _ := decimal.NewFromString(amount)
	return &entity.Payment{
		ID:       uuid.New(),
		ClientID: clientID,
		Amount:   amt,
		PayDate:  payDate,
		DueDate:  dueDate,
	}
}

func TestReconcile_EmptyInput(t *testing.T) {
	overview := Reconcile(nil, nil, today, entity.ClassifierOptions{}, nil)

	if len(overview.Clients) != 0 {
		t.Errorf("expected no clients, got %d", len(overview.Clients))
	}
	if overview.Stats.TotalClients != 0 {
		t.Errorf("expected total 0, got %d", overview.Stats.TotalClients)
	}
	if overview.Stats.LoyaltyPercent != 0 {
		t.Errorf("expected loyalty 0, got %d", overview.Stats.LoyaltyPercent)
	}
	if !overview.Stats.CollectedAmount.IsZero() || !overview.Stats.PendingAmount.IsZero() || !overview.Stats.OverdueAmount.IsZero() {
		t.Error("expected zero amounts for empty input")
	}
	if len(overview.Stats.PlanDistribution) != 0 {
		t.Errorf("expected empty plan distribution, got %v", overview.Stats.PlanDistribution)
	}
}

func TestReconcile_ClientWithoutPaymentsIsUndefined(t *testing.T) {
	c := testClient("Ana", "mensual")
	overview := Reconcile([]*entity.Client{c}, nil, today, entity.ClassifierOptions{}, nil)

	if len(overview.Clients) != 1 {
		t.Fatalf("expected 1 client, got %d", len(overview.Clients))
	}
	ec := overview.Clients[0]
	if ec.Status != entity.StatusUndefined {
		t.Errorf("expected %s, got %s", entity.StatusUndefined, ec.Status)
	}
	if ec.Payment != nil {
		t.Error("expected no governing payment")
	}
	if overview.Stats.StatusCounts[entity.StatusUndefined] != 1 {
		t.Errorf("expected 1 undefined in counts, got %d", overview.Stats.StatusCounts[entity.StatusUndefined])
	}
}

func TestReconcile_StatusesAndAmounts(t *testing.T) {
	paid := testClient("Ana", "mensual")
	pending := testClient("Bruno", "mensual")
	overdue := testClient("Carla", "trimestral")
	notRenewed := testClient("Diego", "mensual")

	clients := []*entity.Client{paid, pending, overdue, notRenewed}
	payments := []*entity.Payment{
		testPayment(paid.ID, "30000", day(2024, time.March, 1), day(2024, time.April, 1)),
		testPayment(pending.ID, "30000", nil, day(2024, time.April, 1)),
		testPayment(overdue.ID, "80000", day(2024, time.December, 10), day(2024, time.March, 10)),
		testPayment(notRenewed.ID, "30000", nil, day(2024, time.January, 10)),
	}

	overview := Reconcile(clients, payments, today, entity.ClassifierOptions{}, nil)
	stats := overview.Stats

	if stats.TotalClients != 4 {
		t.Errorf("expected total 4, got %d", stats.TotalClients)
	}

	wantCounts := map[entity.PaymentStatus]int{
		entity.StatusPaid:       1,
		entity.StatusPending:    1,
		entity.StatusOverdue:    1,
		entity.StatusNotRenewed: 1,
	}
	for status, want := range wantCounts {
		if got := stats.StatusCounts[status]; got != want {
			t.Errorf("status %s: expected count %d, got %d", status, want, got)
		}
	}

	if !stats.CollectedAmount.Equal(decimal.NewFromInt(30000)) {
		t.Errorf("expected collected 30000, got %s", stats.CollectedAmount)
	}
	// Pending and overdue totals stay separate; the not-renewed client's
	// amount is written off entirely.
	if !stats.PendingAmount.Equal(decimal.NewFromInt(30000)) {
		t.Errorf("expected pending 30000, got %s", stats.PendingAmount)
	}
	if !stats.OverdueAmount.Equal(decimal.NewFromInt(80000)) {
		t.Errorf("expected overdue 80000, got %s", stats.OverdueAmount)
	}

	// Loyalty counts 1 paid out of 3 active; the not-renewed client is
	// excluded from both terms. round(100/3) = 33.
	if stats.LoyaltyPercent != 33 {
		t.Errorf("expected loyalty 33, got %d", stats.LoyaltyPercent)
	}
}

func TestReconcile_LoyaltyRoundsHalfUp(t *testing.T) {
	a := testClient("Ana", "")
	b := testClient("Bruno", "")
	c := testClient("Carla", "")

	clients := []*entity.Client{a, b, c}
	payments := []*entity.Payment{
		testPayment(a.ID, "100", day(2024, time.March, 1), day(2024, time.April, 1)),
		testPayment(b.ID, "100", day(2024, time.March, 1), day(2024, time.April, 1)),
		testPayment(c.ID, "100", nil, day(2024, time.April, 1)),
	}

	overview := Reconcile(clients, payments, today, entity.ClassifierOptions{}, nil)

	// 2/3 paid: round(66.67) = 67.
	if overview.Stats.LoyaltyPercent != 67 {
		t.Errorf("expected loyalty 67, got %d", overview.Stats.LoyaltyPercent)
	}
}

func TestReconcile_GoverningPayment(t *testing.T) {
	t.Run("latest pay date wins", func(t *testing.T) {
		c := testClient("Ana", "")
		older := testPayment(c.ID, "100", day(2024, time.January, 1), day(2024, time.February, 1))
		newer := testPayment(c.ID, "200", day(2024, time.March, 1), day(2024, time.April, 1))

		overview := Reconcile([]*entity.Client{c}, []*entity.Payment{older, newer}, today, entity.ClassifierOptions{}, nil)
		if overview.Clients[0].Payment.ID != newer.ID {
			t.Error("expected the payment with the latest pay date to govern")
		}
		if overview.Clients[0].Status != entity.StatusPaid {
			t.Errorf("expected %s, got %s", entity.StatusPaid, overview.Clients[0].Status)
		}
	})

	t.Run("any pay date beats none", func(t *testing.T) {
		c := testClient("Ana", "")
		unpaid := testPayment(c.ID, "100", nil, day(2024, time.April, 20))
		paid := testPayment(c.ID, "200", day(2024, time.January, 1), day(2024, time.February, 1))

		overview := Reconcile([]*entity.Client{c}, []*entity.Payment{unpaid, paid}, today, entity.ClassifierOptions{}, nil)
		if overview.Clients[0].Payment.ID != paid.ID {
			t.Error("expected the payment with a pay date to govern")
		}
	})

	t.Run("latest due date breaks pay date absence", func(t *testing.T) {
		c := testClient("Ana", "")
		older := testPayment(c.ID, "100", nil, day(2024, time.February, 1))
		newer := testPayment(c.ID, "200", nil, day(2024, time.April, 1))

		overview := Reconcile([]*entity.Client{c}, []*entity.Payment{older, newer}, today, entity.ClassifierOptions{}, nil)
		if overview.Clients[0].Payment.ID != newer.ID {
			t.Error("expected the payment with the latest due date to govern")
		}
	})

	t.Run("id breaks full ties deterministically", func(t *testing.T) {
		c := testClient("Ana", "")
		due := day(2024, time.April, 1)
		p1 := testPayment(c.ID, "100", nil, due)
		p2 := testPayment(c.ID, "200", nil, due)

		want := p1.ID
		if p2.ID.String() > p1.ID.String() {
			want = p2.ID
		}

		// Same result regardless of input order.
		forward := Reconcile([]*entity.Client{c}, []*entity.Payment{p1, p2}, today, entity.ClassifierOptions{}, nil)
		backward := Reconcile([]*entity.Client{c}, []*entity.Payment{p2, p1}, today, entity.ClassifierOptions{}, nil)

		if forward.Clients[0].Payment.ID != want {
			t.Errorf("expected payment %s to govern, got %s", want, forward.Clients[0].Payment.ID)
		}
		if backward.Clients[0].Payment.ID != want {
			t.Error("expected the same governing payment regardless of input order")
		}
	})
}

func TestReconcile_DaysOverdue(t *testing.T) {
	c := testClient("Ana", "")
	p := testPayment(c.ID, "100", nil, day(2024, time.March, 10))

	overview := Reconcile([]*entity.Client{c}, []*entity.Payment{p}, today, entity.ClassifierOptions{}, nil)

	ec := overview.Clients[0]
	if ec.Status != entity.StatusOverdue {
		t.Fatalf("expected %s, got %s", entity.StatusOverdue, ec.Status)
	}
	if ec.DaysOverdue != 5 {
		t.Errorf("expected 5 days overdue, got %d", ec.DaysOverdue)
	}
}

func TestReconcile_SortsByStatusRankThenName(t *testing.T) {
	undefined := testClient("Alberto", "")
	overdueB := testClient("Beatriz", "")
	overdueA := testClient("Andres", "")
	paid := testClient("Zoe", "")

	clients := []*entity.Client{undefined, overdueB, overdueA, paid}
	payments := []*entity.Payment{
		testPayment(overdueB.ID, "100", nil, day(2024, time.March, 1)),
		testPayment(overdueA.ID, "100", nil, day(2024, time.March, 1)),
		testPayment(paid.ID, "100", day(2024, time.March, 1), day(2024, time.April, 1)),
	}

	overview := Reconcile(clients, payments, today, entity.ClassifierOptions{}, nil)

	wantOrder := []string{"Zoe", "Andres", "Beatriz", "Alberto"}
	for i, name := range wantOrder {
		if overview.Clients[i].Client.Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, overview.Clients[i].Client.Name)
		}
	}
}

func TestReconcile_PlanDistributionCountsActiveOnly(t *testing.T) {
	activeMonthly := testClient("Ana", "mensual")
	lapsedYearly := testClient("Bruno", "anual")

	clients := []*entity.Client{activeMonthly, lapsedYearly}
	payments := []*entity.Payment{
		testPayment(activeMonthly.ID, "30000", day(2024, time.March, 1), day(2024, time.April, 1)),
		testPayment(lapsedYearly.ID, "30000", nil, day(2024, time.January, 10)),
	}

	overview := Reconcile(clients, payments, today, entity.ClassifierOptions{}, []string{"mensual", "trimestral", "anual"})
	dist := overview.Stats.PlanDistribution

	if _, ok := dist["anual"]; ok {
		t.Errorf("expected the lapsed client's tier excluded from the distribution, got %v", dist)
	}
	if dist["mensual"].Count != 1 || dist["mensual"].Percent != 100 {
		t.Errorf("expected mensual {1 100}, got %v", dist["mensual"])
	}
	if overview.Stats.TopPlanTier != "mensual" {
		t.Errorf("expected top tier mensual, got %q", overview.Stats.TopPlanTier)
	}
}

func TestDistributePercent(t *testing.T) {
	tiers := []string{"mensual", "trimestral", "anual"}

	t.Run("sums to 100 with awkward thirds", func(t *testing.T) {
		got := distributePercent(map[string]int{"mensual": 1, "trimestral": 1, "anual": 1}, tiers)

		total := 0
		for _, v := range got {
			total += v.Percent
		}
		if total != 100 {
			t.Errorf("expected percentages to sum to 100, got %d (%v)", total, got)
		}
	})

	t.Run("remainder ties favor declaration order", func(t *testing.T) {
		// Equal thirds leave one spare point; it goes to the tier
		// declared first, not the alphabetically smallest.
		got := distributePercent(map[string]int{"mensual": 1, "trimestral": 1, "anual": 1}, tiers)
		if got["mensual"].Percent != 34 {
			t.Errorf("expected mensual to take the spare point, got %v", got)
		}
		if got["anual"].Percent != 33 || got["trimestral"].Percent != 33 {
			t.Errorf("expected 33 for the remaining tiers, got %v", got)
		}
	})

	t.Run("exact split carries counts", func(t *testing.T) {
		got := distributePercent(map[string]int{"mensual": 3, "trimestral": 1}, tiers)
		if got["mensual"] != (PlanShare{Count: 3, Percent: 75}) || got["trimestral"] != (PlanShare{Count: 1, Percent: 25}) {
			t.Errorf("expected {3 75}/{1 25}, got %v", got)
		}
	})

	t.Run("single tier takes all", func(t *testing.T) {
		got := distributePercent(map[string]int{"mensual": 7}, tiers)
		if got["mensual"] != (PlanShare{Count: 7, Percent: 100}) {
			t.Errorf("expected {7 100}, got %v", got)
		}
	})

	t.Run("empty counts", func(t *testing.T) {
		got := distributePercent(map[string]int{}, tiers)
		if len(got) != 0 {
			t.Errorf("expected empty map, got %v", got)
		}
	})
}

func TestTopPlanTier(t *testing.T) {
	tiers := []string{"mensual", "trimestral", "anual"}

	t.Run("highest count wins", func(t *testing.T) {
		got := topPlanTier(map[string]int{"mensual": 1, "anual": 3}, tiers)
		if got != "anual" {
			t.Errorf("expected anual, got %q", got)
		}
	})

	t.Run("count ties favor declaration order", func(t *testing.T) {
		got := topPlanTier(map[string]int{"anual": 2, "trimestral": 2}, tiers)
		if got != "trimestral" {
			t.Errorf("expected trimestral, got %q", got)
		}
	})

	t.Run("no counts yields no tier", func(t *testing.T) {
		if got := topPlanTier(map[string]int{}, tiers); got != "" {
			t.Errorf("expected empty, got %q", got)
		}
	})
}

func TestRoundPercent(t *testing.T) {
	tests := []struct {
		part, total, want int
	}{
		{0, 4, 0},
		{1, 4, 25},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{3, 3, 100},
	}
	for _, tt := range tests {
		if got := roundPercent(tt.part, tt.total); got != tt.want {
			t.Errorf("roundPercent(%d, %d) = %d, want %d", tt.part, tt.total, got, tt.want)
		}
	}
}
