// Package payment contains payment-related use cases.
package payment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rm-entrenador/backend/internal/domain/entity"
)

var listToday = time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

func listDay(year int, month time.Month, d int) *time.Time {
	t := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
	return &t
}

type stubClientRepo struct {
	clients []*entity.Client
}

func (r *stubClientRepo) Create(ctx context.Context, c *entity.Client) error { return nil }
func (r *stubClientRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	return nil, nil
}
func (r *stubClientRepo) FindByName(ctx context.Context, name string) (*entity.Client, error) {
	return nil, nil
}
func (r *stubClientRepo) FindAll(ctx context.Context) ([]*entity.Client, error) {
	return r.clients, nil
}
func (r *stubClientRepo) Update(ctx context.Context, c *entity.Client) error { return nil }
func (r *stubClientRepo) Delete(ctx context.Context, id uuid.UUID) error     { return nil }

type stubPaymentRepo struct {
	payments []*entity.Payment
}

func (r *stubPaymentRepo) Create(ctx context.Context, p *entity.Payment) error { return nil }
func (r *stubPaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	return nil, nil
}
func (r *stubPaymentRepo) FindAll(ctx context.Context) ([]*entity.Payment, error) {
	return r.payments, nil
}
func (r *stubPaymentRepo) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.payments {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *stubPaymentRepo) Update(ctx context.Context, p *entity.Payment) error { return nil }
func (r *stubPaymentRepo) Delete(ctx context.Context, id uuid.UUID) error      { return nil }

func TestListPayments_JoinsClientNameAndStatus(t *testing.T) {
	ana := &entity.Client{ID: uuid.New(), Name: "Ana"}
	bruno := &entity.Client{ID: uuid.New(), Name: "Bruno"}

	paidPayment := &entity.Payment{
		ID:       uuid.New(),
		ClientID: ana.ID,
		Amount:   decimal.NewFromInt(30000),
		PayDate:  listDay(2024, time.March, 1),
		DueDate:  listDay(2024, time.April, 1),
	}
	overduePayment := &entity.Payment{
		ID:       uuid.New(),
		ClientID: bruno.ID,
		Amount:   decimal.NewFromInt(20000),
		DueDate:  listDay(2024, time.March, 10),
	}

	uc := NewListPaymentsUseCase(
		&stubPaymentRepo{payments: []*entity.Payment{paidPayment, overduePayment}},
		&stubClientRepo{clients: []*entity.Client{ana, bruno}},
		entity.ClassifierOptions{},
	)

	output, err := uc.Execute(context.Background(), ListPaymentsInput{Today: &listToday})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(output.Payments) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(output.Payments))
	}

	rows := make(map[uuid.UUID]PaymentRow, len(output.Payments))
	for _, row := range output.Payments {
		rows[row.Payment.ID] = row
	}

	if row := rows[paidPayment.ID]; row.ClientName != "Ana" || row.Status != entity.StatusPaid {
		t.Errorf("expected Ana/%s, got %s/%s", entity.StatusPaid, row.ClientName, row.Status)
	}
	if row := rows[overduePayment.ID]; row.ClientName != "Bruno" || row.Status != entity.StatusOverdue {
		t.Errorf("expected Bruno/%s, got %s/%s", entity.StatusOverdue, row.ClientName, row.Status)
	}
}

func TestListPayments_FiltersByClient(t *testing.T) {
	ana := &entity.Client{ID: uuid.New(), Name: "Ana"}
	bruno := &entity.Client{ID: uuid.New(), Name: "Bruno"}

	payments := []*entity.Payment{
		{ID: uuid.New(), ClientID: ana.ID, Amount: decimal.NewFromInt(100), DueDate: listDay(2024, time.April, 1)},
		{ID: uuid.New(), ClientID: bruno.ID, Amount: decimal.NewFromInt(200), DueDate: listDay(2024, time.April, 1)},
	}

	uc := NewListPaymentsUseCase(
		&stubPaymentRepo{payments: payments},
		&stubClientRepo{clients: []*entity.Client{ana, bruno}},
		entity.ClassifierOptions{},
	)

	output, err := uc.Execute(context.Background(), ListPaymentsInput{ClientID: &bruno.ID, Today: &listToday})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(output.Payments) != 1 {
		t.Fatalf("expected 1 row, got %d", len(output.Payments))
	}
	if output.Payments[0].ClientName != "Bruno" {
		t.Errorf("expected Bruno, got %s", output.Payments[0].ClientName)
	}
}

func TestListPayments_UnknownClientLeavesNameEmpty(t *testing.T) {
	orphan := &entity.Payment{
		ID:       uuid.New(),
		ClientID: uuid.New(),
		Amount:   decimal.NewFromInt(100),
		DueDate:  listDay(2024, time.April, 1),
	}

	uc := NewListPaymentsUseCase(
		&stubPaymentRepo{payments: []*entity.Payment{orphan}},
		&stubClientRepo{},
		entity.ClassifierOptions{},
	)

	output, err := uc.Execute(context.Background(), ListPaymentsInput{Today: &listToday})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if output.Payments[0].ClientName != "" {
		t.Errorf("expected empty name for an orphaned payment, got %q", output.Payments[0].ClientName)
	}
}
