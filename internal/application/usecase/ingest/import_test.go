// Package ingest imports client and payment rows exported from the
// spreadsheet era of the business.
package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rm-entrenador/backend/internal/domain/entity"
	domainerror "github.com/rm-entrenador/backend/internal/domain/error"
)

type fakeClientRepo struct {
	clients map[uuid.UUID]*entity.Client
	updated int
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[uuid.UUID]*entity.Client)}
}

func (r *fakeClientRepo) Create(ctx context.Context, c *entity.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	if c, ok := r.clients[id]; ok {
		return c, nil
	}
	return nil, domainerror.ErrClientNotFound
}

func (r *fakeClientRepo) FindByName(ctx context.Context, name string) (*entity.Client, error) {
	for _, c := range r.clients {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) FindAll(ctx context.Context) ([]*entity.Client, error) {
	out := make([]*entity.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeClientRepo) Update(ctx context.Context, c *entity.Client) error {
	r.clients[c.ID] = c
	r.updated++
	return nil
}

func (r *fakeClientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.clients, id)
	return nil
}

type fakePaymentRepo struct {
	payments []*entity.Payment
}

func (r *fakePaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	r.payments = append(r.payments, p)
	return nil
}

func (r *fakePaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	return nil, domainerror.ErrPaymentNotFound
}

func (r *fakePaymentRepo) FindAll(ctx context.Context) ([]*entity.Payment, error) {
	return r.payments, nil
}

func (r *fakePaymentRepo) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*entity.Payment, error) {
	return nil, nil
}

func (r *fakePaymentRepo) Update(ctx context.Context, p *entity.Payment) error { return nil }
func (r *fakePaymentRepo) Delete(ctx context.Context, id uuid.UUID) error      { return nil }

func TestNormalizeRow(t *testing.T) {
	row := map[string]string{
		"  Nombre ":     "  Ana Garcia  ",
		"TELEFONO":      "+54 11 5555-0001",
		"id_estudiante": "abc",
		"Importe":       "1500",
		"Vencimiento":   "15/03/2024",
		"columna_rara":  "se conserva",
	}

	got := normalizeRow(row)

	want := map[string]string{
		colName:        "Ana Garcia",
		colPhone:       "+54 11 5555-0001",
		colClientRef:   "abc",
		colAmount:      "1500",
		colDueDate:     "15/03/2024",
		"columna_rara": "se conserva",
	}

	for k, v := range want {
		if got[k] != v {
			t.Errorf("key %q: expected %q, got %q", k, v, got[k])
		}
	}
	if _, ok := got["telefono"]; ok {
		t.Error("expected aliased key to be replaced by its canonical name")
	}
}

func TestImportClients(t *testing.T) {
	t.Run("creates new clients", func(t *testing.T) {
		repo := newFakeClientRepo()
		uc := NewImportClientsUseCase(repo, nil)

		output, err := uc.Execute(context.Background(), ImportClientsInput{Rows: []map[string]string{
			{
				"Nombre":          "Ana Garcia",
				"Email":           "ana@example.com",
				"Telefono":        "+54 11 5555-0001",
				"Modalidad":       "mensual",
				"fecha_de_inicio": "01/02/2024",
			},
		}})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if output.Created != 1 || output.Updated != 0 || output.Skipped != 0 {
			t.Errorf("expected 1 created, got %+v", output)
		}

		created, _ := repo.FindByName(context.Background(), "Ana Garcia")
		if created == nil {
			t.Fatal("expected the client to be persisted")
		}
		if created.Email != "ana@example.com" {
			t.Errorf("expected email ana@example.com, got %s", created.Email)
		}
		if created.Phone != "+54 11 5555-0001" {
			t.Errorf("expected aliased phone column to be applied, got %s", created.Phone)
		}
		if created.StartDate == nil || created.StartDate.Day() != 1 || created.StartDate.Month() != time.February {
			t.Errorf("expected start date 2024-02-01, got %v", created.StartDate)
		}
	})

	t.Run("updates existing clients by name", func(t *testing.T) {
		repo := newFakeClientRepo()
		existing := entity.NewClient("Ana Garcia", "old@example.com", "", "mensual", "", "", nil, nil, nil)
		repo.clients[existing.ID] = existing

		uc := NewImportClientsUseCase(repo, nil)
		output, err := uc.Execute(context.Background(), ImportClientsInput{Rows: []map[string]string{
			{"nombre": "Ana Garcia", "email": "new@example.com"},
		}})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if output.Updated != 1 || output.Created != 0 {
			t.Errorf("expected 1 updated, got %+v", output)
		}
		if existing.Email != "new@example.com" {
			t.Errorf("expected email to be overwritten, got %s", existing.Email)
		}
	})

	t.Run("empty cells never blank existing data", func(t *testing.T) {
		repo := newFakeClientRepo()
		existing := entity.NewClient("Ana Garcia", "ana@example.com", "+54 11 5555-0001", "mensual", "", "", nil, nil, nil)
		repo.clients[existing.ID] = existing

		uc := NewImportClientsUseCase(repo, nil)
		_, err := uc.Execute(context.Background(), ImportClientsInput{Rows: []map[string]string{
			{"nombre": "Ana Garcia", "email": "", "whatsapp": "", "modalidad": "trimestral"},
		}})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if existing.Email != "ana@example.com" || existing.Phone != "+54 11 5555-0001" {
			t.Error("expected empty cells to leave existing fields untouched")
		}
		if existing.PlanTier != "trimestral" {
			t.Errorf("expected plan tier to be updated, got %s", existing.PlanTier)
		}
	})

	t.Run("skips rows without a name", func(t *testing.T) {
		repo := newFakeClientRepo()
		uc := NewImportClientsUseCase(repo, nil)

		output, err := uc.Execute(context.Background(), ImportClientsInput{Rows: []map[string]string{
			{"email": "nobody@example.com"},
			{"nombre": "   "},
			{"nombre": "Bruno"},
		}})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if output.Skipped != 2 || output.Created != 1 {
			t.Errorf("expected 2 skipped and 1 created, got %+v", output)
		}
	})

	t.Run("malformed dates degrade instead of failing", func(t *testing.T) {
		repo := newFakeClientRepo()
		uc := NewImportClientsUseCase(repo, nil)

		output, err := uc.Execute(context.Background(), ImportClientsInput{Rows: []map[string]string{
			{"nombre": "Ana", "fecha_de_nacimiento": "no es fecha", "fecha_de_inicio": "31/02/2024"},
		}})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if output.Created != 1 {
			t.Errorf("expected the row to import anyway, got %+v", output)
		}

		created, _ := repo.FindByName(context.Background(), "Ana")
		if created.BirthDate != nil || created.StartDate != nil {
			t.Error("expected malformed dates to import as nil")
		}
	})
}

func TestImportPayments(t *testing.T) {
	t.Run("resolves client by id", func(t *testing.T) {
		clientRepo := newFakeClientRepo()
		client := entity.NewClient("Ana Garcia", "", "", "mensual", "", "", nil, nil, nil)
		clientRepo.clients[client.ID] = client
		paymentRepo := &fakePaymentRepo{}

		uc := NewImportPaymentsUseCase(paymentRepo, clientRepo, nil)
		output, err := uc.Execute(context.Background(), ImportPaymentsInput{Rows: []map[string]string{
			{"alumno_id": client.ID.String(), "monto": "$1,500.00", "fecha_de_pago": "01/03/2024", "fecha_de_vencimiento": "01/04/2024"},
		}})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if output.Created != 1 || output.Skipped != 0 {
			t.Errorf("expected 1 created, got %+v", output)
		}

		p := paymentRepo.payments[0]
		if p.ClientID != client.ID {
			t.Error("expected the payment to reference the resolved client")
		}
		if !p.Amount.Equal(decimal.NewFromInt(1500)) {
			t.Errorf("expected amount 1500, got %s", p.Amount)
		}
		if p.PayDate == nil || p.DueDate == nil {
			t.Error("expected both dates to be parsed")
		}
	})

	t.Run("resolves client by name", func(t *testing.T) {
		clientRepo := newFakeClientRepo()
		client := entity.NewClient("Ana Garcia", "", "", "mensual", "", "", nil, nil, nil)
		clientRepo.clients[client.ID] = client
		paymentRepo := &fakePaymentRepo{}

		uc := NewImportPaymentsUseCase(paymentRepo, clientRepo, nil)
		output, err := uc.Execute(context.Background(), ImportPaymentsInput{Rows: []map[string]string{
			{"id_estudiante": "Ana Garcia", "monto": "1500"},
		}})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if output.Created != 1 {
			t.Errorf("expected 1 created, got %+v", output)
		}
		if paymentRepo.payments[0].ClientID != client.ID {
			t.Error("expected the payment to reference the client resolved by name")
		}
	})

	t.Run("skips rows with unknown clients", func(t *testing.T) {
		clientRepo := newFakeClientRepo()
		paymentRepo := &fakePaymentRepo{}

		uc := NewImportPaymentsUseCase(paymentRepo, clientRepo, nil)
		output, err := uc.Execute(context.Background(), ImportPaymentsInput{Rows: []map[string]string{
			{"alumno_id": uuid.New().String(), "monto": "1500"},
			{"alumno_id": "Nadie Conocido", "monto": "1500"},
			{"alumno_id": "", "monto": "1500"},
		}})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if output.Skipped != 3 || output.Created != 0 {
			t.Errorf("expected 3 skipped, got %+v", output)
		}
		if len(paymentRepo.payments) != 0 {
			t.Error("expected no payments persisted")
		}
	})

	t.Run("bad amounts degrade to zero", func(t *testing.T) {
		clientRepo := newFakeClientRepo()
		client := entity.NewClient("Ana Garcia", "", "", "mensual", "", "", nil, nil, nil)
		clientRepo.clients[client.ID] = client
		paymentRepo := &fakePaymentRepo{}

		uc := NewImportPaymentsUseCase(paymentRepo, clientRepo, nil)
		output, err := uc.Execute(context.Background(), ImportPaymentsInput{Rows: []map[string]string{
			{"alumno_id": client.ID.String(), "monto": "sin dato"},
		}})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if output.Created != 1 {
			t.Errorf("expected the row to import anyway, got %+v", output)
		}
		if !paymentRepo.payments[0].Amount.IsZero() {
			t.Errorf("expected amount 0, got %s", paymentRepo.payments[0].Amount)
		}
	})
}
