package leads

import (
	"context"
	"errors"
	"testing"
	"time"

	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestPostgresRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	lead := testLead("sub-1", "Jane Doe")

	mock.ExpectQuery("INSERT INTO leads").
		WithArgs(
			pgxmock.AnyArg(),
			lead.SubmissionID,
			lead.Name,
			lead.Email,
			lead.Phone,
			lead.Service,
			lead.Message,
			lead.Source,
			lead.Status,
			lead.SubmittedAt,
		).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("11111111-2222-3333-4444-555555555555"))

	id, err := repo.Create(context.Background(), lead)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id != "11111111-2222-3333-4444-555555555555" {
		t.Errorf("unexpected lead id %q", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresRepository_CreateReplayReturnsExistingID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	lead := testLead("sub-1", "Jane Doe")

	// The conflict clause makes a replayed submission id surface the id of
	// the row already stored for it.
	mock.ExpectQuery("INSERT INTO leads").
		WithArgs(
			pgxmock.AnyArg(),
			lead.SubmissionID,
			lead.Name,
			lead.Email,
			lead.Phone,
			lead.Service,
			lead.Message,
			lead.Source,
			lead.Status,
			lead.SubmittedAt,
		).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("existing-id"))

	id, err := repo.Create(context.Background(), lead)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id != "existing-id" {
		t.Errorf("expected the pre-existing id, got %q", id)
	}
}

func TestPostgresRepository_CreateError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	lead := testLead("sub-1", "Jane Doe")

	mock.ExpectQuery("INSERT INTO leads").WillReturnError(errors.New("connection refused"))

	if _, err := repo.Create(context.Background(), lead); err == nil {
		t.Fatal("expected an error")
	}
}

func TestPostgresRepository_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	submittedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM leads").
		WithArgs("lead-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "submission_id", "name", "email", "phone", "service",
			"message", "source", "status", "submitted_at",
		}).AddRow(
			"lead-1", "sub-1", "Jane Doe", "jane@example.com", "5551234567",
			"consultation", "", SourceWebsite, StatusNew, submittedAt,
		))

	lead, err := repo.GetByID(context.Background(), "lead-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if lead.LeadID != "lead-1" || lead.SubmissionID != "sub-1" {
		t.Errorf("unexpected lead %+v", lead)
	}
	if !lead.SubmittedAt.Equal(submittedAt) {
		t.Errorf("unexpected submittedAt %s", lead.SubmittedAt)
	}
}

func TestPostgresRepository_GetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepository(mock)

	mock.ExpectQuery("SELECT (.+) FROM leads").WithArgs("missing").WillReturnError(pgx.ErrNoRows)

	_, err = repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrLeadNotFound) {
		t.Errorf("expected ErrLeadNotFound, got %v", err)
	}
}

func TestPostgresRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	submittedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM leads").
		WithArgs(50, 0).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "submission_id", "name", "email", "phone", "service",
			"message", "source", "status", "submitted_at",
		}).AddRow(
			"lead-2", "sub-2", "Second Lead", "b@example.com", "5550002",
			"veneers", "", SourceWebsite, StatusNew, submittedAt,
		).AddRow(
			"lead-1", "sub-1", "First Lead", "a@example.com", "5550001",
			"consultation", "", SourceWebsite, StatusNew, submittedAt.Add(-time.Hour),
		))

	leads, err := repo.List(context.Background(), ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(leads) != 2 {
		t.Fatalf("expected 2 leads, got %d", len(leads))
	}
	if leads[0].LeadID != "lead-2" {
		t.Errorf("expected newest lead first, got %q", leads[0].LeadID)
	}
}
