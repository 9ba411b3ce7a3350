package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockAgentRepo(t *testing.T) (AgentRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return AgentRepository{DB: db}, mock
}

func TestAgentCreateWithoutCommissionStoresNull(t *testing.T) {
	repo, mock := newMockAgentRepo(t)

	mock.ExpectExec("INSERT INTO agents").
		WithArgs(sqlmock.AnyArg(), "asha@example.com", "Asha", nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := repo.Create(NewAgent{Email: "asha@example.com", Name: "Asha"})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAgentCreateWithCommission(t *testing.T) {
	repo, mock := newMockAgentRepo(t)
	rate := 7.5

	mock.ExpectExec("INSERT INTO agents").
		WithArgs(sqlmock.AnyArg(), "asha@example.com", "Asha", "0771234567", 7.5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := repo.Create(NewAgent{
		Email:          "asha@example.com",
		Name:           "Asha",
		Contact:        "0771234567",
		CommissionRate: &rate,
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
