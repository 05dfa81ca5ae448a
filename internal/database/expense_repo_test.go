package database

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dantetesta/estacionamento/internal/models"
)

func TestExpenseRepoCRUD(t *testing.T) {
	repo := NewExpenseRepo()

	e := &models.Expense{
		Category:    models.ExpenseEnergy,
		Description: "Conta de luz",
		Amount:      320.50,
		Date:        "2026-07-05",
		Recurring:   true,
	}
	require.NoError(t, repo.Create(e))
	require.NotZero(t, e.ID)

	got, err := repo.GetByID(e.ID)
	require.NoError(t, err)
	require.Equal(t, models.ExpenseEnergy, got.Category)
	require.Equal(t, 320.50, got.Amount)
	require.True(t, got.Recurring)

	e.Amount = 340
	e.Category = models.ExpenseOther
	require.NoError(t, repo.Update(e))
	got, err = repo.GetByID(e.ID)
	require.NoError(t, err)
	require.Equal(t, 340.0, got.Amount)
	require.Equal(t, models.ExpenseOther, got.Category)

	require.NoError(t, repo.Delete(e.ID))
	_, err = repo.GetByID(e.ID)
	require.ErrorIs(t, err, ErrExpenseNotFound)

	require.ErrorIs(t, repo.Update(&models.Expense{ID: 999999}), ErrExpenseNotFound)
	require.ErrorIs(t, repo.Delete(999999), ErrExpenseNotFound)
}

func TestExpenseRepoListByMonth(t *testing.T) {
	repo := NewExpenseRepo()

	in1 := &models.Expense{Category: models.ExpenseWater, Description: "Agua", Amount: 80, Date: "2026-08-02"}
	in2 := &models.Expense{Category: models.ExpenseSalary, Description: "Salario", Amount: 1800, Date: "2026-08-28"}
	out := &models.Expense{Category: models.ExpenseWater, Description: "Agua", Amount: 75, Date: "2026-09-02"}
	for _, e := range []*models.Expense{in1, in2, out} {
		require.NoError(t, repo.Create(e))
	}

	august, err := repo.ListByMonth("2026-08")
	require.NoError(t, err)
	require.Len(t, august, 2)
	// Newest first
	require.Equal(t, in2.ID, august[0].ID)
	require.Equal(t, in1.ID, august[1].ID)
}
