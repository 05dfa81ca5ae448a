package database

import (
	"database/sql"
	"errors"

	"github.com/dantetesta/estacionamento/internal/models"
)

var ErrExpenseNotFound = errors.New("expense not found")

// ExpenseRepo handles expense database operations
type ExpenseRepo struct{}

// NewExpenseRepo creates a new expense repository
func NewExpenseRepo() *ExpenseRepo {
	return &ExpenseRepo{}
}

// Create creates a new expense
func (r *ExpenseRepo) Create(e *models.Expense) error {
	result, err := DB.Exec(`
		INSERT INTO expenses (category, description, amount, date, recurring)
		VALUES (?, ?, ?, ?, ?)
	`, e.Category, e.Description, e.Amount, e.Date, e.Recurring)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = id

	return nil
}

// GetByID retrieves an expense by ID
func (r *ExpenseRepo) GetByID(id int64) (*models.Expense, error) {
	e := &models.Expense{}
	err := DB.QueryRow(`
		SELECT id, category, description, amount, date, recurring, created_at
		FROM expenses WHERE id = ?
	`, id).Scan(&e.ID, &e.Category, &e.Description, &e.Amount, &e.Date, &e.Recurring, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrExpenseNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ListByMonth retrieves the expenses of one YYYY-MM month, newest first
func (r *ExpenseRepo) ListByMonth(month string) ([]*models.Expense, error) {
	rows, err := DB.Query(`
		SELECT id, category, description, amount, date, recurring, created_at
		FROM expenses WHERE strftime('%Y-%m', date) = ? ORDER BY date DESC
	`, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		e := &models.Expense{}
		err := rows.Scan(&e.ID, &e.Category, &e.Description, &e.Amount, &e.Date, &e.Recurring, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

// Update updates an expense
func (r *ExpenseRepo) Update(e *models.Expense) error {
	result, err := DB.Exec(`
		UPDATE expenses SET category = ?, description = ?, amount = ?, date = ?, recurring = ?
		WHERE id = ?
	`, e.Category, e.Description, e.Amount, e.Date, e.Recurring, e.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrExpenseNotFound
	}

	return nil
}

// Delete deletes an expense
func (r *ExpenseRepo) Delete(id int64) error {
	result, err := DB.Exec("DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrExpenseNotFound
	}

	return nil
}
