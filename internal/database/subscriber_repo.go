package database

import (
	"database/sql"
	"errors"
	"time"

	"github.com/dantetesta/estacionamento/internal/models"
)

var (
	ErrSubscriberNotFound = errors.New("subscriber not found")
	ErrPlateTaken         = errors.New("plate already registered to a subscriber")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrMonthAlreadyBilled = errors.New("reference month already recorded")
)

// SubscriberRepo handles subscriber database operations
type SubscriberRepo struct{}

// NewSubscriberRepo creates a new subscriber repository
func NewSubscriberRepo() *SubscriberRepo {
	return &SubscriberRepo{}
}

// Create registers a subscriber. Fails with ErrPlateTaken when the plate
// is already registered.
func (r *SubscriberRepo) Create(s *models.Subscriber) error {
	var count int
	if err := DB.QueryRow("SELECT COUNT(*) FROM subscribers WHERE plate = ?", s.Plate).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return ErrPlateTaken
	}

	result, err := DB.Exec(`
		INSERT INTO subscribers (name, plate, phone, email, monthly_fee, due_day, active, notes)
		VALUES (?, ?, ?, ?, ?, ?, 1, ?)
	`, s.Name, s.Plate, s.Phone, s.Email, s.MonthlyFee, s.DueDay, s.Notes)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = id
	s.Active = true

	return nil
}

const subscriberColumns = `
	id, name, plate, COALESCE(phone, ''), COALESCE(email, ''),
	monthly_fee, due_day, active, COALESCE(notes, ''), created_at
`

// GetByID retrieves a subscriber by ID
func (r *SubscriberRepo) GetByID(id int64) (*models.Subscriber, error) {
	row := DB.QueryRow("SELECT "+subscriberColumns+" FROM subscribers WHERE id = ?", id)
	return scanSubscriber(row)
}

// GetByPlate retrieves a subscriber by normalized plate
func (r *SubscriberRepo) GetByPlate(plate string) (*models.Subscriber, error) {
	row := DB.QueryRow("SELECT "+subscriberColumns+" FROM subscribers WHERE plate = ?", plate)
	return scanSubscriber(row)
}

// List retrieves subscribers ordered by name. When activeOnly is set,
// inactive subscribers are skipped.
func (r *SubscriberRepo) List(activeOnly bool) ([]*models.Subscriber, error) {
	query := "SELECT " + subscriberColumns + " FROM subscribers"
	if activeOnly {
		query += " WHERE active = 1"
	}
	query += " ORDER BY name"

	rows, err := DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*models.Subscriber
	for rows.Next() {
		s, err := scanSubscriber(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}

	return subs, rows.Err()
}

// Update updates a subscriber's mutable fields
func (r *SubscriberRepo) Update(s *models.Subscriber) error {
	result, err := DB.Exec(`
		UPDATE subscribers
		SET name = ?, phone = ?, email = ?, monthly_fee = ?, due_day = ?, active = ?, notes = ?
		WHERE id = ?
	`, s.Name, s.Phone, s.Email, s.MonthlyFee, s.DueDay, s.Active, s.Notes, s.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrSubscriberNotFound
	}

	return nil
}

// Delete removes a subscriber and, via cascade, its payments
func (r *SubscriberRepo) Delete(id int64) error {
	result, err := DB.Exec("DELETE FROM subscribers WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrSubscriberNotFound
	}

	return nil
}

// RecordPayment inserts a monthly charge for a subscriber
func (r *SubscriberRepo) RecordPayment(p *models.SubscriberPayment) error {
	var count int
	err := DB.QueryRow(
		"SELECT COUNT(*) FROM subscriber_payments WHERE subscriber_id = ? AND reference_month = ?",
		p.SubscriberID, p.ReferenceMonth,
	).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrMonthAlreadyBilled
	}

	result, err := DB.Exec(`
		INSERT INTO subscriber_payments (subscriber_id, reference_month, amount, paid_at, paid, payment_method, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.SubscriberID, p.ReferenceMonth, p.Amount, p.PaidAt, p.Paid, p.PaymentMethod, p.Notes)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = id

	return nil
}

// MarkPaymentPaid settles a recorded charge
func (r *SubscriberRepo) MarkPaymentPaid(paymentID int64, paidAt time.Time, method models.PaymentMethod) error {
	result, err := DB.Exec(`
		UPDATE subscriber_payments SET paid = 1, paid_at = ?, payment_method = ? WHERE id = ?
	`, paidAt, method, paymentID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

// ListPayments retrieves a subscriber's charges, newest first
func (r *SubscriberRepo) ListPayments(subscriberID int64) ([]*models.SubscriberPayment, error) {
	rows, err := DB.Query(`
		SELECT id, subscriber_id, reference_month, amount, paid_at, paid,
		       COALESCE(payment_method, ''), COALESCE(notes, ''), created_at
		FROM subscriber_payments WHERE subscriber_id = ?
		ORDER BY reference_month DESC
	`, subscriberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.SubscriberPayment
	for rows.Next() {
		p := &models.SubscriberPayment{}
		var paidAt sql.NullTime
		err := rows.Scan(&p.ID, &p.SubscriberID, &p.ReferenceMonth, &p.Amount,
			&paidAt, &p.Paid, &p.PaymentMethod, &p.Notes, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		if paidAt.Valid {
			p.PaidAt = &paidAt.Time
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}

// ListUnpaidForMonth returns active subscribers without a settled charge
// for the given reference month
func (r *SubscriberRepo) ListUnpaidForMonth(month string) ([]*models.Subscriber, error) {
	rows, err := DB.Query(`
		SELECT `+subscriberColumns+`
		FROM subscribers
		WHERE active = 1 AND id NOT IN (
			SELECT subscriber_id FROM subscriber_payments
			WHERE reference_month = ? AND paid = 1
		)
		ORDER BY name
	`, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*models.Subscriber
	for rows.Next() {
		s, err := scanSubscriber(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}

	return subs, rows.Err()
}

func scanSubscriber(row rowScanner) (*models.Subscriber, error) {
	s := &models.Subscriber{}
	err := row.Scan(&s.ID, &s.Name, &s.Plate, &s.Phone, &s.Email,
		&s.MonthlyFee, &s.DueDay, &s.Active, &s.Notes, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrSubscriberNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
