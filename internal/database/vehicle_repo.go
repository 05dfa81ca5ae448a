package database

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/dantetesta/estacionamento/internal/models"
)

var (
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrStayClosed      = errors.New("stay already closed")
	ErrAlreadyParked   = errors.New("vehicle already in the lot")
)

// VehicleRepo handles vehicle stay database operations
type VehicleRepo struct{}

// NewVehicleRepo creates a new vehicle repository
func NewVehicleRepo() *VehicleRepo {
	return &VehicleRepo{}
}

const vehicleColumns = `
	v.id, v.plate, v.type, v.subscriber_id, v.ticket_code, v.entered_at,
	v.exited_at, COALESCE(v.amount, 0), COALESCE(v.payment_method, ''), v.paid,
	COALESCE(v.notes, ''), v.created_at, COALESCE(m.name, '')
`

// CheckIn registers an entry. Fails with ErrAlreadyParked when the plate
// has an open stay.
func (r *VehicleRepo) CheckIn(v *models.Vehicle) error {
	var open int
	err := DB.QueryRow(
		"SELECT COUNT(*) FROM vehicles WHERE plate = ? AND exited_at IS NULL", v.Plate,
	).Scan(&open)
	if err != nil {
		return err
	}
	if open > 0 {
		return ErrAlreadyParked
	}

	result, err := DB.Exec(`
		INSERT INTO vehicles (plate, type, subscriber_id, ticket_code, entered_at, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`, v.Plate, v.Type, v.SubscriberID, v.TicketCode, v.EnteredAt, v.Notes)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = id

	return nil
}

// GetByID retrieves a stay by ID
func (r *VehicleRepo) GetByID(id int64) (*models.Vehicle, error) {
	row := DB.QueryRow(`
		SELECT `+vehicleColumns+`
		FROM vehicles v LEFT JOIN subscribers m ON v.subscriber_id = m.id
		WHERE v.id = ?
	`, id)
	return scanVehicle(row)
}

// GetOpenByPlate retrieves the newest open stay for a plate
func (r *VehicleRepo) GetOpenByPlate(plate string) (*models.Vehicle, error) {
	row := DB.QueryRow(`
		SELECT `+vehicleColumns+`
		FROM vehicles v LEFT JOIN subscribers m ON v.subscriber_id = m.id
		WHERE v.plate = ? AND v.exited_at IS NULL
		ORDER BY v.entered_at DESC LIMIT 1
	`, plate)
	return scanVehicle(row)
}

// CheckOut closes an open stay, recording amount and payment
func (r *VehicleRepo) CheckOut(id int64, exitedAt time.Time, amount float64, method models.PaymentMethod) error {
	result, err := DB.Exec(`
		UPDATE vehicles
		SET exited_at = ?, amount = ?, payment_method = ?, paid = 1
		WHERE id = ? AND exited_at IS NULL
	`, exitedAt, amount, method, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Distinguish a missing stay from one already closed
		var count int
		if err := DB.QueryRow("SELECT COUNT(*) FROM vehicles WHERE id = ?", id).Scan(&count); err != nil {
			return err
		}
		if count == 0 {
			return ErrVehicleNotFound
		}
		return ErrStayClosed
	}

	return nil
}

// VehicleFilter narrows List results
type VehicleFilter struct {
	OpenOnly bool
	Plate    string
	Date     string // YYYY-MM-DD, matches entry date
	Limit    int
	Offset   int
}

// List retrieves stays, newest entry first
func (r *VehicleRepo) List(f VehicleFilter) ([]*models.Vehicle, error) {
	var conds []string
	var args []any

	if f.OpenOnly {
		conds = append(conds, "v.exited_at IS NULL")
	}
	if f.Plate != "" {
		conds = append(conds, "v.plate = ?")
		args = append(args, f.Plate)
	}
	if f.Date != "" {
		conds = append(conds, "date(v.entered_at) = ?")
		args = append(args, f.Date)
	}

	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles v LEFT JOIN subscribers m ON v.subscriber_id = m.id
	`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY v.entered_at DESC"
	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*models.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}

	return vehicles, rows.Err()
}

// CountOpen returns how many vehicles are currently in the lot
func (r *VehicleRepo) CountOpen() (int, error) {
	var count int
	err := DB.QueryRow("SELECT COUNT(*) FROM vehicles WHERE exited_at IS NULL").Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVehicle(row rowScanner) (*models.Vehicle, error) {
	v := &models.Vehicle{}
	var exitedAt sql.NullTime

	err := row.Scan(
		&v.ID, &v.Plate, &v.Type, &v.SubscriberID, &v.TicketCode, &v.EnteredAt,
		&exitedAt, &v.Amount, &v.PaymentMethod, &v.Paid, &v.Notes, &v.CreatedAt,
		&v.SubscriberName,
	)
	if err == sql.ErrNoRows {
		return nil, ErrVehicleNotFound
	}
	if err != nil {
		return nil, err
	}

	if exitedAt.Valid {
		v.ExitedAt = &exitedAt.Time
	}

	return v, nil
}
