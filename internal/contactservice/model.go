package contactservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/sushihentaime/currytech/internal/common"
)

const contactColumns = `id, name, email, phone, subject, message, status, created_at`

func newContactModel(db *sql.DB) *ContactModel {
	return &ContactModel{db: db}
}

func scanContact(scan func(dest ...any) error) (*Contact, error) {
	var c Contact

	err := scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message, &c.Status, &c.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows), common.InvalidTextRepresentation(err):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &c, nil
}

func (m *ContactModel) insert(ctx context.Context, c *Contact) error {
	query := `
		INSERT INTO contacts (id, name, email, phone, subject, message, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	c.ID = uuid.NewString()
	c.Status = StatusNew

	return m.db.QueryRowContext(ctx, query, c.ID, c.Name, c.Email, c.Phone, c.Subject, c.Message, c.Status).Scan(&c.CreatedAt)
}

func (m *ContactModel) get(ctx context.Context, id string) (*Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1`
	return scanContact(m.db.QueryRowContext(ctx, query, id).Scan)
}

func (m *ContactModel) list(ctx context.Context) ([]Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts ORDER BY created_at DESC, id`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []Contact{}
	for rows.Next() {
		c, err := scanContact(rows.Scan)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return contacts, nil
}

func (m *ContactModel) update(ctx context.Context, c *Contact) error {
	query := `
		UPDATE contacts
		SET name = $1, email = $2, phone = $3, subject = $4, message = $5, status = $6
		WHERE id = $7
		RETURNING created_at`

	err := m.db.QueryRowContext(ctx, query, c.Name, c.Email, c.Phone, c.Subject, c.Message, c.Status, c.ID).Scan(&c.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return common.ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

func (m *ContactModel) delete(ctx context.Context, id string) error {
	res, err := m.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		if common.InvalidTextRepresentation(err) {
			return common.ErrRecordNotFound
		}
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return common.ErrRecordNotFound
	}

	return nil
}
