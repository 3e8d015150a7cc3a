package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"weighbridge-backend/internal/models"
)

// TicketRepository stores ticket documents as JSONB, one row per (user, ticket id)
type TicketRepository struct {
	DB *pgxpool.Pool
}

func NewTicketRepository(db *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{DB: db}
}

// Upsert writes the ticket document. An existing document is merged key by key,
// so stored keys the encoded ticket lacks survive.
func (r *TicketRepository) Upsert(ctx context.Context, userID int, t models.Ticket) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode ticket: %w", err)
	}

	_, err = r.DB.Exec(ctx,
		`INSERT INTO tickets(user_id, id, entity_name, data)
         VALUES($1, $2, $3, $4::jsonb)
         ON CONFLICT (user_id, id) DO UPDATE
         SET data = tickets.data || EXCLUDED.data,
             entity_name = COALESCE((tickets.data || EXCLUDED.data)->>'entityName', ''),
             updated_at = NOW()`,
		userID, t.ID, t.EntityName, data)
	return err
}

// Get loads one ticket. Missing stored keys take their default values.
func (r *TicketRepository) Get(ctx context.Context, userID int, id string) (*models.Ticket, error) {
	var data []byte
	err := r.DB.QueryRow(ctx,
		`SELECT data FROM tickets WHERE user_id=$1 AND id=$2`, userID, id).Scan(&data)
	if err != nil {
		return nil, notFound(err)
	}

	t, err := decodeStored(id, data)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByEntity returns the tickets whose entityName equals entity, in key order
func (r *TicketRepository) ListByEntity(ctx context.Context, userID int, entity string) ([]models.Ticket, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, data FROM tickets WHERE user_id=$1 AND entity_name=$2 ORDER BY id`,
		userID, entity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := []models.Ticket{}
	for rows.Next() {
		var id string
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		t, err := decodeStored(id, data)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

// Delete removes a ticket. Returns ErrNotFound when nothing was deleted.
func (r *TicketRepository) Delete(ctx context.Context, userID int, id string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM tickets WHERE user_id=$1 AND id=$2`, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// decodeStored decodes a document; the row key always wins over any id inside it
func decodeStored(id string, data []byte) (models.Ticket, error) {
	t, err := models.DecodeTicket(data)
	if err != nil {
		return models.Ticket{}, err
	}
	t.ID = id
	return t, nil
}
