package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"weighbridge-backend/internal/models"
)

// EntityRepository stores the per-user entities collection, keyed by name
type EntityRepository struct {
	DB *pgxpool.Pool
}

func NewEntityRepository(db *pgxpool.Pool) *EntityRepository {
	return &EntityRepository{DB: db}
}

// Create stores an entity under its name. Returns false when the name already existed.
func (r *EntityRepository) Create(ctx context.Context, userID int, name string) (bool, error) {
	tag, err := r.DB.Exec(ctx,
		`INSERT INTO entities(user_id, name) VALUES($1, $2)
         ON CONFLICT (user_id, name) DO NOTHING`,
		userID, name)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// List returns all entities of a user in key order
func (r *EntityRepository) List(ctx context.Context, userID int) ([]models.Entity, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT name, created_at FROM entities WHERE user_id=$1 ORDER BY name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entities := []models.Entity{}
	for rows.Next() {
		var e models.Entity
		if err := rows.Scan(&e.Name, &e.CreatedAt); err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, rows.Err()
}
