package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"weighbridge-backend/internal/models"
)

type LoginLogRepository struct {
	DB *pgxpool.Pool
}

func NewLoginLogRepository(db *pgxpool.Pool) *LoginLogRepository {
	return &LoginLogRepository{DB: db}
}

// CreateLoginLog records a sign-in attempt, successful or not
func (r *LoginLogRepository) CreateLoginLog(ctx context.Context, l *models.LoginLog) (int, error) {
	query := `
		INSERT INTO login_logs (user_id, email, success, error_code, login_time, ip_address, user_agent)
		VALUES ($1, $2, $3, NULLIF($4, ''), NOW(), $5, $6)
		RETURNING id
	`

	var logID int
	err := r.DB.QueryRow(ctx, query, l.UserID, l.Email, l.Success, l.ErrorCode, l.IPAddress, l.UserAgent).Scan(&logID)
	if err != nil {
		return 0, err
	}

	return logID, nil
}

// UpdateLogoutTime closes the latest open successful session of a user
func (r *LoginLogRepository) UpdateLogoutTime(ctx context.Context, userID int) error {
	query := `
		UPDATE login_logs SET logout_time = NOW()
		WHERE id = (
			SELECT id FROM login_logs
			WHERE user_id = $1 AND success AND logout_time IS NULL
			ORDER BY login_time DESC LIMIT 1
		)
	`

	_, err := r.DB.Exec(ctx, query, userID)
	return err
}
