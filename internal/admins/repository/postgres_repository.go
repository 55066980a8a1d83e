package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/ovenside/bakery-admin/internal/admins/domain"
	"github.com/ovenside/bakery-admin/internal/platform/logger"
)

var ErrAdminNotFound = errors.New("admin not found")
var ErrAdminConflict = errors.New("admin with this email already exists")

type AdminRepository interface {
	CreateAdmin(ctx context.Context, admin *domain.Admin) error
	GetAdminByEmail(ctx context.Context, email string) (*domain.Admin, error)
}

type postgresAdminRepository struct {
	db *sql.DB
}

func NewPostgresAdminRepository(db *sql.DB) AdminRepository {
	return &postgresAdminRepository{db: db}
}

func (r *postgresAdminRepository) CreateAdmin(ctx context.Context, admin *domain.Admin) error {
	query := `INSERT INTO admins (name, email, password_hash, created_at)
              VALUES ($1, $2, $3, $4) RETURNING admin_id`

	admin.CreatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query, admin.Name, admin.Email, admin.PasswordHash, admin.CreatedAt).
		Scan(&admin.ID)
	if err != nil {
		// 23505 is unique_violation: the email column carries a unique index.
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrAdminConflict
		}
		logger.Error("CreateAdmin: failed to insert admin", err)
		return err
	}
	return nil
}

func (r *postgresAdminRepository) GetAdminByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	query := `SELECT admin_id, name, email, password_hash, created_at FROM admins WHERE email = $1`
	admin := &domain.Admin{}

	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&admin.ID, &admin.Name, &admin.Email, &admin.PasswordHash, &admin.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		logger.Error("GetAdminByEmail: query failed", err)
		return nil, err
	}
	return admin, nil
}
