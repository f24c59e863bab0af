package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campus-portal/internal/domain"
)

// UserRepository define el contrato de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	UpdateProfile(ctx context.Context, id, name, surname, bio string) error
	UpdatePicture(ctx context.Context, id, path string) error
	Search(ctx context.Context, name, surname string) ([]domain.User, error)
}

const userColumns = `id, email, microsoft_id, name, surname, bio, profile_picture, created_at`

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (id, email, microsoft_id, name, surname, bio, profile_picture, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.MicrosoftID,
		user.Name,
		user.Surname,
		user.Bio,
		user.ProfilePicture,
		user.CreatedAt,
	)
	return err
}

func (r *PgUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *PgUserRepository) UpdateProfile(ctx context.Context, id, name, surname, bio string) error {
	const query = `
		UPDATE users
		SET name = $1, surname = $2, bio = $3
		WHERE id = $4
	`
	_, err := r.pool.Exec(ctx, query, name, surname, bio, id)
	return err
}

func (r *PgUserRepository) UpdatePicture(ctx context.Context, id, path string) error {
	const query = `
		UPDATE users
		SET profile_picture = $1
		WHERE id = $2
	`
	_, err := r.pool.Exec(ctx, query, path, id)
	return err
}

// Search compone el predicado ILIKE según los tokens presentes. Sin tokens no
// consulta nada y devuelve vacío.
func (r *PgUserRepository) Search(ctx context.Context, name, surname string) ([]domain.User, error) {
	const base = `
		SELECT ` + userColumns + `
		FROM users
		WHERE `

	var (
		query string
		args  []any
	)
	switch {
	case name != "" && surname != "":
		query = base + `name ILIKE $1 AND surname ILIKE $2`
		args = []any{"%" + name + "%", "%" + surname + "%"}
	case name != "":
		query = base + `name ILIKE $1`
		args = []any{"%" + name + "%"}
	case surname != "":
		query = base + `surname ILIKE $1`
		args = []any{"%" + surname + "%"}
	default:
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		err = rows.Scan(
			&u.ID,
			&u.Email,
			&u.MicrosoftID,
			&u.Name,
			&u.Surname,
			&u.Bio,
			&u.ProfilePicture,
			&u.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *PgUserRepository) scanOne(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.MicrosoftID,
		&u.Name,
		&u.Surname,
		&u.Bio,
		&u.ProfilePicture,
		&u.CreatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}
