package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campus-portal/internal/domain"
)

// FileRepository define el contrato de persistencia para metadata de archivos.
type FileRepository interface {
	Create(ctx context.Context, file domain.File) error
	GetByID(ctx context.Context, id string) (domain.File, error)
	GetByIDAndUploader(ctx context.Context, id, uploaderID string) (domain.File, error)
	ListByUploader(ctx context.Context, uploaderID string) ([]domain.File, error)
	Delete(ctx context.Context, id, uploaderID string) error
	Search(ctx context.Context, query string) ([]domain.File, error)
}

const fileColumns = `id, file_name, file_path, uploader_id, description, tags, upload_date`

// PgFileRepository implementa FileRepository usando pgxpool.
type PgFileRepository struct {
	pool *pgxpool.Pool
}

func NewPgFileRepository(pool *pgxpool.Pool) *PgFileRepository {
	return &PgFileRepository{pool: pool}
}

func (r *PgFileRepository) Create(ctx context.Context, file domain.File) error {
	const query = `
		INSERT INTO files (id, file_name, file_path, uploader_id, description, tags, upload_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	tags := file.Tags
	if tags == nil {
		tags = []string{}
	}
	_, err := r.pool.Exec(ctx, query,
		file.ID,
		file.Name,
		file.Path,
		file.UploaderID,
		file.Description,
		tags,
		file.UploadedAt,
	)
	return err
}

func (r *PgFileRepository) GetByID(ctx context.Context, id string) (domain.File, error) {
	const query = `
		SELECT ` + fileColumns + `
		FROM files
		WHERE id = $1
	`
	return scanFile(r.pool.QueryRow(ctx, query, id))
}

func (r *PgFileRepository) GetByIDAndUploader(ctx context.Context, id, uploaderID string) (domain.File, error) {
	const query = `
		SELECT ` + fileColumns + `
		FROM files
		WHERE id = $1 AND uploader_id = $2
	`
	return scanFile(r.pool.QueryRow(ctx, query, id, uploaderID))
}

func (r *PgFileRepository) ListByUploader(ctx context.Context, uploaderID string) ([]domain.File, error) {
	const query = `
		SELECT ` + fileColumns + `
		FROM files
		WHERE uploader_id = $1
	`
	rows, err := r.pool.Query(ctx, query, uploaderID)
	if err != nil {
		return nil, err
	}
	return collectFiles(rows)
}

func (r *PgFileRepository) Delete(ctx context.Context, id, uploaderID string) error {
	const query = `
		DELETE FROM files
		WHERE id = $1 AND uploader_id = $2
	`
	_, err := r.pool.Exec(ctx, query, id, uploaderID)
	return err
}

// Search busca por substring del nombre o por pertenencia exacta del texto
// completo al conjunto de tags.
func (r *PgFileRepository) Search(ctx context.Context, query string) ([]domain.File, error) {
	const q = `
		SELECT ` + fileColumns + `
		FROM files
		WHERE file_name ILIKE $1 OR $2 = ANY(tags)
	`
	rows, err := r.pool.Query(ctx, q, "%"+query+"%", query)
	if err != nil {
		return nil, err
	}
	return collectFiles(rows)
}

func scanFile(row pgx.Row) (domain.File, error) {
	var f domain.File
	err := row.Scan(
		&f.ID,
		&f.Name,
		&f.Path,
		&f.UploaderID,
		&f.Description,
		&f.Tags,
		&f.UploadedAt,
	)
	if err != nil {
		return domain.File{}, err
	}
	return f, nil
}

func collectFiles(rows pgx.Rows) ([]domain.File, error) {
	defer rows.Close()

	var files []domain.File
	for rows.Next() {
		var f domain.File
		err := rows.Scan(
			&f.ID,
			&f.Name,
			&f.Path,
			&f.UploaderID,
			&f.Description,
			&f.Tags,
			&f.UploadedAt,
		)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return files, nil
}
