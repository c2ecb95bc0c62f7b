package product

import (
	"context"
	"errors"

	"padaria/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zerolog.Logger) Repository {
	l := zerolog.Nop()
	if logger != nil {
		l = logger.With().Str("repo", "produtos").Str("driver", "postgres").Logger()
	}
	return &postgresRepo{pool: pool, logger: l}
}

const productColumns = `id, nome, preco::float8, descricao, created_at`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `SELECT ` + productColumns + `
FROM produtos
ORDER BY created_at DESC, id DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Error().Err(err).Msg("list")
		return nil, err
	}
	defer rows.Close()

	result := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Nome, &p.Preco, &p.Descricao, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("list rows")
		return nil, err
	}
	r.logger.Debug().Int("count", len(result)).Msg("list")
	return result, nil
}

func (r *postgresRepo) Create(ctx context.Context, in domain.NewProduct) (*domain.Product, error) {
	const q = `
INSERT INTO produtos (nome, preco, descricao)
VALUES ($1, $2::float8, $3)
RETURNING ` + productColumns
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, in.Nome, in.Preco, in.Descricao).
		Scan(&p.ID, &p.Nome, &p.Preco, &p.Descricao, &p.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("nome", in.Nome).Msg("create")
		return nil, err
	}
	r.logger.Debug().Int64("id", p.ID).Str("nome", p.Nome).Msg("created")
	return &p, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	const q = `SELECT ` + productColumns + `
FROM produtos
WHERE id = $1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.Nome, &p.Preco, &p.Descricao, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("id", id).Msg("get: not found")
			return nil, domain.ErrNotFound
		}
		r.logger.Error().Err(err).Int64("id", id).Msg("get")
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM produtos WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("id", id).Msg("delete")
		return err
	}
	r.logger.Debug().Int64("id", id).Int64("rows", tag.RowsAffected()).Msg("deleted")
	return nil
}

func (r *postgresRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
