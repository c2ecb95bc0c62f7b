package product

import (
	"context"
	"errors"
	"time"

	"padaria/internal/domain"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// produtoRow is the gorm model backing the sqlite store.
type produtoRow struct {
	ID        int64   `gorm:"primaryKey;autoIncrement"`
	Nome      string  `gorm:"not null"`
	Preco     float64 `gorm:"not null"`
	Descricao *string
	CreatedAt time.Time `gorm:"not null;index"`
}

func (produtoRow) TableName() string { return "produtos" }

func (r produtoRow) toDomain() domain.Product {
	return domain.Product{
		ID:        r.ID,
		Nome:      r.Nome,
		Preco:     r.Preco,
		Descricao: r.Descricao,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

type sqliteRepo struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// OpenSQLite opens (or creates) the sqlite database at dsn and migrates the
// produtos table. Use "file::memory:?cache=shared" for a throwaway store.
func OpenSQLite(dsn string, logger *zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&produtoRow{}); err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Info().Str("dsn", dsn).Msg("sqlite store ready")
	}
	return db, nil
}

func NewSQLite(db *gorm.DB, logger *zerolog.Logger) Repository {
	l := zerolog.Nop()
	if logger != nil {
		l = logger.With().Str("repo", "produtos").Str("driver", "sqlite").Logger()
	}
	return &sqliteRepo{db: db, logger: l}
}

func (r *sqliteRepo) List(ctx context.Context) ([]domain.Product, error) {
	var rows []produtoRow
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		r.logger.Error().Err(err).Msg("list")
		return nil, err
	}
	result := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toDomain())
	}
	r.logger.Debug().Int("count", len(result)).Msg("list")
	return result, nil
}

func (r *sqliteRepo) Create(ctx context.Context, in domain.NewProduct) (*domain.Product, error) {
	row := produtoRow{
		Nome:      in.Nome,
		Preco:     in.Preco,
		Descricao: in.Descricao,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		r.logger.Error().Err(err).Str("nome", in.Nome).Msg("create")
		return nil, err
	}
	p := row.toDomain()
	r.logger.Debug().Int64("id", p.ID).Str("nome", p.Nome).Msg("created")
	return &p, nil
}

func (r *sqliteRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var row produtoRow
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error().Err(err).Int64("id", id).Msg("get")
		return nil, err
	}
	p := row.toDomain()
	return &p, nil
}

func (r *sqliteRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&produtoRow{})
	if res.Error != nil {
		r.logger.Error().Err(res.Error).Int64("id", id).Msg("delete")
		return res.Error
	}
	r.logger.Debug().Int64("id", id).Int64("rows", res.RowsAffected).Msg("deleted")
	return nil
}

func (r *sqliteRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
