package product

import (
	"context"
	"os"
	"testing"

	"padaria/internal/domain"
	"padaria/internal/migrate"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

func TestPostgres_CreateListGetDelete(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)

	desc := "Casca crocante"
	first, err := repo.Create(ctx, domain.NewProduct{Nome: "Pão francês", Preco: 0.75, Descricao: &desc})
	if err != nil {
		t.Fatalf("Create first: %v", err)
	}
	if first.ID <= 0 || first.CreatedAt.IsZero() {
		t.Fatalf("expected store-assigned id and timestamp, got %+v", first)
	}
	second, err := repo.Create(ctx, domain.NewProduct{Nome: "Pão", Preco: 5.5})
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}
	if second.Descricao != nil {
		t.Fatalf("expected nil descricao, got %q", *second.Descricao)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("expected newest first, got %+v", list)
	}
	if list[0].Preco != 5.5 {
		t.Fatalf("expected preco 5.5, got %v", list[0].Preco)
	}

	got, err := repo.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Nome != "Pão francês" || got.Descricao == nil || *got.Descricao != desc {
		t.Fatalf("unexpected product %+v", got)
	}

	if err := repo.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, first.ID); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestPostgres_RejectsNonPositivePrice(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	if _, err := repo.Create(ctx, domain.NewProduct{Nome: "Bolo", Preco: 0}); err == nil {
		t.Fatalf("expected check constraint violation")
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE produtos RESTART IDENTITY`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}
