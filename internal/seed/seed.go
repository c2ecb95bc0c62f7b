package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"padaria/internal/domain"
	productsvc "padaria/internal/service/product"
)

// Catalog is the slice of the product service the seeder needs.
type Catalog interface {
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, in productsvc.CreateInput) (*domain.Product, error)
}

type productSeed struct {
	Nome      string
	Preco     float64
	Descricao string
}

var defaultProducts = []productSeed{
	{Nome: "Pão Francês", Preco: 0.75, Descricao: "Casquinha crocante, assado a cada hora"},
	{Nome: "Pão de Queijo", Preco: 4.50, Descricao: "Receita mineira com queijo canastra"},
	{Nome: "Bolo de Cenoura", Preco: 32.90, Descricao: "Com cobertura de chocolate"},
	{Nome: "Sonho", Preco: 6.00, Descricao: "Recheado com creme de baunilha"},
	{Nome: "Broa de Milho", Preco: 5.25},
	{Nome: "Croissant", Preco: 9.80, Descricao: "Massa folhada amanteigada"},
}

// Apply inserts demo bakery products for manual testing. Products whose name
// already exists in the catalog are skipped, so running it twice is harmless.
func Apply(ctx context.Context, catalog Catalog, logger zerolog.Logger) (int, error) {
	existing, err := catalog.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list products: %w", err)
	}
	seen := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		seen[normalize(p.Nome)] = struct{}{}
	}

	inserted := 0
	for _, s := range defaultProducts {
		if _, ok := seen[normalize(s.Nome)]; ok {
			logger.Debug().Str("nome", s.Nome).Msg("seed product already present")
			continue
		}
		in := productsvc.CreateInput{Nome: s.Nome, Preco: productsvc.PriceNumber(s.Preco)}
		if s.Descricao != "" {
			d := s.Descricao
			in.Descricao = &d
		}
		if _, err := catalog.Create(ctx, in); err != nil {
			return inserted, fmt.Errorf("create product %q: %w", s.Nome, err)
		}
		inserted++
	}
	return inserted, nil
}

func normalize(nome string) string {
	return strings.ToLower(strings.TrimSpace(nome))
}
