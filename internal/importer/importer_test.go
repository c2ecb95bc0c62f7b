package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"padaria/internal/domain"
	productsvc "padaria/internal/service/product"
)

type stubCreator struct {
	items []domain.NewProduct
	err   error
}

func (s *stubCreator) Create(_ context.Context, in productsvc.CreateInput) (*domain.Product, error) {
	np, err := in.Validate()
	if err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	s.items = append(s.items, np)
	return &domain.Product{ID: int64(len(s.items)), Nome: np.Nome, Preco: np.Preco, Descricao: np.Descricao}, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := "nome,preco,descricao\n" +
		"Pão de Queijo,4.50,Mineiro\n" +
		"Sonho,6,\n" +
		"Broa,5.25\n" +
		"\n" +
		"Bolo sem preço,,Chocolate\n" +
		"Torta,-3,Limão\n"

	creator := &stubCreator{}
	res, err := NewCSVImporter(strings.NewReader(csvData), creator, zerolog.Nop()).Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if res.Imported != 3 {
		t.Fatalf("expected 3 products imported, got %d", res.Imported)
	}
	if len(res.Rejected) != 2 {
		t.Fatalf("expected 2 rejected rows, got %d: %+v", len(res.Rejected), res.Rejected)
	}
	if res.Rejected[0].Nome != "Bolo sem preço" || res.Rejected[1].Nome != "Torta" {
		t.Fatalf("unexpected rejected rows: %+v", res.Rejected)
	}

	first := creator.items[0]
	if first.Nome != "Pão de Queijo" || first.Preco != 4.5 || first.Descricao == nil || *first.Descricao != "Mineiro" {
		t.Fatalf("unexpected first product: %+v", first)
	}
	if creator.items[1].Descricao != nil {
		t.Fatalf("expected nil descricao for empty column, got %q", *creator.items[1].Descricao)
	}
}

func TestCSVImporter_HeaderOrderAndCase(t *testing.T) {
	csvData := "\ufeffDescricao,Preco,Nome\nCrocante,0.75,Pão Francês\n"

	creator := &stubCreator{}
	res, err := NewCSVImporter(strings.NewReader(csvData), creator, zerolog.Nop()).Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if res.Imported != 1 || creator.items[0].Nome != "Pão Francês" || creator.items[0].Preco != 0.75 {
		t.Fatalf("unexpected import: %+v %+v", res, creator.items)
	}
}

func TestCSVImporter_MissingColumn(t *testing.T) {
	_, err := NewCSVImporter(strings.NewReader("nome,descricao\nPão,x\n"), &stubCreator{}, zerolog.Nop()).Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), `"preco"`) {
		t.Fatalf("expected missing preco column error, got %v", err)
	}
}

func TestCSVImporter_StoreFailureAborts(t *testing.T) {
	storeErr := &productsvc.StoreError{Message: productsvc.MsgCreateFailed, Err: errors.New("disk full")}
	creator := &stubCreator{err: storeErr}

	res, err := NewCSVImporter(strings.NewReader("nome,preco\nPão,1\nSonho,2\n"), creator, zerolog.Nop()).Run(context.Background())

	var rowErr *RowError
	if !errors.As(err, &rowErr) {
		t.Fatalf("expected RowError, got %v", err)
	}
	if rowErr.Line != 2 || !errors.Is(err, storeErr) {
		t.Fatalf("unexpected row error: %+v", rowErr)
	}
	if res.Imported != 0 {
		t.Fatalf("expected nothing imported, got %d", res.Imported)
	}
}
