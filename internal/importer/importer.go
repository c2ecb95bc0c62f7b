package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"padaria/internal/domain"
	productsvc "padaria/internal/service/product"
)

// ProductCreator is satisfied by the product service, so imported rows go
// through the same validation as API requests.
type ProductCreator interface {
	Create(ctx context.Context, in productsvc.CreateInput) (*domain.Product, error)
}

// RowError reports a row the service rejected.
type RowError struct {
	Line int
	Nome string
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d (%q): %v", e.Line, e.Nome, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Result summarizes an import run.
type Result struct {
	Imported int
	Rejected []RowError
}

// CSVImporter reads nome,preco,descricao rows and creates one product per row.
type CSVImporter struct {
	reader  *csv.Reader
	creator ProductCreator
	logger  zerolog.Logger
}

func NewCSVImporter(r io.Reader, creator ProductCreator, logger zerolog.Logger) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // descricao may be omitted
	csvr.TrimLeadingSpace = true
	return &CSVImporter{reader: csvr, creator: creator, logger: logger}
}

// Run imports every row. Validation failures are collected and the run
// continues; store or read failures abort it.
func (i *CSVImporter) Run(ctx context.Context) (Result, error) {
	var res Result

	headers, err := i.reader.Read()
	if err != nil {
		return res, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, required := range []string{"nome", "preco"} {
		if _, ok := index[required]; !ok {
			return res, fmt.Errorf("missing %q column", required)
		}
	}

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("read row: %w", err)
		}
		line, _ := i.reader.FieldPos(0)

		in := parseRow(record, index)
		if in.Nome == "" && len(in.Preco) == 0 {
			continue
		}

		p, err := i.creator.Create(ctx, in)
		if err != nil {
			var verr *productsvc.ValidationError
			if errors.As(err, &verr) {
				i.logger.Warn().Int("line", line).Str("nome", in.Nome).Str("reason", verr.Message).Msg("row rejected")
				res.Rejected = append(res.Rejected, RowError{Line: line, Nome: in.Nome, Err: err})
				continue
			}
			return res, &RowError{Line: line, Nome: in.Nome, Err: err}
		}
		i.logger.Debug().Int64("id", p.ID).Str("nome", p.Nome).Msg("row imported")
		res.Imported++
	}

	return res, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) productsvc.CreateInput {
	in := productsvc.CreateInput{Nome: pick(record, index, "nome")}
	if preco := pick(record, index, "preco"); preco != "" {
		in.Preco = productsvc.PriceText(preco)
	}
	if d := pick(record, index, "descricao"); d != "" {
		in.Descricao = &d
	}
	return in
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
