package product

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"padaria/internal/domain"
)

// CreateInput is the candidate record as received on the wire. Preco is kept
// raw because clients send it either as a JSON number or as a numeric string.
type CreateInput struct {
	Nome      string          `json:"nome"`
	Preco     json.RawMessage `json:"preco"`
	Descricao *string         `json:"descricao"`
}

// PriceText encodes a textual price the way a form post would send it.
func PriceText(s string) json.RawMessage {
	return json.RawMessage(strconv.Quote(s))
}

// PriceNumber encodes a numeric price.
func PriceNumber(v float64) json.RawMessage {
	return json.RawMessage(strconv.FormatFloat(v, 'f', -1, 64))
}

// Validate checks the candidate and returns the normalized record.
// A missing or zero price counts as absent; any other non-positive or
// non-numeric price is invalid.
func (in CreateInput) Validate() (domain.NewProduct, error) {
	nome := strings.TrimSpace(in.Nome)
	preco, present, ok := parsePreco(in.Preco)
	if nome == "" || !present {
		return domain.NewProduct{}, &ValidationError{Message: MsgRequired}
	}
	if !ok || preco <= 0 {
		return domain.NewProduct{}, &ValidationError{Message: MsgInvalidPrice}
	}

	var descricao *string
	if in.Descricao != nil {
		if d := strings.TrimSpace(*in.Descricao); d != "" {
			descricao = &d
		}
	}
	return domain.NewProduct{Nome: nome, Preco: preco, Descricao: descricao}, nil
}

func parsePreco(raw json.RawMessage) (value float64, present, ok bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte("false")) {
		return 0, false, false
	}

	var text string
	switch raw[0] {
	case '"':
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, true, false
		}
		if text == "" {
			return 0, false, false
		}
		text = strings.TrimSpace(text)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		text = string(raw)
	default:
		return 0, true, false
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, true, false
	}
	if v == 0 && raw[0] != '"' {
		return 0, false, false
	}
	return v, true, true
}

// ParseID validates a path-supplied product id.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, &ValidationError{Message: MsgInvalidID}
	}
	return id, nil
}
