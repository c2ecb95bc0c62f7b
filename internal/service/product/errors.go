package product

import "fmt"

const (
	MsgRequired     = "Nome e preço são obrigatórios"
	MsgInvalidPrice = "Preço deve ser um número maior que zero"
	MsgInvalidID    = "ID deve ser um número válido"

	MsgListFailed   = "Erro ao buscar produtos"
	MsgCreateFailed = "Erro ao cadastrar produto"
	MsgLookupFailed = "Erro ao buscar produto antes de excluir"
	MsgDeleteFailed = "Erro ao excluir produto"
)

// ValidationError rejects input before any store call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// StoreError carries a failure reported by the store together with the
// user-facing summary of the operation that failed.
type StoreError struct {
	Message string
	Err     error
}

func (e *StoreError) Error() string { return fmt.Sprintf("%s: %v", e.Message, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }
