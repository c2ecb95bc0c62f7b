// Package webapp holds the catalog client state and the operations that
// change it. Rendering is a pure function of State.
package webapp

import "padaria/internal/domain"

// ConnectionStatus drives the connection banner.
type ConnectionStatus string

const (
	StatusLoading ConnectionStatus = "loading"
	StatusOnline  ConnectionStatus = "online"
	StatusOffline ConnectionStatus = "offline"
)

const (
	bannerChecking = "Verificando conexão com a API..."
	bannerOnline   = "Conectado com sucesso à API!"
	bannerOffline  = "Erro de conexão. Verifique se o backend está rodando."
)

type ToastKind string

const (
	ToastSuccess ToastKind = "sucesso"
	ToastError   ToastKind = "erro"
	ToastInfo    ToastKind = "info"
)

type Toast struct {
	ID      int
	Kind    ToastKind
	Message string
}

type Banner struct {
	Status  ConnectionStatus
	Message string
	Visible bool
}

// PendingDeletion is the product awaiting confirmation.
type PendingDeletion struct {
	ID   int64
	Nome string
}

// Form is the raw creation form as typed by the user.
type Form struct {
	Nome      string
	Preco     string
	Descricao string
}

type State struct {
	Products   []domain.Product
	Loading    bool
	LoadFailed bool
	Pending    *PendingDeletion
	Busy       bool
	Form       Form
	Banner     Banner
	Toasts     []Toast
}

func (s State) clone() State {
	out := s
	out.Products = append([]domain.Product(nil), s.Products...)
	out.Toasts = append([]Toast(nil), s.Toasts...)
	if s.Pending != nil {
		p := *s.Pending
		out.Pending = &p
	}
	return out
}

func (s State) productName(id int64) (string, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p.Nome, true
		}
	}
	return "", false
}
