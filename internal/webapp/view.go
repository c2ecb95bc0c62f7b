package webapp

import (
	"strconv"
	"time"
)

type BannerView struct {
	Status  ConnectionStatus
	Icon    string
	Message string
}

type Card struct {
	ID        int64
	Nome      string
	Preco     string
	Descricao string
	CriadoEm  string
	// DeleteID and DeleteNome are what the delete affordance hands to AskDelete.
	DeleteID   int64
	DeleteNome string
}

type ModalView struct {
	Nome string
}

type ToastView struct {
	ID      int
	Kind    ToastKind
	Icon    string
	Message string
}

type View struct {
	Banner      *BannerView
	ShowLoading bool
	ShowEmpty   bool
	ShowGrid    bool
	ShowCounter bool
	Counter     string
	Cards       []Card
	Modal       *ModalView
	// SubmitDisabled is set while a creation request is in flight.
	SubmitDisabled bool
	ShowSpinner    bool
	Toasts         []ToastView
}

var bannerIcons = map[ConnectionStatus]string{
	StatusLoading: "⏳",
	StatusOnline:  "✅",
	StatusOffline: "❌",
}

var toastIcons = map[ToastKind]string{
	ToastSuccess: "✅",
	ToastError:   "❌",
	ToastInfo:    "ℹ️",
}

// Render projects s into a View. Timestamps are shown in loc.
func Render(s State, loc *time.Location) View {
	v := View{
		SubmitDisabled: s.Busy,
		ShowSpinner:    s.Busy,
	}

	if s.Banner.Visible {
		v.Banner = &BannerView{
			Status:  s.Banner.Status,
			Icon:    bannerIcons[s.Banner.Status],
			Message: s.Banner.Message,
		}
	}

	switch {
	case s.Loading:
		v.ShowLoading = true
	case s.LoadFailed || len(s.Products) == 0:
		v.ShowEmpty = true
	default:
		v.ShowGrid = true
		v.ShowCounter = true
		v.Counter = strconv.Itoa(len(s.Products))
		v.Cards = make([]Card, 0, len(s.Products))
		for _, p := range s.Products {
			c := Card{
				ID:         p.ID,
				Nome:       p.Nome,
				Preco:      FormatMoeda(p.Preco),
				CriadoEm:   FormatData(p.CreatedAt, loc),
				DeleteID:   p.ID,
				DeleteNome: p.Nome,
			}
			if p.Descricao != nil {
				c.Descricao = *p.Descricao
			}
			v.Cards = append(v.Cards, c)
		}
	}

	if s.Pending != nil {
		v.Modal = &ModalView{Nome: s.Pending.Nome}
	}

	for _, t := range s.Toasts {
		v.Toasts = append(v.Toasts, ToastView{ID: t.ID, Kind: t.Kind, Icon: toastIcons[t.Kind], Message: t.Message})
	}
	return v
}
