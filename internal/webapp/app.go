package webapp

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"padaria/internal/apiclient"
	"padaria/internal/domain"
)

const (
	bannerTTL = 3 * time.Second
	toastTTL  = 5 * time.Second

	MsgNomeObrigatorio = "Nome do produto é obrigatório"
	MsgPrecoInvalido   = "Preço deve ser maior que zero"
	MsgIDInvalido      = "Erro: ID do produto inválido"
	MsgCadastrado      = "Produto cadastrado com sucesso!"

	fallbackNome = "sem nome"
)

// API is the subset of apiclient.Client the app drives.
type API interface {
	Health(ctx context.Context) error
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, in apiclient.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) (apiclient.DeleteResult, error)
}

// FormError is a client-side validation failure; no request was sent.
type FormError struct {
	Message string
}

func (e *FormError) Error() string { return e.Message }

// ErrInvalidID is returned by AskDelete for ids the store never assigns.
var ErrInvalidID = errors.New("invalid product id")

type Option func(*App)

// WithLocation sets the zone used to render timestamps.
func WithLocation(loc *time.Location) Option {
	return func(a *App) { a.loc = loc }
}

// WithTimer replaces time.AfterFunc for banner and toast expiry.
func WithTimer(after func(time.Duration, func())) Option {
	return func(a *App) { a.after = after }
}

// WithOnChange registers a callback invoked with the new View after every
// state change.
func WithOnChange(fn func(View)) Option {
	return func(a *App) { a.onChange = fn }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(a *App) { a.logger = logger }
}

type App struct {
	api      API
	loc      *time.Location
	after    func(time.Duration, func())
	onChange func(View)
	logger   zerolog.Logger
	validate *validator.Validate

	mu        sync.Mutex
	state     State
	nextToast int
}

func New(api API, opts ...Option) *App {
	a := &App{
		api:      api,
		loc:      time.Local,
		after:    func(d time.Duration, f func()) { time.AfterFunc(d, f) },
		logger:   zerolog.Nop(),
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// State returns a copy of the current state.
func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.clone()
}

func (a *App) View() View {
	return Render(a.State(), a.loc)
}

// Start runs the connectivity probe and the initial load.
func (a *App) Start(ctx context.Context) {
	a.Probe(ctx)
	a.Load(ctx)
}

func (a *App) update(fn func(s *State)) {
	a.mu.Lock()
	fn(&a.state)
	snapshot := a.state.clone()
	a.mu.Unlock()

	if a.onChange != nil {
		a.onChange(Render(snapshot, a.loc))
	}
}

// Probe checks the API and drives the connection banner.
func (a *App) Probe(ctx context.Context) {
	a.update(func(s *State) {
		s.Banner = Banner{Status: StatusLoading, Message: bannerChecking, Visible: true}
	})

	if err := a.api.Health(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("api unreachable")
		a.update(func(s *State) {
			s.Banner = Banner{Status: StatusOffline, Message: bannerOffline, Visible: true}
		})
		a.toast(ToastError, "Não foi possível conectar com a API. Verifique se o servidor está rodando.")
		return
	}

	a.update(func(s *State) {
		s.Banner = Banner{Status: StatusOnline, Message: bannerOnline, Visible: true}
	})
	a.after(bannerTTL, func() {
		a.update(func(s *State) {
			if s.Banner.Status == StatusOnline {
				s.Banner.Visible = false
			}
		})
	})
}

// Load fetches the catalog and replaces the local list.
func (a *App) Load(ctx context.Context) {
	a.update(func(s *State) {
		s.Loading = true
		s.LoadFailed = false
	})

	products, err := a.api.ListProducts(ctx)
	if err != nil {
		a.logger.Error().Err(err).Msg("load products")
		a.update(func(s *State) {
			s.Loading = false
			s.LoadFailed = true
		})
		a.toast(ToastError, "Erro ao carregar produtos: "+errorMessage(err))
		return
	}

	a.update(func(s *State) {
		s.Products = products
		s.Loading = false
	})
}

type formInput struct {
	Nome  string  `validate:"required"`
	Preco float64 `validate:"gt=0"`
}

// Submit validates f and creates the product. It returns a *FormError when
// validation fails, the API error when the request fails, nil otherwise.
func (a *App) Submit(ctx context.Context, f Form) error {
	a.update(func(s *State) { s.Form = f })

	in := formInput{
		Nome:  strings.TrimSpace(f.Nome),
		Preco: parsePreco(f.Preco),
	}
	if ferr := a.validateForm(in); ferr != nil {
		a.toast(ToastError, ferr.Message)
		return ferr
	}

	var descricao *string
	if d := strings.TrimSpace(f.Descricao); d != "" {
		descricao = &d
	}

	a.update(func(s *State) { s.Busy = true })
	defer a.update(func(s *State) { s.Busy = false })

	if _, err := a.api.CreateProduct(ctx, apiclient.ProductInput{Nome: in.Nome, Preco: in.Preco, Descricao: descricao}); err != nil {
		a.logger.Error().Err(err).Msg("create product")
		a.toast(ToastError, "Erro ao cadastrar produto: "+errorMessage(err))
		return err
	}

	a.toast(ToastSuccess, MsgCadastrado)
	a.update(func(s *State) { s.Form = Form{} })
	a.Load(ctx)
	return nil
}

func (a *App) validateForm(in formInput) *FormError {
	err := a.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &FormError{Message: err.Error()}
	}
	switch verrs[0].Field() {
	case "Nome":
		return &FormError{Message: MsgNomeObrigatorio}
	default:
		return &FormError{Message: MsgPrecoInvalido}
	}
}

// parsePreco reads a typed price, accepting a comma as decimal separator.
// Unparseable text yields NaN, which validation rejects.
func parsePreco(raw string) float64 {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

// AskDelete opens the confirmation prompt for the product.
func (a *App) AskDelete(id int64, nome string) error {
	if id <= 0 {
		a.toast(ToastError, MsgIDInvalido)
		return ErrInvalidID
	}
	a.update(func(s *State) { s.Pending = &PendingDeletion{ID: id, Nome: nome} })
	return nil
}

func (a *App) CancelDelete() {
	a.update(func(s *State) { s.Pending = nil })
}

// KeyPressed closes the prompt on Escape.
func (a *App) KeyPressed(key string) {
	if key != "Escape" {
		return
	}
	a.CancelDelete()
}

// ClickOutside closes the prompt, like clicking the modal backdrop.
func (a *App) ClickOutside() {
	a.CancelDelete()
}

// ConfirmDelete closes the prompt and deletes the pending product. It is a
// no-op when nothing is pending.
func (a *App) ConfirmDelete(ctx context.Context) error {
	var pending *PendingDeletion
	a.update(func(s *State) {
		pending = s.Pending
		s.Pending = nil
	})
	if pending == nil {
		return nil
	}
	return a.deleteProduct(ctx, pending.ID)
}

func (a *App) deleteProduct(ctx context.Context, id int64) error {
	local, _ := a.State().productName(id)

	res, err := a.api.DeleteProduct(ctx, id)
	if err != nil {
		a.logger.Error().Err(err).Int64("id", id).Msg("delete product")
		a.toast(ToastError, "Erro ao excluir produto: "+errorMessage(err))
		return err
	}

	nome := res.Nome
	if nome == "" {
		nome = local
	}
	if nome == "" {
		nome = fallbackNome
	}
	a.toast(ToastSuccess, fmt.Sprintf("Produto \"%s\" excluído com sucesso!", nome))
	a.Load(ctx)
	return nil
}

// DismissToast removes a toast before it expires.
func (a *App) DismissToast(id int) {
	a.update(func(s *State) {
		for i, t := range s.Toasts {
			if t.ID == id {
				s.Toasts = append(s.Toasts[:i:i], s.Toasts[i+1:]...)
				return
			}
		}
	})
}

func (a *App) toast(kind ToastKind, msg string) {
	var id int
	a.update(func(s *State) {
		a.nextToast++
		id = a.nextToast
		s.Toasts = append(s.Toasts, Toast{ID: id, Kind: kind, Message: msg})
	})
	a.after(toastTTL, func() { a.DismissToast(id) })
}

func errorMessage(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
