package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"padaria/internal/apiclient"
	"padaria/internal/config"
	"padaria/internal/logging"
	"padaria/internal/webapp"
)

const usage = `usage: padaria [-api URL] <command> [args]

commands:
  ping                                  check the API connection
  list                                  list products, newest first
  add -nome N -preco P [-descricao D]   create a product
  delete [-yes] <id>                    delete a product after confirmation
`

func main() {
	cfg := config.FromEnv()

	global := flag.NewFlagSet("padaria", flag.ExitOnError)
	apiURL := global.String("api", cfg.APIBaseURL, "API base URL")
	global.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	_ = global.Parse(os.Args[1:])

	args := global.Args()
	if len(args) == 0 {
		global.Usage()
		os.Exit(2)
	}

	logger := logging.NewCLI("padaria")
	client := apiclient.New(*apiURL, &http.Client{Timeout: 15 * time.Second})
	app := webapp.New(client,
		webapp.WithLocation(webapp.LoadLocation(cfg.Timezone)),
		webapp.WithLogger(logger),
		webapp.WithTimer(func(time.Duration, func()) {}),
	)

	ctx := context.Background()
	var err error
	switch args[0] {
	case "ping":
		app.Probe(ctx)
	case "list":
		app.Load(ctx)
	case "add":
		err = runAdd(ctx, app, args[1:])
	case "delete":
		err = runDelete(ctx, app, args[1:], os.Stdin, os.Stdout)
	default:
		global.Usage()
		os.Exit(2)
	}

	if werr := webapp.WriteText(os.Stdout, app.View()); werr != nil {
		logger.Error().Err(werr).Msg("write output")
	}
	if err != nil || failed(app.State()) {
		os.Exit(1)
	}
}

func runAdd(ctx context.Context, app *webapp.App, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	var form webapp.Form
	fs.StringVar(&form.Nome, "nome", "", "product name")
	fs.StringVar(&form.Preco, "preco", "", "price, e.g. 4.50")
	fs.StringVar(&form.Descricao, "descricao", "", "optional description")
	_ = fs.Parse(args)

	return app.Submit(ctx, form)
}

func runDelete(ctx context.Context, app *webapp.App, args []string, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		return errors.New("delete needs exactly one id")
	}

	// Non-numeric ids fall through as 0 and are rejected by AskDelete.
	id, _ := strconv.ParseInt(fs.Arg(0), 10, 64)

	app.Load(ctx)
	nome := fs.Arg(0)
	for _, c := range app.View().Cards {
		if c.DeleteID == id {
			nome = c.DeleteNome
		}
	}

	if err := app.AskDelete(id, nome); err != nil {
		return err
	}
	if !*yes && !confirm(in, out, nome) {
		app.CancelDelete()
		return nil
	}
	return app.ConfirmDelete(ctx)
}

func confirm(in io.Reader, out io.Writer, nome string) bool {
	fmt.Fprintf(out, "Tem certeza que deseja excluir o produto %q? [s/N] ", nome)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "sim", "y", "yes":
		return true
	default:
		return false
	}
}

func failed(s webapp.State) bool {
	if s.Banner.Status == webapp.StatusOffline {
		return true
	}
	for _, t := range s.Toasts {
		if t.Kind == webapp.ToastError {
			return true
		}
	}
	return false
}
