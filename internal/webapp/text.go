package webapp

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteText prints v for a terminal.
func WriteText(w io.Writer, v View) error {
	if v.Banner != nil {
		if _, err := fmt.Fprintf(w, "%s %s\n\n", v.Banner.Icon, v.Banner.Message); err != nil {
			return err
		}
	}

	switch {
	case v.ShowLoading:
		fmt.Fprintln(w, "Carregando produtos...")
	case v.ShowEmpty:
		fmt.Fprintln(w, "Nenhum produto cadastrado ainda.")
	case v.ShowGrid:
		fmt.Fprintf(w, "Produtos cadastrados (%s)\n", v.Counter)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNOME\tPREÇO\tCADASTRADO EM\tDESCRIÇÃO")
		for _, c := range v.Cards {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.Nome, c.Preco, c.CriadoEm, c.Descricao)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if v.Modal != nil {
		fmt.Fprintf(w, "\nTem certeza que deseja excluir o produto %q?\n", v.Modal.Nome)
	}

	for _, t := range v.Toasts {
		if _, err := fmt.Fprintf(w, "%s %s\n", t.Icon, t.Message); err != nil {
			return err
		}
	}
	return nil
}
