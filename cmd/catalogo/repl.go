package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"brinquedos/internal/frontend"
	"brinquedos/internal/models"
)

const helpText = `Comandos:
  listar            mostra os brinquedos (alias: atualizar)
  cadastrar         cadastra um novo brinquedo
  excluir <id>      exclui um brinquedo após confirmação
  ajuda             mostra esta ajuda
  sair              encerra`

// repl reads commands line by line and drives the controller.
type repl struct {
	controller *frontend.Controller
	in         *bufio.Scanner
	out        io.Writer
	timeout    time.Duration
}

func newREPL(controller *frontend.Controller, in io.Reader, out io.Writer, timeout time.Duration) *repl {
	return &repl{
		controller: controller,
		in:         bufio.NewScanner(in),
		out:        out,
		timeout:    timeout,
	}
}

// Run loads the list once and then serves commands until "sair" or EOF.
func (r *repl) Run() error {
	fmt.Fprintln(r.out, "Loja de Brinquedos - digite \"ajuda\" para ver os comandos.")
	r.refresh()

	for {
		fmt.Fprint(r.out, "> ")
		line, ok := r.readLine()
		if !ok {
			fmt.Fprintln(r.out)
			return r.in.Err()
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch strings.ToLower(fields[0]) {
		case "listar", "atualizar":
			r.refresh()
		case "cadastrar":
			r.create()
		case "excluir":
			r.delete(fields[1:])
		case "ajuda":
			fmt.Fprintln(r.out, helpText)
		case "sair":
			return nil
		default:
			fmt.Fprintf(r.out, "Comando desconhecido: %s\n", fields[0])
		}
	}
}

func (r *repl) readLine() (string, bool) {
	if !r.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(r.in.Text()), true
}

func (r *repl) prompt(label string) (string, bool) {
	fmt.Fprintf(r.out, "%s: ", label)
	return r.readLine()
}

func (r *repl) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.timeout)
}

func (r *repl) refresh() {
	ctx, cancel := r.context()
	defer cancel()
	// Failures are already alerted by the controller.
	_ = r.controller.Refresh(ctx)
}

func (r *repl) create() {
	var form frontend.Form
	for _, f := range []struct {
		label string
		dst   *string
	}{
		{"Nome", &form.Name},
		{"Categoria", &form.Category},
		{"Idade recomendada", &form.RecommendedAge},
		{"Preço", &form.Price},
		{"Descrição", &form.Description},
	} {
		value, ok := r.prompt(f.label)
		if !ok {
			return
		}
		*f.dst = value
	}

	ctx, cancel := r.context()
	defer cancel()
	_ = r.controller.Submit(ctx, form)
}

func (r *repl) delete(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(r.out, "Uso: excluir <id>")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(r.out, "ID inválido")
		return
	}

	r.controller.RequestDelete(r.findToy(id))
	answer, ok := r.readLine()
	if !ok || !strings.EqualFold(answer, "s") {
		r.controller.CancelDelete()
		return
	}

	ctx, cancel := r.context()
	defer cancel()
	_ = r.controller.ConfirmDelete(ctx)
}

// findToy looks id up in the current list so the dialog can show its name.
func (r *repl) findToy(id int64) models.Toy {
	for _, toy := range r.controller.Snapshot().Toys() {
		if toy.ID == id {
			return toy
		}
	}
	return models.Toy{ID: id, Name: fmt.Sprintf("#%d", id)}
}
