package frontend

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"brinquedos/internal/models"
)

// TerminalView renders the catalog as plain text.
type TerminalView struct {
	w io.Writer
}

// NewTerminalView creates a TerminalView writing to w.
func NewTerminalView(w io.Writer) *TerminalView {
	return &TerminalView{w: w}
}

func (v *TerminalView) Render(s Snapshot) {
	switch s.State() {
	case StateLoading:
		fmt.Fprintln(v.w, "Carregando brinquedos...")
	case StateEmpty:
		fmt.Fprintln(v.w, "Nenhum brinquedo cadastrado.")
	case StatePopulated:
		fmt.Fprintf(v.w, "Total: %d\n", s.Total())
		for _, toy := range s.Toys() {
			v.renderToy(toy)
		}
	}
}

func (v *TerminalView) renderToy(toy models.Toy) {
	fmt.Fprintf(v.w, "[%d] %s\n", toy.ID, toy.Name)
	fmt.Fprintf(v.w, "    Categoria: %s\n", toy.Category)
	if toy.RecommendedAge != nil {
		fmt.Fprintf(v.w, "    Idade recomendada: %s+ anos\n", strings.TrimSuffix(*toy.RecommendedAge, "+"))
	}
	if toy.Description != nil {
		fmt.Fprintf(v.w, "    %s\n", *toy.Description)
	}
	fmt.Fprintf(v.w, "    R$ %s\n", FormatPrice(toy.Price))
}

func (v *TerminalView) SetBusy(busy bool) {
	if busy {
		fmt.Fprintln(v.w, "Cadastrando...")
	}
}

func (v *TerminalView) Alert(message string) {
	fmt.Fprintf(v.w, "! %s\n", message)
}

// ResetForm is a no-op: the terminal prompts for a fresh form every time.
func (v *TerminalView) ResetForm() {}

func (v *TerminalView) ShowConfirm(name string) {
	fmt.Fprintf(v.w, "Excluir %q? (s/n) ", name)
}

func (v *TerminalView) HideConfirm() {}

// FormatPrice renders a price in the pt-BR style, e.g. 1234.5 -> "1.234,50".
func FormatPrice(price float64) string {
	raw := strconv.FormatFloat(price, 'f', 2, 64)
	sign := ""
	if strings.HasPrefix(raw, "-") {
		sign, raw = "-", raw[1:]
	}
	intPart, frac := raw[:len(raw)-3], raw[len(raw)-2:]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "," + frac
}
