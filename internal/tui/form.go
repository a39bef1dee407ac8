package tui

import (
	"errors"
	"strings"
	"time"

	"ticketdesk-service/internal/client"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Form field indices. fieldEnd is only reachable in serial mode.
const (
	fieldNumber = iota
	fieldEnd
	fieldClient
	fieldOperator
	fieldType
	fieldNotes
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Ticket number",
	"Range end",
	"Client",
	"Operator",
	"Type",
	"Notes",
}

// addForm is the add-ticket entry form. A toggle switches between
// single-ticket entry and serial entry for a contiguous zero-padded
// range, mirroring the original box-office workflow of selling printed
// ticket books in blocks.
type addForm struct {
	serial bool
	inputs [fieldCount]textinput.Model
	focus  int
	errMsg string
}

func newAddForm() *addForm {
	form := &addForm{}
	for i := range form.inputs {
		input := textinput.New()
		input.Prompt = ""
		input.Width = 28
		form.inputs[i] = input
	}
	form.inputs[fieldNumber].CharLimit = 5
	form.inputs[fieldEnd].CharLimit = 5
	form.inputs[fieldNumber].Placeholder = "00001"
	form.inputs[fieldEnd].Placeholder = "00050"
	form.inputs[fieldNumber].Focus()
	return form
}

// toggleSerial flips between single and serial entry
func (f *addForm) toggleSerial() {
	f.serial = !f.serial
	f.errMsg = ""
	if !f.serial && f.focus == fieldEnd {
		f.setFocus(fieldNumber)
	}
}

// label returns the display label for a field; the number field doubles
// as the range start in serial mode
func (f *addForm) label(index int) string {
	if index == fieldNumber && f.serial {
		return "Range start"
	}
	return fieldLabels[index]
}

func (f *addForm) setFocus(index int) {
	f.inputs[f.focus].Blur()
	f.focus = index
	f.inputs[f.focus].Focus()
}

// nextField advances focus, skipping the range-end field in single mode
func (f *addForm) nextField(backwards bool) {
	step := 1
	if backwards {
		step = fieldCount - 1
	}
	next := (f.focus + step) % fieldCount
	if next == fieldEnd && !f.serial {
		next = (next + step) % fieldCount
	}
	f.setFocus(next)
}

// Update routes keystrokes to the focused input
func (f *addForm) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

var errFormIncomplete = errors.New("ticket number, client, operator and type are required")

// submit validates the form and expands it into the request payload:
// one TicketInput for single entry, a pre-expanded ordered list for
// serial entry. Range validation (numeric bounds, start not past end)
// happens here, before anything reaches the server.
func (f *addForm) submit() ([]client.TicketInput, error) {
	base := client.TicketInput{
		Date:     time.Now().Format(time.RFC3339),
		Client:   strings.TrimSpace(f.inputs[fieldClient].Value()),
		Operator: strings.TrimSpace(f.inputs[fieldOperator].Value()),
		Type:     strings.TrimSpace(f.inputs[fieldType].Value()),
		Notes:    strings.TrimSpace(f.inputs[fieldNotes].Value()),
	}
	number := strings.TrimSpace(f.inputs[fieldNumber].Value())
	if number == "" || base.Client == "" || base.Operator == "" || base.Type == "" {
		return nil, errFormIncomplete
	}

	if !f.serial {
		single := base
		single.TicketNumber = number
		return []client.TicketInput{single}, nil
	}

	numbers, err := client.ExpandSerial(number, strings.TrimSpace(f.inputs[fieldEnd].Value()))
	if err != nil {
		return nil, err
	}
	documents := make([]client.TicketInput, 0, len(numbers))
	for _, n := range numbers {
		document := base
		document.TicketNumber = n
		documents = append(documents, document)
	}
	return documents, nil
}

// View renders the form pane
func (f *addForm) View(theme Theme) string {
	var b strings.Builder
	b.WriteString(theme.FormTitle.Render("Add paper tickets"))
	b.WriteString("\n")

	mode := "single"
	if f.serial {
		mode = "serial range"
	}
	b.WriteString(theme.FormLabel.Render("Entry mode"))
	b.WriteString(mode + "  (ctrl+s to switch)\n")

	for i, input := range f.inputs {
		if i == fieldEnd && !f.serial {
			continue
		}
		b.WriteString(theme.FormLabel.Render(f.label(i)))
		b.WriteString(input.View())
		b.WriteString("\n")
	}

	if f.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorNotice.Render(f.errMsg))
	}
	b.WriteString("\n")
	b.WriteString(theme.Help.Render("tab: next field · enter: submit · esc: cancel"))
	return b.String()
}
