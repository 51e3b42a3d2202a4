package form

import (
	"embed"
	"html/template"
	"io"

	"github.com/jwalitptl/clinic-api/internal/catalog"
	"github.com/jwalitptl/clinic-api/internal/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var doctorTemplate = template.Must(template.ParseFS(templateFS, "templates/doctor_form.tmpl"))

type selectOption struct {
	Value    string
	Label    string
	Selected bool
}

type optionGroup struct {
	Label   string
	Options []selectOption
}

type fieldView struct {
	Select      bool
	Name        string
	Label       string
	Value       string
	Error       string
	Status      FieldStatus
	Placeholder string
	Options     []selectOption
	Groups      []optionGroup
}

type formView struct {
	Title       string
	Description string
	Submit      string
	Phase       Phase
	Open        bool
	FormError   string
	Fields      []fieldView
}

// Render writes the dialog markup for s. It depends only on s.
func Render(w io.Writer, s State) error {
	return doctorTemplate.Execute(w, view(s))
}

func view(s State) formView {
	v := formView{
		Title:       "Adicionar médico",
		Description: "Adicione um novo",
		Submit:      "Adicionar",
		Phase:       s.Phase,
		Open:        s.Open(),
		FormError:   s.FormError,
	}
	if s.Editing {
		v.Title = "Editar médico"
		v.Description = "Edite as informações deste médico"
		v.Submit = "Salvar"
	}

	field := func(name, label string) fieldView {
		f := fieldView{
			Name:   name,
			Label:  label,
			Value:  s.Values.Get(name),
			Status: s.FieldStatus(name),
		}
		if s.Submitted {
			f.Error, _ = s.Errors.Get(name)
		}
		return f
	}

	name := field(model.FieldName, "Nome")

	specialty := field(model.FieldSpecialty, "Especialidade")
	specialty.Select = true
	specialty.Placeholder = "Selecione uma especialidade"
	specialty.Options = options(catalog.Specialties(), specialty.Value)

	price := field(model.FieldAppointmentPrice, "Preço da consulta")
	if p, err := catalog.ParsePrice(price.Value); err == nil {
		price.Value = catalog.FormatPrice(p)
	}

	from := field(model.FieldAvailableFromWeekDay, "Dia inicial de disponibilidade")
	from.Select = true
	from.Placeholder = "Selecione um dia"
	from.Options = options(catalog.Weekdays(), from.Value)

	to := field(model.FieldAvailableToWeekDay, "Dia final de disponibilidade")
	to.Select = true
	to.Placeholder = "Selecione um dia"
	to.Options = options(catalog.Weekdays(), to.Value)

	fromTime := field(model.FieldAvailableFromTime, "Horário inicial de disponibilidade")
	fromTime.Select = true
	fromTime.Placeholder = "Selecione um horário"
	fromTime.Groups = groups(fromTime.Value)

	toTime := field(model.FieldAvailableToTime, "Horário final de disponibilidade")
	toTime.Select = true
	toTime.Placeholder = "Selecione um horário"
	toTime.Groups = groups(toTime.Value)

	v.Fields = []fieldView{name, specialty, price, from, to, fromTime, toTime}
	return v
}

func options(src []catalog.Option, selected string) []selectOption {
	out := make([]selectOption, 0, len(src))
	for _, o := range src {
		out = append(out, selectOption{Value: o.Value, Label: o.Label, Selected: o.Value == selected})
	}
	return out
}

func groups(selected string) []optionGroup {
	var out []optionGroup
	for _, g := range catalog.SlotGroups() {
		out = append(out, optionGroup{Label: g.Label, Options: options(g.Slots, selected)})
	}
	return out
}
