// Package report renders admission calculations into per-benefit documents
// and packages them for download.
package report

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/warp/admission-benefits/benefit"
	"github.com/warp/admission-benefits/generic"
)

// Admission holds the employee details collected with the calculation.
// None of it influences the numbers; it is printed as-is.
type Admission struct {
	Name       string
	Company    string
	Client     string
	HireDate   generic.TimePoint
	Rotation   string
	Role       string
	Shift      string
	Bank       string
	PixKeyType string
	PixKey     string
}

// Document is one rendered benefit document.
type Document struct {
	Title    string
	Filename string
	Body     []byte
}

type field struct {
	Label string
	Value any
}

type documentData struct {
	ID           string
	Title        string
	Fields       []field
	Total        string
	Installments []string
}

const documentTemplate = `{{.Title}}
Documento: {{.ID}}

{{range .Fields}}{{.Label}}: {{.Value}}
{{end}}
Valor Total do Benefício: {{.Total}}
{{- if .Installments}}
Parcelas:
{{range $i, $p := .Installments}}  Parcela {{inc $i}}: {{$p}}
{{end}}{{end}}`

var documentTmpl = template.Must(template.New("document").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(documentTemplate))

// Render produces the document for one benefit breakdown.
func Render(id string, adm Admission, dayCount int, b benefit.Breakdown) (Document, error) {
	title := fmt.Sprintf("%s Inicial de %s - %s", b.Label, adm.Name, adm.HireDate)

	data := documentData{
		ID:    id,
		Title: title,
		Fields: []field{
			{"Nome Completo", adm.Name},
			{"Empresa", adm.Company},
			{"Cliente", adm.Client},
			{"Data de Admissão", adm.HireDate},
			{"Escala de Trabalho", adm.Rotation},
			{"Função", adm.Role},
			{"Horário", adm.Shift},
			{"Banco", adm.Bank},
			{"Tipo de chave Pix", adm.PixKeyType},
			{"Chave Pix", adm.PixKey},
			{"Dias de Benefício", dayCount},
		},
		Total: b.Total.String(),
	}
	for _, inst := range b.Installments {
		data.Installments = append(data.Installments, inst.String())
	}

	var out bytes.Buffer
	if err := documentTmpl.Execute(&out, data); err != nil {
		return Document{}, fmt.Errorf("failed to render %s document: %w", b.Label, err)
	}
	return Document{
		Title:    title,
		Filename: fileStem(adm) + "_" + safeName(b.Label) + ".txt",
		Body:     out.Bytes(),
	}, nil
}
