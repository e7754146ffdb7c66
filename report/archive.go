package report

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/warp/admission-benefits/benefit"
)

// InstallmentRow is one line of the installment CSV.
type InstallmentRow struct {
	DocumentID string `csv:"documento"`
	Benefit    string `csv:"beneficio"`
	Number     int    `csv:"parcela"`
	Amount     string `csv:"valor"`
}

// Bundle is everything produced for one admission.
type Bundle struct {
	ID        uuid.UUID
	Filename  string
	Documents []Document
	CSV       []byte
}

// Build renders one document per benefit plus the installment CSV.
func Build(adm Admission, result *benefit.Result) (*Bundle, error) {
	id := uuid.New()
	stem := fileStem(adm)

	bundle := &Bundle{
		ID:       id,
		Filename: stem + "_relatorios.zip",
	}

	var rows []InstallmentRow
	for _, b := range result.Benefits {
		doc, err := Render(id.String(), adm, result.DayCount(), b)
		if err != nil {
			return nil, err
		}
		bundle.Documents = append(bundle.Documents, doc)

		for i, inst := range b.Installments {
			rows = append(rows, InstallmentRow{
				DocumentID: id.String(),
				Benefit:    b.Label,
				Number:     i + 1,
				Amount:     inst.StringFixed(),
			})
		}
	}

	csv, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to encode installments: %w", err)
	}
	bundle.CSV = csv
	return bundle, nil
}

// WriteZip writes the bundle as a deflate-compressed zip archive.
func (b *Bundle) WriteZip(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, doc := range b.Documents {
		if err := writeEntry(zw, doc.Filename, doc.Body); err != nil {
			return err
		}
	}
	if err := writeEntry(zw, b.csvName(), b.CSV); err != nil {
		return err
	}
	return zw.Close()
}

// Zip returns the archive bytes.
func (b *Bundle) Zip() ([]byte, error) {
	var buf bytes.Buffer
	if err := b.WriteZip(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (b *Bundle) csvName() string {
	return strings.TrimSuffix(b.Filename, "_relatorios.zip") + "_parcelas.csv"
}

func writeEntry(zw *zip.Writer, name string, body []byte) error {
	f, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", name, err)
	}
	if _, err := f.Write(body); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// fileStem is "<name>_<hire date>" with path separators removed.
func fileStem(adm Admission) string {
	name := safeName(strings.TrimSpace(adm.Name))
	if name == "" {
		name = "admissao"
	}
	return name + "_" + adm.HireDate.String()
}

// safeName replaces characters that would turn a zip entry into a path.
func safeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '-'
		}
		return r
	}, s)
}
