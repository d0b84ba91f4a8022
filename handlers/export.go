package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"p9e.in/obras/models"
)

var exportHeaders = []string{
	"O.S",
	"Endereço",
	"Bairro",
	"Status",
	"Criticidade",
	"Progresso (%)",
	"Responsável Técnico",
	"Valor Total",
	"Data Início",
	"Data Previsão",
	"Descrição",
	"Observações",
}

// ExportObras streams the full order list as an Excel workbook named
// obras_YYYY-MM-DD.xlsx.
func ExportObras(w http.ResponseWriter, r *http.Request) {
	obras, err := db.ListObras()
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	serveWorkbook(w, obras, fmt.Sprintf("obras_%s.xlsx", time.Now().Format("2006-01-02")))
}

// ExportObra exports a single order, named after its O.S number.
func ExportObra(w http.ResponseWriter, r *http.Request) {
	obra, ok := fetchObra(w, r)
	if !ok {
		return
	}
	name := strings.ReplaceAll(obra.OS, "/", "-")
	serveWorkbook(w, []models.Obra{*obra}, fmt.Sprintf("obra_%s.xlsx", name))
}

func serveWorkbook(w http.ResponseWriter, obras []models.Obra, filename string) {
	f, err := buildObrasWorkbook(obras)
	if err != nil {
		http.Error(w, "failed to generate Excel file", http.StatusInternalServerError)
		return
	}
	buffer, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "failed to write Excel file", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

// buildObrasWorkbook renders the order list on a single "Obras" sheet
// with the pt-BR column set the dashboard exports.
func buildObrasWorkbook(obras []models.Obra) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Obras"

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	for colIdx, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	f.SetColWidth(sheet, "A", "L", 22)

	for rowIdx := range obras {
		o := &obras[rowIdx]
		values := []interface{}{
			o.OS,
			o.Endereco,
			o.Distrito,
			o.Status.Label(),
			string(o.Criticidade),
			o.Progresso,
			responsavelNome(o),
			formatBRL(o.ValorTotal()),
			formatDate(o.InicioPrevisto),
			formatDate(o.ConclusaoPrevista),
			o.DescricaoServico,
			o.Observacao,
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func responsavelNome(o *models.Obra) string {
	if o.ResponsavelTecnico != nil {
		return o.ResponsavelTecnico.Nome
	}
	return "Não informado"
}

func formatDate(t *models.JSONTime) string {
	if t == nil {
		return ""
	}
	return time.Time(*t).Format("02/01/2006")
}

// formatBRL renders a value as pt-BR currency: R$ 1.234,56.
func formatBRL(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.SplitN(s, ".", 2)
	intPart, decPart := parts[0], parts[1]

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}

	out := "R$ " + b.String() + "," + decPart
	if neg {
		out = "-" + out
	}
	return out
}
