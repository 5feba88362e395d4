package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/devsdeimpacto/coleta-service/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the service-order listing as a single-sheet workbook:
// a short summary block followed by one row per order.
func (g *Generator) Generate(report model.OrderReport) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "Ordens de Serviço"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Gerado em")
	set("B1", formatDateTime(report.GeneratedAt))
	set("A2", "Status")
	set("B2", statusLabel(report.Status))
	set("A3", "Ano")
	set("B3", yearLabel(report.Year))
	set("A4", "Total de ordens")
	set("B4", report.Total)

	tableRow := 6
	headers := []string{
		"Número OS",
		"Status",
		"Solicitante",
		"Material",
		"Qtd. itens",
		"Endereço",
		"Empresa",
		"Ponto de coleta",
		"Catador",
		"Criada em",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, row := range report.Rows {
		line := tableRow + 1 + i
		set(fmt.Sprintf("A%d", line), row.Number)
		set(fmt.Sprintf("B%d", line), string(row.Status))
		set(fmt.Sprintf("C%d", line), row.RequesterName)
		set(fmt.Sprintf("D%d", line), row.MaterialType)
		set(fmt.Sprintf("E%d", line), row.ItemCount)
		set(fmt.Sprintf("F%d", line), row.Address)
		set(fmt.Sprintf("G%d", line), formatString(row.CompanyName))
		set(fmt.Sprintf("H%d", line), formatString(row.PointName))
		set(fmt.Sprintf("I%d", line), formatString(row.CollectorName))
		set(fmt.Sprintf("J%d", line), formatDateTime(row.CreatedAt))
	}

	_ = file.SetColWidth(sheet, "A", "A", 16)
	_ = file.SetColWidth(sheet, "B", "B", 16)
	_ = file.SetColWidth(sheet, "C", "C", 32)
	_ = file.SetColWidth(sheet, "D", "E", 12)
	_ = file.SetColWidth(sheet, "F", "F", 48)
	_ = file.SetColWidth(sheet, "G", "I", 28)
	_ = file.SetColWidth(sheet, "J", "J", 20)

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func statusLabel(status *model.OrderStatus) string {
	if status == nil {
		return "Todos"
	}
	return string(*status)
}

func yearLabel(year *int) string {
	if year == nil {
		return "Todos"
	}
	return fmt.Sprintf("%d", *year)
}

func formatString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
