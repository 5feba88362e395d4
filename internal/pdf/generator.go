package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/devsdeimpacto/coleta-service/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

// Generate renders the printable service-order document: the order header,
// the requester block and whatever resources are assigned.
func (g *Generator) Generate(doc model.OrderDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, tr("ORDEM DE SERVIÇO"), "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("OS nº %s — %s", doc.Order.Number, statusLabel(doc.Order.Status))), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Criada em %s", formatDate(doc.Order.CreatedAt))), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, tr("Solicitante"), "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	lines := []string{
		doc.Request.RequesterName,
		fmt.Sprintf("Documento (%s): %s", doc.Request.PersonType, doc.Request.Document),
		fmt.Sprintf("E-mail: %s", safeValue(doc.Request.Email)),
		fmt.Sprintf("WhatsApp: %s", safeValue(doc.Request.WhatsApp)),
	}
	for _, line := range lines {
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
	}
	pdf.Ln(2)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, tr("Coleta"), "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	pdf.MultiCell(0, 5, tr(fmt.Sprintf("Material: %s — %d item(ns)", doc.Request.MaterialType, doc.Request.ItemCount)), "", "L", false)
	pdf.MultiCell(0, 5, tr(fmt.Sprintf("Endereço: %s", doc.Request.Address)), "", "L", false)
	if doc.Request.Latitude != nil && doc.Request.Longitude != nil {
		pdf.MultiCell(0, 5, tr(fmt.Sprintf("Coordenadas: %.6f, %.6f", *doc.Request.Latitude, *doc.Request.Longitude)), "", "L", false)
	}
	pdf.Ln(2)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, tr("Recursos atribuídos"), "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	if doc.Company == nil && doc.Point == nil && doc.Collector == nil {
		pdf.MultiCell(0, 5, tr("Nenhum recurso atribuído."), "", "L", false)
	}
	if doc.Company != nil {
		pdf.MultiCell(0, 5, tr(fmt.Sprintf("Empresa: %s (CNPJ %s) — %s", doc.Company.Name, doc.Company.CNPJ, safeValue(doc.Company.Phone))), "", "L", false)
	}
	if doc.Point != nil {
		pdf.MultiCell(0, 5, tr(fmt.Sprintf("Ponto de coleta: %s — %s (%s)", doc.Point.Name, doc.Point.Address, doc.Point.OpeningHours)), "", "L", false)
	}
	if doc.Collector != nil {
		pdf.MultiCell(0, 5, tr(fmt.Sprintf("Catador: %s — %s", doc.Collector.Name, safeValue(doc.Collector.Phone))), "", "L", false)
	}

	pdf.Ln(6)
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, tr("Responsável pela coleta: ______________________"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr("Solicitante: ______________________"), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func statusLabel(status model.OrderStatus) string {
	return strings.ReplaceAll(string(status), "_", " ")
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "—"
	}
	return value
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("02/01/2006")
}
