package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/sjperalta/propostas-api/internal/valuation"
	"github.com/xuri/excelize/v2"
)

// utf8BOM lets spreadsheet tools detect the CSV encoding
const utf8BOM = "\xEF\xBB\xBF"

// ExportColumns are the display columns of the consultation table
var ExportColumns = []string{
	"ID", "Digitador", "ADE", "CPF", "Data", "Parceiro", "Tipo de Produto", "Banco",
	"Valor", "Valor Considerado", "Ignorar Valor?",
}

type ExportService struct {
	now func() time.Time
}

func NewExportService() *ExportService {
	return &ExportService{now: time.Now}
}

func yesNo(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}

func exportRecord(row *valuation.Row) []string {
	p := &row.Proposal
	value := ""
	if p.Value.Valid {
		value = p.Value.Decimal.StringFixed(2)
	}
	return []string{
		strconv.FormatUint(uint64(p.ID), 10),
		p.Operator,
		p.ReferenceCode,
		p.ClientID,
		p.Date,
		p.Partner,
		p.ProductType,
		p.Bank,
		value,
		row.CountedValue.StringFixed(2),
		yesNo(row.IgnoreValue),
	}
}

// ExportCSV writes the rows as UTF-8 CSV with a byte order mark
func (s *ExportService) ExportCSV(rows []valuation.Row) ([]byte, string, error) {
	buf := new(bytes.Buffer)
	buf.WriteString(utf8BOM)
	writer := csv.NewWriter(buf)

	if err := writer.Write(ExportColumns); err != nil {
		return nil, "", err
	}
	for i := range rows {
		if err := writer.Write(exportRecord(&rows[i])); err != nil {
			return nil, "", err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("propostas_%s.csv", s.now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// ExportXLSX writes the rows to the "Propostas" sheet of a workbook
func (s *ExportService) ExportXLSX(rows []valuation.Row) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Propostas"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, "", err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	moneyStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 4})

	for col, name := range ExportColumns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, name)
	}
	last, _ := excelize.CoordinatesToCellName(len(ExportColumns), 1)
	_ = f.SetCellStyle(sheet, "A1", last, headerStyle)

	for i := range rows {
		r := i + 2
		record := exportRecord(&rows[i])
		for col, v := range record {
			cell, _ := excelize.CoordinatesToCellName(col+1, r)
			_ = f.SetCellValue(sheet, cell, v)
		}
		// numeric cells for the id and the two amounts
		idCell, _ := excelize.CoordinatesToCellName(1, r)
		_ = f.SetCellValue(sheet, idCell, rows[i].Proposal.ID)
		valueCell, _ := excelize.CoordinatesToCellName(9, r)
		if rows[i].Proposal.Value.Valid {
			_ = f.SetCellValue(sheet, valueCell, rows[i].Proposal.Value.Decimal.Round(2).InexactFloat64())
		}
		countedCell, _ := excelize.CoordinatesToCellName(10, r)
		_ = f.SetCellValue(sheet, countedCell, rows[i].CountedValue.Round(2).InexactFloat64())
		_ = f.SetCellStyle(sheet, valueCell, countedCell, moneyStyle)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("propostas_%s.xlsx", s.now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// ExportPerformancePDF renders the per-operator table
func (s *ExportService) ExportPerformancePDF(perf *Performance) ([]byte, string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, tr("Performance por Digitador"))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 9)
	pdf.Cell(40, 6, tr(fmt.Sprintf("Gerado em %s - regra de CPF: %s", s.now().Format("02/01/2006 15:04"), perf.Scope)))
	pdf.Ln(10)

	headers := []string{"Digitador", "Propostas", "Clientes", "Valor Bruto", "Valor Considerado", "Ticket Médio"}
	widths := []float64{80, 28, 28, 45, 45, 45}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(224, 224, 224)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, op := range perf.Operators {
		pdf.CellFormat(widths[0], 7, tr(op.Operator), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, strconv.Itoa(op.Proposals), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 7, strconv.Itoa(op.Clients), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, FormatBRL(op.GrossTotal), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, FormatBRL(op.CountedTotal), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 7, FormatBRL(op.AverageTicket), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.Ln(4)
	pdf.Cell(80, 7, tr(fmt.Sprintf("Total considerado: %s", FormatBRL(perf.CountedTotal))))
	pdf.Ln(6)
	pdf.Cell(80, 7, fmt.Sprintf("Total de propostas: %d", perf.Proposals))

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("performance_%s.pdf", s.now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
