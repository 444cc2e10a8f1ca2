package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/signintech/gopdf"
	"github.com/xuri/excelize/v2"

	"github.com/medresus/medresus/internal/domain/caselog"
	"github.com/medresus/medresus/internal/domain/quality"
	"github.com/medresus/medresus/internal/platform/exporter"
	"github.com/medresus/medresus/pkg/csvtab"
)

// Fixed comment blocks prefixed to exported files. The export format is
// consumed by downstream tooling; keep these byte-stable.
const (
	csvHeader  = "# MedResus Case Export\n# © 2025 MedResus. All rights reserved.\n# Generated: %s\n\n"
	textHeader = "MedResus Case Debrief\n© 2025 MedResus. All rights reserved.\nGenerated: %s\n\n"
)

// pdfFontPaths are tried in order; the first readable TTF wins.
var pdfFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
}

// Service renders case exports and hands them to the file exporter.
type Service struct {
	files exporter.FileExporter
	log   zerolog.Logger
	now   func() time.Time
}

func NewService(files exporter.FileExporter, logger zerolog.Logger) *Service {
	return &Service{files: files, log: logger, now: time.Now}
}

// CSV renders the chronological event log of a case as a CSV document with
// the fixed comment header.
func (s *Service) CSV(cs caselog.CaseState) []byte {
	rows := CaseRows(cs.Chronological())
	head := fmt.Sprintf(csvHeader, s.now().UTC().Format(time.RFC3339))
	return []byte(head + csvtab.ToCSV(rows))
}

// SummaryCSV renders the derived metrics of a case as key/value CSV.
func (s *Service) SummaryCSV(cs caselog.CaseState) []byte {
	m := quality.Compute(cs.Events)
	head := fmt.Sprintf(csvHeader, s.now().UTC().Format(time.RFC3339))
	return []byte(head + csvtab.ToCSV(quality.SummaryRows(m)))
}

// DebriefText renders the debrief as a plain-text report with the fixed
// header block.
func (s *Service) DebriefText(cs caselog.CaseState) []byte {
	d := quality.BuildDebrief(quality.Compute(cs.Events))
	head := fmt.Sprintf(textHeader, s.now().UTC().Format(time.RFC3339))
	return []byte(head + d.Text())
}

// SaveCSV writes the case CSV through the exporter and returns the locator.
func (s *Service) SaveCSV(ctx context.Context, cs caselog.CaseState) (string, error) {
	name := fmt.Sprintf("case-%s.csv", cs.CaseID)
	loc, err := s.files.Save(ctx, name, s.CSV(cs))
	if err != nil {
		return "", fmt.Errorf("save case csv: %w", err)
	}
	s.log.Info().Str("case_id", cs.CaseID).Str("locator", loc).Msg("case csv exported")
	return loc, nil
}

// SaveDebrief writes the debrief text through the exporter.
func (s *Service) SaveDebrief(ctx context.Context, cs caselog.CaseState) (string, error) {
	name := fmt.Sprintf("debrief-%s.txt", cs.CaseID)
	loc, err := s.files.Save(ctx, name, s.DebriefText(cs))
	if err != nil {
		return "", fmt.Errorf("save debrief: %w", err)
	}
	s.log.Info().Str("case_id", cs.CaseID).Str("locator", loc).Msg("debrief exported")
	return loc, nil
}

// XLSX renders the event log as a styled workbook.
func (s *Service) XLSX(cs caselog.CaseState) ([]byte, error) {
	rows := CaseRows(cs.Chronological())

	f := excelize.NewFile()
	sheet := "Case Log"
	index, err := f.NewSheet(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	if len(rows) > 0 {
		headers := rows[0].Keys()
		for col, h := range headers {
			cell, err := excelize.CoordinatesToCellName(col+1, 1)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, h); err != nil {
				f.Close()
				return nil, fmt.Errorf("set header cell %s: %w", cell, err)
			}
			if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
				f.Close()
				return nil, fmt.Errorf("set header style: %w", err)
			}
		}
		for r, row := range rows {
			for col, h := range headers {
				cell, err := excelize.CoordinatesToCellName(col+1, r+2)
				if err != nil {
					f.Close()
					return nil, fmt.Errorf("convert coordinates: %w", err)
				}
				v := row.Get(h)
				if v == nil {
					v = ""
				}
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					f.Close()
					return nil, fmt.Errorf("set cell %s: %w", cell, err)
				}
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// PDF renders the debrief as a one-page PDF report.
func (s *Service) PDF(cs caselog.CaseState) ([]byte, error) {
	m := quality.Compute(cs.Events)
	d := quality.BuildDebrief(m)

	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	var fontErr error
	loaded := false
	for _, path := range pdfFontPaths {
		if err := pdf.AddTTFFont("body", path); err == nil {
			loaded = true
			break
		} else {
			fontErr = err
		}
	}
	if !loaded {
		return nil, fmt.Errorf("load pdf font: %w", fontErr)
	}

	if err := pdf.SetFont("body", "", 18); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "MedResus Case Debrief")
	pdf.Br(28)

	if err := pdf.SetFont("body", "", 11); err != nil {
		return nil, err
	}
	pdf.Cell(nil, fmt.Sprintf("Case: %s", cs.CaseID))
	pdf.Br(14)
	pdf.Cell(nil, fmt.Sprintf("Generated: %s", s.now().UTC().Format("2006-01-02 15:04 MST")))
	pdf.Br(22)

	writeSection := func(title string, entries []string) error {
		if err := pdf.SetFont("body", "", 13); err != nil {
			return err
		}
		pdf.Cell(nil, title)
		pdf.Br(14)
		if err := pdf.SetFont("body", "", 10); err != nil {
			return err
		}
		if len(entries) == 0 {
			pdf.Cell(nil, "- None recorded.")
			pdf.Br(12)
		}
		for _, e := range entries {
			lines, _ := pdf.SplitText("- "+e, 500)
			for _, l := range lines {
				pdf.Cell(nil, l)
				pdf.Br(12)
			}
		}
		pdf.Br(10)
		return nil
	}

	if err := pdf.SetFont("body", "", 12); err != nil {
		return nil, err
	}
	pdf.Cell(nil, d.Headline)
	pdf.Br(20)

	if err := writeSection("Strengths", d.Strengths); err != nil {
		return nil, err
	}
	if err := writeSection("Suggestions", d.Suggestions); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
