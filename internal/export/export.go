// Package export renders a page of booking views as CSV or XLSX.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
	"github.com/m04kA/SMC-SlotReservation/pkg/civiltime"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	// SheetName лист XLSX
	SheetName = "Agendamentos"

	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	ErrUnknownFormat = errors.New("export: unknown format")
	ErrWrite         = errors.New("export: write failed")
)

// Header заголовок таблицы
var Header = []string{"Empresa", "Responsável", "Telefone", "Serviço", "Início", "Fim", "Criado em"}

// Row строка экспорта в часовом поясе zone
func Row(v domain.BookingView, zone civiltime.Zone) []string {
	return []string{
		v.CompanyName,
		v.ContactName,
		v.Phone,
		v.ServiceName,
		zone.DateTime(v.StartAt),
		zone.Clock(v.EndAt),
		zone.DateTime(v.CreatedAt),
	}
}

// ContentType возвращает MIME тип формата
func ContentType(format string) (string, error) {
	switch format {
	case FormatCSV:
		return ContentTypeCSV, nil
	case FormatXLSX:
		return ContentTypeXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Write пишет строки в выбранном формате
func Write(w io.Writer, format string, views []domain.BookingView, zone civiltime.Zone) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, views, zone)
	case FormatXLSX:
		return WriteXLSX(w, views, zone)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteCSV пишет CSV с разделителем ';'. Кавычки внутри значений удваиваются.
func WriteCSV(w io.Writer, views []domain.BookingView, zone civiltime.Zone) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("%w: WriteCSV - header: %v", ErrWrite, err)
	}
	for _, v := range views {
		if err := cw.Write(Row(v, zone)); err != nil {
			return fmt.Errorf("%w: WriteCSV - row %s: %v", ErrWrite, v.BookingID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: WriteCSV - flush: %v", ErrWrite, err)
	}
	return nil
}

// WriteXLSX пишет книгу с одним листом, заголовок жирным
func WriteXLSX(w io.Writer, views []domain.BookingView, zone civiltime.Zone) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("%w: WriteXLSX - sheet: %v", ErrWrite, err)
	}

	if err := writeXLSXRow(f, 1, Header); err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		endCell, _ := excelize.CoordinatesToCellName(len(Header), 1)
		_ = f.SetCellStyle(SheetName, "A1", endCell, style)
	}

	for i, v := range views {
		if err := writeXLSXRow(f, i+2, Row(v, zone)); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("%w: WriteXLSX - save: %v", ErrWrite, err)
	}
	return nil
}

func writeXLSXRow(f *excelize.File, row int, values []string) error {
	for col, val := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("%w: WriteXLSX - cell: %v", ErrWrite, err)
		}
		if err := f.SetCellStr(SheetName, cell, val); err != nil {
			return fmt.Errorf("%w: WriteXLSX - cell %s: %v", ErrWrite, cell, err)
		}
	}
	return nil
}
