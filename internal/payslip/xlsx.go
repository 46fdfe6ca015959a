package payslip

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/iliyamo/eldercare-records/internal/model"
)

const sheetName = "Payslip"

func renderXLSX(c model.Caregiver, issuedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	headStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E6E6E6"}},
	})
	if err != nil {
		return nil, err
	}

	set := func(cell string, v any) {
		if err == nil {
			err = f.SetCellValue(sheetName, cell, v)
		}
	}

	set("A1", title(c, issuedAt))
	if err == nil {
		err = f.SetCellStyle(sheetName, "A1", "A1", bold)
	}

	table := append([]row{header}, rows(c.Pay)...)
	for i, r := range table {
		n := i + 3
		set(fmt.Sprintf("A%d", n), r.desc)
		set(fmt.Sprintf("B%d", n), r.price)
		set(fmt.Sprintf("C%d", n), r.amount)
		set(fmt.Sprintf("D%d", n), r.total)
	}
	last := len(table) + 2
	if err == nil {
		err = f.SetCellStyle(sheetName, "A3", "D3", headStyle)
	}
	if err == nil {
		err = f.SetCellStyle(sheetName, fmt.Sprintf("A%d", last), fmt.Sprintf("D%d", last), bold)
	}

	set(fmt.Sprintf("A%d", last+2), "Report Date: "+reportDate(issuedAt))
	set(fmt.Sprintf("A%d", last+3), transferLine(c))
	if err == nil {
		err = f.SetColWidth(sheetName, "A", "A", 30)
	}
	if err == nil {
		err = f.SetColWidth(sheetName, "B", "D", 15)
	}
	if err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return bytes.Clone(buf.Bytes()), nil
}
