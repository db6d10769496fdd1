package parser

import (
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/chartly-go/pkg/chartly/models"
)

func TestDetectDataArea(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "B3", "a")
	f.SetCellValue(sheetName, "C3", 1)
	f.SetCellValue(sheetName, "B4", "b")
	f.SetCellValue(sheetName, "C4", 2)

	area, ok, err := DetectDataArea(f, sheetName, DefaultTableParams())
	if err != nil {
		t.Fatalf("DetectDataArea failed: %v", err)
	}
	if !ok {
		t.Fatal("expected a data area")
	}
	expected := models.DataArea{R1: 3, C1: 2, R2: 4, C2: 3}
	if area != expected {
		t.Errorf("DetectDataArea = %+v, expected %+v", area, expected)
	}

	ref, err := FormatArea(area)
	if err != nil || ref != "B3:C4" {
		t.Errorf("FormatArea = (%q, %v), expected B3:C4", ref, err)
	}
}

func TestDetectDataAreaEmptySheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	_, ok, err := DetectDataArea(f, "Sheet1", DefaultTableParams())
	if err != nil {
		t.Fatalf("DetectDataArea failed: %v", err)
	}
	if ok {
		t.Error("expected no data area on an empty sheet")
	}
}
