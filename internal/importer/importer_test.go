package importer

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/roomfit/internal/model"
	"github.com/xuri/excelize/v2"
)

func hasWarning(result ImportResult, substr string) bool {
	for _, w := range result.Warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("x,y\n0,0\n4,0\n4,3\n")
	if got := DetectCSVDelimiter(data); got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("x;y\n0;0\n4,5;0\n4,5;3\n")
	if got := DetectCSVDelimiter(data); got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("x\ty\n0\t0\n4\t0\n4\t3\n")
	if got := DetectCSVDelimiter(data); got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("x|y\n0|0\n4|0\n4|3\n")
	if got := DetectCSVDelimiter(data); got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"X", "Y"})

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.X != 0 || mapping.Y != 1 {
		t.Errorf("expected X at 0 and Y at 1, got %+v", mapping)
	}
}

func TestDetectColumns_AlternativeNames(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Label", "Northing", "Easting"})

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.X != 2 {
		t.Errorf("expected X at 2, got %d", mapping.X)
	}
	if mapping.Y != 1 {
		t.Errorf("expected Y at 1, got %d", mapping.Y)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"1.5", "2"})

	if isHeader {
		t.Error("expected no header for numeric row")
	}
	if mapping.X != 0 || mapping.Y != 1 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── CSV Reader Import Tests ───────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	input := "x,y\n0,0\n4,0\n4,3\n0,3\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	outline := result.Boundary.Outline
	if len(outline) != 4 {
		t.Fatalf("expected 4 vertices, got %d", len(outline))
	}
	if outline[2] != model.Pt(4, 3) {
		t.Errorf("expected third vertex (4,3), got %v", outline[2])
	}
	if result.Boundary.ID == "" {
		t.Error("expected a generated boundary ID")
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	input := "0,0\n4,0\n4,3\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Boundary.Outline) != 3 {
		t.Errorf("expected 3 vertices, got %d", len(result.Boundary.Outline))
	}
	if hasWarning(result, "header") {
		t.Error("did not expect a header warning")
	}
}

func TestImportCSVFromReader_UnknownHeaderSkipped(t *testing.T) {
	input := "col a,col b\n0,0\n4,0\n4,3\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Boundary.Outline) != 3 {
		t.Errorf("expected 3 vertices, got %d", len(result.Boundary.Outline))
	}
	if !hasWarning(result, "header") {
		t.Error("expected a header warning")
	}
}

func TestImportCSVFromReader_ReorderedColumns(t *testing.T) {
	input := "Label;Y;X\na;0;0\nb;0;4\nc;3;4\n"
	result := ImportCSVFromReader(strings.NewReader(input), ';')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Boundary.Outline[1] != model.Pt(4, 0) {
		t.Errorf("expected (4,0), got %v", result.Boundary.Outline[1])
	}
}

func TestImportCSVFromReader_DecimalComma(t *testing.T) {
	input := "x;y\n0;0\n4,5;0\n4,5;3,25\n"
	result := ImportCSVFromReader(strings.NewReader(input), ';')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Boundary.Outline[2] != model.Pt(4.5, 3.25) {
		t.Errorf("expected (4.5,3.25), got %v", result.Boundary.Outline[2])
	}
}

func TestImportCSVFromReader_RepeatedClosingVertex(t *testing.T) {
	input := "x,y\n0,0\n4,0\n4,3\n0,3\n0,0\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Boundary.Outline) != 4 {
		t.Errorf("expected closing vertex to be dropped, got %d vertices", len(result.Boundary.Outline))
	}
	if !hasWarning(result, "closing vertex") {
		t.Error("expected a warning about the closing vertex")
	}
}

func TestImportCSVFromReader_InvalidCoordinate(t *testing.T) {
	input := "x,y\n0,0\nabc,0\n4,3\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "Line 3") {
		t.Errorf("expected error to name line 3, got %q", result.Errors[0])
	}
	if result.OK() {
		t.Error("result with errors must not be OK")
	}
}

func TestImportCSVFromReader_NonFinite(t *testing.T) {
	input := "x,y\n0,0\nNaN,0\n4,3\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) == 0 {
		t.Error("expected error for NaN coordinate")
	}
}

func TestImportCSVFromReader_MissingValue(t *testing.T) {
	input := "x,y\n0,0\n4,\n4,3\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Missing y") {
		t.Errorf("expected a missing y error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_MissingRequiredColumnInHeader(t *testing.T) {
	input := "x,label\n0,a\n4,b\n4,c\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) == 0 {
		t.Fatal("expected error for missing Y column")
	}
	if !strings.Contains(result.Errors[0], "Y") {
		t.Errorf("expected error to mention Y, got %q", result.Errors[0])
	}
}

func TestImportCSVFromReader_TooFewVertices(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("0,0\n4,0\n"), ',')

	if len(result.Errors) == 0 {
		t.Error("expected error for a two-vertex boundary")
	}
}

func TestImportCSVFromReader_Degenerate(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("0,0\n1,0\n2,0\n"), ',')

	if len(result.Errors) == 0 || !strings.Contains(result.Errors[0], "degenerate") {
		t.Errorf("expected degenerate boundary error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_EmptyRows(t *testing.T) {
	input := "x,y\n0,0\n\n4,0\n,\n4,3\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Boundary.Outline) != 3 {
		t.Errorf("expected 3 vertices, got %d", len(result.Boundary.Outline))
	}
}

func TestImportCSVFromReader_EmptyFile(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')

	if len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
}

// ─── CSV File Import Tests ──────────────────────────────────

func TestImportCSV_File(t *testing.T) {
	path := writeFile(t, "room.csv", "x,y\n0,0\n6,0\n6,6\n3,6\n3,3\n0,3\n")

	result := ImportCSV(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if got := result.Boundary.Outline.Area(); math.Abs(got-27) > 1e-9 {
		t.Errorf("expected area 27, got %f", got)
	}
}

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := writeFile(t, "room.csv", "x;y\n0;0\n4;0\n4;3\n")

	result := ImportCSV(path)

	if len(result.Boundary.Outline) != 3 {
		t.Errorf("expected 3 vertices, got %d (errors: %v)", len(result.Boundary.Outline), result.Errors)
	}
	if !hasWarning(result, "semicolon") {
		t.Error("expected warning about semicolon delimiter detection")
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV("/nonexistent/path/file.csv")

	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := writeFile(t, "empty.csv", "")

	result := ImportCSV(path)

	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "room.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"X (m)", "Y (m)"},
		{0, 0},
		{8, 0},
		{8, 4},
		{0, 4},
	})

	result := ImportExcel(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Boundary.Outline) != 4 {
		t.Fatalf("expected 4 vertices, got %d", len(result.Boundary.Outline))
	}
	if result.Boundary.Outline[2] != model.Pt(8, 4) {
		t.Errorf("expected (8,4), got %v", result.Boundary.Outline[2])
	}
	if result.Boundary.Name != "Sheet1" {
		t.Errorf("expected boundary named after the sheet, got %q", result.Boundary.Name)
	}
}

func TestImportExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{0, 0},
		{2.5, 0},
		{2.5, 1.5},
	})

	result := ImportExcel(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Boundary.Outline[2] != model.Pt(2.5, 1.5) {
		t.Errorf("expected (2.5,1.5), got %v", result.Boundary.Outline[2])
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel("/nonexistent/path/file.xlsx")

	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

// ─── JSON / YAML Import Tests ──────────────────────────────

func TestImportJSON(t *testing.T) {
	path := writeFile(t, "room.json", `{"name": "Studio", "points": [{"x": 0, "y": 0}, {"x": 5, "y": 0}, {"x": 5, "y": 4}, {"x": 0, "y": 4}]}`)

	result := ImportJSON(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Boundary.Name != "Studio" {
		t.Errorf("expected name Studio, got %q", result.Boundary.Name)
	}
	if len(result.Boundary.Outline) != 4 {
		t.Errorf("expected 4 vertices, got %d", len(result.Boundary.Outline))
	}
}

func TestImportJSON_Malformed(t *testing.T) {
	path := writeFile(t, "room.json", `{"points": [`)

	result := ImportJSON(path)

	if len(result.Errors) == 0 || !strings.Contains(result.Errors[0], "JSON") {
		t.Errorf("expected a JSON parse error, got %v", result.Errors)
	}
}

func TestImportYAML(t *testing.T) {
	doc := `name: Hallway
points:
  - {x: 0, y: 0}
  - {x: 10, y: 0}
  - {x: 10, y: 1.2}
  - {x: 0, y: 1.2}
`
	path := writeFile(t, "room.yaml", doc)

	result := ImportYAML(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Boundary.Name != "Hallway" {
		t.Errorf("expected name Hallway, got %q", result.Boundary.Name)
	}
	if result.Boundary.Outline[2] != model.Pt(10, 1.2) {
		t.Errorf("expected (10,1.2), got %v", result.Boundary.Outline[2])
	}
}

func TestParseBoundaryYAML_NoPoints(t *testing.T) {
	result := ParseBoundaryYAML([]byte("name: Empty\n"))

	if len(result.Errors) == 0 {
		t.Error("expected error for a document without points")
	}
}

// ─── ImportFile Tests ──────────────────────────────────────

func TestImportFile_DispatchesByExtension(t *testing.T) {
	csvPath := writeFile(t, "kitchen.CSV", "0,0\n3,0\n3,3\n")
	result := ImportFile(csvPath)
	if !result.OK() {
		t.Fatalf("expected CSV import to succeed, got %v", result.Errors)
	}
	if result.Boundary.Name != "kitchen" {
		t.Errorf("expected name from file name, got %q", result.Boundary.Name)
	}

	ymlPath := writeFile(t, "den.yml", "points:\n  - {x: 0, y: 0}\n  - {x: 2, y: 0}\n  - {x: 2, y: 2}\n")
	result = ImportFile(ymlPath)
	if !result.OK() {
		t.Fatalf("expected YAML import to succeed, got %v", result.Errors)
	}
	if result.Boundary.Name != "den" {
		t.Errorf("expected name from file name, got %q", result.Boundary.Name)
	}
}

func TestImportFile_KeepsDocumentName(t *testing.T) {
	path := writeFile(t, "a.json", `{"name": "Lounge", "points": [{"x": 0, "y": 0}, {"x": 2, "y": 0}, {"x": 2, "y": 2}]}`)

	result := ImportFile(path)

	if result.Boundary.Name != "Lounge" {
		t.Errorf("expected document name to win, got %q", result.Boundary.Name)
	}
}

func TestImportFile_UnsupportedExtension(t *testing.T) {
	result := ImportFile("room.svg")

	if len(result.Errors) == 0 || !strings.Contains(result.Errors[0], "Unsupported") {
		t.Errorf("expected unsupported type error, got %v", result.Errors)
	}
}
