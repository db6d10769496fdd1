package models

// ChartInfo describes a chart embedded in a workbook sheet.
type ChartInfo struct {
	// Kind is the chart type mapped from the OOXML plot element.
	Kind Kind `json:"kind"`
	// Title is the chart title text, if any.
	Title string `json:"title,omitempty"`
}

// Workbook is the result of reading rows back from an xlsx file.
type Workbook struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// SheetName is the sheet the rows were read from.
	SheetName string `json:"sheet_name"`
	// Kind is the resolved chart kind of the rows.
	Kind Kind `json:"kind"`
	// Title is the title of the embedded chart, if any.
	Title string `json:"title,omitempty"`
	// Area is the cell range the rows were read from.
	Area DataArea `json:"area"`
	// HasHeader reports whether the first row of Area was a column header.
	HasHeader bool `json:"has_header"`
	// Rows are the raw rows in UI column order.
	Rows []Row `json:"rows"`
}
