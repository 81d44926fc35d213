// Package excel renders assembled attendance rows into an .xlsx workbook.
package excel
