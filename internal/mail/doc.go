// Package mail sends attendance reports and test messages over SMTP.
//
// The report email carries the workbook as an attachment and lists the
// deduplicated participant names in the body, so recipients get the summary
// without opening the spreadsheet.
package mail
