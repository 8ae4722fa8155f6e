// Package report renders a child's health records and medications for
// export: a human-readable text report and two CSV files for spreadsheets.
package report
