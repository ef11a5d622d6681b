// Package report renders stats tables as Markdown or tab-separated text,
// saves one line chart per Markdown report, and drives the full batch of
// metric x sweep reports.
package report
