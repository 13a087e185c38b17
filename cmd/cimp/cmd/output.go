package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	apiclient "github.com/donaldgifford/ebay-catalog-importer/internal/api/client"
	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

const timeFormat = "2006-01-02 15:04:05"

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printLookupTable(w io.Writer, r *apiclient.LookupResponse) error {
	tw := newTabWriter(w)
	tw.writef("ITEM ID\tTITLE\tPRICE\tCONDITION\n")
	for i := range r.Items {
		it := &r.Items[i]
		price := "-"
		if it.Price != nil {
			price = it.Price.Value + " " + it.Price.Currency
		}
		tw.writef("%s\t%s\t%s\t%s\n", it.ItemID, truncate(it.Title, 50), price, it.Condition)
	}
	tw.writef("\nShowing %d-%d of %d. Quota: %d/%d, resets %s\n",
		r.Offset+min(1, len(r.Items)), r.Offset+len(r.Items), r.Total,
		r.Quota.Used, r.Quota.Limit, r.Quota.ResetAt.Format(timeFormat))
	return tw.finish()
}

func printImportsTable(w io.Writer, jobs []domain.ImportJob) error {
	tw := newTabWriter(w)
	tw.writef("JOB ID\tSTATUS\tITEMS\tIMPORTED\tFAILED\tPAGES\tCREATED\n")
	for i := range jobs {
		j := &jobs[i]
		tw.writef("%s\t%s\t%d\t%d\t%d\t%d/%d\t%s\n",
			j.ID,
			j.Status,
			j.TotalItems,
			j.ItemsImported,
			j.ItemsFailed,
			j.NextPage,
			j.PagesTotal,
			j.CreatedAt.Format(timeFormat),
		)
	}
	return tw.finish()
}

func printImportDetail(w io.Writer, j *domain.ImportJob) error {
	tw := newTabWriter(w)
	tw.writef("Job ID:\t%s\n", j.ID)
	tw.writef("Seller:\t%s\n", j.SellerUsername)
	tw.writef("Status:\t%s\n", j.Status)
	tw.writef("Items:\t%d imported, %d failed, %d total\n", j.ItemsImported, j.ItemsFailed, j.TotalItems)
	tw.writef("Pages:\t%d/%d\n", j.NextPage, j.PagesTotal)
	tw.writef("Attempts:\t%d\n", j.Attempts)
	tw.writef("Created:\t%s\n", j.CreatedAt.Format(timeFormat))
	if j.CompletedAt != nil {
		tw.writef("Completed:\t%s\n", j.CompletedAt.Format(timeFormat))
	}
	if j.ErrorText != "" {
		tw.writef("Error:\t%s\n", j.ErrorText)
	}
	for _, f := range j.PageFailures {
		tw.writef("Page %d:\t%s (%s)\n", f.Page, f.Reason, f.Kind)
	}
	return tw.finish()
}

func printJobRunsTable(w io.Writer, runs []domain.JobRun) error {
	tw := newTabWriter(w)
	tw.writef("TASK\tSTATUS\tSTARTED\tCOMPLETED\tROWS\tERROR\n")
	for i := range runs {
		r := &runs[i]
		completed := "-"
		if r.CompletedAt != nil {
			completed = r.CompletedAt.Format(timeFormat)
		}
		rows := "-"
		if r.RowsAffected != nil {
			rows = fmt.Sprintf("%d", *r.RowsAffected)
		}
		tw.writef("%s\t%s\t%s\t%s\t%s\t%s\n",
			r.JobName,
			r.Status,
			r.StartedAt.Format(timeFormat),
			completed,
			rows,
			truncate(r.ErrorText, 40),
		)
	}
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func untilNow(t time.Time) string {
	d := time.Until(t).Round(time.Second)
	if d <= 0 {
		return "now"
	}
	return "in " + d.String()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
