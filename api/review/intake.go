package review

import (
	"encoding/csv"
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"InvoiceDesk/api"
	"InvoiceDesk/api/constants"
	"InvoiceDesk/internal/docstore"
	"InvoiceDesk/internal/ledger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xuri/excelize/v2"
)

func fileExt(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

func parseIntakeFile(file multipart.File, ext string) ([][]string, error) {
	if ext == ".csv" {
		r := csv.NewReader(file)
		r.FieldsPerRecord = -1
		return r.ReadAll()
	}
	if ext == ".xlsx" {
		f, err := excelize.OpenReader(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		sheet := f.GetSheetName(0)
		return f.GetRows(sheet)
	}
	return nil, errors.New(constants.ErrUnsupportedFileType)
}

// intake column order: order_id, invoice_id, vendor_id, invoice_date,
// reason, level, total_amount, cgst_amount, sgst_amount, igst_amount,
// urgency. Trailing columns may be absent.
func entryFromRecord(rec []string) (ledger.FlaggedEntry, error) {
	get := func(i int) string {
		if i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}
	f := ledger.FlaggedEntry{
		OrderID:     get(0),
		InvoiceID:   get(1),
		VendorID:    get(2),
		InvoiceDate: get(3),
		Reason:      get(4),
		Status:      ledger.StatusFlagged,
		Level:       1,
	}
	if f.OrderID == "" || f.InvoiceID == "" {
		return ledger.FlaggedEntry{}, errors.New("order_id and invoice_id required")
	}
	if s := get(5); s != "" {
		lvl, err := strconv.Atoi(s)
		if err != nil {
			return ledger.FlaggedEntry{}, errors.New("invalid level")
		}
		f.Level = lvl
	}
	amounts := []*float64{&f.TotalAmount, &f.CGSTAmount, &f.SGSTAmount, &f.IGSTAmount}
	for i, dst := range amounts {
		s := get(6 + i)
		if s == "" {
			continue
		}
		d, ok := ledger.ParseAmount(s)
		if !ok {
			return ledger.FlaggedEntry{}, errors.New("invalid amount: " + s)
		}
		*dst, _ = d.Float64()
	}
	if s := get(10); s != "" {
		u, err := strconv.Atoi(s)
		if err != nil {
			return ledger.FlaggedEntry{}, errors.New("invalid urgency")
		}
		f.Urgency = &u
	}
	return f, nil
}

// UploadFlagged ingests CSV or XLSX files of entries to queue for review.
// Each upload gets a batch id; an optional PDF per batch is pushed to the
// document store and its URL stamped on every entry in the file.
func UploadFlagged(pool *pgxpool.Pool, docs *docstore.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			api.RespondWithResult(w, false, "invalid multipart form")
			return
		}

		files := r.MultipartForm.File["files"]
		if len(files) == 0 {
			api.RespondWithResult(w, false, "no files uploaded")
			return
		}

		batchIDs := make([]string, 0, len(files))
		totalInserted, totalFailed := 0, 0
		var rowErrors []string

		for _, fh := range files {
			ext := fileExt(fh.Filename)
			if ext != ".csv" && ext != ".xlsx" {
				api.RespondWithResult(w, false, constants.ErrUnsupportedFileType)
				return
			}
			src, err := fh.Open()
			if err != nil {
				api.RespondWithResult(w, false, "failed to open file: "+fh.Filename)
				return
			}
			records, err := parseIntakeFile(src, ext)
			src.Close()
			if err != nil {
				api.RespondWithResult(w, false, "failed to parse "+fh.Filename+": "+err.Error())
				return
			}
			if len(records) < 2 {
				continue
			}

			batchID := uuid.New().String()
			batchIDs = append(batchIDs, batchID)

			pdfURL := uploadBatchPDF(r, docs, batchID)

			entries := make([]ledger.FlaggedEntry, 0, len(records)-1)
			for i, rec := range records[1:] {
				entry, err := entryFromRecord(rec)
				if err != nil {
					rowErrors = append(rowErrors, fh.Filename+" row "+strconv.Itoa(i+2)+": "+err.Error())
					continue
				}
				entry.InvoicePDF = pdfURL
				entries = append(entries, entry)
			}

			inserted, failed := InsertFlaggedBatch(ctx, pool, entries)
			totalInserted += inserted
			totalFailed += failed + (len(records) - 1 - len(entries))
			api.LogInfo("review intake: batch %s from %s: %d inserted, %d failed",
				batchID, fh.Filename, inserted, failed)
		}

		api.RespondWithPayload(w, totalFailed == 0, strings.Join(rowErrors, "; "), map[string]interface{}{
			"batch_ids": batchIDs,
			"inserted":  totalInserted,
			"failed":    totalFailed,
		})
	}
}

// uploadBatchPDF pushes the optional "document" part to object storage and
// returns its URL, or "" when absent or storage is unconfigured.
func uploadBatchPDF(r *http.Request, docs *docstore.Client, batchID string) string {
	if docs == nil {
		return ""
	}
	pdf, pdfHeader, err := r.FormFile("document")
	if err != nil {
		return ""
	}
	defer pdf.Close()
	if fileExt(pdfHeader.Filename) != ".pdf" {
		return ""
	}
	url, err := docs.UploadPDF(docstore.ObjectPath(batchID, pdfHeader.Filename), pdf)
	if err != nil {
		api.LogError("review intake: pdf upload for batch %s: %v", batchID, err)
		return ""
	}
	return url
}
