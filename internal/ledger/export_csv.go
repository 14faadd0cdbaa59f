package ledger

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

const (
	csvFlushEvery = 200
	csvBufferSize = 32 * 1024
)

type csvStreamer struct {
	buf          *bufio.Writer
	csv          *csv.Writer
	flushEvery   int
	pendingLines int
}

func newCSVStreamer(w io.Writer) *csvStreamer {
	buf := bufio.NewWriterSize(w, csvBufferSize)
	writer := csv.NewWriter(buf)
	writer.UseCRLF = true
	return &csvStreamer{buf: buf, csv: writer, flushEvery: csvFlushEvery}
}

func (s *csvStreamer) writeRow(row []string) error {
	if s == nil || s.csv == nil {
		return fmt.Errorf("csv streamer not initialised")
	}
	if err := s.csv.Write(row); err != nil {
		return err
	}
	s.pendingLines++
	if s.flushEvery > 0 && s.pendingLines >= s.flushEvery {
		return s.Flush()
	}
	return nil
}

func (s *csvStreamer) Flush() error {
	if s == nil || s.csv == nil || s.buf == nil {
		return fmt.Errorf("csv streamer not initialised")
	}
	s.csv.Flush()
	if err := s.csv.Error(); err != nil {
		return err
	}
	if err := s.buf.Flush(); err != nil {
		return err
	}
	s.pendingLines = 0
	return nil
}

func (s *csvStreamer) Close() error {
	return s.Flush()
}

// WriteCSV streams the ledger in insertion order as CSV.
func WriteCSV(w io.Writer, movements []StockMovement) error {
	streamer := newCSVStreamer(w)
	header := []string{
		"id", "product_id", "warehouse_id", "bin_id", "transaction_type",
		"qty_in", "qty_out", "balance_after", "unit_cost",
		"reference_type", "reference_id", "batch_no", "expiry_date", "created_at",
	}
	if err := streamer.writeRow(header); err != nil {
		return err
	}
	for _, m := range movements {
		expiry := ""
		if m.ExpiryDate != nil {
			expiry = m.ExpiryDate.Format("2006-01-02")
		}
		row := []string{
			m.ID.String(),
			strconv.FormatInt(m.ProductID, 10),
			strconv.FormatInt(m.WarehouseID, 10),
			strconv.FormatInt(m.BinID, 10),
			string(m.Type),
			strconv.FormatInt(m.QtyIn, 10),
			strconv.FormatInt(m.QtyOut, 10),
			strconv.FormatInt(m.BalanceAfter, 10),
			strconv.FormatFloat(m.UnitCost, 'f', 2, 64),
			m.ReferenceType,
			m.ReferenceID,
			m.BatchNumber,
			expiry,
			m.CreatedAt.Format(time.RFC3339),
		}
		if err := streamer.writeRow(row); err != nil {
			return err
		}
	}
	return streamer.Close()
}
