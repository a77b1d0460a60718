package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"CashRadar/internal/domain/models"
	"CashRadar/pkg/util"
)

// Required ledger columns. Header order is free and extra columns are
// ignored; a missing required column fails the whole upload.
var requiredColumns = []string{"Date", "Account_ID", "Inflow_INR", "Outflow_INR", "Balance_INR"}

// SchemaError reports an upload that violates the ledger file schema.
type SchemaError struct {
	Row    int // 1-based data row, 0 for header problems
	Column string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("ledger csv: column %s: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("ledger csv: row %d column %s: %s", e.Row, e.Column, e.Reason)
}

// ParseCSV reads a ledger file into raw cashflow records. Fails fast on the
// first schema violation; no partially parsed ledger is ever returned.
func ParseCSV(r io.Reader) ([]models.CashflowRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &SchemaError{Column: "Date", Reason: "empty file"}
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, &SchemaError{Column: col, Reason: "required column missing"}
		}
	}

	var out []models.CashflowRecord
	for row := 1; ; row++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}

		date, ok := util.ParseLedgerDate(strings.TrimSpace(fields[idx["Date"]]))
		if !ok {
			return nil, &SchemaError{Row: row, Column: "Date", Reason: "unparseable date"}
		}
		accountID := strings.TrimSpace(fields[idx["Account_ID"]])
		if accountID == "" {
			return nil, &SchemaError{Row: row, Column: "Account_ID", Reason: "empty"}
		}

		inflow, err := parseAmount(fields[idx["Inflow_INR"]], false)
		if err != nil {
			return nil, &SchemaError{Row: row, Column: "Inflow_INR", Reason: err.Error()}
		}
		outflow, err := parseAmount(fields[idx["Outflow_INR"]], false)
		if err != nil {
			return nil, &SchemaError{Row: row, Column: "Outflow_INR", Reason: err.Error()}
		}
		balance, err := parseAmount(fields[idx["Balance_INR"]], true)
		if err != nil {
			return nil, &SchemaError{Row: row, Column: "Balance_INR", Reason: err.Error()}
		}

		out = append(out, models.CashflowRecord{
			Date:      date,
			AccountID: accountID,
			Inflow:    inflow,
			Outflow:   outflow,
			Balance:   balance,
		})
	}
	return out, nil
}

func parseAmount(s string, allowNegative bool) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number")
	}
	if !allowNegative && v < 0 {
		return 0, fmt.Errorf("must be non-negative")
	}
	return v, nil
}
