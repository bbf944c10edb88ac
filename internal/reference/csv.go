package reference

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hanvion/healthcost/internal/domain"
	"github.com/shopspring/decimal"
)

// csvTable is a header-indexed CSV document
type csvTable struct {
	columns map[string]int
	rows    [][]string
}

func readCSV(r io.Reader, required ...string) (*csvTable, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV has no header row")
	}

	t := &csvTable{columns: make(map[string]int), rows: records[1:]}
	for i, name := range records[0] {
		t.columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range required {
		if _, ok := t.columns[col]; !ok {
			return nil, fmt.Errorf("CSV is missing required column %q", col)
		}
	}
	return t, nil
}

func (t *csvTable) has(col string) bool {
	_, ok := t.columns[col]
	return ok
}

func (t *csvTable) str(row []string, col string) string {
	i, ok := t.columns[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (t *csvTable) dec(row []string, col string, line int) (decimal.Decimal, error) {
	raw := t.str(row, col)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("line %d: invalid %s %q: %w", line, col, raw, err)
	}
	return d, nil
}

func (t *csvTable) integer(row []string, col string, line int) (int, error) {
	raw := t.str(row, col)
	// sample sizes sometimes arrive as "42.0"
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: invalid %s %q: %w", line, col, raw, err)
	}
	return int(f), nil
}

func openAndRead[T any](path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	defer f.Close()

	rows, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// ReadStatesCSV parses state,uninsured_rate[,insured_rate][,code] rows.
// A missing insured_rate is derived as 100 - uninsured_rate.
func ReadStatesCSV(r io.Reader) ([]domain.StateRate, error) {
	t, err := readCSV(r, "state", "uninsured_rate")
	if err != nil {
		return nil, err
	}

	hundred := decimal.NewFromInt(100)
	states := make([]domain.StateRate, 0, len(t.rows))
	for i, row := range t.rows {
		line := i + 2
		uninsured, err := t.dec(row, "uninsured_rate", line)
		if err != nil {
			return nil, err
		}
		insured := hundred.Sub(uninsured)
		if t.has("insured_rate") && t.str(row, "insured_rate") != "" {
			if insured, err = t.dec(row, "insured_rate", line); err != nil {
				return nil, err
			}
		}
		states = append(states, domain.StateRate{
			Code:          strings.ToUpper(t.str(row, "code")),
			Name:          t.str(row, "state"),
			UninsuredRate: uninsured,
			InsuredRate:   insured,
		})
	}
	return states, nil
}

// LoadStatesCSV reads a state dataset from disk
func LoadStatesCSV(path string) ([]domain.StateRate, error) {
	return openAndRead(path, ReadStatesCSV)
}

// ReadMedicationsCSV parses the medication price dataset
func ReadMedicationsCSV(r io.Reader) ([]domain.Medication, error) {
	t, err := readCSV(r, "drug", "strength", "cash_low", "cash_high", "discount_low", "discount_high", "copay")
	if err != nil {
		return nil, err
	}

	meds := make([]domain.Medication, 0, len(t.rows))
	for i, row := range t.rows {
		line := i + 2
		var vals [5]decimal.Decimal
		for j, col := range []string{"cash_low", "cash_high", "discount_low", "discount_high", "copay"} {
			if vals[j], err = t.dec(row, col, line); err != nil {
				return nil, err
			}
		}
		meds = append(meds, domain.Medication{
			Drug:     t.str(row, "drug"),
			Strength: t.str(row, "strength"),
			Cash:     domain.PriceRange{Low: vals[0], High: vals[1]},
			Discount: domain.PriceRange{Low: vals[2], High: vals[3]},
			Copay:    vals[4],
		})
	}
	return meds, nil
}

// LoadMedicationsCSV reads a medication dataset from disk
func LoadMedicationsCSV(path string) ([]domain.Medication, error) {
	return openAndRead(path, ReadMedicationsCSV)
}

// ReadProceduresCSV parses the procedure benchmark dataset
func ReadProceduresCSV(r io.Reader) ([]domain.Procedure, error) {
	t, err := readCSV(r, "code", "description", "setting", "median_price", "min_price", "max_price", "sample_size")
	if err != nil {
		return nil, err
	}

	procs := make([]domain.Procedure, 0, len(t.rows))
	for i, row := range t.rows {
		line := i + 2
		p := domain.Procedure{
			Code:        t.str(row, "code"),
			Description: t.str(row, "description"),
			Setting:     t.str(row, "setting"),
		}
		if p.MedianPrice, err = t.dec(row, "median_price", line); err != nil {
			return nil, err
		}
		if p.MinPrice, err = t.dec(row, "min_price", line); err != nil {
			return nil, err
		}
		if p.MaxPrice, err = t.dec(row, "max_price", line); err != nil {
			return nil, err
		}
		if p.SampleSize, err = t.integer(row, "sample_size", line); err != nil {
			return nil, err
		}
		procs = append(procs, p)
	}
	return procs, nil
}

// LoadProceduresCSV reads a procedure dataset from disk
func LoadProceduresCSV(path string) ([]domain.Procedure, error) {
	return openAndRead(path, ReadProceduresCSV)
}

// LoadProcedures picks the CSV or Parquet reader from the file extension
func LoadProcedures(path string) ([]domain.Procedure, error) {
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		return LoadProceduresParquet(path)
	}
	return LoadProceduresCSV(path)
}
