package reference

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hanvion/healthcost/internal/domain"
	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
	"github.com/shopspring/decimal"
)

// ProcedureRow is the Parquet layout of the procedure benchmark dataset.
// Prices are stored as doubles because price-transparency exports are
// produced that way; they are converted to decimals on load.
type ProcedureRow struct {
	Code        string  `parquet:"code"`
	Description string  `parquet:"description"`
	Setting     string  `parquet:"setting"`
	MedianPrice float64 `parquet:"median_price"`
	MinPrice    float64 `parquet:"min_price"`
	MaxPrice    float64 `parquet:"max_price"`
	SampleSize  int64   `parquet:"sample_size"`
}

func (r ProcedureRow) toDomain() domain.Procedure {
	return domain.Procedure{
		Code:        r.Code,
		Description: r.Description,
		Setting:     r.Setting,
		MedianPrice: decimal.NewFromFloat(r.MedianPrice),
		MinPrice:    decimal.NewFromFloat(r.MinPrice),
		MaxPrice:    decimal.NewFromFloat(r.MaxPrice),
		SampleSize:  int(r.SampleSize),
	}
}

func procedureRowFrom(p domain.Procedure) ProcedureRow {
	return ProcedureRow{
		Code:        p.Code,
		Description: p.Description,
		Setting:     p.Setting,
		MedianPrice: p.MedianPrice.InexactFloat64(),
		MinPrice:    p.MinPrice.InexactFloat64(),
		MaxPrice:    p.MaxPrice.InexactFloat64(),
		SampleSize:  int64(p.SampleSize),
	}
}

// LoadProceduresParquet reads a procedure dataset written in Parquet
func LoadProceduresParquet(path string) ([]domain.Procedure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	defer f.Close()

	reader := parquet.NewGenericReader[ProcedureRow](f)
	defer reader.Close()

	procs := make([]domain.Procedure, 0, reader.NumRows())
	buf := make([]ProcedureRow, 256)
	for {
		n, err := reader.Read(buf)
		for _, row := range buf[:n] {
			procs = append(procs, row.toDomain())
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read parquet %s: %w", path, err)
		}
		if n == 0 {
			break
		}
	}
	return procs, nil
}

// WriteProceduresParquet writes procedures to a zstd-compressed Parquet file
func WriteProceduresParquet(path string, procs []domain.Procedure) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create parquet file: %w", err)
	}

	writer := parquet.NewGenericWriter[ProcedureRow](file,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedDefault}),
		parquet.CreatedBy("hanvion", "1.0", ""),
	)

	rows := make([]ProcedureRow, len(procs))
	for i, p := range procs {
		rows[i] = procedureRowFrom(p)
	}
	if _, err := writer.Write(rows); err != nil {
		file.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		file.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return file.Close()
}
