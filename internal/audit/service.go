// Package audit exports the whole store as an Excel workbook, one
// sheet per table, for offline inspection of user and reminder data.
package audit

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// Service builds on-demand exports of the store.
type Service struct {
	exporter TableExporter
	writer   func() ExcelWriter // factory; each export gets a fresh workbook
	logger   *zerolog.Logger
}

// NewService creates an audit export service.
func NewService(exporter TableExporter, writerFactory func() ExcelWriter, logger *zerolog.Logger) *Service {
	return &Service{
		exporter: exporter,
		writer:   writerFactory,
		logger:   logger,
	}
}

// Export writes an xlsx workbook with one sheet per exported table.
// A table that fails to read is logged and skipped rather than failing
// the whole export.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	tables, err := s.exporter.GetTableNames(ctx)
	if err != nil {
		return fmt.Errorf("get table names: %w", err)
	}
	if len(tables) == 0 {
		return fmt.Errorf("no tables to export")
	}

	excel := s.writer()

	for _, tableName := range tables {
		data, columns, err := s.exporter.GetTableData(ctx, tableName)
		if err != nil {
			s.logger.Error().Err(err).Str("table", tableName).Msg("Failed to get table data")
			continue
		}

		if err := excel.AddSheet(tableName); err != nil {
			s.logger.Error().Err(err).Str("table", tableName).Msg("Failed to add sheet")
			continue
		}
		if err := excel.WriteHeader(columns); err != nil {
			s.logger.Error().Err(err).Str("table", tableName).Msg("Failed to write header")
			continue
		}

		for _, row := range data {
			rowData := make([]interface{}, len(columns))
			for i, col := range columns {
				rowData[i] = row[col]
			}
			if err := excel.WriteRow(rowData); err != nil {
				s.logger.Error().Err(err).Str("table", tableName).Msg("Failed to write row")
			}
		}

		s.logger.Debug().Str("table", tableName).Int("rows", len(data)).Msg("Exported table")
	}

	if err := excel.Save(w); err != nil {
		return fmt.Errorf("save excel: %w", err)
	}
	return nil
}
