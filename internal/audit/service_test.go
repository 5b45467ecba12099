package audit

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExporter struct {
	tables map[string][]map[string]interface{}
	cols   map[string][]string
	order  []string
	fail   map[string]bool
}

func (f *fakeExporter) GetTableNames(context.Context) ([]string, error) {
	return f.order, nil
}

func (f *fakeExporter) GetTableData(_ context.Context, table string) ([]map[string]interface{}, []string, error) {
	if f.fail[table] {
		return nil, nil, errors.New("read failed")
	}
	return f.tables[table], f.cols[table], nil
}

type fakeWriter struct {
	sheets  []string
	headers [][]string
	rows    [][]interface{}
	saved   bool
}

func (f *fakeWriter) AddSheet(name string) error        { f.sheets = append(f.sheets, name); return nil }
func (f *fakeWriter) WriteHeader(cols []string) error   { f.headers = append(f.headers, cols); return nil }
func (f *fakeWriter) WriteRow(row []interface{}) error  { f.rows = append(f.rows, row); return nil }
func (f *fakeWriter) Save(w io.Writer) error            { f.saved = true; _, err := w.Write([]byte("xlsx")); return err }

func TestExportWritesOneSheetPerTable(t *testing.T) {
	exporter := &fakeExporter{
		order: []string{"users", "reminders"},
		cols: map[string][]string{
			"users":     {"id", "username"},
			"reminders": {"id", "title"},
		},
		tables: map[string][]map[string]interface{}{
			"users":     {{"id": int64(1), "username": "alice"}},
			"reminders": {{"id": int64(1), "title": "Walk"}, {"id": int64(2), "title": "Read"}},
		},
	}
	writer := &fakeWriter{}
	logger := zerolog.Nop()
	svc := NewService(exporter, func() ExcelWriter { return writer }, &logger)

	var out bytes.Buffer
	require.NoError(t, svc.Export(context.Background(), &out))

	assert.Equal(t, []string{"users", "reminders"}, writer.sheets)
	assert.Len(t, writer.rows, 3)
	assert.Equal(t, []interface{}{int64(1), "alice"}, writer.rows[0])
	assert.True(t, writer.saved)
	assert.Equal(t, "xlsx", out.String())
}

func TestExportSkipsFailingTable(t *testing.T) {
	exporter := &fakeExporter{
		order: []string{"broken", "users"},
		cols:  map[string][]string{"users": {"id"}},
		tables: map[string][]map[string]interface{}{
			"users": {{"id": int64(7)}},
		},
		fail: map[string]bool{"broken": true},
	}
	writer := &fakeWriter{}
	logger := zerolog.Nop()
	svc := NewService(exporter, func() ExcelWriter { return writer }, &logger)

	var out bytes.Buffer
	require.NoError(t, svc.Export(context.Background(), &out))
	assert.Equal(t, []string{"users"}, writer.sheets)
}

func TestGenerateFilename(t *testing.T) {
	ts := time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "remindme_2026-03-05.xlsx", GenerateFilename(ts))
}
