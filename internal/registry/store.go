package registry

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

const (
	byteOrderMarkConstant               = "\ufeff"
	registryFilePermissionsConstant     = fs.FileMode(0o644)
	registryNotFoundTemplateConstant    = "%w: %s"
	registryReadErrorTemplateConstant   = "unable to read registry %s: %w"
	registryParseErrorTemplateConstant  = "unable to parse registry %s: %w"
	registryEncodeErrorTemplateConstant = "unable to encode registry %s: %w"
	registryWriteErrorTemplateConstant  = "unable to write registry %s: %w"
	fileSystemNotConfiguredMessage      = "registry file system not configured"
)

// ErrRegistryNotFound indicates the registry file does not exist.
var ErrRegistryNotFound = errors.New("registry file not found")

// StoreOptions tunes how CSVStore persists rows.
type StoreOptions struct {
	UseCRLF bool
}

// Table is the raw content of a registry file: its header and the remaining records.
type Table struct {
	Header  []string
	Records [][]string
}

// HasColumn reports whether the header declares column.
func (table Table) HasColumn(column string) bool {
	for _, headerColumn := range table.Header {
		if headerColumn == column {
			return true
		}
	}
	return false
}

// Row maps a record onto the header. Values past the header are dropped and
// header columns past the end of a short record are left absent.
func (table Table) Row(record []string) Row {
	row := make(Row, len(table.Header))
	for index, column := range table.Header {
		if index >= len(record) {
			break
		}
		row[column] = record[index]
	}
	return row
}

// Rows maps every record onto the header.
func (table Table) Rows() []Row {
	rows := make([]Row, 0, len(table.Records))
	for _, record := range table.Records {
		rows = append(rows, table.Row(record))
	}
	return rows
}

// CSVStore reads and rewrites the registry CSV file.
type CSVStore struct {
	fileSystem FileSystem
	options    StoreOptions
}

// NewCSVStore constructs a CSVStore backed by the provided file system.
func NewCSVStore(fileSystem FileSystem, options StoreOptions) *CSVStore {
	return &CSVStore{fileSystem: fileSystem, options: options}
}

// ReadTable parses the registry file. A missing file yields ErrRegistryNotFound.
func (store *CSVStore) ReadTable(path string) (Table, error) {
	if store.fileSystem == nil {
		return Table{}, errors.New(fileSystemNotConfiguredMessage)
	}

	content, readError := store.fileSystem.ReadFile(path)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return Table{}, fmt.Errorf(registryNotFoundTemplateConstant, ErrRegistryNotFound, path)
		}
		return Table{}, fmt.Errorf(registryReadErrorTemplateConstant, path, readError)
	}

	table, parseError := parseTable(content)
	if parseError != nil {
		return Table{}, fmt.Errorf(registryParseErrorTemplateConstant, path, parseError)
	}
	return table, nil
}

// Load returns every registry row. A missing file is treated as an empty registry.
func (store *CSVStore) Load(path string) ([]Row, error) {
	table, readError := store.ReadTable(path)
	if readError != nil {
		if errors.Is(readError, ErrRegistryNotFound) {
			return []Row{}, nil
		}
		return nil, readError
	}
	return table.Rows(), nil
}

// Write replaces the registry file with rows in canonical column order, sorted by slug.
func (store *CSVStore) Write(path string, rows []Row) error {
	if store.fileSystem == nil {
		return errors.New(fileSystemNotConfiguredMessage)
	}

	content, encodeError := store.Encode(rows)
	if encodeError != nil {
		return fmt.Errorf(registryEncodeErrorTemplateConstant, path, encodeError)
	}

	if writeError := store.fileSystem.WriteFile(path, content, registryFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(registryWriteErrorTemplateConstant, path, writeError)
	}
	return nil
}

// Encode renders rows exactly as Write persists them.
func (store *CSVStore) Encode(rows []Row) ([]byte, error) {
	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)
	writer.UseCRLF = store.options.UseCRLF

	if writeError := writer.Write(canonicalColumns); writeError != nil {
		return nil, writeError
	}

	for _, row := range SortRows(rows) {
		if writeError := writer.Write(row.Record(canonicalColumns)); writeError != nil {
			return nil, writeError
		}
	}

	writer.Flush()
	if flushError := writer.Error(); flushError != nil {
		return nil, flushError
	}
	return buffer.Bytes(), nil
}

// SortRows returns a copy of rows stably ordered by case-insensitive slug. Empty slugs sort first.
func SortRows(rows []Row) []Row {
	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(leftIndex int, rightIndex int) bool {
		return slugSortKey(sorted[leftIndex]) < slugSortKey(sorted[rightIndex])
	})
	return sorted
}

func slugSortKey(row Row) string {
	return strings.ToLower(row.Value(ColumnSlug))
}

func parseTable(content []byte) (Table, error) {
	content = bytes.TrimPrefix(content, []byte(byteOrderMarkConstant))

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, readError := reader.ReadAll()
	if readError != nil {
		return Table{}, readError
	}

	if len(records) == 0 {
		return Table{}, nil
	}

	return Table{Header: records[0], Records: records[1:]}, nil
}
