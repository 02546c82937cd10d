package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dylan-gluck/cognee-agent/internal/extract"
	"github.com/dylan-gluck/cognee-agent/internal/parser"
)

// Record type tags stored in the records table.
const (
	recordImport    = "import"
	recordExport    = "export"
	recordFunction  = "function"
	recordClass     = "class"
	recordMethod    = "method"
	recordInterface = "interface"
	recordTypeAlias = "type_alias"
	recordEnum      = "enum"
)

// FileEntry summarizes one cataloged file.
type FileEntry struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	FilePath    string    `json:"file_path" yaml:"file_path"`
	Language    string    `json:"language" yaml:"language"`
	Mode        string    `json:"mode" yaml:"mode"`
	RecordCount int       `json:"record_count" yaml:"record_count"`
	ExtractedAt time.Time `json:"extracted_at" yaml:"extracted_at"`
}

// SaveCatalog persists a catalog, replacing any previous catalog for the
// same file. The file row and all record rows are written in one
// transaction so readers never observe a half-replaced file.
func (s *Store) SaveCatalog(cat *extract.Catalog) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)

	if _, err := tx.Exec(`DELETE FROM records WHERE file_id = ?`, cat.ID); err != nil {
		return fmt.Errorf("clear records for %s: %w", cat.FilePath, err)
	}
	if _, err := tx.Exec(`DELETE FROM diagnostics WHERE file_id = ?`, cat.ID); err != nil {
		return fmt.Errorf("clear diagnostics for %s: %w", cat.FilePath, err)
	}

	_, err = tx.Exec(`
        REPLACE INTO files (id, name, file_path, language, mode, source_code, extracted_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		cat.ID, cat.Name, cat.FilePath, string(cat.Language), string(cat.Mode),
		nullIfEmpty(cat.SourceCode), now)
	if err != nil {
		return fmt.Errorf("save file %s: %w", cat.FilePath, err)
	}

	stmt, err := tx.Prepare(`
        INSERT INTO records (file_id, seq, record_type, name, payload,
                             start_row, start_col, end_row, end_col)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare record insert: %w", err)
	}
	defer stmt.Close()

	seq := 0
	insert := func(recordType, name string, span extract.SourceSpan, rec any) error {
		payload, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal %s record %s: %w", recordType, name, err)
		}
		_, err = stmt.Exec(cat.ID, seq, recordType, name, string(payload),
			span.Start.Row, span.Start.Column, span.End.Row, span.End.Column)
		if err != nil {
			return fmt.Errorf("save %s record %s: %w", recordType, name, err)
		}
		seq++
		return nil
	}

	for _, r := range cat.Imports {
		if err := insert(recordImport, r.Name, r.Span, r); err != nil {
			return err
		}
	}
	for _, r := range cat.Exports {
		if err := insert(recordExport, r.Name, r.Span, r); err != nil {
			return err
		}
	}
	for _, r := range cat.Functions {
		if err := insert(recordFunction, r.Name, r.Span, r); err != nil {
			return err
		}
	}
	for _, r := range cat.Classes {
		if err := insert(recordClass, r.Name, r.Span, r); err != nil {
			return err
		}
	}
	for _, r := range cat.Methods {
		if err := insert(recordMethod, r.Name, r.Span, r); err != nil {
			return err
		}
	}
	for _, r := range cat.Interfaces {
		if err := insert(recordInterface, r.Name, r.Span, r); err != nil {
			return err
		}
	}
	for _, r := range cat.TypeAliases {
		if err := insert(recordTypeAlias, r.Name, r.Span, r); err != nil {
			return err
		}
	}
	for _, r := range cat.Enums {
		if err := insert(recordEnum, r.Name, r.Span, r); err != nil {
			return err
		}
	}

	for i, d := range cat.Diagnostics {
		_, err := tx.Exec(`
            INSERT INTO diagnostics (file_id, seq, node_type, message, start_row, start_col)
            VALUES (?, ?, ?, ?, ?, ?)`,
			cat.ID, i, d.NodeType, d.Message, d.Span.Start.Row, d.Span.Start.Column)
		if err != nil {
			return fmt.Errorf("save diagnostic: %w", err)
		}
	}

	return tx.Commit()
}

// GetCatalog loads the catalog for a file path. Returns sql.ErrNoRows when
// the file has not been cataloged.
func (s *Store) GetCatalog(filePath string) (*extract.Catalog, error) {
	cat := &extract.Catalog{}
	var sourceCode sql.NullString
	var language, mode string
	err := s.db.QueryRow(`
        SELECT id, name, file_path, language, mode, source_code
        FROM files WHERE file_path = ?`, filePath).
		Scan(&cat.ID, &cat.Name, &cat.FilePath, &language, &mode, &sourceCode)
	if err != nil {
		return nil, err
	}
	cat.Language = parser.Language(language)
	cat.Mode = extract.Mode(mode)
	cat.SourceCode = sourceCode.String

	rows, err := s.db.Query(`
        SELECT record_type, payload FROM records
        WHERE file_id = ? ORDER BY seq`, cat.ID)
	if err != nil {
		return nil, fmt.Errorf("load records for %s: %w", filePath, err)
	}
	defer rows.Close()

	for rows.Next() {
		var recordType, payload string
		if err := rows.Scan(&recordType, &payload); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if err := appendRecord(cat, recordType, []byte(payload)); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	drows, err := s.db.Query(`
        SELECT node_type, message, start_row, start_col FROM diagnostics
        WHERE file_id = ? ORDER BY seq`, cat.ID)
	if err != nil {
		return nil, fmt.Errorf("load diagnostics for %s: %w", filePath, err)
	}
	defer drows.Close()

	for drows.Next() {
		var d extract.Diagnostic
		if err := drows.Scan(&d.NodeType, &d.Message, &d.Span.Start.Row, &d.Span.Start.Column); err != nil {
			return nil, fmt.Errorf("scan diagnostic: %w", err)
		}
		d.FilePath = cat.FilePath
		cat.Diagnostics = append(cat.Diagnostics, d)
	}
	return cat, drows.Err()
}

func appendRecord(cat *extract.Catalog, recordType string, payload []byte) error {
	var err error
	switch recordType {
	case recordImport:
		var r extract.ImportRecord
		if err = json.Unmarshal(payload, &r); err == nil {
			cat.Imports = append(cat.Imports, r)
		}
	case recordExport:
		var r extract.ExportRecord
		if err = json.Unmarshal(payload, &r); err == nil {
			cat.Exports = append(cat.Exports, r)
		}
	case recordFunction:
		var r extract.FunctionRecord
		if err = json.Unmarshal(payload, &r); err == nil {
			cat.Functions = append(cat.Functions, r)
		}
	case recordClass:
		var r extract.ClassRecord
		if err = json.Unmarshal(payload, &r); err == nil {
			cat.Classes = append(cat.Classes, r)
		}
	case recordMethod:
		var r extract.MethodRecord
		if err = json.Unmarshal(payload, &r); err == nil {
			cat.Methods = append(cat.Methods, r)
		}
	case recordInterface:
		var r extract.InterfaceRecord
		if err = json.Unmarshal(payload, &r); err == nil {
			cat.Interfaces = append(cat.Interfaces, r)
		}
	case recordTypeAlias:
		var r extract.TypeAliasRecord
		if err = json.Unmarshal(payload, &r); err == nil {
			cat.TypeAliases = append(cat.TypeAliases, r)
		}
	case recordEnum:
		var r extract.EnumRecord
		if err = json.Unmarshal(payload, &r); err == nil {
			cat.Enums = append(cat.Enums, r)
		}
	default:
		return fmt.Errorf("unknown record type %q", recordType)
	}
	if err != nil {
		return fmt.Errorf("unmarshal %s record: %w", recordType, err)
	}
	return nil
}

// ListFiles returns a summary of every cataloged file, ordered by name.
func (s *Store) ListFiles() ([]FileEntry, error) {
	rows, err := s.db.Query(`
        SELECT f.id, f.name, f.file_path, f.language, f.mode, f.extracted_at,
               COUNT(r.file_id)
        FROM files f
        LEFT JOIN records r ON r.file_id = f.id
        GROUP BY f.id
        ORDER BY f.name`)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	var entries []FileEntry
	for rows.Next() {
		var e FileEntry
		var extractedAt string
		if err := rows.Scan(&e.ID, &e.Name, &e.FilePath, &e.Language, &e.Mode,
			&extractedAt, &e.RecordCount); err != nil {
			return nil, fmt.Errorf("scan file entry: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, extractedAt); err == nil {
			e.ExtractedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteFile removes a file and all its records from the catalog.
func (s *Store) DeleteFile(filePath string) error {
	_, err := s.db.Exec(`DELETE FROM files WHERE file_path = ?`, filePath)
	if err != nil {
		return fmt.Errorf("delete file %s: %w", filePath, err)
	}
	return nil
}

// FindRecords queries records across all files by type and name pattern.
// Either filter may be empty; pattern uses SQL LIKE syntax.
func (s *Store) FindRecords(recordType, pattern string) ([]RecordEntry, error) {
	query := `
        SELECT r.record_type, r.name, f.file_path, r.start_row, r.start_col, r.payload
        FROM records r JOIN files f ON f.id = r.file_id
        WHERE 1=1`
	var args []any
	if recordType != "" {
		query += " AND r.record_type = ?"
		args = append(args, recordType)
	}
	if pattern != "" {
		query += " AND r.name LIKE ?"
		args = append(args, pattern)
	}
	query += " ORDER BY f.name, r.seq"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("find records: %w", err)
	}
	defer rows.Close()

	var entries []RecordEntry
	for rows.Next() {
		var e RecordEntry
		if err := rows.Scan(&e.RecordType, &e.Name, &e.FilePath,
			&e.StartRow, &e.StartCol, &e.Payload); err != nil {
			return nil, fmt.Errorf("scan record entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RecordEntry is a cross-file record query result.
type RecordEntry struct {
	RecordType string `json:"record_type" yaml:"record_type"`
	Name       string `json:"name" yaml:"name"`
	FilePath   string `json:"file_path" yaml:"file_path"`
	StartRow   uint32 `json:"start_row" yaml:"start_row"`
	StartCol   uint32 `json:"start_col" yaml:"start_col"`
	Payload    string `json:"payload" yaml:"payload"`
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
