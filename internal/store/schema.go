package store

// schemaSQL defines the SQLite schema for the catalog database.
const schemaSQL = `
-- one row per cataloged file
CREATE TABLE IF NOT EXISTS files (
    id TEXT PRIMARY KEY,              -- stable UUID derived from the path
    name TEXT NOT NULL,               -- repo-relative display name
    file_path TEXT NOT NULL UNIQUE,   -- absolute path
    language TEXT NOT NULL,           -- typescript, tsx, javascript
    mode TEXT NOT NULL,               -- raw, detailed
    source_code TEXT,                 -- full source, raw mode only
    extracted_at TEXT NOT NULL
);

-- one row per declaration record
CREATE TABLE IF NOT EXISTS records (
    file_id TEXT NOT NULL,
    seq INTEGER NOT NULL,             -- insertion order within the file
    record_type TEXT NOT NULL,        -- import, export, function, class,
                                      -- method, interface, type_alias, enum
    name TEXT NOT NULL,
    payload TEXT NOT NULL,            -- full record as JSON
    start_row INTEGER NOT NULL,
    start_col INTEGER NOT NULL,
    end_row INTEGER NOT NULL,
    end_col INTEGER NOT NULL,
    PRIMARY KEY (file_id, seq),
    FOREIGN KEY (file_id) REFERENCES files(id) ON DELETE CASCADE
);

-- extraction diagnostics per file
CREATE TABLE IF NOT EXISTS diagnostics (
    file_id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    node_type TEXT NOT NULL,
    message TEXT NOT NULL,
    start_row INTEGER NOT NULL,
    start_col INTEGER NOT NULL,
    PRIMARY KEY (file_id, seq),
    FOREIGN KEY (file_id) REFERENCES files(id) ON DELETE CASCADE
);

-- file index (track scanned files for incremental runs)
CREATE TABLE IF NOT EXISTS file_index (
    file_path TEXT PRIMARY KEY,
    scan_hash TEXT NOT NULL,
    scanned_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_records_type ON records(record_type);
CREATE INDEX IF NOT EXISTS idx_records_name ON records(name);
`
