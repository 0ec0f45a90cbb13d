package storage

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema creates the answer history tables. Timestamps are stored as Unix
// nanoseconds so both SQLite drivers read them back identically.
const Schema = `
CREATE TABLE IF NOT EXISTS answers (
    id TEXT PRIMARY KEY,
    run_id TEXT NOT NULL,
    puzzle TEXT NOT NULL,
    part INTEGER NOT NULL,
    label TEXT NOT NULL,
    value INTEGER NOT NULL,
    input_path TEXT,
    input_hash TEXT NOT NULL,
    solved_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_answers_puzzle ON answers(puzzle);
CREATE INDEX IF NOT EXISTS idx_answers_run_id ON answers(run_id);
CREATE INDEX IF NOT EXISTS idx_answers_input_hash ON answers(input_hash);
CREATE INDEX IF NOT EXISTS idx_answers_solved_at ON answers(solved_at);
`

// InsertSchemaVersion records the schema version.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion retrieves the current schema version.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`

const insertAnswer = `
INSERT INTO answers (id, run_id, puzzle, part, label, value, input_path, input_hash, solved_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const selectAnswers = `
SELECT id, run_id, puzzle, part, label, value, input_path, input_hash, solved_at FROM answers
`
