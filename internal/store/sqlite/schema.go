package sqlite

// SchemaVersion is the schema written by InitSchema.
const SchemaVersion = "0.1"

// initialSchema holds version tracking and the namespaced preference rows.
// Values are stored as text and converted by the typed accessors.
const initialSchema = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS preferences (
    namespace TEXT NOT NULL,
    key TEXT NOT NULL,
    value TEXT NOT NULL,
    updated_at INTEGER NOT NULL,
    PRIMARY KEY (namespace, key)
);
`
