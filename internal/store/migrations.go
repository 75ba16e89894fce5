package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	id             TEXT PRIMARY KEY,
	column_id      TEXT NOT NULL CHECK(column_id IN ('pending', 'in-progress', 'review', 'done')),
	position       INTEGER NOT NULL DEFAULT 0,
	title          TEXT NOT NULL,
	description    TEXT NOT NULL DEFAULT '',
	owner          TEXT NOT NULL DEFAULT '',
	owner_initials TEXT NOT NULL DEFAULT '',
	due            TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL,
	priority       TEXT NOT NULL,
	created_at     TEXT NOT NULL DEFAULT '',
	updated_at     TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_tasks_column_position ON tasks(column_id, position);

CREATE TABLE IF NOT EXISTS comments (
	id        TEXT PRIMARY KEY,
	task_id   TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	column_id TEXT NOT NULL,
	position  INTEGER NOT NULL DEFAULT 0,
	text      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS attachments (
	id        TEXT PRIMARY KEY,
	task_id   TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	column_id TEXT NOT NULL,
	position  INTEGER NOT NULL DEFAULT 0,
	name      TEXT NOT NULL,
	size      INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS labels (
	task_id   TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	column_id TEXT NOT NULL,
	position  INTEGER NOT NULL DEFAULT 0,
	label     TEXT NOT NULL COLLATE NOCASE,
	PRIMARY KEY (task_id, column_id, label)
);

CREATE INDEX IF NOT EXISTS idx_comments_key ON comments(task_id, column_id, position);
CREATE INDEX IF NOT EXISTS idx_attachments_key ON attachments(task_id, column_id, position);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS label_catalog (
	name     TEXT PRIMARY KEY COLLATE NOCASE,
	color    TEXT NOT NULL DEFAULT '',
	position INTEGER NOT NULL DEFAULT 0
);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
