package postgres

import "time"

const kvTable = "kv_entries"

type kvEntryTableModel struct {
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type kvEntryInsertModel struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}
