package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	qb "github.com/riskibarqy/novastream/internal/platform/querybuilder"
)

const upsertKVSuffix = `ON CONFLICT (key)
DO UPDATE SET
    value = EXCLUDED.value,
    updated_at = NOW()`

// KVStore keeps account records in the kv_entries table.
type KVStore struct {
	db *sqlx.DB
}

func NewKVStore(db *sqlx.DB) *KVStore {
	return &KVStore{db: db}
}

func (r *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := selectKVQuery(key)
	if err != nil {
		return "", false, fmt.Errorf("build select kv entry query: %w", err)
	}

	var row kvEntryTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("select kv entry: %w", err)
	}

	return row.Value, true, nil
}

func (r *KVStore) Set(ctx context.Context, key, value string) error {
	query, args, err := upsertKVQuery(key, value)
	if err != nil {
		return fmt.Errorf("build upsert kv entry query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert kv entry: %w", err)
	}
	return nil
}

func selectKVQuery(key string) (string, []any, error) {
	return qb.Select("key", "value", "created_at", "updated_at").From(kvTable).
		Where(qb.Eq("key", key)).
		Limit(1).
		ToSQL()
}

func upsertKVQuery(key, value string) (string, []any, error) {
	return qb.InsertModel(kvTable, kvEntryInsertModel{Key: key, Value: value}, upsertKVSuffix)
}
