package postgres

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"
)

func TestSelectKVQuery(t *testing.T) {
	query, args, err := selectKVQuery("novaStreamAccount")
	if err != nil {
		t.Fatalf("build query: %v", err)
	}

	want := "SELECT key, value, created_at, updated_at FROM kv_entries WHERE key = $1 LIMIT 1"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 1 || args[0] != "novaStreamAccount" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpsertKVQuery(t *testing.T) {
	query, args, err := upsertKVQuery("novaStreamAccount_activeProfile", "2")
	if err != nil {
		t.Fatalf("build query: %v", err)
	}

	if !strings.HasPrefix(query, "INSERT INTO kv_entries (key, value) VALUES ($1, $2) ON CONFLICT (key)") {
		t.Fatalf("unexpected query prefix: %s", query)
	}
	if !strings.Contains(query, "value = EXCLUDED.value") {
		t.Fatalf("expected upsert to overwrite value: %s", query)
	}
	if len(args) != 2 || args[0] != "novaStreamAccount_activeProfile" || args[1] != "2" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("select kv entry: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
	if isNotFound(fmt.Errorf("pq: relation kv_entries does not exist")) {
		t.Fatalf("expected unrelated error to not be not found")
	}
}
