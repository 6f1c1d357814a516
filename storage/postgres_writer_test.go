package storage

import (
	"strings"
	"testing"
)

func TestInsertStatement(t *testing.T) {
	table := sampleTable()
	query, args := insertStatement(table, table.Listings)

	if !strings.Contains(query, "($1,$2,$3,$4,$5,$6,$7,$8,$9),($10,$11,$12,$13,$14,$15,$16,$17,$18)") {
		t.Errorf("unexpected placeholders in %s", query)
	}
	if len(args) != 18 {
		t.Fatalf("args: got %d, want 18", len(args))
	}
	if args[0] != table.RunID || args[1] != "Hallberg Rassy" || args[2] != "boat24" {
		t.Errorf("leading args: got %v", args[:3])
	}
	if args[5] != 1982 || args[8] != 42500.4 {
		t.Errorf("present values: got year %v price %v", args[5], args[8])
	}
	for _, i := range []int{14, 15, 16, 17} {
		if args[i] != nil {
			t.Errorf("arg %d: absent value should be NULL, got %v", i, args[i])
		}
	}
}
