package entities

import "testing"

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input string
		want  Category
		ok    bool
	}{
		{"blocks", CategoryBlocks, true},
		{"Transactions", CategoryTransactions, true},
		{"  BLOCKS ", CategoryBlocks, true},
		{"block", "", false},
		{"", "", false},
		{"all", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseCategory(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseCategory(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCategoryValid(t *testing.T) {
	if !CategoryBlocks.Valid() || !CategoryTransactions.Valid() {
		t.Error("known categories must be valid")
	}
	if Category("Blocks").Valid() {
		t.Error("non-canonical spelling must not be valid")
	}
	if Category("subscription").Valid() {
		t.Error("legacy table name must not be a category")
	}
}

func TestCategoryTable(t *testing.T) {
	if CategoryBlocks.Table() != "blocks" || CategoryTransactions.Table() != "transactions" {
		t.Error("unexpected table names")
	}
}
