package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "standard date",
			input: "14 Jan 2026",
			want:  time.Date(2026, time.January, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "single digit day is zero padded",
			input: "05 Mar 2025",
			want:  time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "iso format rejected",
			input:   "2026-01-14",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "garbage",
			input:   "not a date",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDate(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTransactionTime(t *testing.T) {
	txn := Transaction{Date: "31 Dec 2025"}
	earlier, ok := txn.Time()
	if !ok {
		t.Fatal("Expected valid date")
	}

	txn.Date = "01 Jan 2026"
	later, ok := txn.Time()
	if !ok {
		t.Fatal("Expected valid date")
	}

	if !earlier.Before(later) {
		t.Errorf("Expected %v before %v", earlier, later)
	}
}

func TestTransactionTimeMalformed(t *testing.T) {
	txn := Transaction{Date: "someday soon"}
	got, ok := txn.Time()
	if ok {
		t.Fatal("Expected ok=false for malformed date")
	}
	if !got.Equal(Epoch) {
		t.Errorf("Malformed date = %v, want epoch %v", got, Epoch)
	}
}

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{
		Title:     "Lunch",
		Amount:    decimal.NewFromInt(45000),
		Category:  "Food",
		Date:      "14 Jan 2026",
		IsExpense: true,
	}

	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr bool
	}{
		{
			name:   "valid transaction",
			mutate: func(*Transaction) {},
		},
		{
			name:   "zero amount allowed",
			mutate: func(txn *Transaction) { txn.Amount = decimal.Zero },
		},
		{
			name:    "empty title",
			mutate:  func(txn *Transaction) { txn.Title = "" },
			wantErr: true,
		},
		{
			name:    "whitespace title",
			mutate:  func(txn *Transaction) { txn.Title = "   " },
			wantErr: true,
		},
		{
			name:    "negative amount",
			mutate:  func(txn *Transaction) { txn.Amount = decimal.NewFromInt(-1) },
			wantErr: true,
		},
		{
			name:    "empty category",
			mutate:  func(txn *Transaction) { txn.Category = "" },
			wantErr: true,
		},
		{
			name:    "empty date",
			mutate:  func(txn *Transaction) { txn.Date = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := valid
			tt.mutate(&txn)
			err := txn.Validate()
			if tt.wantErr && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected validation error: %v", err)
			}
		})
	}
}
