package ledger

import "testing"

func TestMatchSettlements(t *testing.T) {
	plan := []Transaction{
		{FromKey: "B", FromName: "Bob", ToKey: "A", ToName: "Alice", Amount: 33.33},
		{FromKey: "C", FromName: "Carol", ToKey: "A", ToName: "Alice", Amount: 33.33},
	}

	tests := []struct {
		name    string
		records []Record
		want    []PlannedSettlement
	}{
		{
			name:    "no history leaves everything pending",
			records: nil,
			want: []PlannedSettlement{
				{Transaction: plan[0]},
				{Transaction: plan[1]},
			},
		},
		{
			name: "settled record matches on exact triple",
			records: []Record{
				{ID: "s1", FromKey: "B", ToKey: "A", Amount: 33.33, Settled: true},
			},
			want: []PlannedSettlement{
				{Transaction: plan[0], RecordID: "s1", Settled: true},
				{Transaction: plan[1]},
			},
		},
		{
			name: "amount drift orphans the old record",
			// the plan shows 33.33; a record settled at 33.50 no longer matches
			records: []Record{
				{ID: "s1", FromKey: "B", ToKey: "A", Amount: 33.50, Settled: true},
			},
			want: []PlannedSettlement{
				{Transaction: plan[0]},
				{Transaction: plan[1]},
			},
		},
		{
			name: "pending record carries its ID without settled flag",
			records: []Record{
				{ID: "s2", FromKey: "C", ToKey: "A", Amount: 33.33, Settled: false},
			},
			want: []PlannedSettlement{
				{Transaction: plan[0]},
				{Transaction: plan[1], RecordID: "s2", Settled: false},
			},
		},
		{
			name: "direction matters",
			records: []Record{
				{ID: "s3", FromKey: "A", ToKey: "B", Amount: 33.33, Settled: true},
			},
			want: []PlannedSettlement{
				{Transaction: plan[0]},
				{Transaction: plan[1]},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchSettlements(plan, tt.records)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d planned settlements, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("planned settlement %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFindRecordRoundsBeforeComparing(t *testing.T) {
	records := []Record{
		{ID: "s1", FromKey: "B", ToKey: "A", Amount: 33.33, Settled: true},
	}

	// An unrounded third of 100 must match the persisted 2-decimal value.
	rec, ok := FindRecord(records, "B", "A", 100.0/3)
	if !ok {
		t.Fatal("expected unrounded amount to match persisted record")
	}
	if rec.ID != "s1" || !rec.Settled {
		t.Errorf("got record %+v, want s1 settled", rec)
	}

	if _, ok := FindRecord(records, "B", "A", 33.34); ok {
		t.Error("expected one-cent difference not to match")
	}
}
