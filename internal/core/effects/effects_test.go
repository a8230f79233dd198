package effects

import "testing"

type unknownEffect struct{}

func (unknownEffect) EffectType() string { return "unknown" }

func TestSplit(t *testing.T) {
	effs := []Effect{
		LedgerEffect{Operation: LedgerRelease, VehicleID: "VEH-001"},
		NotifyEffect{TargetKind: "requester", TargetID: "EMP-001", Type: "MISSION_COMPLETED"},
		LogEffect{Level: "info", Message: "mission transition applied"},
		unknownEffect{},
		NotifyEffect{TargetKind: "driver", TargetID: "DRV-001", Type: "MISSION_OFFERED"},
	}

	inTx, afterCommit := Split(effs)

	if len(inTx) != 2 {
		t.Fatalf("inTx len = %d, want 2", len(inTx))
	}
	if _, ok := inTx[0].(LedgerEffect); !ok {
		t.Errorf("inTx[0] = %T, want LedgerEffect", inTx[0])
	}
	if _, ok := inTx[1].(unknownEffect); !ok {
		t.Errorf("inTx[1] = %T, unknown effects must fail inside the transaction", inTx[1])
	}

	if len(afterCommit) != 3 {
		t.Fatalf("afterCommit len = %d, want 3", len(afterCommit))
	}
	if first := afterCommit[0].(NotifyEffect); first.TargetID != "EMP-001" {
		t.Errorf("afterCommit[0].TargetID = %q, want EMP-001", first.TargetID)
	}
	if _, ok := afterCommit[1].(LogEffect); !ok {
		t.Errorf("afterCommit[1] = %T, want LogEffect", afterCommit[1])
	}
}

func TestSplitEmpty(t *testing.T) {
	inTx, afterCommit := Split(nil)
	if inTx != nil || afterCommit != nil {
		t.Errorf("Split(nil) = %v, %v; want nil, nil", inTx, afterCommit)
	}
}
