package audio

import "testing"

func newTestScheduler(groupCount int) *Scheduler {
	s := &Scheduler{masterVolume: 1, sounds: make(map[SoundID]*sound)}
	for i := 0; i < groupCount; i++ {
		s.groups = append(s.groups, newGroup())
	}
	return s
}

func TestActualGroupVolumeFormula(t *testing.T) {
	s := newTestScheduler(2)
	s.SetMasterVolume(0.5)
	s.SetGroupMasterVolume(0, 0.5)
	s.SetGroupVolume(0, 0.5, 0)

	got := s.ActualGroupVolume(0)
	want := 0.5 * 0.5 * 0.5
	if !almostEqual(got, want, 1e-9) {
		t.Fatalf("ActualGroupVolume = %v, want %v", got, want)
	}
}

func TestGroupMuteZeroesVolume(t *testing.T) {
	s := newTestScheduler(1)
	s.SetGroupFlags(0, GroupMute)
	if got := s.ActualGroupVolume(0); got != 0 {
		t.Fatalf("expected muted group to have zero actual volume, got %v", got)
	}
}

func TestSoloExcludesNonSoloGroups(t *testing.T) {
	s := newTestScheduler(3)
	s.SetGroupFlags(1, GroupSolo)

	if got := s.ActualGroupVolume(0); got != 0 {
		t.Fatalf("expected non-solo group 0 to be silenced while group 1 is solo, got %v", got)
	}
	if got := s.ActualGroupVolume(2); got != 0 {
		t.Fatalf("expected non-solo group 2 to be silenced while group 1 is solo, got %v", got)
	}
	if got := s.ActualGroupVolume(1); got != 1 {
		t.Fatalf("expected the solo group itself to be unaffected, got %v", got)
	}
}

func TestSoloIsProcessWideExclusive(t *testing.T) {
	s := newTestScheduler(3)
	s.SetGroupFlags(0, GroupSolo)
	s.SetGroupFlags(1, GroupSolo)

	if s.GroupFlags(0)&GroupSolo != 0 {
		t.Fatal("expected setting solo on group 1 to clear it on group 0")
	}
	if s.GroupFlags(1)&GroupSolo == 0 {
		t.Fatal("expected group 1 to hold solo")
	}
}

func TestSchedulerMuteOverridesEverything(t *testing.T) {
	s := newTestScheduler(1)
	s.SetMuted(true)
	if got := s.ActualGroupVolume(0); got != 0 {
		t.Fatalf("expected scheduler-wide mute to zero every group, got %v", got)
	}
}

func almostEqual(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}
