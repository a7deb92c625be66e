package audio

import "testing"

func TestGroupFadeInterpolatesLinearly(t *testing.T) {
	s := newTestScheduler(1)
	s.cancelGroupFadesLocked(0) // no-op, exercises the empty path
	s.fades = append(s.fades, newGroupFade(0, 0, 1, 4))

	for i := 0; i < 4; i++ {
		s.runFades()
	}
	if got := s.GroupVolume(0); !almostEqual(got, 1, 1e-6) {
		t.Fatalf("expected group volume to reach 1 after the fade completes, got %v", got)
	}
	if len(s.fades) != 0 {
		t.Fatalf("expected the finished fade to be compacted out of the list, got %d remaining", len(s.fades))
	}
}

func TestSetGroupVolumeReplacesInFlightFade(t *testing.T) {
	s := newTestScheduler(1)
	s.SetGroupVolume(0, 1, 10)
	if len(s.fades) != 1 {
		t.Fatalf("expected one queued fade, got %d", len(s.fades))
	}
	s.SetGroupVolume(0, 0.5, 10)
	if len(s.fades) != 1 {
		t.Fatalf("expected the second SetGroupVolume to replace rather than stack, got %d fades", len(s.fades))
	}
}

func TestSoundFadeAutoStopsOnCompletion(t *testing.T) {
	s := newTestScheduler(1)
	s.fades = append(s.fades, newSoundFade(SoundID(1), 1, 0, 2, true))
	// No sound with id 1 exists, so runFades must skip the missing target
	// without panicking, and still compact the fade out once finished.
	s.runFades()
	s.runFades()
	if len(s.fades) != 0 {
		t.Fatalf("expected the fade to be compacted out regardless of a missing sound target, got %d", len(s.fades))
	}
}
