package audio

// fade.go implements fade envelopes (spec 4.I): linear interpolation of a
// group or sound volume toward a target over a fixed number of frames,
// evaluated once per frame on the main thread strictly after gameplay
// tick (spec 5). Grounded on the teacher's animation.go TweenGroup, which
// drives a gween.Tween per frame and writes the interpolated value back
// into a target field; generalized here from node fields to group/sound
// volume targets.

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

type fadeTarget uint8

const (
	fadeTargetGroup fadeTarget = iota
	fadeTargetSound
)

// fade is one in-flight volume envelope.
type fade struct {
	target fadeTarget
	group  int
	sound  SoundID

	tween *gween.Tween

	// autoStopOnEnd stops and deletes the sound once the envelope
	// completes — used by Stop(id, fadeFrames) (spec 4.I).
	autoStopOnEnd bool
}

func newGroupFade(group int, from, to float64, frames int) *fade {
	return &fade{
		target: fadeTargetGroup,
		group:  group,
		tween:  gween.New(float32(from), float32(to), float32(frames), ease.Linear),
	}
}

func newSoundFade(id SoundID, from, to float64, frames int, autoStop bool) *fade {
	return &fade{
		target:        fadeTargetSound,
		sound:         id,
		tween:         gween.New(float32(from), float32(to), float32(frames), ease.Linear),
		autoStopOnEnd: autoStop,
	}
}

// cancelGroupFadesLocked drops any in-flight fade targeting group, so a
// fresh SetGroupVolume call replaces rather than stacks with it. Must be
// called with s.mu held.
func (s *Scheduler) cancelGroupFadesLocked(group int) {
	s.fades = removeFades(s.fades, func(f *fade) bool {
		return f.target == fadeTargetGroup && f.group == group
	})
}

// cancelSoundFadesLocked drops any in-flight fade targeting id. Must be
// called with s.mu held.
func (s *Scheduler) cancelSoundFadesLocked(id SoundID) {
	s.fades = removeFades(s.fades, func(f *fade) bool {
		return f.target == fadeTargetSound && f.sound == id
	})
}

func removeFades(fades []*fade, drop func(*fade) bool) []*fade {
	kept := fades[:0]
	for _, f := range fades {
		if !drop(f) {
			kept = append(kept, f)
		}
	}
	return kept
}

// runFades advances every in-flight fade by one frame, applies the
// interpolated value, and compacts finished ones out of the list (spec
// 4.I: "each frame ... compute t ... when t >= 1, clamp to final, mark
// finished ... then compact the list").
func (s *Scheduler) runFades() {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := s.fades[:0]
	for _, f := range s.fades {
		val, finished := f.tween.Update(1)
		switch f.target {
		case fadeTargetGroup:
			if f.group >= 0 && f.group < len(s.groups) {
				s.groups[f.group].Volume = float64(val)
				s.syncGroupLocked(f.group)
			}
		case fadeTargetSound:
			if snd, ok := s.sounds[f.sound]; ok {
				snd.baseVolume = float64(val)
				snd.player.SetVolume(clamp01(s.actualGroupVolumeLocked(snd.group) * snd.baseVolume))
				if finished && f.autoStopOnEnd {
					s.stopLocked(f.sound)
				}
			}
		}
		if !finished {
			live = append(live, f)
		}
	}
	s.fades = live
}
