package audio

// sound.go defines the per-playback record the scheduler tracks (spec 3
// "Audio Sound"): a group assignment, base volume, loop/pan/pitch state,
// and whether it self-deletes on stop. Grounded on
// original_source/Kamilo/KAudioPlayer.h's per-id operations
// (setVolume/setPitch/setPan/setLooping/isPlaying/getPositionInSeconds).

import (
	"time"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundID identifies one playback instance. The zero value is never
// issued and names "no sound" (spec 4.I: "missing pool entry returns
// null id").
type SoundID uint32

type sound struct {
	id     SoundID
	player *eaudio.Player
	group  int

	baseVolume    float64
	pan           float64
	pitch         float64
	looping       bool
	destroyOnStop bool

	loopStartSec, loopEndSec float64
	lengthSeconds            float64

	// pooled names the shared decoded-buffer entry this playback reads
	// from, empty for ad-hoc streaming playbacks (spec 4.I:
	// "play_pooled... Pool entries are shared... independent read cursors
	// and mix state").
	pooled string
}

// IsPlaying reports whether id currently has live playback. Ebitengine's
// own Player tracks play/pause state; pitch is stored but not applied —
// the backend has no runtime resampling hook, so SetPitch is a
// best-effort recorded value rather than an audible effect.
func (s *Scheduler) IsPlaying(id SoundID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	snd, ok := s.sounds[id]
	return ok && snd.player.IsPlaying()
}

// IsValid reports whether id still names a live sound (spec 4.I:
// "is_valid_sound").
func (s *Scheduler) IsValid(id SoundID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sounds[id]
	return ok
}

// Pause pauses playback without releasing the sound.
func (s *Scheduler) Pause(id SoundID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snd, ok := s.sounds[id]; ok {
		snd.player.Pause()
	}
}

// Resume resumes a paused sound.
func (s *Scheduler) Resume(id SoundID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snd, ok := s.sounds[id]; ok {
		snd.player.Play()
	}
}

// SetPosition seeks id to the given offset. Invalid ids are a no-op
// (spec 4.I: "deleting an invalid id is a no-op" — the same tolerance
// applies to every per-id operation here).
func (s *Scheduler) SetPosition(id SoundID, seconds float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snd, ok := s.sounds[id]; ok {
		snd.player.SetPosition(time.Duration(seconds * float64(time.Second)))
	}
}

// GetPosition returns id's current playback offset in seconds.
func (s *Scheduler) GetPosition(id SoundID) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	snd, ok := s.sounds[id]
	if !ok {
		return 0
	}
	return snd.player.Position().Seconds()
}

// GetLength returns id's total stream length in seconds.
func (s *Scheduler) GetLength(id SoundID) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	snd, ok := s.sounds[id]
	if !ok {
		return 0
	}
	return snd.lengthSeconds
}

// SetLooping records id's loop flag. Looping is established at creation
// time via an audio.InfiniteLoop wrapper and nothing reads the recorded
// flag afterwards, so changing it does not affect playback.
func (s *Scheduler) SetLooping(id SoundID, looping bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snd, ok := s.sounds[id]; ok {
		snd.looping = looping
	}
}

// SetVolume sets id's base (per-sound) volume. The actual output volume
// is this value multiplied by the owning group's actual volume (spec
// 4.I's effective-volume formula).
func (s *Scheduler) SetVolume(id SoundID, volume float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snd, ok := s.sounds[id]
	if !ok {
		return
	}
	snd.baseVolume = volume
	snd.player.SetVolume(clamp01(s.actualGroupVolumeLocked(snd.group) * snd.baseVolume))
}

// SetPan records id's stereo pan. Ebitengine's audio.Player has no pan
// control of its own, so pan is stored but not applied and no method
// reads it back, matching how pitch is recorded without being applied.
func (s *Scheduler) SetPan(id SoundID, pan float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snd, ok := s.sounds[id]; ok {
		snd.pan = pan
	}
}

// SetPitch records id's playback pitch multiplier (see IsPlaying's doc
// comment on why it isn't applied to the ebiten backend).
func (s *Scheduler) SetPitch(id SoundID, pitch float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snd, ok := s.sounds[id]; ok {
		snd.pitch = pitch
	}
}
