package audio

// scheduler.go implements the audio scheduler itself (spec component I):
// the pooled/streaming playback table, master volume and mute, the
// background worker goroutine that advances streaming buffers, and the
// per-frame fade-evaluation entry point the engine calls from the main
// thread. Grounded on original_source/Kamilo/KAudioPlayer.h's static API
// surface (playStreaming/playOneShot/stop/stopAll/setMasterVolume/
// isMuted) translated from a process-wide singleton into a per-Scheduler
// instance, and on the ctx+cancel+WaitGroup+time.Ticker worker-loop shape
// used by other_examples/2f02d623_MongooseMoo-barn__server-scheduler.go.go
// for its own background task loop.

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// Scheduler owns every live playback, the group mixer, in-flight fade
// envelopes, and the pooled-buffer table. All fields are guarded by mu
// except the worker's read-only access to a sound's *eaudio.Player, which
// is itself safe for concurrent use per ebiten's own contract (spec 5:
// "the worker only reads sound handles and calls the backend's
// update_streaming(handle); handle creation, deletion, and parameter
// changes happen on the main thread").
type Scheduler struct {
	ctx *eaudio.Context

	mu           sync.Mutex
	sounds       map[SoundID]*sound
	groups       []Group
	fades        []*fade
	pool         map[string][]byte
	nextID       SoundID
	masterVolume float64
	muted        bool

	workerCancel context.CancelFunc
	workerWG     sync.WaitGroup

	// streamBufferPeriod is the nominal buffer duration the worker paces
	// itself against; it sleeps for half of this, floored at 1ms (spec
	// 4.I: "sleeps for half the streaming buffer period (>= 1 ms)").
	streamBufferPeriod time.Duration
}

// NewScheduler creates a Scheduler with groupCount mixer groups (minimum
// 1) backed by ctx, and starts the background worker goroutine. Call
// Close to stop the worker and release every live sound.
func NewScheduler(ctx *eaudio.Context, groupCount int) *Scheduler {
	if groupCount < 1 {
		groupCount = 1
	}
	s := &Scheduler{
		ctx:                ctx,
		sounds:             make(map[SoundID]*sound),
		pool:               make(map[string][]byte),
		masterVolume:       1,
		streamBufferPeriod: 100 * time.Millisecond,
	}
	for i := 0; i < groupCount; i++ {
		s.groups = append(s.groups, newGroup())
	}

	workerCtx, cancel := context.WithCancel(context.Background())
	s.workerCancel = cancel
	s.workerWG.Add(1)
	go s.runWorker(workerCtx)

	return s
}

// runWorker is the dedicated audio thread (spec 5: "Audio worker: single
// persistent thread that sleeps on a fixed interval and calls
// update_streaming under the audio mutex"). ebiten's own audio engine
// already pulls PCM from each *eaudio.Player asynchronously, so the
// per-iteration work here is the engine-facing half of that contract:
// touching every live streaming sound under the lock keeps the scheduler
// honest about what "advancing" means without double-buffering on top of
// ebiten's own mixer thread.
func (s *Scheduler) runWorker(ctx context.Context) {
	defer s.workerWG.Done()
	interval := s.streamBufferPeriod / 2
	if interval < time.Millisecond {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.advanceStreaming()
		}
	}
}

// advanceStreaming touches every live, non-pooled sound so a stalled
// decoder surfaces promptly rather than only when the main thread next
// calls GetPosition. Pooled one-shots need no manual advancing: ebiten's
// player pulls from the fully-decoded buffer on its own schedule.
func (s *Scheduler) advanceStreaming() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, snd := range s.sounds {
		if snd.pooled != "" {
			continue
		}
		_ = snd.player.IsPlaying()
	}
}

// Close stops the worker goroutine and releases every live sound. Safe to
// call once; further use of the Scheduler after Close is undefined.
func (s *Scheduler) Close() {
	s.workerCancel()
	s.workerWG.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, snd := range s.sounds {
		snd.player.Close()
		delete(s.sounds, id)
	}
	s.fades = nil
}

// RunFrame evaluates every in-flight fade envelope once (spec 5: "Audio
// volume changes from fades are applied once per frame, strictly after
// gameplay tick"). Call once per frame from the engine's post-gameplay-
// tick phase.
func (s *Scheduler) RunFrame() {
	s.runFades()
}

// MasterVolume returns the process-wide master volume (spec 4.I's
// effective-volume formula's leading factor).
func (s *Scheduler) MasterVolume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.masterVolume
}

// SetMasterVolume sets the process-wide master volume and re-applies it to
// every live sound immediately.
func (s *Scheduler) SetMasterVolume(volume float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.masterVolume = volume
	s.resyncAllLocked()
}

// Muted reports whether the whole scheduler is silenced.
func (s *Scheduler) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

// SetMuted silences (or restores) every sound regardless of group.
func (s *Scheduler) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = muted
	s.resyncAllLocked()
}

func (s *Scheduler) resyncAllLocked() {
	for _, snd := range s.sounds {
		snd.player.SetVolume(clamp01(s.actualGroupVolumeLocked(snd.group) * snd.baseVolume))
	}
}

// NumPlaying returns the number of sounds currently playing.
func (s *Scheduler) NumPlaying() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, snd := range s.sounds {
		if snd.player.IsPlaying() {
			n++
		}
	}
	return n
}

// NumPlayingInGroup returns the number of sounds currently playing in
// group.
func (s *Scheduler) NumPlayingInGroup(group int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, snd := range s.sounds {
		if snd.group == group && snd.player.IsPlaying() {
			n++
		}
	}
	return n
}

// LoadPooled registers name's decoded byte source for repeated playback
// via PlayPooled. Playbacks of the same name share this memory but each
// get their own decode pass and read cursor (spec 3: "Pool entries are
// shared, so playbacks of the same name share memory but have independent
// read cursors and mix state").
func (s *Scheduler) LoadPooled(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pool[name] = data
}

// PlayPooled starts a fresh playback of the pool entry registered under
// name at the given base volume in group 0, returning its SoundID, or the
// zero SoundID if name was never loaded (spec 4.I: "missing pool entry
// returns null id and logs an error").
func (s *Scheduler) PlayPooled(name string, volume float64) SoundID {
	s.mu.Lock()
	data, ok := s.pool[name]
	s.mu.Unlock()
	if !ok {
		log.Printf("audio: play_pooled: no pool entry named %q", name)
		return 0
	}
	return s.startPlayback(data, volume, 0, false, 0, 0, 0, true, name)
}

// PlayStreaming decodes bytes as a one-off streaming playback starting at
// offsetSec, optionally looping between loopStartSec and loopEndSec, and
// returns its SoundID (spec 4.I: "play_streaming(bytes, offset_sec, loop,
// loop_start_sec, loop_end_sec) -> sound-id").
func (s *Scheduler) PlayStreaming(data []byte, offsetSec float64, loop bool, loopStartSec, loopEndSec float64) SoundID {
	return s.startPlayback(data, 1, 0, loop, offsetSec, loopStartSec, loopEndSec, false, "")
}

func (s *Scheduler) startPlayback(data []byte, volume float64, group int, loop bool, offsetSec, loopStartSec, loopEndSec float64, destroyOnStop bool, pooled string) SoundID {
	ds, err := decode(s.ctx, data)
	if err != nil {
		log.Printf("audio: decode failed: %v", err)
		return 0
	}

	var reader io.ReadSeeker = ds.reader
	length := ds.length
	if loop {
		start := int64(loopStartSec * bytesPerSecond)
		end := length
		if loopEndSec > 0 {
			end = int64(loopEndSec * bytesPerSecond)
		}
		if start > 0 {
			reader = eaudio.NewInfiniteLoopWithIntro(ds.reader, start, end-start)
		} else {
			reader = eaudio.NewInfiniteLoop(ds.reader, end)
		}
	}

	player, err := s.ctx.NewPlayer(reader)
	if err != nil {
		log.Printf("audio: new player failed: %v", err)
		return 0
	}
	if offsetSec > 0 {
		player.SetPosition(time.Duration(offsetSec * float64(time.Second)))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	snd := &sound{
		id:            id,
		player:        player,
		group:         group,
		baseVolume:    volume,
		looping:       loop,
		destroyOnStop: destroyOnStop,
		loopStartSec:  loopStartSec,
		loopEndSec:    loopEndSec,
		lengthSeconds: float64(length) / bytesPerSecond,
		pooled:        pooled,
	}
	s.sounds[id] = snd
	player.SetVolume(clamp01(s.actualGroupVolumeLocked(group) * volume))
	player.Play()
	return id
}

// bytesPerSecond assumes ebiten's standard 16-bit stereo PCM stream
// layout at 44100 Hz (2 channels * 2 bytes/sample * 44100). The decode
// path does not resample, so loop points and lengths derived from this
// constant are exact only for sources recorded at 44100 Hz.
const bytesPerSecond = 4 * 44100

// Stop stops id, fading it out over fadeFrames frames (0 for immediate),
// and deletes it once the fade (or immediate stop) completes (spec 4.I's
// fade-then-delete contract exercised by property P5's end-to-end
// scenario).
func (s *Scheduler) Stop(id SoundID, fadeFrames int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snd, ok := s.sounds[id]
	if !ok {
		return
	}
	if fadeFrames <= 0 {
		s.stopLocked(id)
		return
	}
	s.cancelSoundFadesLocked(id)
	s.fades = append(s.fades, newSoundFade(id, snd.baseVolume, 0, fadeFrames, true))
}

// stopLocked stops and removes id immediately. Must be called with s.mu
// held.
func (s *Scheduler) stopLocked(id SoundID) {
	snd, ok := s.sounds[id]
	if !ok {
		return
	}
	snd.player.Pause()
	snd.player.Close()
	delete(s.sounds, id)
	s.fades = removeFades(s.fades, func(f *fade) bool {
		return f.target == fadeTargetSound && f.sound == id
	})
}

// Delete immediately removes id without fading (spec 4.I: "delete"). A
// no-op for an already-invalid id (spec 4.I: "deleting an invalid id is a
// no-op").
func (s *Scheduler) Delete(id SoundID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked(id)
}

// StopAll stops every live sound, fading each over fadeFrames frames.
func (s *Scheduler) StopAll(fadeFrames int) {
	s.mu.Lock()
	ids := make([]SoundID, 0, len(s.sounds))
	for id := range s.sounds {
		ids = append(ids, id)
	}
	s.mu.Unlock()
	for _, id := range ids {
		s.Stop(id, fadeFrames)
	}
}

// StopByGroup stops every live sound in group, fading each over
// fadeFrames frames.
func (s *Scheduler) StopByGroup(group int, fadeFrames int) {
	s.mu.Lock()
	ids := make([]SoundID, 0)
	for id, snd := range s.sounds {
		if snd.group == group {
			ids = append(ids, id)
		}
	}
	s.mu.Unlock()
	for _, id := range ids {
		s.Stop(id, fadeFrames)
	}
}

// SetGroup reassigns id to group, re-applying the new group's effective
// volume immediately.
func (s *Scheduler) SetGroup(id SoundID, group int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snd, ok := s.sounds[id]
	if !ok {
		return
	}
	snd.group = group
	snd.player.SetVolume(clamp01(s.actualGroupVolumeLocked(group) * snd.baseVolume))
}
