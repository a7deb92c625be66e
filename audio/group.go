package audio

// group.go implements group-level mixing (spec 3 "Audio Sound"/4.I):
// master/user volume pairs, mute/solo flags with process-wide solo
// exclusivity, and the effective-volume formula property P5 exercises.
// Grounded on original_source/Kamilo/KAudioPlayer.h's group API
// (getGroupMasterVolume/getGroupVolume/getGroupFlags, KAudioFlag_MUTE/
// KAudioFlag_SOLO exclusivity), generalized from its static-singleton
// shape to a per-Scheduler instance.

// GroupFlags are the exclusive mixing flags a group can carry.
type GroupFlags uint8

const (
	GroupMute GroupFlags = 1 << iota
	GroupSolo
)

// Group is one mixer bus: a name for logging/GUI, a master/user volume
// pair, and mute/solo flags.
type Group struct {
	Name         string
	MasterVolume float64
	Volume       float64
	Flags        GroupFlags
}

func newGroup() Group {
	return Group{MasterVolume: 1, Volume: 1}
}

// GroupCount returns the number of configured groups.
func (s *Scheduler) GroupCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.groups)
}

// SetGroupCount resizes the group table, leaving existing groups
// untouched and giving new ones default settings (spec 4.I: "Groups:
// configurable count").
func (s *Scheduler) SetGroupCount(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.groups) < n {
		s.groups = append(s.groups, newGroup())
	}
	if n < len(s.groups) {
		s.groups = s.groups[:n]
	}
}

// GroupFlags returns group's flags.
func (s *Scheduler) GroupFlags(group int) GroupFlags {
	s.mu.Lock()
	defer s.mu.Unlock()
	if group < 0 || group >= len(s.groups) {
		return 0
	}
	return s.groups[group].Flags
}

// SetGroupFlags applies flags to group. Setting GroupSolo on one group
// clears it on every other group, since solo is process-wide exclusive
// (spec 3: "Exactly one group may hold solo at a time; setting solo on a
// group clears it elsewhere").
func (s *Scheduler) SetGroupFlags(group int, flags GroupFlags) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if group < 0 || group >= len(s.groups) {
		return
	}
	s.groups[group].Flags = flags
	if flags&GroupSolo != 0 {
		for i := range s.groups {
			if i != group {
				s.groups[i].Flags &^= GroupSolo
			}
		}
	}
}

// GroupMasterVolume returns group's master volume.
func (s *Scheduler) GroupMasterVolume(group int) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if group < 0 || group >= len(s.groups) {
		return 0
	}
	return s.groups[group].MasterVolume
}

// SetGroupMasterVolume sets group's master volume immediately (no fade).
func (s *Scheduler) SetGroupMasterVolume(group int, volume float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if group < 0 || group >= len(s.groups) {
		return
	}
	s.groups[group].MasterVolume = volume
	s.syncGroupLocked(group)
}

// GroupVolume returns group's current (sub) volume.
func (s *Scheduler) GroupVolume(group int) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if group < 0 || group >= len(s.groups) {
		return 0
	}
	return s.groups[group].Volume
}

// SetGroupVolume sets group's sub-volume, fading over fadeFrames frames
// when > 0 (spec 4.I: "set_group_volume(id, vol, fade-frames) enqueues a
// fade envelope").
func (s *Scheduler) SetGroupVolume(group int, volume float64, fadeFrames int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if group < 0 || group >= len(s.groups) {
		return
	}
	if fadeFrames <= 0 {
		s.groups[group].Volume = volume
		s.syncGroupLocked(group)
		return
	}
	s.cancelGroupFadesLocked(group)
	s.fades = append(s.fades, newGroupFade(group, s.groups[group].Volume, volume, fadeFrames))
}

// GroupName returns group's display name.
func (s *Scheduler) GroupName(group int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if group < 0 || group >= len(s.groups) {
		return ""
	}
	return s.groups[group].Name
}

// SetGroupName sets group's display name, used only for logging/GUI.
func (s *Scheduler) SetGroupName(group int, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if group < 0 || group >= len(s.groups) {
		return
	}
	s.groups[group].Name = name
}

// ActualGroupVolume returns group's fully resolved volume: master ×
// group.master × group.current, zeroed by mute or by another group
// holding solo (spec 4.I's effective-volume formula, minus the per-sound
// base factor).
func (s *Scheduler) ActualGroupVolume(group int) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.actualGroupVolumeLocked(group)
}

func (s *Scheduler) actualGroupVolumeLocked(group int) float64 {
	if s.muted || group < 0 || group >= len(s.groups) {
		return 0
	}
	g := s.groups[group]
	if g.Flags&GroupMute != 0 {
		return 0
	}
	if s.soloActiveLocked() && g.Flags&GroupSolo == 0 {
		return 0
	}
	return s.masterVolume * g.MasterVolume * g.Volume
}

func (s *Scheduler) soloActiveLocked() bool {
	for _, g := range s.groups {
		if g.Flags&GroupSolo != 0 {
			return true
		}
	}
	return false
}

// syncGroupLocked re-applies the actual volume to every live sound in
// group. Must be called with s.mu held.
func (s *Scheduler) syncGroupLocked(group int) {
	vol := s.actualGroupVolumeLocked(group)
	for _, snd := range s.sounds {
		if snd.group == group {
			snd.player.SetVolume(clamp01(vol * snd.baseVolume))
		}
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
