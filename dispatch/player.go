// /home/krylon/go/src/github.com/blicero/ealarmd/dispatch/player.go
// -*- mode: go; coding: utf-8; -*-
// Created on 21. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-29 18:11:02 krylon>

package dispatch

import (
	"log"
	"sync"

	"github.com/blicero/ealarmd/common"
	"github.com/blicero/ealarmd/logdomain"
)

// AudioSink abstracts the audio output used for alert sounds.
type AudioSink interface {
	Volume() (int, error)
	SetVolume(vol int) error
	MaxVolume() int
	RingerMode() (int, error)
	SetRingerMode(mode int) error
	// Play starts playing the sound at the given URI. The returned
	// channel yields the final error (or nil) once playback ends.
	Play(uri string) (<-chan error, error)
	Stop() error
}

// Player plays alert sounds on an AudioSink. At most one sound plays
// at a time, starting a new one cuts off the previous one. When asked
// to override the system settings, the Player cranks up the volume for
// the duration of playback and restores the previous state afterwards.
type Player struct {
	log       *log.Logger
	sink      AudioSink
	lock      sync.Mutex
	gen       uint64
	saved     bool
	savedVol  int
	savedMode int
}

// NewPlayer creates a Player on the given sink.
func NewPlayer(sink AudioSink) (*Player, error) {
	var (
		err error
		p   = &Player{sink: sink}
	)

	if p.log, err = common.GetLogger(logdomain.Dispatch); err != nil {
		return nil, err
	}

	return p, nil
} // func NewPlayer(sink AudioSink) (*Player, error)

// Play plays the sound at the given URI. If override is true, the
// volume is raised to the maximum and the ringer unmuted first; the
// previous state is restored when playback ends, no matter how. The
// state is saved on the Player itself, so a sound that cuts off an
// overriding one still restores the volume the user had chosen, not
// the maximized one.
func (p *Player) Play(uri string, override bool) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	// Cut off a sound that is still playing.
	if err := p.sink.Stop(); err != nil {
		p.log.Printf("[WARN] Cannot stop previous playback: %s\n",
			err.Error())
	}

	p.gen++
	var (
		err error
		cur = p.gen
	)

	if override && !p.saved {
		// If an earlier override has not been restored yet, the
		// current values are our own doing and must not replace
		// the saved ones.
		var vol, mode int
		if vol, err = p.sink.Volume(); err != nil {
			p.log.Printf("[WARN] Cannot get volume: %s\n",
				err.Error())
		} else if mode, err = p.sink.RingerMode(); err != nil {
			p.log.Printf("[WARN] Cannot get ringer mode: %s\n",
				err.Error())
		} else {
			p.saved = true
			p.savedVol = vol
			p.savedMode = mode
		}
	}

	if override && p.saved {
		if err = p.sink.SetRingerMode(0); err != nil {
			p.log.Printf("[WARN] Cannot unmute: %s\n",
				err.Error())
		}
		if err = p.sink.SetVolume(p.sink.MaxVolume()); err != nil {
			p.log.Printf("[WARN] Cannot set volume: %s\n",
				err.Error())
		}
	}

	var done <-chan error

	if done, err = p.sink.Play(uri); err != nil {
		p.log.Printf("[ERROR] Cannot play %q: %s\n",
			uri,
			err.Error())
		p.restoreLocked()
		return err
	}

	if p.saved {
		go func() {
			if perr := <-done; perr != nil {
				p.log.Printf("[WARN] Playback of %q failed: %s\n",
					uri,
					perr.Error())
			}
			p.finish(cur)
		}()
	}

	return nil
} // func (p *Player) Play(uri string, override bool) error

// finish restores the saved audio state after the playback with the
// given generation ended. If another playback has taken over in the
// meantime, its completion does the restoring instead.
func (p *Player) finish(cur uint64) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.gen != cur {
		return
	}

	p.restoreLocked()
} // func (p *Player) finish(cur uint64)

// restoreLocked puts the sink back into the saved state, at most once
// per save. Caller holds the lock.
func (p *Player) restoreLocked() {
	if !p.saved {
		return
	}

	p.saved = false

	if err := p.sink.SetVolume(p.savedVol); err != nil {
		p.log.Printf("[WARN] Cannot restore volume: %s\n",
			err.Error())
	}
	if err := p.sink.SetRingerMode(p.savedMode); err != nil {
		p.log.Printf("[WARN] Cannot restore ringer mode: %s\n",
			err.Error())
	}
} // func (p *Player) restoreLocked()
