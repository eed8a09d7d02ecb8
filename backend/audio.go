// /home/krylon/go/src/github.com/blicero/ealarmd/backend/audio.go
// -*- mode: go; coding: utf-8; -*-
// Created on 26. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-27 21:12:40 krylon>

package backend

import (
	"fmt"
	"log"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/blicero/ealarmd/common"
	"github.com/blicero/ealarmd/logdomain"
)

const (
	defaultSink = "@DEFAULT_SINK@"
	maxVolume   = 100
)

// Ringer modes of the ExecSink. Audible means sound plays normally,
// Muted means the default sink is muted.
const (
	RingerAudible = iota
	RingerMuted
)

// ExecSink plays alert sounds through PulseAudio by shelling out to
// paplay and pactl.
type ExecSink struct {
	log  *log.Logger
	lock sync.Mutex
	cmd  *exec.Cmd
}

// NewExecSink creates an ExecSink.
func NewExecSink() (*ExecSink, error) {
	var (
		err error
		s   = new(ExecSink)
	)

	if s.log, err = common.GetLogger(logdomain.Backend); err != nil {
		return nil, err
	}

	return s, nil
} // func NewExecSink() (*ExecSink, error)

// Volume returns the volume of the default sink in percent.
func (s *ExecSink) Volume() (int, error) {
	var (
		err error
		out []byte
	)

	if out, err = exec.Command("pactl", "get-sink-volume", defaultSink).Output(); err != nil {
		s.log.Printf("[ERROR] Cannot get sink volume: %s\n",
			err.Error())
		return 0, err
	}

	// Output looks like "Volume: front-left: 39322 /  60% / ..."
	for _, field := range strings.Fields(string(out)) {
		if strings.HasSuffix(field, "%") {
			var vol int
			if vol, err = strconv.Atoi(strings.TrimSuffix(field, "%")); err != nil {
				continue
			}
			return vol, nil
		}
	}

	return 0, fmt.Errorf("Cannot find volume in pactl output %q",
		string(out))
} // func (s *ExecSink) Volume() (int, error)

// SetVolume sets the volume of the default sink in percent.
func (s *ExecSink) SetVolume(vol int) error {
	var err error

	if err = exec.Command("pactl",
		"set-sink-volume",
		defaultSink,
		fmt.Sprintf("%d%%", vol)).Run(); err != nil {
		s.log.Printf("[ERROR] Cannot set sink volume to %d%%: %s\n",
			vol,
			err.Error())
		return err
	}

	return nil
} // func (s *ExecSink) SetVolume(vol int) error

// MaxVolume returns the maximum volume.
func (s *ExecSink) MaxVolume() int {
	return maxVolume
} // func (s *ExecSink) MaxVolume() int

// RingerMode reports whether the default sink is muted.
func (s *ExecSink) RingerMode() (int, error) {
	var (
		err error
		out []byte
	)

	if out, err = exec.Command("pactl", "get-sink-mute", defaultSink).Output(); err != nil {
		s.log.Printf("[ERROR] Cannot get mute state: %s\n",
			err.Error())
		return 0, err
	}

	if strings.Contains(string(out), "yes") {
		return RingerMuted, nil
	}

	return RingerAudible, nil
} // func (s *ExecSink) RingerMode() (int, error)

// SetRingerMode mutes or unmutes the default sink.
func (s *ExecSink) SetRingerMode(mode int) error {
	var (
		err  error
		flag = "0"
	)

	if mode == RingerMuted {
		flag = "1"
	}

	if err = exec.Command("pactl", "set-sink-mute", defaultSink, flag).Run(); err != nil {
		s.log.Printf("[ERROR] Cannot set mute state: %s\n",
			err.Error())
		return err
	}

	return nil
} // func (s *ExecSink) SetRingerMode(mode int) error

// Play starts playing the sound at the given URI. The returned channel
// yields the final error once playback ends.
func (s *ExecSink) Play(uri string) (<-chan error, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	var (
		err  error
		path = strings.TrimPrefix(uri, "file://")
		cmd  = exec.Command("paplay", path)
		done = make(chan error, 1)
	)

	if err = cmd.Start(); err != nil {
		s.log.Printf("[ERROR] Cannot play %q: %s\n",
			path,
			err.Error())
		return nil, err
	}

	s.cmd = cmd

	go func() {
		done <- cmd.Wait()
		close(done)
	}()

	return done, nil
} // func (s *ExecSink) Play(uri string) (<-chan error, error)

// Stop kills a playback that is still running. Stopping when nothing
// plays is a no-op.
func (s *ExecSink) Stop() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.cmd == nil || s.cmd.Process == nil {
		return nil
	}

	if s.cmd.ProcessState == nil {
		if err := s.cmd.Process.Kill(); err != nil {
			s.log.Printf("[WARN] Cannot kill player process: %s\n",
				err.Error())
			return err
		}
	}

	s.cmd = nil
	return nil
} // func (s *ExecSink) Stop() error
