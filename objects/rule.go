// /home/krylon/go/src/github.com/blicero/ealarmd/objects/rule.go
// -*- mode: go; coding: utf-8; -*-
// Created on 11. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-20 21:14:32 krylon>

// Package objects provides the data types used by the application.
package objects

import (
	"fmt"
	"math"
	"regexp"
	"time"

	"github.com/blicero/ealarmd/common"
	"github.com/blicero/ealarmd/objects/effect"
)

//go:generate ffjson rule.go

// NotificationRule is a user-configured filter plus a profile of the
// effects to trigger when an alarm message passes the filter.
// A Rule with an ID of 0 has not been saved to the database, yet.
type NotificationRule struct {
	ID                    int64
	Title                 string
	LocalEnabled          bool
	UseGlobalNotification bool
	Vibrate               bool
	Toast                 bool
	Ringtone              bool
	CustomRingtone        string
	LedFlash              bool
	SpeakMessage          bool
	OverwriteSystem       bool
	Open                  bool
	Unlock                bool
	StartTime             string
	StopTime              string
	Priority              int
	SearchText            string
	UUID                  string
	Changed               time.Time
}

func (r *NotificationRule) String() string {
	return fmt.Sprintf("%s (%s - %s)",
		r.Title,
		r.StartTime,
		r.StopTime)
} // func (r *NotificationRule) String() string

// NotificationKey returns the stable key identifying the rule's tray
// notification. It is the rule's ID truncated to the 32-bit range.
func (r *NotificationRule) NotificationKey() int32 {
	return int32(r.ID % math.MaxInt32)
} // func (r *NotificationRule) NotificationKey() int32

// Window computes the rule's admission window anchored at the given
// reference time. If the window crosses midnight (start > stop), it is
// shifted so that it forms a single contiguous interval around ref.
func (r *NotificationRule) Window(ref time.Time) (time.Time, time.Time, error) {
	var (
		err      error
		from, to time.Time
	)

	if from, err = time.Parse(common.TimeOfDayFormat, r.StartTime); err != nil {
		return from, to, fmt.Errorf("Cannot parse start time %q: %s",
			r.StartTime,
			err.Error())
	} else if to, err = time.Parse(common.TimeOfDayFormat, r.StopTime); err != nil {
		return from, to, fmt.Errorf("Cannot parse stop time %q: %s",
			r.StopTime,
			err.Error())
	}

	var (
		start = time.Date(ref.Year(), ref.Month(), ref.Day(),
			from.Hour(), from.Minute(), 0, 0, ref.Location())
		stop = time.Date(ref.Year(), ref.Month(), ref.Day(),
			to.Hour(), to.Minute(), 0, 0, ref.Location())
	)

	if start.After(stop) {
		if start.After(ref) {
			start = start.AddDate(0, 0, -1)
		} else {
			stop = stop.AddDate(0, 0, 1)
		}
	}

	return start, stop, nil
} // func (r *NotificationRule) Window(ref time.Time) (time.Time, time.Time, error)

// InWindow returns true if the given instant falls within the rule's
// admission window, boundary instants included. A rule whose start or
// stop time cannot be parsed never matches.
func (r *NotificationRule) InWindow(ref time.Time) bool {
	var (
		err         error
		start, stop time.Time
	)

	if start, stop, err = r.Window(ref); err != nil {
		return false
	}

	return !ref.Before(start) && !ref.After(stop)
} // func (r *NotificationRule) InWindow(ref time.Time) bool

// MatchesText returns true if the rule's search pattern matches the
// given title or body. An empty pattern matches everything; the pattern
// must match the entire string, not a substring. A pattern that does
// not compile never matches.
func (r *NotificationRule) MatchesText(title, body string) bool {
	if r.SearchText == "" {
		return true
	}

	var (
		err error
		pat *regexp.Regexp
	)

	if pat, err = regexp.Compile(`\A(?:` + r.SearchText + `)\z`); err != nil {
		return false
	}

	return pat.MatchString(title) || pat.MatchString(body)
} // func (r *NotificationRule) MatchesText(title, body string) bool

// Matches returns true if the rule admits the given payload at the
// given instant.
func (r *NotificationRule) Matches(p *Payload, ref time.Time) bool {
	return r.MatchesText(p.Title, p.Message) && r.InWindow(ref)
} // func (r *NotificationRule) Matches(p *Payload, ref time.Time) bool

// effectAccessors maps each effect to the rule field storing its
// override flag, so resolving a flag is a single lookup instead of a
// chain of conditionals.
var effectAccessors = map[effect.ID]func(*NotificationRule) bool{
	effect.Open:            func(r *NotificationRule) bool { return r.Open },
	effect.Unlock:          func(r *NotificationRule) bool { return r.Unlock },
	effect.Toast:           func(r *NotificationRule) bool { return r.Toast },
	effect.Ringtone:        func(r *NotificationRule) bool { return r.Ringtone },
	effect.Vibrate:         func(r *NotificationRule) bool { return r.Vibrate },
	effect.LedFlash:        func(r *NotificationRule) bool { return r.LedFlash },
	effect.SpeakMessage:    func(r *NotificationRule) bool { return r.SpeakMessage },
	effect.OverwriteSystem: func(r *NotificationRule) bool { return r.OverwriteSystem },
}

// EffectFlag returns the rule's own flag for the given effect.
func (r *NotificationRule) EffectFlag(e effect.ID) bool {
	if acc, ok := effectAccessors[e]; ok {
		return acc(r)
	}

	return false
} // func (r *NotificationRule) EffectFlag(e effect.ID) bool
