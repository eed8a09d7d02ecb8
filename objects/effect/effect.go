// /home/krylon/go/src/github.com/blicero/ealarmd/objects/effect/effect.go
// -*- mode: go; coding: utf-8; -*-
// Created on 11. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-03-11 17:08:44 krylon>

//go:generate stringer -type=ID

// Package effect contains symbolic constants for the presentation
// effects a notification can trigger.
package effect

// ID identifies one presentation effect.
type ID uint8

// Open auto-launches the message detail view.
// Unlock lets the detail view escape the lock screen.
// Toast shows a transient popup.
// Ringtone plays a sound.
// Vibrate attaches a vibration pattern to the tray notification.
// LedFlash attaches an LED flash pattern to the tray notification.
// SpeakMessage reads the message out loud.
// OverwriteSystem maximizes the system volume for the duration of playback.
const (
	Open ID = iota
	Unlock
	Toast
	Ringtone
	Vibrate
	LedFlash
	SpeakMessage
	OverwriteSystem
)

// All returns a slice of all effect IDs.
func All() []ID {
	return []ID{
		Open,
		Unlock,
		Toast,
		Ringtone,
		Vibrate,
		LedFlash,
		SpeakMessage,
		OverwriteSystem,
	}
} // func All() []ID
