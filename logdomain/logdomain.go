// /home/krylon/go/src/github.com/blicero/ealarmd/logdomain/logdomain.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-03-04 18:55:10 krylon>

// Package logdomain provides symbolic constants to identify the
// sources of log messages.
package logdomain

//go:generate stringer -type=ID

// ID represents a log source.
type ID uint8

// These constants identify the various log sources.
const (
	Common ID = iota
	Backend
	Client
	Database
	DBPool
	Dispatch
	Matcher
	Prefs
)

// AllDomains returns a slice of all the known log sources.
func AllDomains() []ID {
	return []ID{
		Common,
		Backend,
		Client,
		Database,
		DBPool,
		Dispatch,
		Matcher,
		Prefs,
	}
} // func AllDomains() []ID
