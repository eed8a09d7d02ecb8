// /home/krylon/go/src/github.com/blicero/ealarmd/database/query/query.go
// -*- mode: go; coding: utf-8; -*-
// Created on 12. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-22 17:10:28 krylon>

// Package query provides symbolic constants for identifying SQL queries.
package query

//go:generate stringer -type=ID

type ID uint8

const (
	RuleAdd ID = iota
	RuleUpdate
	RuleDelete
	RuleGetByID
	RuleGetAll
	RuleCount
	MessageAdd
	MessageDelete
	MessageDeleteByRule
	MessageDeleteSeen
	MessageDeleteSeenByRule
	MessageDeleteOlderThan
	MessageGetByID
	MessageGetAll
	MessageGetByRule
	MessageCountUnread
	MessageCountUnreadByRule
	MessageGetUnreadByRule
	MessageMarkSeen
	MessageMarkAllSeen
	MessageMarkAllSeenByRule
)
