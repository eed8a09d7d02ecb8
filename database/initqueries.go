// /home/krylon/go/src/github.com/blicero/ealarmd/database/initqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 12. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-22 17:21:54 krylon>

package database

var initQueries = []string{
	`
CREATE TABLE rule (
    id               INTEGER PRIMARY KEY,
    title            TEXT NOT NULL,
    local_enabled    INTEGER NOT NULL DEFAULT 1,
    use_global       INTEGER NOT NULL DEFAULT 1,
    vibrate          INTEGER NOT NULL DEFAULT 0,
    toast            INTEGER NOT NULL DEFAULT 0,
    ringtone         INTEGER NOT NULL DEFAULT 0,
    custom_ringtone  TEXT NOT NULL DEFAULT '',
    led_flash        INTEGER NOT NULL DEFAULT 0,
    speak_message    INTEGER NOT NULL DEFAULT 0,
    overwrite_system INTEGER NOT NULL DEFAULT 0,
    open             INTEGER NOT NULL DEFAULT 0,
    unlock           INTEGER NOT NULL DEFAULT 0,
    start_time       TEXT NOT NULL DEFAULT '00:00',
    stop_time        TEXT NOT NULL DEFAULT '23:59',
    priority         INTEGER NOT NULL DEFAULT 0,
    search_text      TEXT NOT NULL DEFAULT '',
    uuid             TEXT UNIQUE NOT NULL,
    changed          INTEGER NOT NULL
)
`,
	`
CREATE TABLE message (
    id        INTEGER PRIMARY KEY,
    rule_id   INTEGER NOT NULL,
    title     TEXT NOT NULL,
    message   TEXT NOT NULL DEFAULT '',
    timestamp TEXT NOT NULL,
    content   TEXT NOT NULL DEFAULT '{}',
    seen      INTEGER NOT NULL DEFAULT 0,
    uuid      TEXT UNIQUE NOT NULL,
    FOREIGN KEY (rule_id) REFERENCES rule (id)
        ON DELETE CASCADE
        ON UPDATE RESTRICT
)
`,
	"CREATE INDEX msg_rule_idx ON message (rule_id)",
	"CREATE INDEX msg_seen_idx ON message (seen)",
	"CREATE INDEX msg_time_idx ON message (timestamp)",
}
