// /home/krylon/go/src/github.com/blicero/ealarmd/database/dbqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 12. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-22 17:44:31 krylon>

package database

import "github.com/blicero/ealarmd/database/query"

var dbQueries = map[query.ID]string{
	query.RuleAdd: `
INSERT INTO rule (title, local_enabled, use_global, vibrate, toast, ringtone,
                  custom_ringtone, led_flash, speak_message, overwrite_system,
                  open, unlock, start_time, stop_time, priority, search_text,
                  uuid, changed)
VALUES           (    ?,             ?,          ?,       ?,     ?,        ?,
                      ?,         ?,             ?,                ?,
                      ?,      ?,          ?,         ?,        ?,           ?,
                      ?,       ?)
`,
	query.RuleUpdate: `
UPDATE rule
SET
    title = ?,
    local_enabled = ?,
    use_global = ?,
    vibrate = ?,
    toast = ?,
    ringtone = ?,
    custom_ringtone = ?,
    led_flash = ?,
    speak_message = ?,
    overwrite_system = ?,
    open = ?,
    unlock = ?,
    start_time = ?,
    stop_time = ?,
    priority = ?,
    search_text = ?,
    changed = ?
WHERE id = ?
`,
	query.RuleDelete: "DELETE FROM rule WHERE id = ?",
	query.RuleGetByID: `
SELECT
    title,
    local_enabled,
    use_global,
    vibrate,
    toast,
    ringtone,
    custom_ringtone,
    led_flash,
    speak_message,
    overwrite_system,
    open,
    unlock,
    start_time,
    stop_time,
    priority,
    search_text,
    uuid,
    changed
FROM rule
WHERE id = ?
`,
	query.RuleGetAll: `
SELECT
    id,
    title,
    local_enabled,
    use_global,
    vibrate,
    toast,
    ringtone,
    custom_ringtone,
    led_flash,
    speak_message,
    overwrite_system,
    open,
    unlock,
    start_time,
    stop_time,
    priority,
    search_text,
    uuid,
    changed
FROM rule
ORDER BY title
`,
	query.RuleCount: "SELECT COUNT(id) FROM rule",
	query.MessageAdd: `
INSERT INTO message (rule_id, title, message, timestamp, content, seen, uuid)
VALUES              (      ?,     ?,       ?,         ?,       ?,    ?,    ?)
`,
	query.MessageDelete:       "DELETE FROM message WHERE id = ?",
	query.MessageDeleteByRule: "DELETE FROM message WHERE rule_id = ?",
	query.MessageDeleteSeen:   "DELETE FROM message WHERE seen <> 0",
	query.MessageDeleteSeenByRule: `
DELETE FROM message WHERE rule_id = ? AND seen <> 0
`,
	query.MessageDeleteOlderThan: "DELETE FROM message WHERE timestamp < ?",
	query.MessageGetByID: `
SELECT
    rule_id,
    title,
    message,
    timestamp,
    content,
    seen,
    uuid
FROM message
WHERE id = ?
`,
	query.MessageGetAll: `
SELECT
    id,
    rule_id,
    title,
    message,
    timestamp,
    content,
    seen,
    uuid
FROM message
ORDER BY timestamp DESC
`,
	query.MessageGetByRule: `
SELECT
    id,
    title,
    message,
    timestamp,
    content,
    seen,
    uuid
FROM message
WHERE rule_id = ?
ORDER BY timestamp DESC
`,
	query.MessageCountUnread:       "SELECT COUNT(id) FROM message WHERE seen = 0",
	query.MessageCountUnreadByRule: "SELECT COUNT(id) FROM message WHERE seen = 0 AND rule_id = ?",
	query.MessageGetUnreadByRule: `
SELECT
    id,
    title,
    message,
    timestamp,
    content,
    uuid
FROM message
WHERE rule_id = ? AND seen = 0
ORDER BY timestamp DESC
`,
	query.MessageMarkSeen:          "UPDATE message SET seen = 1 WHERE id = ?",
	query.MessageMarkAllSeen:       "UPDATE message SET seen = 1 WHERE seen = 0",
	query.MessageMarkAllSeenByRule: "UPDATE message SET seen = 1 WHERE seen = 0 AND rule_id = ?",
}
