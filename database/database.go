// /home/krylon/go/src/github.com/blicero/ealarmd/database/database.go
// -*- mode: go; coding: utf-8; -*-
// Created on 12. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-23 20:02:11 krylon>

// Package database provides the storage backend for notification
// rules and the alarm messages they admit.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/blicero/ealarmd/common"
	"github.com/blicero/ealarmd/database/query"
	"github.com/blicero/ealarmd/logdomain"
	"github.com/blicero/ealarmd/objects"
	"github.com/blicero/krylib"
	_ "github.com/mattn/go-sqlite3" // Import the database driver
	"github.com/pquerna/ffjson/ffjson"
)

var (
	openLock sync.Mutex
	idCnt    int64
)

// ErrTxInProgress indicates that an attempt to initiate a transaction
// failed because there is already one in progress.
var ErrTxInProgress = errors.New("A Transaction is already in progress")

// ErrNoTxInProgress indicates that an attempt was made to finish a
// transaction when none was active.
var ErrNoTxInProgress = errors.New("There is no transaction in progress")

// If a query returns an error and the error text is matched by this
// regex, we consider the error transient and try again after a short
// delay.
var retryPat = regexp.MustCompile("(?i)database is (?:locked|busy)")

// worthARetry returns true if an error returned from the database
// is matched by the retryPat regex.
func worthARetry(e error) bool {
	return retryPat.MatchString(e.Error())
} // func worthARetry(e error) bool

// retryDelay is the amount of time we wait before we repeat a database
// operation that failed due to a transient error.
const retryDelay = 25 * time.Millisecond

func waitForRetry() {
	time.Sleep(retryDelay)
} // func waitForRetry()

// Database is the storage backend for rules and messages.
//
// It is not safe to share a Database instance between goroutines,
// however opening multiple connections to the same database is safe.
type Database struct {
	id      int64
	db      *sql.DB
	tx      *sql.Tx
	log     *log.Logger
	path    string
	queries map[query.ID]*sql.Stmt
}

// Open opens a Database. If the database specified by the path does
// not exist, yet, it is created and initialized.
func Open(path string) (*Database, error) {
	var (
		err      error
		dbExists bool
		db       = &Database{
			path:    path,
			queries: make(map[query.ID]*sql.Stmt, len(dbQueries)),
		}
	)

	openLock.Lock()
	defer openLock.Unlock()
	idCnt++
	db.id = idCnt

	if db.log, err = common.GetLogger(logdomain.Database); err != nil {
		return nil, err
	} else if common.Debug {
		db.log.Printf("[DEBUG] Open database %s\n", path)
	}

	var connstring = fmt.Sprintf("%s?_locking=NORMAL&_journal=WAL&_fk=1&recursive_triggers=0",
		path)

	if dbExists, err = krylib.Fexists(path); err != nil {
		db.log.Printf("[ERROR] Failed to check if %s already exists: %s\n",
			path,
			err.Error())
		return nil, err
	} else if db.db, err = sql.Open("sqlite3", connstring); err != nil {
		db.log.Printf("[ERROR] Failed to open %s: %s\n",
			path,
			err.Error())
		return nil, err
	}

	if !dbExists {
		if err = db.initialize(); err != nil {
			var e2 error
			if e2 = db.db.Close(); e2 != nil {
				db.log.Printf("[CRITICAL] Failed to close database: %s\n",
					e2.Error())
				return nil, e2
			} else if e2 = os.Remove(path); e2 != nil {
				db.log.Printf("[CRITICAL] Failed to remove database file %s: %s\n",
					db.path,
					e2.Error())
			}
			return nil, err
		}

		db.log.Printf("[INFO] Database at %s has been initialized\n",
			path)
	}

	return db, nil
} // func Open(path string) (*Database, error)

func (db *Database) initialize() error {
	var err error
	var tx *sql.Tx

	if common.Debug {
		db.log.Printf("[DEBUG] Initialize fresh database at %s\n",
			db.path)
	}

	if tx, err = db.db.Begin(); err != nil {
		db.log.Printf("[ERROR] Cannot begin transaction: %s\n",
			err.Error())
		return err
	}

	for _, q := range initQueries {
		db.log.Printf("[TRACE] Execute init query:\n%s\n",
			q)
		if _, err = tx.Exec(q); err != nil {
			db.log.Printf("[ERROR] Cannot execute init query: %s\n%s\n",
				err.Error(),
				q)
			if rbErr := tx.Rollback(); rbErr != nil {
				db.log.Printf("[CANTHAPPEN] Cannot rollback transaction: %s\n",
					rbErr.Error())
				return rbErr
			}
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		db.log.Printf("[CANTHAPPEN] Failed to commit init transaction: %s\n",
			err.Error())
		return err
	}

	return nil
} // func (db *Database) initialize() error

// Close closes the database.
// If there is a pending transaction, it is rolled back.
func (db *Database) Close() error {
	// I wonder if would make more sense to panic() if something goes
	// wrong here.
	var err error

	if db.tx != nil {
		if err = db.tx.Rollback(); err != nil {
			db.log.Printf("[CRITICAL] Cannot roll back pending transaction: %s\n",
				err.Error())
			return err
		}
		db.tx = nil
	}

	for key, stmt := range db.queries {
		if err = stmt.Close(); err != nil {
			db.log.Printf("[CRITICAL] Cannot close statement handle %s: %s\n",
				key,
				err.Error())
			return err
		}
		delete(db.queries, key)
	}

	if err = db.db.Close(); err != nil {
		db.log.Printf("[CRITICAL] Cannot close database: %s\n",
			err.Error())
	}

	db.db = nil
	return nil
} // func (db *Database) Close() error

func (db *Database) getQuery(id query.ID) (*sql.Stmt, error) {
	var (
		stmt  *sql.Stmt
		found bool
		err   error
	)

	if stmt, found = db.queries[id]; found {
		return stmt, nil
	} else if _, found = dbQueries[id]; !found {
		return nil, fmt.Errorf("Unknown query %d",
			id)
	}

PREPARE_QUERY:
	if stmt, err = db.db.Prepare(dbQueries[id]); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto PREPARE_QUERY
		}

		db.log.Printf("[ERROR] Cannot parse query %s: %s\n%s\n",
			id,
			err.Error(),
			dbQueries[id])
		return nil, err
	}

	db.queries[id] = stmt

	return stmt, nil
} // func (db *Database) getQuery(query.ID) (*sql.Stmt, error)

// Begin begins an explicit database transaction.
// Only one transaction can be in progress at once, attempting to start
// one, while another transaction is already in progress will yield
// ErrTxInProgress.
func (db *Database) Begin() error {
	var err error

	if db.tx != nil {
		return ErrTxInProgress
	}

BEGIN_TX:
	for db.tx == nil {
		if db.tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				continue BEGIN_TX
			} else {
				db.log.Printf("[ERROR] Failed to start transaction: %s\n",
					err.Error())
				return err
			}
		}
	}

	return nil
} // func (db *Database) Begin() error

// Rollback terminates a pending transaction, undoing any changes to the
// database made during that transaction.
// If no transaction is active, it returns ErrNoTxInProgress
func (db *Database) Rollback() error {
	var err error

	if db.tx == nil {
		return ErrNoTxInProgress
	} else if err = db.tx.Rollback(); err != nil {
		return fmt.Errorf("Cannot roll back database transaction: %s",
			err.Error())
	}

	db.tx = nil

	return nil
} // func (db *Database) Rollback() error

// Commit ends the active transaction, making any changes made during
// that transaction permanent and visible to other connections.
// If no transaction is active, it returns ErrNoTxInProgress
func (db *Database) Commit() error {
	var err error

	if db.tx == nil {
		return ErrNoTxInProgress
	} else if err = db.tx.Commit(); err != nil {
		return fmt.Errorf("Cannot commit transaction: %s",
			err.Error())
	}

	db.tx = nil

	return nil
} // func (db *Database) Commit() error

// RuleAdd adds a new NotificationRule to the store. On success, the
// rule's ID is filled in.
func (db *Database) RuleAdd(r *objects.NotificationRule) error {
	const qid query.ID = query.RuleAdd
	var (
		err    error
		msg    string
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			} else {
				msg = fmt.Sprintf("Error starting transaction: %s",
					err.Error())
				db.log.Printf("[ERROR] %s\n", msg)
				return errors.New(msg)
			}
		} else {
			defer func() {
				var err2 error
				if status {
					if err2 = tx.Commit(); err2 != nil {
						db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
							err2.Error())
					}
				} else if err2 = tx.Rollback(); err2 != nil {
					db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
						err2.Error())
				}
			}()
		}
	}

	if r.UUID == "" {
		r.UUID = common.GetUUID()
	}

	r.Changed = time.Now()
	stmt = tx.Stmt(stmt)
	var res sql.Result

EXEC_QUERY:
	if res, err = stmt.Exec(
		r.Title,
		r.LocalEnabled,
		r.UseGlobalNotification,
		r.Vibrate,
		r.Toast,
		r.Ringtone,
		r.CustomRingtone,
		r.LedFlash,
		r.SpeakMessage,
		r.OverwriteSystem,
		r.Open,
		r.Unlock,
		r.StartTime,
		r.StopTime,
		r.Priority,
		r.SearchText,
		r.UUID,
		r.Changed.Unix()); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		} else {
			err = fmt.Errorf("Cannot add Rule %q to database: %s",
				r.Title,
				err.Error())
			db.log.Printf("[ERROR] %s\n", err.Error())
			return err
		}
	} else {
		var id int64

		if id, err = res.LastInsertId(); err != nil {
			db.log.Printf("[ERROR] Cannot get ID of new Rule %q: %s\n",
				r.Title,
				err.Error())
			return err
		}

		status = true
		r.ID = id
		return nil
	}
} // func (db *Database) RuleAdd(r *objects.NotificationRule) error

// RuleUpdate updates all of a rule's attributes in the store.
func (db *Database) RuleUpdate(r *objects.NotificationRule) error {
	const qid query.ID = query.RuleUpdate
	var (
		err    error
		msg    string
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			} else {
				msg = fmt.Sprintf("Error starting transaction: %s",
					err.Error())
				db.log.Printf("[ERROR] %s\n", msg)
				return errors.New(msg)
			}
		} else {
			defer func() {
				var err2 error
				if status {
					if err2 = tx.Commit(); err2 != nil {
						db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
							err2.Error())
					}
				} else if err2 = tx.Rollback(); err2 != nil {
					db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
						err2.Error())
				}
			}()
		}
	}

	r.Changed = time.Now()
	stmt = tx.Stmt(stmt)

EXEC_QUERY:
	if _, err = stmt.Exec(
		r.Title,
		r.LocalEnabled,
		r.UseGlobalNotification,
		r.Vibrate,
		r.Toast,
		r.Ringtone,
		r.CustomRingtone,
		r.LedFlash,
		r.SpeakMessage,
		r.OverwriteSystem,
		r.Open,
		r.Unlock,
		r.StartTime,
		r.StopTime,
		r.Priority,
		r.SearchText,
		r.Changed.Unix(),
		r.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		} else {
			err = fmt.Errorf("Cannot update Rule %q (%d): %s",
				r.Title,
				r.ID,
				err.Error())
			db.log.Printf("[ERROR] %s\n", err.Error())
			return err
		}
	}

	status = true
	return nil
} // func (db *Database) RuleUpdate(r *objects.NotificationRule) error

// RuleDelete removes a rule from the store. Messages admitted by the
// rule are removed along with it.
func (db *Database) RuleDelete(id int64) error {
	const qid query.ID = query.RuleDelete
	var (
		err    error
		msg    string
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			} else {
				msg = fmt.Sprintf("Error starting transaction: %s",
					err.Error())
				db.log.Printf("[ERROR] %s\n", msg)
				return errors.New(msg)
			}
		} else {
			defer func() {
				var err2 error
				if status {
					if err2 = tx.Commit(); err2 != nil {
						db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
							err2.Error())
					}
				} else if err2 = tx.Rollback(); err2 != nil {
					db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
						err2.Error())
				}
			}()
		}
	}

	stmt = tx.Stmt(stmt)

EXEC_QUERY:
	if _, err = stmt.Exec(id); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		} else {
			err = fmt.Errorf("Cannot delete Rule %d: %s",
				id,
				err.Error())
			db.log.Printf("[ERROR] %s\n", err.Error())
			return err
		}
	}

	status = true
	return nil
} // func (db *Database) RuleDelete(id int64) error

// RuleGetByID looks up a rule by its ID. A missing rule is not an
// error; the method returns nil in that case.
func (db *Database) RuleGetByID(id int64) (*objects.NotificationRule, error) {
	const qid query.ID = query.RuleGetByID
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(id); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot look up Rule %d: %s\n",
			id,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	if rows.Next() {
		var (
			r       = &objects.NotificationRule{ID: id}
			changed int64
		)

		if err = rows.Scan(
			&r.Title,
			&r.LocalEnabled,
			&r.UseGlobalNotification,
			&r.Vibrate,
			&r.Toast,
			&r.Ringtone,
			&r.CustomRingtone,
			&r.LedFlash,
			&r.SpeakMessage,
			&r.OverwriteSystem,
			&r.Open,
			&r.Unlock,
			&r.StartTime,
			&r.StopTime,
			&r.Priority,
			&r.SearchText,
			&r.UUID,
			&changed); err != nil {
			db.log.Printf("[ERROR] Cannot scan row for Rule %d: %s\n",
				id,
				err.Error())
			return nil, err
		}

		r.Changed = time.Unix(changed, 0)
		return r, nil
	}

	return nil, nil
} // func (db *Database) RuleGetByID(id int64) (*objects.NotificationRule, error)

// RuleGetAll loads all rules, ordered by title.
func (db *Database) RuleGetAll() ([]objects.NotificationRule, error) {
	const qid query.ID = query.RuleGetAll
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot load Rules: %s\n",
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	var rules = make([]objects.NotificationRule, 0, 8)

	for rows.Next() {
		var (
			r       objects.NotificationRule
			changed int64
		)

		if err = rows.Scan(
			&r.ID,
			&r.Title,
			&r.LocalEnabled,
			&r.UseGlobalNotification,
			&r.Vibrate,
			&r.Toast,
			&r.Ringtone,
			&r.CustomRingtone,
			&r.LedFlash,
			&r.SpeakMessage,
			&r.OverwriteSystem,
			&r.Open,
			&r.Unlock,
			&r.StartTime,
			&r.StopTime,
			&r.Priority,
			&r.SearchText,
			&r.UUID,
			&changed); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		}

		r.Changed = time.Unix(changed, 0)
		rules = append(rules, r)
	}

	return rules, nil
} // func (db *Database) RuleGetAll() ([]objects.NotificationRule, error)

// RuleCount returns the number of rules in the store.
func (db *Database) RuleCount() (int64, error) {
	const qid query.ID = query.RuleCount
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return 0, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot count Rules: %s\n",
			err.Error())
		return 0, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	var cnt int64

	if rows.Next() {
		if err = rows.Scan(&cnt); err != nil {
			db.log.Printf("[ERROR] Cannot scan count: %s\n",
				err.Error())
			return 0, err
		}
	}

	return cnt, nil
} // func (db *Database) RuleCount() (int64, error)

// MessageAdd adds a NotificationMessage to the store. On success, the
// message's ID is filled in.
func (db *Database) MessageAdd(m *objects.NotificationMessage) error {
	const qid query.ID = query.MessageAdd
	var (
		err    error
		msg    string
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			} else {
				msg = fmt.Sprintf("Error starting transaction: %s",
					err.Error())
				db.log.Printf("[ERROR] %s\n", msg)
				return errors.New(msg)
			}
		} else {
			defer func() {
				var err2 error
				if status {
					if err2 = tx.Commit(); err2 != nil {
						db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
							err2.Error())
					}
				} else if err2 = tx.Rollback(); err2 != nil {
					db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
						err2.Error())
				}
			}()
		}
	}

	if m.UUID == "" {
		m.UUID = common.GetUUID()
	}

	if m.Content == nil {
		m.Content = make(map[string]string)
	}

	var content []byte

	if content, err = ffjson.Marshal(m.Content); err != nil {
		db.log.Printf("[ERROR] Cannot serialize content of Message %q: %s\n",
			m.Title,
			err.Error())
		return err
	}

	defer ffjson.Pool(content)

	stmt = tx.Stmt(stmt)
	var res sql.Result

EXEC_QUERY:
	if res, err = stmt.Exec(
		m.RuleID,
		m.Title,
		m.Message,
		m.Timestamp,
		content,
		m.Seen,
		m.UUID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		} else {
			err = fmt.Errorf("Cannot add Message %q to database: %s",
				m.Title,
				err.Error())
			db.log.Printf("[ERROR] %s\n", err.Error())
			return err
		}
	} else {
		var id int64

		if id, err = res.LastInsertId(); err != nil {
			db.log.Printf("[ERROR] Cannot get ID of new Message %q: %s\n",
				m.Title,
				err.Error())
			return err
		}

		status = true
		m.ID = id
		return nil
	}
} // func (db *Database) MessageAdd(m *objects.NotificationMessage) error

// MessageGetByID looks up a message by its ID. A missing message is not
// an error; the method returns nil in that case.
func (db *Database) MessageGetByID(id int64) (*objects.NotificationMessage, error) {
	const qid query.ID = query.MessageGetByID
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(id); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot look up Message %d: %s\n",
			id,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	if rows.Next() {
		var (
			m       = &objects.NotificationMessage{ID: id}
			content string
		)

		if err = rows.Scan(
			&m.RuleID,
			&m.Title,
			&m.Message,
			&m.Timestamp,
			&content,
			&m.Seen,
			&m.UUID); err != nil {
			db.log.Printf("[ERROR] Cannot scan row for Message %d: %s\n",
				id,
				err.Error())
			return nil, err
		} else if err = ffjson.Unmarshal([]byte(content), &m.Content); err != nil {
			db.log.Printf("[ERROR] Cannot parse content of Message %d: %s\n%s\n",
				id,
				err.Error(),
				content)
			return nil, err
		}

		return m, nil
	}

	return nil, nil
} // func (db *Database) MessageGetByID(id int64) (*objects.NotificationMessage, error)

// MessageGetAll loads all messages, newest first.
func (db *Database) MessageGetAll() ([]objects.NotificationMessage, error) {
	const qid query.ID = query.MessageGetAll
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot load Messages: %s\n",
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	var messages = make([]objects.NotificationMessage, 0, 16)

	for rows.Next() {
		var (
			m       objects.NotificationMessage
			content string
		)

		if err = rows.Scan(
			&m.ID,
			&m.RuleID,
			&m.Title,
			&m.Message,
			&m.Timestamp,
			&content,
			&m.Seen,
			&m.UUID); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		} else if err = ffjson.Unmarshal([]byte(content), &m.Content); err != nil {
			db.log.Printf("[ERROR] Cannot parse content of Message %d: %s\n%s\n",
				m.ID,
				err.Error(),
				content)
			return nil, err
		}

		messages = append(messages, m)
	}

	return messages, nil
} // func (db *Database) MessageGetAll() ([]objects.NotificationMessage, error)

// MessageGetByRule loads all messages admitted by the given rule,
// newest first.
func (db *Database) MessageGetByRule(ruleID int64) ([]objects.NotificationMessage, error) {
	const qid query.ID = query.MessageGetByRule
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(ruleID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot load Messages for Rule %d: %s\n",
			ruleID,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	var messages = make([]objects.NotificationMessage, 0, 16)

	for rows.Next() {
		var (
			m       = objects.NotificationMessage{RuleID: ruleID}
			content string
		)

		if err = rows.Scan(
			&m.ID,
			&m.Title,
			&m.Message,
			&m.Timestamp,
			&content,
			&m.Seen,
			&m.UUID); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		} else if err = ffjson.Unmarshal([]byte(content), &m.Content); err != nil {
			db.log.Printf("[ERROR] Cannot parse content of Message %d: %s\n%s\n",
				m.ID,
				err.Error(),
				content)
			return nil, err
		}

		messages = append(messages, m)
	}

	return messages, nil
} // func (db *Database) MessageGetByRule(ruleID int64) ([]objects.NotificationMessage, error)

// MessageCountUnread returns the number of unseen messages across all
// rules.
func (db *Database) MessageCountUnread() (int64, error) {
	const qid query.ID = query.MessageCountUnread
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return 0, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot count unread Messages: %s\n",
			err.Error())
		return 0, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	var cnt int64

	if rows.Next() {
		if err = rows.Scan(&cnt); err != nil {
			db.log.Printf("[ERROR] Cannot scan count: %s\n",
				err.Error())
			return 0, err
		}
	}

	return cnt, nil
} // func (db *Database) MessageCountUnread() (int64, error)

// MessageCountUnreadByRule returns the number of unseen messages
// admitted by the given rule.
func (db *Database) MessageCountUnreadByRule(ruleID int64) (int64, error) {
	const qid query.ID = query.MessageCountUnreadByRule
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return 0, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(ruleID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot count unread Messages for Rule %d: %s\n",
			ruleID,
			err.Error())
		return 0, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	var cnt int64

	if rows.Next() {
		if err = rows.Scan(&cnt); err != nil {
			db.log.Printf("[ERROR] Cannot scan count: %s\n",
				err.Error())
			return 0, err
		}
	}

	return cnt, nil
} // func (db *Database) MessageCountUnreadByRule(ruleID int64) (int64, error)

// MessageGetUnreadByRule returns the most recent unseen message
// admitted by the given rule, or nil if there is none.
func (db *Database) MessageGetUnreadByRule(ruleID int64) (*objects.NotificationMessage, error) {
	const qid query.ID = query.MessageGetUnreadByRule
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(ruleID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot load unread Message for Rule %d: %s\n",
			ruleID,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	if rows.Next() {
		var (
			m       = &objects.NotificationMessage{RuleID: ruleID}
			content string
		)

		if err = rows.Scan(
			&m.ID,
			&m.Title,
			&m.Message,
			&m.Timestamp,
			&content,
			&m.UUID); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		} else if err = ffjson.Unmarshal([]byte(content), &m.Content); err != nil {
			db.log.Printf("[ERROR] Cannot parse content of Message %d: %s\n%s\n",
				m.ID,
				err.Error(),
				content)
			return nil, err
		}

		m.Seen = false
		return m, nil
	}

	return nil, nil
} // func (db *Database) MessageGetUnreadByRule(ruleID int64) (*objects.NotificationMessage, error)

// MessageMarkSeen marks a single message as seen.
func (db *Database) MessageMarkSeen(id int64) error {
	return db.messageModify(query.MessageMarkSeen, id)
} // func (db *Database) MessageMarkSeen(id int64) error

// MessageMarkAllSeen marks all messages as seen.
func (db *Database) MessageMarkAllSeen() error {
	return db.messageModify(query.MessageMarkAllSeen)
} // func (db *Database) MessageMarkAllSeen() error

// MessageMarkAllSeenByRule marks all messages admitted by the given
// rule as seen.
func (db *Database) MessageMarkAllSeenByRule(ruleID int64) error {
	return db.messageModify(query.MessageMarkAllSeenByRule, ruleID)
} // func (db *Database) MessageMarkAllSeenByRule(ruleID int64) error

// MessageDelete removes a single message from the store.
func (db *Database) MessageDelete(id int64) error {
	return db.messageModify(query.MessageDelete, id)
} // func (db *Database) MessageDelete(id int64) error

// MessageDeleteByRule removes all messages admitted by the given rule.
func (db *Database) MessageDeleteByRule(ruleID int64) error {
	return db.messageModify(query.MessageDeleteByRule, ruleID)
} // func (db *Database) MessageDeleteByRule(ruleID int64) error

// MessageDeleteSeen removes all messages that have been seen.
func (db *Database) MessageDeleteSeen() error {
	return db.messageModify(query.MessageDeleteSeen)
} // func (db *Database) MessageDeleteSeen() error

// MessageDeleteSeenByRule removes all seen messages admitted by the
// given rule.
func (db *Database) MessageDeleteSeenByRule(ruleID int64) error {
	return db.messageModify(query.MessageDeleteSeenByRule, ruleID)
} // func (db *Database) MessageDeleteSeenByRule(ruleID int64) error

// MessageDeleteOlderThan removes all messages with a timestamp before
// the given cutoff.
func (db *Database) MessageDeleteOlderThan(cutoff time.Time) error {
	var stamp = cutoff.In(time.UTC).Format(common.TimestampFormatMessage)
	return db.messageModify(query.MessageDeleteOlderThan, stamp)
} // func (db *Database) MessageDeleteOlderThan(cutoff time.Time) error

// messageModify runs one of the message queries that modify rows
// without returning any.
func (db *Database) messageModify(qid query.ID, args ...interface{}) error {
	var (
		err    error
		msg    string
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			} else {
				msg = fmt.Sprintf("Error starting transaction: %s",
					err.Error())
				db.log.Printf("[ERROR] %s\n", msg)
				return errors.New(msg)
			}
		} else {
			defer func() {
				var err2 error
				if status {
					if err2 = tx.Commit(); err2 != nil {
						db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
							err2.Error())
					}
				} else if err2 = tx.Rollback(); err2 != nil {
					db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
						err2.Error())
				}
			}()
		}
	}

	stmt = tx.Stmt(stmt)

EXEC_QUERY:
	if _, err = stmt.Exec(args...); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		} else {
			err = fmt.Errorf("Cannot execute query %s: %s",
				qid,
				err.Error())
			db.log.Printf("[ERROR] %s\n", err.Error())
			return err
		}
	}

	status = true
	return nil
} // func (db *Database) messageModify(qid query.ID, args ...interface{}) error
