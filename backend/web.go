// /home/krylon/go/src/github.com/blicero/ealarmd/backend/web.go
// -*- mode: go; coding: utf-8; -*-
// Created on 25. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-27 19:55:24 krylon>

package backend

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/blicero/ealarmd/database"
	"github.com/blicero/ealarmd/matcher"
	"github.com/blicero/ealarmd/objects"
	"github.com/gorilla/mux"
	"github.com/pquerna/ffjson/ffjson"
)

func (d *Daemon) initWebHandlers() error {
	d.router.HandleFunc("/alarm/submit", d.handleAlarmSubmit)
	d.router.HandleFunc("/rule/add", d.handleRuleAdd)
	d.router.HandleFunc("/rule/all", d.handleRuleGetAll)
	d.router.HandleFunc("/rule/{id:(?:\\d+)}/get", d.handleRuleGet)
	d.router.HandleFunc("/rule/{id:(?:\\d+)}/update", d.handleRuleUpdate)
	d.router.HandleFunc("/rule/{id:(?:\\d+)}/delete", d.handleRuleDelete)
	d.router.HandleFunc("/message/all", d.handleMessageGetAll)
	d.router.HandleFunc("/message/rule/{id:(?:\\d+)}", d.handleMessageGetByRule)
	d.router.HandleFunc("/message/{id:(?:\\d+)}/view", d.handleMessageView)
	d.router.HandleFunc("/message/{id:(?:\\d+)}/seen", d.handleMessageSeen)
	d.router.HandleFunc("/message/{id:(?:\\d+)}/delete", d.handleMessageDelete)
	d.router.HandleFunc("/message/seen/all", d.handleMessageMarkAllSeen)
	d.router.HandleFunc("/message/purge", d.handleMessagePurge)
	d.router.HandleFunc("/message/clear", d.handleMessageClear)

	return nil
} // func (d *Daemon) initWebHandlers() error

func (d *Daemon) serveHTTP() {
	var err error

	defer d.log.Println("[INFO] Web server is shutting down")

	d.log.Printf("[INFO] Web frontend is going online at %s\n", d.web.Addr)

	if err = d.web.ListenAndServe(); err != nil {
		if err != http.ErrServerClosed {
			d.log.Printf("[ERROR] ListenAndServe returned an error: %s\n",
				err.Error())
		} else {
			d.log.Println("[INFO] HTTP Server has shut down.")
		}
	}
} // func (d *Daemon) serveHTTP()

func (d *Daemon) handleAlarmSubmit(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		db       *database.Database
		rules    []objects.NotificationRule
		matches  []matcher.Match
		payload  objects.Payload
		msg      string
		txStatus bool
		response = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		response.Message = err.Error()
		goto SEND_RESPONSE
	}

	payload.Title = r.FormValue("title")
	payload.Message = r.FormValue("message")
	payload.Content = make(map[string]string)

	for key, values := range r.Form {
		if key == "title" || key == "message" || len(values) == 0 {
			continue
		}
		payload.Content[key] = values[0]
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if rules, err = db.RuleGetAll(); err != nil {
		msg = fmt.Sprintf("Cannot load rules: %s",
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	switch matches, err = matcher.Admit(&payload, rules, time.Now()); err {
	case nil:
		// proceed below
	case matcher.ErrNoMatchingRule:
		// A payload nobody asked for is not an error.
		response.Status = true
		response.Message = "dropped"
		goto SEND_RESPONSE
	default:
		msg = fmt.Sprintf("Cannot admit alarm %q: %s",
			payload.Title,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	if err = db.Begin(); err != nil {
		msg = fmt.Sprintf("Error starting transaction: %s",
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	for _, m := range matches {
		if err = db.MessageAdd(m.Message); err != nil {
			msg = fmt.Sprintf("Cannot add Message %q for Rule %d: %s",
				m.Message.Title,
				m.Rule.ID,
				err.Error())
			d.log.Printf("[ERROR] %s\n", msg)
			response.Message = msg
			goto SEND_RESPONSE
		}
	}

	txStatus = true
	response.Status = true
	response.Message = fmt.Sprintf("%d message(s) accepted",
		len(matches))

SEND_RESPONSE:
	if db != nil {
		if txStatus {
			if err = db.Commit(); err != nil {
				d.log.Printf("[ERROR] Error committing transaction: %s\n",
					err.Error())
				response.Status = false
				response.Message = err.Error()
				txStatus = false
			}
		} else if err = db.Rollback(); err != nil && err != database.ErrNoTxInProgress {
			d.log.Printf("[ERROR] Failed to rollback transaction: %s\n",
				err.Error())
		}
	}

	if txStatus {
		for _, m := range matches {
			d.Queue <- m.Message.ID
		}
	}

	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleAlarmSubmit(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleRuleAdd(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		db       *database.Database
		rule     objects.NotificationRule
		rstr     string
		msg      string
		response = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		response.Message = err.Error()
		goto SEND_RESPONSE
	}

	rstr = r.FormValue("rule")

	if err = ffjson.Unmarshal([]byte(rstr), &rule); err != nil {
		msg = fmt.Sprintf("Cannot parse rule %q: %s",
			rstr,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if err = db.RuleAdd(&rule); err != nil {
		msg = fmt.Sprintf("Cannot add Rule %q to database: %s",
			rule.Title,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	response.Status = true
	response.Message = strconv.FormatInt(rule.ID, 10)

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleRuleAdd(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleRuleGetAll(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err   error
		db    *database.Database
		rules []objects.NotificationRule
		buf   []byte
	)

	db = d.pool.Get()
	defer d.pool.Put(db)

	if rules, err = db.RuleGetAll(); err != nil {
		d.log.Printf("[ERROR] Cannot load Rules: %s\n",
			err.Error())
	} else if buf, err = ffjson.Marshal(rules); err != nil {
		d.log.Printf("[ERROR] Cannot serialize Rule list: %s\n",
			err.Error())
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) handleRuleGetAll(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleRuleGet(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err   error
		db    *database.Database
		rule  *objects.NotificationRule
		buf   []byte
		id    int64
		idstr = mux.Vars(r)["id"]
	)

	if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		d.log.Printf("[CANTHAPPEN] Cannot parse ID %q: %s\n",
			idstr,
			err.Error())
		http.Error(w, err.Error(), 400)
		return
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if rule, err = db.RuleGetByID(id); err != nil {
		d.log.Printf("[ERROR] Cannot look up Rule %d: %s\n",
			id,
			err.Error())
		http.Error(w, err.Error(), 500)
		return
	} else if rule == nil {
		http.Error(w,
			fmt.Sprintf("Rule %d was not found", id),
			404)
		return
	} else if buf, err = ffjson.Marshal(rule); err != nil {
		d.log.Printf("[ERROR] Cannot serialize Rule %d: %s\n",
			id,
			err.Error())
		http.Error(w, err.Error(), 500)
		return
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) handleRuleGet(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleRuleUpdate(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err        error
		db         *database.Database
		rule       objects.NotificationRule
		id         int64
		rstr, msg  string
		idstr      = mux.Vars(r)["id"]
		response   = objects.Response{ID: d.getID()}
		needUpdate bool
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		response.Message = err.Error()
		goto SEND_RESPONSE
	}

	rstr = r.FormValue("rule")

	if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if err = ffjson.Unmarshal([]byte(rstr), &rule); err != nil {
		msg = fmt.Sprintf("Cannot parse rule %q: %s",
			rstr,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	rule.ID = id

	db = d.pool.Get()
	defer d.pool.Put(db)

	if err = db.RuleUpdate(&rule); err != nil {
		msg = fmt.Sprintf("Cannot update Rule %d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	response.Status = true
	response.Message = "OK"
	needUpdate = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)

	if needUpdate {
		d.disp.HandleUpdate(id)
	}
} // func (d *Daemon) handleRuleUpdate(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleRuleDelete(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		db       *database.Database
		rule     *objects.NotificationRule
		id       int64
		msg      string
		idstr    = mux.Vars(r)["id"]
		response = objects.Response{ID: d.getID()}
	)

	if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if rule, err = db.RuleGetByID(id); err != nil {
		msg = fmt.Sprintf("Cannot look up Rule %d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if rule == nil {
		msg = fmt.Sprintf("Rule %d was not found in database", id)
		d.log.Printf("[DEBUG] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if err = db.RuleDelete(id); err != nil {
		msg = fmt.Sprintf("Cannot delete Rule %d (%q): %s",
			id,
			rule.Title,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	d.disp.DropRule(rule.NotificationKey())

	response.Status = true
	response.Message = fmt.Sprintf("Rule %d (%q) was deleted",
		id,
		rule.Title)

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleRuleDelete(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleMessageGetAll(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		db       *database.Database
		messages []objects.NotificationMessage
		buf      []byte
	)

	db = d.pool.Get()
	defer d.pool.Put(db)

	if messages, err = db.MessageGetAll(); err != nil {
		d.log.Printf("[ERROR] Cannot load Messages: %s\n",
			err.Error())
	} else if buf, err = ffjson.Marshal(messages); err != nil {
		d.log.Printf("[ERROR] Cannot serialize Message list: %s\n",
			err.Error())
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) handleMessageGetAll(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleMessageGetByRule(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		db       *database.Database
		messages []objects.NotificationMessage
		buf      []byte
		id       int64
		idstr    = mux.Vars(r)["id"]
	)

	if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		d.log.Printf("[CANTHAPPEN] Cannot parse ID %q: %s\n",
			idstr,
			err.Error())
		http.Error(w, err.Error(), 400)
		return
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if messages, err = db.MessageGetByRule(id); err != nil {
		d.log.Printf("[ERROR] Cannot load Messages for Rule %d: %s\n",
			id,
			err.Error())
	} else if buf, err = ffjson.Marshal(messages); err != nil {
		d.log.Printf("[ERROR] Cannot serialize Message list: %s\n",
			err.Error())
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) handleMessageGetByRule(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleMessageView(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err     error
		db      *database.Database
		message *objects.NotificationMessage
		buf     []byte
		id      int64
		idstr   = mux.Vars(r)["id"]
	)

	if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		d.log.Printf("[CANTHAPPEN] Cannot parse ID %q: %s\n",
			idstr,
			err.Error())
		http.Error(w, err.Error(), 400)
		return
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if message, err = db.MessageGetByID(id); err != nil {
		d.log.Printf("[ERROR] Cannot look up Message %d: %s\n",
			id,
			err.Error())
		http.Error(w, err.Error(), 500)
		return
	} else if message == nil {
		http.Error(w,
			fmt.Sprintf("Message %d was not found", id),
			404)
		return
	} else if buf, err = ffjson.Marshal(message); err != nil {
		d.log.Printf("[ERROR] Cannot serialize Message %d: %s\n",
			id,
			err.Error())
		http.Error(w, err.Error(), 500)
		return
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) handleMessageView(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleMessageSeen(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		db       *database.Database
		message  *objects.NotificationMessage
		id       int64
		msg      string
		ruleID   int64
		idstr    = mux.Vars(r)["id"]
		response = objects.Response{ID: d.getID()}
	)

	if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if message, err = db.MessageGetByID(id); err != nil {
		msg = fmt.Sprintf("Cannot look up Message %d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if message == nil {
		msg = fmt.Sprintf("Message %d was not found in database", id)
		d.log.Printf("[DEBUG] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if err = db.MessageMarkSeen(id); err != nil {
		msg = fmt.Sprintf("Cannot mark Message %d as seen: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	ruleID = message.RuleID
	response.Status = true
	response.Message = "OK"

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)

	if response.Status {
		d.disp.HandleUpdate(ruleID)
	}
} // func (d *Daemon) handleMessageSeen(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleMessageDelete(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		db       *database.Database
		message  *objects.NotificationMessage
		id       int64
		ruleID   int64
		msg      string
		idstr    = mux.Vars(r)["id"]
		response = objects.Response{ID: d.getID()}
	)

	if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if message, err = db.MessageGetByID(id); err != nil {
		msg = fmt.Sprintf("Cannot look up Message %d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if message == nil {
		msg = fmt.Sprintf("Message %d was not found in database", id)
		d.log.Printf("[DEBUG] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if err = db.MessageDelete(id); err != nil {
		msg = fmt.Sprintf("Cannot delete Message %d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	ruleID = message.RuleID
	response.Status = true
	response.Message = "OK"

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)

	if response.Status {
		d.disp.HandleUpdate(ruleID)
	}
} // func (d *Daemon) handleMessageDelete(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleMessageMarkAllSeen(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		db       *database.Database
		response = objects.Response{ID: d.getID()}
	)

	db = d.pool.Get()
	defer d.pool.Put(db)

	if err = db.MessageMarkAllSeen(); err != nil {
		var msg = fmt.Sprintf("Cannot mark all Messages as seen: %s",
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
	} else {
		response.Status = true
		response.Message = "OK"
	}

	d.sendResponseJSON(w, &response)

	if response.Status {
		d.disp.HandleUpdateAll()
	}
} // func (d *Daemon) handleMessageMarkAllSeen(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleMessagePurge(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err       error
		db        *database.Database
		cutoff    time.Time
		tstr, msg string
		response  = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		response.Message = err.Error()
		goto SEND_RESPONSE
	}

	tstr = r.FormValue("cutoff")

	if cutoff, err = time.Parse(time.RFC3339, tstr); err != nil {
		msg = fmt.Sprintf("Cannot parse cutoff %q: %s",
			tstr,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if err = db.MessageDeleteOlderThan(cutoff); err != nil {
		msg = fmt.Sprintf("Cannot delete Messages older than %s: %s",
			tstr,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	response.Status = true
	response.Message = "OK"

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)

	if response.Status {
		d.disp.HandleUpdateAll()
	}
} // func (d *Daemon) handleMessagePurge(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleMessageClear(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err        error
		db         *database.Database
		ruleID     int64
		seenOnly   bool
		idstr, msg string
		response   = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		response.Message = err.Error()
		goto SEND_RESPONSE
	}

	idstr = r.FormValue("rule")
	seenOnly = r.FormValue("seen_only") == "true"

	if ruleID, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse rule ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if seenOnly {
		err = db.MessageDeleteSeenByRule(ruleID)
	} else {
		err = db.MessageDeleteByRule(ruleID)
	}

	if err != nil {
		msg = fmt.Sprintf("Cannot clear Messages of Rule %d: %s",
			ruleID,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	response.Status = true
	response.Message = "OK"

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)

	if response.Status {
		d.disp.HandleUpdate(ruleID)
	}
} // func (d *Daemon) handleMessageClear(w http.ResponseWriter, r *http.Request)

//////////////////////////////////////////////////////////////////////////////////////////////////
/// Helpers //////////////////////////////////////////////////////////////////////////////////////
//////////////////////////////////////////////////////////////////////////////////////////////////

func (d *Daemon) sendResponseJSON(w http.ResponseWriter, res *objects.Response) {
	var (
		err error
		buf []byte
	)

	if buf, err = ffjson.Marshal(res); err != nil {
		d.log.Printf("[ERROR] Cannot serialize Response object %#v: %s\n",
			res,
			err.Error())
		return
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) sendResponseJSON(w http.ResponseWriter, res *objects.Response)
