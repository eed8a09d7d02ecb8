// /home/krylon/go/src/github.com/blicero/ealarmd/dispatch/dispatch.go
// -*- mode: go; coding: utf-8; -*-
// Created on 20. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-25 19:22:34 krylon>

// Package dispatch delivers admitted messages to the user. It decides
// which effects fire for a given message, renders the tray
// notification for a rule and keeps it in sync with the rule's unread
// messages.
package dispatch

import (
	"fmt"
	"log"

	"github.com/blicero/ealarmd/common"
	"github.com/blicero/ealarmd/database"
	"github.com/blicero/ealarmd/logdomain"
	"github.com/blicero/ealarmd/matcher"
	"github.com/blicero/ealarmd/objects"
	"github.com/blicero/ealarmd/objects/effect"
	"github.com/blicero/ealarmd/prefs"
)

// TapTarget says what activating a tray notification should bring up.
type TapTarget uint8

// Tap targets for tray notifications.
const (
	TargetMessageDetail TapTarget = iota
	TargetMessageList
)

// Tray describes a notification as it appears in the tray. Key
// identifies the slot, posting another Tray with the same Key replaces
// the previous one.
type Tray struct {
	Key      int32
	Title    string
	Body     string
	Target   TapTarget
	TargetID int64
	Vibrate  bool
	LedFlash bool
}

// Presenter is the user-facing side of the Dispatcher. The Dispatcher
// decides what to present, the Presenter does the presenting.
type Presenter interface {
	ShowToast(msg string) error
	PostNotification(t *Tray) error
	CancelNotification(key int32) error
	CancelAll() error
	Speak(msg string) error
	LaunchDetail(messageID int64, bypassLock bool) error
}

// Dispatcher turns freshly admitted messages into user-visible
// notifications and keeps tray notifications in sync with the store.
type Dispatcher struct {
	log    *log.Logger
	pool   *database.Pool
	pref   *prefs.Prefs
	pres   Presenter
	player *Player
}

// New creates a Dispatcher.
func New(pool *database.Pool, pref *prefs.Prefs, pres Presenter, sink AudioSink) (*Dispatcher, error) {
	var (
		err error
		d   = &Dispatcher{
			pool: pool,
			pref: pref,
			pres: pres,
		}
	)

	if d.log, err = common.GetLogger(logdomain.Dispatch); err != nil {
		return nil, err
	} else if d.player, err = NewPlayer(sink); err != nil {
		return nil, err
	}

	return d, nil
} // func New(pool *database.Pool, pref *prefs.Prefs, pres Presenter, sink AudioSink) (*Dispatcher, error)

// resolveEffect decides whether the given effect fires for the given
// rule. A rule that defers to the global settings gets the global
// value, otherwise its own flag counts.
func (d *Dispatcher) resolveEffect(r *objects.NotificationRule, e effect.ID) bool {
	if r.UseGlobalNotification {
		return d.pref.EffectDefault(e)
	}

	return r.EffectFlag(e)
} // func (d *Dispatcher) resolveEffect(r *objects.NotificationRule, e effect.ID) bool

// resolveRingtone picks the alert sound for the given rule. A rule
// that defers to the global settings, or one without a custom sound,
// gets the global one.
func (d *Dispatcher) resolveRingtone(r *objects.NotificationRule) string {
	if !r.UseGlobalNotification && r.CustomRingtone != "" {
		return r.CustomRingtone
	}

	return d.pref.RingtoneURI()
} // func (d *Dispatcher) resolveRingtone(r *objects.NotificationRule) string

// HandleNotification delivers the message with the given ID. Effects
// that fail are logged and skipped, one broken effect does not keep
// the others from firing.
func (d *Dispatcher) HandleNotification(messageID int64) {
	var (
		err  error
		db   *database.Database
		msg  *objects.NotificationMessage
		rule *objects.NotificationRule
	)

	if !d.pref.MasterEnable() {
		d.log.Printf("[DEBUG] Master enable is off, not delivering Message %d\n",
			messageID)
		return
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if msg, err = db.MessageGetByID(messageID); err != nil {
		d.log.Printf("[ERROR] Cannot load Message %d: %s\n",
			messageID,
			err.Error())
		return
	} else if msg == nil {
		d.log.Printf("[WARN] Message %d does not exist\n",
			messageID)
		return
	} else if rule, err = db.RuleGetByID(msg.RuleID); err != nil {
		d.log.Printf("[ERROR] Cannot load Rule %d: %s\n",
			msg.RuleID,
			err.Error())
		return
	} else if rule == nil {
		d.log.Printf("[WARN] Rule %d of Message %d does not exist\n",
			msg.RuleID,
			messageID)
		return
	}

	var decision = matcher.Decide(msg, rule, d.pref.SpeakTemplate())

	if !decision.ShouldNotify {
		d.log.Printf("[DEBUG] Rule %q (%d) is disabled, not delivering Message %d\n",
			rule.Title,
			rule.ID,
			messageID)
		return
	}

	if d.resolveEffect(rule, effect.Open) {
		if err = d.pres.LaunchDetail(msg.ID, d.resolveEffect(rule, effect.Unlock)); err != nil {
			d.log.Printf("[WARN] Cannot open Message %d: %s\n",
				msg.ID,
				err.Error())
		}
	} else if d.resolveEffect(rule, effect.Toast) {
		if err = d.pres.ShowToast(fmt.Sprintf("%s:\n%s", msg.Title, msg.Message)); err != nil {
			d.log.Printf("[WARN] Cannot show toast for Message %d: %s\n",
				msg.ID,
				err.Error())
		}
	}

	var tray *Tray

	if tray, err = d.buildTray(db, rule, msg); err != nil {
		return
	}

	if d.resolveEffect(rule, effect.Ringtone) {
		var uri = d.resolveRingtone(rule)
		if uri != "" {
			if err = d.player.Play(uri, d.resolveEffect(rule, effect.OverwriteSystem)); err != nil {
				d.log.Printf("[WARN] Cannot play alert sound %q: %s\n",
					uri,
					err.Error())
			}
		}
	}

	tray.Vibrate = d.resolveEffect(rule, effect.Vibrate)
	tray.LedFlash = d.resolveEffect(rule, effect.LedFlash)

	if err = d.pres.PostNotification(tray); err != nil {
		d.log.Printf("[WARN] Cannot post notification for Rule %d: %s\n",
			rule.ID,
			err.Error())
	}

	if d.resolveEffect(rule, effect.SpeakMessage) {
		go func(text string) {
			if serr := d.pres.Speak(text); serr != nil {
				d.log.Printf("[WARN] Cannot speak Message %d: %s\n",
					msg.ID,
					serr.Error())
			}
		}(decision.OutputMessage)
	}
} // func (d *Dispatcher) HandleNotification(messageID int64)

// buildTray renders the tray notification for the given rule. With one
// unread message, the notification shows that message and opens it
// when tapped. With several, it shows an unread-count digest and opens
// the message list.
func (d *Dispatcher) buildTray(db *database.Database, rule *objects.NotificationRule, msg *objects.NotificationMessage) (*Tray, error) {
	var (
		err error
		cnt int64
	)

	if cnt, err = db.MessageCountUnreadByRule(rule.ID); err != nil {
		d.log.Printf("[ERROR] Cannot count unread Messages for Rule %d: %s\n",
			rule.ID,
			err.Error())
		return nil, err
	}

	var tray = &Tray{Key: rule.NotificationKey()}

	switch cnt {
	case 0:
		// The message at hand has not been seen yet, so this cannot
		// happen unless another connection marked it seen in between.
		fallthrough
	case 1:
		var single = msg

		if cnt == 1 {
			var m2 *objects.NotificationMessage
			if m2, err = db.MessageGetUnreadByRule(rule.ID); err != nil {
				d.log.Printf("[ERROR] Cannot load unread Message for Rule %d: %s\n",
					rule.ID,
					err.Error())
				return nil, err
			} else if m2 != nil {
				single = m2
			}
		}

		if single == nil {
			// Another connection marked the message seen in between.
			return nil, fmt.Errorf("Rule %d has no unread message left",
				rule.ID)
		}

		tray.Title = single.Title
		tray.Body = single.Message
		tray.Target = TargetMessageDetail
		tray.TargetID = single.ID
	default:
		tray.Title = rule.Title
		tray.Body = fmt.Sprintf(d.pref.DigestFormat(), cnt)
		tray.Target = TargetMessageList
		tray.TargetID = rule.ID
	}

	return tray, nil
} // func (d *Dispatcher) buildTray(...) (*Tray, error)

// HandleUpdate refreshes the tray notification for the given rule
// after its messages changed, without firing any of the one-shot
// effects. With no unread messages left, the notification is removed.
func (d *Dispatcher) HandleUpdate(ruleID int64) {
	var (
		err  error
		db   *database.Database
		rule *objects.NotificationRule
		cnt  int64
	)

	db = d.pool.Get()
	defer d.pool.Put(db)

	if rule, err = db.RuleGetByID(ruleID); err != nil {
		d.log.Printf("[ERROR] Cannot load Rule %d: %s\n",
			ruleID,
			err.Error())
		return
	} else if rule == nil {
		// The rule is gone, we have no way to know which slot its
		// notification occupied.
		if err = d.pres.CancelAll(); err != nil {
			d.log.Printf("[WARN] Cannot cancel notifications: %s\n",
				err.Error())
		}
		return
	} else if cnt, err = db.MessageCountUnreadByRule(ruleID); err != nil {
		d.log.Printf("[ERROR] Cannot count unread Messages for Rule %d: %s\n",
			ruleID,
			err.Error())
		return
	}

	if cnt == 0 {
		if err = d.pres.CancelNotification(rule.NotificationKey()); err != nil {
			d.log.Printf("[WARN] Cannot cancel notification for Rule %d: %s\n",
				ruleID,
				err.Error())
		}
		return
	}

	var tray *Tray

	if tray, err = d.buildTray(db, rule, nil); err != nil {
		return
	}

	tray.Vibrate = false
	tray.LedFlash = false

	if err = d.pres.PostNotification(tray); err != nil {
		d.log.Printf("[WARN] Cannot post notification for Rule %d: %s\n",
			ruleID,
			err.Error())
	}
} // func (d *Dispatcher) HandleUpdate(ruleID int64)

// HandleUpdateAll removes all tray notifications, e.g. after all
// messages were marked seen at once.
func (d *Dispatcher) HandleUpdateAll() {
	if err := d.pres.CancelAll(); err != nil {
		d.log.Printf("[WARN] Cannot cancel notifications: %s\n",
			err.Error())
	}
} // func (d *Dispatcher) HandleUpdateAll()

// DropRule removes the tray notification for a rule that is being
// deleted.
func (d *Dispatcher) DropRule(key int32) {
	if err := d.pres.CancelNotification(key); err != nil {
		d.log.Printf("[WARN] Cannot cancel notification %d: %s\n",
			key,
			err.Error())
	}
} // func (d *Dispatcher) DropRule(key int32)
