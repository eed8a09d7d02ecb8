// /home/krylon/go/src/github.com/blicero/ealarmd/dispatch/01_dispatch_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 22. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-25 20:31:44 krylon>

package dispatch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/blicero/ealarmd/common"
	"github.com/blicero/ealarmd/database"
	"github.com/blicero/ealarmd/objects"
	"github.com/blicero/ealarmd/objects/effect"
	"github.com/blicero/ealarmd/prefs"
)

type fakePresenter struct {
	// Speaking happens on its own goroutine, so access is locked.
	lock      sync.Mutex
	toasts    []string
	trays     []Tray
	cancelled []int32
	cancelAll int
	spoken    []string
	launched  []int64
	bypass    []bool
}

func (f *fakePresenter) reset() {
	f.lock.Lock()
	f.toasts = nil
	f.trays = nil
	f.cancelled = nil
	f.cancelAll = 0
	f.spoken = nil
	f.launched = nil
	f.bypass = nil
	f.lock.Unlock()
} // func (f *fakePresenter) reset()

func (f *fakePresenter) spokenMsgs() []string {
	f.lock.Lock()
	var s = make([]string, len(f.spoken))
	copy(s, f.spoken)
	f.lock.Unlock()
	return s
} // func (f *fakePresenter) spokenMsgs() []string

func (f *fakePresenter) ShowToast(msg string) error {
	f.toasts = append(f.toasts, msg)
	return nil
} // func (f *fakePresenter) ShowToast(msg string) error

func (f *fakePresenter) PostNotification(t *Tray) error {
	f.trays = append(f.trays, *t)
	return nil
} // func (f *fakePresenter) PostNotification(t *Tray) error

func (f *fakePresenter) CancelNotification(key int32) error {
	f.cancelled = append(f.cancelled, key)
	return nil
} // func (f *fakePresenter) CancelNotification(key int32) error

func (f *fakePresenter) CancelAll() error {
	f.cancelAll++
	return nil
} // func (f *fakePresenter) CancelAll() error

func (f *fakePresenter) Speak(msg string) error {
	f.lock.Lock()
	f.spoken = append(f.spoken, msg)
	f.lock.Unlock()
	return nil
} // func (f *fakePresenter) Speak(msg string) error

func (f *fakePresenter) LaunchDetail(messageID int64, bypassLock bool) error {
	f.launched = append(f.launched, messageID)
	f.bypass = append(f.bypass, bypassLock)
	return nil
} // func (f *fakePresenter) LaunchDetail(messageID int64, bypassLock bool) error

type fakeSink struct {
	vol    int
	mode   int
	played []string
}

func (f *fakeSink) Volume() (int, error)         { return f.vol, nil }
func (f *fakeSink) SetVolume(vol int) error      { f.vol = vol; return nil }
func (f *fakeSink) MaxVolume() int               { return 100 }
func (f *fakeSink) RingerMode() (int, error)     { return f.mode, nil }
func (f *fakeSink) SetRingerMode(mode int) error { f.mode = mode; return nil }
func (f *fakeSink) Stop() error                  { return nil }

func (f *fakeSink) Play(uri string) (<-chan error, error) {
	f.played = append(f.played, uri)
	var ch = make(chan error, 1)
	ch <- nil
	close(ch)
	return ch, nil
} // func (f *fakeSink) Play(uri string) (<-chan error, error)

var (
	pool *database.Pool
	pref *prefs.Prefs
	pres *fakePresenter
	sink *fakeSink
	disp *Dispatcher
)

func TestMain(m *testing.M) {
	var (
		err     error
		result  int
		baseDir = filepath.Join(
			os.TempDir(),
			fmt.Sprintf("ealarmd_dispatch_test_%d",
				time.Now().Unix()))
	)

	if err = common.SetBaseDir(baseDir); err != nil {
		fmt.Printf("Cannot set base directory to %s: %s\n",
			baseDir,
			err.Error())
		os.Exit(1)
	}

	result = m.Run()

	os.RemoveAll(baseDir) // nolint: errcheck

	os.Exit(result)
} // func TestMain(m *testing.M)

func addMessage(t *testing.T, db *database.Database, r *objects.NotificationRule, title, body string) *objects.NotificationMessage {
	t.Helper()

	var m = &objects.NotificationMessage{
		RuleID:    r.ID,
		Title:     title,
		Message:   body,
		Timestamp: time.Now().In(time.UTC).Format(common.TimestampFormatMessage),
		Content:   map[string]string{},
		UUID:      common.GetUUID(),
	}

	if err := db.MessageAdd(m); err != nil {
		t.Fatalf("Cannot add Message %q: %s",
			title,
			err.Error())
	}

	return m
} // func addMessage(...)

func TestDispatcherCreate(t *testing.T) {
	var err error

	if pool, err = database.NewPool(2); err != nil {
		t.Fatalf("Cannot create database pool: %s",
			err.Error())
	} else if pref, err = prefs.Open(); err != nil {
		t.Fatalf("Cannot open preferences: %s",
			err.Error())
	}

	pres = &fakePresenter{}
	sink = &fakeSink{vol: 30, mode: 1}

	if disp, err = New(pool, pref, pres, sink); err != nil {
		t.Fatalf("Cannot create Dispatcher: %s",
			err.Error())
	}
} // func TestDispatcherCreate(t *testing.T)

func TestMasterEnableOff(t *testing.T) {
	if disp == nil {
		t.SkipNow()
	}

	var (
		err error
		db  = pool.Get()
		r   = &objects.NotificationRule{
			Title:                 "Fire alarm",
			LocalEnabled:          true,
			UseGlobalNotification: true,
			StartTime:             "00:00",
			StopTime:              "23:59",
			UUID:                  common.GetUUID(),
		}
	)

	if err = db.RuleAdd(r); err != nil {
		pool.Put(db)
		t.Fatalf("Cannot add Rule: %s", err.Error())
	}

	var m = addMessage(t, db, r, "Fire", "123 Main St")
	pool.Put(db)

	pref.SetMasterEnable(false)
	disp.HandleNotification(m.ID)
	pref.SetMasterEnable(true)

	if len(pres.toasts) != 0 || len(pres.trays) != 0 || len(pres.spokenMsgs()) != 0 {
		t.Errorf("Dispatcher delivered a notification while the master switch was off: %#v",
			pres)
	}
} // func TestMasterEnableOff(t *testing.T)

func TestSingleMessage(t *testing.T) {
	if disp == nil {
		t.SkipNow()
	}

	var (
		err error
		db  = pool.Get()
		r   = &objects.NotificationRule{
			Title:                 "Burglary",
			LocalEnabled:          true,
			UseGlobalNotification: true,
			StartTime:             "00:00",
			StopTime:              "23:59",
			UUID:                  common.GetUUID(),
		}
	)

	if err = db.RuleAdd(r); err != nil {
		pool.Put(db)
		t.Fatalf("Cannot add Rule: %s", err.Error())
	}

	var m = addMessage(t, db, r, "Fire", "123 Main St")
	pool.Put(db)

	pres.reset()
	disp.HandleNotification(m.ID)

	if len(pres.toasts) != 1 {
		t.Fatalf("Expected 1 toast, got %d",
			len(pres.toasts))
	} else if pres.toasts[0] != "Fire:\n123 Main St" {
		t.Errorf("Unexpected toast: %q",
			pres.toasts[0])
	} else if len(pres.trays) != 1 {
		t.Fatalf("Expected 1 tray notification, got %d",
			len(pres.trays))
	}

	var tray = pres.trays[0]

	if tray.Title != "Fire" || tray.Body != "123 Main St" {
		t.Errorf("Unexpected tray content: %q / %q",
			tray.Title,
			tray.Body)
	} else if tray.Target != TargetMessageDetail || tray.TargetID != m.ID {
		t.Errorf("Tray should open Message %d, opens %v/%d instead",
			m.ID,
			tray.Target,
			tray.TargetID)
	} else if tray.Key != r.NotificationKey() {
		t.Errorf("Tray has the wrong key: %d (expected %d)",
			tray.Key,
			r.NotificationKey())
	} else if !tray.Vibrate {
		t.Error("Vibrate defaults to on globally, tray says off")
	}

	if spoken := pres.spokenMsgs(); len(spoken) != 0 {
		t.Errorf("SpeakMessage is off globally, yet something was spoken: %#v",
			spoken)
	}
} // func TestSingleMessage(t *testing.T)

func TestOverrideWins(t *testing.T) {
	if disp == nil {
		t.SkipNow()
	}

	// The rule overrides the global settings, so its own flags must
	// count, not the global ones.
	var (
		err error
		db  = pool.Get()
		r   = &objects.NotificationRule{
			Title:                 "Water damage",
			LocalEnabled:          true,
			UseGlobalNotification: false,
			Vibrate:               true,
			Toast:                 false,
			StartTime:             "00:00",
			StopTime:              "23:59",
			UUID:                  common.GetUUID(),
		}
	)

	if err = db.RuleAdd(r); err != nil {
		pool.Put(db)
		t.Fatalf("Cannot add Rule: %s", err.Error())
	}

	var m = addMessage(t, db, r, "Leak", "Basement")
	pool.Put(db)

	pref.SetEffectDefault(effect.Vibrate, false)
	defer pref.SetEffectDefault(effect.Vibrate, true)

	pres.reset()
	disp.HandleNotification(m.ID)

	if len(pres.toasts) != 0 {
		t.Errorf("Toast is off for this rule, got %d toasts",
			len(pres.toasts))
	} else if len(pres.trays) != 1 {
		t.Fatalf("Expected 1 tray notification, got %d",
			len(pres.trays))
	} else if !pres.trays[0].Vibrate {
		t.Error("Rule says vibrate, tray says off")
	}
} // func TestOverrideWins(t *testing.T)

func TestDigest(t *testing.T) {
	if disp == nil {
		t.SkipNow()
	}

	var (
		err error
		db  = pool.Get()
		r   = &objects.NotificationRule{
			Title:                 "Server room",
			LocalEnabled:          true,
			UseGlobalNotification: true,
			StartTime:             "00:00",
			StopTime:              "23:59",
			UUID:                  common.GetUUID(),
		}
	)

	if err = db.RuleAdd(r); err != nil {
		pool.Put(db)
		t.Fatalf("Cannot add Rule: %s", err.Error())
	}

	addMessage(t, db, r, "Temp", "28 C")
	addMessage(t, db, r, "Temp", "30 C")
	var m = addMessage(t, db, r, "Temp", "33 C")
	pool.Put(db)

	pres.reset()
	disp.HandleNotification(m.ID)

	if len(pres.trays) != 1 {
		t.Fatalf("Expected 1 tray notification, got %d",
			len(pres.trays))
	}

	var tray = pres.trays[0]

	if tray.Title != "Server room" {
		t.Errorf("Digest tray should carry the rule title, got %q",
			tray.Title)
	} else if tray.Body != "3 new alerts" {
		t.Errorf("Unexpected digest: %q",
			tray.Body)
	} else if tray.Target != TargetMessageList || tray.TargetID != r.ID {
		t.Errorf("Digest tray should open the message list of Rule %d, opens %v/%d",
			r.ID,
			tray.Target,
			tray.TargetID)
	}

	// Marking everything seen and updating removes the notification,
	// doing it again is harmless.
	var db2 = pool.Get()
	if err = db2.MessageMarkAllSeenByRule(r.ID); err != nil {
		pool.Put(db2)
		t.Fatalf("Cannot mark Messages seen: %s", err.Error())
	}
	pool.Put(db2)

	pres.reset()
	disp.HandleUpdate(r.ID)
	disp.HandleUpdate(r.ID)

	if len(pres.cancelled) != 2 {
		t.Errorf("Expected 2 cancellations, got %d",
			len(pres.cancelled))
	} else if pres.cancelled[0] != r.NotificationKey() {
		t.Errorf("Cancelled the wrong notification: %d (expected %d)",
			pres.cancelled[0],
			r.NotificationKey())
	}

	if len(pres.trays) != 0 || len(pres.toasts) != 0 {
		t.Error("HandleUpdate should not re-deliver anything when nothing is unread")
	}
} // func TestDigest(t *testing.T)

func TestUpdateReposts(t *testing.T) {
	if disp == nil {
		t.SkipNow()
	}

	var (
		err error
		db  = pool.Get()
		r   = &objects.NotificationRule{
			Title:                 "Front door",
			LocalEnabled:          true,
			UseGlobalNotification: true,
			StartTime:             "00:00",
			StopTime:              "23:59",
			UUID:                  common.GetUUID(),
		}
	)

	if err = db.RuleAdd(r); err != nil {
		pool.Put(db)
		t.Fatalf("Cannot add Rule: %s", err.Error())
	}

	var m1 = addMessage(t, db, r, "Door", "opened")
	addMessage(t, db, r, "Door", "opened again")
	pool.Put(db)

	var db2 = pool.Get()
	if err = db2.MessageMarkSeen(m1.ID); err != nil {
		pool.Put(db2)
		t.Fatalf("Cannot mark Message seen: %s", err.Error())
	}
	pool.Put(db2)

	pres.reset()
	disp.HandleUpdate(r.ID)

	if len(pres.toasts) != 0 {
		t.Error("HandleUpdate must not show a toast")
	} else if len(pres.trays) != 1 {
		t.Fatalf("Expected 1 tray notification, got %d",
			len(pres.trays))
	} else if pres.trays[0].Title != "Door" || pres.trays[0].Body != "opened again" {
		t.Errorf("Unexpected tray content: %q / %q",
			pres.trays[0].Title,
			pres.trays[0].Body)
	} else if pres.trays[0].Vibrate {
		t.Error("A refreshed tray notification must not vibrate")
	}
} // func TestUpdateReposts(t *testing.T)

func TestRingtone(t *testing.T) {
	if disp == nil {
		t.SkipNow()
	}

	var (
		err error
		db  = pool.Get()
		r   = &objects.NotificationRule{
			Title:                 "Siren test",
			LocalEnabled:          true,
			UseGlobalNotification: false,
			Ringtone:              true,
			CustomRingtone:        "file:///usr/share/sounds/siren.ogg",
			StartTime:             "00:00",
			StopTime:              "23:59",
			UUID:                  common.GetUUID(),
		}
	)

	if err = db.RuleAdd(r); err != nil {
		pool.Put(db)
		t.Fatalf("Cannot add Rule: %s", err.Error())
	}

	var m = addMessage(t, db, r, "Siren", "wailing")
	pool.Put(db)

	pres.reset()
	sink.played = nil
	disp.HandleNotification(m.ID)

	if len(sink.played) != 1 {
		t.Fatalf("Expected 1 sound to be played, got %d",
			len(sink.played))
	} else if sink.played[0] != r.CustomRingtone {
		t.Errorf("Wrong sound was played: %q (expected %q)",
			sink.played[0],
			r.CustomRingtone)
	}

	if len(pres.toasts) != 0 {
		t.Errorf("Toast is off for this rule, got %d toasts",
			len(pres.toasts))
	}
} // func TestRingtone(t *testing.T)

func TestOpen(t *testing.T) {
	if disp == nil {
		t.SkipNow()
	}

	var (
		err error
		db  = pool.Get()
		r   = &objects.NotificationRule{
			Title:                 "Panic button",
			LocalEnabled:          true,
			UseGlobalNotification: false,
			Open:                  true,
			Unlock:                true,
			Toast:                 true,
			StartTime:             "00:00",
			StopTime:              "23:59",
			UUID:                  common.GetUUID(),
		}
	)

	if err = db.RuleAdd(r); err != nil {
		pool.Put(db)
		t.Fatalf("Cannot add Rule: %s", err.Error())
	}

	var m = addMessage(t, db, r, "Panic", "Help")
	pool.Put(db)

	pres.reset()
	disp.HandleNotification(m.ID)

	if len(pres.launched) != 1 {
		t.Fatalf("Expected the message detail view to open once, got %d",
			len(pres.launched))
	} else if pres.launched[0] != m.ID {
		t.Errorf("Opened the wrong Message: %d (expected %d)",
			pres.launched[0],
			m.ID)
	} else if !pres.bypass[0] {
		t.Error("Unlock is set on the rule, detail view opened without it")
	}

	// Opening the detail view replaces the toast, it does not add one.
	if len(pres.toasts) != 0 {
		t.Errorf("Expected no toast, got %d",
			len(pres.toasts))
	}
} // func TestOpen(t *testing.T)

func TestSpeak(t *testing.T) {
	if disp == nil {
		t.SkipNow()
	}

	var (
		err error
		db  = pool.Get()
		r   = &objects.NotificationRule{
			Title:                 "Announcements",
			LocalEnabled:          true,
			UseGlobalNotification: false,
			SpeakMessage:          true,
			StartTime:             "00:00",
			StopTime:              "23:59",
			UUID:                  common.GetUUID(),
		}
	)

	if err = db.RuleAdd(r); err != nil {
		pool.Put(db)
		t.Fatalf("Cannot add Rule: %s", err.Error())
	}

	var m = addMessage(t, db, r, "Visitor", "at the gate")
	pool.Put(db)

	pres.reset()
	disp.HandleNotification(m.ID)

	// Speaking runs on its own goroutine.
	var (
		spoken   []string
		deadline = time.Now().Add(time.Second * 5)
	)

	for time.Now().Before(deadline) {
		if spoken = pres.spokenMsgs(); len(spoken) > 0 {
			break
		}
		time.Sleep(time.Millisecond * 10)
	}

	if len(spoken) != 1 {
		t.Fatalf("Expected 1 spoken message, got %d",
			len(spoken))
	} else if spoken[0] != "Visitor: at the gate" {
		t.Errorf("Unexpected speech output: %q",
			spoken[0])
	}
} // func TestSpeak(t *testing.T)
