// /home/krylon/go/src/github.com/blicero/ealarmd/backend/presenter.go
// -*- mode: go; coding: utf-8; -*-
// Created on 26. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-27 20:41:07 krylon>

package backend

import (
	"fmt"
	"log"
	"os/exec"
	"sync"

	"github.com/blicero/ealarmd/common"
	"github.com/blicero/ealarmd/dispatch"
	"github.com/blicero/ealarmd/logdomain"
	"github.com/godbus/dbus/v5"
)

const (
	notifyObj    = "org.freedesktop.Notifications"
	notifyPath   = "/org/freedesktop/Notifications"
	notifyMethod = "org.freedesktop.Notifications.Notify"
	closeMethod  = "org.freedesktop.Notifications.CloseNotification"
	toastTimeout = 5000 // milliseconds
)

// DBusPresenter delivers notifications via the desktop notification
// service on the DBus session bus.
type DBusPresenter struct {
	log  *log.Logger
	bus  *dbus.Conn
	addr string
	lock sync.Mutex
	ids  map[int32]uint32
}

// NewDBusPresenter connects to the session bus. addr is the address
// the daemon's web server listens on, used to build message URLs.
func NewDBusPresenter(addr string) (*DBusPresenter, error) {
	var (
		err error
		p   = &DBusPresenter{
			addr: addr,
			ids:  make(map[int32]uint32),
		}
	)

	if p.log, err = common.GetLogger(logdomain.Backend); err != nil {
		return nil, err
	} else if p.bus, err = dbus.SessionBus(); err != nil {
		p.log.Printf("[ERROR] Failed to connect to DBus session bus: %s\n",
			err.Error())
		return nil, err
	}

	return p, nil
} // func NewDBusPresenter(addr string) (*DBusPresenter, error)

// ShowToast displays a short-lived notification that does not replace
// or occupy a tray slot.
func (p *DBusPresenter) ShowToast(msg string) error {
	var obj = p.bus.Object(notifyObj, notifyPath)

	var res = obj.Call(
		notifyMethod,
		0,
		common.AppName,
		uint32(0),
		"",
		common.AppName,
		msg,
		[]string{},
		map[string]dbus.Variant{
			"transient": dbus.MakeVariant(true),
		},
		int32(toastTimeout),
	)

	if res.Err != nil {
		p.log.Printf("[ERROR] Cannot show toast: %s\n",
			res.Err.Error())
		return res.Err
	}

	return nil
} // func (p *DBusPresenter) ShowToast(msg string) error

// PostNotification posts a tray notification. Posting again with the
// same key replaces the previous notification in place.
func (p *DBusPresenter) PostNotification(t *dispatch.Tray) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	var (
		obj      = p.bus.Object(notifyObj, notifyPath)
		replaces = p.ids[t.Key]
		hints    = make(map[string]dbus.Variant, 2)
	)

	if t.Vibrate || t.LedFlash {
		hints["urgency"] = dbus.MakeVariant(uint8(2))
	}

	var res = obj.Call(
		notifyMethod,
		0,
		common.AppName,
		replaces,
		"",
		t.Title,
		t.Body,
		[]string{},
		hints,
		int32(0),
	)

	if res.Err != nil {
		p.log.Printf("[ERROR] Cannot post notification %q: %s\n",
			t.Title,
			res.Err.Error())
		return res.Err
	}

	var id uint32

	if err := res.Store(&id); err != nil {
		p.log.Printf("[ERROR] Cannot get notification ID: %s\n",
			err.Error())
		return err
	}

	p.ids[t.Key] = id
	return nil
} // func (p *DBusPresenter) PostNotification(t *dispatch.Tray) error

// CancelNotification removes the tray notification in the given slot.
// Cancelling a slot that holds no notification is a no-op.
func (p *DBusPresenter) CancelNotification(key int32) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	var id, ok = p.ids[key]
	if !ok {
		return nil
	}

	var (
		obj = p.bus.Object(notifyObj, notifyPath)
		res = obj.Call(closeMethod, 0, id)
	)

	if res.Err != nil {
		p.log.Printf("[ERROR] Cannot close notification %d: %s\n",
			id,
			res.Err.Error())
		return res.Err
	}

	delete(p.ids, key)
	return nil
} // func (p *DBusPresenter) CancelNotification(key int32) error

// CancelAll removes all tray notifications this presenter posted.
func (p *DBusPresenter) CancelAll() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	var (
		err error
		obj = p.bus.Object(notifyObj, notifyPath)
	)

	for key, id := range p.ids {
		if res := obj.Call(closeMethod, 0, id); res.Err != nil {
			p.log.Printf("[ERROR] Cannot close notification %d: %s\n",
				id,
				res.Err.Error())
			err = res.Err
			continue
		}
		delete(p.ids, key)
	}

	return err
} // func (p *DBusPresenter) CancelAll() error

// Speak reads the given text aloud via the speech dispatcher.
func (p *DBusPresenter) Speak(msg string) error {
	var cmd = exec.Command("spd-say", "--wait", msg)

	if err := cmd.Run(); err != nil {
		p.log.Printf("[ERROR] Cannot speak message: %s\n",
			err.Error())
		return err
	}

	return nil
} // func (p *DBusPresenter) Speak(msg string) error

// LaunchDetail opens the detail view of the given message in the
// user's browser. There is no screen lock to bypass on a desktop, so
// bypassLock is merely noted.
func (p *DBusPresenter) LaunchDetail(messageID int64, bypassLock bool) error {
	if bypassLock {
		p.log.Printf("[DEBUG] Ignoring bypassLock for Message %d\n",
			messageID)
	}

	var url = fmt.Sprintf("http://%s/message/%d/view",
		p.addr,
		messageID)

	var cmd = exec.Command("xdg-open", url)

	if err := cmd.Start(); err != nil {
		p.log.Printf("[ERROR] Cannot open Message %d: %s\n",
			messageID,
			err.Error())
		return err
	}

	go cmd.Wait() // nolint: errcheck

	return nil
} // func (p *DBusPresenter) LaunchDetail(messageID int64, bypassLock bool) error
