// /home/krylon/go/src/github.com/blicero/ealarmd/prefs/prefs.go
// -*- mode: go; coding: utf-8; -*-
// Created on 18. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-24 18:33:52 krylon>

// Package prefs manages the global notification preferences. When a
// rule defers to the global settings, the values kept here decide
// which effects fire.
package prefs

import (
	"log"
	"os"
	"sync"

	"github.com/blicero/ealarmd/common"
	"github.com/blicero/ealarmd/logdomain"
	"github.com/blicero/ealarmd/objects/effect"
	"github.com/spf13/viper"
)

var effectKeys = map[effect.ID]string{
	effect.Open:            "open",
	effect.Unlock:          "unlock",
	effect.Toast:           "toast",
	effect.Ringtone:        "ringtone",
	effect.Vibrate:         "vibrate",
	effect.LedFlash:        "led_flash",
	effect.SpeakMessage:    "speak_message",
	effect.OverwriteSystem: "overwrite_system",
}

// Prefs is the set of global notification preferences, backed by a
// YAML file. It is safe for concurrent use.
type Prefs struct {
	log  *log.Logger
	lock sync.RWMutex
	v    *viper.Viper
}

// Open loads the preferences from the default path. A missing file is
// not an error, the defaults apply in that case.
func Open() (*Prefs, error) {
	var (
		err error
		p   = &Prefs{
			v: viper.New(),
		}
	)

	if p.log, err = common.GetLogger(logdomain.Prefs); err != nil {
		return nil, err
	}

	p.v.SetConfigFile(common.PrefsPath)
	p.v.SetConfigType("yaml")

	p.v.SetDefault("master_enable", true)
	p.v.SetDefault("toast", true)
	p.v.SetDefault("ringtone", true)
	p.v.SetDefault("vibrate", true)
	p.v.SetDefault("led_flash", true)
	p.v.SetDefault("speak_message", false)
	p.v.SetDefault("overwrite_system", false)
	p.v.SetDefault("open", false)
	p.v.SetDefault("unlock", false)
	p.v.SetDefault("ringtone_uri", "")
	p.v.SetDefault("speak_template", "%t: %m")
	p.v.SetDefault("digest_format", "%d new alerts")

	if err = p.v.ReadInConfig(); err != nil {
		switch err.(type) {
		case *os.PathError, viper.ConfigFileNotFoundError:
			p.log.Printf("[INFO] No preferences file at %s, using defaults\n",
				common.PrefsPath)
		default:
			p.log.Printf("[ERROR] Cannot read preferences from %s: %s\n",
				common.PrefsPath,
				err.Error())
			return nil, err
		}
	}

	return p, nil
} // func Open() (*Prefs, error)

// MasterEnable returns the global on/off switch. If it is off, no
// notifications are delivered at all.
func (p *Prefs) MasterEnable() bool {
	p.lock.RLock()
	defer p.lock.RUnlock()
	return p.v.GetBool("master_enable")
} // func (p *Prefs) MasterEnable() bool

// EffectDefault returns the global setting for the given effect.
func (p *Prefs) EffectDefault(e effect.ID) bool {
	p.lock.RLock()
	defer p.lock.RUnlock()

	var key, ok = effectKeys[e]
	if !ok {
		p.log.Printf("[CANTHAPPEN] Unknown effect %s\n", e)
		return false
	}

	return p.v.GetBool(key)
} // func (p *Prefs) EffectDefault(e effect.ID) bool

// RingtoneURI returns the globally configured alert sound.
func (p *Prefs) RingtoneURI() string {
	p.lock.RLock()
	defer p.lock.RUnlock()
	return p.v.GetString("ringtone_uri")
} // func (p *Prefs) RingtoneURI() string

// SpeakTemplate returns the template used to render spoken alerts.
func (p *Prefs) SpeakTemplate() string {
	p.lock.RLock()
	defer p.lock.RUnlock()
	return p.v.GetString("speak_template")
} // func (p *Prefs) SpeakTemplate() string

// DigestFormat returns the format string for the unread-count digest,
// e.g. "%d new alerts".
func (p *Prefs) DigestFormat() string {
	p.lock.RLock()
	defer p.lock.RUnlock()
	return p.v.GetString("digest_format")
} // func (p *Prefs) DigestFormat() string

// SetMasterEnable sets the global on/off switch.
func (p *Prefs) SetMasterEnable(on bool) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.v.Set("master_enable", on)
} // func (p *Prefs) SetMasterEnable(on bool)

// SetEffectDefault sets the global setting for the given effect.
func (p *Prefs) SetEffectDefault(e effect.ID, on bool) {
	p.lock.Lock()
	defer p.lock.Unlock()

	var key, ok = effectKeys[e]
	if !ok {
		p.log.Printf("[CANTHAPPEN] Unknown effect %s\n", e)
		return
	}

	p.v.Set(key, on)
} // func (p *Prefs) SetEffectDefault(e effect.ID, on bool)

// SetRingtoneURI sets the globally configured alert sound.
func (p *Prefs) SetRingtoneURI(uri string) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.v.Set("ringtone_uri", uri)
} // func (p *Prefs) SetRingtoneURI(uri string)

// Save writes the preferences back to disk.
func (p *Prefs) Save() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	var err error

	if err = p.v.WriteConfigAs(common.PrefsPath); err != nil {
		p.log.Printf("[ERROR] Cannot write preferences to %s: %s\n",
			common.PrefsPath,
			err.Error())
		return err
	}

	return nil
} // func (p *Prefs) Save() error
