// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ccm

// Kicker is the watchdog collaborator. Kick is called once per associated
// data block while a frame is verified, so long headers do not trip a
// hardware watchdog timer.
type Kicker interface {
	Kick()
}

// KickerFunc adapts an ordinary function to a Kicker.
type KickerFunc func()

// Kick calls f.
func (f KickerFunc) Kick() { f() }

type nopKicker struct{}

func (nopKicker) Kick() {}
