// Package fingerprint derives a short, stable, non-cryptographic identifier for
// "this browser on this device" from weak signals the client reports.
//
// The value is an abuse deterrent for attendance signing. Collisions between
// devices are possible and a match is never proof of identity.
package fingerprint

import (
	"strconv"
	"strings"
	"unicode/utf16"
)

const (
	// Prefix marks values produced by Compute
	Prefix = "fp_"

	// CanvasSampleLen is how much of the canvas data URL tail is kept
	CanvasSampleLen = 50

	delimiter = "|"
)

// Signals are the weak device signals a client can report. Any signal the
// client could not read is left at its zero value.
type Signals struct {
	UserAgent           string `json:"userAgent"`
	Language            string `json:"language"`
	ScreenWidth         int    `json:"screenWidth"`
	ScreenHeight        int    `json:"screenHeight"`
	ColorDepth          int    `json:"colorDepth"`
	TimezoneOffset      int    `json:"timezoneOffset"`
	HardwareConcurrency int    `json:"hardwareConcurrency"`
	Canvas              string `json:"canvas"`
}

// IsZero reports whether no signal at all is available
func (s Signals) IsZero() bool {
	return s == Signals{}
}

// components renders the signals in their fixed order
func (s Signals) components() string {
	canvas := s.Canvas
	if len(canvas) > CanvasSampleLen {
		canvas = canvas[len(canvas)-CanvasSampleLen:]
	}

	cores := ""
	if s.HardwareConcurrency > 0 {
		cores = strconv.Itoa(s.HardwareConcurrency)
	}

	return strings.Join([]string{
		s.UserAgent,
		s.Language,
		strconv.Itoa(s.ScreenWidth) + "x" + strconv.Itoa(s.ScreenHeight),
		strconv.Itoa(s.ColorDepth),
		strconv.Itoa(s.TimezoneOffset),
		cores,
		canvas,
	}, delimiter)
}

// Compute folds the signals into a fingerprint. It never fails; with no
// signals it returns the empty string, meaning "no fingerprint available".
func Compute(s Signals) string {
	if s.IsZero() {
		return ""
	}
	return Prefix + hashString(s.components())
}

// hashString is the 31-multiplier rolling hash over UTF-16 code units,
// wrapped to a signed 32-bit accumulator, rendered as base36 of its
// absolute value. Browsers running the same fold produce the same string.
func hashString(s string) string {
	var h int32
	for _, unit := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(unit)
	}

	v := int64(h)
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 36)
}
