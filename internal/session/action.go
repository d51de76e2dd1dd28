// Package session owns the interactive lifetime of a posted reply: it
// routes component interactions to the session that registered them,
// enforces the author-or-manage-messages permission rule, and runs each
// control loop until a terminal action or timeout.
package session

import (
	"strings"
	"time"
)

// Timeouts for the qualifying-event wait of each loop kind.
const (
	ControlTimeout  = 60 * time.Second
	ConfirmTimeout  = 60 * time.Second
	PaginateTimeout = 180 * time.Second
)

// Action is a decoded control activation.
type Action int

const (
	ActionNone Action = iota
	ActionDelete
	ActionHideBody
	ActionNext
	ActionPrev
	ActionConfirm
	ActionCancel
)

// idSeparator splits the session id from the action tag inside a custom
// id. Session ids are Discord snowflakes and can never contain it, so a
// tag cannot collide with another session's prefix.
const idSeparator = ":"

var actionTags = map[Action]string{
	ActionDelete:   "delete",
	ActionHideBody: "hide_body",
	ActionNext:     "next",
	ActionPrev:     "prev",
	ActionConfirm:  "confirm",
	ActionCancel:   "cancel",
}

// CustomID encodes a session id and action into a component custom id.
func CustomID(session string, action Action) string {
	return session + idSeparator + actionTags[action]
}

// Split decodes a custom id. An id without a separator yields no session;
// an unknown tag under a valid session yields ActionNone, which loops
// treat as a no-op.
func Split(customID string) (string, Action) {
	session, tag, ok := strings.Cut(customID, idSeparator)
	if !ok {
		return "", ActionNone
	}
	for action, t := range actionTags {
		if t == tag {
			return session, action
		}
	}
	return session, ActionNone
}
