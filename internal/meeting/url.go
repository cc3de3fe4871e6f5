// Package meeting builds the meeting artifacts for one scheduling request:
// the join URL, the immutable event value, and its iCalendar document.
package meeting

import (
	"net/url"
	"strconv"
	"strings"
)

// HostConfig locates the chat platform's web client, which also hosts the
// RTC meeting page.
type HostConfig struct {
	Host string
	Port int
}

// streamToken converts a conversation id into the URL-safe form the web
// client expects: underscores become slashes and the result is right-padded
// with '=' until its length is a multiple of 3. The padding rule mirrors the
// platform's own URL scheme and must match it exactly.
func streamToken(conversationID string) string {
	token := strings.ReplaceAll(conversationID, "_", "/")
	for len(token)%3 != 0 {
		token += "="
	}
	return token
}

// JoinURL derives the meeting join URL for a conversation. It is a pure
// function: the same conversation and host always produce the same URL.
func JoinURL(conversationID string, cfg HostConfig) string {
	q := url.Values{}
	q.Set("v2", "true")
	q.Set("startAudioMuted", "false")
	q.Set("startVideoMuted", "true")
	q.Set("streamId", streamToken(conversationID))

	u := url.URL{
		Scheme:   "https",
		Host:     cfg.Host + ":" + strconv.Itoa(cfg.Port),
		Path:     "/client/rtc.html",
		RawQuery: q.Encode(),
	}
	return u.String()
}
