package domain

import (
	"strings"
	"time"
)

// Profile is the social-graph projection of a Farcaster account. Read-only;
// this system never mutates it.
type Profile struct {
	FID               int64    `json:"fid"`
	Username          string   `json:"username"`
	DisplayName       string   `json:"displayName"`
	PfpURL            string   `json:"pfpUrl"`
	CustodyAddress    string   `json:"custodyAddress"`
	VerifiedAddresses []string `json:"verifiedAddresses"`
	NeynarScore       float64  `json:"neynarScore"`
}

// PaymentAddress picks the address used for external leaderboard sync:
// first verified address, custody address as fallback, empty when neither
// is known.
func (p Profile) PaymentAddress() string {
	if len(p.VerifiedAddresses) > 0 {
		return p.VerifiedAddresses[0]
	}
	return p.CustodyAddress
}

// Cast is a single post as seen on the social graph.
type Cast struct {
	Hash      string    `json:"hash"`
	AuthorFID int64     `json:"authorFid"`
	Text      string    `json:"text"`
	ChannelID string    `json:"channelId"`
	ParentURL string    `json:"parentUrl"`
	Timestamp time.Time `json:"timestamp"`
}

// InChannel reports whether the cast belongs to the named channel, either
// by exact channel id or by parent reference.
func (c Cast) InChannel(channel, parentRef string) bool {
	if c.ChannelID == channel {
		return true
	}
	return parentRef != "" && strings.Contains(c.ParentURL, parentRef)
}

// Event is a signal published when leaderboard state changes.
type Event struct {
	Type      string    `json:"type"`
	FID       int64     `json:"fid,omitempty"`
	Body      any       `json:"body,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
