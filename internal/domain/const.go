package domain

// Farcaster channel whose activity counts toward vote power.
const (
	Channel          = "zao"
	ChannelParentRef = "/zao"
)

// Vote power bounds.
const (
	BasePower = 1
	MaxPower  = 6
)

// Defaults applied when a provider fetch fails (fail-open).
const (
	DefaultReputationScore = 0.5
	CastSampleSize         = 100
)

// Leaderboard limits.
const (
	DefaultLeaderboardLimit = 100
	SyncTopCount            = 50
	ProfileBatchSize        = 100
)

// Leaderboard display config constraints.
const (
	MaxConfigNameLen        = 20
	MaxConfigDescriptionLen = 80
)

// Stream content modes voters choose between.
const (
	ModeStudio = "studio"
	ModeMarket = "market"
	ModeSocial = "social"
	ModeBattle = "battle"
)

// SupportedModes lists every votable mode.
var SupportedModes = []string{ModeStudio, ModeMarket, ModeSocial, ModeBattle}

// Miniapp lifecycle events delivered to the webhook.
const (
	EventMiniappAdded          = "miniapp_added"
	EventMiniappRemoved        = "miniapp_removed"
	EventNotificationsEnabled  = "notifications_enabled"
	EventNotificationsDisabled = "notifications_disabled"
)

// SignalChannel is the redis channel leaderboard events are published to.
const SignalChannel = "zabal:events"
