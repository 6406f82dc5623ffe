package domain

// Session groups the exchanges of one conversation. It is created lazily on
// the first message and never deleted.
type Session struct {
	ID        SessionID
	CreatedAt Timestamp
}

// Exchange is one recorded message/response pair. Exchanges are immutable
// once written; failed exchanges carry the apology text as Response.
type Exchange struct {
	ID        ExchangeID
	SessionID SessionID
	Message   string
	Response  string
	Intent    ActionKind
	Failed    bool
	Timestamp Timestamp
}
