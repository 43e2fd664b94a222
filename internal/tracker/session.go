package tracker

// Start turns recording on and connects the socket.
func (c *Client) Start() {
	if !c.ready("start") {
		return
	}
	c.bundle.Session.SetRecord(true)
	if err := c.bundle.Socket.Connect(); err != nil {
		c.logger.Warn().Err(err).Msg("socket connect failed")
	}
}

// Started reports whether recording is on. Defaults to false.
func (c *Client) Started() bool {
	return gate(c, "started", false, c.bundle.Session.Record)
}

// ID returns the current session identifier. Defaults to IDPending.
func (c *Client) ID() IDResult {
	return gate(c, "id", IDResult{Kind: IDPending}, c.sessionID)
}

func (c *Client) sessionID() IDResult {
	id, ok := c.bundle.Session.SessionID()
	switch {
	case !ok:
		return IDResult{Kind: IDNone}
	case id == "":
		return IDResult{Kind: IDPending}
	default:
		return IDResult{Kind: IDActive, Value: id}
	}
}
