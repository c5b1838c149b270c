package immich

// ClientDiagnostics holds the information from the call to [Diagnostics].
type ClientDiagnostics struct {
	MemoConfigured       bool
	RemoteConfigured     bool
	RemoteConnectedError error
}

// Diagnostics reports how the client is configured and checks if the remote is connected.
func (c Client) Diagnostics() ClientDiagnostics {
	_, memoIsNoop := c.memo.(noopClient)
	_, remoteIsNoop := c.remote.(noopClient)
	return ClientDiagnostics{
		MemoConfigured:       !memoIsNoop,
		RemoteConfigured:     !remoteIsNoop,
		RemoteConnectedError: c.remote.IsConnected(),
	}
}
