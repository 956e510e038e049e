package rocketsource

// Client is the entry point to the RocketSource API. It composes one
// transport and the per-area services. A Client is safe for concurrent use;
// see SetAPIKey for the one caveat.
type Client struct {
	t *transport

	Scans       *ScansService
	Convert     *ConvertService
	Eligibility *EligibilityService
}

// New creates a client. With no options it targets DefaultBaseURL with
// DefaultTimeout and no credential.
func New(opts ...Option) *Client {
	cfg := &clientConfig{
		baseURL:   DefaultBaseURL,
		timeout:   DefaultTimeout,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	t := newTransport(cfg)
	return &Client{
		t:           t,
		Scans:       &ScansService{t: t},
		Convert:     &ConvertService{t: t},
		Eligibility: &EligibilityService{t: t},
	}
}

// SetAPIKey replaces the bearer credential. Calls already in flight, or
// issued concurrently with the rotation, may use either the old or the new
// key. Callers that need a clean cut-over must quiesce their own calls.
func (c *Client) SetAPIKey(key string) {
	c.t.setAPIKey(key)
}

// APIKey returns the current bearer credential, or "" if none is set.
func (c *Client) APIKey() string {
	return c.t.getAPIKey()
}

// BaseURL returns the API origin the client talks to.
func (c *Client) BaseURL() string {
	return c.t.baseURL
}
