package tmux

// ClientIface defines the tmux operations used by sessioner.
// Enables mocking in tests without a real tmux server.
type ClientIface interface {
	ListSessions() ([]Session, error)
	ListPanes() ([]Pane, error)
	CurrentSession() (string, error)
	InsideTmux() bool
	ServerRunning() bool
	HasSession(name string) bool
	SwitchClient(name string) error
	NewSession(name, dir string) (string, error)
	SetHook(event, cmd string) error
}

// Client implements ClientIface by shelling out to real tmux commands.
type Client struct{}

// Compile-time check that Client satisfies ClientIface.
var _ ClientIface = (*Client)(nil)

func (c *Client) ListSessions() ([]Session, error)           { return ListSessions() }
func (c *Client) ListPanes() ([]Pane, error)                 { return ListPanes() }
func (c *Client) CurrentSession() (string, error)            { return CurrentSession() }
func (c *Client) InsideTmux() bool                           { return InsideTmux() }
func (c *Client) ServerRunning() bool                        { return ServerRunning() }
func (c *Client) HasSession(name string) bool                { return HasSession(name) }
func (c *Client) SwitchClient(name string) error             { return SwitchClient(name) }
func (c *Client) NewSession(name, dir string) (string, error) { return NewSession(name, dir) }
func (c *Client) SetHook(event, cmd string) error            { return SetHook(event, cmd) }
