package pipewire

import "time"

// SyncCore starts a sync on the core object for seq. The returned value is
// whatever the library returns: the sequence number to expect in the done
// event, or a negative errno, which is also returned as an Errno. SyncCore
// does not wait; see Session.Roundtrip.
//
// loop is checked but not used.
func (c *Client) SyncCore(core Core, loop ThreadLoop, seq int) (res int, err error) {
	start := time.Now()
	defer func() { c.observe("sync_core", start, err) }()

	if core.IsNil() || loop.IsNil() {
		return ErrInvalidArgument.Code(), ErrInvalidArgument
	}

	res = c.lib.CoreSync(core, IDCore, seq)
	c.logger.Debug("core sync", "seq", seq, "res", res)
	return res, resultError(res)
}
