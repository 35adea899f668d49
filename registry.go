package pipewire

import "time"

// DestroyRegistry destroys the registry proxy. A nil registry is ignored.
func (c *Client) DestroyRegistry(registry Registry) {
	if registry.IsNil() {
		return
	}
	start := time.Now()
	c.lib.ProxyDestroy(registry.Proxy())
	c.observe("destroy_registry", start, nil)
}

// DestroyProxy destroys any proxy, such as one returned by CreateLinkProxy.
// A nil proxy is ignored.
func (c *Client) DestroyProxy(proxy Proxy) {
	if proxy.IsNil() {
		return
	}
	start := time.Now()
	c.lib.ProxyDestroy(proxy)
	c.observe("destroy_proxy", start, nil)
}

// GetRegistry returns the registry of core.
func (c *Client) GetRegistry(core Core) (reg Registry, err error) {
	start := time.Now()
	defer func() { c.observe("get_registry", start, err) }()

	if core.IsNil() {
		return 0, ErrInvalidArgument
	}
	reg = c.lib.CoreGetRegistry(core, VersionRegistry)
	if reg.IsNil() {
		return 0, ErrIO
	}
	return reg, nil
}
