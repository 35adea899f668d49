package pipewire

import "time"

// AddCoreListener registers events with data on core, storing the listener
// record in hook. Arguments are forwarded unchanged.
func (c *Client) AddCoreListener(core Core, hook Hook, events CoreEvents, data uintptr) {
	start := time.Now()
	c.lib.CoreAddListener(core, hook, events, data)
	c.observe("add_core_listener", start, nil)
}

// AddRegistryListener registers events with data on registry, storing the
// listener record in hook. Arguments are forwarded unchanged.
func (c *Client) AddRegistryListener(registry Registry, hook Hook, events RegistryEvents, data uintptr) {
	start := time.Now()
	c.lib.RegistryAddListener(registry, hook, events, data)
	c.observe("add_registry_listener", start, nil)
}
