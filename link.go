package pipewire

import (
	"strconv"
	"time"
)

// LinkProperties returns the properties of a link request from the output
// port outPort of node outNode to the input port inPort of node inNode:
// the four endpoint ids in decimal, object.linger=true and, when passive is
// set, link.passive=true.
func LinkProperties(outNode, outPort, inNode, inPort uint32, passive bool) *Properties {
	props := NewProperties(6)
	props.Set(KeyLinkOutputNode, strconv.FormatUint(uint64(outNode), 10))
	props.Set(KeyLinkOutputPort, strconv.FormatUint(uint64(outPort), 10))
	props.Set(KeyLinkInputNode, strconv.FormatUint(uint64(inNode), 10))
	props.Set(KeyLinkInputPort, strconv.FormatUint(uint64(inPort), 10))
	props.Set(KeyObjectLinger, "true")
	if passive {
		props.Set(KeyLinkPassive, "true")
	}
	return props
}

// CreateLink asks the link factory to connect an output port to an input
// port. The created link lingers after this client disconnects and its
// proxy is not kept; use CreateLinkProxy to keep it.
//
// It returns ErrInvalidArgument for a nil core and ErrIO when the library
// could not create the object.
func (c *Client) CreateLink(core Core, outNode, outPort, inNode, inPort uint32) error {
	_, err := c.createLink("create_link", core, outNode, outPort, inNode, inPort)
	return err
}

// CreateLinkProxy is CreateLink but returns the link proxy. The caller owns
// it and may release it with DestroyProxy.
func (c *Client) CreateLinkProxy(core Core, outNode, outPort, inNode, inPort uint32) (Proxy, error) {
	return c.createLink("create_link_proxy", core, outNode, outPort, inNode, inPort)
}

func (c *Client) createLink(op string, core Core, outNode, outPort, inNode, inPort uint32) (proxy Proxy, err error) {
	start := time.Now()
	defer func() { c.observe(op, start, err) }()

	if core.IsNil() {
		return 0, ErrInvalidArgument
	}

	props := LinkProperties(outNode, outPort, inNode, inPort, c.config.Passive)
	c.logger.Debug("creating link", "op", op, "props", props.String())

	proxy = c.lib.CreateObject(core, LinkFactory, TypeInterfaceLink, VersionLink, props)
	if proxy.IsNil() {
		return 0, ErrIO
	}
	return proxy, nil
}
