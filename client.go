package lifx

import (
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ferristseng/go-lifx/common"
	"github.com/ferristseng/go-lifx/wire"
)

const (
	// DefaultPort is the UDP port devices listen on, and the port discovery
	// broadcasts are sent to
	DefaultPort = 56700
)

var broadcastUDPAddr = &net.UDPAddr{IP: net.IPv4bcast, Port: DefaultPort}

// DiscoverOptions selects which per-device state the discovery loop
// refreshes after each service broadcast
type DiscoverOptions uint16

const (
	// DiscoverLabel requests each known device's label
	DiscoverLabel DiscoverOptions = 1 << iota
	// DiscoverPower requests each known device's power level
	DiscoverPower
	// DiscoverLocation requests each known device's location
	DiscoverLocation
	// DiscoverGroup requests each known device's group
	DiscoverGroup
	// DiscoverHostInfo requests each known device's host MCU information
	DiscoverHostInfo
	// DiscoverHostFirmware requests each known device's host firmware
	DiscoverHostFirmware
	// DiscoverWifiInfo requests each known device's wifi information
	DiscoverWifiInfo
	// DiscoverWifiFirmware requests each known device's wifi firmware
	DiscoverWifiFirmware

	// DiscoverAll requests everything
	DiscoverAll = DiscoverLabel | DiscoverPower | DiscoverLocation | DiscoverGroup |
		DiscoverHostInfo | DiscoverHostFirmware | DiscoverWifiInfo | DiscoverWifiFirmware
)

func (o DiscoverOptions) requests() []wire.Payload {
	var reqs []wire.Payload
	if o&DiscoverLabel != 0 {
		reqs = append(reqs, wire.GetLabel{})
	}
	if o&DiscoverPower != 0 {
		reqs = append(reqs, wire.GetPower{})
	}
	if o&DiscoverLocation != 0 {
		reqs = append(reqs, wire.GetLocation{})
	}
	if o&DiscoverGroup != 0 {
		reqs = append(reqs, wire.GetGroup{})
	}
	if o&DiscoverHostInfo != 0 {
		reqs = append(reqs, wire.GetHostInfo{})
	}
	if o&DiscoverHostFirmware != 0 {
		reqs = append(reqs, wire.GetHostFirmware{})
	}
	if o&DiscoverWifiInfo != 0 {
		reqs = append(reqs, wire.GetWifiInfo{})
	}
	if o&DiscoverWifiFirmware != 0 {
		reqs = append(reqs, wire.GetWifiFirmware{})
	}
	return reqs
}

// Bulb is a point-in-time snapshot of everything known about a discovered
// device.  A Bulb is created on the first StateService response for an
// unseen target, and its fields fill in incrementally as further State
// responses arrive.  Accessors hand out copies, never live directory
// entries.
type Bulb struct {
	// Target is the 64-bit device identifier
	Target uint64
	// Addr is the device's network address, at the port it advertised
	Addr *net.UDPAddr
	// Port is the port the device advertised in StateService
	Port uint32
	// Label is empty until a StateLabel response arrives
	Label string
	// Location is empty until a StateLocation response arrives
	Location string
	// Group is empty until a StateGroup response arrives
	Group string
	// Power is the last reported power level
	Power common.Power
	// Color is the last reported color, lights only
	Color common.Color
	// Vendor, Product and Version are the hardware identifiers from
	// StateVersion
	Vendor  uint32
	Product uint32
	Version uint32
	// HostFirmware and WifiFirmware are the firmware versions from the
	// corresponding State responses
	HostFirmware uint32
	WifiFirmware uint32
	// SeenAt is the time of the last response from this device
	SeenAt time.Time
}

func (b *Bulb) clone() Bulb {
	out := *b
	if b.Addr != nil {
		addr := *b.Addr
		addr.IP = append(net.IP(nil), b.Addr.IP...)
		out.Addr = &addr
	}
	return out
}

// Client is a session against the devices on the local network.  It owns a
// single bound UDP endpoint, shared by the receive loop, the discovery loop
// and direct sends.  The receive loop is the sole writer of the device
// directory; readers get cloned snapshots.
type Client struct {
	conn          Conn
	closed        atomic.Bool
	quitChan      chan struct{}
	sequence      atomic.Uint32
	sendMu        sync.Mutex
	devices       map[uint64]*Bulb
	subscriptions map[string]*common.Subscription
	sync.RWMutex
}

func newClient(conn Conn) *Client {
	return &Client{
		conn:          conn,
		quitChan:      make(chan struct{}),
		devices:       make(map[uint64]*Bulb),
		subscriptions: make(map[string]*common.Subscription),
	}
}

// Listen starts the background receive loop, which decodes inbound datagrams
// and updates the device directory.  Malformed or foreign traffic is
// discarded, never fatal.  The returned channel closes when the loop
// terminates after Close.
func (c *Client) Listen() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		buf := make([]byte, 1500)
		for !c.IsClosed() {
			n, src, err := c.conn.RecvFrom(buf)
			if err != nil {
				if !IsTimeout(err) {
					common.Log.Debugf("receive failed: %v\n", err)
					// A persistent receive failure must not spin the loop hot
					time.Sleep(common.DefaultRateLimit)
				}
				continue
			}
			msg, err := wire.DecodeMessage(buf[:n])
			if err != nil {
				common.Log.Debugf("discarding datagram from %v: %v\n", src, err)
				continue
			}
			c.handle(msg, src)
		}
	}()
	return done
}

func (c *Client) handle(msg wire.Message, src *net.UDPAddr) {
	payload, target := msg.Unpack()
	switch p := payload.(type) {
	case wire.StateService:
		c.registerDevice(target, src, p)
	case wire.StateLabel:
		c.updateDevice(target, func(b *Bulb) []interface{} {
			if b.Label == p.Label {
				return nil
			}
			b.Label = p.Label
			return []interface{}{common.EventUpdateLabel{Target: target, Label: p.Label}}
		})
	case wire.StateLocation:
		c.updateDevice(target, func(b *Bulb) []interface{} {
			if b.Location == p.Label {
				return nil
			}
			b.Location = p.Label
			return []interface{}{common.EventUpdateLocation{Target: target, Location: p.Label}}
		})
	case wire.StateGroup:
		c.updateDevice(target, func(b *Bulb) []interface{} {
			if b.Group == p.Label {
				return nil
			}
			b.Group = p.Label
			return []interface{}{common.EventUpdateGroup{Target: target, Group: p.Label}}
		})
	case wire.StatePower:
		c.updateDevice(target, func(b *Bulb) []interface{} {
			if b.Power == p.Level {
				return nil
			}
			b.Power = p.Level
			return []interface{}{common.EventUpdatePower{Target: target, Power: p.Level}}
		})
	case wire.LightStatePower:
		c.updateDevice(target, func(b *Bulb) []interface{} {
			if b.Power == p.Level {
				return nil
			}
			b.Power = p.Level
			return []interface{}{common.EventUpdatePower{Target: target, Power: p.Level}}
		})
	case wire.LightState:
		c.updateDevice(target, func(b *Bulb) []interface{} {
			var events []interface{}
			if b.Color != p.Color {
				b.Color = p.Color
				events = append(events, common.EventUpdateColor{Target: target, Color: p.Color})
			}
			if b.Power != p.Power {
				b.Power = p.Power
				events = append(events, common.EventUpdatePower{Target: target, Power: p.Power})
			}
			if b.Label != p.Label {
				b.Label = p.Label
				events = append(events, common.EventUpdateLabel{Target: target, Label: p.Label})
			}
			return events
		})
	case wire.StateVersion:
		c.updateDevice(target, func(b *Bulb) []interface{} {
			b.Vendor = p.Vendor
			b.Product = p.Product
			b.Version = p.Version
			return nil
		})
	case wire.StateHostFirmware:
		c.updateDevice(target, func(b *Bulb) []interface{} {
			b.HostFirmware = p.Version
			return nil
		})
	case wire.StateWifiFirmware:
		c.updateDevice(target, func(b *Bulb) []interface{} {
			b.WifiFirmware = p.Version
			return nil
		})
	case wire.Acknowledgement:
		common.Log.Debugf("ack from %v for sequence %d\n", target, msg.Header.Sequence)
	default:
		common.Log.Debugf("ignoring message type %d from %v\n", msg.Header.Type, src)
	}
}

// registerDevice inserts a new directory entry for an unseen target.
// First-seen wins, a later StateService never overwrites the stored address.
func (c *Client) registerDevice(target uint64, src *net.UDPAddr, p wire.StateService) {
	if p.Service != wire.ServiceUDP {
		common.Log.Debugf("ignoring %v service from %v\n", p.Service, target)
		return
	}
	c.Lock()
	if _, ok := c.devices[target]; ok {
		c.Unlock()
		return
	}
	addr := &net.UDPAddr{
		IP:   append(net.IP(nil), src.IP...),
		Port: int(p.Port),
	}
	c.devices[target] = &Bulb{
		Target: target,
		Addr:   addr,
		Port:   p.Port,
		SeenAt: time.Now(),
	}
	c.Unlock()
	common.Log.Infof("discovered device %v at %v\n", target, addr)
	c.publish(common.EventNewDevice{Target: target})
}

// updateDevice applies update to an existing directory entry.  State for a
// target that has not been registered yet is silently dropped, the response
// raced with discovery.
func (c *Client) updateDevice(target uint64, update func(*Bulb) []interface{}) {
	c.Lock()
	b, ok := c.devices[target]
	if !ok {
		c.Unlock()
		common.Log.Debugf("state for unknown device %v\n", target)
		return
	}
	b.SeenAt = time.Now()
	events := update(b)
	c.Unlock()
	for _, event := range events {
		c.publish(event)
	}
}

// Discover starts the background discovery loop.  Every interval it
// broadcasts a GetService request, then refreshes the state selected by
// options on each known device, pacing requests so devices are not flooded.
// Per-device requests are best-effort, one unreachable device does not stop
// discovery for the rest.  The returned channel closes when the loop
// terminates after Close.
func (c *Client) Discover(interval time.Duration, options DiscoverOptions) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			if c.IsClosed() {
				return
			}
			c.discoverOnce(options)
			select {
			case <-ticker.C:
			case <-c.quitChan:
				return
			}
		}
	}()
	return done
}

func (c *Client) discoverOnce(options DiscoverOptions) {
	if err := c.Broadcast(wire.GetService{}); err != nil {
		common.Log.Warnf("discovery broadcast failed: %v\n", err)
	}
	reqs := options.requests()
	if len(reqs) == 0 {
		return
	}
	for _, b := range c.Devices() {
		for _, req := range reqs {
			if c.IsClosed() {
				return
			}
			if _, err := c.SendMessage(b.Addr, req, false, b.Target); err != nil {
				common.Log.Debugf("discovery request type %d to %v failed: %v\n", req.Type(), b.Target, err)
			}
			time.Sleep(common.DefaultRateLimit)
		}
	}
}

// Broadcast sends payload to every device on the local network.  Enabling
// broadcast mode, sending and restoring the previous mode happen as one
// critical section, so a concurrent SendMessage can never observe the socket
// in the wrong mode.
func (c *Client) Broadcast(payload wire.Payload) error {
	if c.IsClosed() {
		return common.ErrClosed
	}
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if err := c.conn.SetBroadcast(true); err != nil {
		return err
	}
	defer func() {
		if err := c.conn.SetBroadcast(false); err != nil {
			common.Log.Warnf("failed disabling broadcast: %v\n", err)
		}
	}()
	_, err := c.send(broadcastUDPAddr, payload, false, 0)
	return err
}

// SendMessage encodes payload into a Message addressed to target, assigns it
// the next sequence number and sends it to addr, returning the assigned
// sequence.  A write of fewer bytes than the encoded length fails with
// ErrShortWrite.
func (c *Client) SendMessage(addr *net.UDPAddr, payload wire.Payload, ackRequired bool, target uint64) (uint8, error) {
	if c.IsClosed() {
		return 0, common.ErrClosed
	}
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	return c.send(addr, payload, ackRequired, target)
}

func (c *Client) send(addr *net.UDPAddr, payload wire.Payload, ackRequired bool, target uint64) (uint8, error) {
	seq := c.NextSequence()
	msg := wire.NewMessage(payload, ackRequired, target, seq)
	encoded, err := msg.Encode()
	if err != nil {
		return 0, err
	}
	n, err := c.conn.SendTo(encoded, addr)
	if err != nil {
		return seq, err
	}
	if n != len(encoded) {
		return seq, common.ErrShortWrite
	}
	return seq, nil
}

// NextSequence returns the next value of the client's sequence counter.
// The counter starts at zero and wraps mod 256, so uniqueness only holds
// within a 256-message window.
func (c *Client) NextSequence() uint8 {
	return uint8(c.sequence.Add(1) - 1)
}

// Devices returns a snapshot of the device directory
func (c *Client) Devices() []Bulb {
	c.RLock()
	out := make([]Bulb, 0, len(c.devices))
	for _, b := range c.devices {
		out = append(out, b.clone())
	}
	c.RUnlock()
	return out
}

// Device returns a snapshot of a single directory entry, or
// common.ErrNotFound
func (c *Client) Device(target uint64) (Bulb, error) {
	c.RLock()
	defer c.RUnlock()
	b, ok := c.devices[target]
	if !ok {
		return Bulb{}, common.ErrNotFound
	}
	return b.clone(), nil
}

// NewSubscription returns a new *common.Subscription for receiving directory
// events from this client.
func (c *Client) NewSubscription() (*common.Subscription, error) {
	if c.IsClosed() {
		return nil, common.ErrClosed
	}
	sub := common.NewSubscription(c)
	c.Lock()
	c.subscriptions[sub.ID()] = sub
	c.Unlock()
	return sub, nil
}

// CloseSubscription is a callback for handling the closing of subscriptions.
func (c *Client) CloseSubscription(sub *common.Subscription) error {
	c.RLock()
	_, ok := c.subscriptions[sub.ID()]
	c.RUnlock()
	if !ok {
		return common.ErrNotFound
	}
	c.Lock()
	delete(c.subscriptions, sub.ID())
	c.Unlock()
	return nil
}

// publish pushes an event to subscribers
func (c *Client) publish(event interface{}) {
	c.RLock()
	subs := make([]*common.Subscription, 0, len(c.subscriptions))
	for _, sub := range c.subscriptions {
		subs = append(subs, sub)
	}
	c.RUnlock()
	for _, sub := range subs {
		if err := sub.Write(event); err != nil {
			common.Log.Warnf("failed publishing event: %v\n", err)
		}
	}
}

// Close signals termination to the background loops and closes the socket.
// Loops observe the flag and exit at their next iteration boundary; an
// in-flight receive is bounded by the read timeout.  Close is idempotent.
func (c *Client) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	close(c.quitChan)
	return c.conn.Close()
}

// IsClosed reports whether the client has been closed
func (c *Client) IsClosed() bool {
	return c.closed.Load()
}
