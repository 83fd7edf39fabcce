package lifx

import (
	"errors"
	"net"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/mock"

	"github.com/ferristseng/go-lifx/common"
	"github.com/ferristseng/go-lifx/mocks"
	"github.com/ferristseng/go-lifx/wire"
)

// timeoutError mimics a deadline expiry from the transport
type timeoutError struct{}

func (timeoutError) Error() string   { return `i/o timeout` }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func stateServiceMessage(target uint64, port uint32) wire.Message {
	return wire.NewMessage(wire.StateService{Service: wire.ServiceUDP, Port: port}, false, target, 0)
}

var _ = Describe("Client", func() {
	var (
		mockConn *mocks.Conn
		client   *Client

		deviceID = uint64(0xd073d5001234)
		src      = &net.UDPAddr{IP: net.IPv4(192, 168, 1, 20), Port: 56700}
	)

	BeforeEach(func() {
		mockConn = new(mocks.Conn)
		client = newClient(mockConn)
	})

	Describe("sequence counter", func() {
		It("should count 0..255 in order and wrap, across repeated cycles", func() {
			for cycle := 0; cycle < 2; cycle++ {
				for i := 0; i < 256; i++ {
					Expect(client.NextSequence()).To(Equal(uint8(i)))
				}
			}
		})
	})

	Describe("device directory", func() {
		It("should register a device on its first StateService response", func() {
			client.handle(stateServiceMessage(deviceID, 56700), src)

			bulb, err := client.Device(deviceID)
			Expect(err).NotTo(HaveOccurred())
			Expect(bulb.Target).To(Equal(deviceID))
			Expect(bulb.Port).To(Equal(uint32(56700)))
			Expect(bulb.Addr.IP.Equal(src.IP)).To(BeTrue())
			Expect(bulb.Addr.Port).To(Equal(56700))
		})

		It("should not overwrite an existing entry on a repeat StateService", func() {
			client.handle(stateServiceMessage(deviceID, 56700), src)
			other := &net.UDPAddr{IP: net.IPv4(10, 0, 0, 99), Port: 4242}
			client.handle(stateServiceMessage(deviceID, 4242), other)

			bulb, err := client.Device(deviceID)
			Expect(err).NotTo(HaveOccurred())
			Expect(bulb.Port).To(Equal(uint32(56700)))
			Expect(bulb.Addr.IP.Equal(src.IP)).To(BeTrue())
		})

		It("should ignore StateService advertising a reserved service", func() {
			msg := wire.NewMessage(wire.StateService{Service: wire.ServiceReserved, Port: 56700}, false, deviceID, 0)
			client.handle(msg, src)
			Expect(client.Devices()).To(BeEmpty())
		})

		It("should update the label of a known device", func() {
			client.handle(stateServiceMessage(deviceID, 56700), src)
			client.handle(wire.NewMessage(wire.StateLabel{Label: `kitchen`}, false, deviceID, 0), src)

			bulb, err := client.Device(deviceID)
			Expect(err).NotTo(HaveOccurred())
			Expect(bulb.Label).To(Equal(`kitchen`))
		})

		It("should silently drop state for an unregistered device", func() {
			client.handle(wire.NewMessage(wire.StateLabel{Label: `kitchen`}, false, deviceID, 0), src)
			Expect(client.Devices()).To(BeEmpty())
		})

		It("should update location and group labels", func() {
			client.handle(stateServiceMessage(deviceID, 56700), src)
			client.handle(wire.NewMessage(wire.StateLocation{Label: `home`}, false, deviceID, 0), src)
			client.handle(wire.NewMessage(wire.StateGroup{Label: `lounge`}, false, deviceID, 0), src)

			bulb, err := client.Device(deviceID)
			Expect(err).NotTo(HaveOccurred())
			Expect(bulb.Location).To(Equal(`home`))
			Expect(bulb.Group).To(Equal(`lounge`))
		})

		It("should update power, color and label from a light state", func() {
			color := common.Color{Hue: 1000, Saturation: 2000, Brightness: 3000, Kelvin: 3500}
			client.handle(stateServiceMessage(deviceID, 56700), src)
			client.handle(wire.NewMessage(wire.LightState{
				Color: color,
				Power: common.PowerMax,
				Label: `desk`,
			}, false, deviceID, 0), src)

			bulb, err := client.Device(deviceID)
			Expect(err).NotTo(HaveOccurred())
			Expect(bulb.Color).To(Equal(color))
			Expect(bulb.Power).To(Equal(common.PowerMax))
			Expect(bulb.Label).To(Equal(`desk`))
		})

		It("should return ErrNotFound for an unknown device", func() {
			_, err := client.Device(deviceID)
			Expect(err).To(Equal(common.ErrNotFound))
		})

		It("should hand out snapshots, not live entries", func() {
			client.handle(stateServiceMessage(deviceID, 56700), src)

			bulb, err := client.Device(deviceID)
			Expect(err).NotTo(HaveOccurred())
			bulb.Label = `scribbled`
			bulb.Addr.Port = 1

			fresh, err := client.Device(deviceID)
			Expect(err).NotTo(HaveOccurred())
			Expect(fresh.Label).To(BeEmpty())
			Expect(fresh.Addr.Port).To(Equal(56700))
		})
	})

	Describe("events", func() {
		It("should publish discovery and update events to subscribers", func() {
			sub, err := client.NewSubscription()
			Expect(err).NotTo(HaveOccurred())

			client.handle(stateServiceMessage(deviceID, 56700), src)
			client.handle(wire.NewMessage(wire.StateLabel{Label: `kitchen`}, false, deviceID, 0), src)

			Expect(<-sub.Events()).To(Equal(common.EventNewDevice{Target: deviceID}))
			Expect(<-sub.Events()).To(Equal(common.EventUpdateLabel{Target: deviceID, Label: `kitchen`}))
		})

		It("should not publish an update when the value is unchanged", func() {
			client.handle(stateServiceMessage(deviceID, 56700), src)
			client.handle(wire.NewMessage(wire.StateLabel{Label: `kitchen`}, false, deviceID, 0), src)

			sub, err := client.NewSubscription()
			Expect(err).NotTo(HaveOccurred())
			client.handle(wire.NewMessage(wire.StateLabel{Label: `kitchen`}, false, deviceID, 0), src)
			Expect(sub.Events()).NotTo(Receive())
		})
	})

	Describe("SendMessage", func() {
		It("should send the encoded message and return the assigned sequence", func() {
			var sent []byte
			mockConn.On(`SendTo`, mock.Anything, src).Run(func(args mock.Arguments) {
				sent = append([]byte(nil), args.Get(0).([]byte)...)
			}).Return(int(wire.HeaderSize), nil)

			seq, err := client.SendMessage(src, wire.GetLabel{}, false, deviceID)
			Expect(err).NotTo(HaveOccurred())
			Expect(seq).To(Equal(uint8(0)))

			decoded, err := wire.DecodeMessage(sent)
			Expect(err).NotTo(HaveOccurred())
			Expect(decoded.Payload).To(Equal(wire.GetLabel{}))
			Expect(decoded.Header.Target).To(Equal(deviceID))
			Expect(decoded.Header.Sequence).To(Equal(uint8(0)))
		})

		It("should fail on a short write", func() {
			mockConn.On(`SendTo`, mock.Anything, src).Return(int(wire.HeaderSize)-1, nil)

			_, err := client.SendMessage(src, wire.GetLabel{}, false, deviceID)
			Expect(err).To(Equal(common.ErrShortWrite))
		})

		It("should surface transport failures", func() {
			sendErr := errors.New(`network unreachable`)
			mockConn.On(`SendTo`, mock.Anything, src).Return(0, sendErr)

			_, err := client.SendMessage(src, wire.GetLabel{}, false, deviceID)
			Expect(err).To(Equal(sendErr))
		})

		It("should refuse to send on a closed client", func() {
			mockConn.On(`Close`).Return(nil)
			Expect(client.Close()).To(Succeed())

			_, err := client.SendMessage(src, wire.GetLabel{}, false, deviceID)
			Expect(err).To(Equal(common.ErrClosed))
		})
	})

	Describe("Broadcast", func() {
		It("should toggle broadcast mode around the send", func() {
			mockConn.On(`SetBroadcast`, true).Return(nil).Once()
			mockConn.On(`SendTo`, mock.Anything, broadcastUDPAddr).Return(int(wire.HeaderSize), nil).Once()
			mockConn.On(`SetBroadcast`, false).Return(nil).Once()

			Expect(client.Broadcast(wire.GetService{})).To(Succeed())
			mockConn.AssertExpectations(GinkgoT())
		})

		It("should restore broadcast mode when the send fails", func() {
			sendErr := errors.New(`network unreachable`)
			mockConn.On(`SetBroadcast`, true).Return(nil).Once()
			mockConn.On(`SendTo`, mock.Anything, broadcastUDPAddr).Return(0, sendErr).Once()
			mockConn.On(`SetBroadcast`, false).Return(nil).Once()

			Expect(client.Broadcast(wire.GetService{})).To(Equal(sendErr))
			mockConn.AssertExpectations(GinkgoT())
		})
	})

	Describe("Listen", func() {
		It("should register devices from inbound datagrams", func() {
			datagram, err := stateServiceMessage(deviceID, 56700).Encode()
			Expect(err).NotTo(HaveOccurred())

			mockConn.On(`RecvFrom`, mock.Anything).Run(func(args mock.Arguments) {
				copy(args.Get(0).([]byte), datagram)
			}).Return(len(datagram), src, nil).Once()
			mockConn.On(`RecvFrom`, mock.Anything).Return(0, nil, timeoutError{})
			mockConn.On(`Close`).Return(nil)

			done := client.Listen()
			Eventually(func() int { return len(client.Devices()) }).Should(Equal(1))

			Expect(client.Close()).To(Succeed())
			Eventually(done, time.Second).Should(BeClosed())
		})

		It("should survive malformed datagrams", func() {
			garbage := []byte{0xde, 0xad, 0xbe, 0xef}
			datagram, err := stateServiceMessage(deviceID, 56700).Encode()
			Expect(err).NotTo(HaveOccurred())

			mockConn.On(`RecvFrom`, mock.Anything).Run(func(args mock.Arguments) {
				copy(args.Get(0).([]byte), garbage)
			}).Return(len(garbage), src, nil).Once()
			mockConn.On(`RecvFrom`, mock.Anything).Run(func(args mock.Arguments) {
				copy(args.Get(0).([]byte), datagram)
			}).Return(len(datagram), src, nil).Once()
			mockConn.On(`RecvFrom`, mock.Anything).Return(0, nil, timeoutError{})
			mockConn.On(`Close`).Return(nil)

			done := client.Listen()
			Eventually(func() int { return len(client.Devices()) }).Should(Equal(1))

			Expect(client.Close()).To(Succeed())
			Eventually(done, time.Second).Should(BeClosed())
		})

		It("should pace retries when receives fail persistently", func() {
			var recvs atomic.Int32
			recvErr := errors.New(`recvfrom: connection refused`)
			mockConn.On(`RecvFrom`, mock.Anything).Run(func(mock.Arguments) {
				recvs.Add(1)
			}).Return(0, nil, recvErr)
			mockConn.On(`Close`).Return(nil)

			done := client.Listen()
			time.Sleep(common.DefaultRateLimit * 4)
			Expect(recvs.Load()).To(BeNumerically(`<=`, 6))

			Expect(client.Close()).To(Succeed())
			Eventually(done, time.Second).Should(BeClosed())
		})

		It("should terminate promptly after Close", func() {
			mockConn.On(`RecvFrom`, mock.Anything).Return(0, nil, timeoutError{})
			mockConn.On(`Close`).Return(nil)

			done := client.Listen()
			Expect(client.Close()).To(Succeed())
			Eventually(done, common.DefaultReadTimeout*2).Should(BeClosed())
		})
	})

	Describe("Discover", func() {
		It("should broadcast GetService and query known devices", func() {
			client.handle(stateServiceMessage(deviceID, 56700), src)

			broadcasts := make(chan []byte, 4)
			var deviceSends atomic.Int32
			mockConn.On(`SetBroadcast`, true).Return(nil)
			mockConn.On(`SetBroadcast`, false).Return(nil)
			mockConn.On(`SendTo`, mock.Anything, broadcastUDPAddr).Run(func(args mock.Arguments) {
				broadcasts <- append([]byte(nil), args.Get(0).([]byte)...)
			}).Return(int(wire.HeaderSize), nil)
			mockConn.On(`SendTo`, mock.Anything, mock.Anything).Run(func(mock.Arguments) {
				deviceSends.Add(1)
			}).Return(int(wire.HeaderSize), nil)
			mockConn.On(`Close`).Return(nil)

			done := client.Discover(time.Hour, DiscoverLabel)

			var datagram []byte
			Eventually(broadcasts).Should(Receive(&datagram))
			decoded, err := wire.DecodeMessage(datagram)
			Expect(err).NotTo(HaveOccurred())
			Expect(decoded.Payload).To(Equal(wire.GetService{}))
			Expect(decoded.Header.Tagged).To(BeTrue())
			Expect(decoded.Header.Target).To(Equal(uint64(0)))

			Eventually(deviceSends.Load).Should(BeNumerically(`>=`, 1))

			Expect(client.Close()).To(Succeed())
			Eventually(done, time.Second).Should(BeClosed())
		})
	})

	Describe("Close", func() {
		It("should be idempotent", func() {
			mockConn.On(`Close`).Return(nil).Once()
			Expect(client.Close()).To(Succeed())
			Expect(client.Close()).To(Succeed())
			Expect(client.IsClosed()).To(BeTrue())
			mockConn.AssertExpectations(GinkgoT())
		})
	})
})
