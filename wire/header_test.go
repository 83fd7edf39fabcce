package wire_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/ferristseng/go-lifx/wire"
)

var _ = Describe("Header", func() {
	It("should encode to the known-good byte sequence", func() {
		correct := []byte{
			0x24, 0x0, 0x0, 0x34, 0x29, 0xb9, 0x36, 0xa9, 0x0, 0x0, 0x0, 0x0,
			0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x1, 0x0, 0x0,
			0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x2, 0x0, 0x0, 0x0,
		}

		header := wire.NewHeader(36, true, 2838935849, 0, false, true, 0, 2)
		Expect(header.Encode()).To(Equal(correct))
	})

	It("should pack tagged, addressable and protocol into one 16-bit word", func() {
		header := wire.NewHeader(36, true, 0, 0, false, false, 0, 0)
		encoded := header.Encode()
		// 1024 | tagged<<13 | addressable<<12 == 0x3400
		Expect(encoded[2]).To(Equal(uint8(0x00)))
		Expect(encoded[3]).To(Equal(uint8(0x34)))
	})

	It("should pack the ack and response flags into one byte", func() {
		header := wire.NewHeader(36, false, 0, 0, true, true, 0, 0)
		Expect(header.Encode()[22]).To(Equal(uint8(0x03)))

		header = wire.NewHeader(36, false, 0, 0, true, false, 0, 0)
		Expect(header.Encode()[22]).To(Equal(uint8(0x02)))
	})

	It("should always encode 36 bytes", func() {
		Expect(wire.DefaultHeader().Encode()).To(HaveLen(int(wire.HeaderSize)))
	})

	It("should round-trip through encode and decode", func() {
		header := wire.NewHeader(128, true, 256, 1000, false, false, 1, 12)
		decoded, err := wire.DecodeHeader(wire.NewDecoder(header.Encode()))
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded).To(Equal(header))
	})

	It("should round-trip with every flag permutation", func() {
		for _, tagged := range []bool{true, false} {
			for _, ack := range []bool{true, false} {
				for _, res := range []bool{true, false} {
					header := wire.NewHeader(52, tagged, 1014, 0xd073d5000000, ack, res, 200, 107)
					decoded, err := wire.DecodeHeader(wire.NewDecoder(header.Encode()))
					Expect(err).NotTo(HaveOccurred())
					Expect(decoded).To(Equal(header))
				}
			}
		}
	})

	It("should default to a tagged, addressable header expecting responses", func() {
		header := wire.DefaultHeader()
		Expect(header.Tagged).To(BeTrue())
		Expect(header.Addressable).To(BeTrue())
		Expect(header.AckRequired).To(BeTrue())
		Expect(header.ResRequired).To(BeTrue())
		Expect(header.Protocol).To(Equal(wire.ProtocolNumber))
		Expect(header.Sequence).To(Equal(uint8(0)))
	})

	It("should fail decoding truncated input", func() {
		header := wire.NewHeader(36, true, 0, 0, false, true, 0, 2)
		_, err := wire.DecodeHeader(wire.NewDecoder(header.Encode()[:20]))
		Expect(err).To(MatchError(wire.ErrShortBuffer))
	})
})
