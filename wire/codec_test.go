package wire_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/ferristseng/go-lifx/wire"
)

var _ = Describe("Codec", func() {
	var enc *wire.Encoder

	BeforeEach(func() {
		enc = wire.NewEncoder()
	})

	It("should write unsigned integers little-endian at their natural size", func() {
		enc.WriteUint8(0xab)
		enc.WriteUint16(0x1234)
		enc.WriteUint32(0xdeadbeef)
		enc.WriteUint64(0x0102030405060708)
		Expect(enc.Bytes()).To(Equal([]byte{
			0xab,
			0x34, 0x12,
			0xef, 0xbe, 0xad, 0xde,
			0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
		}))
	})

	It("should round-trip every primitive type", func() {
		enc.WriteUint8(200)
		enc.WriteUint16(60000)
		enc.WriteUint32(4000000000)
		enc.WriteUint64(1 << 60)
		enc.WriteInt8(-100)
		enc.WriteInt16(-30000)
		enc.WriteInt32(-2000000000)
		enc.WriteInt64(-(1 << 60))
		enc.WriteFloat32(-12.5)
		enc.WriteFloat64(1e100)
		enc.WriteBool(true)
		enc.WriteBool(false)

		dec := wire.NewDecoder(enc.Bytes())
		Expect(dec.ReadUint8()).To(Equal(uint8(200)))
		Expect(dec.ReadUint16()).To(Equal(uint16(60000)))
		Expect(dec.ReadUint32()).To(Equal(uint32(4000000000)))
		Expect(dec.ReadUint64()).To(Equal(uint64(1 << 60)))
		Expect(dec.ReadInt8()).To(Equal(int8(-100)))
		Expect(dec.ReadInt16()).To(Equal(int16(-30000)))
		Expect(dec.ReadInt32()).To(Equal(int32(-2000000000)))
		Expect(dec.ReadInt64()).To(Equal(int64(-(1 << 60))))
		Expect(dec.ReadFloat32()).To(Equal(float32(-12.5)))
		Expect(dec.ReadFloat64()).To(Equal(1e100))
		Expect(dec.ReadBool()).To(BeTrue())
		Expect(dec.ReadBool()).To(BeFalse())
		Expect(dec.Remaining()).To(Equal(0))
	})

	It("should encode booleans as a single 0/1 byte", func() {
		enc.WriteBool(true)
		enc.WriteBool(false)
		Expect(enc.Bytes()).To(Equal([]byte{1, 0}))
	})

	It("should fail reads past the end of input", func() {
		dec := wire.NewDecoder([]byte{0x01})
		_, err := dec.ReadUint32()
		Expect(err).To(MatchError(wire.ErrShortBuffer))
	})

	Describe("strings", func() {
		It("should terminate strings with a NUL byte", func() {
			Expect(enc.WriteString(`abc`)).To(Succeed())
			Expect(enc.Bytes()).To(Equal([]byte{'a', 'b', 'c', 0}))
		})

		It("should round-trip strings", func() {
			Expect(enc.WriteString(`kitchen lamp`)).To(Succeed())
			dec := wire.NewDecoder(enc.Bytes())
			Expect(dec.ReadString(32)).To(Equal(`kitchen lamp`))
		})

		It("should round-trip UTF-8 strings", func() {
			Expect(enc.WriteString(`salón`)).To(Succeed())
			dec := wire.NewDecoder(enc.Bytes())
			Expect(dec.ReadString(32)).To(Equal(`salón`))
		})

		It("should reject strings containing NUL bytes", func() {
			Expect(enc.WriteString("a\x00b")).NotTo(Succeed())
		})

		It("should fail when no terminator is found before input exhaustion", func() {
			dec := wire.NewDecoder([]byte{'a', 'b', 'c'})
			_, err := dec.ReadString(32)
			Expect(err).To(HaveOccurred())
		})

		It("should fail when no terminator is found within the bound", func() {
			dec := wire.NewDecoder([]byte{'a', 'b', 'c', 'd', 0})
			_, err := dec.ReadString(2)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("fixed-width strings", func() {
		It("should zero-pad short strings to the field width", func() {
			Expect(enc.WriteStringFixed(`hi`, 8)).To(Succeed())
			Expect(enc.Bytes()).To(Equal([]byte{'h', 'i', 0, 0, 0, 0, 0, 0}))
		})

		It("should reject strings longer than the field width", func() {
			Expect(enc.WriteStringFixed(`too long for this`, 8)).NotTo(Succeed())
		})

		It("should decode a full-width field with no terminator", func() {
			dec := wire.NewDecoder([]byte{'a', 'b', 'c', 'd'})
			Expect(dec.ReadStringFixed(4)).To(Equal(`abcd`))
		})

		It("should consume the entire field width regardless of content", func() {
			Expect(enc.WriteStringFixed(`x`, 8)).To(Succeed())
			enc.WriteUint8(0xff)
			dec := wire.NewDecoder(enc.Bytes())
			Expect(dec.ReadStringFixed(8)).To(Equal(`x`))
			Expect(dec.ReadUint8()).To(Equal(uint8(0xff)))
		})
	})

	Describe("byte arrays", func() {
		It("should write raw bytes with no length prefix", func() {
			enc.WriteBytes([]byte{1, 2, 3})
			Expect(enc.Bytes()).To(Equal([]byte{1, 2, 3}))
		})

		It("should round-trip fixed-size arrays", func() {
			enc.WriteBytes([]byte{9, 8, 7, 6})
			dec := wire.NewDecoder(enc.Bytes())
			Expect(dec.ReadBytes(4)).To(Equal([]byte{9, 8, 7, 6}))
		})
	})
})
