package codec_test

import (
	"encoding/base64"
	"errors"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fluidsim/internal/codec"
)

func seq(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i * 7)
	}
	return b
}

var _ = Describe("Encode", func() {
	It("encodes empty input to empty output", func() {
		Expect(codec.Encode(nil)).To(BeEmpty())
		Expect(codec.Encode([]byte{})).To(BeEmpty())
	})

	DescribeTable("padding",
		func(in string, want string) {
			Expect(codec.Encode([]byte(in))).To(Equal(want))
		},
		Entry("two leftover pads once", "Ma", "TWE="),
		Entry("one leftover pads twice", "M", "TQ=="),
		Entry("full group has no pad", "Man", "TWFu"),
		Entry("mixed groups", "hello world", "aGVsbG8gd29ybGQ="),
	)

	It("always emits a multiple of 4 characters", func() {
		for n := 0; n < 40; n++ {
			out := codec.Encode(seq(n))
			Expect(len(out) % 4).To(BeZero())
			Expect(out).To(HaveLen(codec.EncodedLen(n)))
		}
	})

	It("agrees with the standard library encoder", func() {
		r := rand.New(rand.NewSource(7))
		for n := 0; n < 300; n += 13 {
			data := make([]byte, n)
			r.Read(data)
			Expect(codec.Encode(data)).To(Equal(base64.StdEncoding.EncodeToString(data)))
		}
	})
})

var _ = Describe("Decode", func() {
	DescribeTable("round trip",
		func(n int) {
			data := seq(n)
			if n == 0 {
				Expect(codec.Encode(data)).To(BeEmpty())
				return
			}
			out, err := codec.Decode(codec.Encode(data))
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal(data))
		},
		Entry("empty", 0),
		Entry("one byte", 1),
		Entry("two bytes", 2),
		Entry("one group", 3),
		Entry("many groups", 257),
	)

	DescribeTable("rejects malformed input",
		func(in string, kind error) {
			out, err := codec.Decode(in)
			Expect(err).To(MatchError(kind))
			Expect(out).To(BeNil())
		},
		Entry("empty", "", codec.ErrInvalidLength),
		Entry("short", "abc", codec.ErrInvalidLength),
		Entry("five chars", "abcde", codec.ErrInvalidLength),
		Entry("illegal character", "ab!=", codec.ErrInvalidCharacter),
		Entry("pad too early", "A===", codec.ErrInvalidCharacter),
		Entry("data after pad", "AB=C", codec.ErrInvalidCharacter),
		Entry("pad in middle group", "TQ==TWFu", codec.ErrInvalidCharacter),
		Entry("whitespace", "TW u", codec.ErrInvalidCharacter),
	)

	It("reports the offending offset", func() {
		_, err := codec.Decode("TWFuab!=")
		var cerr *codec.CorruptInputError
		Expect(errors.As(err, &cerr)).To(BeTrue())
		Expect(cerr.Offset).To(Equal(6))
		Expect(cerr.Char).To(Equal(byte('!')))
	})

	It("emits 1, 2 or 3 bytes per group by padding count", func() {
		Expect(codec.Decode("TQ==")).To(Equal([]byte("M")))
		Expect(codec.Decode("TWE=")).To(Equal([]byte("Ma")))
		Expect(codec.Decode("TWFu")).To(Equal([]byte("Man")))
	})

	It("trims whitespace in DecodeString", func() {
		Expect(codec.DecodeString("  TWFu\n")).To(Equal([]byte("Man")))
	})
})
