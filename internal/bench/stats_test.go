package bench

import (
	"encoding/json"
	"errors"
	"math"
	"math/rand"

	"github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/quadsim/internal/quad"
)

var _ = ginkgo.Describe("Stats", func() {
	ginkgo.It("starts at +Inf min and zero max and sum", func() {
		s := NewStats()
		Expect(math.IsInf(s.Min, 1)).To(BeTrue())
		Expect(s.Max).To(BeZero())
		Expect(s.Average).To(BeZero())
	})

	ginkgo.It("keeps a running sum until finalized", func() {
		s := NewStats()
		s.Observe(2)
		s.Observe(4)
		Expect(s.Average).To(Equal(6.0))
		Expect(s.Finalized()).To(BeFalse())

		Expect(s.Finalize()).To(Succeed())
		Expect(s.Average).To(Equal(3.0))
		Expect(s.Min).To(Equal(2.0))
		Expect(s.Max).To(Equal(4.0))
	})

	ginkgo.It("does not divide twice", func() {
		s := NewStats()
		s.Observe(10)
		s.Observe(20)
		Expect(s.Finalize()).To(Succeed())
		Expect(s.Finalize()).To(Succeed())
		Expect(s.Average).To(Equal(15.0))
	})

	ginkgo.It("rejects finalizing without samples", func() {
		s := NewStats()
		err := s.Finalize()
		Expect(errors.Is(err, quad.ErrConfiguration)).To(BeTrue())
	})

	ginkgo.It("snapshots without mutating the running sum", func() {
		s := NewStats()
		s.Observe(1)
		s.Observe(3)

		snap, err := s.Snapshot()
		Expect(err).NotTo(HaveOccurred())
		Expect(snap.Average).To(Equal(2.0))
		Expect(s.Average).To(Equal(4.0))
	})

	ginkgo.It("satisfies min <= average <= max for random samples", func() {
		rng := rand.New(rand.NewSource(42))
		for trial := 0; trial < 200; trial++ {
			n := 1 + rng.Intn(50)
			s := NewStats()
			lo, hi := math.Inf(1), 0.0
			for i := 0; i < n; i++ {
				v := rng.Float64() * 100
				lo = math.Min(lo, v)
				hi = math.Max(hi, v)
				s.Observe(v)
			}
			Expect(s.Finalize()).To(Succeed())
			Expect(s.Min).To(Equal(lo))
			Expect(s.Max).To(Equal(hi))
			Expect(s.Average).To(BeNumerically(">=", s.Min-1e-9))
			Expect(s.Average).To(BeNumerically("<=", s.Max+1e-9))
		}
	})
})

var _ = ginkgo.Describe("Stats encoding", func() {
	ginkgo.It("stays finalized after a json round trip", func() {
		s := NewStats()
		s.Observe(1)
		s.Observe(3)
		Expect(s.Finalize()).To(Succeed())

		data, err := json.Marshal(s)
		Expect(err).NotTo(HaveOccurred())

		var decoded Stats
		Expect(json.Unmarshal(data, &decoded)).To(Succeed())
		Expect(decoded.Finalized()).To(BeTrue())

		snap, err := decoded.Snapshot()
		Expect(err).NotTo(HaveOccurred())
		Expect(snap.Average).To(Equal(2.0))
		Expect(snap.Runs).To(Equal(2))
	})

	ginkgo.It("keeps a running sum running", func() {
		s := NewStats()
		s.Observe(5)

		data, err := json.Marshal(s)
		Expect(err).NotTo(HaveOccurred())

		var decoded Stats
		Expect(json.Unmarshal(data, &decoded)).To(Succeed())
		Expect(decoded.Finalized()).To(BeFalse())
		decoded.Observe(7)
		Expect(decoded.Finalize()).To(Succeed())
		Expect(decoded.Average).To(Equal(6.0))
	})
})
