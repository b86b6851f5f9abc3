package bench

import (
	"errors"

	"github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/quadsim/internal/compute"
	"github.com/san-kum/quadsim/internal/quad"
)

// linearEngine reports a time of base + slope*segments.
type linearEngine struct {
	name        string
	base, slope float64
}

func (l *linearEngine) Name() string    { return l.name }
func (l *linearEngine) Available() bool { return true }
func (l *linearEngine) Cleanup()        {}

func (l *linearEngine) Integrate(p quad.Params) (quad.Result, error) {
	return quad.Result{Time: l.base + l.slope*float64(p.Segments()), Value: 1}, nil
}

var _ = ginkgo.Describe("Sweep", func() {
	sizes := []int{10, 100, 1000, 10000}

	ginkgo.It("averages every engine at every size", func() {
		engines := []compute.Engine{
			&linearEngine{name: "host", slope: 0.01},
			&linearEngine{name: "device", base: 5, slope: 0.001},
		}
		sw, err := RunSweep(engines, 2, 1202, sizes, 3)

		Expect(err).NotTo(HaveOccurred())
		Expect(sw.Engines).To(Equal([]string{"host", "device"}))
		for i, want := range []float64{0.1, 1, 10, 100} {
			Expect(sw.Averages[0][i]).To(BeNumerically("~", want, 1e-12))
		}
		Expect(sw.Averages[1][3]).To(BeNumerically("~", 15, 1e-9))
	})

	ginkgo.It("finds where the fixed-overhead engine starts winning", func() {
		engines := []compute.Engine{
			&linearEngine{name: "host", slope: 0.01},
			&linearEngine{name: "device", base: 5, slope: 0.001},
		}
		sw, err := RunSweep(engines, 2, 1202, sizes, 1)
		Expect(err).NotTo(HaveOccurred())

		size, ok := sw.Crossover(0, 1)
		Expect(ok).To(BeTrue())
		Expect(size).To(Equal(1000))
	})

	ginkgo.It("sorts the ladder before sweeping", func() {
		engines := []compute.Engine{
			&linearEngine{name: "host", slope: 0.01},
			&linearEngine{name: "device", base: 5, slope: 0.001},
		}
		unordered := []int{10000, 10, 1000, 100}
		sw, err := RunSweep(engines, 2, 1202, unordered, 1)
		Expect(err).NotTo(HaveOccurred())

		Expect(sw.Sizes).To(Equal([]int{10, 100, 1000, 10000}))
		Expect(unordered).To(Equal([]int{10000, 10, 1000, 100}))
		Expect(sw.Averages[0][3]).To(BeNumerically("~", 100, 1e-9))

		size, ok := sw.Crossover(0, 1)
		Expect(ok).To(BeTrue())
		Expect(size).To(Equal(1000))
	})

	ginkgo.It("reports no crossover when the fast engine never wins", func() {
		sw := &Sweep{Sizes: sizes, Averages: [][]float64{{1, 1, 1, 1}, {2, 2, 2, 2}}}
		_, ok := sw.Crossover(0, 1)
		Expect(ok).To(BeFalse())

		_, ok = sw.Crossover(0, 7)
		Expect(ok).To(BeFalse())
	})

	ginkgo.It("rejects an invalid ladder before running anything", func() {
		engine := &scriptedEngine{times: []float64{1}}
		_, err := RunSweep([]compute.Engine{engine}, 2, 1202, []int{100, 101}, 1)

		Expect(errors.Is(err, quad.ErrConfiguration)).To(BeTrue())
		Expect(engine.calls).To(BeZero())
	})

	ginkgo.It("rejects an empty engine list", func() {
		_, err := RunSweep(nil, 2, 1202, sizes, 1)
		Expect(errors.Is(err, quad.ErrConfiguration)).To(BeTrue())
	})
})
