package bench

import (
	"errors"

	"github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/quadsim/internal/compute"
	"github.com/san-kum/quadsim/internal/quad"
)

type scriptedEngine struct {
	times []float64
	calls int
}

func (s *scriptedEngine) Name() string    { return "scripted" }
func (s *scriptedEngine) Available() bool { return true }
func (s *scriptedEngine) Cleanup()        {}

func (s *scriptedEngine) Integrate(p quad.Params) (quad.Result, error) {
	t := s.times[s.calls%len(s.times)]
	s.calls++
	return quad.Result{Time: t, Value: float64(s.calls)}, nil
}

var _ = ginkgo.Describe("Benchmark", func() {
	ginkgo.It("invokes the call exactly runs times", func() {
		calls := 0
		stats, err := Benchmark(func() (quad.Result, error) {
			calls++
			return quad.Result{Time: float64(calls)}, nil
		}, 5)

		Expect(err).NotTo(HaveOccurred())
		Expect(calls).To(Equal(5))
		Expect(stats.Runs).To(Equal(5))
		Expect(stats.Min).To(Equal(1.0))
		Expect(stats.Max).To(Equal(5.0))
		Expect(stats.Average).To(Equal(3.0))
	})

	ginkgo.DescribeTable("rejects non-positive runs",
		func(runs int) {
			called := false
			_, err := Benchmark(func() (quad.Result, error) {
				called = true
				return quad.Result{}, nil
			}, runs)
			Expect(errors.Is(err, quad.ErrConfiguration)).To(BeTrue())
			Expect(called).To(BeFalse())
		},
		ginkgo.Entry("zero", 0),
		ginkgo.Entry("negative", -3),
	)

	ginkgo.It("stops at the first failing call", func() {
		boom := errors.New("boom")
		calls := 0
		_, err := Benchmark(func() (quad.Result, error) {
			calls++
			if calls == 3 {
				return quad.Result{}, boom
			}
			return quad.Result{Time: 1}, nil
		}, 10)

		Expect(err).To(MatchError(boom))
		Expect(calls).To(Equal(3))
	})

	ginkgo.It("ignores the returned value", func() {
		stats, err := Benchmark(func() (quad.Result, error) {
			return quad.Result{Time: 2, Value: -1}, nil
		}, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.Average).To(Equal(2.0))
	})
})

var _ = ginkgo.Describe("Run", func() {
	p := quad.MustParams(2, 1202, 1000)

	ginkgo.It("keeps every sample in order", func() {
		engine := &scriptedEngine{times: []float64{3, 1, 2}}
		seen := 0
		report, err := RunWithCallback(engine, p, 6, func(quad.Result) { seen++ })

		Expect(err).NotTo(HaveOccurred())
		Expect(seen).To(Equal(6))
		Expect(report.Engine).To(Equal("scripted"))
		Expect(report.Samples).To(HaveLen(6))
		Expect(report.Value()).To(Equal(6.0))
		Expect(report.Stats.Min).To(Equal(1.0))
		Expect(report.Stats.Max).To(Equal(3.0))
		Expect(report.Stats.Average).To(Equal(2.0))
		Expect(report.Params).To(Equal(p))
	})

	ginkgo.It("benchmarks the real cpu engine", func() {
		report, err := Run(compute.NewCPUEngine(), p, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Stats.Min).To(BeNumerically("<=", report.Stats.Average))
		Expect(report.Stats.Average).To(BeNumerically("<=", report.Stats.Max))
		Expect(report.Value()).To(BeNumerically("~", 3180, 5))
	})

	ginkgo.It("prefixes errors with the engine name", func() {
		accel := compute.NewAcceleratorEngine(compute.NewCUDADevice())
		if accel.Available() {
			ginkgo.Skip("cuda device present")
		}
		_, err := Run(accel, p, 2)
		Expect(errors.Is(err, quad.ErrEngineUnavailable)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring(accel.Name()))
	})
})
