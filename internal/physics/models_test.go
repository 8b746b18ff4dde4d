package physics_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/odelab/internal/dynamo"
	"github.com/san-kum/odelab/internal/integrators"
	"github.com/san-kum/odelab/internal/metrics"
	"github.com/san-kum/odelab/internal/physics"
	"github.com/san-kum/odelab/internal/sim"
)

func drive(m *physics.Model, scheme dynamo.Scheme) *sim.Result {
	st, err := m.Stepper(scheme)
	Expect(err).NotTo(HaveOccurred())
	res, err := sim.New(st).Run(context.Background(), m.Init, m.Schedule, m.Stop)
	Expect(err).NotTo(HaveOccurred())
	return res
}

var _ = Describe("Decay", func() {
	It("tracks the analytic solution with Heun", func() {
		d := physics.NewDecay()
		m, err := physics.Lookup("decay", nil)
		Expect(err).NotTo(HaveOccurred())

		tr, err := integrators.IntegrateHeun(physics.RateWithParams, dynamo.Params{d.K}, m.Schedule, m.Init)
		Expect(err).NotTo(HaveOccurred())
		Expect(tr.Len()).To(Equal(50))

		for i := 0; i < tr.Len(); i++ {
			Expect(tr.At(i, 0)).To(BeNumerically("~", d.Analytic(tr.Time(i)), 2.0))
		}
	})

	It("follows the parent/daughter chain", func() {
		c := physics.NewChainDecay()
		tr, err := integrators.IntegrateRK4(c.Rate, dynamo.Schedule{TMin: 0, TMax: 30, Step: 0.05}, dynamo.State{c.N0, 0})
		Expect(err).NotTo(HaveOccurred())

		for _, i := range []int{0, 100, 300, 600} {
			n1, n2 := c.Analytic(tr.Time(i))
			Expect(tr.At(i, 0)).To(BeNumerically("~", n1, 1e-6))
			Expect(tr.At(i, 1)).To(BeNumerically("~", n2, 1e-6))
		}
	})

	It("solves the Riccati equation", func() {
		r := physics.NewRiccati()
		tr, err := integrators.IntegrateRK4(r.Rate, dynamo.Schedule{TMin: 0, TMax: 1, Step: 0.001}, dynamo.State{0})
		Expect(err).NotTo(HaveOccurred())
		tf, y := tr.Final()
		Expect(y[0]).To(BeNumerically("~", r.Analytic(tf), 1e-6*r.Analytic(tf)))
	})
})

var _ = Describe("Cooling", func() {
	It("stays between the initial temperature and the ambient swing", func() {
		m, err := physics.Lookup("cooling", nil)
		Expect(err).NotTo(HaveOccurred())
		tr, err := m.Integrate(dynamo.SchemeHeun, m.Schedule, m.Init)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < tr.Len(); i++ {
			Expect(tr.At(i, 0)).To(And(BeNumerically(">=", 0.0), BeNumerically("<=", 130.0)))
		}
	})
})

var _ = Describe("Drag", func() {
	It("approaches terminal velocity when falling", func() {
		d := physics.NewVerticalDrag()
		tr, err := integrators.IntegrateRK4(d.Rate, dynamo.Schedule{TMin: 0, TMax: 30, Step: 0.01}, dynamo.State{1000, 0})
		Expect(err).NotTo(HaveOccurred())
		_, y := tr.Final()
		Expect(y[1]).To(BeNumerically("~", -d.Vt, 1e-3))
	})

	It("stops the vertical throw at the ground", func() {
		m, err := physics.Lookup("vertical-drag", nil)
		Expect(err).NotTo(HaveOccurred())
		apex := metrics.NewExtremes(0, "y")

		st, err := m.Stepper(dynamo.SchemeHeun)
		Expect(err).NotTo(HaveOccurred())
		d := sim.New(st)
		d.AddMetric(apex)
		res, err := d.Run(context.Background(), m.Init, m.Schedule, m.Stop)
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Stopped).To(BeTrue())
		// Drag lowers the apex below the vacuum value v0²/2g and makes
		// the fall slower than the rise.
		Expect(apex.Max()).To(BeNumerically("<", 20.0*20.0/(2*9.81)))
		tf, _ := res.Trajectory.Final()
		Expect(tf - apex.TimeOfMax()).To(BeNumerically(">", apex.TimeOfMax()))
	})

	It("shortens the projectile range compared with vacuum", func() {
		m, err := physics.Lookup("projectile", nil)
		Expect(err).NotTo(HaveOccurred())
		res := drive(m, dynamo.SchemeRK4)
		_, y := res.Trajectory.Final()

		p := physics.NewProjectile()
		rad := p.Angle * math.Pi / 180
		vacuum := p.V0 * math.Cos(rad) * (p.V0*math.Sin(rad) + math.Sqrt(math.Pow(p.V0*math.Sin(rad), 2)+2*p.G*p.Height)) / p.G
		Expect(y[0]).To(BeNumerically(">", 0.0))
		Expect(y[0]).To(BeNumerically("<", vacuum))
	})

	It("accepts launch overrides", func() {
		m, err := physics.Lookup("projectile", map[string]float64{"angle": 90, "height": 0})
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Init[2]).To(BeNumerically("~", 0.0, 1e-12))
		Expect(m.Params["angle"]).To(Equal(90.0))
	})
})

var _ = Describe("Cyclist", func() {
	It("finishes the course", func() {
		m, err := physics.Lookup("cyclist", nil)
		Expect(err).NotTo(HaveOccurred())
		res := drive(m, dynamo.SchemeEuler)
		Expect(res.Stopped).To(BeTrue())
		_, y := res.Trajectory.Final()
		Expect(y[0]).To(BeNumerically(">=", 3000.0))
	})

	It("fails when stalled", func() {
		c := physics.NewCyclist()
		_, err := c.Rate(0, dynamo.State{0, 0})
		Expect(err).To(MatchError(physics.ErrStalled))

		_, err = integrators.IntegrateEuler(c.Rate, dynamo.Schedule{TMin: 0, TMax: 1, Step: 0.1}, dynamo.State{0, -1})
		Expect(err).To(MatchError(physics.ErrStalled))
	})
})

var _ = Describe("Orbit", func() {
	It("conserves energy under RK4", func() {
		m, err := physics.Lookup("orbit", nil)
		Expect(err).NotTo(HaveOccurred())
		st, err := m.Stepper(dynamo.SchemeRK4)
		Expect(err).NotTo(HaveOccurred())

		d := sim.New(st)
		d.AddMetric(metrics.NewEnergyDrift(m.Energy))
		res, err := d.Run(context.Background(), m.Init, m.Schedule, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Metrics["energy_drift"]).To(BeNumerically("<", 1e-3))
	})

	It("is bound at the default launch speed", func() {
		o := physics.NewOrbit()
		Expect(o.Energy(o.Init())).To(BeNumerically("<", 0.0))
	})
})

var _ = Describe("Oscillators", func() {
	It("integrates the high-order and companion forms identically", func() {
		m, err := physics.Lookup("damped-spring", nil)
		Expect(err).NotTo(HaveOccurred())

		high, err := m.Integrate(dynamo.SchemeRK4, m.Schedule, m.Init)
		Expect(err).NotTo(HaveOccurred())
		plain, err := integrators.IntegrateRK4(m.Func(), m.Schedule, m.Init)
		Expect(err).NotTo(HaveOccurred())

		_, a := high.Final()
		_, b := plain.Final()
		Expect(a[0]).To(BeNumerically("~", b[0], 1e-12))
		Expect(a[1]).To(BeNumerically("~", b[1], 1e-12))
	})

	It("returns the harmonic oscillator to its start after one period", func() {
		m, err := physics.Lookup("oscillator", map[string]float64{"omega": 2})
		Expect(err).NotTo(HaveOccurred())
		tr, err := m.Integrate(dynamo.SchemeRK4, m.Schedule, m.Init)
		Expect(err).NotTo(HaveOccurred())
		_, y := tr.Final()
		Expect(y.Sub(m.Init).Norm()).To(BeNumerically("<", 1e-5))
	})

	It("keeps the chaotic pendulum finite", func() {
		m, err := physics.Lookup("driven-pendulum", nil)
		Expect(err).NotTo(HaveOccurred())
		tr, err := m.Integrate(dynamo.SchemeRK4, m.Schedule, m.Init)
		Expect(err).NotTo(HaveOccurred())
		_, y := tr.Final()
		Expect(y.IsValid()).To(BeTrue())
	})
})

var _ = Describe("Pitch", func() {
	fly := func(t physics.PitchType) dynamo.State {
		p := physics.NewPitch(t)
		tr, err := integrators.IntegrateRK4(p.Rate, dynamo.Schedule{TMin: 0, TMax: 1, Step: 0.001}, p.Init())
		Expect(err).NotTo(HaveOccurred())
		for i := 0; i < tr.Len(); i++ {
			if s := tr.State(i); physics.AtPlate(tr.Time(i), s) {
				return s
			}
		}
		Fail("pitch never reached the plate")
		return nil
	}

	It("orders the heights at the plate by spin direction", func() {
		fast := fly(physics.Fastball)
		none := fly(physics.NoSpin)
		curve := fly(physics.Curveball)
		Expect(fast[2]).To(BeNumerically(">", none[2]))
		Expect(none[2]).To(BeNumerically(">", curve[2]))
	})

	It("breaks the slider sideways and leaves the no-spin pitch straight", func() {
		Expect(fly(physics.Slider)[1]).To(BeNumerically(">", 0.0))
		Expect(fly(physics.NoSpin)[1]).To(BeNumerically("~", 0.0, 1e-12))
	})

	It("takes the spin axis and launch angle in degrees", func() {
		curve := physics.NewPitch(physics.Curveball)
		m, err := physics.Lookup("pitch", map[string]float64{"phi": 45, "spin": curve.Spin, "launch": 10})
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Init[5] / m.Init[3]).To(BeNumerically("~", math.Tan(10*math.Pi/180), 1e-12))

		curve.LaunchAngle = 10
		Expect(m.Init).To(Equal(curve.Init()))
		want, err := curve.Rate(0, curve.Init())
		Expect(err).NotTo(HaveOccurred())
		got, err := m.Rate(0, m.Init)
		Expect(err).NotTo(HaveOccurred())
		for i := range want {
			Expect(got[i]).To(BeNumerically("~", want[i], 1e-12))
		}
	})

	It("weakens drag at high speed", func() {
		Expect(physics.DragCoefficient(20)).To(BeNumerically(">", physics.DragCoefficient(50)))
		Expect(physics.DragCoefficient(35)).To(BeNumerically("~", 0.0039+0.0029, 1e-12))
	})

	DescribeTable("parses pitch names",
		func(in string, want physics.PitchType) {
			got, err := physics.ParsePitchType(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("short fastball", "f", physics.Fastball),
		Entry("upper curve", "C", physics.Curveball),
		Entry("slider", "slider", physics.Slider),
		Entry("screwball code", "sc", physics.Screwball),
		Entry("no spin", "n", physics.NoSpin),
	)

	It("rejects unknown pitches", func() {
		_, err := physics.ParsePitchType("knuckleball")
		Expect(err).To(MatchError(physics.ErrUnknownPitch))
	})
})

var _ = Describe("Registry", func() {
	It("builds every registered model", func() {
		for _, name := range physics.Names() {
			m, err := physics.Lookup(name, nil)
			Expect(err).NotTo(HaveOccurred(), name)
			Expect(m.Schedule.Validate()).To(Succeed(), name)
			Expect(dynamo.ValidateInitial(m.Init)).To(Succeed(), name)
			Expect(m.Labels).To(HaveLen(len(m.Init)), name)
			Expect((m.Rate == nil) != (m.Highest == nil)).To(BeTrue(), name)
			Expect(physics.Describe(name)).NotTo(BeEmpty())
		}
	})

	It("rejects unknown models and parameters", func() {
		_, err := physics.Lookup("warp-drive", nil)
		Expect(err).To(MatchError(physics.ErrUnknownModel))
		_, err = physics.Lookup("lorenz", map[string]float64{"gamma": 1})
		Expect(err).To(MatchError(physics.ErrUnknownParam))
	})

	It("lists parameters", func() {
		names, err := physics.ParamNames("lorenz")
		Expect(err).NotTo(HaveOccurred())
		Expect(names).To(Equal([]string{"beta", "rho", "sigma"}))
	})
})
