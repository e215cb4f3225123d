package fdtd_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fdtd/internal/fdtd"
	"github.com/san-kum/fdtd/internal/field"
	"github.com/san-kum/fdtd/internal/operator"
)

var _ = Describe("Engine", func() {
	var (
		grid fdtd.Grid
		op   *operator.Operator
		e    *fdtd.Engine
	)

	BeforeEach(func() {
		grid = fdtd.Grid{NX: 6, NY: 5, NZ: 7}
		var err error
		op, err = operator.NewUniform(grid, operator.Lossless(0.5))
		Expect(err).NotTo(HaveOccurred())
		op.PECFaces()
		e, err = fdtd.New(op)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		e.Reset()
		op.Free()
	})

	Describe("construction", func() {
		It("starts with every field zero", func() {
			Expect(e.Energy()).To(BeZero())
			Expect(e.Steps()).To(BeZero())
			Expect(e.Grid()).To(Equal(grid))
		})

		It("uses the classic boundaries by default", func() {
			Expect(e.Boundaries()).To(Equal(fdtd.DefaultBoundaries()))
		})

		It("rejects a provider on a different grid", func() {
			other, err := operator.NewUniform(fdtd.Grid{NX: 6, NY: 5, NZ: 8}, operator.Lossless(0.5))
			Expect(err).NotTo(HaveOccurred())
			mixed := &mixedProvider{Operator: op, other: other}

			_, err = fdtd.New(mixed)
			Expect(err).To(MatchError(fdtd.ErrShapeMismatch))
		})
	})

	Describe("leapfrog stepping", func() {
		It("keeps an all-zero grid at zero", func() {
			for i := 0; i < 10; i++ {
				e.UpdateVoltages()
				e.UpdateCurrents()
			}
			Expect(e.Energy()).To(BeZero())
			Expect(e.Steps()).To(BeEquivalentTo(10))
		})

		It("spreads an impulse without diverging", func() {
			e.SetVoltage(fdtd.Z, 2, 2, 3, 1)
			for i := 0; i < 200; i++ {
				e.UpdateVoltages()
				e.UpdateCurrents()
			}
			Expect(e.Finite()).To(BeTrue())
			Expect(e.MaxAbs()).To(BeNumerically("<", 10))
			Expect(e.Energy()).To(BeNumerically(">", 0))
		})

		It("leaves the PEC faces at zero", func() {
			e.SetVoltage(fdtd.Z, 2, 2, 3, 1)
			for i := 0; i < 50; i++ {
				e.UpdateVoltages()
				e.UpdateCurrents()
			}
			for _, p := range fdtd.Polarizations {
				Expect(e.VoltageAt(p, grid.NX-1, 1, 1)).To(BeZero())
				Expect(e.VoltageAt(p, 1, grid.NY-1, 1)).To(BeZero())
				Expect(e.VoltageAt(p, 1, 1, grid.NZ-1)).To(BeZero())
				Expect(e.VoltageAt(p, 0, 2, 2)).To(BeZero())
				Expect(e.CurrentAt(p, 2, 0, 2)).To(BeZero())
			}
		})
	})

	Describe("teardown", func() {
		It("tolerates repeated resets", func() {
			e.Reset()
			Expect(e.Released()).To(BeTrue())
			Expect(e.Reset).NotTo(Panic())
			Expect(e.Released()).To(BeTrue())
		})

		It("refuses to update a released engine", func() {
			e.Reset()
			Expect(e.UpdateVoltages).To(PanicWith(fdtd.ErrReleased))
			Expect(e.UpdateCurrents).To(PanicWith(fdtd.ErrReleased))
		})

		It("can be initialised again", func() {
			e.SetCurrent(fdtd.Y, 1, 1, 1, 3)
			e.Reset()
			Expect(e.Init()).To(Succeed())
			Expect(e.Energy()).To(BeZero())
			Expect(e.UpdateVoltages).NotTo(Panic())
		})
	})

	DescribeTable("boundary policy names",
		func(name string, want fdtd.Policy) {
			got, err := fdtd.ParsePolicy(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
			Expect(fdtd.ParsePolicy(got.String())).To(Equal(want))
		},
		Entry("mirror", "mirror", fdtd.Mirror),
		Entry("zero", "zero", fdtd.Zero),
		Entry("pec alias", "PEC", fdtd.Zero),
		Entry("periodic", "periodic", fdtd.Periodic),
		Entry("skip", " skip ", fdtd.Skip),
	)

	It("rejects unknown policy names", func() {
		_, err := fdtd.ParsePolicy("absorbing")
		Expect(err).To(MatchError(fdtd.ErrInvalidBoundary))
	})
})

// mixedProvider serves one voltage-update array from a different grid.
type mixedProvider struct {
	*operator.Operator
	other *operator.Operator
}

func (m *mixedProvider) VI(p fdtd.Polarization) *field.Array {
	if p == fdtd.Z {
		return m.other.VI(p)
	}
	return m.Operator.VI(p)
}
