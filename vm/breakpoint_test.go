package vm_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/sapsim/insts"
	"github.com/sarchlab/sapsim/vm"
)

var _ = Describe("Breakpoints", func() {
	Describe("AddBreakpoint", func() {
		It("should reject an out-of-memory address", func() {
			m := vm.NewVM()
			err := m.AddBreakpoint(vm.MemorySize)
			Expect(errors.Is(err, vm.ErrInvalidAddress)).To(BeTrue())
		})

		It("should reject a duplicate enabled breakpoint", func() {
			m := vm.NewVM()
			Expect(m.AddBreakpoint(5)).To(Succeed())
			Expect(errors.Is(m.AddBreakpoint(5), vm.ErrBreakpointExists)).To(BeTrue())
		})

		It("should reuse a disabled slot before growing", func() {
			m := vm.NewVM()
			Expect(m.AddBreakpoint(1)).To(Succeed())
			Expect(m.AddBreakpoint(2)).To(Succeed())
			Expect(m.RemoveBreakpoint(1)).To(Succeed())

			Expect(m.AddBreakpoint(3)).To(Succeed())

			bps := m.Breakpoints()
			Expect(bps).To(HaveLen(2))
			addrs := []uint16{bps[0].Addr, bps[1].Addr}
			Expect(addrs).To(ConsistOf(uint16(3), uint16(2)))
		})

		It("should cap the table at the configured limit", func() {
			m := vm.NewVM()
			for addr := uint16(0); addr < 32; addr++ {
				Expect(m.AddBreakpoint(addr)).To(Succeed())
			}

			err := m.AddBreakpoint(100)

			Expect(errors.Is(err, vm.ErrBreakpointTableFull)).To(BeTrue())
		})
	})

	Describe("RemoveBreakpoint", func() {
		It("should disable rather than delete", func() {
			m := vm.NewVM()
			Expect(m.AddBreakpoint(5)).To(Succeed())
			Expect(m.RemoveBreakpoint(5)).To(Succeed())
			Expect(m.Breakpoints()).To(BeEmpty())
		})

		It("should report a missing breakpoint", func() {
			m := vm.NewVM()
			err := m.RemoveBreakpoint(5)
			Expect(errors.Is(err, vm.ErrBreakpointNotFound)).To(BeTrue())
		})
	})

	Describe("Stepping", func() {
		It("should trigger before the instruction executes", func() {
			m := newLoaded(arithmetic()...)
			Expect(m.AddBreakpoint(1)).To(Succeed())

			Expect(m.Step().Outcome).To(Equal(vm.OutcomeOK)) // LDA at 0

			res := m.Step()

			Expect(res.Outcome).To(Equal(vm.OutcomeBreakpoint))
			Expect(res.BreakpointAddr).To(Equal(uint16(1)))
			// The instruction at the breakpoint did not run.
			Expect(m.CPU().PC).To(Equal(uint16(1)))
			Expect(m.CPU().Acc).To(Equal(insts.Word(10)))
			Expect(m.State()).To(Equal(vm.StateBreakpoint))
		})

		It("should re-trigger at an unchanged pc until removed", func() {
			m := newLoaded(arithmetic()...)
			Expect(m.AddBreakpoint(0)).To(Succeed())

			for i := 0; i < 4; i++ {
				res := m.Step()
				Expect(res.Outcome).To(Equal(vm.OutcomeBreakpoint))
				Expect(m.CPU().PC).To(Equal(uint16(0)))
			}
			Expect(m.Breakpoints()[0].HitCount).To(Equal(uint64(4)))

			Expect(m.RemoveBreakpoint(0)).To(Succeed())
			Expect(m.Step().Outcome).To(Equal(vm.OutcomeOK))
			Expect(m.CPU().PC).To(Equal(uint16(1)))
		})
	})

	Describe("Run", func() {
		It("should stop at a breakpoint distinctly from halt and error", func() {
			m := newLoaded(arithmetic()...)
			Expect(m.AddBreakpoint(2)).To(Succeed())

			res := m.Run(100)

			Expect(res.Outcome).To(Equal(vm.OutcomeBreakpoint))
			Expect(res.BreakpointAddr).To(Equal(uint16(2)))
			Expect(m.CPU().Acc).To(Equal(insts.Word(15)))

			// Removing the breakpoint lets the run finish.
			Expect(m.RemoveBreakpoint(2)).To(Succeed())
			Expect(m.Run(100).Outcome).To(Equal(vm.OutcomeHalt))
		})
	})

	Describe("Reset", func() {
		It("should keep breakpoints but clear hit counts", func() {
			m := newLoaded(arithmetic()...)
			Expect(m.AddBreakpoint(0)).To(Succeed())
			m.Step()
			Expect(m.Breakpoints()[0].HitCount).To(Equal(uint64(1)))

			m.Reset()

			bps := m.Breakpoints()
			Expect(bps).To(HaveLen(1))
			Expect(bps[0].Addr).To(Equal(uint16(0)))
			Expect(bps[0].HitCount).To(BeZero())
		})
	})
})
