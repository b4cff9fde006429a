package vm_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/sapsim/insts"
	"github.com/sarchlab/sapsim/vm"
)

var _ = Describe("ALU", func() {
	var (
		cpu *vm.CPU
		alu *vm.ALU
	)

	BeforeEach(func() {
		cpu = &vm.CPU{}
		alu = vm.NewALU(cpu)
	})

	Describe("Add", func() {
		It("should wrap to 16 bits and set carry=overflow on overflow", func() {
			cpu.Acc = 32767

			alu.Add(1)

			Expect(cpu.Acc).To(Equal(insts.Word(-32768)))
			Expect(cpu.Flags.C).To(BeTrue())
			// Carry and overflow are the same computed bit.
			Expect(cpu.Flags.V).To(BeTrue())
			// Zero and negative come from the wide intermediate, which
			// is a positive 32768.
			Expect(cpu.Flags.N).To(BeFalse())
			Expect(cpu.Flags.Z).To(BeFalse())
		})

		It("should leave carry and overflow clear in range", func() {
			cpu.Acc = 10

			alu.Add(5)

			Expect(cpu.Acc).To(Equal(insts.Word(15)))
			Expect(cpu.Flags.C).To(BeFalse())
			Expect(cpu.Flags.V).To(BeFalse())
		})
	})

	Describe("Sub", func() {
		It("should set the zero flag on a zero result", func() {
			cpu.Acc = 7

			alu.Sub(7)

			Expect(cpu.Acc).To(BeZero())
			Expect(cpu.Flags.Z).To(BeTrue())
			Expect(cpu.Flags.N).To(BeFalse())
		})

		It("should set negative on a negative intermediate", func() {
			cpu.Acc = -32768

			alu.Sub(1)

			Expect(cpu.Acc).To(Equal(insts.Word(32767)))
			Expect(cpu.Flags.N).To(BeTrue())
			Expect(cpu.Flags.C).To(BeTrue())
			Expect(cpu.Flags.V).To(BeTrue())
		})
	})

	Describe("Mul", func() {
		It("should truncate a wide product into the accumulator", func() {
			cpu.Acc = 1000

			alu.Mul(1000)

			// 1000000 & 0xFFFF = 0x4240, reinterpreted as signed.
			Expect(cpu.Acc).To(Equal(insts.Word(16960)))
			Expect(cpu.Flags.C).To(BeTrue())
			Expect(cpu.Flags.V).To(BeTrue())
		})
	})

	Describe("Div", func() {
		It("should divide in the wide intermediate", func() {
			cpu.Acc = -32768

			alu.Div(-1)

			// 32768 does not fit; truncates back to -32768.
			Expect(cpu.Acc).To(Equal(insts.Word(-32768)))
			Expect(cpu.Flags.C).To(BeTrue())
			Expect(cpu.Flags.V).To(BeTrue())
		})
	})

	Describe("Logic operations", func() {
		It("should always clear carry and overflow", func() {
			cpu.Acc = 32767
			alu.Add(1) // sets C and V

			cpu.Acc = 0b1100
			alu.And(0b1010)

			Expect(cpu.Acc).To(Equal(insts.Word(0b1000)))
			Expect(cpu.Flags.C).To(BeFalse())
			Expect(cpu.Flags.V).To(BeFalse())
		})

		It("should set zero and negative from the bitwise result", func() {
			cpu.Acc = 0b0101
			alu.Xor(0b0101)
			Expect(cpu.Flags.Z).To(BeTrue())

			cpu.Acc = -1
			alu.Or(0)
			Expect(cpu.Flags.N).To(BeTrue())
		})
	})

	Describe("Cmp", func() {
		It("should update flags without touching the accumulator", func() {
			cpu.Acc = 10

			alu.Cmp(10)

			Expect(cpu.Acc).To(Equal(insts.Word(10)))
			Expect(cpu.Flags.Z).To(BeTrue())

			alu.Cmp(20)

			Expect(cpu.Acc).To(Equal(insts.Word(10)))
			Expect(cpu.Flags.N).To(BeTrue())
			Expect(cpu.Flags.Z).To(BeFalse())
		})
	})

	Describe("Load", func() {
		It("should move the value and never set carry or overflow", func() {
			cpu.Acc = 32767
			alu.Add(1) // sets C and V

			alu.Load(-5)

			Expect(cpu.Acc).To(Equal(insts.Word(-5)))
			Expect(cpu.Flags.N).To(BeTrue())
			Expect(cpu.Flags.Z).To(BeFalse())
			Expect(cpu.Flags.C).To(BeFalse())
			Expect(cpu.Flags.V).To(BeFalse())
		})
	})
})
