package vm_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/sapsim/vm"
)

var _ = Describe("Config", func() {
	It("should default to a full-height stack and 32 breakpoints", func() {
		cfg := vm.DefaultConfig()
		Expect(cfg.StackTop).To(Equal(uint16(vm.MemorySize - 1)))
		Expect(cfg.MaxBreakpoints).To(Equal(32))
	})

	It("should reject a stack top outside memory", func() {
		cfg := vm.Config{StackTop: vm.MemorySize, MaxBreakpoints: 32}
		Expect(cfg.Validate()).NotTo(Succeed())
	})

	It("should reject a non-positive breakpoint cap", func() {
		cfg := vm.Config{StackTop: 100, MaxBreakpoints: 0}
		Expect(cfg.Validate()).NotTo(Succeed())
	})

	Describe("LoadConfig", func() {
		It("should read overrides from JSON and keep defaults elsewhere", func() {
			path := filepath.Join(GinkgoT().TempDir(), "machine.json")
			Expect(os.WriteFile(path, []byte(`{"stack_top": 512}`), 0o644)).To(Succeed())

			cfg, err := vm.LoadConfig(path)

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.StackTop).To(Equal(uint16(512)))
			Expect(cfg.MaxBreakpoints).To(Equal(32))
		})

		It("should surface a missing file", func() {
			_, err := vm.LoadConfig(filepath.Join(GinkgoT().TempDir(), "absent.json"))
			Expect(err).To(HaveOccurred())
		})

		It("should reject an invalid configuration", func() {
			path := filepath.Join(GinkgoT().TempDir(), "machine.json")
			Expect(os.WriteFile(path, []byte(`{"max_breakpoints": -1}`), 0o644)).To(Succeed())

			_, err := vm.LoadConfig(path)

			Expect(err).To(HaveOccurred())
		})
	})
})
