package main

import (
	"fmt"

	"github.com/framekit/framekit/pmm"
	"github.com/framekit/framekit/pmm/boot"
	"github.com/framekit/framekit/pmm/verify"
	"github.com/spf13/cobra"
)

var (
	baseKB     uint16
	extKB      uint16
	kernKB     uint
	skipChecks bool
)

func init() {
	cmd := newBootCmd()
	addMachineFlags(cmd)
	cmd.Flags().BoolVar(&skipChecks, "skip-checks", false, "Skip the boot self-checks")
	rootCmd.AddCommand(cmd)
}

// addMachineFlags registers the simulated machine shape shared by the boot
// and info commands.
func addMachineFlags(cmd *cobra.Command) {
	cmd.Flags().Uint16Var(&baseKB, "base-kb", 640, "Base (conventional) memory in KB")
	cmd.Flags().Uint16Var(&extKB, "ext-kb", 63*1024, "Extended memory in KB")
	cmd.Flags().UintVar(&kernKB, "kernel-kb", 128, "Size of the kernel image in KB")
}

func newBootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "boot",
		Short: "Bring up the memory subsystem and run the self-checks",
		Long: `The boot command simulates the bring-up sequence: memory detection via
NVRAM, the bootstrap carve-out of the frame metadata array, free-list
construction, and both self-check stages. Any self-check failure aborts
with a nonzero exit status.

Example:
  memctl boot
  memctl boot --base-kb 640 --ext-kb 32768
  memctl boot --skip-checks --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoot()
		},
	}
}

func runBoot() error {
	m, err := bringUp()
	if err != nil {
		return err
	}
	defer m.Close()

	printInfo("%s\n", m.Map())
	printVerbose("bootstrap watermark: %#x\n", m.Watermark())
	for _, r := range m.Allocator().Reserved() {
		printVerbose("reserved: %s\n", r)
	}

	if skipChecks {
		printInfo("self-checks skipped\n")
		return nil
	}

	log := bootLogger()
	if err := verify.FreeList(m, true, log); err != nil {
		return fmt.Errorf("boot: %w", err)
	}
	printInfo("free-list check passed\n")

	if err := verify.Allocator(m, log); err != nil {
		return fmt.Errorf("boot: %w", err)
	}
	printInfo("allocator check passed\n")

	printInfo("free frames: %d of %d\n", m.Allocator().FreeCount(), m.NPages())
	return nil
}

func bringUp() (*boot.Memory, error) {
	return boot.Init(boot.Config{
		BaseKB:       baseKB,
		ExtKB:        extKB,
		KernImageEnd: pmm.ExtPhysMem + uintptr(kernKB)*1024,
		Logger:       bootLogger(),
	})
}
