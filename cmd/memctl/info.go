package main

import (
	"fmt"

	"github.com/framekit/framekit/pmm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := newInfoCmd()
	addMachineFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Report the memory layout of the simulated machine",
		Long: `The info command brings up the memory subsystem and reports the
resulting layout: detected sizes, reserved regions, the bootstrap
watermark, and free-frame accounting.

Example:
  memctl info
  memctl info --ext-kb 8192 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo()
		},
	}
}

// MemoryInfo is the report produced by the info command.
type MemoryInfo struct {
	TotalFrames    uint32
	BaseFrames     uint32
	ExtendedFrames uint32
	TotalBytes     uint64
	Watermark      uint64
	FreeFrames     int
	FramesPerHuge  int
	Reserved       []ReservedInfo
}

// ReservedInfo describes one region excluded from allocation.
type ReservedInfo struct {
	Start  uint64
	End    uint64
	Frames uint32
	Name   string
}

func runInfo() error {
	m, err := bringUp()
	if err != nil {
		return err
	}
	defer m.Close()

	mmap := m.Map()
	info := MemoryInfo{
		TotalFrames:    mmap.NPages,
		BaseFrames:     mmap.BasePages,
		ExtendedFrames: mmap.ExtPages,
		TotalBytes:     uint64(mmap.TotalBytes()),
		Watermark:      uint64(m.Watermark()),
		FreeFrames:     m.Allocator().FreeCount(),
		FramesPerHuge:  pmm.FramesPerHuge,
	}
	for _, r := range m.Allocator().Reserved() {
		info.Reserved = append(info.Reserved, ReservedInfo{
			Start:  uint64(r.Start),
			End:    uint64(r.End),
			Frames: r.Frames(),
			Name:   r.Name,
		})
	}

	if jsonOut {
		return printJSON(info)
	}

	printInfo("\nMemory Layout:\n")
	printInfo("  %s\n", mmap)
	printInfo("  Total frames: %d (%s)\n", info.TotalFrames, formatBytes(info.TotalBytes))
	printInfo("  Bootstrap watermark: %#x\n", info.Watermark)
	printInfo("  Free frames: %d\n", info.FreeFrames)
	printInfo("  Huge run: %d frames (%s)\n", info.FramesPerHuge, formatBytes(pmm.HugePageSize))
	printInfo("  Reserved regions:\n")
	for _, r := range info.Reserved {
		printInfo("    [%#x, %#x) %-28s %d frames\n", r.Start, r.End, r.Name, r.Frames)
	}
	return nil
}

func formatBytes(n uint64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
