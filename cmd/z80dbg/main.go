// Command z80dbg is a small debugging harness around pkg/z80: load a
// memory image, run it for a bounded number of instructions (or until
// HALT), and inspect the resulting register file. It is not a GUI or a
// machine emulator with video/audio peripherals — just the core plus a
// command line, the way a unit test would drive it but runnable by hand.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zilogcore/z80core/pkg/inst"
	"github.com/zilogcore/z80core/pkg/z80"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "z80dbg",
		Short: "Z80 core debugger — run a memory image and inspect register state",
	}

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newDisasmCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var (
		image   string
		romSize int
		loadAt  uint16
		steps   int
		trace   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load a binary image and execute it for a bounded number of steps",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(image)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}

			cpu := z80.New(romSize)
			if loadAt == 0 {
				cpu.LoadROM(data)
			} else {
				cpu.LoadRAM(loadAt, data)
				cpu.WriteReg(z80.RegPC, loadAt)
			}

			total := 0
			for i := 0; i < steps; i++ {
				if cpu.Halted() {
					fmt.Printf("halted after %d instructions\n", i)
					break
				}
				if trace {
					pc := cpu.ReadReg(z80.RegPC)
					line := inst.Disassemble(coreMemory{cpu}, pc)
					fmt.Printf("%04X  %-16s %s\n", pc, hex.EncodeToString(line.Bytes), line.Text)
				}
				total += cpu.Step()
			}

			fmt.Printf("executed %d T-states\n", total)
			dumpRegisters(cpu)

			for _, e := range cpu.Errors() {
				fmt.Fprintf(os.Stderr, "warning: %s\n", e.Error())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&image, "image", "", "path to a binary memory image")
	cmd.Flags().IntVar(&romSize, "rom-size", 0x2000, "read-only prefix size in bytes")
	cmd.Flags().Uint16Var(&loadAt, "load-at", 0, "load the image as RAM at this address and start PC there, instead of as ROM at 0")
	cmd.Flags().IntVar(&steps, "steps", 1000, "maximum instructions to execute")
	cmd.Flags().BoolVar(&trace, "trace", false, "print each instruction before executing it")
	cmd.MarkFlagRequired("image")

	return cmd
}

func newDumpCmd() *cobra.Command {
	var image string
	var romSize int

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Load a binary image and print its initial register state",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(image)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}
			cpu := z80.New(romSize)
			cpu.LoadROM(data)
			dumpRegisters(cpu)
			return nil
		},
	}

	cmd.Flags().StringVar(&image, "image", "", "path to a binary memory image")
	cmd.Flags().IntVar(&romSize, "rom-size", 0x2000, "read-only prefix size in bytes")
	cmd.MarkFlagRequired("image")

	return cmd
}

func newDisasmCmd() *cobra.Command {
	var image string
	var addr uint16
	var count int

	cmd := &cobra.Command{
		Use:   "disasm",
		Short: "Disassemble instructions starting at an address",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(image)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}
			mem := z80.NewFlatMemory(len(data))
			mem.LoadROM(data)

			pc := addr
			for i := 0; i < count; i++ {
				line := inst.Disassemble(mem, pc)
				fmt.Printf("%04X  %-16s %s\n", line.Addr, hex.EncodeToString(line.Bytes), line.Text)
				pc += uint16(len(line.Bytes))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&image, "image", "", "path to a binary memory image")
	cmd.Flags().Uint16Var(&addr, "addr", 0, "start address")
	cmd.Flags().IntVar(&count, "count", 16, "number of instructions to disassemble")
	cmd.MarkFlagRequired("image")

	return cmd
}

// coreMemory adapts *z80.CPU to inst.ByteReader for trace output without
// exposing the core's full Memory interface to the disassembler.
type coreMemory struct{ cpu *z80.CPU }

func (m coreMemory) FetchByte(addr uint16) uint8 { return m.cpu.PeekByte(addr) }

func dumpRegisters(cpu *z80.CPU) {
	fmt.Printf("AF=%04X BC=%04X DE=%04X HL=%04X\n",
		cpu.ReadReg(z80.RegAF), cpu.ReadReg(z80.RegBC), cpu.ReadReg(z80.RegDE), cpu.ReadReg(z80.RegHL))
	fmt.Printf("IX=%04X IY=%04X SP=%04X PC=%04X\n",
		cpu.ReadReg(z80.RegIX), cpu.ReadReg(z80.RegIY), cpu.ReadReg(z80.RegSP), cpu.ReadReg(z80.RegPC))
	fmt.Printf("AF'=%04X BC'=%04X DE'=%04X HL'=%04X\n",
		cpu.ReadReg(z80.RegAF2), cpu.ReadReg(z80.RegBC2), cpu.ReadReg(z80.RegDE2), cpu.ReadReg(z80.RegHL2))
	fmt.Printf("I=%02X R=%02X halted=%v\n",
		cpu.ReadReg(z80.RegI), cpu.ReadReg(z80.RegR), cpu.Halted())
}
