// Command chip16 is the toolchain entry point: assemble, run, inspect, and
// disassemble chip16 programs.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/lookbusy1344/chip16/assembler"
	"github.com/lookbusy1344/chip16/config"
	"github.com/lookbusy1344/chip16/cpu"
	"github.com/lookbusy1344/chip16/memory"
	"github.com/lookbusy1344/chip16/rom"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X main.Version=v1.2.3".
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "chip16",
		Short:   "Assemble, run, and inspect chip16 programs",
		Version: Version,
	}

	root.AddCommand(newAsmCmd(), newRunCmd(), newRomInfoCmd(), newDisasmCmd())
	return root
}

func newAsmCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "asm <in.s>",
		Short: "Assemble chip16 source into a flat binary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0]) // #nosec G304 -- user-supplied source path
			if err != nil {
				return fmt.Errorf("asm: %w", err)
			}

			out, err := assembler.Assemble(string(src))
			if err != nil {
				return fmt.Errorf("asm: %w", err)
			}

			if outPath == "" {
				outPath = replaceExt(args[0], ".bin")
			}
			if err := os.WriteFile(outPath, out, 0600); err != nil {
				return fmt.Errorf("asm: write %s: %w", outPath, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d bytes to %s\n", len(out), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default: input with .bin extension)")
	return cmd
}

func newRunCmd() *cobra.Command {
	var maxCycles uint64
	var useConfig bool

	cmd := &cobra.Command{
		Use:   "run <rom.c16>",
		Short: "Load and execute a chip16 ROM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0]) // #nosec G304 -- user-supplied ROM path
			if err != nil {
				return fmt.Errorf("run: %w", err)
			}
			defer f.Close()

			img, err := rom.Load(f)
			if err != nil {
				return fmt.Errorf("run: %w", err)
			}
			if err := img.VerifyChecksum(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}

			limit := maxCycles
			if useConfig {
				cfg, err := config.Load()
				if err != nil {
					return fmt.Errorf("run: %w", err)
				}
				limit = cfg.Execution.MaxCycles
			}

			mem := memory.New()
			if err := img.CopyInto(mem); err != nil {
				return fmt.Errorf("run: %w", err)
			}

			c := cpu.NewCPU(mem)
			c.PC = img.Header.StartAddress

			steps, runErr := c.Run(int(limit))
			fmt.Fprintf(cmd.OutOrStdout(), "executed %d instructions\n", steps)

			var invalid *cpu.InvalidOpcodeError
			var oob *memory.AddressOutOfRangeError
			switch {
			case runErr == nil:
				return nil
			case errors.As(runErr, &invalid):
				return fmt.Errorf("run: halted: %w", runErr)
			case errors.As(runErr, &oob):
				return fmt.Errorf("run: halted: %w", runErr)
			default:
				return fmt.Errorf("run: %w", runErr)
			}
		},
	}

	cmd.Flags().Uint64Var(&maxCycles, "max-cycles", 0, "stop after N instructions (0 = unlimited)")
	cmd.Flags().BoolVar(&useConfig, "use-config", false, "take the cycle cap from the saved config instead of --max-cycles")
	return cmd
}

func newRomInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rom-info <rom.c16>",
		Short: "Print a ROM's header fields and checksum status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0]) // #nosec G304 -- user-supplied ROM path
			if err != nil {
				return fmt.Errorf("rom-info: %w", err)
			}
			defer f.Close()

			img, err := rom.Load(f)
			if err != nil {
				return fmt.Errorf("rom-info: %w", err)
			}

			out := cmd.OutOrStdout()
			if !img.HasHeader {
				fmt.Fprintf(out, "headerless ROM, %d bytes, assumed entry 0x%04X\n", len(img.Payload), img.Header.StartAddress)
				return nil
			}

			fmt.Fprintf(out, "version:     %s\n", img.Header.Version())
			fmt.Fprintf(out, "size:        0x%X\n", img.Header.Size)
			fmt.Fprintf(out, "start:       0x%04X\n", img.Header.StartAddress)
			fmt.Fprintf(out, "checksum:    0x%08X\n", img.Header.Checksum)

			if err := img.VerifyChecksum(); err != nil {
				fmt.Fprintf(out, "checksum ok: no (%v)\n", err)
			} else {
				fmt.Fprintf(out, "checksum ok: yes\n")
			}
			return nil
		},
	}
	return cmd
}

func newDisasmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disasm <rom.c16>",
		Short: "Disassemble a ROM's payload back into chip16 assembly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0]) // #nosec G304 -- user-supplied ROM path
			if err != nil {
				return fmt.Errorf("disasm: %w", err)
			}
			defer f.Close()

			img, err := rom.Load(f)
			if err != nil {
				return fmt.Errorf("disasm: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, line := range assembler.Disassemble(img.Payload) {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	return cmd
}

func replaceExt(path, ext string) string {
	for i := len(path) - 1; i >= 0 && path[i] != '/'; i-- {
		if path[i] == '.' {
			return path[:i] + ext
		}
	}
	return path + ext
}
