// Command regsgen generates Go register map packages from CMSIS-SVD device
// descriptions. The emitted definitions are plain reg field and register
// declarations with every access check resolved at generation time.
package main

import (
	"encoding/xml"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"omibyte.io/mmreg/cmd/regsgen/svd"
	"omibyte.io/mmreg/targets"
)

var (
	svdIn     string
	outputDir string
	pkgName   string
	chipName  string
)

var rootCmd = &cobra.Command{
	Use:   "regsgen",
	Short: "Generate a register map package from an SVD description",
	Long: "Parse a CMSIS-SVD device description and emit one Go source file per\n" +
		"peripheral, defining its fields and validated registers. The chip name\n" +
		"selects the target's atomic write alias convention.",
	RunE: func(cmd *cobra.Command, args []string) error {
		buf, err := os.ReadFile(svdIn)
		if err != nil {
			return fmt.Errorf("file io error: %w", err)
		}

		var device svd.DeviceElement
		if err = xml.Unmarshal(buf, &device); err != nil {
			return fmt.Errorf("xml decode error: %w", err)
		}

		target, err := targets.All().FindByChip(chipName)
		if err != nil {
			return fmt.Errorf("chip %q: %w", chipName, err)
		}

		fmt.Println("Generating the register map package for the following device:")
		fmt.Printf("Device:\t\t%s\n", device.Name)
		fmt.Printf("Vendor:\t\t%s\n", device.Vendor)
		fmt.Printf("Peripherals:\t%d\n", len(device.Peripherals.Elements))
		fmt.Printf("Atomic aliases:\t%v\n", target.HasAtomicAliases())

		gen := newGenerator(device, target, pkgName)
		if err = gen.Generate(outputDir); err != nil {
			return fmt.Errorf("generator error: %w", err)
		}

		fmt.Println("Done.")
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&svdIn, "in", "", "input SVD file")
	rootCmd.Flags().StringVar(&outputDir, "out", "", "output directory")
	rootCmd.Flags().StringVar(&pkgName, "package", "device", "output package name")
	rootCmd.Flags().StringVar(&chipName, "chip", "", "target chip name")
	rootCmd.MarkFlagRequired("in")
	rootCmd.MarkFlagRequired("out")
	rootCmd.MarkFlagRequired("chip")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
