package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/imports"

	"omibyte.io/mmreg/cmd/regsgen/svd"
	"omibyte.io/mmreg/reg"
	"omibyte.io/mmreg/targets"
)

type generator struct {
	device svd.DeviceElement
	target targets.TargetInfo
	pkg    string
}

func newGenerator(device svd.DeviceElement, target targets.TargetInfo, pkg string) *generator {
	return &generator{device: device, target: target, pkg: pkg}
}

// Generate emits one Go source file per peripheral into the output
// directory.
func (g *generator) Generate(out string) error {
	if err := os.MkdirAll(out, 0750); err != nil {
		return err
	}
	for _, periph := range g.device.Peripherals.Elements {
		src, err := g.generatePeripheral(periph)
		if err != nil {
			return err
		}
		fname := filepath.Join(out, strings.ToLower(periph.Name)+".go")
		buf, err := imports.Process(fname, src, nil)
		if err != nil {
			return fmt.Errorf("error formatting %s: %v", fname, err)
		}
		if err := os.WriteFile(fname, buf, 0644); err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) generatePeripheral(periph svd.PeripheralElement) ([]byte, error) {
	var w strings.Builder

	fmt.Fprintf(&w, "// Code generated by regsgen from %s. DO NOT EDIT.\n\n", g.device.Name)
	fmt.Fprintf(&w, "package %s\n\n", g.pkg)
	fmt.Fprintln(&w, "import (")
	fmt.Fprintln(&w, `"omibyte.io/mmreg/hw"`)
	fmt.Fprintln(&w, `"omibyte.io/mmreg/reg"`)
	fmt.Fprintln(&w, ")")

	// A derived peripheral repeats another block's register layout at its
	// own base address.
	registers := periph.Registers.RegisterElements
	if len(periph.DerivedFrom) > 0 {
		i, ok := g.device.Peripherals.Find(periph.DerivedFrom)
		if !ok {
			return nil, fmt.Errorf("peripheral %s derived from unknown %s", periph.Name, periph.DerivedFrom)
		}
		registers = g.device.Peripherals.Elements[i].Registers.RegisterElements
	}

	for _, register := range registers {
		if err := g.generateRegister(&w, periph, register); err != nil {
			return nil, err
		}
	}

	return []byte(w.String()), nil
}

func (g *generator) generateRegister(w *strings.Builder, periph svd.PeripheralElement, register svd.RegisterElement) error {
	prefix := identifier(periph.Name) + "_" + identifier(register.Name)

	fields := register.Fields.Elements
	if len(fields) == 0 {
		// Registers without declared fields become one whole-register
		// field so every operation stays available.
		size := register.Size
		if size == 0 {
			size = g.device.RegisterSize
		}
		if size == 0 {
			size = 32
		}
		fields = []svd.FieldElement{{
			Name:     register.Name,
			BitWidth: size,
			Access:   register.Access,
		}}
	}

	var kinds []reg.AccessKind
	fmt.Fprintln(w, "var (")
	for _, field := range fields {
		kind, err := accessKind(field, register, g.device)
		if err != nil {
			return fmt.Errorf("register %s field %s: %w", register.Name, field.Name, err)
		}
		kinds = append(kinds, kind)

		reset := fieldReset(field, register)
		if len(field.Description) > 0 {
			fmt.Fprintf(w, "// %s\n", field.Description)
		}
		fmt.Fprintf(w, "%s_%s = reg.MustField(%q, %d, %d, %s, %#x)\n",
			prefix, identifier(field.Name), field.Name, field.BitOffset, field.BitWidth, kindExpr(kind), reset)
	}
	fmt.Fprintln(w, ")")

	if len(register.Description) > 0 {
		fmt.Fprintf(w, "// %s\n", register.Description)
	}
	final := "ReadWrite"
	must := "MustRW"
	switch reg.DeriveAccess(kinds) {
	case reg.ReadOnly:
		final, must = "ReadOnly", "MustRO"
	case reg.WriteOnly:
		final, must = "WriteOnly", "MustWO"
	}
	fmt.Fprintf(w, "var %s = reg.%s(reg.New(%#x, %#x, hw.MMIO{}).\n", prefix, must, periph.BaseAddress, register.AddressOffset)
	fmt.Fprintf(w, "Reset(%#x).\n", register.ResetValue)
	if alias, ok := g.atomicAlias(periph); ok {
		fmt.Fprintf(w, "Atomic(reg.AtomicAlias{XOR: %#x, Set: %#x, Clear: %#x}).\n", alias.XOR, alias.Set, alias.Clear)
	}
	fmt.Fprint(w, "Fields(")
	for i, field := range fields {
		if i > 0 {
			fmt.Fprint(w, ", ")
		}
		fmt.Fprintf(w, "%s_%s", prefix, identifier(field.Name))
	}
	fmt.Fprintf(w, ").\n%s())\n\n", final)

	g.generateEnums(w, prefix, fields)
	return nil
}

func (g *generator) generateEnums(w *strings.Builder, prefix string, fields []svd.FieldElement) {
	var lines []string
	for _, field := range fields {
		for _, ev := range field.EnumeratedValues.Elements {
			comment := ""
			if len(ev.Description) > 0 {
				comment = " // " + ev.Description
			}
			lines = append(lines, fmt.Sprintf("%s_%s_%s uint32 = %#x%s",
				prefix, identifier(field.Name), identifier(ev.Name), ev.Value, comment))
		}
	}
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(w, "const (")
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w, ")")
	fmt.Fprintln(w)
}

// atomicAlias returns the target's alias offsets for the peripheral. The
// RP2040 SIO block sits on the processor ports rather than the fabric, so
// its registers have no alias addresses.
func (g *generator) atomicAlias(periph svd.PeripheralElement) (reg.AtomicAlias, bool) {
	if !g.target.HasAtomicAliases() || periph.Name == "SIO" {
		return reg.AtomicAlias{}, false
	}
	return g.target.Alias(), true
}

// accessKind maps an SVD field description to the field access kind. The
// field's own access string wins over the register's, which wins over the
// device default; oneToClear modified-write semantics override them all.
func accessKind(field svd.FieldElement, register svd.RegisterElement, device svd.DeviceElement) (reg.AccessKind, error) {
	if field.ModifiedWriteValues == "oneToClear" {
		return reg.WriteClear, nil
	}
	access := field.Access
	if access == "" {
		access = register.Access
	}
	if access == "" {
		access = device.DefaultAccess
	}
	switch access {
	case "read-only":
		return reg.ReadOnly, nil
	case "write-only":
		return reg.WriteOnly, nil
	case "read-write", "":
		return reg.ReadWrite, nil
	case "self-clearing":
		return reg.SelfClearing, nil
	case "write-clear", "oneToClear":
		return reg.WriteClear, nil
	}
	return 0, fmt.Errorf("unsupported access %q", access)
}

func kindExpr(k reg.AccessKind) string {
	switch k {
	case reg.ReadOnly:
		return "reg.ReadOnly"
	case reg.WriteOnly:
		return "reg.WriteOnly"
	case reg.SelfClearing:
		return "reg.SelfClearing"
	case reg.WriteClear:
		return "reg.WriteClear"
	}
	return "reg.ReadWrite"
}

// fieldReset extracts the field's slice of the register reset value.
func fieldReset(field svd.FieldElement, register svd.RegisterElement) uint64 {
	width := uint64(field.BitWidth)
	offset := uint64(field.BitOffset)
	mask := uint64(1)<<width - 1
	return (uint64(register.ResetValue) >> offset) & mask
}

// identifier turns an SVD name into a Go identifier part. SVD names are
// already upper-case with underscores, which generated chip packages keep.
func identifier(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r == '_':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteRune('_')
			}
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
