package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/lcdmon/internal/errors"
)

// InterfaceOption is one network interface offered by the picker.
type InterfaceOption struct {
	Name     string
	Selected bool
}

// PickInterfaces lets the user choose up to limit interfaces, in the order
// they are listed. It needs an interactive terminal.
func PickInterfaces(options []InterfaceOption, limit int) ([]string, error) {
	if !IsTerminal(os.Stdin) {
		return nil, errors.New(errors.ErrConfig,
			"--pick needs an interactive terminal",
			"Pass --interfaces instead")
	}
	if len(options) == 0 {
		return nil, errors.New(errors.ErrTelemetry,
			"No network interfaces to pick from", "")
	}

	var selected []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Which interfaces should the LCD show?").
				Description(fmt.Sprintf("Up to %d fit next to the CPU gauges", limit)).
				Options(interfaceOptions(options)...).
				Limit(limit).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Interface selection cancelled", "")
	}

	return orderLike(options, selected), nil
}

func interfaceOptions(options []InterfaceOption) []huh.Option[string] {
	out := make([]huh.Option[string], 0, len(options))
	for _, o := range options {
		out = append(out, huh.NewOption(o.Name, o.Name).Selected(o.Selected))
	}
	return out
}

// orderLike returns the selected names in the order of options.
func orderLike(options []InterfaceOption, selected []string) []string {
	chosen := make(map[string]bool, len(selected))
	for _, name := range selected {
		chosen[name] = true
	}
	var out []string
	for _, o := range options {
		if chosen[o.Name] {
			out = append(out, o.Name)
		}
	}
	return out
}
