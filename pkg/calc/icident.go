package calc

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/edp1096/toy-engineer/pkg/report"
	"github.com/google/uuid"
)

var stm32Marking = regexp.MustCompile(`(?i)^stm32f(?P<main>\d{3})(?P<pins>[a-z0-9])(?P<flash>[a-z0-9])(?P<pkg>[a-z0-9])(?P<temp>[a-z0-9])$`)

var stm32Lines = map[string][2]string{
	"030": {"ARM Cortex-M0", "Value Line"},
	"101": {"ARM Cortex-M3", "Access Line"},
	"102": {"ARM Cortex-M3", "USB Access Line, USB 2.0 full-speed interface"},
	"103": {"ARM Cortex-M3", "Performance Line"},
	"765": {"ARM Cortex-M7", "USB OTG FS/HS, camera interface, Ethernet"},
	"767": {"ARM Cortex-M7", "USB OTG FS/HS, camera interface, Ethernet, LCD-TFT"},
	"768": {"ARM Cortex-M7", "USB OTG FS/HS, camera interface, DSI host, WLCSP with internal regulator OFF"},
	"769": {"ARM Cortex-M7", "USB OTG FS/HS, camera interface, Ethernet, DSI host"},
}

var (
	stm32Pins = map[string]string{
		"f": "20", "k": "32", "t": "36", "c": "48", "r": "64", "v": "100",
		"z": "144", "i": "176", "a": "180", "b": "208", "n": "216",
	}
	stm32Flash = map[string]string{
		"4": "16 kiB", "6": "32 kiB", "8": "64 kiB", "b": "128 kiB",
		"c": "256 kiB", "f": "768 kiB", "g": "1024 kiB", "i": "2048 kiB",
	}
	stm32Packages = map[string]string{
		"h": "BGA / TFBGA", "i": "UFBGA", "k": "UFBGA", "t": "LQFP",
		"u": "VFQFPN or UFQFPN", "p": "TSSOP", "y": "WLCSP",
	}
	stm32Temps = map[string]string{
		"6": "Industrial Range -40°C - 85°C",
		"7": "Industrial Range -40°C - 105°C",
	}
)

type Property struct {
	Name, Value string
}

type ICIdent struct {
	info
	env *Env
}

func NewICIdent(env *Env) *ICIdent {
	return &ICIdent{
		info: info{
			id:    uuid.MustParse("e336ba9b-08b6-4d1b-b2b4-c202d7fd8edd"),
			slug:  "ic",
			title: "IC Identification",
			menu:  []string{"Basics", "IC Ident"},
			params: []Param{
				{Name: "marking", Label: "Marking, e.g. stm32f103c8t6"},
			},
		},
		env: env,
	}
}

func lookup(table map[string]string, code string) string {
	if v, ok := table[strings.ToLower(code)]; ok {
		return v
	}
	return "Unknown"
}

// Identify decodes a part marking. Only STM32F parts are known.
func (ic *ICIdent) Identify(marking string) ([]Property, error) {
	m := stm32Marking.FindStringSubmatch(strings.TrimSpace(marking))
	if m == nil {
		return nil, fmt.Errorf("%w: unknown marking %q", ErrInvalidInput, marking)
	}
	group := func(name string) string { return m[stm32Marking.SubexpIndex(name)] }

	props := []Property{{"Vendor", "ST Microelectronics"}}
	if line, ok := stm32Lines[group("main")]; ok {
		props = append(props, Property{"Core", line[0]}, Property{"Line", line[1]})
	}
	return append(props,
		Property{"Pin Count", lookup(stm32Pins, group("pins"))},
		Property{"Flash Size", lookup(stm32Flash, group("flash"))},
		Property{"Package", lookup(stm32Packages, group("pkg"))},
		Property{"Temperature Range", lookup(stm32Temps, group("temp"))},
	), nil
}

func (ic *ICIdent) Calculate(in Input) (*report.Table, error) {
	props, err := ic.Identify(in.Get("marking"))
	if err != nil {
		return nil, err
	}
	t := report.New(ic.title, "Property", "Value")
	t.AddField("Marking", report.Text(in.Get("marking")))
	for _, p := range props {
		t.AddRow(report.Text(p.Name), report.Text(p.Value))
	}
	return t, nil
}
