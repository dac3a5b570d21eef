package calc

import (
	"fmt"
	"math"

	"github.com/edp1096/toy-engineer/pkg/quantity"
	"github.com/edp1096/toy-engineer/pkg/report"
	"github.com/google/uuid"
)

type AVRUART struct {
	info
	env *Env
}

func NewAVRUART(env *Env) *AVRUART {
	return &AVRUART{
		info: info{
			id:    uuid.MustParse("1abf3e17-551b-493b-bc9e-db09d50a120f"),
			slug:  "avr-uart",
			title: "AVR UART Baud Rates",
			menu:  []string{"Clock", "AVR UART"},
			params: []Param{
				{Name: "f_std", Label: "Standard crystal", Unit: "Hz", Optional: true},
				{Name: "f_user", Label: "Other clock", Unit: "Hz", Optional: true},
				{Name: "ckdiv8", Label: "CKDIV8 fuse", Default: "false"},
				{Name: "u2x", Label: "Double speed (U2X)", Default: "false"},
			},
		},
		env: env,
	}
}

// BaudSetting is the UBRR register value for one baud rate.
type BaudSetting struct {
	Baud      float64
	UBRR      int
	Actual    float64
	Error     float64
	IdealFreq float64 // clock that would make Actual == Baud
}

// Settings computes UBRR for every baud rate at clock f.
func (a *AVRUART) Settings(f float64, ckdiv8, u2x bool, bauds []float64) []BaudSetting {
	if ckdiv8 {
		f /= 8
	}
	div := 16.0
	if u2x {
		div = 8
	}

	out := make([]BaudSetting, 0, len(bauds))
	for _, baud := range bauds {
		ubrr := math.Max(0, math.RoundToEven(f/(div*baud))-1)
		actual := f / (div * (ubrr + 1))
		ideal := baud * div * (ubrr + 1)
		if ckdiv8 {
			ideal *= 8
		}
		out = append(out, BaudSetting{
			Baud:      baud,
			UBRR:      int(ubrr),
			Actual:    actual,
			Error:     (actual - baud) / baud,
			IdealFreq: ideal,
		})
	}
	return out
}

// avrClock picks f_std when it names a catalog crystal, f_user otherwise,
// and applies the CKDIV8 fuse.
func avrClock(env *Env, in Input) (float64, error) {
	f, err := selectClock(env, in)
	if err != nil {
		return 0, err
	}
	if in.Bool("ckdiv8") {
		f /= 8
	}
	return f, nil
}

func selectClock(env *Env, in Input) (float64, error) {
	if std, ok, err := in.Optional("f_std"); err != nil {
		return 0, err
	} else if ok {
		if env.Catalog == nil {
			return 0, fmt.Errorf("%w: no value-set catalog", ErrInvalidInput)
		}
		freqs, err := env.Catalog.Values("frequencies")
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		for _, f := range freqs {
			if f.Equal(std) {
				return f.Float(), nil
			}
		}
		if !in.Has("f_user") {
			return 0, fmt.Errorf("%w: %s is not a standard crystal", ErrInvalidInput, in.Get("f_std"))
		}
	}
	return in.Positive("f_user")
}

func (a *AVRUART) Calculate(in Input) (*report.Table, error) {
	f, err := selectClock(a.env, in)
	if err != nil {
		return nil, err
	}
	set, err := a.env.set("baudrate", "Standard")
	if err != nil {
		return nil, err
	}
	bauds := make([]float64, 0, set.Len())
	for v := range set.All() {
		bauds = append(bauds, v.Float())
	}
	ckdiv8, u2x := in.Bool("ckdiv8"), in.Bool("u2x")

	t := report.New(a.title, "Baud", "UBRR", "Actual", "Error", "Ideal clock")
	t.AddField("Clock", a.env.number(f, "Hz"))
	t.AddField("CKDIV8", report.Text(fmt.Sprint(ckdiv8)))
	t.AddField("U2X", report.Text(fmt.Sprint(u2x)))
	for _, s := range a.Settings(f, ckdiv8, u2x, bauds) {
		t.AddRow(
			report.Number(s.Baud, fmt.Sprintf("%.0f", s.Baud)),
			report.Int(s.UBRR),
			report.Number(s.Actual, fmt.Sprintf("%.1f", s.Actual)),
			percent(s.Error),
			report.Number(s.IdealFreq, quantity.FormatUnit(s.IdealFreq, 6, "Hz")),
		)
	}
	return t, nil
}
