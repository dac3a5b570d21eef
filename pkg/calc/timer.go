package calc

import (
	"fmt"
	"math"
	"strconv"

	"github.com/edp1096/toy-engineer/pkg/report"
	"github.com/edp1096/toy-engineer/pkg/search"
	"github.com/google/uuid"
)

var avrPrescalers = []int{1, 8, 64, 256, 1024}

type AVRTimer struct {
	info
	env *Env
}

func NewAVRTimer(env *Env) *AVRTimer {
	return &AVRTimer{
		info: info{
			id:    uuid.MustParse("97ade7c9-e0fd-41d5-a549-cf0700822b6f"),
			slug:  "avr-timer",
			title: "AVR Timer",
			menu:  []string{"Clock", "AVR Timer"},
			params: []Param{
				{Name: "f_std", Label: "Standard crystal", Unit: "Hz", Optional: true},
				{Name: "f_user", Label: "Other clock", Unit: "Hz", Optional: true},
				{Name: "ckdiv8", Label: "CKDIV8 fuse", Default: "false"},
				{Name: "period", Label: "Target period", Unit: "s"},
				{Name: "bit_width", Label: "Counter width", Unit: "bit", Default: "8"},
				{Name: "prescaler", Label: "Custom prescaler", Optional: true},
			},
		},
		env: env,
	}
}

// TimerSetting is the overflow timing for one prescaler.
type TimerSetting struct {
	Name        string
	Prescaler   int
	CountCycle  float64 // duration of one count
	Overflow    float64 // duration of a full counter run
	CyclesIdeal int
	Cycles      int
	Preload     int
	Period      float64
	Error       float64
}

// Setting computes the counter preload that gets closest to period.
func (a *AVRTimer) Setting(name string, f, period float64, bits, prescaler int) TimerSetting {
	full := 1 << bits
	s := TimerSetting{
		Name:       name,
		Prescaler:  prescaler,
		CountCycle: float64(prescaler) / f,
	}
	s.Overflow = s.CountCycle * float64(full)
	s.CyclesIdeal = int(math.RoundToEven(period / s.CountCycle))
	s.Cycles = min(max(s.CyclesIdeal, 1), full)
	s.Preload = full - s.Cycles
	s.Period = s.CountCycle * float64(s.Cycles)
	s.Error = search.RelativeError(s.Period, period)
	return s
}

// Settings ranks the standard prescalers by |error|. A user prescaler, if
// given, comes first.
func (a *AVRTimer) Settings(f, period float64, bits, userPrescaler int) []TimerSetting {
	opts := make([]TimerSetting, 0, len(avrPrescalers)+1)
	for _, p := range avrPrescalers {
		opts = append(opts, a.Setting(fmt.Sprintf("Prescaler CK / %d", p), f, period, bits, p))
	}
	opts = search.Rank(opts, func(s TimerSetting) search.Key {
		return search.Key{Error: s.Error}
	}, 0)
	if userPrescaler > 0 {
		opts = append([]TimerSetting{a.Setting("User choice", f, period, bits, userPrescaler)}, opts...)
	}
	return opts
}

func (a *AVRTimer) Calculate(in Input) (*report.Table, error) {
	f, err := avrClock(a.env, in)
	if err != nil {
		return nil, err
	}
	period, err := in.Positive("period")
	if err != nil {
		return nil, err
	}
	bits, err := strconv.Atoi(in.Get("bit_width"))
	if err != nil || bits < 1 || bits > 32 {
		return nil, fmt.Errorf("%w: bit_width must be an integer in [1, 32]", ErrInvalidInput)
	}
	user := 0
	if in.Has("prescaler") {
		if user, err = strconv.Atoi(in.Get("prescaler")); err != nil || user < 1 {
			return nil, fmt.Errorf("%w: prescaler must be a positive integer", ErrInvalidInput)
		}
	}

	t := report.New(a.title, "Name", "Prescaler", "Count cycle", "Overflow", "Cycles", "Preload", "Period", "Error")
	t.AddField("Clock", a.env.number(f, "Hz"))
	t.AddField("Target", a.env.number(period, "s"))
	for _, s := range a.Settings(f, period, bits, user) {
		t.AddRow(
			report.Text(s.Name),
			report.Int(s.Prescaler),
			a.env.number(s.CountCycle, "s"),
			a.env.number(s.Overflow, "s"),
			report.Number(float64(s.Cycles), fmt.Sprintf("%d (ideal %d)", s.Cycles, s.CyclesIdeal)),
			report.Number(float64(s.Preload), fmt.Sprintf("0x%x", s.Preload)),
			a.env.number(s.Period, "s"),
			percent(s.Error),
		)
	}
	return t, nil
}
