package scenario

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"time"

	"memberlink/backend"
	"memberlink/bind"
	"memberlink/internal/diagnostic"
	"memberlink/member"
	"memberlink/undo"
)

var recordType = reflect.TypeFor[Record]()

// Result is the outcome of one step.
type Result struct {
	Step   int
	Action string
	Detail string
	OK     bool
	// Message explains a failed expectation.
	Message string
}

// Report is the outcome of a scenario run.
type Report struct {
	Name        string
	Results     []Result
	Failures    int
	UndoEntries int
	Diagnostics diagnostic.Diagnostics
}

// Runner runs scenarios.
type Runner struct {
	logger *slog.Logger
}

// NewRunner creates a Runner. A nil logger discards output.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Runner{logger: logger}
}

// session is the state of one run.
type session struct {
	ctx     *member.Context
	log     *undo.Log
	pos     *undo.MemoryPosition
	now     time.Time
	names   []string
	records map[string]Record
}

// Run executes every step of s against a fresh context. Failed expectations
// are reported, not returned as errors.
func (r *Runner) Run(s *Scenario) (*Report, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	ss := &session{
		now:     time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		pos:     &undo.MemoryPosition{},
		records: make(map[string]Record, len(s.Targets)),
	}

	ss.ctx = member.NewContext(
		member.WithConfig(s.Config),
		member.WithLogger(r.logger),
		member.WithClock(func() time.Time { return ss.now }),
	)
	ss.log = undo.New(ss.ctx, undo.WithPositionStore(ss.pos))

	for _, t := range s.Targets {
		rec := make(Record, len(t.Values))
		for k, v := range t.Values {
			rec[k] = v
		}

		ss.names = append(ss.names, t.Name)
		ss.records[t.Name] = rec
	}

	report := &Report{Name: s.Name}
	for i, step := range s.Steps {
		res := ss.run(step)
		res.Step = i + 1
		res.Action = step.Action()

		if !res.OK {
			report.Failures++
		}

		r.logger.Debug("scenario step",
			slog.Int("step", res.Step),
			slog.String("action", res.Action),
			slog.Bool("ok", res.OK),
		)

		report.Results = append(report.Results, res)
	}

	report.UndoEntries = ss.log.Len()
	report.Diagnostics = ss.ctx.Diagnostics()

	return report, nil
}

func (ss *session) run(step Step) Result {
	switch {
	case step.Set != nil:
		return ss.set(step.Set)
	case step.Poke != nil:
		ss.records[step.Poke.Target][step.Poke.Member] = step.Poke.Value
		return Result{OK: true, Detail: fmt.Sprintf("%s.%s = %v", step.Poke.Target, step.Poke.Member, step.Poke.Value)}
	case step.Expect != nil:
		return ss.expect(step.Expect)
	case step.Undo:
		return Result{OK: true, Detail: fmt.Sprintf("moved=%t position=%d", ss.log.Undo(), ss.log.Position())}
	case step.Redo:
		return Result{OK: true, Detail: fmt.Sprintf("moved=%t position=%d", ss.log.Redo(), ss.log.Position())}
	case step.Advance != 0:
		ss.now = ss.now.Add(step.Advance)
		return Result{OK: true, Detail: "+" + step.Advance.String()}
	case step.Tick:
		disposed := ss.ctx.Sweep()
		replayed := ss.log.Update()

		return Result{OK: true, Detail: fmt.Sprintf("disposed=%d replayed=%t", disposed, replayed)}
	case step.Host != nil:
		ss.pos.SetPosition(step.Host.Position)
		replayed := ss.log.HostSignal()

		return Result{OK: true, Detail: fmt.Sprintf("position=%d replayed=%t", ss.log.Position(), replayed)}
	default:
		return Result{Message: "no action"}
	}
}

func (ss *session) set(st *SetStep) Result {
	hd, err := ss.handle(st.Member, st.Targets)
	if err != nil {
		return Result{Message: err.Error()}
	}

	var changed bool
	if st.Values != nil {
		changed = hd.SetValues(st.Values)
	} else {
		changed = hd.SetValue(st.Value)
	}

	return Result{OK: true, Detail: fmt.Sprintf("%s changed=%t", st.Member, changed)}
}

func (ss *session) expect(st *ExpectStep) Result {
	hd, err := ss.handle(st.Member, st.Targets)
	if err != nil {
		return Result{Message: err.Error()}
	}

	got := hd.GetValues()
	res := Result{OK: true, Detail: fmt.Sprintf("%s = %v", st.Member, got)}

	if st.Values != nil && !member.Equal(normalize(st.Values), normalize(got)) {
		res.OK = false
		res.Message = fmt.Sprintf("values: want %v, got %v", st.Values, got)
	}

	if st.Mixed != nil {
		mixed := hd.MixedContent()
		res.Detail += fmt.Sprintf(" mixed=%t", mixed)

		if mixed != *st.Mixed {
			res.OK = false
			res.Message = joinMessage(res.Message, fmt.Sprintf("mixed: want %t, got %t", *st.Mixed, mixed))
		}
	}

	return res
}

// handle returns the handle of member on the named targets, all when names is empty.
func (ss *session) handle(name string, names []string) (member.Handle, error) {
	if len(names) == 0 {
		names = ss.names
	}

	targets := make([]any, len(names))
	for i, n := range names {
		targets[i] = ss.records[n]
	}

	b, err := bind.MapKey(recordType, name)
	if err != nil {
		return member.NoParent, err
	}

	return ss.ctx.GetOrCreate(targets...).Root(b), nil
}

// normalize widens integers so that YAML ints compare equal to stored ints.
func normalize(values []any) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
		if f, ok := backend.TypeOf[int64]().Coerce(v); ok && isInteger(v) {
			out[i] = f
		}
	}

	return out
}

func isInteger(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

func joinMessage(a, b string) string {
	if a == "" {
		return b
	}

	return a + "; " + b
}
