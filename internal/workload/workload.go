// Package workload drives synthetic lists through cellsize managers.
//
// Each simulated list owns one Manager and one goroutine, matching the
// single-owner contract. A list scrolls a window over its items, jumping to
// Zipf-distributed offsets, and occasionally mutates its model: it edits
// text in place, swaps two items, appends, truncates, or changes its width.
// Every mutation is reported to the manager the way a list-change producer
// would. When Verify is set every size returned by the manager is checked
// against a fresh measurement, so any missed invalidation shows up as stale.
package workload

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	"github.com/IvanBrykalov/cellsize/cellsize"
	"github.com/IvanBrykalov/cellsize/geom"
	"github.com/IvanBrykalov/cellsize/policy"
	"github.com/IvanBrykalov/cellsize/policy/lru"
	"github.com/IvanBrykalov/cellsize/policy/twoq"
	"github.com/IvanBrykalov/cellsize/sizecache"
	"github.com/IvanBrykalov/cellsize/strategy"
	"github.com/jmgilman/go/errors"
	"golang.org/x/sync/errgroup"
)

// Text layout constants of the simulated label.
const (
	charWidth    = 7.0
	lineHeight   = 18.0
	headerHeight = 28.0
)

// Config describes a run. Zero values are replaced by defaults in Run.
type Config struct {
	Lists     int // concurrent lists (default 1)
	Sections  int // sections per list (default 4)
	Items     int // items per section (default 250)
	Window    int // visible rows per step (default 12)
	Steps     int // scroll steps per list (default 1000)
	MutatePct int // chance per step of a model mutation, 0..100

	Mode     cellsize.KeyMode
	Policy   string // "lru" or "2q"; only used with Capacity
	Capacity int
	Width    float64  // initial container width (default 375)
	Padding  *float64 // nil => cellsize.DefaultHeightPadding

	Seed    int64
	Verify  bool
	Metrics cellsize.Metrics
	Logger  *slog.Logger
}

// Report aggregates every list's counters.
type Report struct {
	Lookups   uint64
	Hits      uint64
	Misses    uint64
	Mutations uint64
	Stale     uint64 // verified sizes that differed from a fresh measurement
	Entries   int    // cached sizes left across all lists
	Elapsed   time.Duration
}

// HitRate returns hits as a percentage of lookups.
func (r Report) HitRate() float64 {
	if r.Lookups == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.Lookups) * 100
}

// ErrUnknownPolicy is returned for a Config.Policy other than lru or 2q.
var ErrUnknownPolicy = errors.New(errors.CodeInvalidConfig, "unknown ordering policy")

func (c *Config) defaults() error {
	if c.Lists <= 0 {
		c.Lists = 1
	}
	if c.Sections <= 0 {
		c.Sections = 4
	}
	if c.Items <= 0 {
		c.Items = 250
	}
	if c.Window <= 0 {
		c.Window = 12
	}
	if c.Steps <= 0 {
		c.Steps = 1000
	}
	c.MutatePct = min(max(c.MutatePct, 0), 100)
	if c.Width <= 0 {
		c.Width = 375
	}
	if c.Policy == "" {
		c.Policy = "lru"
	}
	if c.Policy != "lru" && c.Policy != "2q" {
		return errors.WrapWithContext(ErrUnknownPolicy, errors.CodeInvalidConfig, "building workload",
			map[string]interface{}{"policy": c.Policy})
	}
	if c.Metrics == nil {
		c.Metrics = cellsize.NoopMetrics{}
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return nil
}

// Run simulates cfg.Lists lists concurrently and returns their totals.
// It stops early when ctx is cancelled; the partial report is still returned.
func Run(ctx context.Context, cfg Config) (Report, error) {
	if err := cfg.defaults(); err != nil {
		return Report{}, err
	}

	var (
		total   Report
		entries atomic.Int64
	)
	counters := make([]Report, cfg.Lists)

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	for id := 0; id < cfg.Lists; id++ {
		g.Go(func() error {
			l := newList(cfg, id)
			err := l.run(ctx, &counters[id])
			entries.Add(int64(l.m.Len()))
			return err
		})
	}
	err := g.Wait()

	for _, c := range counters {
		total.Lookups += c.Lookups
		total.Hits += c.Hits
		total.Misses += c.Misses
		total.Mutations += c.Mutations
		total.Stale += c.Stale
	}
	total.Entries = int(entries.Load())
	total.Elapsed = time.Since(start)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	return total, err
}

// ---- model ----

type post struct {
	text string
}

type header struct {
	title string
}

// label is the scratch view the configure strategy fills.
type label struct {
	text string
}

func textHeight(text string, width float64) float64 {
	perLine := math.Max(1, math.Floor(width/charWidth))
	lines := math.Max(1, math.Ceil(float64(len(text))/perLine))
	return lines * lineHeight
}

type labelLayout struct{}

func (labelLayout) MeasureNaturalSize(v strategy.View, width float64) geom.Size {
	return geom.Size{Width: width, Height: textHeight(v.(*label).text, width)}
}

// ---- one list ----

type list struct {
	cfg   Config
	id    int
	rng   *rand.Rand
	zipf  *rand.Zipf
	log   *slog.Logger
	m     cellsize.Manager
	rows  [][]any // rows[s][0] is the section header
	width float64
}

func newList(cfg Config, id int) *list {
	rng := rand.New(rand.NewSource(cfg.Seed + int64(id)*9973))
	l := &list{
		cfg:   cfg,
		id:    id,
		rng:   rng,
		zipf:  rand.NewZipf(rng, 1.1, 1, uint64(cfg.Items)),
		log:   cfg.Logger.With("list", id),
		width: cfg.Width,
	}

	opt := cellsize.Options{
		Mode:           cfg.Mode,
		HeightPadding:  cfg.Padding,
		ContainerWidth: cfg.Width,
		Capacity:       cfg.Capacity,
		PositionPolicy: pick[geom.Position](cfg),
		IdentityPolicy: pick[sizecache.Identity](cfg),
		Views: strategy.ViewFactoryFunc(func(strategy.CellSpec) (strategy.View, error) {
			return &label{}, nil
		}),
		Layout:  labelLayout{},
		Metrics: cfg.Metrics,
		Logger:  l.log,
	}
	l.m = cellsize.New(opt)

	cellsize.RegisterType[*post](l.m, strategy.Configure(strategy.CellSpec{TypeName: "PostCell"},
		func(v strategy.View, obj any) error {
			v.(*label).text = obj.(*post).text
			return nil
		}))
	cellsize.RegisterIdentifier(l.m, "header", strategy.Height(strategy.CellSpec{TypeName: "HeaderCell"},
		func(strategy.View, any) (float64, error) { return headerHeight, nil }))

	l.rows = make([][]any, cfg.Sections)
	for s := range l.rows {
		l.rows[s] = append(l.rows[s], &header{title: fmt.Sprintf("Section %d", s)})
		for i := 0; i < cfg.Items; i++ {
			l.rows[s] = append(l.rows[s], l.newPost())
		}
	}
	return l
}

func pick[K comparable](cfg Config) policy.Policy[K] {
	if cfg.Capacity <= 0 {
		return nil
	}
	if cfg.Policy == "2q" {
		return twoq.New[K](max(cfg.Capacity/4, cfg.Window), cfg.Capacity/2)
	}
	return lru.New[K]()
}

func (l *list) newPost() *post {
	return &post{text: strings.Repeat("x", 10+l.rng.Intn(300))}
}

func (l *list) run(ctx context.Context, rep *Report) error {
	for step := 0; step < l.cfg.Steps; step++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if l.cfg.MutatePct > 0 && l.rng.Intn(100) < l.cfg.MutatePct {
			if err := l.mutate(); err != nil {
				return err
			}
			rep.Mutations++
		}
		if err := l.scroll(rep); err != nil {
			return err
		}
	}
	st := l.m.Stats()
	rep.Hits, rep.Misses = st.Hits, st.Misses
	l.log.Debug("list done", "lookups", rep.Lookups, "hits", st.Hits, "entries", st.Entries)
	return nil
}

// scroll shows one window of rows starting at a Zipf-distributed offset.
func (l *list) scroll(rep *Report) error {
	s := l.rng.Intn(len(l.rows))
	rows := l.rows[s]
	start := int(l.zipf.Uint64()) % len(rows)
	for i := start; i < start+l.cfg.Window && i < len(rows); i++ {
		got, err := l.size(rows[i], geom.At(s, i))
		if err != nil {
			return errors.Wrapf(err, errors.CodeExecutionFailed, "list %d row %d.%d", l.id, s, i)
		}
		rep.Lookups++
		if l.cfg.Verify && got != l.expected(rows[i]) {
			rep.Stale++
			l.log.Warn("stale size", "position", geom.At(s, i).String(), "got", got.Height, "want", l.expected(rows[i]).Height)
		}
	}
	return nil
}

func (l *list) size(obj any, pos geom.Position) (geom.Size, error) {
	if _, ok := obj.(*header); ok {
		return l.m.SizeForIdentifier(obj, pos, "header")
	}
	return l.m.SizeFor(obj, pos)
}

func (l *list) expected(obj any) geom.Size {
	pad := l.m.HeightPadding()
	switch o := obj.(type) {
	case *header:
		return geom.Size{Width: l.width, Height: headerHeight + pad}
	case *post:
		return geom.Size{Width: l.width, Height: textHeight(o.text, l.width) + pad}
	}
	return geom.Size{}
}

// mutate changes the model and reports it like a list-change producer.
func (l *list) mutate() error {
	s := l.rng.Intn(len(l.rows))
	rows := l.rows[s]
	n := len(rows)

	switch l.rng.Intn(5) {
	case 0: // edit in place
		i := 1 + l.rng.Intn(n-1)
		p := rows[i].(*post)
		p.text = l.newPost().text
		return l.m.Apply(cellsize.Reloaded(p, geom.At(s, i)))

	case 1: // swap two rows
		i, j := 1+l.rng.Intn(n-1), 1+l.rng.Intn(n-1)
		rows[i], rows[j] = rows[j], rows[i]
		if err := l.m.Apply(cellsize.Moved(rows[j], geom.At(s, i), geom.At(s, j))); err != nil {
			return err
		}
		return l.m.Apply(cellsize.Moved(rows[i], geom.At(s, j), geom.At(s, i)))

	case 2: // append
		p := l.newPost()
		l.rows[s] = append(rows, p)
		return l.m.Apply(cellsize.Inserted(p, geom.At(s, n)))

	case 3: // truncate
		if n <= 2 {
			return nil
		}
		last := rows[n-1]
		l.rows[s] = rows[:n-1]
		return l.m.Apply(cellsize.Deleted(last, geom.At(s, n-1)))

	default: // rotate
		if l.width == l.cfg.Width {
			l.width = l.cfg.Width * 1.78
		} else {
			l.width = l.cfg.Width
		}
		l.m.SetContainerWidth(l.width)
		return nil
	}
}
