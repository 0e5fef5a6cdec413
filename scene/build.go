package scene

import (
	"fmt"
	"image"

	"github.com/phanxgames/anim2d"
	"github.com/phanxgames/anim2d/sim"
)

// object is what every anim2d object offers through its embedded base.
type object interface {
	anim2d.Object
	Name() string
	SetZOrder(z int64, visible bool)
	SetVisible(visible bool)
	Delete()
	SetTraceLevel(l anim2d.TraceLevel)
}

// Scene is a document built into an animation.
type Scene struct {
	Doc       *Document
	Animation *anim2d.Animation
	Paths     map[string]*anim2d.Path
	// Events are the scheduled timeline actions in time order.
	Events []*sim.Event

	objects  map[string]object
	order    []string
	directed map[string]*anim2d.DirectedObject
	views    map[string]*anim2d.View
	lines    map[string]*anim2d.ConnectingLine
}

// Build creates the animation described by doc and schedules its
// timeline. Image files are resolved relative to baseDir. Frames are not
// scheduled; see ScheduleFrames.
func Build(doc *Document, baseDir string, opts ...anim2d.Option) (*Scene, error) {
	cfg, err := doc.animationConfig()
	if err != nil {
		return nil, err
	}
	a, err := anim2d.NewAnimation(cfg, opts...)
	if err != nil {
		return nil, err
	}
	s := &Scene{
		Doc:       doc,
		Animation: a,
		Paths:     make(map[string]*anim2d.Path, len(doc.Paths)),
		objects:   make(map[string]object),
		directed:  make(map[string]*anim2d.DirectedObject),
		views:     make(map[string]*anim2d.View),
		lines:     make(map[string]*anim2d.ConnectingLine),
	}
	for name, pd := range doc.Paths {
		p, err := pd.Path()
		if err != nil {
			return nil, fmt.Errorf("path %q: %w", name, err)
		}
		s.Paths[name] = p
	}

	defTrace, err := anim2d.ParseTraceLevel(doc.Trace)
	if err != nil {
		return nil, err
	}
	sc := &shapeContext{paths: s.Paths, baseDir: baseDir, images: make(map[string]image.Image)}
	for i, od := range doc.Objects {
		o, err := s.build(od, sc)
		if err != nil {
			label := od.Name
			if label == "" {
				label = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("object %s (%s): %w", label, od.Type, err)
		}
		level := defTrace
		if od.Trace != "" {
			if level, err = anim2d.ParseTraceLevel(od.Trace); err != nil {
				return nil, fmt.Errorf("object %s: %w", o.Name(), err)
			}
		}
		o.SetTraceLevel(level)
		s.objects[o.Name()] = o
		s.order = append(s.order, o.Name())
	}

	entries := make([]anim2d.TimelineEntry, 0, len(doc.Timeline))
	for i, ad := range doc.Timeline {
		e, err := s.action(ad)
		if err != nil {
			return nil, fmt.Errorf("timeline entry %d (%s %s): %w", i, ad.Object, ad.Action, err)
		}
		entries = append(entries, e)
	}
	if s.Events, err = a.ScheduleTimeline(entries); err != nil {
		return nil, err
	}
	return s, nil
}

func (d *Document) animationConfig() (anim2d.AnimationConfig, error) {
	cfg := anim2d.DefaultAnimationConfig()
	ad := d.Animation
	if ad.Width > 0 {
		cfg.Width = ad.Width
	}
	if ad.Height > 0 {
		cfg.Height = ad.Height
	}
	if ad.TicksPerSecond > 0 {
		cfg.TicksPerSecond = ad.TicksPerSecond
	}
	if ad.TicksPerFrame > 0 {
		cfg.TicksPerFrame = ad.TicksPerFrame
	}
	if ad.MaxFrames > 0 {
		cfg.MaxFrames = ad.MaxFrames
	}
	if ad.Background != nil {
		cfg.Background = ad.Background.Color
	}
	if d.Frames < 0 {
		return cfg, fmt.Errorf("negative frame count %d", d.Frames)
	}
	return cfg, nil
}

// Object returns a built object by name.
func (s *Scene) Object(name string) (anim2d.Object, bool) {
	o, ok := s.objects[name]
	return o, ok
}

// ObjectNames returns the built objects' names in document order.
func (s *Scene) ObjectNames() []string { return append([]string(nil), s.order...) }

// Frames returns the number of frames the scene asks for: the document's
// frame count, or enough frames to show every timeline action.
func (s *Scene) Frames() int {
	cfg := s.Animation.Config()
	n := s.Doc.Frames
	if n == 0 {
		var last int64
		for _, ev := range s.Events {
			last = max(last, ev.Tick())
		}
		n = int(last/cfg.TicksPerFrame) + 1
	}
	if cfg.MaxFrames > 0 && n > cfg.MaxFrames {
		n = cfg.MaxFrames
	}
	return n
}

// ScheduleFrames schedules n frames from tick zero; n <= 0 uses Frames.
func (s *Scene) ScheduleFrames(n int) error {
	if n <= 0 {
		n = s.Frames()
	}
	return s.Animation.ScheduleFrames(s.Animation.CurrentTicks(), n)
}

func visibility(od ObjectDoc) anim2d.Visibility {
	return anim2d.Visibility{ZOrder: od.ZOrder, Hidden: od.Hidden}
}

func placement(od ObjectDoc) (anim2d.Placement, error) {
	ref, err := anim2d.ParseRefPointName(od.RefPoint)
	if err != nil {
		return anim2d.Placement{}, err
	}
	return anim2d.Placement{
		X: od.X, Y: od.Y, Angle: od.Angle,
		Width: od.Width, Height: od.Height,
		RefPoint: ref,
	}, nil
}

func motion(od ObjectDoc) anim2d.Motion {
	return anim2d.Motion{
		PathVelocity:        od.PathVelocity,
		PathAcceleration:    od.PathAcceleration,
		AngularVelocity:     od.AngularVelocity,
		AngularAcceleration: od.AngularAcceleration,
	}
}

func (s *Scene) build(od ObjectDoc, sc *shapeContext) (object, error) {
	a := s.Animation
	switch od.Type {
	case "figure", "directed", "view":
		pl, err := placement(od)
		if err != nil {
			return nil, err
		}
		var (
			o object
			d *anim2d.DirectedObject
		)
		switch od.Type {
		case "figure":
			shapes, err := sc.shapes(od.Shapes)
			if err != nil {
				return nil, err
			}
			f, err := anim2d.NewFigure(a, od.Name, anim2d.FigureConfig{
				Visibility: visibility(od), Placement: pl, Motion: motion(od), Shapes: shapes,
			})
			if err != nil {
				return nil, err
			}
			o, d = f, &f.DirectedObject
		case "directed":
			dd, err := anim2d.NewDirectedObject(a, od.Name, anim2d.DirectedConfig{
				Visibility: visibility(od), Placement: pl, Motion: motion(od),
			})
			if err != nil {
				return nil, err
			}
			o, d = dd, dd
		case "view":
			cfg := anim2d.ViewConfig{Visibility: visibility(od), Placement: pl, Motion: motion(od)}
			if in := od.Init; in != nil {
				cfg.Init = &anim2d.ViewInit{
					X: in.X, Y: in.Y, XF: in.XF, YF: in.YF,
					ScaleX: in.ScaleX, ScaleY: in.ScaleY, Zoom: in.Zoom,
				}
			}
			v, err := anim2d.NewView(a, od.Name, cfg)
			if err != nil {
				return nil, err
			}
			if od.ZoomRate != 0 {
				if err := v.SetZoomRate(od.ZoomRate); err != nil {
					return nil, err
				}
			}
			s.views[v.Name()] = v
			o, d = v, &v.DirectedObject
		}
		if err := s.applyDirected(d, od); err != nil {
			o.Delete()
			return nil, err
		}
		s.directed[o.Name()] = d
		return o, nil

	case "layer":
		shapes, err := sc.shapes(od.Shapes)
		if err != nil {
			return nil, err
		}
		return anim2d.NewLayer(a, od.Name, anim2d.LayerConfig{Visibility: visibility(od), Shapes: shapes})

	case "path":
		p, ok := s.Paths[od.Path]
		if !ok {
			return nil, fmt.Errorf("unknown path %q", od.Path)
		}
		st, err := od.Style()
		if err != nil {
			return nil, err
		}
		return anim2d.NewPathObject(a, od.Name, anim2d.PathObjectConfig{Visibility: visibility(od), Style: st, Path: p})

	case "line":
		st, err := od.Style()
		if err != nil {
			return nil, err
		}
		from, err := s.lineEnd(od.From)
		if err != nil {
			return nil, fmt.Errorf("from: %w", err)
		}
		to, err := s.lineEnd(od.To)
		if err != nil {
			return nil, fmt.Errorf("to: %w", err)
		}
		l, err := anim2d.NewConnectingLine(a, od.Name, anim2d.LineConfig{
			Visibility: visibility(od), Style: st,
			From: from, To: to,
			Start: od.TrimStart, End: od.TrimEnd,
		})
		if err != nil {
			return nil, err
		}
		s.lines[l.Name()] = l
		return l, nil

	case "grid":
		st, err := od.Style()
		if err != nil {
			return nil, err
		}
		cfg := anim2d.GridConfig{
			Visibility:   visibility(od),
			Bounds:       anim2d.Rect{X: od.Bounds.X, Y: od.Bounds.Y, Width: od.Bounds.Width, Height: od.Bounds.Height},
			Spacing:      od.Spacing,
			Subdivisions: od.Subdivisions,
			Style:        st,
		}
		if od.MajorStyle != nil {
			if cfg.MajorStyle, err = od.MajorStyle.Style(); err != nil {
				return nil, err
			}
		}
		if od.Axes != nil {
			axes, err := od.Axes.Style()
			if err != nil {
				return nil, err
			}
			cfg.Axes = &axes
		}
		return anim2d.NewCartesianGrid(a, od.Name, cfg)

	case "polar-grid":
		st, err := od.Style()
		if err != nil {
			return nil, err
		}
		return anim2d.NewPolarGrid(a, od.Name, anim2d.PolarGridConfig{
			Visibility:    visibility(od),
			X:             od.X,
			Y:             od.Y,
			Radius:        od.Radius,
			RadialSpacing: od.RadialSpacing,
			Spokes:        od.Spokes,
			Style:         st,
		})
	}
	return nil, fmt.Errorf("unknown object type %q", od.Type)
}

// applyDirected attaches the initial path and motion functions.
func (s *Scene) applyDirected(d *anim2d.DirectedObject, od ObjectDoc) error {
	if od.InversionLimit > 0 {
		d.SetInversionLimit(od.InversionLimit)
	}
	if od.Path != "" {
		p, ok := s.Paths[od.Path]
		if !ok {
			return fmt.Errorf("unknown path %q", od.Path)
		}
		if err := d.SetPath(p, pathStart(od.Start)); err != nil {
			return err
		}
	}
	fns := []struct {
		doc *FuncDoc
		set func(anim2d.Func) error
		key string
	}{
		{od.DistanceFunction, d.SetDistanceFunction, "distanceFunction"},
		{od.AngleFunction, d.SetAngleFunction, "angleFunction"},
		{od.PathAngleFunction, d.SetPathAngleFunction, "pathAngleFunction"},
	}
	for _, f := range fns {
		if f.doc == nil {
			continue
		}
		fn, err := f.doc.Func()
		if err != nil {
			return fmt.Errorf("%s: %w", f.key, err)
		}
		if err := f.set(fn); err != nil {
			return err
		}
	}
	return nil
}

func pathStart(sd StartDoc) anim2d.PathStart {
	return anim2d.PathStart{U0: sd.U0, Angle: sd.Angle, AngleRelative: sd.Relative, Delay: sd.Delay}
}

func (s *Scene) lineEnd(ed EndDoc) (anim2d.LineEnd, error) {
	if ed.Object == "" {
		return anim2d.LineEnd{X: ed.X, Y: ed.Y}, nil
	}
	o, ok := s.objects[ed.Object]
	if !ok {
		return anim2d.LineEnd{}, fmt.Errorf("unknown object %q", ed.Object)
	}
	p, ok := o.(anim2d.Placed)
	if !ok {
		return anim2d.LineEnd{}, fmt.Errorf("object %q has no position", ed.Object)
	}
	return anim2d.LineEnd{Object: p}, nil
}
