package anim2d

import "go.uber.org/zap"

// TraceLevel controls how much an object logs through its animation's
// logger. Records are emitted at debug level.
type TraceLevel int8

const (
	// TraceOff disables tracing.
	TraceOff TraceLevel = iota
	// TraceEvents logs mutator calls (path changes, velocity changes,
	// visibility changes).
	TraceEvents
	// TraceUpdates additionally logs every position update.
	TraceUpdates
)

// ParseTraceLevel maps "off", "events" and "updates" to a TraceLevel.
func ParseTraceLevel(s string) (TraceLevel, error) {
	switch s {
	case "", "off":
		return TraceOff, nil
	case "events":
		return TraceEvents, nil
	case "updates":
		return TraceUpdates, nil
	}
	return TraceOff, argError("ParseTraceLevel", "unknown trace level %q", s)
}

// SetTraceLevel sets the object's trace level.
func (b *ObjectBase) SetTraceLevel(l TraceLevel) { b.trace = l }

// TraceLevel returns the object's trace level.
func (b *ObjectBase) TraceLevel() TraceLevel { return b.trace }

func (b *ObjectBase) traceEvent(msg string, fields ...zap.Field) {
	if b.trace >= TraceEvents && b.log != nil {
		b.log.Debug(msg, b.withTime(fields)...)
	}
}

func (b *ObjectBase) traceUpdate(msg string, fields ...zap.Field) {
	if b.trace >= TraceUpdates && b.log != nil {
		b.log.Debug(msg, b.withTime(fields)...)
	}
}

func (b *ObjectBase) withTime(fields []zap.Field) []zap.Field {
	t, tick := b.now()
	return append(fields, zap.Float64("time", t), zap.Int64("tick", tick))
}
