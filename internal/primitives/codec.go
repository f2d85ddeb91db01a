package primitives

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownKind is returned when decoding an event of an unrecognised kind.
var ErrUnknownKind = errors.New("unknown event kind")

// DecodeEvent restores an event from its kind tag and JSON payload.
func DecodeEvent(kind Kind, data []byte) (Event, error) {
	var (
		evt Event
		err error
	)
	switch kind {
	case KindNavigationStart:
		var e NavigationStart
		err = json.Unmarshal(data, &e)
		evt = e
	case KindNavigationComplete:
		var e NavigationComplete
		err = json.Unmarshal(data, &e)
		evt = e
	case KindMeasure:
		var e MeasureRecorded
		err = json.Unmarshal(data, &e)
		evt = e
	case KindNativeMark:
		var e NativeMark
		err = json.Unmarshal(data, &e)
		evt = e
	case KindAppInteractive:
		var e AppInteractive
		err = json.Unmarshal(data, &e)
		evt = e
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	return evt, nil
}
