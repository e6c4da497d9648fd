package entity

// Document is an opaque JSON payload (booking_data, agent_state, context).
// Upstream producers own the shape; this layer only stores and returns it.
type Document map[string]any

// Clone returns a shallow copy so callers cannot mutate stored state
// through a shared map.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
