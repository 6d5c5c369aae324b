// Package delta describes rich-text contents and changes as an ordered list of
// operations: inserts (text or embeds), retains, and deletes.
//
// Lengths are measured in runes. An embed has length 1.
package delta

import (
	"encoding/json"
	"fmt"
	"reflect"
	"unicode/utf8"
)

// Source identifies who produced a change.
type Source string

const (
	// SourceUser marks edits typed by the user.
	SourceUser Source = "user"
	// SourceAPI marks programmatic edits.
	SourceAPI Source = "api"
	// SourceSilent marks programmatic edits that emit no change notification.
	SourceSilent Source = "silent"
)

// Embed is a non-text atomic unit, such as an image or a horizontal rule.
type Embed struct {
	Kind  string
	Value any
}

// Op is a single delta operation. Exactly one of Insert, Embed, Retain, or
// Delete is set.
type Op struct {
	Insert     string
	Embed      *Embed
	Retain     int
	Delete     int
	Attributes Attributes
}

// IsInsert reports whether the op inserts text or an embed.
func (o Op) IsInsert() bool {
	return o.Insert != "" || o.Embed != nil
}

// IsRetain reports whether the op retains content.
func (o Op) IsRetain() bool {
	return o.Retain > 0
}

// IsDelete reports whether the op deletes content.
func (o Op) IsDelete() bool {
	return o.Delete > 0
}

// Len returns the number of document positions the op covers.
func (o Op) Len() int {
	switch {
	case o.Embed != nil:
		return 1
	case o.Insert != "":
		return utf8.RuneCountInString(o.Insert)
	case o.Retain > 0:
		return o.Retain
	default:
		return o.Delete
	}
}

// MarshalJSON encodes the op in the conventional delta wire shape:
// {"insert": "text"}, {"insert": {"image": "url"}}, {"retain": 3}, {"delete": 2}.
func (o Op) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, 2)
	switch {
	case o.Embed != nil:
		out["insert"] = map[string]any{o.Embed.Kind: o.Embed.Value}
	case o.Insert != "":
		out["insert"] = o.Insert
	case o.Retain > 0:
		out["retain"] = o.Retain
	case o.Delete > 0:
		out["delete"] = o.Delete
	default:
		return nil, fmt.Errorf("marshal op: empty operation")
	}
	if len(o.Attributes) > 0 {
		out["attributes"] = o.Attributes
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal op: %w", err)
	}
	return data, nil
}

// UnmarshalJSON decodes the wire shape produced by MarshalJSON.
func (o *Op) UnmarshalJSON(data []byte) error {
	var raw struct {
		Insert     json.RawMessage `json:"insert"`
		Retain     int             `json:"retain"`
		Delete     int             `json:"delete"`
		Attributes Attributes      `json:"attributes"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal op: %w", err)
	}

	*o = Op{Retain: raw.Retain, Delete: raw.Delete, Attributes: raw.Attributes}
	if len(raw.Insert) == 0 {
		if o.Retain <= 0 && o.Delete <= 0 {
			return fmt.Errorf("unmarshal op: no insert, retain or delete in %s", data)
		}
		return nil
	}

	var text string
	if err := json.Unmarshal(raw.Insert, &text); err == nil {
		o.Insert = text
		return nil
	}

	var embed map[string]any
	if err := json.Unmarshal(raw.Insert, &embed); err != nil {
		return fmt.Errorf("unmarshal op insert: %w", err)
	}
	if len(embed) != 1 {
		return fmt.Errorf("unmarshal op: embed must have exactly one key, got %d", len(embed))
	}
	for kind, value := range embed {
		o.Embed = &Embed{Kind: kind, Value: value}
	}
	return nil
}

// Delta is an ordered list of operations.
type Delta struct {
	Ops []Op `json:"ops"`
}

// New returns an empty delta.
func New() *Delta {
	return &Delta{}
}

// Insert appends a text insert. Adjacent inserts with equal attributes merge.
func (d *Delta) Insert(text string, attrs Attributes) *Delta {
	if text == "" {
		return d
	}
	return d.push(Op{Insert: text, Attributes: attrs.compact()})
}

// InsertEmbed appends an embed insert.
func (d *Delta) InsertEmbed(kind string, value any, attrs Attributes) *Delta {
	return d.push(Op{Embed: &Embed{Kind: kind, Value: value}, Attributes: attrs.compact()})
}

// Retain appends a retain of n positions, optionally applying attrs.
func (d *Delta) Retain(n int, attrs Attributes) *Delta {
	if n <= 0 {
		return d
	}
	return d.push(Op{Retain: n, Attributes: attrs})
}

// Delete appends a delete of n positions.
func (d *Delta) Delete(n int) *Delta {
	if n <= 0 {
		return d
	}
	return d.push(Op{Delete: n})
}

// Length returns the total length covered by all ops.
func (d *Delta) Length() int {
	total := 0
	for _, op := range d.Ops {
		total += op.Len()
	}
	return total
}

func (d *Delta) push(op Op) *Delta {
	if len(d.Ops) == 0 {
		d.Ops = append(d.Ops, op)
		return d
	}

	last := &d.Ops[len(d.Ops)-1]
	switch {
	case op.IsDelete() && last.IsDelete():
		last.Delete += op.Delete
		return d
	case op.Insert != "" && last.Insert != "" && reflect.DeepEqual(last.Attributes, op.Attributes):
		last.Insert += op.Insert
		return d
	case op.IsRetain() && last.IsRetain() && reflect.DeepEqual(last.Attributes, op.Attributes):
		last.Retain += op.Retain
		return d
	}

	d.Ops = append(d.Ops, op)
	return d
}
