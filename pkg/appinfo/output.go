package appinfo

import (
	"bytes"
	"encoding/json"
)

// Output is a localized document: property names and values in the order
// they were resolved.
type Output struct {
	names  []string
	values map[string]string
}

// NewOutput creates an empty output.
func NewOutput() *Output {
	return &Output{values: make(map[string]string)}
}

// Set stores value under name, keeping the position of an existing name.
func (o *Output) Set(name, value string) {
	if _, ok := o.values[name]; !ok {
		o.names = append(o.names, name)
	}
	o.values[name] = value
}

// Get returns the value stored under name.
func (o *Output) Get(name string) (string, bool) {
	v, ok := o.values[name]
	return v, ok
}

// Len returns the number of properties.
func (o *Output) Len() int {
	return len(o.names)
}

// Names returns the property names in order.
func (o *Output) Names() []string {
	return append([]string(nil), o.names...)
}

// MarshalJSON encodes the output as a JSON object indented by four spaces.
// An empty output encodes as {}.
func (o *Output) MarshalJSON() ([]byte, error) {
	if o.Len() == 0 {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, name := range o.names {
		buf.WriteString("    ")
		if err := writeString(&buf, name); err != nil {
			return nil, err
		}
		buf.WriteString(": ")
		if err := writeString(&buf, o.values[name]); err != nil {
			return nil, err
		}
		if i < len(o.names)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// String returns the JSON text of the output.
func (o *Output) String() string {
	data, _ := o.MarshalJSON()
	return string(data)
}

func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
