package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Property is one top-level property declared by a schema.
type Property struct {
	Name        string
	Type        string
	Localizable bool
	Description string
}

// Matches reports whether value is present and has the declared type.
// Presence follows JavaScript truthiness, so empty strings, zero, false and
// null are treated as absent. Type names follow the `typeof` operator:
// arrays and objects are both "object".
func (p Property) Matches(value any) bool {
	if p.Type == "" || !Truthy(value) {
		return false
	}
	return TypeOf(value) == p.Type
}

// TypeOf returns the JavaScript `typeof` name of a decoded JSON value.
func TypeOf(value any) string {
	switch value.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int64, int32, json.Number:
		return "number"
	default:
		return "object"
	}
}

// Truthy reports whether value would be truthy in JavaScript.
func Truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case float64:
		return v != 0 && v == v
	case float32:
		return v != 0 && v == v
	case int:
		return v != 0
	case int64:
		return v != 0
	case int32:
		return v != 0
	case json.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	default:
		return true
	}
}

// Properties is the ordered set of localizable properties of a schema.
type Properties struct {
	list    []Property
	byName  map[string]int
	untyped []string
}

// List returns the properties in declaration order.
func (p Properties) List() []Property {
	out := make([]Property, len(p.list))
	copy(out, p.list)
	return out
}

// Get returns the property with the given name.
func (p Properties) Get(name string) (Property, bool) {
	i, ok := p.byName[name]
	if !ok {
		return Property{}, false
	}
	return p.list[i], true
}

// Len returns the number of localizable properties.
func (p Properties) Len() int {
	return len(p.list)
}

// Untyped returns the localizable properties whose type is missing or is
// not a single type name, such as ["string", "null"]. They never match.
func (p Properties) Untyped() []string {
	out := make([]string, len(p.untyped))
	copy(out, p.untyped)
	return out
}

// Names returns the property names in declaration order.
func (p Properties) Names() []string {
	names := make([]string, len(p.list))
	for i, prop := range p.list {
		names[i] = prop.Name
	}
	return names
}

func (p *Properties) add(prop Property) {
	if p.byName == nil {
		p.byName = make(map[string]int)
	}
	if i, ok := p.byName[prop.Name]; ok {
		p.list[i] = prop
		return
	}
	p.byName[prop.Name] = len(p.list)
	p.list = append(p.list, prop)
}

type propertyDef struct {
	Type        json.RawMessage `json:"type"`
	Localizable json.RawMessage `json:"localizable"`
	Description string          `json:"description"`
}

// Parse reads a JSON Schema document and returns its properties flagged
// `"localizable": true`, in the order they appear in the document.
func Parse(data []byte) (Properties, error) {
	var props Properties

	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return props, err
	}

	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return props, err
		}
		if key != "properties" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return props, errors.Join(ErrInvalidSchema, err)
			}
			continue
		}
		if err := parseProperties(dec, &props); err != nil {
			return props, err
		}
	}

	return props, nil
}

func parseProperties(dec *json.Decoder, props *Properties) error {
	tok, err := dec.Token()
	if err != nil {
		return errors.Join(ErrInvalidSchema, err)
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("%w: properties must be an object", ErrInvalidSchema)
	}

	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return err
		}
		var def propertyDef
		if err := dec.Decode(&def); err != nil {
			// Non-object property definitions cannot be localizable.
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				continue
			}
			return errors.Join(ErrInvalidSchema, err)
		}
		var localizable bool
		if json.Unmarshal(def.Localizable, &localizable) != nil || !localizable {
			continue
		}
		var typ string
		if err := json.Unmarshal(def.Type, &typ); err != nil || typ == "" {
			props.untyped = append(props.untyped, name)
		}
		props.add(Property{
			Name:        name,
			Type:        typ,
			Localizable: true,
			Description: def.Description,
		})
	}

	if _, err := dec.Token(); err != nil {
		return errors.Join(ErrInvalidSchema, err)
	}
	return nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty document", ErrInvalidSchema)
		}
		return errors.Join(ErrInvalidSchema, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q", ErrInvalidSchema, want)
	}
	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", errors.Join(ErrInvalidSchema, err)
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("%w: unexpected token %v", ErrInvalidSchema, tok)
	}
	return key, nil
}
