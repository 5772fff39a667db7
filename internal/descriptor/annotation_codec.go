package descriptor

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// rawAnnotation has the same layout as RawAnnotation without its decoders.
type rawAnnotation RawAnnotation

// UnmarshalYAML accepts the short form "- Name" as well as the mapping form.
func (a *RawAnnotation) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*a = RawAnnotation{Name: node.Value}
		return nil
	}

	var r rawAnnotation
	if err := node.Decode(&r); err != nil {
		return err
	}

	*a = RawAnnotation(r)

	return nil
}

// UnmarshalJSON accepts a bare string as well as an object.
func (a *RawAnnotation) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*a = RawAnnotation{Name: name}
		return nil
	}

	var r rawAnnotation
	if err := json.Unmarshal(data, &r, json.RejectUnknownMembers(true)); err != nil {
		return err
	}

	*a = RawAnnotation(r)

	return nil
}

// DecodeMsgpack accepts a bare string as well as a map.
func (a *RawAnnotation) DecodeMsgpack(dec *msgpack.Decoder) error {
	v, err := dec.DecodeInterface()
	if err != nil {
		return err
	}

	switch v := v.(type) {
	case string:
		*a = RawAnnotation{Name: v}
		return nil
	case map[string]any:
		data, err := msgpack.Marshal(v)
		if err != nil {
			return err
		}

		var r rawAnnotation
		if err := msgpack.Unmarshal(data, &r); err != nil {
			return err
		}

		*a = RawAnnotation(r)

		return nil
	default:
		return fmt.Errorf("annotation: unexpected msgpack value %T", v)
	}
}

func printed(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	return fmt.Sprint(v)
}
