package flash

import "strings"

// Spec is a parsed programmer specification of the form
// "name[:key=value,key=value,...]".
type Spec struct {
	Programmer string
	Params     map[string]string
}

// ParseSpec splits a programmer specification into its name and
// parameters.
func ParseSpec(spec string) (Spec, error) {
	name, rest, _ := strings.Cut(spec, ":")
	if name == "" {
		return Spec{}, &SpecError{Spec: spec, Reason: "empty programmer name"}
	}
	s := Spec{Programmer: name, Params: make(map[string]string)}
	if rest == "" {
		return s, nil
	}
	for _, kv := range strings.Split(rest, ",") {
		if kv == "" {
			continue
		}
		key, val, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return Spec{}, &SpecError{Spec: spec, Reason: "malformed parameter " + kv}
		}
		if _, dup := s.Params[key]; dup {
			return Spec{}, &SpecError{Spec: spec, Reason: "duplicate parameter " + key}
		}
		s.Params[key] = val
	}
	return s, nil
}

// Param returns the named parameter, or "" if absent.
func (s Spec) Param(key string) string {
	return s.Params[key]
}
