package builder

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/proxyforge/proxyforge/pkg/options"
)

// binding ties one RawArgs key to one flag. Registry-backed options and
// surface-specific flags share the same machinery; the only difference is
// where the default comes from.
type binding struct {
	key     string // RawArgs / config-file / env key
	flag    string // long flag name
	kind    options.Kind
	def     any
	counted bool     // repeatable flag whose repetitions add to an int default
	enum    []string // allowed values for enumerated string options
}

// flagName derives the long flag for an option name: underscores become
// dashes, and options defaulting to true get a "no-" prefix so the flag
// always toggles the complement of the default.
func flagName(d options.Descriptor) string {
	name := strings.ReplaceAll(d.Name, "_", "-")
	if d.Kind == options.Bool {
		if def, _ := d.Default.(bool); def {
			return "no-" + name
		}
	}
	return name
}

// opt wires a registry-backed option onto the flag set. An empty flag means
// "derive from the option name"; shorthand may be empty.
func (s *Surface) opt(name, flag, shorthand string) {
	d := s.reg.MustGet(name)
	if flag == "" {
		flag = flagName(d)
	}
	s.addBinding(binding{key: d.Name, flag: flag, kind: d.Kind, def: d.Default}, shorthand, d.Help)
}

// enumOpt wires a registry-backed string option restricted to a fixed value
// set.
func (s *Surface) enumOpt(name, flag, shorthand string, allowed []string) {
	d := s.reg.MustGet(name)
	if flag == "" {
		flag = flagName(d)
	}
	b := binding{key: d.Name, flag: flag, kind: d.Kind, def: d.Default, enum: allowed}
	s.addBinding(b, shorthand, d.Help+" One of: "+strings.Join(allowed, ", ")+".")
}

// countOpt wires a registry-backed int option as a repeatable counting flag:
// each repetition adds one to the registered default.
func (s *Surface) countOpt(name, flag, shorthand string) {
	d := s.reg.MustGet(name)
	if flag == "" {
		flag = strings.ReplaceAll(d.Name, "_", "-")
	}
	b := binding{key: d.Name, flag: flag, kind: d.Kind, def: d.Default, counted: true}
	s.addBinding(b, shorthand, d.Help)
}

// extra wires a surface-specific flag that has no registry descriptor.
func (s *Surface) extra(key, flag, shorthand string, kind options.Kind, def any, help string) {
	if flag == "" {
		flag = strings.ReplaceAll(key, "_", "-")
	}
	s.addBinding(binding{key: key, flag: flag, kind: kind, def: def}, shorthand, help)
}

// extraEnum is extra for enumerated string flags.
func (s *Surface) extraEnum(key, flag, shorthand string, def string, allowed []string, help string) {
	if flag == "" {
		flag = strings.ReplaceAll(key, "_", "-")
	}
	b := binding{key: key, flag: flag, kind: options.String, def: def, enum: allowed}
	s.addBinding(b, shorthand, help+" One of: "+strings.Join(allowed, ", ")+".")
}

// extraCount is extra for repeatable counting flags.
func (s *Surface) extraCount(key, flag, shorthand string, def int, help string) {
	if flag == "" {
		flag = strings.ReplaceAll(key, "_", "-")
	}
	b := binding{key: key, flag: flag, kind: options.Int, def: def, counted: true}
	s.addBinding(b, shorthand, help)
}

func (s *Surface) addBinding(b binding, shorthand, help string) {
	fs := s.cmd.Flags()
	switch {
	case b.counted:
		fs.CountP(b.flag, shorthand, help)
	case b.kind == options.Bool:
		fs.BoolP(b.flag, shorthand, false, help)
	case b.kind == options.Int:
		fs.IntP(b.flag, shorthand, b.def.(int), help)
	case b.kind == options.StringList:
		fs.StringArrayP(b.flag, shorthand, nil, help)
	default:
		// String and Size; size strings stay raw until resolution.
		fs.StringP(b.flag, shorthand, b.def.(string), help)
	}
	s.bindings = append(s.bindings, b)
}

// value computes the effective value for one binding with CLI > environment
// > config file > default priority. v carries the environment and config
// file layers.
func (b binding) value(fs *pflag.FlagSet, v *viper.Viper) (any, error) {
	f := fs.Lookup(b.flag)
	switch {
	case b.counted:
		def := b.def.(int)
		if f.Changed {
			n, err := fs.GetCount(b.flag)
			if err != nil {
				return nil, err
			}
			return def + n, nil
		}
		if v.IsSet(b.key) {
			return v.GetInt(b.key), nil
		}
		return def, nil
	case b.kind == options.Bool:
		def := b.def.(bool)
		if f.Changed {
			// One-shot toggle: the flag stores the complement of the
			// registered default.
			return !def, nil
		}
		if v.IsSet(b.key) {
			return v.GetBool(b.key), nil
		}
		return def, nil
	case b.kind == options.Int:
		if f.Changed {
			return fs.GetInt(b.flag)
		}
		if v.IsSet(b.key) {
			return v.GetInt(b.key), nil
		}
		return b.def, nil
	case b.kind == options.StringList:
		if f.Changed {
			return fs.GetStringArray(b.flag)
		}
		if v.IsSet(b.key) {
			return v.GetStringSlice(b.key), nil
		}
		return b.def, nil
	default:
		var val string
		switch {
		case f.Changed:
			got, err := fs.GetString(b.flag)
			if err != nil {
				return nil, err
			}
			val = got
		case v.IsSet(b.key):
			val = v.GetString(b.key)
		default:
			val = b.def.(string)
		}
		if len(b.enum) > 0 && !contains(b.enum, val) {
			return nil, fmt.Errorf("flag --%s: value %q not one of: %s",
				b.flag, val, strings.Join(b.enum, ", "))
		}
		return val, nil
	}
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
