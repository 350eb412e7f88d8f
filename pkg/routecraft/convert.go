package routecraft

import (
	"fmt"
	"math/big"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// builtinTypeNames is the fixed set of type constraints that
// NewConverterRegistry supplies a converter for. The compiler does not
// consult it: any syntactically valid identifier is accepted as a type
// constraint, and the resolver raises ConversionFailure only if no
// converter (built-in or registered) is found for it at bind time.
var builtinTypeNames = map[string]bool{
	"string": true, "int": true, "long": true, "double": true,
	"decimal": true, "bool": true, "DateTime": true, "Guid": true,
	"TimeSpan": true, "fileinfo": true, "directoryinfo": true,
	"uri": true, "ipaddress": true, "dateonly": true, "timeonly": true,
}

// ConversionFailure reports why a raw argument could not be converted
// to the type its parameter declares.
type ConversionFailure struct {
	ParameterName string
	RawValue      string
	TypeName      string
	Err           error
}

func (f *ConversionFailure) Error() string {
	return fmt.Sprintf("parameter %q: cannot convert %q to %s: %v", f.ParameterName, f.RawValue, f.TypeName, f.Err)
}

func (f *ConversionFailure) Unwrap() error { return f.Err }

// TypeConverter converts a raw argument string into a typed value.
type TypeConverter func(raw string) (any, error)

// ConverterRegistry looks up TypeConverters by the type name written in
// a pattern. It ships with the built-in converters and accepts
// host-registered ones for custom type names.
type ConverterRegistry struct {
	converters map[string]TypeConverter
}

// NewConverterRegistry returns a registry preloaded with the built-in
// converters for every name in builtinTypeNames.
func NewConverterRegistry() *ConverterRegistry {
	r := &ConverterRegistry{converters: map[string]TypeConverter{}}
	r.Register("string", func(raw string) (any, error) { return raw, nil })
	r.Register("int", func(raw string) (any, error) {
		v, err := strconv.Atoi(raw)
		return v, err
	})
	r.Register("long", func(raw string) (any, error) {
		v, err := strconv.ParseInt(raw, 10, 64)
		return v, err
	})
	r.Register("double", func(raw string) (any, error) {
		v, err := strconv.ParseFloat(raw, 64)
		return v, err
	})
	r.Register("decimal", func(raw string) (any, error) {
		v, ok := new(big.Float).SetString(raw)
		if !ok {
			return nil, fmt.Errorf("not a decimal number")
		}
		return v, nil
	})
	r.Register("bool", func(raw string) (any, error) {
		v, err := strconv.ParseBool(raw)
		return v, err
	})
	r.Register("DateTime", func(raw string) (any, error) {
		return time.Parse(time.RFC3339, raw)
	})
	r.Register("dateonly", func(raw string) (any, error) {
		return time.Parse("2006-01-02", raw)
	})
	r.Register("timeonly", func(raw string) (any, error) {
		return time.Parse("15:04:05", raw)
	})
	r.Register("TimeSpan", func(raw string) (any, error) {
		return time.ParseDuration(raw)
	})
	r.Register("Guid", func(raw string) (any, error) {
		return uuid.Parse(raw)
	})
	r.Register("uri", func(raw string) (any, error) {
		return url.Parse(raw)
	})
	r.Register("ipaddress", func(raw string) (any, error) {
		ip := net.ParseIP(raw)
		if ip == nil {
			return nil, fmt.Errorf("not an IP address")
		}
		return ip, nil
	})
	r.Register("fileinfo", func(raw string) (any, error) {
		info, err := os.Stat(raw)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory, not a file", raw)
		}
		return info, nil
	})
	r.Register("directoryinfo", func(raw string) (any, error) {
		info, err := os.Stat(raw)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is a file, not a directory", raw)
		}
		return info, nil
	})
	return r
}

// Register adds or replaces the converter for typeName. Hosts call this
// at startup to supply converters for custom type names.
func (r *ConverterRegistry) Register(typeName string, conv TypeConverter) {
	r.converters[typeName] = conv
}

// Convert looks up the converter for typeName and applies it to raw. A
// missing converter and a converter error are both reported as a
// ConversionFailure.
func (r *ConverterRegistry) Convert(parameterName, raw, typeName string) (any, *ConversionFailure) {
	conv, ok := r.converters[typeName]
	if !ok {
		return nil, &ConversionFailure{
			ParameterName: parameterName, RawValue: raw, TypeName: typeName,
			Err: fmt.Errorf("no type converter registered for %q", typeName),
		}
	}
	v, err := conv(raw)
	if err != nil {
		return nil, &ConversionFailure{ParameterName: parameterName, RawValue: raw, TypeName: typeName, Err: err}
	}
	return v, nil
}
