package temporal

import (
	"fmt"

	"github.com/magiconair/properties"
	perrors "github.com/pkg/errors"
	"github.com/spf13/cast"
)

// PropertiesFromString reads settings from .properties content. If prefix is not empty,
// only keys with the prefix are kept and the prefix is stripped,
// e.g. "converters.mytemporal." for "converters.mytemporal.format.date".
func PropertiesFromString(content, prefix string) (map[string]string, error) {
	p, err := properties.LoadString(content)
	if err != nil {
		return nil, perrors.Wrap(err, "Load properties error")
	}
	return propertiesMap(p, prefix), nil
}

// PropertiesFromFile is like PropertiesFromString but reads an UTF-8 file.
func PropertiesFromFile(path, prefix string) (map[string]string, error) {
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return nil, perrors.Wrapf(err, "Load properties file %q error", path)
	}
	return propertiesMap(p, prefix), nil
}

func propertiesMap(p *properties.Properties, prefix string) map[string]string {
	if prefix != "" {
		p = p.FilterStripPrefix(prefix)
	}
	return p.Map()
}

// PropertiesFromMap coerces loosely typed settings (e.g. decoded from JSON/YAML) to
// strings. Only recognized keys are coerced; a value of them that can't be converted
// to string is a *ConfigError.
func PropertiesFromMap(m map[string]interface{}) (map[string]string, error) {
	ret := make(map[string]string, len(settingKeys))
	for _, key := range settingKeys {
		val, found := m[key]
		if !found || val == nil {
			continue
		}
		s, err := cast.ToStringE(val)
		if err != nil {
			return nil, &ConfigError{Key: key, Value: fmt.Sprint(val), Err: err}
		}
		ret[key] = s
	}
	return ret, nil
}
