package locale

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed messages/*.yaml
var messageFiles embed.FS

// Bundle holds translated strings per locale
type Bundle struct {
	messages map[string]map[string]string
}

var defaultBundle *Bundle

func init() {
	b, err := LoadBundle()
	if err != nil {
		panic(err)
	}

	defaultBundle = b
}

// LoadBundle reads the embedded message files, one per supported locale
func LoadBundle() (*Bundle, error) {
	b := &Bundle{messages: map[string]map[string]string{}}

	for _, l := range Supported {
		data, err := messageFiles.ReadFile(path.Join("messages", l+".yaml"))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrBundleLoad, l, err)
		}

		if err := b.Add(l, data); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// Add merges a YAML map of nested keys into the locale; nested keys are joined with dots
func (b *Bundle) Add(locale string, data []byte) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrBundleLoad, locale, err)
	}

	if b.messages[locale] == nil {
		b.messages[locale] = map[string]string{}
	}

	flatten("", raw, b.messages[locale])

	return nil
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// T returns the translation of key, falling back to the default locale and then to the key itself
func (b *Bundle) T(locale, key string) string {
	if msg, ok := b.messages[Normalize(locale)][key]; ok {
		return msg
	}

	if msg, ok := b.messages[Default][key]; ok {
		return msg
	}

	return key
}

// Tf is T with the placeholders {name} replaced from args
func (b *Bundle) Tf(locale, key string, args map[string]string) string {
	msg := b.T(locale, key)

	for name, value := range args {
		msg = strings.ReplaceAll(msg, "{"+name+"}", value)
	}

	return msg
}

// T translates with the embedded bundle
func T(locale, key string) string {
	return defaultBundle.T(locale, key)
}

// Tf translates with the embedded bundle and fills placeholders
func Tf(locale, key string, args map[string]string) string {
	return defaultBundle.Tf(locale, key, args)
}
