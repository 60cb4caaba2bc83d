//go:build generate

// Command schema_generator writes the config JSON schema and the example YAML
// and env files from the config struct. Run it with `go run -tags generate ./jsonschema`.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	iyaml "github.com/invopop/yaml"
	"github.com/mcuadros/go-defaults"
	"github.com/theopenlane/utils/envparse"

	"github.com/yannicklang1/eu-complience-hub-sub008/config"
)

const (
	modulePath   = "github.com/yannicklang1/eu-complience-hub-sub008/"
	tagName      = "koanf"
	skipper      = "-"
	defaultTag   = "default"
	sensitiveTag = "sensitive"
	varPrefix    = "HUB"

	filePerm = 0o600
)

var durationType = reflect.TypeOf(time.Duration(0))

// output is one generated file
type output struct {
	path   string
	render func(*config.Config) ([]byte, error)
}

func main() {
	cfg := &config.Config{}
	defaults.SetDefaults(cfg)

	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"https://eu-compliance-hub.eu"}
	}

	outputs := []output{
		{path: "./jsonschema/hub.config.json", render: renderSchema},
		{path: "./config/config.example.yaml", render: renderYAML},
		{path: "./config/.env.example", render: renderEnv},
	}

	for _, out := range outputs {
		data, err := out.render(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rendering %s: %v\n", out.path, err)
			os.Exit(1)
		}

		if err := os.WriteFile(out.path, data, filePerm); err != nil {
			fmt.Fprintf(os.Stderr, "writing %s: %v\n", out.path, err)
			os.Exit(1)
		}

		fmt.Printf("wrote %s\n", out.path)
	}
}

// renderSchema reflects the config into a JSON schema with field docs from the config package
func renderSchema(cfg *config.Config) ([]byte, error) {
	r := &jsonschema.Reflector{
		ExpandedStruct:             true,
		RequiredFromJSONSchemaTags: true,
		FieldNameTag:               tagName,
	}

	if err := r.AddGoComments(modulePath, "./config"); err != nil {
		return nil, fmt.Errorf("reading config comments: %w", err)
	}

	s := r.Reflect(cfg)
	s.Title = "EU Compliance Hub configuration"

	return json.MarshalIndent(s, "", "  ")
}

// renderYAML writes the defaults as an example config file
func renderYAML(cfg *config.Config) ([]byte, error) {
	return iyaml.Marshal(toYAMLValue(reflect.ValueOf(cfg)))
}

// renderEnv lists every HUB_ variable with its default; sensitive values are left blank
func renderEnv(cfg *config.Config) ([]byte, error) {
	parser := envparse.Config{FieldTagName: tagName, Skipper: skipper}

	vars, err := parser.GatherEnvInfo(varPrefix, cfg)
	if err != nil {
		return nil, fmt.Errorf("gathering env vars: %w", err)
	}

	var b strings.Builder

	for _, v := range vars {
		value := v.Tags.Get(defaultTag)

		if v.Tags.Get(sensitiveTag) == "true" {
			value = ""
			fmt.Fprintf(&b, "# %s is sensitive\n", v.Key)
		} else if v.Type == durationType && value != "" {
			if d, err := time.ParseDuration(value); err == nil {
				value = d.String()
			}
		}

		fmt.Fprintf(&b, "%s=%q\n", v.Key, value)
	}

	return []byte(b.String()), nil
}

// toYAMLValue converts config values to plain maps and slices keyed by the koanf tag,
// rendering durations as strings
func toYAMLValue(v reflect.Value) any {
	v = reflect.Indirect(v)
	if !v.IsValid() {
		return nil
	}

	if v.Type() == durationType {
		return time.Duration(v.Int()).String()
	}

	switch v.Kind() {
	case reflect.Struct:
		out := map[string]any{}

		for i := 0; i < v.NumField(); i++ {
			field := v.Type().Field(i)
			key := field.Tag.Get(tagName)

			if !field.IsExported() || key == "" || key == skipper {
				continue
			}

			out[key] = toYAMLValue(v.Field(i))
		}

		return out
	case reflect.Slice:
		items := make([]any, v.Len())
		for i := range items {
			items[i] = toYAMLValue(v.Index(i))
		}

		return items
	default:
		return v.Interface()
	}
}
