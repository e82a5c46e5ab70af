package config

import (
	"bytes"
	"os"
	"text/template"
)

// ExpandEnv fills {{.VAR}} holes in lucide.yaml from the environment before
// YAML parsing. Go template syntax is used instead of $VAR so that literal
// dollar signs survive untouched — redis passwords and upstream keys may
// contain them, and "{{.REDIS_ADDR}}" stays visually distinct from shell
// expansion in the sample config.
//
// A hole for an unset variable expands to the empty string; required fields
// are then caught by validation. Malformed template syntax passes the content
// through unchanged so the YAML parser can report the real problem.
func ExpandEnv(data []byte) []byte {
	tmpl, err := template.New("lucide.yaml").Option("missingkey=zero").Parse(string(data))
	if err != nil {
		return data
	}

	env := make(map[string]string)
	for _, kv := range os.Environ() {
		// Split on the first = only; values may contain = themselves.
		if idx := bytes.IndexByte([]byte(kv), '='); idx > 0 {
			env[kv[:idx]] = kv[idx+1:]
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, env); err != nil {
		return data
	}
	return buf.Bytes()
}
