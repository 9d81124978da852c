// Package document implements the metadata+body markdown format used for
// every vault document. A document is an optional YAML-style frontmatter
// block delimited by "---" lines, followed by free-form body text. All
// metadata values are plain strings; interpretation is left to callers.
package document

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// Parse splits raw document text into its metadata map and body. It
// fails soft: if no valid delimited metadata block is found, or the
// block does not decode as flat key/value pairs, the whole text is
// returned as body with an empty metadata map. Parse never returns an
// error.
func Parse(raw string) (map[string]string, string) {
	meta := map[string]string{}

	if !strings.HasPrefix(raw, delimiter+"\n") {
		return meta, raw
	}

	rest := raw[len(delimiter)+1:]
	var block, body string
	if strings.HasPrefix(rest, delimiter+"\n") {
		// Zero-line metadata block: the closing delimiter follows
		// the opening one immediately.
		body = rest[len(delimiter)+1:]
	} else if rest == delimiter {
		body = ""
	} else if idx := strings.Index(rest, "\n"+delimiter+"\n"); idx >= 0 {
		block = rest[:idx]
		body = rest[idx+len(delimiter)+2:]
	} else if strings.HasSuffix(rest, "\n"+delimiter) {
		block = rest[:len(rest)-len(delimiter)-1]
		body = ""
	} else {
		return meta, raw
	}

	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		// Malformed block: recover by treating the document as pure body.
		return map[string]string{}, raw
	}
	if meta == nil {
		meta = map[string]string{}
	}
	return meta, body
}

// Render is the inverse of Parse. For metadata maps containing only
// single-line scalar values and bodies that do not begin with a newline,
// Parse(Render(meta, body)) returns the same metadata and body. An empty
// metadata map renders as the bare body with no frontmatter block.
func Render(meta map[string]string, body string) string {
	if len(meta) == 0 {
		return body
	}

	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(delimiter + "\n")
	for _, k := range keys {
		sb.WriteString(renderField(k, meta[k]))
	}
	sb.WriteString(delimiter + "\n")
	sb.WriteString(body)
	return sb.String()
}

// renderField emits one "key: value" line, delegating quoting to the
// YAML encoder so values with special characters survive a round trip.
func renderField(key, value string) string {
	out, err := yaml.Marshal(map[string]string{key: value})
	if err != nil {
		// map[string]string cannot fail to marshal; keep a plain
		// fallback anyway rather than panicking on a document write.
		return fmt.Sprintf("%s: %s\n", key, value)
	}
	return string(out)
}
