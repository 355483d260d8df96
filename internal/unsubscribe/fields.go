package unsubscribe

import (
	"bufio"
	"bytes"
	"strings"
)

type headerField struct {
	name   string   // original field-name
	values []string // folded lines
}

// rawFields holds header fields scanned from undecoded bytes. Values may
// contain invalid UTF-8 until they are validated by the caller.
type rawFields struct {
	keys   map[string]int // field-name -> index of its first occurrence
	fields []headerField  // Preserve header field order
}

// scanFields parses at most maxLines lines of b into header fields.
// Lines are split on LF only so that stray bytes never end a line early.
func scanFields(b []byte, maxLines int) rawFields {
	keys := map[string]int{}
	parsedFields := parseFields(b, maxLines)

	for i, field := range parsedFields {
		if _, exists := keys[field.name]; !exists {
			keys[field.name] = i
		}
	}

	return rawFields{
		keys:   keys,
		fields: parsedFields,
	}
}

func parseFields(b []byte, maxLines int) (fields []headerField) {
	var currentField *headerField
	scanner := bufio.NewScanner(bytes.NewReader(b))
	scanner.Buffer(nil, len(b)+1)

	for n := 0; n < maxLines && scanner.Scan(); n++ {
		line := strings.TrimRight(scanner.Text(), "\r")

		// Check if this is a folded line (starts with SP or HT)
		if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			if currentField != nil {
				currentField.values = append(currentField.values, strings.TrimLeft(line, " \t"))
			}
		} else if i := strings.Index(line, ":"); i != -1 {
			name := line[:i]
			value := line[i+1:]
			// field-name and value are separated by ": "
			if v, ok := strings.CutPrefix(value, " "); ok {
				value = v
			}

			fields = append(fields, headerField{
				name:   name,
				values: []string{strings.TrimRight(value, " \t")},
			})
			currentField = &fields[len(fields)-1]
		} else {
			// Not a header line, ends any folding
			currentField = nil
		}
	}

	return
}

// value returns the unfolded value of the first field named exactly name.
func (h rawFields) value(name string) (string, bool) {
	index, exists := h.keys[name]
	if !exists {
		return "", false
	}
	var parts []string
	for _, v := range h.fields[index].values {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " "), true
}
