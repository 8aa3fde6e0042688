package xmltv

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// ValidationError collects every grammar violation found in one pass,
// combined into a single message. Unlike the fail-fast overlap gate, grammar
// conformance is reported in batch.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("xmltv document is not valid:\n%s", strings.Join(e.Violations, "\n"))
}

var (
	elementDecl = regexp.MustCompile(`<!ELEMENT\s+([\w-]+)`)
	timestamp   = regexp.MustCompile(`^\d{14} [+-]\d{4}$`)
)

// childRank orders the programme children the feed emits, per the grammar's
// content model (title+, desc*, category*, episode-num*).
var childRank = map[string]int{
	"title":       0,
	"desc":        1,
	"category":    2,
	"episode-num": 3,
}

// ValidateAgainstDTD checks the emitted document against the cached XMLTV
// grammar: every element used must be declared, and the structural rules of
// the emitted subset must hold (required attributes, timestamp shapes, child
// order, at least one title per programme). All violations are collected
// before failing.
func ValidateAgainstDTD(doc []byte, dtdPath string) error {
	dtd, err := os.ReadFile(dtdPath)
	if err != nil {
		return fmt.Errorf("read dtd: %w", err)
	}

	declared := make(map[string]bool)
	for _, m := range elementDecl.FindAllSubmatch(dtd, -1) {
		declared[string(m[1])] = true
	}
	if len(declared) == 0 {
		return fmt.Errorf("no element declarations found in %s", dtdPath)
	}

	var violations []string
	report := func(format string, args ...any) {
		violations = append(violations, fmt.Sprintf(format, args...))
	}

	dec := xml.NewDecoder(bytes.NewReader(doc))
	dec.Strict = true
	dec.Entity = make(map[string]string)

	var stack []string
	var rootSeen bool
	programmes := 0
	var titleCount int
	var lastRank int

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			report("malformed xml: %v", err)
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local

			if !declared[name] {
				report("element <%s> is not declared in the grammar", name)
			}
			if len(stack) == 0 {
				rootSeen = true
				if name != "tv" {
					report("root element is <%s>, expected <tv>", name)
				}
			}

			switch name {
			case "channel":
				if attrValue(t, "id") == "" {
					report("channel element without id attribute")
				}
			case "programme":
				programmes++
				titleCount = 0
				lastRank = -1
				for _, attr := range []string{"start", "stop", "channel"} {
					v := attrValue(t, attr)
					if v == "" {
						report("programme %d: missing %s attribute", programmes, attr)
					} else if attr != "channel" && !timestamp.MatchString(v) {
						report("programme %d: malformed %s timestamp %q", programmes, attr, v)
					}
				}
			case "episode-num":
				if attrValue(t, "system") == "" {
					report("programme %d: episode-num without system attribute", programmes)
				}
			}

			if len(stack) > 0 && stack[len(stack)-1] == "programme" {
				if rank, ok := childRank[name]; ok {
					if rank < lastRank {
						report("programme %d: element <%s> out of order", programmes, name)
					} else {
						lastRank = rank
					}
					if name == "title" {
						titleCount++
					}
				}
			}

			stack = append(stack, name)

		case xml.EndElement:
			if t.Name.Local == "programme" && titleCount == 0 {
				report("programme %d: missing title element", programmes)
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if !rootSeen {
		report("document has no root element")
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

func attrValue(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
