package lut

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"unicode"

	"github.com/itohio/rnet/pkg/network"
)

// DefaultName is the firmware array name.
const DefaultName = "resistorLookup"

var headerTemplate = template.Must(template.New("header").Parse(`#ifndef {{.Guard}}
#define {{.Guard}}

#include <stdint.h>

// Structure holding the combination mask and its effective resistance (in ohms).
struct ResistorCombination {
  {{.MaskType}} mask;      // Each bit indicates whether a switch is closed.
  float resistance;   // Effective resistance in ohms.
};

extern const ResistorCombination {{.Name}}[{{.Count}}];

#endif // {{.Guard}}
`))

// MaskType returns the smallest C integer type that holds width bits.
func MaskType(width int) string {
	switch {
	case width <= 8:
		return "uint8_t"
	case width <= 16:
		return "uint16_t"
	default:
		return "uint32_t"
	}
}

// Guard derives an include guard from an array name:
// resistorLookup becomes RESISTOR_LOOKUP_H.
func Guard(name string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range name {
		switch {
		case unicode.IsUpper(r) && prevLower:
			b.WriteByte('_')
			b.WriteRune(r)
			prevLower = false
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToUpper(r))
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		default:
			b.WriteByte('_')
			prevLower = false
		}
	}
	b.WriteString("_H")
	return b.String()
}

// WriteHeader writes the C header declaring the lookup array.
func WriteHeader(w io.Writer, name string, width, count int) error {
	if name == "" {
		name = DefaultName
	}
	err := headerTemplate.Execute(w, struct {
		Guard    string
		MaskType string
		Name     string
		Count    int
	}{
		Guard:    Guard(name),
		MaskType: MaskType(width),
		Name:     name,
		Count:    count,
	})
	if err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	return nil
}

// WriteArray writes the array definition with its initializer.
func WriteArray(w io.Writer, name string, entries []network.Entry) error {
	if name == "" {
		name = DefaultName
	}
	if _, err := fmt.Fprintf(w, "const ResistorCombination %s[%d] = {\n", name, len(entries)); err != nil {
		return fmt.Errorf("failed to write array: %w", err)
	}
	if err := Write(w, entries); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "};\n"); err != nil {
		return fmt.Errorf("failed to write array: %w", err)
	}
	return nil
}
