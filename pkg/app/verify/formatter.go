package verify

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// FormatOutput writes the verification result in the requested format
func FormatOutput(w io.Writer, response *Response, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(response)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		encoder.SetIndent(2)
		return encoder.Encode(response)
	case "table":
		return formatTable(w, response)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func formatTable(w io.Writer, response *Response) error {
	fmt.Fprintf(w, "Keychain: %s (%s)\n", response.Path, response.Format)
	fmt.Fprintf(w, "Passphrase OK, %d items (%d trashed)\n", response.Items, response.Trashed)
	if len(response.Categories) == 0 {
		return nil
	}

	names := make([]string, 0, len(response.Categories))
	for name := range response.Categories {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "\nCATEGORY\tITEMS\n")
	fmt.Fprintf(tw, "--------\t-----\n")
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t%d\n", name, response.Categories[name])
	}
	return tw.Flush()
}
