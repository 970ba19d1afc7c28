package list

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// FormatOutput writes the item list in the requested format
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
	if len(response.Items) == 0 {
		fmt.Fprintln(w, "No items found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "UUID\tTITLE\tCATEGORY\tUPDATED\n")
	fmt.Fprintf(tw, "----\t-----\t--------\t-------\n")
	for _, item := range response.Items {
		updated := "-"
		if !item.UpdatedAt.IsZero() {
			updated = item.UpdatedAt.UTC().Format("2006-01-02 15:04")
		}
		title := item.Title
		if item.Trashed {
			title += " (trashed)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", item.UUID, title, item.Category, updated)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%d items in %s\n", response.Total, response.Path)
	return nil
}
