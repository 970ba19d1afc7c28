package show

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// FormatOutput writes the decrypted item in the requested format
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

// formatTable prints a short header followed by the indented plaintext
func formatTable(w io.Writer, response *Response) error {
	fmt.Fprintf(w, "UUID:     %s\n", response.Item.UUID)
	fmt.Fprintf(w, "Title:    %s\n", response.Item.Title)
	fmt.Fprintf(w, "Category: %s\n", response.Item.Category)
	if response.Item.Trashed {
		fmt.Fprintf(w, "Trashed:  yes\n")
	}
	fmt.Fprintln(w)

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, response.Plaintext, "", "  "); err != nil {
		_, err = fmt.Fprintln(w, string(response.Plaintext))
		return err
	}
	_, err := fmt.Fprintln(w, pretty.String())
	return err
}
