package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// FormatOutput writes the export summary in the requested format
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
		fmt.Fprintf(w, "Exported %d items from %s to %s (%s)", response.Exported, response.Path, response.OutputPath, response.Format)
		if response.Failed > 0 {
			fmt.Fprintf(w, ", %d failed", response.Failed)
		}
		_, err := fmt.Fprintf(w, " in %v\n", response.Duration.Round(time.Millisecond))
		return err
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
