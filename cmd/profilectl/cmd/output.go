package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/janisto/profile-console/internal/profile"
	"github.com/janisto/profile-console/internal/store"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

func checkFormat(format string) error {
	switch format {
	case formatTable, formatJSON:
		return nil
	default:
		return fmt.Errorf("unknown format %q (want table or json)", format)
	}
}

// failure turns an unsuccessful result into a command error.
func failure(res store.Result, op store.Operation) error {
	if res.Err != nil && res.Err.Message != "" {
		return errors.New(res.Err.Message)
	}
	return errors.New(op.Fallback())
}

func printProfile(w io.Writer, format string, p *profile.Profile) error {
	if format == formatJSON {
		return printJSON(w, p)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	age := "Not Provided"
	if p.Age != nil {
		age = strconv.Itoa(*p.Age)
	}
	id := p.ID
	if id == "" {
		id = "-"
	}
	_, _ = fmt.Fprintf(tw, "ID:\t%s\n", id)
	_, _ = fmt.Fprintf(tw, "Name:\t%s\n", p.Name)
	_, _ = fmt.Fprintf(tw, "Email:\t%s\n", p.Email)
	_, _ = fmt.Fprintf(tw, "Age:\t%s\n", age)
	return tw.Flush()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
