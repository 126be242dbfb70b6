package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/padelmixer/padelmixer-admin/internal/api/response"
	"github.com/padelmixer/padelmixer-admin/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
}

func output(cmd *cobra.Command) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == FormatJSON {
		o.printJSON(o.out, data)
	} else {
		o.printText(data)
	}
}

// errorBody is the JSON shape of a failed command
type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Count   int    `json:"count,omitempty"`
}

// PrintError outputs an error. Blocked deletions also carry the restriction code and count.
func (o *Output) PrintError(err error) {
	body := errorBody{Message: err.Error()}
	var restriction *model.DeleteRestrictionError
	if errors.As(err, &restriction) {
		body.Code = string(restriction.Code)
		body.Count = restriction.Count()
	}

	if o.format == FormatJSON {
		o.printJSON(o.errOut, map[string]errorBody{"error": body})
		return
	}
	_, _ = fmt.Fprintf(o.errOut, "Error: %s\n", body.Message)
	if body.Code != "" {
		_, _ = fmt.Fprintf(o.errOut, "Reason: %s (%d)\n", body.Code, body.Count)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == FormatJSON {
		o.printJSON(o.out, map[string]string{"message": msg})
	} else {
		_, _ = fmt.Fprintln(o.out, msg)
	}
}

func (o *Output) printJSON(w io.Writer, data any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case *model.Player:
		o.printPlayer(*v)
	case model.Player:
		o.printPlayer(v)
	case []model.Player:
		o.printPlayers(v)
	case Identity:
		o.printIdentity(v)
	case response.Health:
		_, _ = fmt.Fprintf(o.out, "Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(o.out, data)
	}
}

// Identity is what whoami and login report about the signed-in principal
type Identity struct {
	model.Principal
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Expired   bool       `json:"expired"`
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func (o *Output) printPlayer(p model.Player) {
	w := tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Player:\t%s (%d)\n", p.FullName(), p.ID)
	_, _ = fmt.Fprintf(w, "Email:\t%s\n", p.Email)
	if p.Phone != "" {
		_, _ = fmt.Fprintf(w, "Phone:\t%s\n", p.Phone)
	}
	_, _ = fmt.Fprintf(w, "Birth date:\t%s\n", p.BirthDate)
	_, _ = fmt.Fprintf(w, "Level:\t%s\n", p.SkillLevel.Label())
	_, _ = fmt.Fprintf(w, "Registered:\t%s\n", p.RegisteredAt.Format(time.DateOnly))
	_, _ = fmt.Fprintf(w, "Active:\t%s\n", yesNo(p.Active))
	if p.Notes != "" {
		_, _ = fmt.Fprintf(w, "Notes:\t%s\n", p.Notes)
	}
	_ = w.Flush()
}

func (o *Output) printPlayers(players []model.Player) {
	if len(players) == 0 {
		_, _ = fmt.Fprintln(o.out, "No players found")
		return
	}

	w := tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tEMAIL\tLEVEL\tACTIVE")
	for _, p := range players {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.FullName(), p.Email, p.SkillLevel.Label(), yesNo(p.Active))
	}
	_ = w.Flush()
	_, _ = fmt.Fprintf(o.out, "%d player(s)\n", len(players))
}

func (o *Output) printIdentity(id Identity) {
	_, _ = fmt.Fprintf(o.out, "Signed in as %s <%s>\n", id.DisplayName, id.Email)
	_, _ = fmt.Fprintf(o.out, "Role: %s\n", id.Role)
	if id.ExpiresAt != nil {
		state := "valid until"
		if id.Expired {
			state = "expired at"
		}
		_, _ = fmt.Fprintf(o.out, "Session %s %s\n", state, id.ExpiresAt.Local().Format(time.DateTime))
	}
}
