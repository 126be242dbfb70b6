package cli

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/padelmixer/padelmixer-admin/internal/model"
)

// Directory routes
const (
	playersRoute = "/jugadores"
	playerRoute  = "/jugadores/{id}"
)

func newPlayersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "players",
		Aliases: []string{"jugadores"},
		Short:   "Player directory commands",
	}

	cmd.AddCommand(newPlayersListCmd())
	cmd.AddCommand(newPlayersGetCmd())
	cmd.AddCommand(newPlayersCreateCmd())
	cmd.AddCommand(newPlayersUpdateCmd())
	cmd.AddCommand(newPlayersDeleteCmd())

	return cmd
}

func parsePlayerID(arg string) (model.PlayerID, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid player id %q", arg)
	}
	return model.PlayerID(id), nil
}

// intersect keeps the players of base that also appear in other, in base order
func intersect(base, other []model.Player) []model.Player {
	return slices.DeleteFunc(slices.Clone(base), func(p model.Player) bool {
		return !slices.ContainsFunc(other, func(o model.Player) bool { return o.ID == p.ID })
	})
}

func newPlayersListCmd() *cobra.Command {
	var search, level string
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List players, optionally searched and filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			var skill *model.SkillLevel
			if level != "" {
				parsed, err := model.ParseSkillLevel(level)
				if err != nil {
					return err
				}
				skill = &parsed
			}

			players, err := app.Directory.LoadAll(cmd.Context())
			if err != nil {
				return err
			}

			if search != "" {
				players = intersect(players, app.Directory.Search(search))
			}
			if skill != nil {
				players = intersect(players, app.Directory.FilterByLevel(skill))
			}
			if activeOnly {
				players = intersect(players, app.Directory.ActiveOnly())
			}

			output(cmd).Print(players)
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Match first name, last name or email, ignoring case and accents")
	cmd.Flags().StringVar(&level, "level", "", "Only players of this skill level")
	cmd.Flags().BoolVar(&activeOnly, "active", false, "Only active players")

	return routed(cmd, playersRoute, guardAuth)
}

func newPlayersGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show one player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePlayerID(args[0])
			if err != nil {
				return err
			}

			player, err := app.Directory.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			output(cmd).Print(player)
			return nil
		},
	}
	return routed(cmd, playerRoute, guardAuth)
}

// playerFlags binds the editable player fields to a flag set
type playerFlags struct {
	firstName, lastName, email, phone string
	birthDate, level, notes           string
	active                            bool
}

func (f *playerFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.firstName, "first-name", "", "First name")
	fs.StringVar(&f.lastName, "last-name", "", "Last name")
	fs.StringVar(&f.email, "email", "", "Email address")
	fs.StringVar(&f.phone, "phone", "", "Phone number")
	fs.StringVar(&f.birthDate, "birth-date", "", "Birth date (YYYY-MM-DD)")
	fs.StringVar(&f.level, "level", "", "Skill level: INICIACION, MEDIO, AVANZADO, PROFESIONAL")
	fs.StringVar(&f.notes, "notes", "", "Free-form notes")
}

func (f *playerFlags) form() (model.PlayerForm, error) {
	birth, err := model.ParseDate(f.birthDate)
	if err != nil {
		return model.PlayerForm{}, err
	}
	level, err := model.ParseSkillLevel(f.level)
	if err != nil {
		return model.PlayerForm{}, err
	}
	return model.PlayerForm{
		FirstName:  f.firstName,
		LastName:   f.lastName,
		Email:      f.email,
		Phone:      f.phone,
		BirthDate:  birth,
		SkillLevel: level,
		Notes:      f.notes,
	}, nil
}

// patch includes only the flags the user actually set
func (f *playerFlags) patch(fs *pflag.FlagSet) (model.PlayerPatch, error) {
	var p model.PlayerPatch
	set := func(name string, value string) *string {
		if !fs.Changed(name) {
			return nil
		}
		return &value
	}

	p.FirstName = set("first-name", f.firstName)
	p.LastName = set("last-name", f.lastName)
	p.Email = set("email", f.email)
	p.Phone = set("phone", f.phone)
	p.Notes = set("notes", f.notes)

	if fs.Changed("birth-date") {
		birth, err := model.ParseDate(f.birthDate)
		if err != nil {
			return p, err
		}
		p.BirthDate = &birth
	}
	if fs.Changed("level") {
		level, err := model.ParseSkillLevel(f.level)
		if err != nil {
			return p, err
		}
		p.SkillLevel = &level
	}
	if fs.Changed("active") {
		active := f.active
		p.Active = &active
	}
	return p, nil
}

func newPlayersCreateCmd() *cobra.Command {
	var f playerFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new player",
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := f.form()
			if err != nil {
				return err
			}

			player, err := app.Directory.Create(cmd.Context(), form)
			if err != nil {
				return err
			}

			output(cmd).Print(player)
			return nil
		},
	}

	f.bind(cmd.Flags())
	for _, name := range []string{"first-name", "last-name", "email", "birth-date", "level"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return routed(cmd, playersRoute, guardAuth)
}

func newPlayersUpdateCmd() *cobra.Command {
	var f playerFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change some fields of a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePlayerID(args[0])
			if err != nil {
				return err
			}
			patch, err := f.patch(cmd.Flags())
			if err != nil {
				return err
			}

			player, err := app.Directory.Update(cmd.Context(), id, patch)
			if err != nil {
				return err
			}

			output(cmd).Print(player)
			return nil
		},
	}

	f.bind(cmd.Flags())
	cmd.Flags().BoolVar(&f.active, "active", true, "Whether the player is active")

	return routed(cmd, playerRoute, guardAuth)
}

func newPlayersDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a player with no matches, tournaments or reservations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePlayerID(args[0])
			if err != nil {
				return err
			}

			if err := app.Directory.Delete(cmd.Context(), id); err != nil {
				return err
			}

			output(cmd).PrintMessage(fmt.Sprintf("Player %d deleted", id))
			return nil
		},
	}
	return routed(cmd, playerRoute, guardAuth)
}
