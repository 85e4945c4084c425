package main

import (
	"fmt"
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.
	"github.com/urfave/cli/v2"

	"github.com/contesthub/contest-api/cmd/app"
	"github.com/contesthub/contest-api/internal/domain"
)

// @termsOfService  http://swagger.io/terms/
// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io
//
// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
//
// @externalDocs.description  OpenAPI
// @externalDocs.url          https://swagger.io/resources/open-api/
func main() {
	cliApp := &cli.App{
		Name:  "contest-api",
		Usage: "contest participation, judging and leaderboard service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   app.DefaultConfigPath,
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		// Running without a command serves the API.
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "serve the HTTP API and process events",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "create or update the database schema",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "reset", Usage: "drop every table first"},
				},
				Action: func(c *cli.Context) error {
					return app.Migrate(c.String("config"), c.Bool("reset"))
				},
			},
			{
				Name:  "recompute",
				Usage: "recompute the ranks of one contest",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "contest", Usage: "contest id", Required: true},
				},
				Action: func(c *cli.Context) error {
					changes, err := app.Recompute(c.Context, c.String("config"), c.Uint("contest"))
					if err != nil {
						return err
					}
					for _, ch := range changes {
						fmt.Printf("participation %d (user %d): %d -> %d\n",
							ch.ParticipationID, ch.UserID, ch.PreviousRank, ch.CurrentRank)
					}
					fmt.Printf("%d rank(s) changed\n", len(changes))
					return nil
				},
			},
			{
				Name:  "user",
				Usage: "manage users",
				Subcommands: []*cli.Command{
					{
						Name:  "add",
						Usage: "create a user",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "email", Required: true},
							&cli.StringFlag{Name: "name", Required: true},
							&cli.StringFlag{Name: "username"},
							&cli.BoolFlag{Name: "admin", Usage: "grant the admin role"},
						},
						Action: func(c *cli.Context) error {
							role := domain.UserRoleMember
							if c.Bool("admin") {
								role = domain.UserRoleAdmin
							}
							user, err := app.AddUser(c.Context, c.String("config"), domain.User{
								Email:    c.String("email"),
								Name:     c.String("name"),
								Username: c.String("username"),
								Role:     role,
							})
							if err != nil {
								return err
							}
							fmt.Printf("created %s user %d <%s>\n", user.Role, user.ID, user.Email)
							return nil
						},
					},
				},
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(c *cli.Context) error {
	return app.Start(c.String("config"))
}
