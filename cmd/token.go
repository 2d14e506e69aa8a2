package cmd

import (
	"fmt"
	"time"

	"github.com/emrgen/jobpost/internal/config"
	"github.com/emrgen/jobpost/internal/module"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "token commands",
}

func init() {
	tokenCmd.AddCommand(issueTokenCmd())
}

// issueTokenCmd signs a token with JWT_SECRET, for operators who hold the
// server secret.
func issueTokenCmd() *cobra.Command {
	var subject string
	var role string
	var ttl time.Duration

	var required = []string{"subject"}

	command := &cobra.Command{
		Use:     "issue",
		Short:   "issue an access token",
		Example: "jobpost token issue -s admin@example.com -r admin --ttl 24h",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			token, err := module.NewTokenVerifier(config.LoadConfig().JWTSecret).Issue(subject, role, ttl)
			if err != nil {
				color.Red("error issuing token: %v", err)
				return
			}

			fmt.Println(token)
		},
	}

	command.Flags().StringVarP(&subject, "subject", "s", "", "token subject")
	command.Flags().StringVarP(&role, "role", "r", module.RoleAdmin, "token role")
	command.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")

	return command
}
