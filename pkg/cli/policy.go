package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/teranga-immo/teranga/pkg/authz"
	"github.com/teranga-immo/teranga/pkg/domain/types"
)

// cmdPolicy prints the role/operation permission matrix, for auditing
// the authorization table without reading the source.
func cmdPolicy() *cli.Command {
	return &cli.Command{
		Name:  "policy",
		Usage: "Print the role/operation permission matrix",
		Action: func(ctx context.Context, c *cli.Command) error {
			policy := authz.Default()
			roles := types.AllRoles()

			header := color.New(color.Bold)
			allowed := color.New(color.FgGreen)
			denied := color.New(color.FgHiBlack)

			header.Printf("%-32s", "operation")
			for _, role := range roles {
				header.Printf(" %-13s", role)
			}
			fmt.Println()

			for _, op := range policy.Operations() {
				fmt.Printf("%-32s", op)
				for _, role := range roles {
					if policy.Allows(role, op) {
						allowed.Printf(" %-13s", "yes")
					} else {
						denied.Printf(" %-13s", "-")
					}
				}
				fmt.Println()
			}
			return nil
		},
	}
}
