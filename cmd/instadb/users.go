package main

import (
	"github.com/autom8ter/instadb/model"
	"github.com/spf13/cobra"
)

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "manage the app's end users",
	}

	var email, id, token string
	lookup := func() model.UserLookup {
		switch {
		case email != "":
			return model.LookupByEmail(email)
		case id != "":
			return model.LookupByID(id)
		default:
			return model.LookupByRefreshToken(token)
		}
	}
	addLookupFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&email, "email", "", "target user by email")
		c.Flags().StringVar(&id, "id", "", "target user by id")
		c.Flags().StringVar(&token, "refresh-token", "", "target user by refresh token")
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "fetch a user by email, id, or refresh token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			user, err := client.GetUser(cmd.Context(), lookup())
			if err != nil {
				return err
			}
			printJSON(user)
			return nil
		},
	}
	addLookupFlags(get)

	del := &cobra.Command{
		Use:   "delete",
		Short: "delete a user by email, id, or refresh token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			return client.DeleteUser(cmd.Context(), lookup())
		},
	}
	addLookupFlags(del)

	createToken := &cobra.Command{
		Use:   "token <email>",
		Short: "issue a refresh token for the user with the given email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			refreshToken, err := client.CreateToken(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printJSON(map[string]string{"refresh_token": refreshToken})
			return nil
		},
	}

	signOut := &cobra.Command{
		Use:   "sign-out <email>",
		Short: "invalidate every refresh token issued to the user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			return client.SignOut(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(get, del, createToken, signOut)
	return cmd
}
